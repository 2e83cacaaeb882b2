package veil

import (
	"context"
	"regexp"
	"sync"
	"time"
)

// Entry is one registered rule: a literal key or a prefix-anchored pattern,
// bound to a provider and a human-readable description.
type Entry struct {
	ID          string
	Description string
	Provider    Provider

	pattern *regexp.Regexp // nil for literal entries
}

// Pattern reports whether the entry dispatches by regular expression.
func (e Entry) Pattern() bool {
	return e.pattern != nil
}

// Registry maps rule identifiers to providers.
//
// Entries are ordered: resolution walks them in registration order and the
// first match wins, so a pattern registered before a literal shadows it.
// Registries are populated once at startup and read concurrently afterwards.
type Registry struct {
	mu      sync.RWMutex
	entries []Entry
	ids     map[string]struct{} // literal keys and pattern sources, one namespace
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]struct{})}
}

// Register adds a literal entry. Registering an identifier twice, literal or
// pattern, fails with ErrAlreadyRegistered.
func (r *Registry) Register(id, description string, p Provider) error {
	return r.add(Entry{ID: id, Description: description, Provider: p})
}

// RegisterPattern adds a pattern entry. The expression matches rule
// identifiers anchored at the start, like re.match: "fake.+" captures
// "fake.email" but not "refake".
func (r *Registry) RegisterPattern(expr, description string, p Provider) error {
	re, err := regexp.Compile("^(?:" + expr + ")")
	if err != nil {
		return &RegistrationError{Err: err, ID: expr}
	}
	return r.add(Entry{ID: expr, Description: description, Provider: p, pattern: re})
}

func (r *Registry) add(e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.ids[e.ID]; dup {
		return &RegistrationError{Err: ErrAlreadyRegistered, ID: e.ID}
	}
	r.ids[e.ID] = struct{}{}
	r.entries = append(r.entries, e)
	return nil
}

// Resolve returns the provider for a rule identifier, walking entries in
// registration order. Pattern entries match when their expression matches the
// identifier's prefix; literal entries match on equality. Fails with
// ErrUnknownProvider when nothing matches.
func (r *Registry) Resolve(id string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, e := range r.entries {
		if e.pattern != nil {
			if e.pattern.MatchString(id) {
				return e.Provider, nil
			}
			continue
		}
		if e.ID == id {
			return e.Provider, nil
		}
	}
	return nil, &ResolveError{Err: ErrUnknownProvider, ID: id}
}

// Entries returns all registered entries in registration order, for
// introspection and help output.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Alter resolves id and invokes the provider on original. The rule identifier
// is injected into the arguments under "name" so pattern providers can see
// which concrete rule selected them (fake.* reads the method path from it).
func (r *Registry) Alter(ctx context.Context, id, original string, args Args) (Value, error) {
	start := time.Now()
	emitAlterStart(ctx, id)

	p, err := r.Resolve(id)
	if err != nil {
		emitAlterComplete(ctx, id, time.Since(start), err)
		return Null(), err
	}

	call := args.clone()
	call["name"] = id

	v, err := p.AlterValue(original, call)
	emitAlterComplete(ctx, id, time.Since(start), err)
	return v, err
}

// Builtin returns a registry holding every built-in provider, registered in
// the fixed order that dispatch semantics depend on. faker backs the fake.*
// and sameyear providers and may be shared across registries.
func Builtin(faker *Faker) *Registry {
	r := NewRegistry()

	must := func(err error) {
		if err != nil {
			// Duplicate built-in ids are a programming error.
			panic(err)
		}
	}

	must(r.Register("choice", "Random value out of a configured list.", ProviderFunc(alterChoice)))
	must(r.Register("clear", "Sets the value to NULL.", ProviderFunc(alterClear)))
	must(r.RegisterPattern("fake.+", "Fake data, e.g. fake.email or fake.name.", &fakeProvider{faker: faker}))
	must(r.Register("mask", "Replaces every character with a sign (default X).", ProviderFunc(alterMask)))
	must(r.Register("partial_mask", "Masks all but the outermost characters.", ProviderFunc(alterPartialMask)))
	must(r.Register("md5", "MD5 hex digest of the value, optionally as a number.", ProviderFunc(alterMD5)))
	must(r.Register("hash", "Strong hash of the value (sha256/sha512/argon2/bcrypt).", newHashProvider()))
	must(r.Register("set", "Sets a fixed configured value.", ProviderFunc(alterSet)))
	must(r.Register("uuid4", "Random version-4 UUID.", ProviderFunc(alterUUID4)))
	must(r.Register("fiscalcode", "Deterministic person fiscal code derived from the value.", ProviderFunc(alterFiscalCode)))
	must(r.Register("vatnumber", "Deterministic IT VAT number derived from the value.", ProviderFunc(alterVATNumber)))
	must(r.Register("fiscalcodebusiness", "Deterministic business fiscal code derived from the value.", ProviderFunc(alterFiscalCodeBusiness)))
	must(r.Register("fiscalcodevat", "Business or person fiscal code, keyed on the first character.", ProviderFunc(alterFiscalCodeVAT)))
	must(r.Register("phonenumberita", "Random Italian-style phone number.", ProviderFunc(alterPhoneNumberIta)))
	must(r.Register("randomidcard", "Random id card number (2 letters, 7 digits).", ProviderFunc(alterRandomIDCard)))
	must(r.Register("apikey", "Random UUID usable as an API key.", ProviderFunc(alterUUID4)))
	must(r.Register("jsonstring", "JSON serialization of a configured object.", ProviderFunc(alterJSONString)))
	must(r.Register("sameyear", "Random date keeping the year of the value.", &sameYearProvider{faker: faker}))
	must(r.Register("encrypt", "AES-GCM pseudonymization with a configured key.", newEncryptProvider()))

	emitRegistryReady(context.Background(), len(r.entries))
	return r
}

// Package veil anonymizes sensitive field values according to a declarative
// rule set, so that a copy of a relational dataset can be shared without
// exposing real data.
//
// The engine is a registry of pluggable value transformers ("providers"). An
// external loop resolves a configured rule identifier to a provider and
// invokes it once per field value; the provider returns a replacement.
//
// # Providers
//
// Built-in providers, registered in a fixed order by Builtin:
//
//   - choice: random element from a configured values list
//   - clear: NULL, regardless of input
//   - fake.*: delegate to the fake-data generator (fake.email, fake.name, ...)
//   - mask: every character replaced by a sign (default X)
//   - partial_mask: keep edges, mask the middle
//   - md5: lowercase hex digest, optionally reduced to a number
//   - hash: sha256/sha512/argon2/bcrypt digest
//   - set: fixed configured value
//   - uuid4: random version-4 UUID
//   - fiscalcode: deterministic person-identifier derived from the input
//   - vatnumber: deterministic IT VAT number derived from the input
//   - fiscalcodebusiness: deterministic 9-digit business identifier
//   - fiscalcodevat: business or person derivation, keyed on the first byte
//   - phonenumberita: random Italian-style phone number
//   - randomidcard: two random letters and seven random digits
//   - apikey: random UUID
//   - jsonstring: JSON serialization of a configured object
//   - sameyear: random date keeping the input's year
//   - encrypt: AES-GCM pseudonymization with a configured key
//
// # Rule dispatch
//
// Rule identifiers are either literal keys or prefix-anchored regular
// expression patterns. Resolution walks entries in registration order and
// returns the first match, so a pattern registered early captures identifiers
// that would otherwise hit a later literal. fake.* relies on this: any rule
// beginning with "fake." is handled by one pattern provider.
//
// # Basic usage
//
//	faker := veil.NewFaker(veil.FakerOptions{DefaultLocale: "en_US", Locales: []string{"en_US"}})
//	reg := veil.Builtin(faker)
//
//	out, err := reg.Alter(ctx, "mask", "secret", veil.Args{"sign": "*"})
//	// out.String() == "******"
//
// # Schema-driven usage
//
// A YAML schema declares, per table and column, the rule to apply:
//
//	schema, _ := veil.LoadSchema("schema.yaml")
//	anon, _ := veil.NewAnonymizer(schema)
//	for each row/column:
//	    value, err := anon.AlterField(ctx, field.Provider, original)
//
// # Struct anonymization
//
// Types can declare rules via struct tags and be anonymized in one call:
//
//	type User struct {
//	    Name  string `veil:"fake.name"`
//	    Email string `veil:"partial_mask,unmasked_left=2,unmasked_right=4"`
//	    SSN   string `veil:"md5"`
//	}
//
//	func (u User) Clone() User { return u }
//
//	proc, _ := veil.Use[User](reg)
//	safe, _ := proc.Anonymize(ctx, user)
//
// # Determinism
//
// The fiscalcode/vatnumber family derives replacements from an MD5 digest of
// the input: identical inputs always produce identical, format-plausible
// identifiers. The outputs resemble real identifiers structurally but satisfy
// no real checksum, and MD5 is not a secure anonymization primitive; treat
// derived identifiers as linkable pseudonyms, not as irreversible.
//
// # Concurrency
//
// A Registry is immutable after Builtin (or after explicit registration at
// startup) and safe for concurrent resolution. The faker resolver initializes
// its generators lazily behind a lock, so first use may race freely.
package veil

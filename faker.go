package veil

import (
	"sync"

	"github.com/brianvoe/gofakeit/v6"
)

// FakerOptions is the global fake-data configuration, read once from the
// schema's options.faker block.
type FakerOptions struct {
	DefaultLocale string   `yaml:"default_locale"`
	Locales       []string `yaml:"locales"`
}

// Faker resolves fake-data generators per locale.
//
// Generators are constructed lazily and cached for the process lifetime. The
// lazy paths are guarded, so first use may be triggered concurrently by many
// workers. Each generator draws from a crypto-seeded, lock-protected source
// and is safe for concurrent use.
type Faker struct {
	opts FakerOptions

	baseOnce sync.Once
	base     *gofakeit.Faker

	mu         sync.RWMutex
	generators map[string]*gofakeit.Faker
}

// NewFaker returns a resolver over the declared locale set.
func NewFaker(opts FakerOptions) *Faker {
	return &Faker{
		opts:       opts,
		generators: make(map[string]*gofakeit.Faker),
	}
}

// Options returns the configured faker options.
func (f *Faker) Options() FakerOptions {
	return f.opts
}

// Base returns the unlocalized generator, constructing it on first use.
func (f *Faker) Base() *gofakeit.Faker {
	f.baseOnce.Do(func() {
		f.base = gofakeit.NewCrypto()
	})
	return f.base
}

// Generator returns the generator scoped to locale. An empty locale returns
// the unlocalized generator; a locale missing from the configured set fails
// with ErrUnknownLocale.
func (f *Faker) Generator(locale string) (*gofakeit.Faker, error) {
	if locale == "" {
		return f.Base(), nil
	}

	// Fast path: read-lock cache check.
	f.mu.RLock()
	if g, ok := f.generators[locale]; ok {
		f.mu.RUnlock()
		return g, nil
	}
	f.mu.RUnlock()

	if !f.declared(locale) {
		return nil, &ArgumentError{
			Err:    ErrUnknownLocale,
			Detail: "locale " + locale + " is not declared in options.faker.locales",
		}
	}

	// Slow path: build and cache with write-lock.
	f.mu.Lock()
	defer f.mu.Unlock()

	// Double-check pattern
	if g, ok := f.generators[locale]; ok {
		return g, nil
	}

	g := gofakeit.NewCrypto()
	f.generators[locale] = g
	return g, nil
}

// Resolve applies the locale precedence of the fake.* provider: the explicit
// per-field locale, else the configured default locale, else the unlocalized
// generator.
func (f *Faker) Resolve(locale string) (*gofakeit.Faker, error) {
	if locale == "" {
		locale = f.opts.DefaultLocale
	}
	return f.Generator(locale)
}

func (f *Faker) declared(locale string) bool {
	for _, l := range f.opts.Locales {
		if l == locale {
			return true
		}
	}
	// The default locale counts as declared even when the list omits it.
	return locale == f.opts.DefaultLocale && locale != ""
}

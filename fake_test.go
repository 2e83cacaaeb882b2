package veil_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/zoobzio/veil"
)

func TestFake_Email(t *testing.T) {
	r := testRegistry()

	out, err := r.Alter(context.Background(), "fake.email", "old@example.com", nil)
	if err != nil {
		t.Fatalf("fake.email error: %v", err)
	}
	if !strings.Contains(out.String(), "@") {
		t.Errorf("fake.email = %q, want an email-shaped value", out.String())
	}
}

func TestFake_Name(t *testing.T) {
	r := testRegistry()

	out, err := r.Alter(context.Background(), "fake.first_name", "Alice", nil)
	if err != nil {
		t.Fatalf("fake.first_name error: %v", err)
	}
	if out.IsNull() || out.String() == "" {
		t.Error("fake.first_name returned an empty value")
	}
}

func TestFake_UnknownMethod(t *testing.T) {
	r := testRegistry()

	_, err := r.Alter(context.Background(), "fake.no_such_method", "x", nil)
	if !errors.Is(err, veil.ErrUnknownFakeMethod) {
		t.Errorf("fake.no_such_method = %v, want ErrUnknownFakeMethod", err)
	}
	// The specialization chains to the broad argument error.
	if !errors.Is(err, veil.ErrInvalidArgument) {
		t.Errorf("ErrUnknownFakeMethod should wrap ErrInvalidArgument, got %v", err)
	}
}

func TestFake_UndeclaredLocale(t *testing.T) {
	faker := veil.NewFaker(veil.FakerOptions{Locales: []string{"en_US"}})
	r := veil.Builtin(faker)

	_, err := r.Alter(context.Background(), "fake.email", "x", veil.Args{"locale": "xx_XX"})
	if !errors.Is(err, veil.ErrUnknownLocale) {
		t.Errorf("fake.email with undeclared locale = %v, want ErrUnknownLocale", err)
	}
}

func TestFake_DeclaredLocale(t *testing.T) {
	faker := veil.NewFaker(veil.FakerOptions{DefaultLocale: "en_US", Locales: []string{"en_US", "de_DE"}})
	r := veil.Builtin(faker)

	out, err := r.Alter(context.Background(), "fake.city", "x", veil.Args{"locale": "de_DE"})
	if err != nil {
		t.Fatalf("fake.city error: %v", err)
	}
	if out.String() == "" {
		t.Error("fake.city returned an empty value")
	}
}

func TestFaker_Precedence(t *testing.T) {
	// Explicit locale, else default locale, else the unlocalized generator.
	f := veil.NewFaker(veil.FakerOptions{DefaultLocale: "en_US", Locales: []string{"en_US", "de_DE"}})

	explicit, err := f.Resolve("de_DE")
	if err != nil {
		t.Fatal(err)
	}
	fallback, err := f.Resolve("")
	if err != nil {
		t.Fatal(err)
	}
	if explicit == fallback {
		t.Error("explicit locale should not resolve to the default generator")
	}

	bare := veil.NewFaker(veil.FakerOptions{})
	g, err := bare.Resolve("")
	if err != nil {
		t.Fatal(err)
	}
	if g != bare.Base() {
		t.Error("no locale configured should resolve to the unlocalized generator")
	}
}

func TestFaker_GeneratorCached(t *testing.T) {
	f := veil.NewFaker(veil.FakerOptions{Locales: []string{"de_DE"}})

	a, err := f.Generator("de_DE")
	if err != nil {
		t.Fatal(err)
	}
	b, err := f.Generator("de_DE")
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("Generator() should cache per-locale instances")
	}
}

func TestFaker_UnknownLocale(t *testing.T) {
	f := veil.NewFaker(veil.FakerOptions{Locales: []string{"en_US"}})

	_, err := f.Generator("fr_FR")
	if !errors.Is(err, veil.ErrUnknownLocale) {
		t.Errorf("Generator(fr_FR) = %v, want ErrUnknownLocale", err)
	}
}

func TestFaker_ConcurrentFirstUse(t *testing.T) {
	f := veil.NewFaker(veil.FakerOptions{DefaultLocale: "en_US", Locales: []string{"en_US", "de_DE", "it_IT"}})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			locales := []string{"", "en_US", "de_DE", "it_IT"}
			for j := 0; j < 50; j++ {
				if _, err := f.Resolve(locales[(n+j)%len(locales)]); err != nil {
					t.Errorf("Resolve error: %v", err)
					return
				}
			}
		}(i)
	}
	wg.Wait()
}

func TestFakeMethods_Listed(t *testing.T) {
	methods := veil.FakeMethods()
	if len(methods) == 0 {
		t.Fatal("FakeMethods() returned nothing")
	}
	seen := make(map[string]bool, len(methods))
	for _, m := range methods {
		seen[m] = true
	}
	for _, want := range []string{"email", "first_name", "date_of_birth"} {
		if !seen[want] {
			t.Errorf("FakeMethods() missing %q", want)
		}
	}
}

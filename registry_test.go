package veil_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/zoobzio/veil"
)

func testRegistry() *veil.Registry {
	return veil.Builtin(veil.NewFaker(veil.FakerOptions{}))
}

func TestRegister_Duplicate(t *testing.T) {
	r := veil.NewRegistry()

	if err := r.Register("foo", "first", nopProvider()); err != nil {
		t.Fatalf("Register() error: %v", err)
	}
	err := r.Register("foo", "second", nopProvider())
	if !errors.Is(err, veil.ErrAlreadyRegistered) {
		t.Errorf("duplicate Register() = %v, want ErrAlreadyRegistered", err)
	}
}

func TestRegister_DuplicateAcrossKinds(t *testing.T) {
	r := veil.NewRegistry()

	if err := r.RegisterPattern("foo.+", "pattern", nopProvider()); err != nil {
		t.Fatalf("RegisterPattern() error: %v", err)
	}
	err := r.Register("foo.+", "literal", nopProvider())
	if !errors.Is(err, veil.ErrAlreadyRegistered) {
		t.Errorf("literal and pattern keys share one namespace, got %v", err)
	}
}

func TestResolve_Unknown(t *testing.T) {
	r := testRegistry()

	_, err := r.Resolve("no-such-rule")
	if !errors.Is(err, veil.ErrUnknownProvider) {
		t.Errorf("Resolve() = %v, want ErrUnknownProvider", err)
	}
}

func TestResolve_PatternDispatch(t *testing.T) {
	r := testRegistry()

	// No literal entry named fake.first_name exists; the fake.+ pattern
	// must capture it.
	if _, err := r.Resolve("fake.first_name"); err != nil {
		t.Fatalf("Resolve(fake.first_name) error: %v", err)
	}

	// The pattern is prefix-anchored: a rule merely containing "fake."
	// elsewhere must not match.
	if _, err := r.Resolve("refake.name"); !errors.Is(err, veil.ErrUnknownProvider) {
		t.Errorf("Resolve(refake.name) = %v, want ErrUnknownProvider", err)
	}
}

func TestResolve_RegistrationOrderWins(t *testing.T) {
	r := veil.NewRegistry()

	pattern := veil.ProviderFunc(func(string, veil.Args) (veil.Value, error) {
		return veil.NewValue("pattern"), nil
	})
	literal := veil.ProviderFunc(func(string, veil.Args) (veil.Value, error) {
		return veil.NewValue("literal"), nil
	})

	if err := r.RegisterPattern("rule.+", "early pattern", pattern); err != nil {
		t.Fatal(err)
	}
	if err := r.Register("rule.exact", "late literal", literal); err != nil {
		t.Fatal(err)
	}

	p, err := r.Resolve("rule.exact")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	out, _ := p.AlterValue("", nil)
	if out.String() != "pattern" {
		t.Errorf("Resolve(rule.exact) dispatched to %q, want the earlier pattern entry", out.String())
	}
}

func TestResolve_Idempotent(t *testing.T) {
	r := testRegistry()

	p1, err := r.Resolve("mask")
	if err != nil {
		t.Fatal(err)
	}
	p2, err := r.Resolve("mask")
	if err != nil {
		t.Fatal(err)
	}
	if p1 != p2 {
		t.Error("Resolve() should return the same provider on repeated calls")
	}
}

func TestEntries_Order(t *testing.T) {
	r := testRegistry()
	entries := r.Entries()

	if len(entries) == 0 {
		t.Fatal("Entries() returned nothing")
	}
	if entries[0].ID != "choice" {
		t.Errorf("first entry = %q, want choice", entries[0].ID)
	}
	for _, e := range entries {
		if e.Description == "" {
			t.Errorf("entry %q has no description", e.ID)
		}
	}
}

func TestAlter_UnknownRule(t *testing.T) {
	r := testRegistry()

	_, err := r.Alter(context.Background(), "nope", "value", nil)
	if !errors.Is(err, veil.ErrUnknownProvider) {
		t.Errorf("Alter() = %v, want ErrUnknownProvider", err)
	}
}

func TestResolve_Concurrent(t *testing.T) {
	r := testRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if _, err := r.Resolve("fake.email"); err != nil {
					t.Errorf("Resolve() error: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func nopProvider() veil.Provider {
	return veil.ProviderFunc(func(string, veil.Args) (veil.Value, error) {
		return veil.Null(), nil
	})
}

package veil_test

import (
	"context"
	"regexp"
	"testing"

	"github.com/zoobzio/veil"
)

var (
	personPattern   = regexp.MustCompile(`^[A-Z]{6}[0-9]{2}[A-Z][0-9]{2}[A-Z][0-9]{3}[A-Z]$`)
	businessPattern = regexp.MustCompile(`^[0-9]{9}$`)
	vatPattern      = regexp.MustCompile(`^IT[0-9]{9}$`)
)

func TestDerivePersonCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Jane Doe", "CNGTJB85S54A736Z"},
		{"John Smith", "TXYJSP83E63Q874K"},
		{"secret", "QIISCA40M18O068C"},
		{"", "EDKJNA84E19W686C"},
	}

	for _, tt := range tests {
		got := veil.DerivePersonCode(tt.input)
		if got != tt.expected {
			t.Errorf("DerivePersonCode(%q) = %q, want %q", tt.input, got, tt.expected)
		}
		if !personPattern.MatchString(got) {
			t.Errorf("DerivePersonCode(%q) = %q, not format-valid", tt.input, got)
		}
	}
}

func TestDeriveBusinessCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"12345678901", "160779391"},
		{"987654321", "008115733"},
		{"345678901", "410567103"},
	}

	for _, tt := range tests {
		got := veil.DeriveBusinessCode(tt.input)
		if got != tt.expected {
			t.Errorf("DeriveBusinessCode(%q) = %q, want %q", tt.input, got, tt.expected)
		}
		if !businessPattern.MatchString(got) {
			t.Errorf("DeriveBusinessCode(%q) = %q, not 9 digits", tt.input, got)
		}
	}
}

func TestDeriveVATNumber(t *testing.T) {
	got := veil.DeriveVATNumber("IT12345678901")
	if got != "IT160779391" {
		t.Errorf("DeriveVATNumber(IT12345678901) = %q, want IT160779391", got)
	}
	if !vatPattern.MatchString(got) {
		t.Errorf("DeriveVATNumber output %q not format-valid", got)
	}

	// The VAT derivation is the business derivation of the input with its
	// two-character country prefix stripped.
	if got != "IT"+veil.DeriveBusinessCode("12345678901") {
		t.Error("DeriveVATNumber should wrap DeriveBusinessCode of the stripped input")
	}
}

func TestDerivation_Deterministic(t *testing.T) {
	inputs := []string{"Jane Doe", "RSSMRA85T10A562S", "", "x"}
	for _, in := range inputs {
		if veil.DerivePersonCode(in) != veil.DerivePersonCode(in) {
			t.Errorf("DerivePersonCode(%q) not deterministic", in)
		}
		if veil.DeriveBusinessCode(in) != veil.DeriveBusinessCode(in) {
			t.Errorf("DeriveBusinessCode(%q) not deterministic", in)
		}
	}
	if veil.DerivePersonCode("Jane Doe") == veil.DerivePersonCode("John Smith") {
		t.Error("distinct inputs should derive distinct person codes")
	}
}

func TestDerivation_StructuralValidity(t *testing.T) {
	// Property over a spread of inputs: output shape never varies.
	inputs := []string{"a", "ab", "abc", "Jane Doe", "00000", "ACME S.p.A.", "üñïçødé"}
	for _, in := range inputs {
		if got := veil.DerivePersonCode(in); !personPattern.MatchString(got) {
			t.Errorf("DerivePersonCode(%q) = %q, not format-valid", in, got)
		}
		if got := veil.DeriveBusinessCode(in); !businessPattern.MatchString(got) {
			t.Errorf("DeriveBusinessCode(%q) = %q, not 9 digits", in, got)
		}
		if got := veil.DeriveVATNumber(in); !vatPattern.MatchString(got) {
			t.Errorf("DeriveVATNumber(%q) = %q, not format-valid", in, got)
		}
	}
}

func TestFiscalCodeVAT_Dispatch(t *testing.T) {
	r := testRegistry()
	ctx := context.Background()

	// Leading digit: business branch.
	out, err := r.Alter(ctx, "fiscalcodevat", "12345678901", nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != veil.DeriveBusinessCode("12345678901") {
		t.Errorf("fiscalcodevat(digits) = %q, want business derivation", out.String())
	}

	// Leading letter: person branch.
	out, err = r.Alter(ctx, "fiscalcodevat", "RSSMRA85T10A562S", nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != veil.DerivePersonCode("RSSMRA85T10A562S") {
		t.Errorf("fiscalcodevat(letters) = %q, want person derivation", out.String())
	}

	// Empty input takes the person branch rather than failing.
	out, err = r.Alter(ctx, "fiscalcodevat", "", nil)
	if err != nil {
		t.Fatal(err)
	}
	if !personPattern.MatchString(out.String()) {
		t.Errorf("fiscalcodevat(\"\") = %q, not format-valid", out.String())
	}
}

func TestFiscalProviders_ThroughRegistry(t *testing.T) {
	r := testRegistry()
	ctx := context.Background()

	out, err := r.Alter(ctx, "fiscalcode", "Jane Doe", nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "CNGTJB85S54A736Z" {
		t.Errorf("fiscalcode(Jane Doe) = %q, want CNGTJB85S54A736Z", out.String())
	}

	out, err = r.Alter(ctx, "vatnumber", "IT12345678901", nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "IT160779391" {
		t.Errorf("vatnumber = %q, want IT160779391", out.String())
	}

	out, err = r.Alter(ctx, "fiscalcodebusiness", "12345678901", nil)
	if err != nil {
		t.Fatal(err)
	}
	if out.String() != "160779391" {
		t.Errorf("fiscalcodebusiness = %q, want 160779391", out.String())
	}
}

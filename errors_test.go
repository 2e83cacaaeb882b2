package veil

import (
	"errors"
	"testing"
)

func TestRegistrationError_Is(t *testing.T) {
	err := &RegistrationError{Err: ErrAlreadyRegistered, ID: "mask"}

	if !errors.Is(err, ErrAlreadyRegistered) {
		t.Error("RegistrationError should unwrap to ErrAlreadyRegistered")
	}
	if errors.Is(err, ErrUnknownProvider) {
		t.Error("RegistrationError should not match ErrUnknownProvider")
	}
}

func TestResolveError_Is(t *testing.T) {
	err := &ResolveError{Err: ErrUnknownProvider, ID: "nope"}

	if !errors.Is(err, ErrUnknownProvider) {
		t.Error("ResolveError should unwrap to ErrUnknownProvider")
	}
}

func TestArgumentError_Is(t *testing.T) {
	err := invalidArg("mask", "bad sign")

	if !errors.Is(err, ErrInvalidArgument) {
		t.Error("ArgumentError should unwrap to ErrInvalidArgument")
	}
}

func TestSpecializedSentinels(t *testing.T) {
	// The locale and method sentinels are argument errors themselves, so a
	// single errors.Is(err, ErrInvalidArgument) catches all of them.
	if !errors.Is(ErrUnknownLocale, ErrInvalidArgument) {
		t.Error("ErrUnknownLocale should match ErrInvalidArgument")
	}
	if !errors.Is(ErrUnknownFakeMethod, ErrInvalidArgument) {
		t.Error("ErrUnknownFakeMethod should match ErrInvalidArgument")
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "registration",
			err:  &RegistrationError{Err: ErrAlreadyRegistered, ID: "mask"},
			want: `provider already registered: "mask"`,
		},
		{
			name: "resolve",
			err:  &ResolveError{Err: ErrUnknownProvider, ID: "nope"},
			want: `unknown provider: "nope"`,
		},
		{
			name: "argument with rule",
			err:  invalidArg("choice", "no values configured"),
			want: "invalid provider argument: no values configured (rule choice)",
		},
		{
			name: "argument without rule",
			err:  &ArgumentError{Err: ErrInvalidArgument, Detail: "bad key"},
			want: "invalid provider argument: bad key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

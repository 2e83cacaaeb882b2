package veil

import (
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// italianPhonePrefix matches the original rule set byte-for-byte so outputs
// stay comparable across implementations.
const italianPhonePrefix = "+003"

// alterUUID4 returns a freshly generated random version-4 UUID. Registered
// under both uuid4 and apikey.
func alterUUID4(string, Args) (Value, error) {
	return NewValue(uuid.NewString()), nil
}

// alterPhoneNumberIta returns the fixed prefix followed by 9 independently
// random decimal digits.
func alterPhoneNumberIta(string, Args) (Value, error) {
	var b strings.Builder
	b.WriteString(italianPhonePrefix)
	for i := 0; i < 9; i++ {
		b.WriteByte(randomDigit())
	}
	return NewValue(b.String()), nil
}

// alterRandomIDCard returns 2 random uppercase letters followed by 7 random
// decimal digits.
func alterRandomIDCard(string, Args) (Value, error) {
	var b strings.Builder
	for i := 0; i < 2; i++ {
		b.WriteByte(randomUpper())
	}
	for i := 0; i < 7; i++ {
		b.WriteByte(randomDigit())
	}
	return NewValue(b.String()), nil
}

// The top-level rand functions share a thread-safe source, so providers can
// run concurrently without coordination.

func randomDigit() byte {
	return byte('0' + rand.IntN(10))
}

func randomUpper() byte {
	return byte('A' + rand.IntN(26))
}

package veil

import "strings"

// Masking defaults.
const (
	defaultSign          = "X"
	defaultUnmaskedLeft  = 1
	defaultUnmaskedRight = 1
)

// alterMask replaces every character of the value with a sign.
//
// Arguments: sign (default "X").
func alterMask(original string, args Args) (Value, error) {
	sign := args.StringDefault("sign", defaultSign)
	return NewValue(strings.Repeat(sign, len(original))), nil
}

// alterPartialMask keeps the outermost characters and masks the middle.
//
// Arguments: sign (default "X"), unmasked_left (default 1), unmasked_right
// (default 1). Values below 1 fall back to the defaults. When the unmasked
// edges cover the whole value the entire value is masked instead: echoing a
// short value back would defeat the point.
func alterPartialMask(original string, args Args) (Value, error) {
	sign := args.StringDefault("sign", defaultSign)
	left := args.IntDefault("unmasked_left", defaultUnmaskedLeft)
	if left < 1 {
		left = defaultUnmaskedLeft
	}
	right := args.IntDefault("unmasked_right", defaultUnmaskedRight)
	if right < 1 {
		right = defaultUnmaskedRight
	}

	if left+right >= len(original) {
		return NewValue(strings.Repeat(sign, len(original))), nil
	}

	middle := len(original) - left - right
	return NewValue(original[:left] + strings.Repeat(sign, middle) + original[len(original)-right:]), nil
}

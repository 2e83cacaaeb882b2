package veil

// Deterministic identifier derivation: format-plausible substitutes for
// Italian fiscal codes and VAT numbers, synthesized from the MD5 digest of
// the original value. Same input, same output; the result resembles a real
// identifier structurally but computes no real check digit, and is not
// claimed to be irreversible.

// monthLetters is the allowed set for the month position of a person code.
// Candidates outside the set fall back to the letter at index 4 ('E').
const monthLetters = "ABCDEHLMPRST"

// digestPairs splits the 32-hex-character digest of s into 16 consecutive
// 2-character pairs, each interpreted as an integer in [0,255].
func digestPairs(s string) [16]int {
	digest := md5Hex(s)
	var pairs [16]int
	for i := 0; i < 16; i++ {
		pairs[i] = hexPair(digest[2*i], digest[2*i+1])
	}
	return pairs
}

func hexPair(hi, lo byte) int {
	return int(hexVal(hi))<<4 | int(hexVal(lo))
}

func hexVal(c byte) byte {
	if c >= 'a' {
		return c - 'a' + 10
	}
	return c - '0'
}

// letterStream maps each digest pair to an uppercase letter (mod 26).
func letterStream(pairs [16]int) []byte {
	letters := make([]byte, 16)
	for i, n := range pairs {
		letters[i] = byte('A' + n%26)
	}
	return letters
}

// digitStream maps digest pairs to decimal digits (mod 10), starting from
// the 7th pair: the first six pairs are exhausted as the leading letters of
// the person format.
func digitStream(pairs [16]int) []byte {
	digits := make([]byte, 0, 10)
	for _, n := range pairs[6:] {
		digits = append(digits, byte('0'+n%10))
	}
	return digits
}

// DerivePersonCode derives a 16-symbol person identifier from s. The output
// always matches [A-Z]{6}[0-9]{2}[A-Z][0-9]{2}[A-Z][0-9]{3}[A-Z].
func DerivePersonCode(s string) string {
	pairs := digestPairs(s)
	letters := letterStream(pairs)
	digits := digitStream(pairs)

	// Month: keep the candidate only if it belongs to the allowed set.
	month := letters[8]
	if !isMonthLetter(month) {
		month = monthLetters[4]
	}

	// Day: a leading day digit above 7 is replaced with 1, a simplified nod
	// to the gender offset of the real encoding.
	day := [2]byte{digits[3], digits[4]}
	if day[0] > '7' {
		day[0] = '1'
	}

	out := make([]byte, 0, 16)
	out = append(out, letters[:6]...)
	out = append(out, digits[0], digits[1])
	out = append(out, month)
	out = append(out, day[0], day[1])
	out = append(out, letters[11])
	out = append(out, digits[6], digits[7], digits[8])
	out = append(out, letters[12])
	return string(out)
}

// DeriveBusinessCode derives a 9-digit business identifier from s, taking
// the digit stream of all 16 digest pairs in original order.
func DeriveBusinessCode(s string) string {
	pairs := digestPairs(s)
	out := make([]byte, 9)
	for i := 0; i < 9; i++ {
		out[i] = byte('0' + pairs[i]%10)
	}
	return string(out)
}

// DeriveVATNumber derives an IT-prefixed VAT number from s. The first two
// characters of the input are stripped before digesting, modeling the
// country-code prefix of the original value.
func DeriveVATNumber(s string) string {
	if len(s) >= 2 {
		s = s[2:]
	} else {
		s = ""
	}
	return "IT" + DeriveBusinessCode(s)
}

func isMonthLetter(c byte) bool {
	for i := 0; i < len(monthLetters); i++ {
		if monthLetters[i] == c {
			return true
		}
	}
	return false
}

// alterFiscalCode derives a person identifier from the value.
func alterFiscalCode(original string, _ Args) (Value, error) {
	return NewValue(DerivePersonCode(original)), nil
}

// alterVATNumber derives an IT VAT number from the value.
func alterVATNumber(original string, _ Args) (Value, error) {
	return NewValue(DeriveVATNumber(original)), nil
}

// alterFiscalCodeBusiness derives a 9-digit business identifier from the
// value.
func alterFiscalCodeBusiness(original string, _ Args) (Value, error) {
	return NewValue(DeriveBusinessCode(original)), nil
}

// alterFiscalCodeVAT dispatches on the first character: digits take the
// business derivation, everything else (including the empty string) the
// person derivation.
func alterFiscalCodeVAT(original string, _ Args) (Value, error) {
	if len(original) > 0 && original[0] >= '0' && original[0] <= '9' {
		return NewValue(DeriveBusinessCode(original)), nil
	}
	return NewValue(DerivePersonCode(original)), nil
}

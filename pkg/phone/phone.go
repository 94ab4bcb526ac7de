// Package phone normalizes Gabonese phone numbers to international
// format (+241). Normalization is best-effort and never fails: input the
// rules don't recognize is passed through stripped but otherwise intact.
package phone

import "strings"

const countryCode = "241"

// Normalize maps a raw user-typed phone string to canonical +241 form.
//   - "065xxxxxx"  -> "+24165xxxxxx" (local format, leading zero)
//   - "241xxxxxxxx" -> "+241xxxxxxxx"
//   - "+241xxxxxxxx" is returned unchanged
//
// Anything else is returned with non-dial characters stripped. Validity
// (minimum length) is the caller's concern.
func Normalize(raw string) string {
	p := strip(raw)

	switch {
	case isLocal(p):
		return "+" + countryCode + p[1:]
	case isNational(p):
		return "+" + p
	case isInternational(p):
		return p
	}
	return p
}

// strip removes every character that is not a digit or '+'.
func strip(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isLocal matches a leading zero followed by exactly 8 digits.
func isLocal(s string) bool {
	return len(s) == 9 && s[0] == '0' && allDigits(s)
}

// isNational matches the bare country code followed by exactly 8 digits.
func isNational(s string) bool {
	return len(s) == 11 && strings.HasPrefix(s, countryCode) && allDigits(s)
}

// isInternational matches "+241" followed by exactly 8 digits.
func isInternational(s string) bool {
	return len(s) == 12 && strings.HasPrefix(s, "+"+countryCode) && allDigits(s[1:])
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

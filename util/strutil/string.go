package strutil

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Format n with leading zeros until it has at least digit digits.
//
// Negative numbers keep the sign in front of the padding.
func PadNum(n int, digit int) string {
	if n < 0 {
		return "-" + PadNum(-n, digit)
	}
	num := strconv.Itoa(n)
	if pad := digit - len(num); pad > 0 {
		return strings.Repeat("0", pad) + num
	}
	return num
}

// Check if the string is blank
func IsBlankStr(s string) bool {
	return s == "" || strings.TrimSpace(s) == ""
}

// Cut prefix from s in a case-insensitive way.
//
// Runes are compared with simple case folding, so the prefix may contain non-ascii letters.
func CutPrefixIgnoreCase(s string, prefix string) (string, bool) {
	i := 0
	for _, pr := range prefix {
		if i >= len(s) {
			return s, false
		}
		sr, w := utf8.DecodeRuneInString(s[i:])
		if sr != pr && !strings.EqualFold(string(sr), string(pr)) {
			return s, false
		}
		i += w
	}
	return s[i:], true
}

// Cut any prefix from s in a case-insensitive way.
func CutPrefixIgnoreCaseAny(s string, prefix ...string) (string, bool) {
	for _, p := range prefix {
		if v, ok := CutPrefixIgnoreCase(s, p); ok {
			return v, true
		}
	}
	return s, false
}

// Count the leading ascii digits of s.
func LeadingDigits(s string) int {
	n := 0
	for n < len(s) && s[n] >= '0' && s[n] <= '9' {
		n++
	}
	return n
}

// Check if r is a space, including the no-break spaces used by some locales.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\u00a0' || r == '\u202f'
}

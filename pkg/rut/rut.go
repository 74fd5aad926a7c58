// Package rut validates Chilean RUT identifiers (Module-11 checksum).
package rut

import (
	"regexp"
	"strings"
)

// rutPattern matches RUT-shaped substrings in free text, with or without
// dot separators, check digit 0-9 or K. First match wins.
var rutPattern = regexp.MustCompile(`(?i)\d{1,3}(?:\.?\d{3}){1,2}-?[\dkK]`)

// Validate reports whether candidate carries a correct Module-11 check digit.
// All characters except digits and K are stripped before checking; anything
// shorter than a body plus check digit is invalid. Malformed input never
// produces an error, just false.
func Validate(candidate string) bool {
	clean := normalize(candidate)
	if len(clean) < 2 {
		return false
	}

	body := clean[:len(clean)-1]
	check := clean[len(clean)-1]

	sum := 0
	mult := 2
	for i := len(body) - 1; i >= 0; i-- {
		c := body[i]
		if c < '0' || c > '9' {
			// a K inside the body is never valid
			return false
		}
		sum += int(c-'0') * mult
		mult++
		if mult > 7 {
			mult = 2
		}
	}

	var expected byte
	switch rem := 11 - (sum % 11); rem {
	case 11:
		expected = '0'
	case 10:
		expected = 'K'
	default:
		expected = byte('0' + rem)
	}
	return check == expected
}

// Extract scans free text for the first RUT-shaped substring and returns it
// normalized (digits plus optional trailing K, upper case). The policy is
// deliberately best-effort first-match: the text usually comes back from the
// voucher analysis service and has no guaranteed structure.
func Extract(text string) (string, bool) {
	m := rutPattern.FindString(text)
	if m == "" {
		return "", false
	}
	return normalize(m), true
}

// Format renders a normalized RUT with dot separators and a dash before the
// check digit, e.g. "123456785" -> "12.345.678-5".
func Format(candidate string) string {
	clean := normalize(candidate)
	if len(clean) < 2 {
		return clean
	}
	body := clean[:len(clean)-1]
	check := clean[len(clean)-1:]

	var sb strings.Builder
	for i, c := range body {
		if i > 0 && (len(body)-i)%3 == 0 {
			sb.WriteByte('.')
		}
		sb.WriteRune(c)
	}
	return sb.String() + "-" + check
}

func normalize(s string) string {
	var sb strings.Builder
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			sb.WriteRune(c)
		case c == 'k' || c == 'K':
			sb.WriteByte('K')
		}
	}
	return sb.String()
}

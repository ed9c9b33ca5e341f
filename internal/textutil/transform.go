// Package textutil normalizes raw input into the cipher working alphabet.
package textutil

import "strings"

var digitWords = [10]string{
	"ZERO", "ONE", "TWO", "THREE", "FOUR",
	"FIVE", "SIX", "SEVEN", "EIGHT", "NINE",
}

// Normalize maps arbitrary input to uppercase A-Z: letters are uppercased,
// digits are transliterated to their spelled-out names, and everything else
// is dropped.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteByte(byte(r) - 'a' + 'A')
		case r >= 'A' && r <= 'Z':
			b.WriteByte(byte(r))
		case r >= '0' && r <= '9':
			b.WriteString(digitWords[r-'0'])
		}
	}
	return b.String()
}

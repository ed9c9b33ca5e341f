package cipher

import (
	"fmt"
	"strings"
)

// Vigenere implements the repeating-keyword polyalphabetic cipher over A-Z.
type Vigenere struct {
	key []byte // per-letter shifts in [0, 26)
}

// NewVigenere creates a Vigenere cipher from a keyword. The keyword must be
// non-empty and contain only letters; case is normalized.
func NewVigenere(rawKey string) (*Vigenere, error) {
	if rawKey == "" {
		return nil, &InvalidKeyError{Kind: KindVigenere, Reason: "key must not be empty"}
	}

	key := make([]byte, 0, len(rawKey))
	for i := 0; i < len(rawKey); i++ {
		ch := rawKey[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
			key = append(key, ch-'A')
		case ch >= 'a' && ch <= 'z':
			key = append(key, ch-'a')
		default:
			return nil, &InvalidKeyError{
				Kind:   KindVigenere,
				Reason: fmt.Sprintf("key contains non-alphabetic character %q", ch),
			}
		}
	}
	return &Vigenere{key: key}, nil
}

// Algorithm returns the cipher algorithm name
func (v *Vigenere) Algorithm() string {
	return string(KindVigenere)
}

// Parallelizable reports that Vigenere chunks safely: workers compensate
// for the position discontinuity through ApplyAt.
func (v *Vigenere) Parallelizable() bool {
	return true
}

// Apply transforms text with the keyword aligned to its first letter.
func (v *Vigenere) Apply(text string, mode Mode) string {
	return v.ApplyAt(text, mode, 0)
}

// ApplyAt transforms text as if preceded by phase alphabet letters, keeping
// the repeating keyword aligned across chunk boundaries. The keyword index
// advances only on letters, so pass-through bytes never desynchronize it.
func (v *Vigenere) ApplyAt(text string, mode Mode, phase int) string {
	var b strings.Builder
	b.Grow(len(text))

	pos := phase
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if !isLetter(ch) {
			b.WriteByte(ch)
			continue
		}
		shift := int(v.key[pos%len(v.key)])
		if mode == ModeDecrypt {
			shift = (alphabetSize - shift) % alphabetSize
		}
		b.WriteByte(shiftLetter(ch, shift))
		pos++
	}
	return b.String()
}

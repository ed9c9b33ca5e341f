package cipher

import "fmt"

// alphabetSize is the size of the working alphabet A-Z.
const alphabetSize = 26

// Kind identifies a cipher algorithm.
type Kind string

const (
	KindCaesar   Kind = "caesar"
	KindPlayfair Kind = "playfair"
	KindVigenere Kind = "vigenere"
)

// Mode selects the transform direction.
type Mode int

const (
	ModeEncrypt Mode = iota
	ModeDecrypt
)

// String returns the mode name.
func (m Mode) String() string {
	if m == ModeDecrypt {
		return "decrypt"
	}
	return "encrypt"
}

// ParseMode parses a mode name. The empty string defaults to encrypt.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "encrypt":
		return ModeEncrypt, nil
	case "decrypt":
		return ModeDecrypt, nil
	default:
		return ModeEncrypt, fmt.Errorf("unknown cipher mode: %q", s)
	}
}

// Cipher applies a classical substitution cipher to text.
//
// Implementations hold only immutable key material after construction, so a
// single instance is safe for concurrent use. Decrypt is the exact inverse
// of Encrypt for the same key over the A-Z alphabet.
type Cipher interface {
	// Apply transforms text in the given mode.
	Apply(text string, mode Mode) string
}

// CipherInfo provides metadata about a cipher
type CipherInfo interface {
	// Algorithm returns the cipher algorithm name
	Algorithm() string
	// Parallelizable reports whether disjoint substrings can be
	// transformed independently and concatenated in order.
	Parallelizable() bool
}

// OffsetCipher is implemented by position-dependent ciphers. ApplyAt
// transforms text as if it were preceded by phase alphabet letters of
// earlier input, so chunked transforms line up with the unsplit result.
type OffsetCipher interface {
	Cipher
	ApplyAt(text string, mode Mode, phase int) string
}

// InvalidKeyError reports a raw key string that failed the per-cipher
// validation rule. It is returned at construction time only.
type InvalidKeyError struct {
	Kind   Kind
	Reason string
}

func (e *InvalidKeyError) Error() string {
	return fmt.Sprintf("invalid %s key: %s", e.Kind, e.Reason)
}

// isLetter reports whether ch is an ASCII letter.
func isLetter(ch byte) bool {
	return (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z')
}

// shiftLetter shifts an ASCII letter forward by shift positions within A-Z,
// normalizing case to upper. Non-letter bytes pass through unchanged.
// shift must be in [0, 26).
func shiftLetter(ch byte, shift int) byte {
	switch {
	case ch >= 'A' && ch <= 'Z':
		return 'A' + (ch-'A'+byte(shift))%alphabetSize
	case ch >= 'a' && ch <= 'z':
		return 'A' + (ch-'a'+byte(shift))%alphabetSize
	default:
		return ch
	}
}

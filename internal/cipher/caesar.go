package cipher

import (
	"strconv"
	"strings"
)

// Caesar implements the Caesar shift cipher over A-Z.
type Caesar struct {
	shift int
}

// NewCaesar creates a Caesar cipher from an integer key string. Any integer
// is accepted; negative values and values beyond 26 wrap into [0, 26).
func NewCaesar(rawKey string) (*Caesar, error) {
	k, err := strconv.Atoi(strings.TrimSpace(rawKey))
	if err != nil {
		return nil, &InvalidKeyError{Kind: KindCaesar, Reason: "key must be an integer shift"}
	}
	return &Caesar{shift: ((k % alphabetSize) + alphabetSize) % alphabetSize}, nil
}

// Algorithm returns the cipher algorithm name
func (c *Caesar) Algorithm() string {
	return string(KindCaesar)
}

// Parallelizable reports that Caesar is chunk-independent: every letter is
// shifted by the same amount regardless of position.
func (c *Caesar) Parallelizable() bool {
	return true
}

// Apply shifts each letter forward by the key (encrypt) or backward
// (decrypt), wrapping within A-Z. Non-letter bytes pass through unchanged.
func (c *Caesar) Apply(text string, mode Mode) string {
	shift := c.shift
	if mode == ModeDecrypt {
		shift = (alphabetSize - shift) % alphabetSize
	}

	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		b.WriteByte(shiftLetter(text[i], shift))
	}
	return b.String()
}

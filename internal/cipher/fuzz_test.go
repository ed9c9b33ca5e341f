package cipher

import (
	"strconv"
	"strings"
	"testing"
)

// toAlphabet reduces arbitrary fuzz input to the A-Z working alphabet
func toAlphabet(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
			b.WriteByte(ch)
		case ch >= 'a' && ch <= 'z':
			b.WriteByte(ch - 'a' + 'A')
		}
	}
	return b.String()
}

// FuzzCaesarRoundTrip fuzzes Caesar encrypt/decrypt symmetry
func FuzzCaesarRoundTrip(f *testing.F) {
	f.Add("HELLO", 3)
	f.Add("", 0)
	f.Add("ATTACKATDAWN", -40)
	f.Add("ZZZZZZ", 77)

	f.Fuzz(func(t *testing.T, text string, shift int) {
		text = toAlphabet(text)

		c, err := NewCaesar(strconv.Itoa(shift))
		if err != nil {
			t.Fatalf("NewCaesar(%d) failed: %v", shift, err)
		}
		if got := c.Apply(c.Apply(text, ModeEncrypt), ModeDecrypt); got != text {
			t.Errorf("round-trip failed for shift %d: got %q, want %q", shift, got, text)
		}
	})
}

// FuzzVigenereRoundTrip fuzzes Vigenere encrypt/decrypt symmetry
func FuzzVigenereRoundTrip(f *testing.F) {
	f.Add("HELLO", "KEY")
	f.Add("ATTACKATDAWN", "LEMON")
	f.Add("", "A")

	f.Fuzz(func(t *testing.T, text string, key string) {
		text = toAlphabet(text)
		key = toAlphabet(key)
		if key == "" {
			return
		}

		v, err := NewVigenere(key)
		if err != nil {
			t.Fatalf("NewVigenere(%q) failed: %v", key, err)
		}
		if got := v.Apply(v.Apply(text, ModeEncrypt), ModeDecrypt); got != text {
			t.Errorf("round-trip failed for key %q: got %q, want %q", key, got, text)
		}
	})
}

// FuzzPlayfairRoundTrip fuzzes that decrypting a Playfair encryption yields
// the prepared plaintext (fillers included) and that re-encrypting the
// decryption reproduces the ciphertext
func FuzzPlayfairRoundTrip(f *testing.F) {
	f.Add("HIDETHEGOLDINTHETREESTUMP", "PLAYFAIREXAMPLE")
	f.Add("AA", "")
	f.Add("XXX", "MONARCHY")

	f.Fuzz(func(t *testing.T, text string, key string) {
		key = toAlphabet(key)

		p, err := NewPlayfair(key)
		if err != nil {
			t.Fatalf("NewPlayfair(%q) failed: %v", key, err)
		}

		encrypted := p.Apply(text, ModeEncrypt)
		if len(encrypted)%2 != 0 {
			t.Fatalf("ciphertext has odd length %d", len(encrypted))
		}
		decrypted := p.Apply(encrypted, ModeDecrypt)
		if got := p.Apply(decrypted, ModeEncrypt); got != encrypted {
			t.Errorf("re-encrypt of decryption = %q, want %q", got, encrypted)
		}
	})
}

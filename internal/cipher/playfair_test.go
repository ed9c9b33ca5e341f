package cipher

import (
	"errors"
	"strings"
	"testing"
)

// TestPlayfairClassicVector tests the textbook Playfair example
func TestPlayfairClassicVector(t *testing.T) {
	p, err := NewPlayfair("PLAYFAIREXAMPLE")
	if err != nil {
		t.Fatalf("NewPlayfair failed: %v", err)
	}

	plain := "HIDETHEGOLDINTHETREESTUMP"
	want := "BMODZBXDNABEKUDMUIXMMOUVIF"
	got := p.Apply(plain, ModeEncrypt)
	if got != want {
		t.Errorf("encrypt = %q, want %q", got, want)
	}

	// Decrypt restores the text with the inserted filler left in place.
	back := p.Apply(want, ModeDecrypt)
	if back != "HIDETHEGOLDINTHETREXESTUMP" {
		t.Errorf("decrypt = %q, want %q", back, "HIDETHEGOLDINTHETREXESTUMP")
	}
}

// TestPlayfairDigraphRules tests each of the three substitution rules
func TestPlayfairDigraphRules(t *testing.T) {
	// Plain alphabet grid (empty keyword):
	//   A B C D E
	//   F G H I K
	//   L M N O P
	//   Q R S T U
	//   V W X Y Z
	p, err := NewPlayfair("")
	if err != nil {
		t.Fatalf("NewPlayfair failed: %v", err)
	}

	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"same row shifts right with wrap", "AE", "BA"},
		{"same column shifts down with wrap", "AV", "FA"},
		{"rectangle swaps columns", "AG", "BF"},
		{"J merges into I", "JK", "KF"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := p.Apply(tc.in, ModeEncrypt)
			if got != tc.want {
				t.Errorf("encrypt(%q) = %q, want %q", tc.in, got, tc.want)
			}
			if back := p.Apply(tc.want, ModeDecrypt); back != strings.ReplaceAll(tc.in, "J", "I") {
				t.Errorf("decrypt(%q) = %q, want %q", tc.want, back, tc.in)
			}
		})
	}
}

// TestPlayfairFillerInsertion tests identical-pair splitting and odd padding
func TestPlayfairFillerInsertion(t *testing.T) {
	p, err := NewPlayfair("")
	if err != nil {
		t.Fatalf("NewPlayfair failed: %v", err)
	}

	// Identical pair: two letters in, filler inserted, padded to four out.
	if got := p.Apply("AA", ModeEncrypt); len(got) != 4 {
		t.Errorf("encrypt(\"AA\") produced %d letters (%q), want 4", len(got), got)
	}

	// Odd-length input pads to even output.
	if got := p.Apply("ABC", ModeEncrypt); len(got)%2 != 0 {
		t.Errorf("encrypt(\"ABC\") produced odd length %d (%q)", len(got), got)
	}

	// A double X is broken with the alternate filler, not another X.
	got := p.Apply("XX", ModeEncrypt)
	if len(got) != 4 {
		t.Errorf("encrypt(\"XX\") produced %d letters (%q), want 4", len(got), got)
	}
	if back := p.Apply(got, ModeDecrypt); back != "XQXQ" {
		t.Errorf("decrypt round-trip of \"XX\" = %q, want %q", back, "XQXQ")
	}
}

// TestPlayfairKeywordDedup verifies duplicate keyword letters are dropped
func TestPlayfairKeywordDedup(t *testing.T) {
	dedup, err := NewPlayfair("BALLOON")
	if err != nil {
		t.Fatalf("NewPlayfair failed: %v", err)
	}
	plain, err := NewPlayfair("BALON")
	if err != nil {
		t.Fatalf("NewPlayfair failed: %v", err)
	}

	text := "THEQUICKBROWNFOX"
	if dedup.Apply(text, ModeEncrypt) != plain.Apply(text, ModeEncrypt) {
		t.Error("keywords BALLOON and BALON should seed identical grids")
	}
}

// TestPlayfairInvalidKey tests key validation at construction
func TestPlayfairInvalidKey(t *testing.T) {
	for _, key := range []string{"KEY1", "KEY!", "K Y"} {
		t.Run(key, func(t *testing.T) {
			_, err := NewPlayfair(key)
			if err == nil {
				t.Fatalf("NewPlayfair(%q) succeeded, want error", key)
			}
			var invalidKey *InvalidKeyError
			if !errors.As(err, &invalidKey) {
				t.Errorf("error is %T, want *InvalidKeyError", err)
			}
		})
	}
}

// TestPlayfairRoundTrip verifies decrypt(encrypt(text)) == text for inputs
// that need no filler
func TestPlayfairRoundTrip(t *testing.T) {
	for _, key := range []string{"", "MONARCHY", "PLAYFAIREXAMPLE"} {
		p, err := NewPlayfair(key)
		if err != nil {
			t.Fatalf("NewPlayfair(%q) failed: %v", key, err)
		}
		// Even length, no identical pairs, no J.
		text := "THEQUICKBROWN"
		text += "S" // make even: 14 letters
		if got := p.Apply(p.Apply(text, ModeEncrypt), ModeDecrypt); got != text {
			t.Errorf("key %q: round-trip = %q, want %q", key, got, text)
		}
	}
}

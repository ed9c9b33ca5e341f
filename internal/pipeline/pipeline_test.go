package pipeline

import (
	"strings"
	"testing"

	"github.com/classic-cipher-go/internal/cipher"
)

// TestSplitRoundTrip verifies that concatenating chunks in index order
// reconstructs the input exactly for any worker count
func TestSplitRoundTrip(t *testing.T) {
	texts := []string{
		"",
		"A",
		"HELLOWORLD",
		strings.Repeat("ABCDEFGHIJKLMNOPQRSTUVWXYZ", 7),
		"HE LLO, WORLD!",
	}

	for _, text := range texts {
		for n := 1; n <= 8; n++ {
			chunks := Split(text, n)
			var b strings.Builder
			for i, ch := range chunks {
				if ch.Index != i {
					t.Errorf("chunk %d carries index %d", i, ch.Index)
				}
				b.WriteString(ch.Text)
			}
			if b.String() != text {
				t.Errorf("Split(%q, %d): concatenation = %q, want original", text, n, b.String())
			}
		}
	}
}

// TestSplitChunkSizes tests the remainder policy: equal chunks of len/n,
// last chunk absorbs the rest
func TestSplitChunkSizes(t *testing.T) {
	chunks := Split("ABCDEFGHIJ", 4)
	wantSizes := []int{2, 2, 2, 4}
	if len(chunks) != len(wantSizes) {
		t.Fatalf("got %d chunks, want %d", len(chunks), len(wantSizes))
	}
	for i, want := range wantSizes {
		if len(chunks[i].Text) != want {
			t.Errorf("chunk %d has size %d, want %d", i, len(chunks[i].Text), want)
		}
	}
}

// TestSplitShortInput tests that more workers than characters yields a
// single chunk instead of empty ones
func TestSplitShortInput(t *testing.T) {
	chunks := Split("AB", 4)
	if len(chunks) != 1 || chunks[0].Text != "AB" {
		t.Errorf("Split(\"AB\", 4) = %+v, want one chunk holding the whole text", chunks)
	}
}

// TestSplitPhase verifies the letter-phase bookkeeping used by
// position-dependent ciphers
func TestSplitPhase(t *testing.T) {
	chunks := Split("AB CD EF GH IJ KL", 3)
	for _, ch := range chunks {
		want := countLetters("AB CD EF GH IJ KL"[:ch.Start])
		if ch.Phase != want {
			t.Errorf("chunk %d phase = %d, want %d", ch.Index, ch.Phase, want)
		}
	}
}

// TestNewRejectsBadWorkerCount tests configuration validation
func TestNewRejectsBadWorkerCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		if _, err := New(n); err == nil {
			t.Errorf("New(%d) succeeded, want error", n)
		}
	}
	if p, err := New(4); err != nil || p.Workers() != 4 {
		t.Errorf("New(4) = (%v, %v), want 4 workers", p, err)
	}
}

// TestTransformCaesar tests concurrent transform against the sequential
// result for a chunk-independent cipher
func TestTransformCaesar(t *testing.T) {
	c, err := cipher.New(cipher.KindCaesar, "3")
	if err != nil {
		t.Fatalf("cipher.New failed: %v", err)
	}
	p, err := New(4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if got := p.Transform(c, cipher.ModeEncrypt, "HELLO"); got != "KHOOR" {
		t.Errorf("Transform = %q, want %q", got, "KHOOR")
	}
	if got := p.Transform(c, cipher.ModeDecrypt, "KHOOR"); got != "HELLO" {
		t.Errorf("Transform = %q, want %q", got, "HELLO")
	}

	text := strings.Repeat("ATTACKATDAWN", 50)
	if got := p.Transform(c, cipher.ModeEncrypt, text); got != c.Apply(text, cipher.ModeEncrypt) {
		t.Error("chunked Caesar transform differs from unsplit transform")
	}
}

// TestTransformVigenereMatchesUnsplit verifies that chunking a
// position-dependent cipher matches the unsplit result for every worker
// count, including counts that do not align with the keyword period
func TestTransformVigenereMatchesUnsplit(t *testing.T) {
	v, err := cipher.New(cipher.KindVigenere, "LEMON")
	if err != nil {
		t.Fatalf("cipher.New failed: %v", err)
	}

	text := strings.Repeat("THEQUICKBROWNFOXJUMPSOVERTHELAZYDOG", 11)
	want := v.Apply(text, cipher.ModeEncrypt)

	for workers := 1; workers <= 9; workers++ {
		p, err := New(workers)
		if err != nil {
			t.Fatalf("New(%d) failed: %v", workers, err)
		}
		if got := p.Transform(v, cipher.ModeEncrypt, text); got != want {
			t.Errorf("workers=%d: chunked Vigenere differs from unsplit transform", workers)
		}
		if got := p.Transform(v, cipher.ModeDecrypt, want); got != text {
			t.Errorf("workers=%d: decrypt round-trip failed", workers)
		}
	}
}

// TestTransformPlayfairSingleChunk verifies that a non-parallelizable
// cipher produces whole-stream output regardless of worker count
func TestTransformPlayfairSingleChunk(t *testing.T) {
	pf, err := cipher.New(cipher.KindPlayfair, "PLAYFAIREXAMPLE")
	if err != nil {
		t.Fatalf("cipher.New failed: %v", err)
	}

	text := "HIDETHEGOLDINTHETREESTUMP"
	want := pf.Apply(text, cipher.ModeEncrypt)

	p, err := New(4)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if got := p.Transform(pf, cipher.ModeEncrypt, text); got != want {
		t.Errorf("Transform = %q, want unsplit result %q", got, want)
	}
}

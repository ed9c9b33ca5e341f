package cipher

// Playfair implements the 5x5 key-square digraph cipher. J is merged into I,
// so the grid holds the remaining 25 letters.
type Playfair struct {
	grid [25]byte
	pos  [26]int8 // letter index -> grid cell; J shares I's cell
}

// NewPlayfair creates a Playfair cipher seeded by a keyword. Duplicate
// keyword letters are dropped after first occurrence, then the grid is
// filled with the remaining alphabet in order. Any non-letter in the
// keyword makes the grid unseedable. An empty keyword yields the plain
// alphabet grid.
func NewPlayfair(rawKey string) (*Playfair, error) {
	p := &Playfair{}
	for i := range p.pos {
		p.pos[i] = -1
	}

	n := 0
	seed := func(ch byte) {
		if p.pos[ch-'A'] < 0 {
			p.grid[n] = ch
			p.pos[ch-'A'] = int8(n)
			n++
		}
	}

	for i := 0; i < len(rawKey); i++ {
		ch := rawKey[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
		case ch >= 'a' && ch <= 'z':
			ch -= 'a' - 'A'
		default:
			return nil, &InvalidKeyError{
				Kind:   KindPlayfair,
				Reason: "key must contain only letters to seed the 5x5 grid",
			}
		}
		if ch == 'J' {
			ch = 'I'
		}
		seed(ch)
	}
	for ch := byte('A'); ch <= 'Z'; ch++ {
		if ch != 'J' {
			seed(ch)
		}
	}
	p.pos['J'-'A'] = p.pos['I'-'A']

	return p, nil
}

// Algorithm returns the cipher algorithm name
func (p *Playfair) Algorithm() string {
	return string(KindPlayfair)
}

// Parallelizable reports that Playfair cannot be chunked: digraph
// boundaries and filler insertion depend on the whole stream.
func (p *Playfair) Parallelizable() bool {
	return false
}

// fillerFor picks the letter inserted to break an identical pair or pad an
// odd-length tail. X is the filler, Q when the letter itself is X.
func fillerFor(ch byte) byte {
	if ch == 'X' {
		return 'Q'
	}
	return 'X'
}

// Apply transforms text digraph by digraph. Input is reduced to the 25
// letter grid alphabet first: case is normalized, J becomes I, and
// non-letter bytes are dropped. Identical pairs are split by a filler and
// an odd tail is padded, so output length can exceed input length; decrypt
// does not strip fillers it cannot tell apart from content.
func (p *Playfair) Apply(text string, mode Mode) string {
	prepared := make([]byte, 0, len(text)+2)
	for i := 0; i < len(text); i++ {
		ch := text[i]
		switch {
		case ch >= 'A' && ch <= 'Z':
		case ch >= 'a' && ch <= 'z':
			ch -= 'a' - 'A'
		default:
			continue
		}
		if ch == 'J' {
			ch = 'I'
		}
		if len(prepared)%2 == 1 && prepared[len(prepared)-1] == ch {
			prepared = append(prepared, fillerFor(ch))
		}
		prepared = append(prepared, ch)
	}
	if len(prepared)%2 == 1 {
		prepared = append(prepared, fillerFor(prepared[len(prepared)-1]))
	}

	// Shift by +1 to encrypt, +4 (== -1 mod 5) to decrypt.
	step := 1
	if mode == ModeDecrypt {
		step = 4
	}

	out := make([]byte, len(prepared))
	for i := 0; i < len(prepared); i += 2 {
		a := int(p.pos[prepared[i]-'A'])
		b := int(p.pos[prepared[i+1]-'A'])
		rowA, colA := a/5, a%5
		rowB, colB := b/5, b%5

		switch {
		case rowA == rowB:
			out[i] = p.grid[rowA*5+(colA+step)%5]
			out[i+1] = p.grid[rowB*5+(colB+step)%5]
		case colA == colB:
			out[i] = p.grid[((rowA+step)%5)*5+colA]
			out[i+1] = p.grid[((rowB+step)%5)*5+colB]
		default:
			out[i] = p.grid[rowA*5+colB]
			out[i+1] = p.grid[rowB*5+colA]
		}
	}
	return string(out)
}

package model

// Pair is an unordered pair of players in canonical (sorted) form.
// NewPair(a, b) == NewPair(b, a), so Pair is safe to use as a map key.
type Pair struct {
	Low  PlayerID
	High PlayerID
}

// NewPair builds the canonical pair for a and b
func NewPair(a, b PlayerID) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{Low: a, High: b}
}


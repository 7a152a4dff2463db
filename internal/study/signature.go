package study

import "github.com/vytor/ladderflash/internal/models"

// Signature is the ordered list of card ids in a queue. Content, levels
// and active level are deliberately excluded: two queues with the same
// signature are the same session.
type Signature []string

// SignatureOf builds the signature of cards.
func SignatureOf(cards []models.Card) Signature {
	sig := make(Signature, len(cards))
	for i, c := range cards {
		sig[i] = c.ID
	}
	return sig
}

// Equal reports equal length and equal ids at every position.
func (s Signature) Equal(other Signature) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

func (s Signature) Empty() bool {
	return len(s) == 0
}

// needsReset decides whether moving from prev to next discards the cursor.
func needsReset(prev, next Signature) bool {
	if prev.Empty() {
		return !next.Empty()
	}
	return !prev.Equal(next)
}

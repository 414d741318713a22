package mines

import (
	"hash/maphash"
	"math/rand/v2"
)

// Source draws mine positions. [*rand.Rand] satisfies it.
type Source interface {
	// IntN returns a value in [0, n).
	IntN(n int) int
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// neighbours calls fn with the linear index of every cell in the Moore
// neighbourhood of (row, col), clamped to the field.
func (p Params) neighbours(row, col int, fn func(i int)) {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			r, c := row+dr, col+dc
			if p.Contains(r, c) {
				fn(r*p.Width + c)
			}
		}
	}
}

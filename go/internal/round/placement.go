package round

import (
	"math/rand/v2"
)

// Placer draws target positions so the whole target stays on the board
type Placer struct {
	span float64
	rng  *rand.Rand
}

// NewPlacer creates a placer for a square board and square target
func NewPlacer(boardSize, targetSize float64, rng *rand.Rand) *Placer {
	span := boardSize - targetSize
	if span < 0 {
		span = 0
	}
	return &Placer{span: span, rng: rng}
}

// Next returns a top-left corner with both axes uniform in [0, boardSize-targetSize].
// Consecutive draws may repeat.
func (p *Placer) Next() Point {
	return Point{
		X: p.rng.Float64() * p.span,
		Y: p.rng.Float64() * p.span,
	}
}

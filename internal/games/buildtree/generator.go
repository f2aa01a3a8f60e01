package buildtree

import (
	"errors"
	"math/rand"
)

// ErrRangeExhausted is returned by Generator.Next once every value in the
// range has been produced.
var ErrRangeExhausted = errors.New("buildtree: value range exhausted")

// Generator draws the numbers to place, never repeating a value within
// one game.
type Generator struct {
	rng     *rand.Rand
	min     int // inclusive
	max     int // exclusive
	history []int
	seen    map[int]struct{}
}

// NewGenerator creates a generator over [min, max).
func NewGenerator(seed int64, min, max int) *Generator {
	return &Generator{
		rng:  rand.New(rand.NewSource(seed)),
		min:  min,
		max:  max,
		seen: make(map[int]struct{}),
	}
}

// Next draws min + uniform(0, max-min-1), redrawing while the candidate is
// already in the history, records it and returns it.
func (g *Generator) Next() (int, error) {
	span := g.max - g.min
	if span <= 0 || len(g.history) >= span {
		return 0, ErrRangeExhausted
	}

	for {
		v := g.min + g.rng.Intn(span)
		if _, dup := g.seen[v]; dup {
			continue
		}
		g.seen[v] = struct{}{}
		g.history = append(g.history, v)
		return v, nil
	}
}

// History returns a copy of the values produced so far, oldest first.
func (g *Generator) History() []int {
	out := make([]int, len(g.history))
	copy(out, g.history)
	return out
}

// Len returns how many values have been produced.
func (g *Generator) Len() int {
	return len(g.history)
}

// Remaining returns how many distinct values are left.
func (g *Generator) Remaining() int {
	return max(g.max-g.min-len(g.history), 0)
}

// Reset clears the history. The random stream continues.
func (g *Generator) Reset() {
	g.history = g.history[:0]
	clear(g.seen)
}

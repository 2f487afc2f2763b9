package equity

import (
	"math"

	"github.com/domino14/quoridor/game"
	"github.com/domino14/quoridor/search"
)

// PathCalculator scores a state by the difference in shortest path
// lengths plus a term for the walls each side still holds.
type PathCalculator struct {
	weight int
	// wallValue[self][opp] is the worth of holding self walls while the
	// opponent holds opp.
	wallValue [game.InitialWalls + 1][game.InitialWalls + 1]int
}

func NewPathCalculator(distanceWeight int) *PathCalculator {
	c := &PathCalculator{weight: distanceWeight}
	for self := range c.wallValue {
		for opp := range c.wallValue[self] {
			c.wallValue[self][opp] = wallTerm(self, opp)
		}
	}
	return c
}

// wallTerm grows with the walls in hand and saturates once the opponent
// holds a handful. Holding none is a penalty.
func wallTerm(self, opp int) int {
	s, o := float64(self), float64(opp)
	return int(math.Tanh(o*0.3) * (1.2*s - 4/(s+0.3)) * 100000)
}

func (c *PathCalculator) Evaluate(s game.State) int {
	if s.Lost() {
		return -search.Infinity
	}
	mine, theirs, ok := s.Distances()
	if !ok {
		// Only hand-built states get here.
		return search.Infinity
	}
	return (theirs-mine)*c.weight +
		c.wallValue[s.MyWalls][s.OpponentWalls] -
		c.wallValue[s.OpponentWalls][s.MyWalls]
}

// DistanceCalculator only counts path lengths.
type DistanceCalculator struct {
	weight int
}

func NewDistanceCalculator(distanceWeight int) *DistanceCalculator {
	return &DistanceCalculator{weight: distanceWeight}
}

func (c *DistanceCalculator) Evaluate(s game.State) int {
	if s.Lost() {
		return -search.Infinity
	}
	mine, theirs, ok := s.Distances()
	if !ok {
		return search.Infinity
	}
	return (theirs - mine) * c.weight
}

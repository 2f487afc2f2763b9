// Package testgames holds small games for exercising the searcher.
package testgames

import (
	"fmt"

	"github.com/domino14/quoridor/search"
)

// NimState is three heaps. The player who cannot move loses.
type NimState [3]int8

// NimMove removes Take objects from heap Heap.
type NimMove struct {
	Heap, Take int8
}

func (m NimMove) String() string {
	return fmt.Sprintf("<%d; %d>", m.Heap, m.Take)
}

type Nim struct{}

func (Nim) Expand(s NimState, buf []search.Child[NimState, NimMove]) []search.Child[NimState, NimMove] {
	for h := int8(0); h < 3; h++ {
		for t := int8(1); t <= s[h]; t++ {
			next := s
			next[h] -= t
			buf = append(buf, search.Child[NimState, NimMove]{Move: NimMove{h, t}, State: next})
		}
	}
	return buf
}

func (Nim) Apply(s NimState, m NimMove) (NimState, bool) {
	if m.Heap < 0 || m.Heap > 2 || m.Take < 1 || m.Take > s[m.Heap] {
		return NimState{}, false
	}
	s[m.Heap] -= m.Take
	return s, true
}

// NimEval scores a heap set by its nim-sum; the empty position is lost
// for the side to move.
func NimEval(s NimState) int {
	if s == (NimState{}) {
		return -search.Infinity
	}
	return -int(s[0] ^ s[1] ^ s[2])
}

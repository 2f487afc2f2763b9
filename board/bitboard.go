package board

import (
	"math/bits"
	"strings"
)

// BitBoard is a 128-bit cell set.
//
// Layout: every column x in [-1, 9] owns a 10-bit lane holding rows
// y = -1 .. 8, so bit(x, y) = 25 + 10x + y. Column -1 starts at bit 14
// and column 4 starts exactly at bit 64, so no lane straddles the two
// words. Row shifts are single-bit shifts inside a lane; column shifts are
// 10-bit shifts that carry from the low word into the high word.
//
//	word 0: lanes -1..3 (bits 14..63)
//	word 1: lanes  4..9 (bits 64..123)
type BitBoard [2]uint64

const (
	bitsPerColumn = 10
	bitOffset     = 25
)

func bitIndex(p Position) uint {
	return uint(bitOffset + bitsPerColumn*int(p.X) + int(p.Y))
}

// positionOf inverts bitIndex for any bit inside a lane.
func positionOf(i uint) Position {
	// Shift by one lane so the lane base is non-negative before dividing.
	j := int(i) - bitOffset + bitsPerColumn + 1
	x := j/bitsPerColumn - 1
	y := j%bitsPerColumn - 1
	return Position{int8(x), int8(y)}
}

// OneHot returns the set holding only p.
func OneHot(p Position) BitBoard {
	var b BitBoard
	b.Set(p)
	return b
}

// At reports whether p is in the set. p must satisfy -1 <= x <= 9 and
// -1 <= y <= 8.
func (b BitBoard) At(p Position) bool {
	i := bitIndex(p)
	return b[i>>6]>>(i&63)&1 == 1
}

func (b *BitBoard) Set(p Position) {
	i := bitIndex(p)
	b[i>>6] |= 1 << (i & 63)
}

func (b *BitBoard) Clear(p Position) {
	i := bitIndex(p)
	b[i>>6] &^= 1 << (i & 63)
}

func (b BitBoard) And(o BitBoard) BitBoard {
	return BitBoard{b[0] & o[0], b[1] & o[1]}
}

func (b BitBoard) Or(o BitBoard) BitBoard {
	return BitBoard{b[0] | o[0], b[1] | o[1]}
}

func (b BitBoard) Xor(o BitBoard) BitBoard {
	return BitBoard{b[0] ^ o[0], b[1] ^ o[1]}
}

func (b BitBoard) AndNot(o BitBoard) BitBoard {
	return BitBoard{b[0] &^ o[0], b[1] &^ o[1]}
}

func (b BitBoard) Not() BitBoard {
	return BitBoard{^b[0], ^b[1]}
}

func (b BitBoard) IsEmpty() bool {
	return b[0]|b[1] == 0
}

func (b BitBoard) Count() int {
	return bits.OnesCount64(b[0]) + bits.OnesCount64(b[1])
}

// ShiftDown moves every cell n rows down (y+n).
func (b BitBoard) ShiftDown(n uint) BitBoard {
	return BitBoard{b[0] << n, b[1] << n}
}

// ShiftUp moves every cell n rows up (y-n).
func (b BitBoard) ShiftUp(n uint) BitBoard {
	return BitBoard{b[0] >> n, b[1] >> n}
}

// ShiftRight moves every cell n columns right (x+n). n must be 1..6.
func (b BitBoard) ShiftRight(n uint) BitBoard {
	s := bitsPerColumn * n
	return BitBoard{b[0] << s, b[1]<<s | b[0]>>(64-s)}
}

// ShiftLeft moves every cell n columns left (x-n). n must be 1..6.
func (b BitBoard) ShiftLeft(n uint) BitBoard {
	s := bitsPerColumn * n
	return BitBoard{b[0]>>s | b[1]<<(64-s), b[1] >> s}
}

// ParaAdd adds the two words independently; carries never cross from the
// low word into the high word.
func (b BitBoard) ParaAdd(o BitBoard) BitBoard {
	return BitBoard{b[0] + o[0], b[1] + o[1]}
}

func (b BitBoard) ParaSub(o BitBoard) BitBoard {
	return BitBoard{b[0] - o[0], b[1] - o[1]}
}

// Reverse maps bit i to bit 127-i. Under the lane layout this takes
// (x, y) to (7-x, 7-y), which is the point reflection of a wall board.
// Cell boards are reflected with ShiftRight(1).ShiftDown(1) afterwards.
func (b BitBoard) Reverse() BitBoard {
	return BitBoard{bits.Reverse64(b[1]), bits.Reverse64(b[0])}
}

// ForEach calls fn for every cell in the set in increasing bit order.
func (b BitBoard) ForEach(fn func(Position)) {
	for w := uint(0); w < 2; w++ {
		word := b[w]
		for word != 0 {
			i := uint(bits.TrailingZeros64(word))
			fn(positionOf(w<<6 | i))
			word &= word - 1
		}
	}
}

// String draws rows -1..8 of columns -1..9, '#' for a set bit.
func (b BitBoard) String() string {
	var sb strings.Builder
	for y := int8(-1); y < Size; y++ {
		for x := int8(-1); x <= Size; x++ {
			if b.At(Position{x, y}) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

package search

const noMove = -1

// BestPath remembers the principal variation as child indices. Row ply of
// the working table holds the best line found below the node currently
// being searched at that ply; row 0 is the whole line once a search
// completes. Commit snapshots row 0 so the next, deeper search can read
// its hints without them being overwritten.
type BestPath struct {
	table [MaxDepth][MaxDepth]int32
	line  [MaxDepth]int32
	valid int
}

// Reset forgets the committed line.
func (b *BestPath) Reset() {
	b.valid = 0
}

// Line is the committed line, one child index per ply.
func (b *BestPath) Line() []int32 {
	return b.line[:b.valid]
}

func (b *BestPath) hint(ply int) int {
	if ply < b.valid {
		return int(b.line[ply])
	}
	return noMove
}

// record makes idx the best move at ply and pulls up the continuation
// found below it.
func (b *BestPath) record(ply, idx, depth int) {
	b.table[ply][ply] = int32(idx)
	copy(b.table[ply][ply+1:depth], b.table[ply+1][ply+1:depth])
}

// clear marks ply as having no continuation.
func (b *BestPath) clear(ply, depth int) {
	for i := ply; i < depth; i++ {
		b.table[ply][i] = noMove
	}
}

func (b *BestPath) commit(depth int) {
	copy(b.line[:depth], b.table[0][:depth])
	b.valid = depth
}

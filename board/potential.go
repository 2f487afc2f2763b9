package board

// Unreachable is returned by PotentialSearch when no path exists.
const Unreachable = -1

// PotentialSearch runs a weighted flood fill from start until it touches
// goal and returns the accumulated potential.
//
// hFull has bit p set when the step p -> p+(0,1) is blocked; vFull has bit
// p set when the step p -> p+(1,0) is blocked. Moving down is free,
// sideways costs 1 and up costs 2, so for a path of length L that ends dy
// rows below where it started the result is L - dy. Callers add the row
// difference back to get a step count.
//
// Every round first grows the frontier sideways and upward, then slides
// every column down through open edges with a single carry chain. The
// frontier only grows, so if a round leaves it equal to the frontier of
// two rounds ago nothing new can be reached.
func PotentialSearch(hFull, vFull, start, goal BitBoard) int {
	open := hFull.Not()
	toLeft := vFull.Not()
	toRight := vFull.ShiftRight(1).Not()

	var frontier [3]BitBoard
	cur, prev, next := 0, 1, 2
	frontier[cur] = pullDown(start, hFull, open)

	for cost := 0; ; cost++ {
		f := frontier[cur]
		if !f.And(goal).IsEmpty() {
			return cost
		}
		grown := f.
			Or(f.ShiftLeft(1).And(toLeft)).
			Or(f.ShiftRight(1).And(toRight)).
			Or(frontier[prev].ShiftUp(1).And(open))
		frontier[next] = pullDown(grown, hFull, open)
		if frontier[next] == frontier[prev] {
			return Unreachable
		}
		cur, prev, next = next, cur, prev
	}
}

// pullDown extends every cell of b downward until the first blocked edge.
// Adding the open mask to the masked seeds makes each seed's carry run
// through the open cells below it and stop at the first wall bit; the
// xor with hFull then keeps exactly the cells the carry cleared.
func pullDown(b, hFull, open BitBoard) BitBoard {
	return b.And(open).ParaAdd(open).Not().Xor(hFull).Or(b)
}

package board

// WallSize is the number of wall anchor positions per side.
const WallSize = Size - 1

var (
	// MyGoal is the goal row of the side to move.
	MyGoal = rowMask(0)
	// OpponentGoal is the goal row of the side waiting to move.
	OpponentGoal = rowMask(Size - 1)
	// Cells covers the playable 9x9 area.
	Cells = rectMask(0, 0, Size, Size)
	// WallAnchors covers every anchor a wall may occupy.
	WallAnchors = rectMask(0, 0, WallSize, WallSize)

	// GuardHWalls blocks the top and bottom edges. A horizontal wall at
	// (x, -1) and (x-1, -1) shows up in the full mask of every column 0..8.
	GuardHWalls = rectMask(0, -1, WallSize, 1).Or(rectMask(0, WallSize, WallSize, 1))
	// GuardVWalls blocks the left and right edges.
	GuardVWalls = rectMask(-1, 0, 1, WallSize).Or(rectMask(WallSize, 0, 1, WallSize))
)

func rowMask(y int8) BitBoard {
	return rectMask(0, y, Size, 1)
}

func rectMask(x0, y0, w, h int8) BitBoard {
	var b BitBoard
	for x := x0; x < x0+w; x++ {
		for y := y0; y < y0+h; y++ {
			b.Set(Position{x, y})
		}
	}
	return b
}

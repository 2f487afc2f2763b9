package testgames

import (
	"encoding/binary"

	"github.com/cespare/xxhash"

	"github.com/domino14/quoridor/search"
)

// TreeNode is a node of an unbounded pseudo-random game tree. Its shape
// and static scores are derived from the node id alone.
type TreeNode uint64

// Tree has between one and four children per node and static scores in
// [-100, 100], with about one node in thirty decided.
type Tree struct{}

func (n TreeNode) digest(salt uint64) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[:8], uint64(n))
	binary.LittleEndian.PutUint64(buf[8:], salt)
	return xxhash.Sum64(buf[:])
}

func (n TreeNode) width() int {
	return 1 + int(n.digest(0)%4)
}

func (Tree) Expand(n TreeNode, buf []search.Child[TreeNode, int]) []search.Child[TreeNode, int] {
	if search.IsTerminal(TreeEval(n)) {
		return buf
	}
	for i := 0; i < n.width(); i++ {
		buf = append(buf, search.Child[TreeNode, int]{Move: i, State: TreeNode(n.digest(uint64(i) + 1))})
	}
	return buf
}

func (Tree) Apply(n TreeNode, m int) (TreeNode, bool) {
	if m < 0 || m >= n.width() || search.IsTerminal(TreeEval(n)) {
		return 0, false
	}
	return TreeNode(n.digest(uint64(m) + 1)), true
}

func TreeEval(n TreeNode) int {
	h := n.digest(1 << 32)
	switch h % 61 {
	case 0:
		return search.Infinity
	case 1:
		return -search.Infinity
	}
	return int(h>>8%201) - 100
}

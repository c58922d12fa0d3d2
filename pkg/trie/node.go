package trie

import (
	"golang.org/x/exp/slices"

	"github.com/bastiangx/fldic/pkg/unitext"
)

// WordEntry is the payload carried at a terminal trie node.
// AbsoluteScore of 0 means "structural node, not an accepted word" unless
// the entry was inserted explicitly.
type WordEntry struct {
	AbsoluteScore       uint32
	IsPossiblyOffensive bool
	IsHiddenByUser      bool
}

// index is a 32-bit arena-relative node reference. Using an index instead of
// a pointer keeps the arena contiguous and avoids a deep recursive
// destructor chain on large dictionaries.
type index int32

const noChild index = -1

// edge is one entry of a node's branch table: the code point that selects
// it and the arena index of the child it leads to.
type edge struct {
	codePoint rune
	child     index
}

// node is one trie node. edges is kept sorted ascending by codePoint so
// that iteration (ForEach) visits children in code-point order without a
// separate sort step.
type node struct {
	edges      []edge
	payload    *WordEntry
	isTerminal bool
}

// findEdge returns the index into n.edges for codePoint, and whether it was
// found, via a binary search over the sorted branch table.
func (n *node) findEdge(codePoint rune) (int, bool) {
	return slices.BinarySearchFunc(n.edges, codePoint, func(e edge, cp rune) int {
		return int(e.codePoint) - int(cp)
	})
}

// childFor returns the arena index of the child reached via codePoint, or
// noChild if no such edge exists.
func (n *node) childFor(codePoint rune) index {
	if i, ok := n.findEdge(codePoint); ok {
		return n.edges[i].child
	}
	return noChild
}

// insertEdge inserts an edge to child keyed by codePoint, keeping edges
// sorted ascending. It is a no-op if the edge already exists.
func (n *node) insertEdge(codePoint rune, child index) {
	i, ok := n.findEdge(codePoint)
	if ok {
		return
	}
	n.edges = slices.Insert(n.edges, i, edge{codePoint: codePoint, child: child})
}

// ngramSeparator is the reserved branch key linking a word's terminal node
// to the root of a following word's sub-trie.
const ngramSeparator = unitext.NgramSeparator

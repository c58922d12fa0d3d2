package trie

// Cursor is a read-only position in a Trie's node arena. It lets a caller
// drive its own traversal order and pruning logic — the fuzzy search engine
// needs exactly this: a DFS that descends into children in
// code-point order but backtracks early when a cost bound is exceeded,
// which ForEach's fixed pre-order walk can't express.
type Cursor struct {
	t *Trie
	i index
}

// Root returns a cursor at t's root node.
func (t *Trie) Root() Cursor {
	return Cursor{t: t, i: rootIndex}
}

// IsTerminal reports whether c's node is a terminal word node.
func (c Cursor) IsTerminal() bool {
	return c.t.nodes[c.i].isTerminal
}

// Payload returns the WordEntry at c's node, or nil if none is set.
func (c Cursor) Payload() *WordEntry {
	return c.t.nodes[c.i].payload
}

// ForEachChild visits c's children in code-point ascending order, skipping
// the reserved n-gram-separator edge. visit returning false stops the
// iteration early.
func (c Cursor) ForEachChild(visit func(codePoint rune, next Cursor) bool) {
	for _, e := range c.t.nodes[c.i].edges {
		if e.codePoint == ngramSeparator {
			continue
		}
		if !visit(e.codePoint, Cursor{t: c.t, i: e.child}) {
			return
		}
	}
}

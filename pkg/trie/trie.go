/*
Package trie implements the compact character-trie at the core of fldic's
dictionary: an ordered-branch node arena storing unigram
(and, structurally, n-gram) entries keyed by code point, with insertion,
lookup, removal and deterministic in-order iteration.

Each trie owns its node graph exclusively — there is no node sharing, so
the trie is a tree and a node is uniquely identified by the path of code
points from the root. Nodes live in a single growable arena (a slice) and
reference each other by 32-bit index rather than pointer, trading a small
amount of indirection for cache locality and for avoiding a deep recursive
destructor chain on large dictionaries.
*/
package trie

import (
	"errors"

	"github.com/bastiangx/fldic/pkg/unitext"
)

// ErrReservedCodePoint is returned when a key contains the reserved n-gram
// separator code point.
var ErrReservedCodePoint = errors.New("trie: key contains reserved code point")

// Trie is the node arena and root reference.
type Trie struct {
	nodes []node
}

const rootIndex index = 0

// New returns an empty trie containing only its root node.
func New() *Trie {
	return &Trie{nodes: []node{{edges: nil}}}
}

// Insert resolves or creates the path for key and marks its terminal node,
// returning a pointer to its WordEntry. Existing scores are preserved: if
// the node already carries a payload, it is returned unmodified.
//
// An empty key is a no-op that returns the root's payload slot without
// marking the root terminal. A key containing the reserved
// n-gram separator is rejected.
func (t *Trie) Insert(key unitext.UniString) (*WordEntry, error) {
	if key.ContainsReserved() {
		return nil, ErrReservedCodePoint
	}
	if len(key) == 0 {
		return t.payloadSlot(rootIndex), nil
	}

	cur := rootIndex
	for _, cp := range key {
		child := t.nodes[cur].childFor(cp)
		if child == noChild {
			child = t.newNode()
			t.nodes[cur].insertEdge(cp, child)
		}
		cur = child
	}
	t.nodes[cur].isTerminal = true
	return t.payloadSlot(cur), nil
}

// payloadSlot returns the node's existing payload, allocating one on first
// use.
func (t *Trie) payloadSlot(i index) *WordEntry {
	if t.nodes[i].payload == nil {
		t.nodes[i].payload = &WordEntry{}
	}
	return t.nodes[i].payload
}

// newNode appends a fresh node to the arena and returns its index.
func (t *Trie) newNode() index {
	t.nodes = append(t.nodes, node{})
	return index(len(t.nodes) - 1)
}

// Find returns the payload at key if the path exists and is terminal with a
// payload, or (nil, false) otherwise.
func (t *Trie) Find(key unitext.UniString) (*WordEntry, bool) {
	i, ok := t.resolve(key)
	if !ok || !t.nodes[i].isTerminal || t.nodes[i].payload == nil {
		return nil, false
	}
	return t.nodes[i].payload, true
}

// resolve walks key from the root, returning the node index reached and
// whether the full path exists.
func (t *Trie) resolve(key unitext.UniString) (index, bool) {
	cur := rootIndex
	for _, cp := range key {
		child := t.nodes[cur].childFor(cp)
		if child == noChild {
			return 0, false
		}
		cur = child
	}
	return cur, true
}

// Remove clears the terminal flag and payload at key's node, if it exists.
// It does not prune intermediate nodes, since they may be shared prefixes
// of other words.
func (t *Trie) Remove(key unitext.UniString) {
	i, ok := t.resolve(key)
	if !ok {
		return
	}
	t.nodes[i].isTerminal = false
	t.nodes[i].payload = nil
}

// EnsureNgramRoot ensures that word's terminal node carries an outgoing
// n-gram-separator edge into a (possibly fresh) sub-trie root, structurally
// preparing for future bigram/trigram storage. The unigram core never
// ranks across this edge; it only needs to exist.
func (t *Trie) EnsureNgramRoot(word unitext.UniString) error {
	i, ok := t.resolve(word)
	if !ok {
		return errors.New("trie: EnsureNgramRoot on unknown word")
	}
	if t.nodes[i].childFor(ngramSeparator) == noChild {
		child := t.newNode()
		t.nodes[i].insertEdge(ngramSeparator, child)
	}
	return nil
}

// Visitor is called once per word stored in the trie, in code-point
// ascending DFS order.
type Visitor func(word unitext.UniString, entry *WordEntry)

// ForEach streams (word, entry) pairs for every terminal node with a
// payload, rebuilding the prefix incrementally to avoid O(N·L) string
// construction. The n-gram-separator subtree is not descended into by this
// unigram walk.
//
// The UniString passed to visit shares its backing array with sibling
// calls; copy it (or call .String() on it) before retaining it past the
// visit call.
func (t *Trie) ForEach(visit Visitor) {
	prefix := make(unitext.UniString, 0, 32)
	t.walk(rootIndex, prefix, visit)
}

func (t *Trie) walk(i index, prefix unitext.UniString, visit Visitor) {
	n := &t.nodes[i]
	if n.isTerminal && n.payload != nil {
		visit(prefix, n.payload)
	}
	for _, e := range n.edges {
		if e.codePoint == ngramSeparator {
			continue
		}
		t.walk(e.child, append(prefix, e.codePoint), visit)
	}
}

// Len returns the number of nodes in the arena, mainly useful for test
// assertions and memory sanity checks.
func (t *Trie) Len() int {
	return len(t.nodes)
}

package trie

import (
	"testing"

	"github.com/bastiangx/fldic/pkg/unitext"
)

func TestInsertFind(t *testing.T) {
	tr := New()
	entry, err := tr.Insert(unitext.FromUTF8("hello"))
	if err != nil {
		t.Fatalf("Insert returned error: %v", err)
	}
	entry.AbsoluteScore = 1000

	got, ok := tr.Find(unitext.FromUTF8("hello"))
	if !ok {
		t.Fatal("expected hello to be found")
	}
	if got.AbsoluteScore != 1000 {
		t.Fatalf("expected score 1000, got %d", got.AbsoluteScore)
	}
	if got != entry {
		t.Fatal("expected Find to return the same payload written by Insert")
	}
}

func TestFindMissing(t *testing.T) {
	tr := New()
	tr.Insert(unitext.FromUTF8("hello"))
	if _, ok := tr.Find(unitext.FromUTF8("help")); ok {
		t.Fatal("did not expect help to be found")
	}
	if _, ok := tr.Find(unitext.FromUTF8("hell")); ok {
		t.Fatal("hell is a prefix, not a terminal word, and should not be found")
	}
}

func TestInsertIdempotent(t *testing.T) {
	tr := New()
	e1, _ := tr.Insert(unitext.FromUTF8("cat"))
	e1.AbsoluteScore = 50
	e2, _ := tr.Insert(unitext.FromUTF8("cat"))
	if e2.AbsoluteScore != 50 {
		t.Fatalf("expected idempotent insert to preserve score, got %d", e2.AbsoluteScore)
	}
}

func TestEmptyKeyInsertIsNoOp(t *testing.T) {
	tr := New()
	before := tr.Len()
	tr.Insert(unitext.UniString{})
	if tr.Len() != before {
		t.Fatalf("expected empty key insert to add no nodes, arena grew from %d to %d", before, tr.Len())
	}
	if _, ok := tr.Find(unitext.UniString{}); ok {
		t.Fatal("empty key should never be a found word, root is never marked terminal by insert")
	}
}

func TestReservedCodePointRejected(t *testing.T) {
	tr := New()
	_, err := tr.Insert(unitext.UniString{'a', unitext.NgramSeparator, 'b'})
	if err != ErrReservedCodePoint {
		t.Fatalf("expected ErrReservedCodePoint, got %v", err)
	}
}

func TestRemoveKeepsPrefixNodes(t *testing.T) {
	tr := New()
	tr.Insert(unitext.FromUTF8("car"))
	tr.Insert(unitext.FromUTF8("cart"))
	tr.Remove(unitext.FromUTF8("car"))

	if _, ok := tr.Find(unitext.FromUTF8("car")); ok {
		t.Fatal("car should have been removed")
	}
	if _, ok := tr.Find(unitext.FromUTF8("cart")); !ok {
		t.Fatal("cart should still be reachable, car's node is a shared prefix")
	}
}

func TestForEachAscendingOrder(t *testing.T) {
	tr := New()
	words := []string{"banana", "apple", "cherry", "ant", "bee"}
	for _, w := range words {
		tr.Insert(unitext.FromUTF8(w))
	}

	var visited []string
	tr.ForEach(func(word unitext.UniString, entry *WordEntry) {
		visited = append(visited, word.String())
	})

	expected := []string{"ant", "apple", "banana", "bee", "cherry"}
	if len(visited) != len(expected) {
		t.Fatalf("expected %d words, got %d: %v", len(expected), len(visited), visited)
	}
	for i, w := range expected {
		if visited[i] != w {
			t.Fatalf("expected ascending order %v, got %v", expected, visited)
		}
	}
}

func TestNgramSeparatorSkippedByForEach(t *testing.T) {
	tr := New()
	tr.Insert(unitext.FromUTF8("hello"))
	if err := tr.EnsureNgramRoot(unitext.FromUTF8("hello")); err != nil {
		t.Fatalf("EnsureNgramRoot failed: %v", err)
	}

	count := 0
	tr.ForEach(func(word unitext.UniString, entry *WordEntry) {
		count++
	})
	if count != 1 {
		t.Fatalf("expected only 'hello' to be visited, got %d words", count)
	}
}

package trie

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/bastiangx/fldic/pkg/unitext"
)

// words is a small fixed corpus reused across the memory sanity runs below,
// standing in for a loaded dictionary's vocabulary.
var words = []string{
	"a", "an", "ant", "ants", "apple", "application",
	"b", "be", "bee", "been", "beetle",
	"c", "ca", "cat", "cats", "catalog", "catalogue",
	"d", "do", "dog", "dogs", "doghouse",
}

// TestArenaMemoryStableUnderRepeatedLookups guards against the trie arena
// leaking memory or goroutines across repeated Find/ForEach traffic, in the
// style of a long-running memory leak regression: build once, hammer reads,
// and check that no goroutines leak. The per-operation allocation delta is
// logged for inspection, not asserted.
func TestArenaMemoryStableUnderRepeatedLookups(t *testing.T) {
	tr := New()
	for i, w := range words {
		entry, err := tr.Insert(unitext.FromUTF8(w))
		if err != nil {
			t.Fatalf("Insert(%q): %v", w, err)
		}
		entry.AbsoluteScore = uint32(i + 1)
	}

	iterations := []int{100, 500, 2000}
	for _, iterCount := range iterations {
		t.Run(fmt.Sprintf("iterations_%d", iterCount), func(t *testing.T) {
			runLookupMemoryTest(t, tr, iterCount)
		})
	}
}

func runLookupMemoryTest(t *testing.T, tr *Trie, iterations int) {
	var baseline runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&baseline)
	baselineGoroutines := runtime.NumGoroutine()

	for i := 0; i < iterations; i++ {
		for _, w := range words {
			tr.Find(unitext.FromUTF8(w))
		}
		tr.ForEach(func(word unitext.UniString, entry *WordEntry) {})
	}

	var final runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&final)
	finalGoroutines := runtime.NumGoroutine()

	memDelta := int64(final.Alloc) - int64(baseline.Alloc)
	goroutineDelta := finalGoroutines - baselineGoroutines
	totalOps := iterations * len(words)
	memPerOp := float64(memDelta) / float64(totalOps)

	t.Logf("iterations=%d ops=%d mem_delta=%d bytes mem_per_op=%.2f goroutine_delta=%d",
		iterations, totalOps, memDelta, memPerOp, goroutineDelta)

	if goroutineDelta > 0 {
		t.Errorf("goroutine leak detected: %d goroutines leaked", goroutineDelta)
	}
}

// TestArenaDoesNotGrowOnRepeatedIdempotentInsert guards the insert path
// itself: re-inserting the same keys must not keep appending nodes to the
// arena: inserting a key that's already present must be a no-op.
func TestArenaDoesNotGrowOnRepeatedIdempotentInsert(t *testing.T) {
	tr := New()
	for _, w := range words {
		tr.Insert(unitext.FromUTF8(w))
	}
	before := tr.Len()

	for i := 0; i < 1000; i++ {
		for _, w := range words {
			tr.Insert(unitext.FromUTF8(w))
		}
	}

	if after := tr.Len(); after != before {
		t.Fatalf("expected arena size to stay at %d nodes after repeated re-insert, grew to %d", before, after)
	}
}

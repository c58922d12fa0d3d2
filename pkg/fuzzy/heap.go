package fuzzy

import "golang.org/x/exp/constraints"

// boundedHeap is a fixed-capacity max-heap keyed by a numeric cost. It caps
// memory during the DFS's exploration of near-prefixes: once at capacity,
// pushing a lower-cost item evicts the heap's current worst (highest-cost)
// item, so the heap always retains the capacity lowest-cost items seen so
// far.
type boundedHeap[T any, C constraints.Ordered] struct {
	items    []T
	cost     func(T) C
	capacity int
}

func newBoundedHeap[T any, C constraints.Ordered](capacity int, cost func(T) C) *boundedHeap[T, C] {
	return &boundedHeap[T, C]{cost: cost, capacity: capacity}
}

// Push offers item to the heap. If the heap is below capacity, item is
// always kept; otherwise it is kept only if cheaper than the current worst.
func (h *boundedHeap[T, C]) Push(item T) {
	if len(h.items) < h.capacity {
		h.items = append(h.items, item)
		h.up(len(h.items) - 1)
		return
	}
	if len(h.items) == 0 || h.cost(item) >= h.cost(h.items[0]) {
		return
	}
	h.items[0] = item
	h.down(0)
}

// Worst returns the cost of the heap's current worst (highest-cost) item.
// A caller can use this to skip computing a candidate whose cost is already
// known to be no better, once the heap is full.
func (h *boundedHeap[T, C]) Worst() (C, bool) {
	if len(h.items) == 0 {
		var zero C
		return zero, false
	}
	return h.cost(h.items[0]), true
}

// Full reports whether the heap has reached capacity.
func (h *boundedHeap[T, C]) Full() bool {
	return len(h.items) >= h.capacity
}

// Items returns a copy of the heap's contents, in no particular order.
func (h *boundedHeap[T, C]) Items() []T {
	out := make([]T, len(h.items))
	copy(out, h.items)
	return out
}

func (h *boundedHeap[T, C]) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.cost(h.items[parent]) >= h.cost(h.items[i]) {
			break
		}
		h.items[parent], h.items[i] = h.items[i], h.items[parent]
		i = parent
	}
}

func (h *boundedHeap[T, C]) down(i int) {
	n := len(h.items)
	for {
		left, right := 2*i+1, 2*i+2
		largest := i
		if left < n && h.cost(h.items[left]) > h.cost(h.items[largest]) {
			largest = left
		}
		if right < n && h.cost(h.items[right]) > h.cost(h.items[largest]) {
			largest = right
		}
		if largest == i {
			break
		}
		h.items[i], h.items[largest] = h.items[largest], h.items[i]
		i = largest
	}
}

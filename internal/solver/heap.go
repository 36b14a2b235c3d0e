package solver

// indexHeap is a binary min-heap over grid-cell indices ordered by an
// external key slice, with a parallel position array so a cell whose key
// improved can be re-bubbled in O(log n). The keys slice is owned by the
// caller and mutated between operations; the heap only reads it.
type indexHeap struct {
	keys []float64
	heap []int32
	pos  []int32 // pos[cell] = slot in heap, -1 when absent
}

func newIndexHeap(keys []float64) *indexHeap {
	h := &indexHeap{
		keys: keys,
		heap: make([]int32, 0, 256),
		pos:  make([]int32, len(keys)),
	}
	for i := range h.pos {
		h.pos[i] = -1
	}
	return h
}

func (h *indexHeap) Len() int {
	return len(h.heap)
}

// Push inserts a cell index. The cell must not already be in the heap.
func (h *indexHeap) Push(idx int) {
	h.heap = append(h.heap, int32(idx))
	h.pos[idx] = int32(len(h.heap) - 1)
	h.up(len(h.heap) - 1)
}

// Pop removes and returns the cell with the smallest key.
func (h *indexHeap) Pop() int {
	top := h.heap[0]
	last := len(h.heap) - 1
	h.swap(0, last)
	h.heap = h.heap[:last]
	h.pos[top] = -1
	if last > 0 {
		h.down(0)
	}
	return int(top)
}

// Fix re-bubbles a cell whose key decreased.
func (h *indexHeap) Fix(idx int) {
	h.up(int(h.pos[idx]))
}

// Contains reports whether a cell is currently queued.
func (h *indexHeap) Contains(idx int) bool {
	return h.pos[idx] >= 0
}

func (h *indexHeap) swap(i, j int) {
	h.heap[i], h.heap[j] = h.heap[j], h.heap[i]
	h.pos[h.heap[i]] = int32(i)
	h.pos[h.heap[j]] = int32(j)
}

func (h *indexHeap) up(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.keys[h.heap[i]] >= h.keys[h.heap[parent]] {
			break
		}
		h.swap(i, parent)
		i = parent
	}
}

func (h *indexHeap) down(i int) {
	n := len(h.heap)
	for {
		left := 2*i + 1
		if left >= n {
			break
		}
		smallest := left
		if right := left + 1; right < n && h.keys[h.heap[right]] < h.keys[h.heap[left]] {
			smallest = right
		}
		if h.keys[h.heap[i]] <= h.keys[h.heap[smallest]] {
			break
		}
		h.swap(i, smallest)
		i = smallest
	}
}

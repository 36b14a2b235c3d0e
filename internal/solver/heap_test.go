package solver

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexHeapOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	const n = 500

	keys := make([]float64, n)
	for i := range keys {
		keys[i] = rng.Float64() * 1000
	}

	h := newIndexHeap(keys)
	for i := 0; i < n; i++ {
		h.Push(i)
	}
	require.Equal(t, n, h.Len())

	want := make([]int, n)
	for i := range want {
		want[i] = i
	}
	sort.Slice(want, func(a, b int) bool { return keys[want[a]] < keys[want[b]] })

	for i := 0; i < n; i++ {
		got := h.Pop()
		assert.Equal(t, keys[want[i]], keys[got], "pop %d out of order", i)
		assert.False(t, h.Contains(got))
	}
	assert.Equal(t, 0, h.Len())
}

func TestIndexHeapFix(t *testing.T) {
	keys := []float64{50, 40, 30, 20, 10}
	h := newIndexHeap(keys)
	for i := range keys {
		h.Push(i)
	}

	// Improve the worst key to the best and re-bubble it.
	keys[0] = 1
	h.Fix(0)
	assert.Equal(t, 0, h.Pop())

	// Remaining cells still come out in key order.
	prev := -1.0
	for h.Len() > 0 {
		idx := h.Pop()
		require.GreaterOrEqual(t, keys[idx], prev)
		prev = keys[idx]
	}
}

func TestIndexHeapContains(t *testing.T) {
	keys := []float64{3, 1, 2}
	h := newIndexHeap(keys)

	assert.False(t, h.Contains(1))
	h.Push(1)
	assert.True(t, h.Contains(1))
	h.Push(0)
	h.Push(2)

	assert.Equal(t, 1, h.Pop())
	assert.False(t, h.Contains(1))
	assert.True(t, h.Contains(0))
	assert.True(t, h.Contains(2))
}

func TestIndexHeapInterleaved(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	const n = 200

	keys := make([]float64, n)
	h := newIndexHeap(keys)
	queued := map[int]bool{}

	for step := 0; step < 2000; step++ {
		if h.Len() == 0 || rng.Intn(3) > 0 {
			idx := rng.Intn(n)
			if queued[idx] {
				// Decrease-key path.
				if k := keys[idx] * rng.Float64(); k < keys[idx] {
					keys[idx] = k
					h.Fix(idx)
				}
				continue
			}
			keys[idx] = rng.Float64() * 100
			h.Push(idx)
			queued[idx] = true
			continue
		}
		idx := h.Pop()
		delete(queued, idx)
		// Nothing left in the heap may beat the popped key.
		for other := range queued {
			require.LessOrEqual(t, keys[idx], keys[other])
		}
	}
}

package portalloc

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReserveAdvancesByBatchSizePlusSlack(t *testing.T) {
	a := New(DefaultStart)
	first := a.Reserve(100)
	second := a.Reserve(50)

	assert.Equal(t, DefaultStart, first)
	assert.Equal(t, DefaultStart+110, second)
}

func TestReserveWrapsAtCeiling(t *testing.T) {
	a := New(WrapCeiling - 50)
	base := a.Reserve(100)
	assert.Equal(t, WrapCeiling-50, base)

	wrapped := a.Reserve(10)
	assert.Equal(t, DefaultStart, wrapped)
}

func TestConcurrentBatchesGetDisjointRanges(t *testing.T) {
	a := New(DefaultStart)
	const n = 50
	const batchSize = 10

	bases := make([]int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bases[i] = a.Reserve(batchSize)
		}(i)
	}
	wg.Wait()

	seen := make(map[int]bool, n)
	for _, b := range bases {
		assert.False(t, seen[b], "duplicate base port %d", b)
		seen[b] = true
	}
}

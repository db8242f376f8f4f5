package geocache

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryGetMissReturnsFalse(t *testing.T) {
	c := NewMemory()
	_, ok := c.Get(context.Background(), "example.com")
	assert.False(t, ok)
}

func TestMemorySetThenGet(t *testing.T) {
	c := NewMemory()
	c.Set(context.Background(), "example.com", "US")
	country, ok := c.Get(context.Background(), "example.com")
	assert.True(t, ok)
	assert.Equal(t, "US", country)
}

func TestMemoryConcurrentWritesLastWriterWinsWithoutRace(t *testing.T) {
	c := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c.Set(context.Background(), "host", "CC")
		}(i)
	}
	wg.Wait()
	country, ok := c.Get(context.Background(), "host")
	assert.True(t, ok)
	assert.Equal(t, "CC", country)
}

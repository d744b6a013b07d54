package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMemoryCache_SetAndGet(t *testing.T) {
	c := NewMemoryCache[string, string](10, time.Hour)

	c.Set("key1", "value1")
	got, ok := c.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "value1", got)

	_, ok = c.Get("nonexistent")
	assert.False(t, ok)
}

func TestMemoryCache_Expiration(t *testing.T) {
	c := NewMemoryCache[string, string](10, 100*time.Millisecond)

	c.Set("key1", "value1")
	got, ok := c.Get("key1")
	assert.True(t, ok)
	assert.Equal(t, "value1", got)

	time.Sleep(150 * time.Millisecond)

	_, ok = c.Get("key1")
	assert.False(t, ok)
}

func TestMemoryCache_Delete(t *testing.T) {
	c := NewMemoryCache[string, int](10, time.Hour)

	c.Set("key1", 1)
	c.Delete("key1")

	_, ok := c.Get("key1")
	assert.False(t, ok)
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache[string, int](10, time.Hour)

	c.Set("key1", 1)
	c.Set("key2", 2)
	c.Clear()

	_, ok := c.Get("key1")
	assert.False(t, ok)
	_, ok = c.Get("key2")
	assert.False(t, ok)
}

func TestMemoryCache_EvictsOldestBeyondSize(t *testing.T) {
	c := NewMemoryCache[string, int](2, time.Hour)

	c.Set("key1", 1)
	c.Set("key2", 2)
	c.Set("key3", 3)

	assert.LessOrEqual(t, c.Len(), 2)
	_, ok := c.Get("key1")
	assert.False(t, ok, "oldest entry should have been evicted once size exceeded")
}

func TestMemoryCache_Concurrent(t *testing.T) {
	c := NewMemoryCache[string, int](100, time.Hour)

	done := make(chan bool)

	for i := 0; i < 10; i++ {
		go func(val int) {
			c.Set("key", val)
			done <- true
		}(i)
	}

	for i := 0; i < 10; i++ {
		go func() {
			_, _ = c.Get("key")
			done <- true
		}()
	}

	for i := 0; i < 20; i++ {
		<-done
	}

	_, ok := c.Get("key")
	assert.True(t, ok)
}

func TestMemoryCache_Close(t *testing.T) {
	c := NewMemoryCache[string, int](10, time.Hour)
	c.Set("key1", 1)

	assert.NoError(t, c.Close())

	_, ok := c.Get("key1")
	assert.False(t, ok)
}

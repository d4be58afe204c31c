package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTTLCache_SetAndGet(t *testing.T) {
	c := NewTTLCache[string](time.Minute)
	c.Set("k", "v")
	v, ok := c.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestTTLCache_ExpiresAfterTTL(t *testing.T) {
	c := NewTTLCache[string](time.Millisecond)
	frozen := time.Now()
	c.now = func() time.Time { return frozen }
	c.Set("k", "v")

	c.now = func() time.Time { return frozen.Add(2 * time.Millisecond) }
	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestTTLCache_InvalidateAll(t *testing.T) {
	c := NewTTLCache[int](time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.InvalidateAll()
	assert.Equal(t, 0, c.Len())
}

func TestKeyFromParts_DeterministicAndOrderSensitive(t *testing.T) {
	k1 := KeyFromParts("a", "b", "c")
	k2 := KeyFromParts("a", "b", "c")
	k3 := KeyFromParts("a", "c", "b")
	assert.Equal(t, k1, k2)
	assert.NotEqual(t, k1, k3)
}

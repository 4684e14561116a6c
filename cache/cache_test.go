package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time { return f.t }

func newTestCache(ttl time.Duration, max int) (*TTLCache[string, int], *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	c := New[string, int](ttl, max)
	c.now = clock.now
	return c, clock
}

func TestGetSet(t *testing.T) {
	c, _ := newTestCache(time.Minute, 10)
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestExpiry(t *testing.T) {
	c, clock := newTestCache(time.Minute, 10)
	c.Set("a", 1)

	clock.t = clock.t.Add(59 * time.Second)
	_, ok := c.Get("a")
	assert.True(t, ok)

	clock.t = clock.t.Add(time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}

func TestEvictsOldest(t *testing.T) {
	c, _ := newTestCache(time.Minute, 2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestOverwriteDoesNotEvict(t *testing.T) {
	c, _ := newTestCache(time.Minute, 2)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("b", 3)

	assert.Equal(t, 2, c.Len())
	v, _ := c.Get("b")
	assert.Equal(t, 3, v)
}

func TestEvictPrefersExpired(t *testing.T) {
	c, clock := newTestCache(time.Minute, 2)
	c.Set("old", 1)
	clock.t = clock.t.Add(30 * time.Second)
	c.Set("young", 2)
	clock.t = clock.t.Add(45 * time.Second)
	c.Set("new", 3)

	_, ok := c.Get("young")
	assert.True(t, ok)
	_, ok = c.Get("new")
	assert.True(t, ok)
}

func TestInvalidate(t *testing.T) {
	c, _ := newTestCache(time.Minute, 2)
	c.Set("a", 1)
	c.Invalidate()
	assert.Equal(t, 0, c.Len())
}

func TestKey(t *testing.T) {
	assert := assert.New(t)
	assert.Len(Key("x"), 64)
	assert.Equal(Key("[C]la", "2"), Key("[C]la", "2"))
	assert.NotEqual(Key("ab", "c"), Key("a", "bc"))
	assert.NotEqual(Key("[C]la", "2"), Key("[C]la", "3"))
}

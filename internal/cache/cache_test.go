package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSetGet(t *testing.T) {
	c := New(time.Minute, 0)
	defer c.Close()

	c.Set("categories:list:p1", []string{"a"})
	v, ok := c.Get("categories:list:p1")

	assert.True(t, ok)
	assert.Equal(t, []string{"a"}, v)
}

func TestExpiry(t *testing.T) {
	c := New(time.Minute, 0)
	defer c.Close()

	c.Set("k", 1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	_, ok := c.Get("k")
	assert.False(t, ok)
}

func TestZeroTTLDisablesCaching(t *testing.T) {
	c := New(0, 0)
	defer c.Close()

	c.Set("k", 1)
	_, ok := c.Get("k")
	assert.False(t, ok)
	assert.Zero(t, c.Size())
}

func TestDeleteByPrefix(t *testing.T) {
	c := New(time.Minute, 0)
	defer c.Close()

	c.Set("services:list:p1", 1)
	c.Set("services:list:p2", 2)
	c.Set("categories:list:p1", 3)

	c.DeleteByPrefix("services:")

	assert.Equal(t, 1, c.Size())
	_, ok := c.Get("categories:list:p1")
	assert.True(t, ok)
}

func TestCleanupRemovesExpired(t *testing.T) {
	c := New(time.Minute, 5*time.Millisecond)
	defer c.Close()

	c.Set("k", 1, time.Millisecond)

	assert.Eventually(t, func() bool { return c.Size() == 0 }, time.Second, 5*time.Millisecond)
}

func TestCloseIsIdempotent(t *testing.T) {
	c := New(time.Minute, time.Millisecond)
	c.Close()
	c.Close()
}

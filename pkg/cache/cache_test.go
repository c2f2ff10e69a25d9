package cache

import (
	"testing"
	"time"
)

func TestSetGet(t *testing.T) {
	c := NewInMemoryCache[string, int](time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("empty cache returned a value")
	}

	c.Set("a", 1, 0)
	got, ok := c.Get("a")
	if !ok || got != 1 {
		t.Fatalf("get: got=%d ok=%v", got, ok)
	}

	c.Set("a", 2, 0)
	if got, _ := c.Get("a"); got != 2 {
		t.Fatalf("overwrite: got %d", got)
	}
}

func TestExpiry(t *testing.T) {
	c := NewInMemoryCache[string, string](time.Minute)
	c.Set("short", "v", 10*time.Millisecond)

	if _, ok := c.Get("short"); !ok {
		t.Fatal("value expired too early")
	}
	time.Sleep(30 * time.Millisecond)
	if _, ok := c.Get("short"); ok {
		t.Fatal("value survived its TTL")
	}
}

func TestDeleteAndClear(t *testing.T) {
	c := NewInMemoryCache[string, int](time.Minute)
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Fatal("deleted key still present")
	}
	if c.Size() != 1 {
		t.Fatalf("size after delete: %d", c.Size())
	}

	c.Clear()
	if c.Size() != 0 {
		t.Fatalf("size after clear: %d", c.Size())
	}
}

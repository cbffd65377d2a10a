package cache

import (
	"testing"
	"time"
)

func TestGetPut(t *testing.T) {
	c := New[string](4, time.Minute)

	if _, ok := c.Get("missing"); ok {
		t.Fatal("unexpected hit")
	}

	c.Put("k", "v")
	if v, ok := c.Get("k"); !ok || v != "v" {
		t.Fatalf("got (%q, %v)", v, ok)
	}

	c.Put("k", "v2")
	if v, _ := c.Get("k"); v != "v2" {
		t.Fatalf("got %q after update", v)
	}
	if c.Len() != 1 {
		t.Fatalf("len = %d", c.Len())
	}
}

func TestEvictionLRU(t *testing.T) {
	c := New[int](2, time.Minute)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Get("a") // a is now most recently used
	c.Put("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("least recently used entry should have been evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("recently used entry evicted")
	}
}

func TestTTLExpiry(t *testing.T) {
	c := New[int](4, 10*time.Millisecond)
	c.Put("k", 1)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry returned")
	}

	c.Put("a", 1)
	c.Put("b", 2)
	time.Sleep(20 * time.Millisecond)
	if purged := c.PurgeExpired(); purged != 2 {
		t.Fatalf("purged %d, want 2", purged)
	}
	if c.Len() != 0 {
		t.Fatalf("len = %d after purge", c.Len())
	}
}

func TestRemove(t *testing.T) {
	c := New[int](4, time.Minute)
	c.Put("k", 1)
	c.Remove("k")
	if _, ok := c.Get("k"); ok {
		t.Fatal("entry present after remove")
	}
	c.Remove("k") // removing twice is fine
}

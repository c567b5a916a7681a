package cache_test

import (
	"testing"
	"time"

	"github.com/ftmlabs/directory-api/internal/cache"
)

func TestCacheSetGet(t *testing.T) {
	c := cache.New(time.Minute)

	c.Set("k", "v")

	got, ok := c.Get("k")

	if !ok || got != "v" {
		t.Fatalf("got %v %v, want v true", got, ok)
	}
}

func TestCacheExpiry(t *testing.T) {
	c := cache.New(10 * time.Millisecond)

	c.Set("k", "v")

	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expired entry still served")
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := cache.New(time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")

	if _, ok := c.Get("a"); ok {
		t.Fatal("deleted entry still present")
	}

	c.Clear()

	if _, ok := c.Get("b"); ok {
		t.Fatal("cleared entry still present")
	}
}

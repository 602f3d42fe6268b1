package typesystem

import (
	"testing"
)

func TestComparisonCacheDisabledByDefault(t *testing.T) {
	cache := NewComparisonCache()
	if cache.Enabled() {
		t.Fatalf("new caches must start disabled")
	}
	cache.Hash(Integer)
	cache.Compare(Integer, String)
	if cache.Len() != 0 {
		t.Errorf("disabled cache memoized %d entries", cache.Len())
	}
}

func TestComparisonCacheMemoizes(t *testing.T) {
	cache := NewComparisonCache()
	cache.Enable()

	left, right := NewUnion(Integer, String), List(NewVariable("T"))
	if cache.Hash(left) != Hash(left) {
		t.Errorf("cached hash differs from Hash")
	}
	if got, want := cache.Compare(left, right), Compare(left, right); got != want {
		t.Errorf("cached Compare = %d, want %d", got, want)
	}
	if !cache.Equal(left, NewUnion(String, Integer)) {
		t.Errorf("cached Equal disagrees with Equal")
	}
	size := cache.Len()
	if size != 3 {
		t.Errorf("got %d entries, want 3", size)
	}

	cache.Hash(left)
	cache.Compare(left, right)
	if cache.Len() != size {
		t.Errorf("repeated lookups grew the cache to %d", cache.Len())
	}

	// Namespaces are part of the key.
	a, b := NewVariable("T"), NewVariable("T", WithNamespace(1))
	if cache.Equal(a, b) {
		t.Errorf("variables in different namespaces compared equal through the cache")
	}

	cache.Disable()
	if cache.Len() == 0 {
		t.Errorf("Disable must keep entries")
	}
	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("Clear left %d entries", cache.Len())
	}
}

func TestNilComparisonCache(t *testing.T) {
	var cache *ComparisonCache
	cache.Enable()
	cache.Clear()
	if cache.Enabled() || cache.Len() != 0 {
		t.Errorf("nil cache should behave as disabled")
	}
	if !cache.Equal(Integer, Integer) || cache.Hash(Integer) != Hash(Integer) {
		t.Errorf("nil cache must still compute results")
	}
}

package main

import (
	"path/filepath"
	"testing"
)

func TestResponseCachePersistenceRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "response_cache.gob")

	cache := NewResponseCache(16)
	first := cacheKeyWithMark(2, 2)
	second := cacheKeyWithMark(3, 2)
	cache.Store(first, ResponseEntry{Move: Move{X: 1, Y: 1}, Depth: 3, Origin: "search"})
	cache.Store(second, ResponseEntry{Move: Move{X: 4, Y: 4}, Depth: 3, Origin: "fast:win"})

	if err := persistResponseCache(cache, path); err != nil {
		t.Fatalf("persist failed: %v", err)
	}

	restored := NewResponseCache(16)
	if err := loadResponseCache(restored, path); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if restored.Len() != 2 {
		t.Fatalf("expected 2 restored entries, got %d", restored.Len())
	}
	entry, ok := restored.Probe(second)
	if !ok || !entry.Move.Equals(Move{X: 4, Y: 4}) || entry.Origin != "fast:win" {
		t.Fatalf("restored entry mismatch: %+v ok=%v", entry, ok)
	}
}

func TestLoadResponseCacheMissingFileIsNoop(t *testing.T) {
	cache := NewResponseCache(16)
	path := filepath.Join(t.TempDir(), "never_written.gob")
	if err := loadResponseCache(cache, path); err != nil {
		t.Fatalf("expected missing file to be a no-op, got %v", err)
	}
	if cache.Len() != 0 {
		t.Fatalf("expected empty cache, got %d", cache.Len())
	}
}

func TestLoadResponseCacheRespectsLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "response_cache.gob")

	cache := NewResponseCache(16)
	for x := 0; x < 4; x++ {
		cache.Store(cacheKeyWithMark(x, 9), ResponseEntry{Move: Move{X: 1, Y: 1}})
	}
	if err := persistResponseCache(cache, path); err != nil {
		t.Fatalf("persist failed: %v", err)
	}

	restored := NewResponseCache(2)
	if err := loadResponseCache(restored, path); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if restored.Len() != 2 {
		t.Fatalf("expected restore capped at the limit, got %d", restored.Len())
	}
}

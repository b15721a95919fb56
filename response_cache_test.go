package main

import "testing"

func cacheKeyWithMark(x, y int) Fingerprint {
	board := NewBoard()
	board.Set(x, y, CellX)
	return board.Fingerprint()
}

func TestResponseCacheProbeIsPureLookup(t *testing.T) {
	cache := NewResponseCache(16)
	key := cacheKeyWithMark(1, 1)
	if _, ok := cache.Probe(key); ok {
		t.Fatalf("expected miss on empty cache")
	}
	cache.Store(key, ResponseEntry{Move: Move{X: 2, Y: 2}, Depth: 3, Origin: "search"})
	entry, ok := cache.Probe(key)
	if !ok || !entry.Move.Equals(Move{X: 2, Y: 2}) {
		t.Fatalf("expected stored entry back, got %+v ok=%v", entry, ok)
	}
	cache.Probe(key)
	if entry, _ = cache.Probe(key); entry.Hits != 0 {
		t.Fatalf("probing alone must not count hits, got %d", entry.Hits)
	}
}

func TestResponseCacheMarkServedCountsHits(t *testing.T) {
	cache := NewResponseCache(16)
	key := cacheKeyWithMark(1, 2)
	cache.MarkServed(key)
	cache.Store(key, ResponseEntry{Move: Move{X: 2, Y: 2}, Origin: "search"})
	cache.MarkServed(key)
	cache.MarkServed(key)
	entry, _ := cache.Probe(key)
	if entry.Hits != 2 {
		t.Fatalf("expected two served hits, got %d", entry.Hits)
	}
}

func TestResponseCacheOverwriteKeepsHits(t *testing.T) {
	cache := NewResponseCache(16)
	key := cacheKeyWithMark(4, 4)
	cache.Store(key, ResponseEntry{Move: Move{X: 5, Y: 5}, Origin: "search"})
	cache.MarkServed(key)
	cache.MarkServed(key)
	cache.Store(key, ResponseEntry{Move: Move{X: 6, Y: 6}, Origin: "fast:win"})

	entry, ok := cache.Probe(key)
	if !ok || !entry.Move.Equals(Move{X: 6, Y: 6}) || entry.Origin != "fast:win" {
		t.Fatalf("expected overwritten entry, got %+v", entry)
	}
	if entry.Hits != 2 {
		t.Fatalf("expected hits preserved across overwrite, got %d", entry.Hits)
	}
	if cache.Len() != 1 {
		t.Fatalf("overwrite must not grow the cache, got %d", cache.Len())
	}
}

func TestResponseCacheEvictsOldestAtLimit(t *testing.T) {
	cache := NewResponseCache(2)
	first := cacheKeyWithMark(0, 0)
	second := cacheKeyWithMark(1, 0)
	third := cacheKeyWithMark(2, 0)
	cache.Store(first, ResponseEntry{Move: Move{X: 1, Y: 1}})
	cache.Store(second, ResponseEntry{Move: Move{X: 1, Y: 1}})
	cache.Store(third, ResponseEntry{Move: Move{X: 1, Y: 1}})

	if cache.Len() != 2 {
		t.Fatalf("expected cache capped at 2, got %d", cache.Len())
	}
	if _, ok := cache.Probe(first); ok {
		t.Fatalf("expected oldest entry evicted")
	}
	if _, ok := cache.Probe(third); !ok {
		t.Fatalf("expected newest entry retained")
	}
}

func TestResponseCacheSnapshotNewestFirst(t *testing.T) {
	cache := NewResponseCache(16)
	older := cacheKeyWithMark(3, 3)
	newer := cacheKeyWithMark(4, 3)
	cache.Store(older, ResponseEntry{Move: Move{X: 1, Y: 1}})
	cache.Store(newer, ResponseEntry{Move: Move{X: 2, Y: 2}})

	snapshot := cache.Snapshot()
	if len(snapshot) != 2 {
		t.Fatalf("expected 2 snapshot entries, got %d", len(snapshot))
	}
	if snapshot[0].Key != newer || snapshot[1].Key != older {
		t.Fatalf("expected newest-first ordering")
	}
}

func TestResponseCacheLoadEntriesSkipsInvalid(t *testing.T) {
	cache := NewResponseCache(16)
	good := cacheKeyWithMark(6, 6)
	cache.loadEntries([]cacheSnapshotEntry{
		{Key: "short", Entry: ResponseEntry{Move: Move{X: 1, Y: 1}}},
		{Key: good, Entry: ResponseEntry{Move: Move{X: 99, Y: 0}}},
		{Key: good, Entry: ResponseEntry{Move: Move{X: 7, Y: 7}, Origin: "search"}},
	})
	if cache.Len() != 1 {
		t.Fatalf("expected only the valid entry loaded, got %d", cache.Len())
	}
	entry, ok := cache.Probe(good)
	if !ok || !entry.Move.Equals(Move{X: 7, Y: 7}) {
		t.Fatalf("expected valid entry retained, got %+v ok=%v", entry, ok)
	}
}

func TestResponseCacheClear(t *testing.T) {
	cache := NewResponseCache(16)
	cache.Store(cacheKeyWithMark(8, 8), ResponseEntry{Move: Move{X: 1, Y: 1}})
	cache.Clear()
	if cache.Len() != 0 {
		t.Fatalf("expected empty cache after clear, got %d", cache.Len())
	}
}

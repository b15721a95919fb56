package main

import (
	"sort"
	"sync"
)

// ResponseEntry is one precomputed AI reply: if the live board ever matches
// the entry's fingerprint, Move is the reply the search already chose.
type ResponseEntry struct {
	Move       Move
	Depth      int
	Origin     string
	Hits       uint32
	ComputedAt int64
}

// ResponseCache maps board fingerprints to precomputed replies. Entries are
// speculative: the background worker overwrites them freely and consumers
// always have a synchronous fallback, so eviction is never a correctness
// concern.
type ResponseCache struct {
	mu      sync.Mutex
	entries map[Fingerprint]ResponseEntry
	limit   int
	seq     int64
}

func NewResponseCache(limit int) *ResponseCache {
	return &ResponseCache{
		entries: make(map[Fingerprint]ResponseEntry),
		limit:   limit,
	}
}

// Probe is a pure lookup; it does not touch the hit counter. Callers that
// actually play the cached reply record that with MarkServed.
func (c *ResponseCache) Probe(key Fingerprint) (ResponseEntry, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	return entry, ok
}

// MarkServed counts one served reply for key. A probe whose entry turns out
// to be unusable never reaches here, so Hits reflects moves actually played
// from the cache.
func (c *ResponseCache) MarkServed(key Fingerprint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[key]; ok {
		entry.Hits++
		c.entries[key] = entry
	}
}

func (c *ResponseCache) Store(key Fingerprint, entry ResponseEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	entry.ComputedAt = c.seq
	if existing, ok := c.entries[key]; ok {
		entry.Hits = existing.Hits
		c.entries[key] = entry
		return
	}
	if c.limit > 0 && len(c.entries) >= c.limit {
		c.evictOldestLocked()
	}
	c.entries[key] = entry
}

func (c *ResponseCache) Delete(key Fingerprint) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		return false
	}
	delete(c.entries, key)
	return true
}

func (c *ResponseCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ResponseCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[Fingerprint]ResponseEntry)
	c.seq = 0
}

type cacheSnapshotEntry struct {
	Key   Fingerprint
	Entry ResponseEntry
}

// Snapshot returns the entries ordered newest first, for the inspection
// endpoints and persistence.
func (c *ResponseCache) Snapshot() []cacheSnapshotEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]cacheSnapshotEntry, 0, len(c.entries))
	for key, entry := range c.entries {
		out = append(out, cacheSnapshotEntry{Key: key, Entry: entry})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Entry.ComputedAt != out[j].Entry.ComputedAt {
			return out[i].Entry.ComputedAt > out[j].Entry.ComputedAt
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func (c *ResponseCache) loadEntries(entries []cacheSnapshotEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, item := range entries {
		if !item.Key.Valid() || !item.Entry.Move.IsValid() {
			continue
		}
		if c.limit > 0 && len(c.entries) >= c.limit {
			break
		}
		c.seq++
		entry := item.Entry
		entry.ComputedAt = c.seq
		c.entries[item.Key] = entry
	}
}

func (c *ResponseCache) evictOldestLocked() {
	var victim Fingerprint
	oldest := int64(0)
	found := false
	for key, entry := range c.entries {
		if !found || entry.ComputedAt < oldest {
			victim = key
			oldest = entry.ComputedAt
			found = true
		}
	}
	if found {
		delete(c.entries, victim)
	}
}

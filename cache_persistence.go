package main

import (
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
)

// The response cache is speculative, but it is also pure computation, so
// carrying it across restarts is free warm-up. Games themselves are never
// persisted.

type responseCacheDump struct {
	Entries []persistedResponse
}

type persistedResponse struct {
	Key   string
	Entry ResponseEntry
}

func persistResponseCache(cache *ResponseCache, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure cache dir: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	snapshot := cache.Snapshot()
	dump := responseCacheDump{Entries: make([]persistedResponse, 0, len(snapshot))}
	for _, item := range snapshot {
		dump.Entries = append(dump.Entries, persistedResponse{Key: string(item.Key), Entry: item.Entry})
	}
	return gob.NewEncoder(file).Encode(dump)
}

func loadResponseCache(cache *ResponseCache, path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()
	var dump responseCacheDump
	if err := gob.NewDecoder(file).Decode(&dump); err != nil {
		return fmt.Errorf("decode response cache: %w", err)
	}
	entries := make([]cacheSnapshotEntry, 0, len(dump.Entries))
	for _, item := range dump.Entries {
		entries = append(entries, cacheSnapshotEntry{Key: Fingerprint(item.Key), Entry: item.Entry})
	}
	cache.loadEntries(entries)
	return nil
}

func persistCaches(controller *GameController) {
	config := GetConfig()
	if !config.AiPersistCache {
		return
	}
	if err := persistResponseCache(controller.Cache(), config.AiCachePath); err != nil {
		fmt.Printf("[ai:cache] persist response cache: %v\n", err)
		return
	}
	fmt.Printf("[ai:cache] persisted %d response entries\n", controller.Cache().Len())
}

func loadPersistedCaches(controller *GameController) {
	config := GetConfig()
	if !config.AiPersistCache {
		return
	}
	if err := loadResponseCache(controller.Cache(), config.AiCachePath); err != nil {
		fmt.Printf("[ai:cache] load response cache: %v\n", err)
		return
	}
	if n := controller.Cache().Len(); n > 0 {
		fmt.Printf("[ai:cache] loaded %d response entries\n", n)
	}
}

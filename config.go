package main

import "sync"

type Config struct {
	AiDepth              int             `json:"ai_depth"`
	AiPrecomputeEnabled  bool            `json:"ai_precompute_enabled"`
	AiSweepIntervalMs    int             `json:"ai_sweep_interval_ms"`
	AiCacheLimit         int             `json:"ai_cache_limit"`
	AiPersistCache       bool            `json:"ai_persist_cache"`
	AiCachePath          string          `json:"ai_cache_path"`
	AiLogSearchStats     bool            `json:"ai_log_search_stats"`
	AiLogPrecomputeSweep bool            `json:"ai_log_precompute_sweep"`
	Heuristics           HeuristicConfig `json:"heuristics"`
}

type HeuristicConfig struct {
	WinScore           float64 `json:"win_score"`
	CenterWeight       float64 `json:"center_weight"`
	SequenceWeight     float64 `json:"sequence_weight"`
	OpponentBias       float64 `json:"opponent_bias"`
	EnableSequenceScan bool    `json:"enable_sequence_scan"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		// Depth bounding is the only guard against unbounded search;
		// 3 plies keeps a synchronous reply well under a second.
		AiDepth: 3,

		AiPrecomputeEnabled: true,
		AiSweepIntervalMs:   100,
		AiCacheLimit:        4096,

		AiPersistCache: false,
		AiCachePath:    "cache_logs/response_cache.gob",

		AiLogSearchStats:     false,
		AiLogPrecomputeSweep: false,

		Heuristics: HeuristicConfig{
			WinScore:           10000.0,
			CenterWeight:       10.0,
			SequenceWeight:     10.0,
			OpponentBias:       1.5,
			EnableSequenceScan: true,
		},
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}

func resolvedHeuristicConfig(config Config) HeuristicConfig {
	defaults := DefaultConfig().Heuristics
	heuristics := config.Heuristics
	if heuristics == (HeuristicConfig{}) {
		return defaults
	}
	if heuristics.WinScore == 0 {
		heuristics.WinScore = defaults.WinScore
	}
	if heuristics.CenterWeight == 0 {
		heuristics.CenterWeight = defaults.CenterWeight
	}
	if heuristics.SequenceWeight == 0 {
		heuristics.SequenceWeight = defaults.SequenceWeight
	}
	if heuristics.OpponentBias == 0 {
		heuristics.OpponentBias = defaults.OpponentBias
	}
	return heuristics
}

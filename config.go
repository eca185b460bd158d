package main

import "sync"

type Config struct {
	AiName           string          `json:"ai_name"`
	AiDepth          int             `json:"ai_depth"`
	AiTimeBudgetMs   int             `json:"ai_time_budget_ms"`
	AiSeed           int64           `json:"ai_seed"` // 0 = time-seeded
	AiLogSearchStats bool            `json:"ai_log_search_stats"`
	Heuristics       HeuristicConfig `json:"heuristics"`
}

// HeuristicConfig holds the static evaluation weights. Zero values are
// resolved to defaults so partial configs sent over /api/settings work.
type HeuristicConfig struct {
	QueenPressure int `json:"queen_pressure"`
	Development   int `json:"development"`
	BeetleOnQueen int `json:"beetle_on_queen"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		AiName:         "hivemind",
		AiDepth:        4,
		AiTimeBudgetMs: 2000,
		AiSeed:         0,

		AiLogSearchStats: false, // turn ON temporarily to tune

		Heuristics: HeuristicConfig{
			QueenPressure: 50,
			Development:   4,
			BeetleOnQueen: 30,
		},
	}
}

func resolvedHeuristicConfig(heuristics HeuristicConfig) HeuristicConfig {
	defaults := DefaultConfig().Heuristics
	if heuristics == (HeuristicConfig{}) {
		return defaults
	}
	if heuristics.QueenPressure == 0 {
		heuristics.QueenPressure = defaults.QueenPressure
	}
	if heuristics.Development == 0 {
		heuristics.Development = defaults.Development
	}
	if heuristics.BeetleOnQueen == 0 {
		heuristics.BeetleOnQueen = defaults.BeetleOnQueen
	}
	return heuristics
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

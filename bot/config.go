package main

import (
	"log"
	"os"
	"strconv"
	"sync"
)

type Config struct {
	Strategy        string `json:"strategy"`
	TimeBudgetMs    int    `json:"time_budget_ms"`
	CacheMaxEntries int    `json:"cache_max_entries"`
	DebugAddr       string `json:"debug_addr"`
	LogDecisions    bool   `json:"log_decisions"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

func DefaultConfig() Config {
	return Config{
		Strategy: string(StrategyBalanced),

		// The referee allows a few seconds per move; staying well
		// under it leaves room for parse and write latency.
		TimeBudgetMs: 450,

		CacheMaxEntries: 1 << 16,
		DebugAddr:       "",
		LogDecisions:    false,
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

// LoadConfigFromEnv applies FILLER_* environment overrides on top of
// the defaults and installs the result in the store. Unknown strategy
// names are rejected here so the engine never starts on a profile it
// does not have weights for.
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("FILLER_STRATEGY"); v != "" {
		if _, ok := WeightsFor(Strategy(v)); ok {
			cfg.Strategy = v
		} else {
			log.Printf("[config] unknown strategy %q, keeping %q", v, cfg.Strategy)
		}
	}
	if v := os.Getenv("FILLER_TIME_BUDGET_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			cfg.TimeBudgetMs = ms
		} else {
			log.Printf("[config] invalid FILLER_TIME_BUDGET_MS %q", v)
		}
	}
	if v := os.Getenv("FILLER_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.CacheMaxEntries = n
		} else {
			log.Printf("[config] invalid FILLER_CACHE_SIZE %q", v)
		}
	}
	if v := os.Getenv("FILLER_DEBUG_ADDR"); v != "" {
		cfg.DebugAddr = v
	}
	if v := os.Getenv("FILLER_LOG_DECISIONS"); v != "" {
		cfg.LogDecisions = v == "1" || v == "true"
	}
	configStore.Update(cfg)
	return cfg
}

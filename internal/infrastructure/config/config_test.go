package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("server port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Dataset.CorpusPath != "data/processed_recipes.csv" {
		t.Errorf("corpus path = %q", cfg.Dataset.CorpusPath)
	}
	if cfg.Dataset.LookupPath != "data/recipes_lookup.csv" {
		t.Errorf("lookup path = %q", cfg.Dataset.LookupPath)
	}
	if cfg.Index.MinDocFreq != 2 {
		t.Errorf("min doc freq = %d, want 2", cfg.Index.MinDocFreq)
	}
	if cfg.Index.MaxVocabSize != 50000 {
		t.Errorf("max vocab size = %d, want 50000", cfg.Index.MaxVocabSize)
	}
	if cfg.Recommend.TopN != 4 {
		t.Errorf("top n = %d, want 4", cfg.Recommend.TopN)
	}
	if cfg.Recommend.SessionTTL != 30*time.Minute {
		t.Errorf("session ttl = %v, want 30m", cfg.Recommend.SessionTTL)
	}
	if cfg.Cache.Enabled {
		t.Error("cache should be disabled by default")
	}
}

func TestValidateConfig(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:  ServerConfig{Port: 8080},
			Dataset: DatasetConfig{CorpusPath: "a.csv", LookupPath: "b.csv"},
			Index:   IndexConfig{MinDocFreq: 2, MaxVocabSize: 50000},
			Recommend: RecommendConfig{
				TopN:       4,
				SessionTTL: 30 * time.Minute,
			},
		}
	}

	if err := validateConfig(valid()); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing port", func(c *Config) { c.Server.Port = 0 }},
		{"missing corpus path", func(c *Config) { c.Dataset.CorpusPath = "" }},
		{"missing lookup path", func(c *Config) { c.Dataset.LookupPath = "" }},
		{"min doc freq below 1", func(c *Config) { c.Index.MinDocFreq = 0 }},
		{"zero vocab size", func(c *Config) { c.Index.MaxVocabSize = 0 }},
		{"zero top n", func(c *Config) { c.Recommend.TopN = 0 }},
		{"zero session ttl", func(c *Config) { c.Recommend.SessionTTL = 0 }},
		{"cache enabled without addr", func(c *Config) {
			c.Cache.Enabled = true
			c.Cache.RedisAddr = ""
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := validateConfig(cfg); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

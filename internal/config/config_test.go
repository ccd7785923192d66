package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Swarm.TokenBudget != 50000 {
		t.Errorf("token budget = %d, want 50000", cfg.Swarm.TokenBudget)
	}
	if cfg.Channel.CriticalThreshold != 0.6 {
		t.Errorf("critical threshold = %g, want 0.6", cfg.Channel.CriticalThreshold)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Swarm.Agents != DefaultConfig().Swarm.Agents {
		t.Errorf("missing file did not yield defaults")
	}
}

func TestLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swarm.yaml")
	cfg := DefaultConfig()
	cfg.Swarm.Agents = 12
	cfg.Swarm.Seed = 99
	cfg.Channel.DecayFactor = 0.98
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Swarm.Agents != 12 || got.Swarm.Seed != 99 || got.Channel.DecayFactor != 0.98 {
		t.Errorf("round trip lost values: %+v", got.Swarm)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SWARMMIND_DB", "/tmp/override.db")
	t.Setenv("SWARMMIND_SEED", "1234")
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Store.Path != "/tmp/override.db" {
		t.Errorf("store path override missed: %s", cfg.Store.Path)
	}
	if cfg.Swarm.Seed != 1234 {
		t.Errorf("seed override missed: %d", cfg.Swarm.Seed)
	}
	if cfg.Reasoner.APIKey != "test-key" {
		t.Errorf("api key override missed")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero agents", func(c *Config) { c.Swarm.Agents = 0 }},
		{"negative ticks", func(c *Config) { c.Swarm.Ticks = -1 }},
		{"threshold above one", func(c *Config) { c.Channel.CriticalThreshold = 1.5 }},
		{"zero decay", func(c *Config) { c.Channel.DecayFactor = 0 }},
		{"unknown reasoner", func(c *Config) { c.Reasoner.Mode = "oracle" }},
		{"gemini without key", func(c *Config) {
			c.Reasoner.Mode = ReasonerGemini
			c.Reasoner.APIKey = ""
		}},
	}
	// Make sure ambient env can't satisfy the gemini case.
	os.Unsetenv("GEMINI_API_KEY")

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}

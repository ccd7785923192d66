// Package config holds swarm-mind configuration: swarm sizing, the
// physics constants a run may tune, collaborator selection, and
// persistence paths. Files are YAML; a missing file means defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Reasoner modes.
const (
	ReasonerSimulated = "simulated"
	ReasonerGemini    = "gemini"
)

// ValidReasoners lists the accepted reasoner modes.
var ValidReasoners = []string{ReasonerSimulated, ReasonerGemini}

// Config holds all swarm-mind configuration.
type Config struct {
	Swarm    SwarmConfig    `yaml:"swarm"`
	Channel  ChannelConfig  `yaml:"channel"`
	Reasoner ReasonerConfig `yaml:"reasoner"`
	Store    StoreConfig    `yaml:"store"`
}

// SwarmConfig sizes the swarm and its run.
type SwarmConfig struct {
	Agents      int     `yaml:"agents"`
	Ticks       int     `yaml:"ticks"`
	TokenBudget int     `yaml:"token_budget"` // per agent
	Temperature float64 `yaml:"temperature"`  // decision softmax
	Seed        int64   `yaml:"seed"`         // 0 means time-derived
	WorldSize   float64 `yaml:"world_size"`   // side of the square field

	// CollabInterval is how many ticks pass between collaboration
	// detection sweeps.
	CollabInterval int `yaml:"collab_interval"`
}

// ChannelConfig tunes the shared pheromone channel.
type ChannelConfig struct {
	CriticalThreshold float64 `yaml:"critical_threshold"`
	DecayFactor       float64 `yaml:"decay_factor"` // applied each tick
}

// ReasonerConfig selects and configures the reasoning collaborator.
type ReasonerConfig struct {
	Mode   string `yaml:"mode"` // simulated, gemini
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// StoreConfig configures persistence.
type StoreConfig struct {
	Path string `yaml:"path"` // SQLite file, or ":memory:"
}

// DefaultConfig returns the configuration a bare `swarmmind run` uses.
func DefaultConfig() *Config {
	return &Config{
		Swarm: SwarmConfig{
			Agents:         6,
			Ticks:          200,
			TokenBudget:    50000,
			Temperature:    0.5,
			Seed:           0,
			WorldSize:      1000,
			CollabInterval: 10,
		},
		Channel: ChannelConfig{
			CriticalThreshold: 0.6,
			DecayFactor:       0.995,
		},
		Reasoner: ReasonerConfig{
			Mode:  ReasonerSimulated,
			Model: "gemini-2.0-flash",
		},
		Store: StoreConfig{
			Path: defaultStorePath(),
		},
	}
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "swarm-mind.db"
	}
	return filepath.Join(home, ".swarm-mind", "swarm.db")
}

// Load reads the YAML file at path over defaults, then applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.Reasoner.APIKey = key
	}
	if mode := os.Getenv("SWARMMIND_REASONER"); mode != "" {
		c.Reasoner.Mode = mode
	}
	if path := os.Getenv("SWARMMIND_DB"); path != "" {
		c.Store.Path = path
	}
	if seed := os.Getenv("SWARMMIND_SEED"); seed != "" {
		if v, err := strconv.ParseInt(seed, 10, 64); err == nil {
			c.Swarm.Seed = v
		}
	}
}

// Validate checks the configuration for values the simulation cannot run with.
func (c *Config) Validate() error {
	if c.Swarm.Agents <= 0 {
		return fmt.Errorf("swarm.agents must be positive, got %d", c.Swarm.Agents)
	}
	if c.Swarm.Ticks <= 0 {
		return fmt.Errorf("swarm.ticks must be positive, got %d", c.Swarm.Ticks)
	}
	if c.Swarm.TokenBudget <= 0 {
		return fmt.Errorf("swarm.token_budget must be positive, got %d", c.Swarm.TokenBudget)
	}
	if c.Swarm.WorldSize <= 0 {
		return fmt.Errorf("swarm.world_size must be positive, got %g", c.Swarm.WorldSize)
	}
	if c.Swarm.CollabInterval <= 0 {
		return fmt.Errorf("swarm.collab_interval must be positive, got %d", c.Swarm.CollabInterval)
	}
	if c.Channel.CriticalThreshold <= 0 || c.Channel.CriticalThreshold > 1 {
		return fmt.Errorf("channel.critical_threshold must be in (0,1], got %g", c.Channel.CriticalThreshold)
	}
	if c.Channel.DecayFactor <= 0 || c.Channel.DecayFactor > 1 {
		return fmt.Errorf("channel.decay_factor must be in (0,1], got %g", c.Channel.DecayFactor)
	}

	valid := false
	for _, m := range ValidReasoners {
		if c.Reasoner.Mode == m {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid reasoner mode: %s (valid: %v)", c.Reasoner.Mode, ValidReasoners)
	}
	if c.Reasoner.Mode == ReasonerGemini && c.Reasoner.APIKey == "" {
		return fmt.Errorf("gemini reasoner requires an API key (set GEMINI_API_KEY)")
	}
	return nil
}

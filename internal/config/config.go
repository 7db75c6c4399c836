// Package config loads a hub scenario from YAML, the way
// battery-backtest's internal/config loads a battery/strategy pair:
// Load validates, LoadUnchecked does not.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// SchedulerType selects one of the three scheduler variants of spec §4.
type SchedulerType string

const (
	SchedulerBruteForce SchedulerType = "bruteforce"
	SchedulerLP         SchedulerType = "lp"
	SchedulerNoDelay    SchedulerType = "nodelay"
)

// SourceConfig seeds one named source profile at startup.
type SourceConfig struct {
	Name    string    `yaml:"name"`
	Profile []float64 `yaml:"profile"`
}

// SchedulerConfig picks the scheduler variant and its lookahead.
type SchedulerConfig struct {
	Type      SchedulerType `yaml:"type"`
	Lookahead int           `yaml:"lookahead"`
}

// ServerConfig is the bind address for cmd/api.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// Config is the on-disk shape of a hub scenario.
type Config struct {
	Seed      int64           `yaml:"seed"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Sources   []SourceConfig  `yaml:"sources"`
	Server    ServerConfig    `yaml:"server"`
}

// Load reads and validates a scenario file at path.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked reads a scenario file without validating it, useful for
// debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
	return &c, nil
}

// Validate checks the fields Load depends on before anything downstream
// tries to build a scheduler from them.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	switch c.Scheduler.Type {
	case SchedulerBruteForce, SchedulerLP, SchedulerNoDelay:
	case "":
		return errors.New("scheduler.type is required")
	default:
		return fmt.Errorf("scheduler.type %q is not one of bruteforce, lp, nodelay", c.Scheduler.Type)
	}
	if c.Scheduler.Lookahead <= 0 {
		return errors.New("scheduler.lookahead must be positive")
	}
	seen := map[string]bool{}
	for _, s := range c.Sources {
		if s.Name == "" {
			return errors.New("sources[].name is required")
		}
		if seen[s.Name] {
			return fmt.Errorf("duplicate source name %q", s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}

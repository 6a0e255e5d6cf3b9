package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when --config is not given.
const DefaultPath = "planrun.yml"

// SupportedVersion is the only planrun.yml schema version.
const SupportedVersion = "1.0"

// PlanrunConfig represents the top-level planrun.yml configuration
type PlanrunConfig struct {
	Version     string            `yaml:"version"`
	OutputDir   string            `yaml:"output_dir,omitempty"`   // Where report and summary are written (default ".")
	ProjectPath string            `yaml:"project_path,omitempty"` // Project root sent to the reviewer (default: git root)
	Blackboard  *BlackboardConfig `yaml:"blackboard,omitempty"`
}

// BlackboardConfig specifies how the planning collaborators are reached
type BlackboardConfig struct {
	RedisURL    string `yaml:"redis_url,omitempty"`    // Explicit Redis URL; empty = discover via Docker
	Instance    string `yaml:"instance,omitempty"`     // Holt instance name; empty = infer from workspace
	CallTimeout string `yaml:"call_timeout,omitempty"` // Go duration bounding each call; empty = wait forever
}

// Default returns the configuration used when no planrun.yml exists.
func Default() *PlanrunConfig {
	c := &PlanrunConfig{Version: SupportedVersion}
	if err := c.Validate(); err != nil {
		panic(err)
	}
	return c
}

// Validate performs strict validation and applies defaults
func (c *PlanrunConfig) Validate() error {
	if c.Version != SupportedVersion {
		return fmt.Errorf("unsupported version: %s (expected: %s)", c.Version, SupportedVersion)
	}

	if c.OutputDir == "" {
		c.OutputDir = "."
	}

	if c.Blackboard == nil {
		c.Blackboard = &BlackboardConfig{}
	}

	return c.Blackboard.Validate()
}

// Validate checks the blackboard section
func (b *BlackboardConfig) Validate() error {
	if b.RedisURL != "" {
		if _, err := redis.ParseURL(b.RedisURL); err != nil {
			return fmt.Errorf("blackboard.redis_url: %w", err)
		}
	}

	if _, err := b.Timeout(); err != nil {
		return err
	}

	return nil
}

// Timeout returns the parsed call timeout; zero means no timeout.
func (b *BlackboardConfig) Timeout() (time.Duration, error) {
	if b.CallTimeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(b.CallTimeout)
	if err != nil {
		return 0, fmt.Errorf("blackboard.call_timeout: invalid duration %q: %w", b.CallTimeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("blackboard.call_timeout must be >= 0, got %s", d)
	}
	return d, nil
}

// Load reads and validates planrun.yml from the specified path
func Load(path string) (*PlanrunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config PlanrunConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// LoadOptional loads path if it exists and falls back to Default otherwise.
// A missing file is only tolerated when required is false.
func LoadOptional(path string, required bool) (*PlanrunConfig, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && !required {
		return Default(), nil
	}
	return Load(path)
}

// Marshal renders the configuration as YAML.
func (c *PlanrunConfig) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return data, nil
}

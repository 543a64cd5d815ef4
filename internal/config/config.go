package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/termreel/internal/workload"
)

const (
	DefaultItems      = 100
	DefaultMinDelay   = 100 * time.Millisecond
	DefaultMaxDelay   = 500 * time.Millisecond
	DefaultLogEvery   = 10
	DefaultBarLength  = 80
	DefaultSweepSpeed = 1.0
)

type Config struct {
	Items    int           `yaml:"items"`
	MinDelay time.Duration `yaml:"min_delay"`
	MaxDelay time.Duration `yaml:"max_delay"`
	LogEvery int           `yaml:"log_every"`
	FailAt   int           `yaml:"fail_at"`
	Seed     int64         `yaml:"seed"`
	Bar      BarConfig     `yaml:"bar"`
}

type BarConfig struct {
	Length      int     `yaml:"length"`
	SweepSpeed  float64 `yaml:"sweep_speed"`
	GraphHeight int     `yaml:"graph_height"`
	Title       string  `yaml:"title"`
}

func DefaultConfig() *Config {
	return &Config{
		Items:    DefaultItems,
		MinDelay: DefaultMinDelay,
		MaxDelay: DefaultMaxDelay,
		LogEvery: DefaultLogEvery,
		Bar: BarConfig{
			Length:     DefaultBarLength,
			SweepSpeed: DefaultSweepSpeed,
			Title:      "Logs:",
		},
	}
}

// Load reads a YAML config. Fields missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	return LoadOnto(path, DefaultConfig())
}

// LoadOnto reads a YAML config over a copy of base. Fields missing from the
// file keep the values from base; base itself is not modified.
func LoadOnto(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if err := c.Workload().Validate(); err != nil {
		return err
	}
	if c.Bar.Length <= 0 {
		return fmt.Errorf("bar length must be positive, got %d", c.Bar.Length)
	}
	if c.Bar.SweepSpeed < 0 {
		return fmt.Errorf("sweep speed must not be negative, got %f", c.Bar.SweepSpeed)
	}
	if c.Bar.GraphHeight < 0 {
		return fmt.Errorf("graph height must not be negative, got %d", c.Bar.GraphHeight)
	}
	return nil
}

func (c *Config) Workload() workload.Spec {
	return workload.Spec{
		Items:    c.Items,
		MinDelay: c.MinDelay,
		MaxDelay: c.MaxDelay,
		LogEvery: c.LogEvery,
		FailAt:   c.FailAt,
		Seed:     c.Seed,
	}
}

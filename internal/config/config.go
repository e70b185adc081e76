// Package config loads the YAML configuration file of the game binaries.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/amalg/go-tetris/internal/game"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "TETRIS_CONFIG"

// Config is the root of the configuration file.
type Config struct {
	Game    game.Config   `yaml:"game"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Seed    uint64        `yaml:"seed"` // 0 means seed from the clock
}

type LogConfig struct {
	File string `yaml:"file"` // Empty discards log output
}

type MetricsConfig struct {
	Addr string `yaml:"addr"` // Empty disables the HTTP endpoint
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{Game: game.DefaultConfig()}
}

// Load reads the YAML file at path over the defaults. If path is empty the
// TETRIS_CONFIG variable is used, and when that is unset too the defaults
// are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		path = os.Getenv(EnvPath)
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Game.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

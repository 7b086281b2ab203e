// Package config provides configuration loading for chat-memory.
//
// Precedence, highest to lowest: environment variables (CHAT_MEMORY_*),
// YAML config file, hardcoded defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/rcliao/chat-memory/internal/learner"
)

const envPrefix = "CHAT_MEMORY_"

// Config is the full application configuration.
type Config struct {
	DBPath  string         `koanf:"db_path"`
	Server  ServerConfig   `koanf:"server"`
	Learner learner.Config `koanf:"learner"`
	Logging LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds the HTTP API listen address.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the configuration defaults.
func Default() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		DBPath: filepath.Join(home, ".chat-memory", "memory.db"),
		Server: ServerConfig{
			Host: "localhost",
			Port: 8170,
		},
		Learner: learner.DefaultConfig(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from the YAML file at path (skipped when the file
// does not exist), then overrides with CHAT_MEMORY_* environment variables.
// An empty path means defaults plus environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if content, err := os.ReadFile(path); err == nil {
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("parse config file %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	// CHAT_MEMORY_SERVER_PORT -> server.port, CHAT_MEMORY_DB_PATH -> db_path
	if err := k.Load(env.Provider(envPrefix, ".", transformEnv), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func transformEnv(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, section := range []string{"server", "learner", "logging"} {
		prefix := section + "_"
		if strings.HasPrefix(key, prefix) {
			return section + "." + strings.TrimPrefix(key, prefix)
		}
	}
	return key
}

// Validate checks threshold and address sanity.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	if c.Learner.MinFrequency < 1 {
		return fmt.Errorf("learner.min_frequency must be at least 1, got %d", c.Learner.MinFrequency)
	}
	if c.Learner.MaxPatterns < 1 {
		return fmt.Errorf("learner.max_patterns must be at least 1, got %d", c.Learner.MaxPatterns)
	}
	if c.Learner.SimilarityThreshold <= 0 || c.Learner.SimilarityThreshold > 1 {
		return fmt.Errorf("learner.similarity_threshold must be in (0, 1], got %v", c.Learner.SimilarityThreshold)
	}
	if c.Learner.DecayRate <= 0 || c.Learner.DecayRate > 1 {
		return fmt.Errorf("learner.decay_rate must be in (0, 1], got %v", c.Learner.DecayRate)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}

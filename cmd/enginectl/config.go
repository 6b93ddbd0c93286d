package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// envPrefix scopes environment variables, e.g. ENGINECTL_CAPACITY.
const envPrefix = "enginectl"

// Config holds defaults read from the environment. Command-line flags
// override them.
type Config struct {
	Capacity int    `default:"256"`
	Seed     int64  `default:"42"`
	Log      bool   `default:"false"`
	LogLevel string `default:"info" split_words:"true"`
	LogDir   string `split_words:"true"`
}

// LoadConfig reads Config from ENGINECTL_* environment variables.
func LoadConfig() (Config, error) {
	var c Config
	if err := envconfig.Process(envPrefix, &c); err != nil {
		return Config{}, fmt.Errorf("failed to load environment config: %w", err)
	}
	return c, nil
}

// SlogLevel parses LogLevel.
func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid ENGINECTL_LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return level, nil
}

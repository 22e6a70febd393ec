package env

import (
	"fmt"
	"os"
	"strconv"

	"expense_tracker/internal/config"
)

const (
	logLevelEnvName = "LOG_LEVEL"
	logDevEnvName   = "LOG_DEV"
)

type logConfig struct {
	level   string
	devMode bool
}

func NewLogConfig() (config.LogConfig, error) {
	level := os.Getenv(logLevelEnvName)
	if len(level) == 0 {
		level = "info"
	}

	var devMode bool
	if raw := os.Getenv(logDevEnvName); len(raw) != 0 {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", logDevEnvName, err)
		}
		devMode = parsed
	}

	return &logConfig{level: level, devMode: devMode}, nil
}

func (cfg *logConfig) Level() string {
	return cfg.level
}

func (cfg *logConfig) DevMode() bool {
	return cfg.devMode
}

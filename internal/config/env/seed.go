package env

import (
	"errors"
	"fmt"
	"os"

	"expense_tracker/internal/config"

	"gopkg.in/yaml.v3"
)

const (
	seedFileEnvName = "SEED_FILE"
	defaultSeedFile = "config.yaml"
)

type seedConfig struct {
	Seed struct {
		Categories []config.SeedCategory `yaml:"categories"`
		Admins     []config.SeedAdmin    `yaml:"admins"`
	} `yaml:"seed"`
}

// SeedFilePath - путь к YAML с начальными данными
func SeedFilePath() string {
	if path := os.Getenv(seedFileEnvName); len(path) != 0 {
		return path
	}
	return defaultSeedFile
}

// NewSeedConfigFromYAML читает начальные категории и администраторов.
// Отсутствующий файл означает пустой набор
func NewSeedConfigFromYAML(path string) (config.SeedConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &seedConfig{}, nil
		}
		return nil, fmt.Errorf("read seed file: %w", err)
	}

	return parseSeedConfig(data)
}

func parseSeedConfig(data []byte) (*seedConfig, error) {
	var cfg seedConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}

	for i, c := range cfg.Seed.Categories {
		if c.Type == "" || c.Color == "" {
			return nil, fmt.Errorf("seed category #%d: type and color are required", i)
		}
	}
	for i, a := range cfg.Seed.Admins {
		if a.Username == "" || a.Email == "" || a.Password == "" {
			return nil, fmt.Errorf("seed admin #%d: username, email and password are required", i)
		}
	}

	return &cfg, nil
}

func (cfg *seedConfig) Categories() []config.SeedCategory {
	return cfg.Seed.Categories
}

func (cfg *seedConfig) Admins() []config.SeedAdmin {
	return cfg.Seed.Admins
}

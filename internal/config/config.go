package config

import (
	"time"

	"github.com/joho/godotenv"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
}

type PGConfig interface {
	DSN() string
}

type JWTConfig interface {
	AccessTokenSecretKey() []byte
	AccessTokenDuration() time.Duration
	RefreshTokenDuration() time.Duration
}

type LogConfig interface {
	Level() string
	DevMode() bool
}

// SeedConfig - данные, которые создаются при старте, если их ещё нет
type SeedConfig interface {
	Categories() []SeedCategory
	Admins() []SeedAdmin
}

type SeedCategory struct {
	Type  string `yaml:"type"`
	Color string `yaml:"color"`
}

type SeedAdmin struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

package env

import (
	"fmt"
	"os"
	"time"

	"expense_tracker/internal/config"
)

const (
	accessTokenKeyEnvName       = "ACCESS_KEY"
	accessTokenDurationEnvName  = "ACCESS_TOKEN_DURATION"
	refreshTokenDurationEnvName = "REFRESH_TOKEN_DURATION"

	defaultAccessTokenDuration  = time.Hour
	defaultRefreshTokenDuration = 7 * 24 * time.Hour
)

type jwtConfig struct {
	accessTokenSecretKey string
	accessTokenDuration  time.Duration
	refreshTokenDuration time.Duration
}

func NewJWTConfig() (config.JWTConfig, error) {
	accessKey := os.Getenv(accessTokenKeyEnvName)
	if len(accessKey) == 0 {
		return nil, fmt.Errorf("access token secret key not found")
	}

	accessTokenDuration, err := durationFromEnv(accessTokenDurationEnvName, defaultAccessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("invalid access token duration: %w", err)
	}

	refreshTokenDuration, err := durationFromEnv(refreshTokenDurationEnvName, defaultRefreshTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("invalid refresh token duration: %w", err)
	}

	return &jwtConfig{
		accessTokenSecretKey: accessKey,
		accessTokenDuration:  accessTokenDuration,
		refreshTokenDuration: refreshTokenDuration,
	}, nil
}

func (j *jwtConfig) AccessTokenSecretKey() []byte {
	return []byte(j.accessTokenSecretKey)
}

func (j *jwtConfig) RefreshTokenDuration() time.Duration {
	return j.refreshTokenDuration
}

func (j *jwtConfig) AccessTokenDuration() time.Duration {
	return j.accessTokenDuration
}

// durationFromEnv - пустая переменная даёт значение по умолчанию
func durationFromEnv(name string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(name)
	if len(raw) == 0 {
		return def, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive", name)
	}
	return d, nil
}

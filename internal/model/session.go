package model

import "time"

// AuthData - пара токенов, выданная при логине
type AuthData struct {
	AccessToken  string
	RefreshToken string
	// RefreshExpiresAt - момент истечения refresh токена
	RefreshExpiresAt time.Time
}

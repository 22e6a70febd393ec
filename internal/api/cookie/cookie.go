package cookie

import (
	"net/http"
	"time"

	"expense_tracker/internal/auth"
)

const (
	AccessTokenName  = "accessToken"
	RefreshTokenName = "refreshToken"

	path = "/api"
)

// SetAccessToken устанавливает cookie с access токеном
func SetAccessToken(w http.ResponseWriter, token string, ttl time.Duration) {
	set(w, AccessTokenName, token, int(ttl.Seconds()))
}

// SetRefreshToken устанавливает cookie с refresh токеном
func SetRefreshToken(w http.ResponseWriter, token string, ttl time.Duration) {
	set(w, RefreshTokenName, token, int(ttl.Seconds()))
}

// Clear удаляет обе cookies
func Clear(w http.ResponseWriter) {
	set(w, AccessTokenName, "", -1)
	set(w, RefreshTokenName, "", -1)
}

// Tokens достаёт пару токенов из cookies; отсутствующий токен - пустая строка
func Tokens(r *http.Request) auth.Tokens {
	return auth.Tokens{
		Access:  value(r, AccessTokenName),
		Refresh: value(r, RefreshTokenName),
	}
}

func value(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	return c.Value
}

func set(w http.ResponseWriter, name, value string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

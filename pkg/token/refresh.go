package token

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashRefreshToken - в БД хранится только хэш refresh токена
func HashRefreshToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

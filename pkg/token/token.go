package token

import (
	"errors"
	"fmt"
	"time"

	"expense_tracker/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

// Codec подписывает и проверяет access/refresh токены общим секретом
type Codec struct {
	secretKey []byte
	now       func() time.Time
}

type Option func(*Codec)

// WithClock подменяет источник времени (для тестов)
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		c.now = now
	}
}

func NewCodec(secretKey []byte, opts ...Option) *Codec {
	c := &Codec{
		secretKey: secretKey,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sign выпускает токен с идентичностью пользователя, живущий ttl от текущего момента
func (c *Codec) Sign(identity model.Identity, ttl time.Duration) (string, error) {
	now := c.now()
	claims := model.UserClaims{
		Username: identity.Username,
		Email:    identity.Email,
		Role:     identity.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(c.secretKey)
}

// Verify проверяет подпись и срок жизни токена.
// Возвращает ErrTokenExpired для просроченного токена и ErrTokenMalformed для всего остального
func (c *Codec) Verify(tokenStr string) (*model.UserClaims, error) {
	claims := &model.UserClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, errors.New("unexpected token signing method")
		}

		return c.secretKey, nil
	},
		jwt.WithTimeFunc(c.now),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenMalformed, err)
	}

	return claims, nil
}

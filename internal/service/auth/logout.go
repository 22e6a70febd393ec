package auth

import (
	"context"
	"errors"
	"fmt"

	"expense_tracker/internal/model"
	"expense_tracker/pkg/token"
)

// Logout отвязывает refresh токен от пользователя
func (s *serv) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return fmt.Errorf("%w: refresh token is missing", model.ErrValidation)
	}

	user, err := s.authRepo.GetUserByRefreshToken(ctx, token.HashRefreshToken(refreshToken))
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("%w: user", model.ErrNotFound)
		}
		return err
	}

	return s.authRepo.ClearRefreshToken(ctx, user.ID)
}

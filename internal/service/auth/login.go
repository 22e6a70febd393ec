package auth

import (
	"context"
	"errors"

	"expense_tracker/internal/model"
	"expense_tracker/pkg/pass"
	"expense_tracker/pkg/token"

	"go.uber.org/zap"
)

func (s *serv) Login(ctx context.Context, email, password string) (*model.AuthData, error) {
	if email == "" || password == "" {
		return nil, model.ErrInvalidLogin
	}

	// Получение пользователя из бд по почте
	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, model.ErrInvalidLogin
		}
		return nil, err
	}

	// Верификация пароля
	if !pass.VerifyPassword(user.Password, password) {
		return nil, model.ErrInvalidLogin
	}

	identity := user.Identity()

	// Создать access и refresh токены
	accessToken, err := s.signer.Sign(identity, s.jwtConfig.AccessTokenDuration())
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.signer.Sign(identity, s.jwtConfig.RefreshTokenDuration())
	if err != nil {
		return nil, err
	}

	// Привязать refresh токен к пользователю
	err = s.authRepo.SaveRefreshToken(ctx, user.ID, token.HashRefreshToken(refreshToken))
	if err != nil {
		s.log.WithContext(ctx).Error("save refresh token failed", zap.Int("user_id", user.ID), zap.Error(err))
		return nil, err
	}

	return &model.AuthData{
		AccessToken:      accessToken,
		RefreshToken:     refreshToken,
		RefreshExpiresAt: s.now().Add(s.jwtConfig.RefreshTokenDuration()),
	}, nil
}

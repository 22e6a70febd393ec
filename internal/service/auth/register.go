package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"expense_tracker/internal/model"
	"expense_tracker/pkg/pass"

	"go.uber.org/zap"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func (s *serv) Register(ctx context.Context, user *model.User) error {
	return s.register(ctx, user, model.RoleRegular)
}

func (s *serv) RegisterAdmin(ctx context.Context, user *model.User) error {
	return s.register(ctx, user, model.RoleAdmin)
}

func (s *serv) register(ctx context.Context, user *model.User, role model.Role) error {
	user.Username = strings.TrimSpace(user.Username)
	user.Email = strings.TrimSpace(user.Email)
	if err := validateUser(user); err != nil {
		return err
	}

	// Хэширование пароля пользователя
	passwordHash, err := pass.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = passwordHash
	user.Role = role

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Имя и почта должны быть свободны
		if err := s.ensureFree(ctx, user); err != nil {
			return err
		}

		// 2. Создать пользователя в бд
		user.ID, err = s.userRepo.CreateUser(ctx, user)
		return err
	})
	if err != nil {
		if !errors.Is(err, model.ErrAlreadyExists) {
			s.log.WithContext(ctx).Error("register failed", zap.String("email", user.Email), zap.Error(err))
		}
		return err
	}

	s.log.WithContext(ctx).Info("user registered",
		zap.String("username", user.Username),
		zap.String("role", string(role)))
	return nil
}

func (s *serv) ensureFree(ctx context.Context, user *model.User) error {
	_, err := s.userRepo.GetUserByUsername(ctx, user.Username)
	switch {
	case err == nil:
		return fmt.Errorf("%w: username is already taken", model.ErrAlreadyExists)
	case !errors.Is(err, model.ErrNotFound):
		return err
	}

	_, err = s.userRepo.GetUserByEmail(ctx, user.Email)
	switch {
	case err == nil:
		return fmt.Errorf("%w: email is already registered", model.ErrAlreadyExists)
	case !errors.Is(err, model.ErrNotFound):
		return err
	}

	return nil
}

func validateUser(user *model.User) error {
	switch {
	case user.Username == "" || user.Email == "" || user.Password == "":
		return fmt.Errorf("%w: username, email and password are required", model.ErrValidation)
	case !emailPattern.MatchString(user.Email):
		return fmt.Errorf("%w: email is not valid", model.ErrValidation)
	}
	return nil
}

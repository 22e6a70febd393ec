package transaction

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"expense_tracker/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Create сохраняет транзакцию существующего пользователя в существующей категории
func (s *serv) Create(ctx context.Context, tx *model.Transaction) (*model.Transaction, error) {
	tx.Username = strings.TrimSpace(tx.Username)
	tx.Type = strings.TrimSpace(tx.Type)
	if tx.Username == "" || tx.Type == "" {
		return nil, fmt.Errorf("%w: username, amount and type are required", model.ErrValidation)
	}

	if err := s.ensureUser(ctx, tx.Username); err != nil {
		return nil, err
	}
	category, err := s.category(ctx, tx.Type)
	if err != nil {
		return nil, err
	}

	tx.ID = uuid.New()
	if tx.Date.IsZero() {
		tx.Date = s.now().UTC()
	}

	if err := s.transactionRepo.CreateTransaction(ctx, tx); err != nil {
		s.log.WithContext(ctx).Error("create transaction failed", zap.String("username", tx.Username), zap.Error(err))
		return nil, err
	}
	tx.Color = category.Color

	return tx, nil
}

func (s *serv) ensureUser(ctx context.Context, username string) error {
	_, err := s.userRepo.GetUserByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return fmt.Errorf("%w: user %q", model.ErrNotFound, username)
	}
	return err
}

func (s *serv) category(ctx context.Context, categoryType string) (*model.Category, error) {
	category, err := s.categoryRepo.GetCategory(ctx, categoryType)
	if errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("%w: category %q", model.ErrNotFound, categoryType)
	}
	return category, err
}

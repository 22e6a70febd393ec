package user

import (
	"context"
	"errors"
	"fmt"

	"expense_tracker/internal/model"
	"expense_tracker/internal/repository"
	"expense_tracker/pkg/logger"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"go.uber.org/zap"
)

type serv struct {
	txManager       trm.Manager
	userRepo        repository.UserRepository
	transactionRepo repository.TransactionRepository
	groupRepo       repository.GroupRepository
	log             *logger.Logger
}

func NewService(
	txManager trm.Manager,
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	groupRepo repository.GroupRepository,
	log *logger.Logger,
) *serv {
	return &serv{
		txManager:       txManager,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		groupRepo:       groupRepo,
		log:             log.Named("user"),
	}
}

func (s *serv) List(ctx context.Context) ([]model.User, error) {
	return s.userRepo.GetUsers(ctx)
}

func (s *serv) Get(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if errors.Is(err, model.ErrNotFound) {
		return nil, fmt.Errorf("%w: user %q", model.ErrNotFound, username)
	}
	return user, err
}

// Delete удаляет обычного пользователя вместе с его транзакциями и членством в группе.
// Группа, в которой не осталось участников, удаляется
func (s *serv) Delete(ctx context.Context, email string) (*model.DeletedUser, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", model.ErrValidation)
	}

	var result model.DeletedUser
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.GetUserByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return fmt.Errorf("%w: user %q", model.ErrNotFound, email)
			}
			return err
		}
		if user.Role == model.RoleAdmin {
			return fmt.Errorf("%w: admins cannot be deleted", model.ErrForbidden)
		}

		// 1. Транзакции пользователя
		result.DeletedTransactions, err = s.transactionRepo.DeleteTransactionsByUsername(ctx, user.Username)
		if err != nil {
			return err
		}

		// 2. Членство в группе
		groups, err := s.groupRepo.GetGroupNamesByEmails(ctx, []string{email})
		if err != nil {
			return err
		}
		if name, ok := groups[email]; ok {
			if err := s.leaveGroup(ctx, name, email); err != nil {
				return err
			}
			result.DeletedFromGroup = true
		}

		// 3. Сам пользователь
		return s.userRepo.DeleteUserByEmail(ctx, email)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithContext(ctx).Info("user deleted",
		zap.String("email", email),
		zap.Int64("transactions", result.DeletedTransactions),
		zap.Bool("from_group", result.DeletedFromGroup))
	return &result, nil
}

func (s *serv) leaveGroup(ctx context.Context, name, email string) error {
	group, err := s.groupRepo.GetGroup(ctx, name)
	if err != nil {
		return err
	}
	if len(group.Members) <= 1 {
		return s.groupRepo.DeleteGroup(ctx, name)
	}
	return s.groupRepo.RemoveMembers(ctx, name, []string{email})
}

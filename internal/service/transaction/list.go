package transaction

import (
	"context"
	"errors"
	"fmt"

	"expense_tracker/internal/model"

	sq "github.com/Masterminds/squirrel"
)

func (s *serv) List(ctx context.Context) ([]model.Transaction, error) {
	return s.transactionRepo.GetTransactions(ctx, nil)
}

func (s *serv) ListByUser(ctx context.Context, username, category string, filters ...sq.Sqlizer) ([]model.Transaction, error) {
	if err := s.ensureUser(ctx, username); err != nil {
		return nil, err
	}

	where := sq.And{sq.Eq{usernameColumn: username}}
	if category != "" {
		if _, err := s.category(ctx, category); err != nil {
			return nil, err
		}
		where = append(where, sq.Eq{typeColumn: category})
	}
	where = append(where, filters...)

	return s.transactionRepo.GetTransactions(ctx, where)
}

// ListByGroup - транзакции всех участников группы
func (s *serv) ListByGroup(ctx context.Context, name, category string) ([]model.Transaction, error) {
	group, err := s.groupRepo.GetGroup(ctx, name)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, fmt.Errorf("%w: group %q", model.ErrNotFound, name)
		}
		return nil, err
	}

	members, err := s.userRepo.GetUsersByEmails(ctx, group.Emails())
	if err != nil {
		return nil, err
	}
	usernames := make([]string, 0, len(members))
	for _, m := range members {
		usernames = append(usernames, m.Username)
	}

	where := sq.And{sq.Eq{usernameColumn: usernames}}
	if category != "" {
		if _, err := s.category(ctx, category); err != nil {
			return nil, err
		}
		where = append(where, sq.Eq{typeColumn: category})
	}

	return s.transactionRepo.GetTransactions(ctx, where)
}

package transaction

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"expense_tracker/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Delete удаляет транзакцию пользователя. Чужая транзакция считается ненайденной
func (s *serv) Delete(ctx context.Context, username string, id uuid.UUID) error {
	tx, err := s.transactionRepo.GetTransactionByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return fmt.Errorf("%w: transaction %s", model.ErrNotFound, id)
		}
		return err
	}
	if tx.Username != username {
		return fmt.Errorf("%w: transaction %s", model.ErrNotFound, id)
	}

	_, err = s.transactionRepo.DeleteTransactions(ctx, []uuid.UUID{id})
	return err
}

// DeleteMany удаляет все транзакции из ids или ни одной, если хотя бы одной нет
func (s *serv) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: ids are required", model.ErrValidation)
	}
	unique := slices.Clone(ids)
	slices.SortFunc(unique, func(a, b uuid.UUID) int { return slices.Compare(a[:], b[:]) })
	unique = slices.Compact(unique)

	var deleted int64
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		count, err := s.transactionRepo.CountTransactionsByIDs(ctx, unique)
		if err != nil {
			return err
		}
		if count != len(unique) {
			return fmt.Errorf("%w: some transactions do not exist", model.ErrNotFound)
		}

		deleted, err = s.transactionRepo.DeleteTransactions(ctx, unique)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.log.WithContext(ctx).Info("transactions deleted", zap.Int64("count", deleted))
	return deleted, nil
}

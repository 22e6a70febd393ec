package category

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"expense_tracker/internal/model"

	"go.uber.org/zap"
)

func (s *serv) Create(ctx context.Context, category *model.Category) error {
	if err := normalize(category); err != nil {
		return err
	}

	err := s.categoryRepo.CreateCategory(ctx, category)
	if errors.Is(err, model.ErrAlreadyExists) {
		return fmt.Errorf("%w: category %q", model.ErrAlreadyExists, category.Type)
	}
	return err
}

func (s *serv) List(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.GetCategories(ctx)
}

// Update меняет тип и цвет категории; транзакции старого типа переезжают на новый
func (s *serv) Update(ctx context.Context, oldType string, category *model.Category) (int64, error) {
	if err := normalize(category); err != nil {
		return 0, err
	}

	var moved int64
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		// 1. Исходная категория должна существовать
		if _, err := s.categoryRepo.GetCategory(ctx, oldType); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				return fmt.Errorf("%w: category %q", model.ErrNotFound, oldType)
			}
			return err
		}

		// 2. Новый тип не должен быть занят другой категорией
		if category.Type != oldType {
			_, err := s.categoryRepo.GetCategory(ctx, category.Type)
			switch {
			case err == nil:
				return fmt.Errorf("%w: category %q", model.ErrAlreadyExists, category.Type)
			case !errors.Is(err, model.ErrNotFound):
				return err
			}
		}

		if err := s.categoryRepo.UpdateCategory(ctx, oldType, category); err != nil {
			return err
		}

		// 3. Перенос транзакций
		if category.Type == oldType {
			return nil
		}
		var err error
		moved, err = s.transactionRepo.UpdateTransactionsType(ctx, []string{oldType}, category.Type)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.log.WithContext(ctx).Info("category updated",
		zap.String("from", oldType),
		zap.String("to", category.Type),
		zap.Int64("moved", moved))
	return moved, nil
}

// Delete удаляет категории. Остаётся хотя бы одна: если перечислены все, самая старая сохраняется.
// Транзакции удалённых категорий переносятся на самую старую из оставшихся
func (s *serv) Delete(ctx context.Context, types []string) (int64, error) {
	if len(types) == 0 {
		return 0, fmt.Errorf("%w: types are required", model.ErrValidation)
	}
	for _, t := range types {
		if strings.TrimSpace(t) == "" {
			return 0, fmt.Errorf("%w: types must not be empty", model.ErrValidation)
		}
	}

	var moved int64
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		categories, err := s.categoryRepo.GetCategories(ctx)
		if err != nil {
			return err
		}
		if len(categories) <= 1 {
			return fmt.Errorf("%w: at least one category must remain", model.ErrValidation)
		}

		for _, t := range types {
			if !slices.ContainsFunc(categories, func(c model.Category) bool { return c.Type == t }) {
				return fmt.Errorf("%w: category %q", model.ErrNotFound, t)
			}
		}

		// categories отсортированы от старых к новым
		var target string
		var doomed []string
		for _, c := range categories {
			if target == "" && !slices.Contains(types, c.Type) {
				target = c.Type
			}
		}
		if target == "" {
			target = categories[0].Type
		}
		for _, c := range categories {
			if c.Type != target && slices.Contains(types, c.Type) {
				doomed = append(doomed, c.Type)
			}
		}

		if _, err := s.categoryRepo.DeleteCategories(ctx, doomed); err != nil {
			return err
		}
		moved, err = s.transactionRepo.UpdateTransactionsType(ctx, doomed, target)
		return err
	})
	if err != nil {
		return 0, err
	}

	s.log.WithContext(ctx).Info("categories deleted", zap.Strings("types", types), zap.Int64("moved", moved))
	return moved, nil
}

func normalize(category *model.Category) error {
	category.Type = strings.TrimSpace(category.Type)
	category.Color = strings.TrimSpace(category.Color)
	if category.Type == "" || category.Color == "" {
		return fmt.Errorf("%w: type and color are required", model.ErrValidation)
	}
	return nil
}

package category_repo

import (
	"context"
	"errors"
	"fmt"

	"expense_tracker/internal/model"
	"expense_tracker/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table        = "categories"
	colType      = "type"
	colColor     = "color"
	colCreatedAt = "created_at"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewCategoryRepository(dbc *pgxpool.Pool) repository.CategoryRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// CreateCategory - model.ErrAlreadyExists, если такой type уже есть
func (r *repo) CreateCategory(ctx context.Context, category *model.Category) error {
	query := sq.Insert(table).
		Columns(colType, colColor).
		Values(category.Type, category.Color).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("create category: %w", err)
	}

	return nil
}

func (r *repo) GetCategory(ctx context.Context, categoryType string) (*model.Category, error) {
	query := sq.Select(colType, colColor, colCreatedAt).
		From(table).
		Where(sq.Eq{colType: categoryType}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var c model.Category
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&c.Type, &c.Color, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}

	return &c, nil
}

// GetCategories - все категории, самая старая первой
func (r *repo) GetCategories(ctx context.Context) ([]model.Category, error) {
	query := selectCategories()

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("get categories: %w", err)
	}
	defer rows.Close()

	categories := []model.Category{}
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.Type, &c.Color, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// UpdateCategory - меняет type и color категории oldType
func (r *repo) UpdateCategory(ctx context.Context, oldType string, category *model.Category) error {
	query := sq.Update(table).
		Set(colType, category.Type).
		Set(colColor, category.Color).
		Where(sq.Eq{colType: oldType}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return model.ErrAlreadyExists
		}
		return fmt.Errorf("update category: %w", err)
	}
	if res.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *repo) DeleteCategories(ctx context.Context, types []string) (int64, error) {
	query := sq.Delete(table).
		Where(sq.Eq{colType: types}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("delete categories: %w", err)
	}

	return res.RowsAffected(), nil
}

func selectCategories() sq.SelectBuilder {
	return sq.Select(colType, colColor, colCreatedAt).
		From(table).
		OrderBy(colCreatedAt, colType).
		PlaceholderFormat(sq.Dollar)
}

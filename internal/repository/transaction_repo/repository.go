package transaction_repo

import (
	"context"
	"errors"
	"fmt"

	"expense_tracker/internal/model"
	"expense_tracker/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table       = "transactions"
	colID       = "id"
	colUsername = "username"
	colAmount   = "amount"
	colType     = "type"
	colDate     = "date"

	categoriesTable = "categories"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewTransactionRepository(dbc *pgxpool.Pool) repository.TransactionRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

func (r *repo) CreateTransaction(ctx context.Context, tx *model.Transaction) error {
	query := sq.Insert(table).
		Columns(colID, colUsername, colAmount, colType, colDate).
		Values(tx.ID, tx.Username, tx.Amount, tx.Type, tx.Date).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}

	return nil
}

// GetTransactions - транзакции с цветом категории, новые первыми.
// Колонки в where должны ссылаться на алиас t (transactions) или c (categories)
func (r *repo) GetTransactions(ctx context.Context, where sq.Sqlizer) ([]model.Transaction, error) {
	query := selectTransactions(where)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("get transactions: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.Username, &t.Amount, &t.Type, &t.Date, &t.Color); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	return transactions, rows.Err()
}

func (r *repo) GetTransactionByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error) {
	query := sq.Select(colID, colUsername, colAmount, colType, colDate).
		From(table).
		Where(sq.Eq{colID: id.String()}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var t model.Transaction
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&t.ID, &t.Username, &t.Amount, &t.Type, &t.Date)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}

	return &t, nil
}

// CountTransactionsByIDs - сколько из переданных id существует
func (r *repo) CountTransactionsByIDs(ctx context.Context, ids []uuid.UUID) (int, error) {
	query := sq.Select("COUNT(*)").
		From(table).
		Where(sq.Eq{colID: ids}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	if err := r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}

	return count, nil
}

func (r *repo) DeleteTransactions(ctx context.Context, ids []uuid.UUID) (int64, error) {
	return r.delete(ctx, sq.Eq{colID: ids})
}

func (r *repo) DeleteTransactionsByUsername(ctx context.Context, username string) (int64, error) {
	return r.delete(ctx, sq.Eq{colUsername: username})
}

// UpdateTransactionsType - переносит транзакции типов from в категорию to
func (r *repo) UpdateTransactionsType(ctx context.Context, from []string, to string) (int64, error) {
	query := updateTypes(from, to)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("update transactions type: %w", err)
	}

	return res.RowsAffected(), nil
}

func (r *repo) delete(ctx context.Context, where sq.Sqlizer) (int64, error) {
	query := deleteWhere(where)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("delete transactions: %w", err)
	}

	return res.RowsAffected(), nil
}

func selectTransactions(where sq.Sqlizer) sq.SelectBuilder {
	query := sq.Select("t."+colID, "t."+colUsername, "t."+colAmount, "t."+colType, "t."+colDate, "COALESCE(c.color, '')").
		From(table + " t").
		LeftJoin(categoriesTable + " c ON c.type = t." + colType).
		OrderBy("t." + colDate + " DESC").
		PlaceholderFormat(sq.Dollar)
	if where != nil {
		query = query.Where(where)
	}
	return query
}

func updateTypes(from []string, to string) sq.UpdateBuilder {
	return sq.Update(table).
		Set(colType, to).
		Where(sq.Eq{colType: from}).
		PlaceholderFormat(sq.Dollar)
}

func deleteWhere(where sq.Sqlizer) sq.DeleteBuilder {
	return sq.Delete(table).
		Where(where).
		PlaceholderFormat(sq.Dollar)
}

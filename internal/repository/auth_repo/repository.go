package auth_repo

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
	table           = "users"
	colID           = "id"
	colUsername     = "username"
	colEmail        = "email"
	colPasswordHash = "password_hash"
	colRole         = "role"
	colRefreshHash  = "refresh_token"
)

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewAuthRepository(dbc *pgxpool.Pool) repository.AuthRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// SaveRefreshToken - сохраняет хэш refresh токена, выданного при логине
func (r *repo) SaveRefreshToken(ctx context.Context, userID int, tokenHash string) error {
	return r.setRefreshToken(ctx, userID, tokenHash)
}

// ClearRefreshToken - отвязывает refresh токен при логауте
func (r *repo) ClearRefreshToken(ctx context.Context, userID int) error {
	return r.setRefreshToken(ctx, userID, nil)
}

// GetUserByRefreshToken - пользователь, которому выдан токен с этим хэшем
func (r *repo) GetUserByRefreshToken(ctx context.Context, tokenHash string) (*model.User, error) {
	query := sq.Select(colID, colUsername, colEmail, colPasswordHash, colRole, colRefreshHash).
		From(table).
		Where(sq.Eq{colRefreshHash: tokenHash}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user model.User
	var role string
	err = r.getter.DefaultTrOrDB(ctx, r.dbc).QueryRow(ctx, sqlStr, args...).
		Scan(&user.ID, &user.Username, &user.Email, &user.Password, &role, &user.RefreshToken)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get user by refresh token: %w", err)
	}

	user.Role = model.Role(role)
	return &user, nil
}

func (r *repo) setRefreshToken(ctx context.Context, userID int, value any) error {
	query := sq.Update(table).
		Set(colRefreshHash, value).
		Where(sq.Eq{colID: userID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.getter.DefaultTrOrDB(ctx, r.dbc).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}
	if res.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

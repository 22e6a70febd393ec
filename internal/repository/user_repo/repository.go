package user_repo

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
)

var userColumns = []string{colID, colUsername, colEmail, colPasswordHash, colRole}

type repo struct {
	dbc    *pgxpool.Pool
	getter *trmpgx.CtxGetter
}

func NewUserRepository(dbc *pgxpool.Pool) repository.UserRepository {
	return &repo{
		dbc:    dbc,
		getter: trmpgx.DefaultCtxGetter,
	}
}

// conn - текущая транзакция из контекста или пул
func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return r.getter.DefaultTrOrDB(ctx, r.dbc)
}

// CreateUser - создает нового пользователя в БД.
// Возвращает ID созданного пользователя или model.ErrAlreadyExists при занятом username/email
func (r *repo) CreateUser(ctx context.Context, user *model.User) (int, error) {
	query := sq.Insert(table).
		Columns(colUsername, colEmail, colPasswordHash, colRole).
		Values(user.Username, user.Email, user.Password, string(user.Role)).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return 0, model.ErrAlreadyExists
		}
		return 0, fmt.Errorf("create user: %w", err)
	}

	return id, nil
}

// GetUserByEmail - пользователь по email, model.ErrNotFound если его нет
func (r *repo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, sq.Eq{colEmail: email})
}

// GetUserByUsername - пользователь по username, model.ErrNotFound если его нет
func (r *repo) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.getOne(ctx, sq.Eq{colUsername: username})
}

func (r *repo) GetUsers(ctx context.Context) ([]model.User, error) {
	return r.getMany(ctx, nil)
}

// GetUsersByEmails - только существующие пользователи из переданного списка
func (r *repo) GetUsersByEmails(ctx context.Context, emails []string) ([]model.User, error) {
	if len(emails) == 0 {
		return []model.User{}, nil
	}
	return r.getMany(ctx, sq.Eq{colEmail: emails})
}

// DeleteUserByEmail - удаляет пользователя, model.ErrNotFound если удалять нечего
func (r *repo) DeleteUserByEmail(ctx context.Context, email string) error {
	query := sq.Delete(table).
		Where(sq.Eq{colEmail: email}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *repo) getOne(ctx context.Context, where sq.Sqlizer) (*model.User, error) {
	query := sq.Select(userColumns...).
		From(table).
		Where(where).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	user, err := scanUser(r.conn(ctx).QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	return user, nil
}

func (r *repo) getMany(ctx context.Context, where sq.Sqlizer) ([]model.User, error) {
	query := sq.Select(userColumns...).
		From(table).
		OrderBy(colID).
		PlaceholderFormat(sq.Dollar)
	if where != nil {
		query = query.Where(where)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("get users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *user)
	}

	return users, rows.Err()
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	var role string
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Password, &role)
	if err != nil {
		return nil, err
	}
	user.Role = model.Role(role)
	return &user, nil
}

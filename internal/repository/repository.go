package repository

import (
	"context"
	"errors"

	"expense_tracker/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (id int, err error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUsers(ctx context.Context) ([]model.User, error)
	GetUsersByEmails(ctx context.Context, emails []string) ([]model.User, error)
	DeleteUserByEmail(ctx context.Context, email string) error
}

// AuthRepository - привязка refresh токена к пользователю (хранится только хэш)
type AuthRepository interface {
	SaveRefreshToken(ctx context.Context, userID int, tokenHash string) error
	GetUserByRefreshToken(ctx context.Context, tokenHash string) (*model.User, error)
	ClearRefreshToken(ctx context.Context, userID int) error
}

type CategoryRepository interface {
	CreateCategory(ctx context.Context, category *model.Category) error
	GetCategory(ctx context.Context, categoryType string) (*model.Category, error)
	// GetCategories возвращает категории от самой старой к самой новой
	GetCategories(ctx context.Context) ([]model.Category, error)
	UpdateCategory(ctx context.Context, oldType string, category *model.Category) error
	DeleteCategories(ctx context.Context, types []string) (int64, error)
}

type TransactionRepository interface {
	CreateTransaction(ctx context.Context, tx *model.Transaction) error
	// GetTransactions - выборка с цветом категории; where строится над алиасом t
	GetTransactions(ctx context.Context, where sq.Sqlizer) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id uuid.UUID) (*model.Transaction, error)
	CountTransactionsByIDs(ctx context.Context, ids []uuid.UUID) (int, error)
	DeleteTransactions(ctx context.Context, ids []uuid.UUID) (int64, error)
	DeleteTransactionsByUsername(ctx context.Context, username string) (int64, error)
	UpdateTransactionsType(ctx context.Context, from []string, to string) (int64, error)
}

type GroupRepository interface {
	CreateGroup(ctx context.Context, name string, members []model.Member) error
	GetGroup(ctx context.Context, name string) (*model.Group, error)
	GetGroups(ctx context.Context) ([]model.Group, error)
	// GetGroupNamesByEmails - email -> имя группы для тех, кто уже состоит в группе
	GetGroupNamesByEmails(ctx context.Context, emails []string) (map[string]string, error)
	AddMembers(ctx context.Context, name string, members []model.Member) error
	RemoveMembers(ctx context.Context, name string, emails []string) error
	DeleteGroup(ctx context.Context, name string) error
}

const uniqueViolation = "23505"

// IsUniqueViolation - нарушение уникального ключа в postgres
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

package service

import (
	"context"

	"expense_tracker/internal/model"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type AuthService interface {
	Register(ctx context.Context, user *model.User) error
	RegisterAdmin(ctx context.Context, user *model.User) error
	Login(ctx context.Context, email, password string) (*model.AuthData, error)
	Logout(ctx context.Context, refreshToken string) error
}

type CategoryService interface {
	Create(ctx context.Context, category *model.Category) error
	List(ctx context.Context) ([]model.Category, error)
	// Update возвращает число транзакций, перенесённых на новый тип
	Update(ctx context.Context, oldType string, category *model.Category) (int64, error)
	// Delete возвращает число транзакций, перенесённых на оставшуюся категорию
	Delete(ctx context.Context, types []string) (int64, error)
}

type TransactionService interface {
	Create(ctx context.Context, tx *model.Transaction) (*model.Transaction, error)
	List(ctx context.Context) ([]model.Transaction, error)
	// ListByUser - category может быть пустой; filters накладываются через AND
	ListByUser(ctx context.Context, username, category string, filters ...sq.Sqlizer) ([]model.Transaction, error)
	ListByGroup(ctx context.Context, name, category string) ([]model.Transaction, error)
	Delete(ctx context.Context, username string, id uuid.UUID) error
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type UserService interface {
	List(ctx context.Context) ([]model.User, error)
	Get(ctx context.Context, username string) (*model.User, error)
	Delete(ctx context.Context, email string) (*model.DeletedUser, error)
}

type GroupService interface {
	Create(ctx context.Context, creator model.Identity, name string, emails []string) (*model.GroupChange, error)
	Get(ctx context.Context, name string) (*model.Group, error)
	List(ctx context.Context) ([]model.Group, error)
	// Members - адреса участников; используется проверкой доступа к группе
	Members(ctx context.Context, name string) ([]string, error)
	AddMembers(ctx context.Context, name string, emails []string) (*model.GroupChange, error)
	RemoveMembers(ctx context.Context, name string, emails []string) (*model.GroupChange, error)
	Delete(ctx context.Context, name string) error
}

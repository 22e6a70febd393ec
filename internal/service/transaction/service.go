package transaction

import (
	"time"

	"expense_tracker/internal/repository"
	"expense_tracker/pkg/logger"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

const (
	usernameColumn = "t.username"
	typeColumn     = "t.type"
)

type serv struct {
	txManager       trm.Manager
	transactionRepo repository.TransactionRepository
	userRepo        repository.UserRepository
	categoryRepo    repository.CategoryRepository
	groupRepo       repository.GroupRepository
	log             *logger.Logger
	now             func() time.Time
}

func NewService(
	txManager trm.Manager,
	transactionRepo repository.TransactionRepository,
	userRepo repository.UserRepository,
	categoryRepo repository.CategoryRepository,
	groupRepo repository.GroupRepository,
	log *logger.Logger,
) *serv {
	return &serv{
		txManager:       txManager,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		categoryRepo:    categoryRepo,
		groupRepo:       groupRepo,
		log:             log.Named("transaction"),
		now:             time.Now,
	}
}

package category

import (
	"expense_tracker/internal/repository"
	"expense_tracker/pkg/logger"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

type serv struct {
	txManager       trm.Manager
	categoryRepo    repository.CategoryRepository
	transactionRepo repository.TransactionRepository
	log             *logger.Logger
}

func NewService(
	txManager trm.Manager,
	categoryRepo repository.CategoryRepository,
	transactionRepo repository.TransactionRepository,
	log *logger.Logger,
) *serv {
	return &serv{
		txManager:       txManager,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		log:             log.Named("category"),
	}
}

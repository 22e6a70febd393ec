package auth

import (
	"time"

	"expense_tracker/internal/config"
	"expense_tracker/internal/model"
	"expense_tracker/internal/repository"
	"expense_tracker/pkg/logger"

	"github.com/avito-tech/go-transaction-manager/trm/v2"
)

// Signer выпускает токены с идентичностью пользователя
type Signer interface {
	Sign(identity model.Identity, ttl time.Duration) (string, error)
}

type serv struct {
	txManager trm.Manager
	userRepo  repository.UserRepository
	authRepo  repository.AuthRepository
	signer    Signer
	jwtConfig config.JWTConfig
	log       *logger.Logger
	now       func() time.Time
}

func NewService(
	txManager trm.Manager,
	userRepo repository.UserRepository,
	authRepo repository.AuthRepository,
	signer Signer,
	jwtConfig config.JWTConfig,
	log *logger.Logger,
) *serv {
	return &serv{
		txManager: txManager,
		userRepo:  userRepo,
		authRepo:  authRepo,
		signer:    signer,
		jwtConfig: jwtConfig,
		log:       log.Named("auth"),
		now:       time.Now,
	}
}

package app

import (
	"context"
	"database/sql"

	authAPI "expense_tracker/internal/api/auth"
	categoryAPI "expense_tracker/internal/api/category"
	"expense_tracker/internal/api/middleware"
	groupAPI "expense_tracker/internal/api/group"
	transactionAPI "expense_tracker/internal/api/transaction"
	userAPI "expense_tracker/internal/api/user"
	"expense_tracker/internal/auth"
	"expense_tracker/internal/config"
	"expense_tracker/internal/config/env"
	"expense_tracker/internal/metrics"
	"expense_tracker/internal/repository"
	"expense_tracker/internal/repository/auth_repo"
	"expense_tracker/internal/repository/category_repo"
	"expense_tracker/internal/repository/group_repo"
	"expense_tracker/internal/repository/transaction_repo"
	"expense_tracker/internal/repository/user_repo"
	"expense_tracker/internal/service"
	authService "expense_tracker/internal/service/auth"
	categoryService "expense_tracker/internal/service/category"
	groupService "expense_tracker/internal/service/group"
	transactionService "expense_tracker/internal/service/transaction"
	userService "expense_tracker/internal/service/user"
	"expense_tracker/pkg/logger"
	"expense_tracker/pkg/token"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus"
)

type ServiceProvider struct {
	//TXManager
	txManager trm.Manager

	// Database
	pgConfig config.PGConfig
	dbClient *pgxpool.Pool

	// Logging & metrics
	logCfg   config.LogConfig
	log      *logger.Logger
	registry *prometheus.Registry

	// Seed
	seedCfg config.SeedConfig

	// Auth bits
	jwtCfg   config.JWTConfig
	codec    *token.Codec
	facade   *auth.Facade
	guard    *middleware.Guard
	authRepo repository.AuthRepository
	authServ service.AuthService
	authHand *authAPI.Handler

	// User bits
	userRepo repository.UserRepository
	userServ service.UserService
	userHand *userAPI.Handler

	// Category bits
	categoryRepo repository.CategoryRepository
	categoryServ service.CategoryService
	categoryHand *categoryAPI.Handler

	// Transaction bits
	transactionRepo repository.TransactionRepository
	transactionServ service.TransactionService
	transactionHand *transactionAPI.Handler

	// Group bits
	groupRepo repository.GroupRepository
	groupServ service.GroupService
	groupHand *groupAPI.Handler

	// HTTP config
	httpCfg config.HTTPConfig
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *logger.Logger {
	if sp.log == nil {
		l, err := logger.New(sp.LogCfg().Level(), sp.LogCfg().DevMode())
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		sp.log = l
	}
	return sp.log
}

func (sp *ServiceProvider) Registry() *prometheus.Registry {
	if sp.registry == nil {
		sp.registry = prometheus.NewRegistry()
		metrics.Register(sp.registry)
	}
	return sp.registry
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		sp.dbClient = dbc
	}
	return sp.dbClient
}

// SQLDB - database/sql поверх пула для goose
func (sp *ServiceProvider) SQLDB(ctx context.Context) *sql.DB {
	return stdlib.OpenDBFromPool(sp.DBClient(ctx))
}

func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}

		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) SeedCfg() config.SeedConfig {
	if sp.seedCfg == nil {
		cfg, err := env.NewSeedConfigFromYAML(env.SeedFilePath())
		if err != nil {
			panic("failed to get seed config: " + err.Error())
		}
		sp.seedCfg = cfg
	}
	return sp.seedCfg
}

func (sp *ServiceProvider) JWTCfg() config.JWTConfig {
	if sp.jwtCfg == nil {
		cfg, err := env.NewJWTConfig()
		if err != nil {
			panic("failed to get jwt config: " + err.Error())
		}
		sp.jwtCfg = cfg
	}
	return sp.jwtCfg
}

func (sp *ServiceProvider) TokenCodec() *token.Codec {
	if sp.codec == nil {
		sp.codec = token.NewCodec(sp.JWTCfg().AccessTokenSecretKey())
	}
	return sp.codec
}

func (sp *ServiceProvider) AuthFacade() *auth.Facade {
	if sp.facade == nil {
		sp.facade = auth.NewFacade(auth.NewVerifier(sp.TokenCodec(), sp.JWTCfg().AccessTokenDuration()))
	}
	return sp.facade
}

func (sp *ServiceProvider) Guard(ctx context.Context) *middleware.Guard {
	if sp.guard == nil {
		sp.guard = middleware.NewGuard(
			sp.AuthFacade(),
			sp.GroupService(ctx).Members,
			sp.JWTCfg().AccessTokenDuration(),
			sp.Logger(),
		)
	}
	return sp.guard
}

func (sp *ServiceProvider) AuthRepo(ctx context.Context) repository.AuthRepository {
	if sp.authRepo == nil {
		sp.authRepo = auth_repo.NewAuthRepository(sp.DBClient(ctx))
	}
	return sp.authRepo
}

func (sp *ServiceProvider) AuthService(ctx context.Context) service.AuthService {
	if sp.authServ == nil {
		sp.authServ = authService.NewService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.AuthRepo(ctx),
			sp.TokenCodec(),
			sp.JWTCfg(),
			sp.Logger(),
		)
	}
	return sp.authServ
}

func (sp *ServiceProvider) AuthHandler(ctx context.Context) *authAPI.Handler {
	if sp.authHand == nil {
		sp.authHand = authAPI.NewHandler(authAPI.HandlerDeps{
			Serv:      sp.AuthService(ctx),
			JWTConfig: sp.JWTCfg(),
			Log:       sp.Logger(),
		})
	}
	return sp.authHand
}

func (sp *ServiceProvider) UserRepo(ctx context.Context) repository.UserRepository {
	if sp.userRepo == nil {
		sp.userRepo = user_repo.NewUserRepository(sp.DBClient(ctx))
	}
	return sp.userRepo
}

func (sp *ServiceProvider) UserService(ctx context.Context) service.UserService {
	if sp.userServ == nil {
		sp.userServ = userService.NewService(
			sp.TXManager(ctx),
			sp.UserRepo(ctx),
			sp.TransactionRepo(ctx),
			sp.GroupRepo(ctx),
			sp.Logger(),
		)
	}
	return sp.userServ
}

func (sp *ServiceProvider) UserHandler(ctx context.Context) *userAPI.Handler {
	if sp.userHand == nil {
		sp.userHand = userAPI.NewHandler(userAPI.HandlerDeps{Serv: sp.UserService(ctx), Log: sp.Logger()})
	}
	return sp.userHand
}

func (sp *ServiceProvider) CategoryRepo(ctx context.Context) repository.CategoryRepository {
	if sp.categoryRepo == nil {
		sp.categoryRepo = category_repo.NewCategoryRepository(sp.DBClient(ctx))
	}
	return sp.categoryRepo
}

func (sp *ServiceProvider) CategoryService(ctx context.Context) service.CategoryService {
	if sp.categoryServ == nil {
		sp.categoryServ = categoryService.NewService(
			sp.TXManager(ctx),
			sp.CategoryRepo(ctx),
			sp.TransactionRepo(ctx),
			sp.Logger(),
		)
	}
	return sp.categoryServ
}

func (sp *ServiceProvider) CategoryHandler(ctx context.Context) *categoryAPI.Handler {
	if sp.categoryHand == nil {
		sp.categoryHand = categoryAPI.NewHandler(categoryAPI.HandlerDeps{Serv: sp.CategoryService(ctx), Log: sp.Logger()})
	}
	return sp.categoryHand
}

func (sp *ServiceProvider) TransactionRepo(ctx context.Context) repository.TransactionRepository {
	if sp.transactionRepo == nil {
		sp.transactionRepo = transaction_repo.NewTransactionRepository(sp.DBClient(ctx))
	}
	return sp.transactionRepo
}

func (sp *ServiceProvider) TransactionService(ctx context.Context) service.TransactionService {
	if sp.transactionServ == nil {
		sp.transactionServ = transactionService.NewService(
			sp.TXManager(ctx),
			sp.TransactionRepo(ctx),
			sp.UserRepo(ctx),
			sp.CategoryRepo(ctx),
			sp.GroupRepo(ctx),
			sp.Logger(),
		)
	}
	return sp.transactionServ
}

func (sp *ServiceProvider) TransactionHandler(ctx context.Context) *transactionAPI.Handler {
	if sp.transactionHand == nil {
		sp.transactionHand = transactionAPI.NewHandler(transactionAPI.HandlerDeps{Serv: sp.TransactionService(ctx), Log: sp.Logger()})
	}
	return sp.transactionHand
}

func (sp *ServiceProvider) GroupRepo(ctx context.Context) repository.GroupRepository {
	if sp.groupRepo == nil {
		sp.groupRepo = group_repo.NewGroupRepository(sp.DBClient(ctx))
	}
	return sp.groupRepo
}

func (sp *ServiceProvider) GroupService(ctx context.Context) service.GroupService {
	if sp.groupServ == nil {
		sp.groupServ = groupService.NewService(
			sp.TXManager(ctx),
			sp.GroupRepo(ctx),
			sp.UserRepo(ctx),
			sp.Logger(),
		)
	}
	return sp.groupServ
}

func (sp *ServiceProvider) GroupHandler(ctx context.Context) *groupAPI.Handler {
	if sp.groupHand == nil {
		sp.groupHand = groupAPI.NewHandler(groupAPI.HandlerDeps{Serv: sp.GroupService(ctx), Log: sp.Logger()})
	}
	return sp.groupHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"expense_tracker/internal/config"
	"expense_tracker/internal/migrations"
	"expense_tracker/internal/model"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

// Run поднимает HTTP сервер и останавливает его после отмены ctx
func (s *App) Run(ctx context.Context) error {
	// .env необязателен: переменные могут прийти из окружения
	envErr := config.Load(".env")
	s.initServiceProvider()

	log := s.ServiceProvider.Logger()
	defer func() { _ = log.Sync() }()
	if envErr != nil {
		log.Debug(".env not loaded", zap.Error(envErr))
	}

	if err := s.migrate(ctx); err != nil {
		return err
	}
	if err := s.seed(ctx); err != nil {
		return err
	}
	defer s.ServiceProvider.DBClient(ctx).Close()

	srv := &http.Server{
		Addr:              s.ServiceProvider.HTTPCfg().Address(),
		Handler:           s.ServiceProvider.Router(ctx),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func (s *App) migrate(ctx context.Context) error {
	db := s.ServiceProvider.SQLDB(ctx)
	defer db.Close()

	if err := migrations.Run(ctx, db); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

// seed создаёт категории и администраторов из файла, если их ещё нет
func (s *App) seed(ctx context.Context) error {
	sp := s.ServiceProvider
	log := sp.Logger().Named("seed")
	cfg := sp.SeedCfg()

	for _, c := range cfg.Categories() {
		err := sp.CategoryService(ctx).Create(ctx, &model.Category{Type: c.Type, Color: c.Color})
		switch {
		case err == nil:
			log.Info("category created", zap.String("type", c.Type))
		case !errors.Is(err, model.ErrAlreadyExists):
			return fmt.Errorf("seed category %q: %w", c.Type, err)
		}
	}

	for _, a := range cfg.Admins() {
		err := sp.AuthService(ctx).RegisterAdmin(ctx, &model.User{Username: a.Username, Email: a.Email, Password: a.Password})
		switch {
		case err == nil:
			log.Info("admin created", zap.String("username", a.Username))
		case !errors.Is(err, model.ErrAlreadyExists):
			return fmt.Errorf("seed admin %q: %w", a.Username, err)
		}
	}

	return nil
}

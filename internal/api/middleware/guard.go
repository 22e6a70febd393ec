package middleware

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"expense_tracker/internal/api/cookie"
	"expense_tracker/internal/auth"
	"expense_tracker/internal/metrics"
	"expense_tracker/internal/model"
	"expense_tracker/pkg/logger"
	"expense_tracker/pkg/resp"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MembersFunc возвращает адреса участников группы
type MembersFunc func(ctx context.Context, name string) ([]string, error)

// Guard - middleware проверки доступа к маршрутам
type Guard struct {
	facade    *auth.Facade
	members   MembersFunc
	accessTTL time.Duration
	log       *logger.Logger
}

func NewGuard(facade *auth.Facade, members MembersFunc, accessTTL time.Duration, log *logger.Logger) *Guard {
	return &Guard{
		facade:    facade,
		members:   members,
		accessTTL: accessTTL,
		log:       log.Named("guard"),
	}
}

// Simple пропускает любого вошедшего пользователя
func (g *Guard) Simple(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.serve(w, r, next, g.facade.RequireAuth(cookie.Tokens(r)), false)
	})
}

func (g *Guard) Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		g.serve(w, r, next, g.facade.RequireAdmin(cookie.Tokens(r)), true)
	})
}

// User пропускает только владельца username из параметра маршрута
func (g *Guard) User(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res := g.facade.RequireUser(cookie.Tokens(r), chi.URLParam(r, param))
			g.serve(w, r, next, res, false)
		})
	}
}

func (g *Guard) UserOrAdmin(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, isAdmin := g.facade.RequireUserOrAdmin(cookie.Tokens(r), chi.URLParam(r, param))
			g.serve(w, r, next, res, isAdmin)
		})
	}
}

// Group пропускает участников группы из параметра маршрута
func (g *Guard) Group(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			emails, ok := g.groupEmails(w, r, param)
			if !ok {
				return
			}
			g.serve(w, r, next, g.facade.RequireGroup(cookie.Tokens(r), emails), false)
		})
	}
}

func (g *Guard) GroupOrAdmin(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			emails, ok := g.groupEmails(w, r, param)
			if !ok {
				return
			}
			res, isAdmin := g.facade.RequireGroupOrAdmin(cookie.Tokens(r), emails)
			g.serve(w, r, next, res, isAdmin)
		})
	}
}

// groupEmails - для несуществующей группы список пуст, и проверку проходит только администратор
func (g *Guard) groupEmails(w http.ResponseWriter, r *http.Request, param string) ([]string, bool) {
	emails, err := g.members(r.Context(), chi.URLParam(r, param))
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		g.log.WithContext(r.Context()).Error("group lookup failed", zap.Error(err))
		resp.WriteError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return nil, false
	}
	return emails, true
}

func (g *Guard) serve(w http.ResponseWriter, r *http.Request, next http.Handler, res auth.Result, isAdmin bool) {
	metrics.AuthDecisions.WithLabelValues(res.Cause, strconv.FormatBool(res.Renewed())).Inc()

	if !res.Authorized {
		resp.WriteError(w, http.StatusUnauthorized, res.Cause)
		return
	}

	if res.Renewed() {
		cookie.SetAccessToken(w, res.RenewedAccessToken, g.accessTTL)
		g.log.WithContext(r.Context()).Debug("access token renewed", zap.String("username", res.Identity.Username))
	}

	next.ServeHTTP(w, r.WithContext(withResult(r.Context(), res, isAdmin)))
}

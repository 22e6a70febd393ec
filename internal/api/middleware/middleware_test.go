package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"expense_tracker/internal/metrics"
	"expense_tracker/pkg/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(Logging(logger.FromZap(zap.New(core))))
	r.Get("/api/categories", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/api/categories", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Metrics)
	r.Get("/api/users/{username}", func(w http.ResponseWriter, _ *http.Request) {})

	before := testutil.ToFloat64(metrics.RequestCount.WithLabelValues(http.MethodGet, "/api/users/{username}", "200"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/alice", nil))

	after := testutil.ToFloat64(metrics.RequestCount.WithLabelValues(http.MethodGet, "/api/users/{username}", "200"))
	assert.Equal(t, before+1, after)
}

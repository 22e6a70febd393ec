package middleware

import (
	"net/http"
	"strconv"
	"time"

	"expense_tracker/internal/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// Metrics считает запросы и их длительность по шаблону маршрута chi
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		labels := []string{r.Method, route, strconv.Itoa(status)}

		metrics.RequestCount.WithLabelValues(labels...).Inc()
		metrics.RequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
	})
}

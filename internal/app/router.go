package app

import (
	"context"
	"net/http"

	"expense_tracker/internal/api/middleware"
	"expense_tracker/internal/metrics"
	"expense_tracker/pkg/resp"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging(sp.Logger().Named("http")))
	r.Use(middleware.Metrics)

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           60 * 15,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		resp.WriteJSONResponse(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", metrics.Handler(sp.Registry()))

	guard := sp.Guard(ctx)
	authHandler := sp.AuthHandler(ctx)
	categoryHandler := sp.CategoryHandler(ctx)
	transactionHandler := sp.TransactionHandler(ctx)
	userHandler := sp.UserHandler(ctx)
	groupHandler := sp.GroupHandler(ctx)

	r.Route("/api", func(rr chi.Router) {
		// Auth endpoints
		rr.Post("/register", authHandler.Register)
		rr.Post("/admin", authHandler.RegisterAdmin)
		rr.Post("/login", authHandler.Login)
		rr.Get("/logout", authHandler.Logout)

		// Category endpoints
		rr.With(guard.Simple).Get("/categories", categoryHandler.List)
		rr.With(guard.Admin).Post("/categories", categoryHandler.Create)
		rr.With(guard.Admin).Patch("/categories/{type}", categoryHandler.Update)
		rr.With(guard.Admin).Delete("/categories", categoryHandler.Delete)

		// User endpoints
		rr.With(guard.Admin).Get("/users", userHandler.List)
		rr.With(guard.UserOrAdmin("username")).Get("/users/{username}", userHandler.Get)
		rr.With(guard.Admin).Delete("/users", userHandler.Delete)

		// Transaction endpoints
		rr.Route("/users/{username}/transactions", func(ur chi.Router) {
			ur.Use(guard.User("username"))
			ur.Post("/", transactionHandler.Create)
			ur.Get("/", transactionHandler.ListByUser)
			ur.Delete("/", transactionHandler.Delete)
			ur.Get("/category/{category}", transactionHandler.ListByUserCategory)
		})
		rr.Route("/transactions", func(ar chi.Router) {
			ar.Use(guard.Admin)
			ar.Get("/", transactionHandler.List)
			ar.Delete("/", transactionHandler.DeleteMany)
			ar.Get("/users/{username}", transactionHandler.ListByUserUnfiltered)
			ar.Get("/users/{username}/category/{category}", transactionHandler.ListByUserCategory)
			ar.Get("/groups/{name}", transactionHandler.ListByGroup)
			ar.Get("/groups/{name}/category/{category}", transactionHandler.ListByGroup)
		})

		// Group endpoints
		rr.With(guard.Simple).Post("/groups", groupHandler.Create)
		rr.With(guard.Admin).Get("/groups", groupHandler.List)
		rr.With(guard.Admin).Delete("/groups", groupHandler.Delete)
		rr.Route("/groups/{name}", func(gr chi.Router) {
			gr.With(guard.GroupOrAdmin("name")).Get("/", groupHandler.Get)
			gr.With(guard.Group("name")).Get("/transactions", transactionHandler.ListByGroup)
			gr.With(guard.Group("name")).Get("/transactions/category/{category}", transactionHandler.ListByGroup)
			gr.With(guard.Group("name")).Patch("/add", groupHandler.AddMembers)
			gr.With(guard.Admin).Patch("/insert", groupHandler.AddMembers)
			gr.With(guard.Group("name")).Patch("/remove", groupHandler.RemoveMembers)
			gr.With(guard.Admin).Patch("/pull", groupHandler.RemoveMembers)
		})
	})

	return r
}

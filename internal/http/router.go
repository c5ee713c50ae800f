package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/zentracker/internal/http/advice"
	"github.com/MrJamesThe3rd/zentracker/internal/http/category"
	"github.com/MrJamesThe3rd/zentracker/internal/http/dashboard"
	"github.com/MrJamesThe3rd/zentracker/internal/http/settings"
	"github.com/MrJamesThe3rd/zentracker/internal/http/transaction"
)

type Handlers struct {
	Transactions *transaction.Handler
	Dashboard    *dashboard.Handler
	Categories   *category.Handler
	Advice       *advice.Handler
	Settings     *settings.Handler
}

func New(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/transactions", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Transactions.Routes(r)
		})

		r.Route("/dashboard", h.Dashboard.Routes)
		r.Route("/categories", h.Categories.Routes)
		r.Route("/advice", h.Advice.Routes)

		r.Group(func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Settings.Routes(r)
		})
	})

	return router
}

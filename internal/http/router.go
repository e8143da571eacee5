package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/networth/internal/http/account"
	"github.com/MrJamesThe3rd/networth/internal/http/category"
	"github.com/MrJamesThe3rd/networth/internal/http/dashboard"
	"github.com/MrJamesThe3rd/networth/internal/http/importcsv"
	"github.com/MrJamesThe3rd/networth/internal/http/render"
	"github.com/MrJamesThe3rd/networth/internal/http/rule"
	"github.com/MrJamesThe3rd/networth/internal/http/setting"
	"github.com/MrJamesThe3rd/networth/internal/http/transaction"
)

type Options struct {
	AllowedOrigins []string
	Timeout        time.Duration
}

type Handlers struct {
	Accounts     *account.Handler
	Categories   *category.Handler
	Transactions *transaction.Handler
	Settings     *setting.Handler
	Dashboard    *dashboard.Handler
	Import       *importcsv.Handler
	Rules        *rule.Handler
}

func New(opts Options, h Handlers) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if opts.Timeout > 0 {
		router.Use(middleware.Timeout(opts.Timeout))
	}

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		render.Message(w, http.StatusNotFound, "Not found")
	})

	router.Route("/api/v1", func(r chi.Router) {
		json := middleware.AllowContentType("application/json")

		r.Route("/accounts", func(r chi.Router) {
			r.Use(json)
			h.Accounts.Routes(r)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Use(json)
			h.Categories.Routes(r)
		})

		r.Route("/transactions", func(r chi.Router) {
			r.Use(json)
			h.Transactions.Routes(r)
		})

		r.Route("/settings", func(r chi.Router) {
			r.Use(json)
			h.Settings.Routes(r)
		})

		r.Route("/rules", func(r chi.Router) {
			r.Use(json)
			h.Rules.Routes(r)
		})

		r.Route("/dashboard", h.Dashboard.Routes)

		r.Route("/import", h.Import.Routes)
	})

	return router
}

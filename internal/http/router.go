// Package http wires the chi router. Everything under /api/v1 except the
// auth routes requires a bearer token.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authsvc "github.com/granahq/grana/internal/auth"
	authhttp "github.com/granahq/grana/internal/http/auth"
	"github.com/granahq/grana/internal/http/category"
	"github.com/granahq/grana/internal/http/goal"
	"github.com/granahq/grana/internal/http/importcsv"
	"github.com/granahq/grana/internal/http/profile"
	"github.com/granahq/grana/internal/http/report"
	"github.com/granahq/grana/internal/http/transaction"
)

type Config struct {
	CORSOrigins []string
}

func New(
	cfg Config,
	auth *authsvc.Service,
	authV1 *authhttp.Handler,
	transactionsV1 *transaction.Handler,
	categoriesV1 *category.Handler,
	profileV1 *profile.Handler,
	goalsV1 *goal.Handler,
	reportsV1 *report.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Route("/transactions", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				transactionsV1.Routes(r)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				categoriesV1.Routes(r)
			})

			r.Route("/profile", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				profileV1.Routes(r)
			})

			r.Route("/goals", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				goalsV1.Routes(r)
			})

			r.Route("/reports", reportsV1.Routes)
			r.Route("/import", importV1.Routes)
		})
	})

	return router
}

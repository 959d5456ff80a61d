package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/habipro/habipay/internal/http/auth"
	"github.com/habipro/habipay/internal/http/contract"
	"github.com/habipro/habipay/internal/http/payment"
)

func New(
	contracts *contract.Handler,
	payments *payment.Handler,
	login *auth.Handler,
	secret string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			login.Routes(r)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware(secret))

			r.Route("/contracts", contracts.Routes)

			r.Route("/payments", func(r chi.Router) {
				r.Use(middleware.AllowContentType("application/json"))
				payments.Routes(r)
			})
		})
	})

	return router
}

// Package server — сборка chi-роутера и HTTP-сервера приложения.
package server

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"dharma_realty/internal/config"
	"dharma_realty/internal/http/comparisonhttp"
	"dharma_realty/internal/http/crmhttp"
	"dharma_realty/internal/http/middleware"
	"dharma_realty/internal/http/notificationhttp"
	"dharma_realty/internal/http/offerhttp"
	"dharma_realty/internal/http/propertyhttp"
	"dharma_realty/internal/http/userhttp"
)

// Handlers — набор обработчиков, монтируемых в роутер.
type Handlers struct {
	User         *userhttp.Handler
	Property     *propertyhttp.Handler
	Comparison   *comparisonhttp.Handler
	Offer        *offerhttp.Handler
	CRM          *crmhttp.Handler
	Notification *notificationhttp.Handler
}

// New собирает HTTP-сервер: публичные маршруты аутентификации и health,
// всё остальное под JWT-аутентификацией в /api/v1.
func New(log *slog.Logger, cfg config.HTTPConfig, secret string, disableAuth bool, h Handlers) *http.Server {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {
		// Публичные маршруты
		h.User.Routes(r)

		// Защищённые маршруты
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(secret, disableAuth))

			h.Property.Routes(r)
			h.Comparison.Routes(r)
			h.Offer.Routes(r)
			h.CRM.Routes(r)
			h.Notification.Routes(r)
		})
	})

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  cfg.Timeout,
		WriteTimeout: cfg.Timeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

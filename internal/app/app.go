// Package app — сборка приложения: репозитории, сервисы, HTTP-сервер.
package app

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"dharma_realty/internal/config"
	"dharma_realty/internal/http/comparisonhttp"
	"dharma_realty/internal/http/crmhttp"
	"dharma_realty/internal/http/notificationhttp"
	"dharma_realty/internal/http/offerhttp"
	"dharma_realty/internal/http/propertyhttp"
	"dharma_realty/internal/http/server"
	"dharma_realty/internal/http/userhttp"
	"dharma_realty/internal/lib/logger/sl"
	"dharma_realty/internal/lib/photostore"
	"dharma_realty/internal/repository/comparison_repository"
	"dharma_realty/internal/repository/lead_repository"
	"dharma_realty/internal/repository/notification_repository"
	"dharma_realty/internal/repository/offer_repository"
	"dharma_realty/internal/repository/property_repository"
	"dharma_realty/internal/repository/user_repository"
	"dharma_realty/internal/services/comparison"
	"dharma_realty/internal/services/crm"
	"dharma_realty/internal/services/notification"
	"dharma_realty/internal/services/offer"
	"dharma_realty/internal/services/property"
	"dharma_realty/internal/services/user"
)

type App struct {
	HTTPServer *http.Server
	// StopDigest останавливает планировщик дайджеста, nil если он выключен
	StopDigest func()
}

func New(ctx context.Context, log *slog.Logger, pool *pgxpool.Pool, cfg *config.Config) *App {
	userRepository := user_repository.NewUserRepository(pool, log)
	propertyRepository := property_repository.NewPropertyRepository(pool, log)
	offerRepository := offer_repository.NewOfferRepository(pool, log)
	leadRepository := lead_repository.NewLeadRepository(pool, log)
	notificationRepository := notification_repository.NewNotificationRepository(pool, log)
	comparisonRepository := comparison_repository.NewComparisonRepository(pool, log)

	// Фотохранилище опционально, без него фото-эндпоинты отвечают 503
	var photos photostore.Client
	if cfg.Minio.Enabled {
		client, err := photostore.New(ctx, cfg.Minio, log)
		if err != nil {
			log.Error("failed to init photo storage, photos disabled", sl.Err(err))
		} else {
			photos = client
		}
	}

	notificationService := notification.New(log, notificationRepository)
	userService := user.New(log, userRepository, cfg.Secret, cfg.TokenTTL)
	propertyService := property.New(log, propertyRepository, userRepository, photos)
	comparisonService := comparison.New(log, propertyRepository, comparisonRepository, notificationService)
	offerService := offer.New(log, offerRepository, propertyRepository, notificationService)
	crmService := crm.New(log, leadRepository)

	var stopDigest func()
	if cfg.Digest.Enabled {
		stop, err := notificationService.StartDigest(cfg.Digest.Schedule)
		if err != nil {
			log.Error("failed to start digest scheduler", sl.Err(err))
		} else {
			stopDigest = stop
		}
	}

	httpServer := server.New(log, cfg.HTTP, cfg.Secret, cfg.DisableAuth, server.Handlers{
		User:         userhttp.NewHandler(userService),
		Property:     propertyhttp.NewHandler(propertyService),
		Comparison:   comparisonhttp.NewHandler(comparisonService),
		Offer:        offerhttp.NewHandler(offerService),
		CRM:          crmhttp.NewHandler(crmService),
		Notification: notificationhttp.NewHandler(notificationService),
	})

	return &App{
		HTTPServer: httpServer,
		StopDigest: stopDigest,
	}
}

package property

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"dharma_realty/internal/domain"
	"dharma_realty/internal/lib/logger/sl"
	"dharma_realty/internal/lib/photostore"
	"dharma_realty/internal/repository"
	"dharma_realty/internal/services/astrology"
	"dharma_realty/internal/services/climate"
	"dharma_realty/internal/services/fengshui"
	"dharma_realty/internal/services/landenergy"
	"dharma_realty/internal/services/numerology"
	"dharma_realty/internal/services/vastu"
)

type PropertyRepository interface {
	CreateProperty(ctx context.Context, property domain.Property) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Property, error)
	UpdateProperty(ctx context.Context, propertyID uuid.UUID, update domain.PropertyFilter) error
	ListProperties(ctx context.Context, filter domain.PropertyFilter) (*domain.PaginatedResult[domain.Property], error)
	UpdateScores(ctx context.Context, propertyID uuid.UUID, vastu, climateRisk, landEnergy *int32) error
}

// UserDirectory — доступ к профилям пользователей для совместимости.
type UserDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

type Service struct {
	log    *slog.Logger
	repo   PropertyRepository
	users  UserDirectory
	photos photostore.Client
}

var (
	ErrPropertyNotFound = errors.New("property not found")
	ErrPhotosDisabled   = errors.New("photo storage is not configured")
	ErrNoBirthDate      = errors.New("user has no birth date on file")
)

func New(log *slog.Logger, repo PropertyRepository, users UserDirectory, photos photostore.Client) *Service {
	return &Service{
		log:    log,
		repo:   repo,
		users:  users,
		photos: photos,
	}
}

// CreateProperty — создаёт новый объект недвижимости и запускает анализ.
func (s *Service) CreateProperty(ctx context.Context, property domain.Property) (uuid.UUID, error) {
	const op = "property.Service.CreateProperty"
	log := s.log.With(slog.String("op", op), slog.String("title", property.Title))

	log.Info("creating new property")

	if property.City == nil {
		property.City = domain.ExtractCityFromAddress(property.Address)
	}

	// Сначала сохраняем объект без оценок
	id, err := s.repo.CreateProperty(ctx, property)
	if err != nil {
		log.Error("failed to create property", sl.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("property created successfully", slog.String("property_id", id.String()))

	// Считаем оценки асинхронно (в фоне)
	go func() {
		if err := s.computeAndStoreScores(context.Background(), id, property); err != nil {
			s.log.Error("failed to compute analysis scores", slog.String("property_id", id.String()), sl.Err(err))
		}
	}()

	return id, nil
}

// computeAndStoreScores считает Vastu, климат и энергетику участка
// и обновляет запись объекта.
func (s *Service) computeAndStoreScores(ctx context.Context, propertyID uuid.UUID, property domain.Property) error {
	const op = "property.Service.computeAndStoreScores"

	vastuScore := vastu.Analyze(property).Score
	climateRisk := climate.Assess(property).OverallRiskScore
	landEnergy := landenergy.Analyze(property).EnergyScore

	if err := s.repo.UpdateScores(ctx, propertyID, &vastuScore, &climateRisk, &landEnergy); err != nil {
		return fmt.Errorf("%s: failed to store scores: %w", op, err)
	}

	s.log.Info("analysis scores updated",
		slog.String("property_id", propertyID.String()),
		slog.Int("vastu_score", int(vastuScore)),
		slog.Int("climate_risk", int(climateRisk)),
		slog.Int("land_energy", int(landEnergy)),
	)
	return nil
}

// GetProperty — получает объект недвижимости по ID.
func (s *Service) GetProperty(ctx context.Context, id uuid.UUID) (domain.Property, error) {
	const op = "property.Service.GetProperty"

	property, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			s.log.Warn("property not found", slog.String("property_id", id.String()))
			return domain.Property{}, fmt.Errorf("%s: %w", op, ErrPropertyNotFound)
		}
		s.log.Error("failed to get property", sl.Err(err))
		return domain.Property{}, fmt.Errorf("%s: %w", op, err)
	}

	return property, nil
}

// UpdateProperty — частичное обновление данных объекта недвижимости.
func (s *Service) UpdateProperty(ctx context.Context, propertyID uuid.UUID, update domain.PropertyFilter) (domain.Property, error) {
	const op = "property.Service.UpdateProperty"

	err := s.repo.UpdateProperty(ctx, propertyID, update)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return domain.Property{}, fmt.Errorf("%s: %w", op, ErrPropertyNotFound)
		}
		return domain.Property{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.repo.GetByID(ctx, propertyID)
	if err != nil {
		return domain.Property{}, fmt.Errorf("%s: failed to fetch updated property: %w", op, err)
	}

	// Пересчитываем оценки асинхронно, если изменились влияющие атрибуты
	if update.Address != nil || update.Facing != nil || update.Placements != nil ||
		update.Hazards != nil || update.YearBuilt != nil {
		go func() {
			if err := s.computeAndStoreScores(context.Background(), propertyID, updated); err != nil {
				s.log.Error("failed to recompute analysis scores", slog.String("property_id", propertyID.String()), sl.Err(err))
			}
		}()
	}

	return updated, nil
}

// ListProperties — возвращает объекты недвижимости по фильтру с пагинацией.
func (s *Service) ListProperties(ctx context.Context, filter domain.PropertyFilter) (*domain.PaginatedResult[domain.Property], error) {
	const op = "property.Service.ListProperties"

	properties, err := s.repo.ListProperties(ctx, filter)
	if err != nil {
		s.log.Error("failed to list properties", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return properties, nil
}

// AnalysisReport — полный отчёт по объекту: Vastu, фэншуй, климат,
// энергетика участка, нумерология адреса, ведический календарь и
// сезонная рекомендация на текущий месяц.
func (s *Service) AnalysisReport(ctx context.Context, id uuid.UUID, now time.Time) (domain.PropertyAnalysisReport, error) {
	const op = "property.Service.AnalysisReport"

	property, err := s.GetProperty(ctx, id)
	if err != nil {
		return domain.PropertyAnalysisReport{}, fmt.Errorf("%s: %w", op, err)
	}

	vastuAnalysis := vastu.Analyze(property)
	fengShuiAnalysis := fengshui.Analyze(property, now.Year())
	climateAnalysis := climate.Assess(property)
	landAnalysis := landenergy.Analyze(property)
	numAnalysis := numerology.AnalyzeAddress(property.Address)
	astroAnalysis := astrology.Analyze(now)
	season := climate.SeasonalAdvice(now.Month())

	return domain.PropertyAnalysisReport{
		PropertyID: property.ID.String(),
		Vastu:      &vastuAnalysis,
		FengShui:   &fengShuiAnalysis,
		Climate:    &climateAnalysis,
		LandEnergy: &landAnalysis,
		Numerology: &numAnalysis,
		Astrology:  &astroAnalysis,
		Season:     &season,
	}, nil
}

// CompatibilityResult — совместимость пользователя с объектом плюс
// благоприятные даты для сделки на ближайший месяц.
type CompatibilityResult struct {
	Report     domain.CompatibilityReport `json:"report"`
	LuckyDates []domain.LuckyDate         `json:"lucky_dates"`
}

// Compatibility — нумерологическая совместимость пользователя с объектом.
// Требует даты рождения в профиле пользователя.
func (s *Service) Compatibility(ctx context.Context, propertyID, userID uuid.UUID, now time.Time) (CompatibilityResult, error) {
	const op = "property.Service.Compatibility"

	property, err := s.GetProperty(ctx, propertyID)
	if err != nil {
		return CompatibilityResult{}, fmt.Errorf("%s: %w", op, err)
	}

	usr, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return CompatibilityResult{}, fmt.Errorf("%s: %w", op, err)
	}
	if usr.BirthDate == nil {
		return CompatibilityResult{}, fmt.Errorf("%s: %w", op, ErrNoBirthDate)
	}

	lifePath := numerology.LifePath(*usr.BirthDate)
	addressNumber := numerology.AnalyzeAddress(property.Address).ReducedNumber

	return CompatibilityResult{
		Report:     numerology.Compatibility(lifePath, addressNumber),
		LuckyDates: numerology.LuckyDates(numerology.ReduceToSingle(lifePath, false), now, 30),
	}, nil
}

// UploadPhoto — загружает фото объекта в хранилище.
func (s *Service) UploadPhoto(ctx context.Context, propertyID uuid.UUID, fileName, contentType string, r io.Reader, size int64) (string, error) {
	const op = "property.Service.UploadPhoto"

	if s.photos == nil {
		return "", fmt.Errorf("%s: %w", op, ErrPhotosDisabled)
	}

	// Проверяем существование объекта до загрузки
	if _, err := s.GetProperty(ctx, propertyID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	key, err := s.photos.Upload(ctx, propertyID, fileName, contentType, r, size)
	if err != nil {
		s.log.Error("failed to upload photo", slog.String("property_id", propertyID.String()), sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("photo uploaded", slog.String("property_id", propertyID.String()), slog.String("key", key))
	return key, nil
}

// ListPhotos — возвращает presigned-ссылки на фото объекта.
func (s *Service) ListPhotos(ctx context.Context, propertyID uuid.UUID) ([]string, error) {
	const op = "property.Service.ListPhotos"

	if s.photos == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrPhotosDisabled)
	}

	keys, err := s.photos.List(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	urls := make([]string, 0, len(keys))
	for _, key := range keys {
		u, err := s.photos.DownloadURL(ctx, key)
		if err != nil {
			s.log.Warn("failed to presign photo", slog.String("key", key), sl.Err(err))
			continue
		}
		urls = append(urls, u)
	}

	return urls, nil
}

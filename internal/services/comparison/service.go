package comparison

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"dharma_realty/internal/domain"
	"dharma_realty/internal/lib/logger/sl"
	"dharma_realty/internal/repository"
	"dharma_realty/internal/services/climate"
	"dharma_realty/internal/services/landenergy"
	"dharma_realty/internal/services/vastu"
)

type PropertyRepository interface {
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Property, error)
}

type ComparisonRepository interface {
	SaveComparison(ctx context.Context, c domain.SavedComparison) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.SavedComparison, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedComparison, error)
	DeleteComparison(ctx context.Context, id, userID uuid.UUID) error
}

// Notifier — создание уведомления при сохранении сравнения. Может быть nil.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, nType domain.NotificationType, title, body string, entityID *uuid.UUID)
}

type Service struct {
	log      *slog.Logger
	props    PropertyRepository
	saved    ComparisonRepository
	notifier Notifier
}

var (
	ErrPropertyNotFound   = errors.New("property not found")
	ErrComparisonNotFound = errors.New("comparison not found")
)

func New(log *slog.Logger, props PropertyRepository, saved ComparisonRepository, notifier Notifier) *Service {
	return &Service{
		log:      log,
		props:    props,
		saved:    saved,
		notifier: notifier,
	}
}

// Compare — сравнивает объекты по их идентификаторам встроенным набором
// метрик. Порядок запроса сохраняется, отсутствующие ID перечисляются
// в ошибке.
func (s *Service) Compare(ctx context.Context, propertyIDs []uuid.UUID) (*Result, error) {
	const op = "comparison.Service.Compare"

	snapshots, err := s.resolve(ctx, propertyIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	result, err := Compare(snapshots, DefaultMetrics())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("comparison computed",
		slog.Int("entities", len(propertyIDs)),
		slog.String("winner", result.CompositeWinnerID),
	)
	return result, nil
}

// resolve превращает идентификаторы в снимки, сохраняя порядок запроса.
func (s *Service) resolve(ctx context.Context, propertyIDs []uuid.UUID) ([]Snapshot, error) {
	if len(propertyIDs) < MinEntities || len(propertyIDs) > MaxEntities {
		return nil, ErrInvalidEntityCount
	}

	properties, err := s.props.GetByIDs(ctx, propertyIDs)
	if err != nil {
		s.log.Error("failed to resolve properties", sl.Err(err))
		return nil, err
	}

	byID := make(map[uuid.UUID]domain.Property, len(properties))
	for _, p := range properties {
		byID[p.ID] = p
	}

	var missing []string
	for _, id := range propertyIDs {
		if _, ok := byID[id]; !ok {
			missing = append(missing, id.String())
		}
	}
	if len(missing) > 0 {
		s.log.Warn("properties not found for comparison", slog.String("missing", strings.Join(missing, ",")))
		return nil, fmt.Errorf("%w: %s", ErrPropertyNotFound, strings.Join(missing, ", "))
	}

	now := time.Now()
	snapshots := make([]Snapshot, len(propertyIDs))
	for i, id := range propertyIDs {
		snapshots[i] = buildSnapshot(byID[id], now)
	}
	return snapshots, nil
}

// buildSnapshot собирает снимок объекта: атрибуты объявления плюс
// свежие детерминированные анализы по сохранённым характеристикам.
func buildSnapshot(p domain.Property, now time.Time) Snapshot {
	var price *float64
	if p.Price != nil {
		v := float64(*p.Price)
		price = &v
	}
	var age *float64
	if a := p.Age(now); a != nil {
		v := float64(*a)
		age = &v
	}

	vastuAnalysis := vastu.Analyze(p)
	climateAnalysis := climate.Assess(p)
	landAnalysis := landenergy.Analyze(p)

	return Snapshot{
		ID: p.ID.String(),
		Listing: ListingFacet{
			Price:       price,
			PricePerSqm: p.PricePerSqm(),
			Area:        p.Area,
			Age:         age,
		},
		Vastu:      &vastuAnalysis,
		Climate:    &climateAnalysis,
		LandEnergy: &landAnalysis,
	}
}

// Save — сохраняет закладку на сравнение. Хранятся только входные
// идентификаторы, результат всегда пересчитывается при чтении.
func (s *Service) Save(ctx context.Context, userID uuid.UUID, propertyIDs []uuid.UUID) (uuid.UUID, error) {
	const op = "comparison.Service.Save"

	// Валидируем состав до записи
	if _, err := s.resolve(ctx, propertyIDs); err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.saved.SaveComparison(ctx, domain.SavedComparison{
		UserID:      userID,
		PropertyIDs: propertyIDs,
	})
	if err != nil {
		s.log.Error("failed to save comparison", sl.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, userID, domain.NotificationComparisonSaved,
			"Comparison saved",
			fmt.Sprintf("Your comparison of %d properties is saved and will be recomputed on each view.", len(propertyIDs)),
			&id,
		)
	}

	s.log.Info("comparison saved", slog.String("comparison_id", id.String()))
	return id, nil
}

// ListSaved — закладки пользователя.
func (s *Service) ListSaved(ctx context.Context, userID uuid.UUID) ([]domain.SavedComparison, error) {
	const op = "comparison.Service.ListSaved"

	comparisons, err := s.saved.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return comparisons, nil
}

// GetSaved — читает закладку и пересчитывает результат по живым данным.
func (s *Service) GetSaved(ctx context.Context, id, userID uuid.UUID) (*Result, error) {
	const op = "comparison.Service.GetSaved"

	saved, err := s.saved.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrComparisonNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrComparisonNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if saved.UserID != userID {
		return nil, fmt.Errorf("%s: %w", op, ErrComparisonNotFound)
	}

	result, err := s.Compare(ctx, saved.PropertyIDs)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteSaved — удаляет закладку пользователя.
func (s *Service) DeleteSaved(ctx context.Context, id, userID uuid.UUID) error {
	const op = "comparison.Service.DeleteSaved"

	if err := s.saved.DeleteComparison(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrComparisonNotFound) {
			return fmt.Errorf("%s: %w", op, ErrComparisonNotFound)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

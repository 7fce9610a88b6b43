package property

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"

	"dharma_realty/internal/domain"
)

type mockPropertyRepository struct {
	CreatePropertyFunc func(ctx context.Context, property domain.Property) (uuid.UUID, error)
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (domain.Property, error)
	UpdatePropertyFunc func(ctx context.Context, propertyID uuid.UUID, update domain.PropertyFilter) error
	ListPropertiesFunc func(ctx context.Context, filter domain.PropertyFilter) (*domain.PaginatedResult[domain.Property], error)
	UpdateScoresFunc   func(ctx context.Context, propertyID uuid.UUID, vastu, climateRisk, landEnergy *int32) error
}

func (m *mockPropertyRepository) CreateProperty(ctx context.Context, property domain.Property) (uuid.UUID, error) {
	return m.CreatePropertyFunc(ctx, property)
}

func (m *mockPropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Property, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockPropertyRepository) UpdateProperty(ctx context.Context, propertyID uuid.UUID, update domain.PropertyFilter) error {
	return m.UpdatePropertyFunc(ctx, propertyID, update)
}

func (m *mockPropertyRepository) ListProperties(ctx context.Context, filter domain.PropertyFilter) (*domain.PaginatedResult[domain.Property], error) {
	return m.ListPropertiesFunc(ctx, filter)
}

func (m *mockPropertyRepository) UpdateScores(ctx context.Context, propertyID uuid.UUID, vastu, climateRisk, landEnergy *int32) error {
	return m.UpdateScoresFunc(ctx, propertyID, vastu, climateRisk, landEnergy)
}

type mockUserDirectory struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.User, error)
}

func (m *mockUserDirectory) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.GetByIDFunc(ctx, id)
}

func ptr[T any](v T) *T {
	return &v
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateProperty_ExtractsCityAndComputesScores(t *testing.T) {
	propertyID := uuid.New()

	var createdCity *string
	scored := make(chan struct{})
	repo := &mockPropertyRepository{
		CreatePropertyFunc: func(ctx context.Context, property domain.Property) (uuid.UUID, error) {
			createdCity = property.City
			return propertyID, nil
		},
		UpdateScoresFunc: func(ctx context.Context, id uuid.UUID, vastu, climateRisk, landEnergy *int32) error {
			if id != propertyID {
				t.Errorf("scores stored for %s, want %s", id, propertyID)
			}
			if vastu == nil || climateRisk == nil || landEnergy == nil {
				t.Error("expected all three scores to be set")
			}
			close(scored)
			return nil
		},
	}
	svc := New(testLogger(), repo, nil, nil)

	east := domain.DirectionEast
	id, err := svc.CreateProperty(context.Background(), domain.Property{
		Title:   "Sunrise Apartment",
		Address: "12/4 MG Road, Bengaluru 560001",
		Facing:  &east,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != propertyID {
		t.Errorf("id = %s, want %s", id, propertyID)
	}
	if createdCity == nil || *createdCity != "Bengaluru" {
		t.Errorf("city = %v, want Bengaluru", createdCity)
	}

	select {
	case <-scored:
	case <-time.After(2 * time.Second):
		t.Fatal("analysis scores were not stored")
	}
}

func TestUpdateProperty_RecomputesOnlyForAnalysisFields(t *testing.T) {
	propertyID := uuid.New()

	scored := make(chan struct{}, 1)
	repo := &mockPropertyRepository{
		UpdatePropertyFunc: func(ctx context.Context, id uuid.UUID, update domain.PropertyFilter) error {
			return nil
		},
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Property, error) {
			return domain.Property{ID: propertyID}, nil
		},
		UpdateScoresFunc: func(ctx context.Context, id uuid.UUID, vastu, climateRisk, landEnergy *int32) error {
			scored <- struct{}{}
			return nil
		},
	}
	svc := New(testLogger(), repo, nil, nil)

	// Изменение цены пересчёт не запускает
	if _, err := svc.UpdateProperty(context.Background(), propertyID, domain.PropertyFilter{Price: ptr(int64(6000000))}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-scored:
		t.Fatal("price change must not trigger score recomputation")
	case <-time.After(100 * time.Millisecond):
	}

	// Изменение ориентации — запускает
	sw := domain.DirectionSouthwest
	if _, err := svc.UpdateProperty(context.Background(), propertyID, domain.PropertyFilter{Facing: &sw}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	select {
	case <-scored:
	case <-time.After(2 * time.Second):
		t.Fatal("facing change must trigger score recomputation")
	}
}

func TestAnalysisReport_AllSections(t *testing.T) {
	propertyID := uuid.New()

	east := domain.DirectionEast
	repo := &mockPropertyRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Property, error) {
			return domain.Property{
				ID:      propertyID,
				Address: "12/4 MG Road, Bengaluru 560001",
				Facing:  &east,
			}, nil
		},
	}
	svc := New(testLogger(), repo, nil, nil)

	report, err := svc.AnalysisReport(context.Background(), propertyID, time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Vastu == nil || report.FengShui == nil || report.Climate == nil ||
		report.LandEnergy == nil || report.Numerology == nil || report.Astrology == nil || report.Season == nil {
		t.Fatalf("incomplete report: %+v", report)
	}
	if report.Numerology.HouseNumber != "12/4" {
		t.Errorf("house number = %q, want 12/4", report.Numerology.HouseNumber)
	}
	if report.Season.Season != "Winter" {
		t.Errorf("season = %q, want Winter", report.Season.Season)
	}
	if len(report.FengShui.Sectors) != 8 {
		t.Errorf("feng shui sectors = %d, want 8", len(report.FengShui.Sectors))
	}
	if report.Astrology.Panchang.Weekday != "Saturday" {
		t.Errorf("panchang weekday = %q, want Saturday", report.Astrology.Panchang.Weekday)
	}
}

func TestCompatibility(t *testing.T) {
	propertyID := uuid.New()
	userID := uuid.New()

	repo := &mockPropertyRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Property, error) {
			return domain.Property{ID: propertyID, Address: "12/4 MG Road, Bengaluru 560001"}, nil
		},
	}
	users := &mockUserDirectory{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.User, error) {
			birth := time.Date(1990, time.August, 15, 0, 0, 0, 0, time.UTC)
			return domain.User{ID: userID, BirthDate: &birth}, nil
		},
	}
	svc := New(testLogger(), repo, users, nil)

	got, err := svc.Compatibility(context.Background(), propertyID, userID, time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Жизненный путь 6, число адреса 7: вне матрицы, базовые 65
	if got.Report.LifePath != 6 {
		t.Errorf("life path = %d, want 6", got.Report.LifePath)
	}
	if got.Report.PropertyNumber != 7 {
		t.Errorf("property number = %d, want 7", got.Report.PropertyNumber)
	}
	if got.Report.Score != 65 {
		t.Errorf("score = %d, want 65", got.Report.Score)
	}
	if got.Report.EnergyAlignment != "Harmonious" {
		t.Errorf("alignment = %q, want Harmonious", got.Report.EnergyAlignment)
	}
	if len(got.LuckyDates) == 0 {
		t.Error("expected at least one lucky date in a 30-day window")
	}
}

func TestCompatibility_NoBirthDate(t *testing.T) {
	repo := &mockPropertyRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Property, error) {
			return domain.Property{ID: id, Address: "12 MG Road"}, nil
		},
	}
	users := &mockUserDirectory{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.User, error) {
			return domain.User{ID: id}, nil
		},
	}
	svc := New(testLogger(), repo, users, nil)

	_, err := svc.Compatibility(context.Background(), uuid.New(), uuid.New(), time.Now())
	if !errors.Is(err, ErrNoBirthDate) {
		t.Fatalf("expected ErrNoBirthDate, got %v", err)
	}
}

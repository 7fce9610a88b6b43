package comparison

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"

	"dharma_realty/internal/domain"
)

type mockPropertyRepository struct {
	GetByIDsFunc func(ctx context.Context, ids []uuid.UUID) ([]domain.Property, error)
}

func (m *mockPropertyRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Property, error) {
	return m.GetByIDsFunc(ctx, ids)
}

type mockComparisonRepository struct {
	SaveComparisonFunc   func(ctx context.Context, c domain.SavedComparison) (uuid.UUID, error)
	GetByIDFunc          func(ctx context.Context, id uuid.UUID) (domain.SavedComparison, error)
	ListByUserFunc       func(ctx context.Context, userID uuid.UUID) ([]domain.SavedComparison, error)
	DeleteComparisonFunc func(ctx context.Context, id, userID uuid.UUID) error
}

func (m *mockComparisonRepository) SaveComparison(ctx context.Context, c domain.SavedComparison) (uuid.UUID, error) {
	return m.SaveComparisonFunc(ctx, c)
}

func (m *mockComparisonRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.SavedComparison, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockComparisonRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedComparison, error) {
	return m.ListByUserFunc(ctx, userID)
}

func (m *mockComparisonRepository) DeleteComparison(ctx context.Context, id, userID uuid.UUID) error {
	return m.DeleteComparisonFunc(ctx, id, userID)
}

func ptr[T any](v T) *T {
	return &v
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testProperty(id uuid.UUID, price int64) domain.Property {
	return domain.Property{
		ID:    id,
		Price: ptr(price),
		Area:  ptr(80.0),
	}
}

func TestServiceCompare_PreservesRequestOrder(t *testing.T) {
	id1 := uuid.New()
	id2 := uuid.New()

	props := &mockPropertyRepository{
		GetByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]domain.Property, error) {
			// Хранилище возвращает записи в произвольном порядке
			return []domain.Property{testProperty(id2, 4500000), testProperty(id1, 5000000)}, nil
		},
	}
	svc := New(testLogger(), props, nil, nil)

	result, err := svc.Compare(context.Background(), []uuid.UUID{id1, id2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.EntityIDs[0] != id1.String() || result.EntityIDs[1] != id2.String() {
		t.Errorf("entity order = %v, want request order [%s %s]", result.EntityIDs, id1, id2)
	}
}

func TestServiceCompare_MissingIDs(t *testing.T) {
	id1 := uuid.New()
	missing := uuid.New()

	props := &mockPropertyRepository{
		GetByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]domain.Property, error) {
			return []domain.Property{testProperty(id1, 5000000)}, nil
		},
	}
	svc := New(testLogger(), props, nil, nil)

	_, err := svc.Compare(context.Background(), []uuid.UUID{id1, missing})
	if !errors.Is(err, ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), missing.String()) {
		t.Errorf("error %q does not name the missing id %s", err, missing)
	}
}

func TestServiceCompare_CountValidation(t *testing.T) {
	props := &mockPropertyRepository{
		GetByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]domain.Property, error) {
			t.Fatal("repository must not be called for invalid count")
			return nil, nil
		},
	}
	svc := New(testLogger(), props, nil, nil)

	_, err := svc.Compare(context.Background(), []uuid.UUID{uuid.New()})
	if !errors.Is(err, ErrInvalidEntityCount) {
		t.Fatalf("expected ErrInvalidEntityCount, got %v", err)
	}

	four := []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
	_, err = svc.Compare(context.Background(), four)
	if !errors.Is(err, ErrInvalidEntityCount) {
		t.Fatalf("expected ErrInvalidEntityCount, got %v", err)
	}
}

func TestServiceCompare_UsesStoredAttributes(t *testing.T) {
	id1 := uuid.New()
	id2 := uuid.New()

	east := domain.DirectionEast
	southwest := domain.DirectionSouthwest

	p1 := testProperty(id1, 5000000)
	p1.Facing = &east
	p2 := testProperty(id2, 5000000)
	p2.Facing = &southwest
	p2.Hazards = domain.HazardExposure{FloodZone: true, CycloneProne: true}

	props := &mockPropertyRepository{
		GetByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]domain.Property, error) {
			return []domain.Property{p1, p2}, nil
		},
	}
	svc := New(testLogger(), props, nil, nil)

	result, err := svc.Compare(context.Background(), []uuid.UUID{id1, id2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := result.Metrics[MetricVastuScore].WinnerID; got != id1.String() {
		t.Errorf("vastu winner = %s, want %s", got, id1)
	}
	if got := result.Metrics[MetricClimateRisk].WinnerID; got != id1.String() {
		t.Errorf("climate winner = %s, want %s", got, id1)
	}
	if result.CompositeWinnerID != id1.String() {
		t.Errorf("composite winner = %s, want %s", result.CompositeWinnerID, id1)
	}
}

func TestServiceSave_ValidatesBeforePersisting(t *testing.T) {
	id1 := uuid.New()
	missing := uuid.New()

	props := &mockPropertyRepository{
		GetByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]domain.Property, error) {
			return []domain.Property{testProperty(id1, 5000000)}, nil
		},
	}
	saved := &mockComparisonRepository{
		SaveComparisonFunc: func(ctx context.Context, c domain.SavedComparison) (uuid.UUID, error) {
			t.Fatal("must not persist a comparison with missing properties")
			return uuid.Nil, nil
		},
	}
	svc := New(testLogger(), props, saved, nil)

	_, err := svc.Save(context.Background(), uuid.New(), []uuid.UUID{id1, missing})
	if !errors.Is(err, ErrPropertyNotFound) {
		t.Fatalf("expected ErrPropertyNotFound, got %v", err)
	}
}

func TestServiceGetSaved_RecomputesAndChecksOwner(t *testing.T) {
	id1 := uuid.New()
	id2 := uuid.New()
	owner := uuid.New()
	comparisonID := uuid.New()

	props := &mockPropertyRepository{
		GetByIDsFunc: func(ctx context.Context, ids []uuid.UUID) ([]domain.Property, error) {
			return []domain.Property{testProperty(id1, 5000000), testProperty(id2, 4500000)}, nil
		},
	}
	saved := &mockComparisonRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.SavedComparison, error) {
			return domain.SavedComparison{
				ID:          comparisonID,
				UserID:      owner,
				PropertyIDs: []uuid.UUID{id1, id2},
			}, nil
		},
	}
	svc := New(testLogger(), props, saved, nil)

	result, err := svc.GetSaved(context.Background(), comparisonID, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.CompositeWinnerID == "" {
		t.Error("expected a recomputed result")
	}

	// Чужая закладка недоступна
	_, err = svc.GetSaved(context.Background(), comparisonID, uuid.New())
	if !errors.Is(err, ErrComparisonNotFound) {
		t.Fatalf("expected ErrComparisonNotFound for foreign user, got %v", err)
	}
}

package offer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"

	"dharma_realty/internal/domain"
)

type mockOfferRepository struct {
	CreateOfferFunc    func(ctx context.Context, offer domain.Offer) (uuid.UUID, error)
	GetByIDFunc        func(ctx context.Context, id uuid.UUID) (domain.Offer, error)
	ListByPropertyFunc func(ctx context.Context, propertyID uuid.UUID) ([]domain.Offer, error)
	UpdateStatusFunc   func(ctx context.Context, offerID uuid.UUID, status domain.OfferStatus, counterAmount *int64) error
}

func (m *mockOfferRepository) CreateOffer(ctx context.Context, offer domain.Offer) (uuid.UUID, error) {
	return m.CreateOfferFunc(ctx, offer)
}

func (m *mockOfferRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Offer, error) {
	return m.GetByIDFunc(ctx, id)
}

func (m *mockOfferRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]domain.Offer, error) {
	return m.ListByPropertyFunc(ctx, propertyID)
}

func (m *mockOfferRepository) UpdateStatus(ctx context.Context, offerID uuid.UUID, status domain.OfferStatus, counterAmount *int64) error {
	return m.UpdateStatusFunc(ctx, offerID, status, counterAmount)
}

type mockPropertyRepository struct {
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (domain.Property, error)
}

func (m *mockPropertyRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Property, error) {
	return m.GetByIDFunc(ctx, id)
}

type recordedNotification struct {
	userID uuid.UUID
	nType  domain.NotificationType
}

type mockNotifier struct {
	sent []recordedNotification
}

func (m *mockNotifier) Notify(ctx context.Context, userID uuid.UUID, nType domain.NotificationType, title, body string, entityID *uuid.UUID) {
	m.sent = append(m.sent, recordedNotification{userID: userID, nType: nType})
}

func ptr[T any](v T) *T {
	return &v
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateOffer_NotifiesOwner(t *testing.T) {
	propertyID := uuid.New()
	ownerID := uuid.New()
	buyerID := uuid.New()
	offerID := uuid.New()

	props := &mockPropertyRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Property, error) {
			return domain.Property{ID: propertyID, Title: "Lake View Villa", OwnerUserID: ownerID}, nil
		},
	}
	offers := &mockOfferRepository{
		CreateOfferFunc: func(ctx context.Context, offer domain.Offer) (uuid.UUID, error) {
			if offer.Status != domain.OfferStatusNew {
				t.Errorf("new offer status = %s, want NEW", offer.Status)
			}
			return offerID, nil
		},
	}
	notifier := &mockNotifier{}
	svc := New(testLogger(), offers, props, notifier)

	id, err := svc.CreateOffer(context.Background(), propertyID, buyerID, 9000000, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != offerID {
		t.Errorf("id = %s, want %s", id, offerID)
	}

	if len(notifier.sent) != 1 {
		t.Fatalf("notifications = %d, want 1", len(notifier.sent))
	}
	if notifier.sent[0].userID != ownerID || notifier.sent[0].nType != domain.NotificationOfferReceived {
		t.Errorf("unexpected notification: %+v", notifier.sent[0])
	}
}

func TestUpdateStatus_Transitions(t *testing.T) {
	propertyID := uuid.New()
	ownerID := uuid.New()
	buyerID := uuid.New()
	offerID := uuid.New()

	props := &mockPropertyRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Property, error) {
			return domain.Property{ID: propertyID, OwnerUserID: ownerID}, nil
		},
	}

	newService := func(status domain.OfferStatus) *Service {
		offers := &mockOfferRepository{
			GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Offer, error) {
				return domain.Offer{ID: offerID, PropertyID: propertyID, BuyerID: buyerID, Status: status}, nil
			},
			UpdateStatusFunc: func(ctx context.Context, id uuid.UUID, next domain.OfferStatus, counterAmount *int64) error {
				return nil
			},
		}
		return New(testLogger(), offers, props, nil)
	}

	// Владелец принимает новое предложение
	if _, err := newService(domain.OfferStatusNew).UpdateStatus(
		context.Background(), offerID, ownerID, domain.OfferStatusAccepted, nil); err != nil {
		t.Errorf("owner accept: unexpected error: %v", err)
	}

	// Из терминального статуса переходов нет
	_, err := newService(domain.OfferStatusAccepted).UpdateStatus(
		context.Background(), offerID, ownerID, domain.OfferStatusCountered, ptr(int64(9500000)))
	if !errors.Is(err, ErrInvalidTransition) {
		t.Errorf("expected ErrInvalidTransition, got %v", err)
	}

	// Встречное предложение требует суммы
	_, err = newService(domain.OfferStatusNew).UpdateStatus(
		context.Background(), offerID, ownerID, domain.OfferStatusCountered, nil)
	if !errors.Is(err, ErrCounterRequired) {
		t.Errorf("expected ErrCounterRequired, got %v", err)
	}
}

func TestUpdateStatus_Permissions(t *testing.T) {
	propertyID := uuid.New()
	ownerID := uuid.New()
	buyerID := uuid.New()
	offerID := uuid.New()

	props := &mockPropertyRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Property, error) {
			return domain.Property{ID: propertyID, OwnerUserID: ownerID}, nil
		},
	}
	offers := &mockOfferRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Offer, error) {
			return domain.Offer{ID: offerID, PropertyID: propertyID, BuyerID: buyerID, Status: domain.OfferStatusNew}, nil
		},
		UpdateStatusFunc: func(ctx context.Context, id uuid.UUID, next domain.OfferStatus, counterAmount *int64) error {
			return nil
		},
	}
	svc := New(testLogger(), offers, props, nil)

	// Покупатель не может принять своё же предложение
	_, err := svc.UpdateStatus(context.Background(), offerID, buyerID, domain.OfferStatusAccepted, nil)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("buyer accept: expected ErrPermissionDenied, got %v", err)
	}

	// Владелец не может отозвать чужое предложение
	_, err = svc.UpdateStatus(context.Background(), offerID, ownerID, domain.OfferStatusWithdrawn, nil)
	if !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("owner withdraw: expected ErrPermissionDenied, got %v", err)
	}

	// Покупатель отзывает своё
	if _, err := svc.UpdateStatus(context.Background(), offerID, buyerID, domain.OfferStatusWithdrawn, nil); err != nil {
		t.Errorf("buyer withdraw: unexpected error: %v", err)
	}
}

func TestNegotiationAdvice_FreshListing(t *testing.T) {
	propertyID := uuid.New()
	props := &mockPropertyRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Property, error) {
			return domain.Property{
				ID:           propertyID,
				Price:        ptr(int64(10000000)),
				DaysOnMarket: 10,
			}, nil
		},
	}
	svc := New(testLogger(), nil, props, nil)

	advice, err := svc.NegotiationAdvice(context.Background(), propertyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if advice.ZopaMin != 9500000 || advice.ZopaMax != 10000000 {
		t.Errorf("zopa = [%d, %d], want [9500000, 10000000]", advice.ZopaMin, advice.ZopaMax)
	}
	// 9500000 + 30% зоны = 9650000, уже кратно 10000
	if advice.RecommendedOffer != 9650000 {
		t.Errorf("recommended = %d, want 9650000", advice.RecommendedOffer)
	}
	// Скидка 3.5% без надбавок за выдержку
	if advice.SuccessProbability != 0.90 {
		t.Errorf("probability = %v, want 0.90", advice.SuccessProbability)
	}
	if advice.Strategy != "BALANCED" {
		t.Errorf("strategy = %q, want BALANCED", advice.Strategy)
	}

	if len(advice.CounterRounds) != 3 {
		t.Fatalf("counter rounds = %d, want 3", len(advice.CounterRounds))
	}
	if advice.CounterRounds[0].Amount != 9650000 {
		t.Errorf("round 1 = %d, want 9650000", advice.CounterRounds[0].Amount)
	}
	// 9650000 + 30% разрыва = 9755000, округление до 10000 вверх
	if advice.CounterRounds[1].Amount != 9760000 {
		t.Errorf("round 2 = %d, want 9760000", advice.CounterRounds[1].Amount)
	}
	if advice.CounterRounds[2].Amount != 9830000 {
		t.Errorf("round 3 = %d, want 9830000", advice.CounterRounds[2].Amount)
	}
}

func TestNegotiationAdvice_StaleListing(t *testing.T) {
	propertyID := uuid.New()
	props := &mockPropertyRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Property, error) {
			return domain.Property{
				ID:           propertyID,
				Price:        ptr(int64(10000000)),
				DaysOnMarket: 120,
			}, nil
		},
	}
	svc := New(testLogger(), nil, props, nil)

	advice, err := svc.NegotiationAdvice(context.Background(), propertyID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if advice.ZopaMin != 8500000 {
		t.Errorf("zopa min = %d, want 8500000", advice.ZopaMin)
	}
	if advice.RecommendedOffer != 8950000 {
		t.Errorf("recommended = %d, want 8950000", advice.RecommendedOffer)
	}
	// Скидка 10.5% даёт 0.50, плюс 0.15 за выдержку свыше 90 дней
	if advice.SuccessProbability != 0.65 {
		t.Errorf("probability = %v, want 0.65", advice.SuccessProbability)
	}
	if advice.Strategy != "AGGRESSIVE" {
		t.Errorf("strategy = %q, want AGGRESSIVE", advice.Strategy)
	}
	if len(advice.Rationale) == 0 {
		t.Error("expected rationale for a stale listing")
	}
}

func TestNegotiationAdvice_NoPrice(t *testing.T) {
	props := &mockPropertyRepository{
		GetByIDFunc: func(ctx context.Context, id uuid.UUID) (domain.Property, error) {
			return domain.Property{ID: id}, nil
		},
	}
	svc := New(testLogger(), nil, props, nil)

	_, err := svc.NegotiationAdvice(context.Background(), uuid.New())
	if !errors.Is(err, ErrNoAskingPrice) {
		t.Fatalf("expected ErrNoAskingPrice, got %v", err)
	}
}

func TestCommission(t *testing.T) {
	got := Commission(10000000)

	if got.Commission != 200000 {
		t.Errorf("commission = %d, want 200000", got.Commission)
	}
	if got.AgentShare != 120000 {
		t.Errorf("agent share = %d, want 120000", got.AgentShare)
	}
	if got.AgencyShare != 80000 {
		t.Errorf("agency share = %d, want 80000", got.AgencyShare)
	}
	if got.Rate != 0.02 {
		t.Errorf("rate = %v, want 0.02", got.Rate)
	}
}

package offer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"dharma_realty/internal/domain"
	"dharma_realty/internal/lib/logger/sl"
	"dharma_realty/internal/repository"
	"dharma_realty/internal/services/vastu"
)

type OfferRepository interface {
	CreateOffer(ctx context.Context, offer domain.Offer) (uuid.UUID, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Offer, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]domain.Offer, error)
	UpdateStatus(ctx context.Context, offerID uuid.UUID, status domain.OfferStatus, counterAmount *int64) error
}

type PropertyRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Property, error)
}

// Notifier — создание уведомлений по событиям оффера. Может быть nil.
type Notifier interface {
	Notify(ctx context.Context, userID uuid.UUID, nType domain.NotificationType, title, body string, entityID *uuid.UUID)
}

type Service struct {
	log      *slog.Logger
	offers   OfferRepository
	props    PropertyRepository
	notifier Notifier
}

var (
	ErrOfferNotFound     = errors.New("offer not found")
	ErrPropertyNotFound  = errors.New("property not found")
	ErrInvalidTransition = errors.New("invalid offer status transition")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrNoAskingPrice     = errors.New("property has no asking price")
	ErrCounterRequired   = errors.New("counter amount is required for COUNTERED status")
)

func New(log *slog.Logger, offers OfferRepository, props PropertyRepository, notifier Notifier) *Service {
	return &Service{
		log:      log,
		offers:   offers,
		props:    props,
		notifier: notifier,
	}
}

// CreateOffer — создаёт предложение покупателя и уведомляет владельца объекта.
func (s *Service) CreateOffer(ctx context.Context, propertyID, buyerID uuid.UUID, amount int64, message *string) (uuid.UUID, error) {
	const op = "offer.Service.CreateOffer"

	property, err := s.props.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return uuid.Nil, fmt.Errorf("%s: %w", op, ErrPropertyNotFound)
		}
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := s.offers.CreateOffer(ctx, domain.Offer{
		PropertyID: propertyID,
		BuyerID:    buyerID,
		Amount:     amount,
		Message:    message,
		Status:     domain.OfferStatusNew,
	})
	if err != nil {
		s.log.Error("failed to create offer", sl.Err(err))
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.notifier != nil {
		s.notifier.Notify(ctx, property.OwnerUserID, domain.NotificationOfferReceived,
			"New offer received",
			fmt.Sprintf("You received an offer of %d for %q.", amount, property.Title),
			&id,
		)
	}

	s.log.Info("offer created",
		slog.String("offer_id", id.String()),
		slog.String("property_id", propertyID.String()),
	)
	return id, nil
}

// GetOffer — возвращает предложение, доступно покупателю и владельцу объекта.
func (s *Service) GetOffer(ctx context.Context, offerID, userID uuid.UUID) (domain.Offer, error) {
	const op = "offer.Service.GetOffer"

	offer, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return domain.Offer{}, fmt.Errorf("%s: %w", op, ErrOfferNotFound)
		}
		return domain.Offer{}, fmt.Errorf("%s: %w", op, err)
	}

	if offer.BuyerID != userID {
		property, err := s.props.GetByID(ctx, offer.PropertyID)
		if err != nil {
			return domain.Offer{}, fmt.Errorf("%s: %w", op, err)
		}
		if property.OwnerUserID != userID {
			return domain.Offer{}, fmt.Errorf("%s: %w", op, ErrOfferNotFound)
		}
	}

	return offer, nil
}

// ListByProperty — предложения по объекту, доступно только его владельцу.
func (s *Service) ListByProperty(ctx context.Context, propertyID, userID uuid.UUID) ([]domain.Offer, error) {
	const op = "offer.Service.ListByProperty"

	property, err := s.props.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return nil, fmt.Errorf("%s: %w", op, ErrPropertyNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if property.OwnerUserID != userID {
		return nil, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
	}

	offers, err := s.offers.ListByProperty(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return offers, nil
}

// UpdateStatus — переводит предложение в новый статус с проверкой прав:
// владелец объекта принимает, отклоняет и делает встречное предложение,
// покупатель может только отозвать своё.
func (s *Service) UpdateStatus(ctx context.Context, offerID, userID uuid.UUID, next domain.OfferStatus, counterAmount *int64) (domain.Offer, error) {
	const op = "offer.Service.UpdateStatus"

	offer, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, repository.ErrOfferNotFound) {
			return domain.Offer{}, fmt.Errorf("%s: %w", op, ErrOfferNotFound)
		}
		return domain.Offer{}, fmt.Errorf("%s: %w", op, err)
	}

	property, err := s.props.GetByID(ctx, offer.PropertyID)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("%s: %w", op, err)
	}

	if next == domain.OfferStatusWithdrawn {
		if offer.BuyerID != userID {
			return domain.Offer{}, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
		}
	} else {
		if property.OwnerUserID != userID {
			return domain.Offer{}, fmt.Errorf("%s: %w", op, ErrPermissionDenied)
		}
	}

	if !offer.Status.CanTransitionTo(next) {
		return domain.Offer{}, fmt.Errorf("%s: %w: %s -> %s", op, ErrInvalidTransition, offer.Status, next)
	}
	if next == domain.OfferStatusCountered && counterAmount == nil {
		return domain.Offer{}, fmt.Errorf("%s: %w", op, ErrCounterRequired)
	}

	if err := s.offers.UpdateStatus(ctx, offerID, next, counterAmount); err != nil {
		s.log.Error("failed to update offer status", sl.Err(err))
		return domain.Offer{}, fmt.Errorf("%s: %w", op, err)
	}

	updated, err := s.offers.GetByID(ctx, offerID)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("%s: %w", op, err)
	}

	// Покупателя уведомляем о решении продавца, продавца — об отзыве
	if s.notifier != nil {
		if next == domain.OfferStatusWithdrawn {
			s.notifier.Notify(ctx, property.OwnerUserID, domain.NotificationOfferStatus,
				"Offer withdrawn",
				fmt.Sprintf("The offer of %d for %q was withdrawn by the buyer.", offer.Amount, property.Title),
				&offerID,
			)
		} else {
			s.notifier.Notify(ctx, offer.BuyerID, domain.NotificationOfferStatus,
				fmt.Sprintf("Offer %s", next),
				fmt.Sprintf("Your offer for %q is now %s.", property.Title, next),
				&offerID,
			)
		}
	}

	s.log.Info("offer status updated",
		slog.String("offer_id", offerID.String()),
		slog.String("status", next.String()),
	)
	return updated, nil
}

// Пороги выдержки объекта на рынке, от них зависят уступки продавца.
const (
	staleDOM = 90
	slowDOM  = 60
)

// NegotiationAdvice — детерминированная переговорная аналитика по объекту.
// Все величины считаются по сохранённым данным, без случайности.
func (s *Service) NegotiationAdvice(ctx context.Context, propertyID uuid.UUID) (domain.NegotiationAdvice, error) {
	const op = "offer.Service.NegotiationAdvice"

	property, err := s.props.GetByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, repository.ErrPropertyNotFound) {
			return domain.NegotiationAdvice{}, fmt.Errorf("%s: %w", op, ErrPropertyNotFound)
		}
		return domain.NegotiationAdvice{}, fmt.Errorf("%s: %w", op, err)
	}
	if property.Price == nil {
		return domain.NegotiationAdvice{}, fmt.Errorf("%s: %w", op, ErrNoAskingPrice)
	}

	asking := *property.Price
	dom := property.DaysOnMarket

	zopaMin, zopaMax := zopa(asking, dom)
	recommended := roundToTenThousand(zopaMin + int64(float64(zopaMax-zopaMin)*0.3))

	strategy := "BALANCED"
	if dom > staleDOM {
		strategy = "AGGRESSIVE"
	}

	advice := domain.NegotiationAdvice{
		PropertyID:         propertyID,
		AskingPrice:        asking,
		DaysOnMarket:       dom,
		ZopaMin:            zopaMin,
		ZopaMax:            zopaMax,
		RecommendedOffer:   recommended,
		CounterRounds:      counterRounds(recommended, asking),
		SuccessProbability: successProbability(asking, recommended, dom),
		Strategy:           strategy,
		Rationale:          rationale(property),
	}
	return advice, nil
}

// zopa оценивает зону возможного соглашения: чем дольше объект
// на рынке, тем ниже предполагаемый минимум продавца.
func zopa(asking int64, daysOnMarket int32) (int64, int64) {
	factor := 0.95
	switch {
	case daysOnMarket > staleDOM:
		factor = 0.85
	case daysOnMarket > slowDOM:
		factor = 0.90
	}
	return int64(math.Round(float64(asking) * factor)), asking
}

// counterRounds планирует торг: первое предложение, затем встречные
// на 30% и 50% разрыва до запрошенной цены.
func counterRounds(recommended, asking int64) []domain.CounterRound {
	gap := float64(asking - recommended)
	return []domain.CounterRound{
		{Round: 1, Amount: recommended},
		{Round: 2, Amount: roundToTenThousand(recommended + int64(gap*0.3))},
		{Round: 3, Amount: roundToTenThousand(recommended + int64(gap*0.5))},
	}
}

// successProbability — вероятность принятия рекомендованной цены
// по величине скидки, с поправкой на выдержку объекта на рынке.
func successProbability(asking, recommended int64, daysOnMarket int32) float64 {
	discount := float64(asking-recommended) / float64(asking) * 100

	var p float64
	switch {
	case discount < 5:
		p = 0.90
	case discount < 10:
		p = 0.75
	case discount < 15:
		p = 0.50
	default:
		p = 0.30
	}

	switch {
	case daysOnMarket > staleDOM:
		p += 0.15
	case daysOnMarket > slowDOM:
		p += 0.10
	}

	return math.Min(p, 0.95)
}

// rationale перечисляет аргументы для торга по данным объекта.
func rationale(p domain.Property) []string {
	var points []string

	if age := p.Age(time.Now()); age != nil && *age > 15 {
		points = append(points, fmt.Sprintf("Property is %d years old, maintenance costs are a fair bargaining point", *age))
	}
	if p.DaysOnMarket > slowDOM {
		points = append(points, fmt.Sprintf("Listed for %d days, seller is likely motivated", p.DaysOnMarket))
	}
	if score := vastu.Analyze(p).Score; score < 70 {
		points = append(points, fmt.Sprintf("Vastu score of %d leaves room for a remediation discount", score))
	}
	if len(points) == 0 {
		points = append(points, "Strong listing with no obvious leverage, negotiate on closing terms")
	}
	return points
}

func roundToTenThousand(v int64) int64 {
	return int64(math.Round(float64(v)/10000) * 10000)
}

// Стандартная комиссионная схема агентства.
const (
	commissionRate = 0.02
	agentSplit     = 0.60
)

// Commission — расчёт комиссии агента по цене сделки.
func Commission(salePrice int64) domain.CommissionBreakdown {
	gross := int64(float64(salePrice) * commissionRate)
	agent := int64(float64(gross) * agentSplit)
	return domain.CommissionBreakdown{
		SalePrice:   salePrice,
		Rate:        commissionRate,
		Commission:  gross,
		AgentShare:  agent,
		AgencyShare: gross - agent,
	}
}

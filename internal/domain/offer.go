package domain

import (
	"time"

	"github.com/google/uuid"
)

// Offer — предложение покупателя по объекту недвижимости.
type Offer struct {
	ID         uuid.UUID
	PropertyID uuid.UUID
	BuyerID    uuid.UUID
	Amount     int64
	Message    *string
	Status     OfferStatus
	// CounterAmount — сумма встречного предложения продавца, если было
	CounterAmount *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}

// OfferStatus — статус предложения.
type OfferStatus string

const (
	OfferStatusNew       OfferStatus = "NEW"
	OfferStatusCountered OfferStatus = "COUNTERED"
	OfferStatusAccepted  OfferStatus = "ACCEPTED"
	OfferStatusRejected  OfferStatus = "REJECTED"
	OfferStatusWithdrawn OfferStatus = "WITHDRAWN"
)

func (s OfferStatus) String() string {
	return string(s)
}

// CanTransitionTo проверяет допустимость перехода статуса.
// Терминальные статусы: ACCEPTED, REJECTED, WITHDRAWN.
func (s OfferStatus) CanTransitionTo(next OfferStatus) bool {
	switch s {
	case OfferStatusNew:
		return next == OfferStatusCountered || next == OfferStatusAccepted ||
			next == OfferStatusRejected || next == OfferStatusWithdrawn
	case OfferStatusCountered:
		return next == OfferStatusAccepted || next == OfferStatusRejected ||
			next == OfferStatusWithdrawn
	}
	return false
}

// NegotiationAdvice — детерминированная переговорная аналитика по объекту.
type NegotiationAdvice struct {
	PropertyID   uuid.UUID      `json:"property_id"`
	AskingPrice  int64          `json:"asking_price"`
	DaysOnMarket int32          `json:"days_on_market"`
	// ZopaMin/ZopaMax — оценка зоны возможного соглашения
	ZopaMin          int64          `json:"zopa_min"`
	ZopaMax          int64          `json:"zopa_max"`
	RecommendedOffer int64          `json:"recommended_offer"`
	CounterRounds    []CounterRound `json:"counter_rounds"`
	// SuccessProbability — вероятность принятия рекомендованной цены, 0..1
	SuccessProbability float64 `json:"success_probability"`
	Strategy           string  `json:"strategy"` // AGGRESSIVE или BALANCED
	Rationale          []string `json:"rationale"`
}

// CounterRound — план одного раунда торга.
type CounterRound struct {
	Round  int32 `json:"round"`
	Amount int64 `json:"amount"`
}

// CommissionBreakdown — расчёт комиссии агента по сделке.
type CommissionBreakdown struct {
	SalePrice  int64   `json:"sale_price"`
	Rate       float64 `json:"rate"`
	Commission int64   `json:"commission"`
	// AgentShare/AgencyShare — разделение комиссии
	AgentShare  int64 `json:"agent_share"`
	AgencyShare int64 `json:"agency_share"`
}

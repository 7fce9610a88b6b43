package offer_repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dharma_realty/internal/domain"
	"dharma_realty/internal/repository"
)

type OfferRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewOfferRepository(db *pgxpool.Pool, log *slog.Logger) *OfferRepository {
	return &OfferRepository{db: db, log: log}
}

// CreateOffer — создаёт новое предложение по объекту.
func (r *OfferRepository) CreateOffer(ctx context.Context, offer domain.Offer) (uuid.UUID, error) {
	const op = "OfferRepository.CreateOffer"

	query := `
		INSERT INTO offers (property_id, buyer_id, amount, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING offer_id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query,
		offer.PropertyID,
		offer.BuyerID,
		offer.Amount,
		offer.Message,
		offer.Status.String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

const offerColumns = `
	offer_id, property_id, buyer_id, amount, message, status, counter_amount, created_at, updated_at
`

func scanOffer(row pgx.Row) (domain.Offer, error) {
	var o domain.Offer
	var statusStr string
	err := row.Scan(
		&o.ID, &o.PropertyID, &o.BuyerID, &o.Amount, &o.Message,
		&statusStr, &o.CounterAmount, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return domain.Offer{}, err
	}
	o.Status = domain.OfferStatus(statusStr)
	return o, nil
}

// GetByID — получает предложение по ID.
func (r *OfferRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.Offer, error) {
	const op = "OfferRepository.GetByID"

	query := `SELECT ` + offerColumns + ` FROM offers WHERE offer_id = $1`

	o, err := scanOffer(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Offer{}, fmt.Errorf("%s: %w", op, repository.ErrOfferNotFound)
		}
		return domain.Offer{}, fmt.Errorf("%s: %w", op, err)
	}

	return o, nil
}

// ListByProperty — возвращает предложения по объекту, новые первыми.
func (r *OfferRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]domain.Offer, error) {
	const op = "OfferRepository.ListByProperty"

	query := `SELECT ` + offerColumns + ` FROM offers WHERE property_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var offers []domain.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan failed: %w", op, err)
		}
		offers = append(offers, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return offers, nil
}

// UpdateStatus — переводит предложение в новый статус.
// counterAmount задаётся только для перехода в COUNTERED.
func (r *OfferRepository) UpdateStatus(ctx context.Context, offerID uuid.UUID, status domain.OfferStatus, counterAmount *int64) error {
	const op = "OfferRepository.UpdateStatus"

	query := `
		UPDATE offers
		SET status = $1, counter_amount = COALESCE($2, counter_amount), updated_at = NOW()
		WHERE offer_id = $3
	`

	tag, err := r.db.Exec(ctx, query, status.String(), counterAmount, offerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrOfferNotFound)
	}

	return nil
}

package comparison_repository

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

type ComparisonRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewComparisonRepository(db *pgxpool.Pool, log *slog.Logger) *ComparisonRepository {
	return &ComparisonRepository{db: db, log: log}
}

// SaveComparison — сохраняет закладку на сравнение.
func (r *ComparisonRepository) SaveComparison(ctx context.Context, c domain.SavedComparison) (uuid.UUID, error) {
	const op = "ComparisonRepository.SaveComparison"

	query := `
		INSERT INTO saved_comparisons (user_id, property_ids)
		VALUES ($1, $2)
		RETURNING comparison_id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, c.UserID, c.PropertyIDs).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// GetByID — получает закладку по ID.
func (r *ComparisonRepository) GetByID(ctx context.Context, id uuid.UUID) (domain.SavedComparison, error) {
	const op = "ComparisonRepository.GetByID"

	query := `
		SELECT comparison_id, user_id, property_ids, created_at
		FROM saved_comparisons
		WHERE comparison_id = $1
	`

	var c domain.SavedComparison
	err := r.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.UserID, &c.PropertyIDs, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SavedComparison{}, fmt.Errorf("%s: %w", op, repository.ErrComparisonNotFound)
		}
		return domain.SavedComparison{}, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

// ListByUser — закладки пользователя, новые первыми.
func (r *ComparisonRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.SavedComparison, error) {
	const op = "ComparisonRepository.ListByUser"

	query := `
		SELECT comparison_id, user_id, property_ids, created_at
		FROM saved_comparisons
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var comparisons []domain.SavedComparison
	for rows.Next() {
		var c domain.SavedComparison
		if err := rows.Scan(&c.ID, &c.UserID, &c.PropertyIDs, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan failed: %w", op, err)
		}
		comparisons = append(comparisons, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return comparisons, nil
}

// DeleteComparison — удаляет закладку пользователя.
func (r *ComparisonRepository) DeleteComparison(ctx context.Context, id, userID uuid.UUID) error {
	const op = "ComparisonRepository.DeleteComparison"

	tag, err := r.db.Exec(ctx,
		`DELETE FROM saved_comparisons WHERE comparison_id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrComparisonNotFound)
	}

	return nil
}

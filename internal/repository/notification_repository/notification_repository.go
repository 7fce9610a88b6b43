package notification_repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"dharma_realty/internal/domain"
)

type NotificationRepository struct {
	db  *pgxpool.Pool
	log *slog.Logger
}

func NewNotificationRepository(db *pgxpool.Pool, log *slog.Logger) *NotificationRepository {
	return &NotificationRepository{db: db, log: log}
}

// CreateNotification — сохраняет уведомление.
func (r *NotificationRepository) CreateNotification(ctx context.Context, n domain.Notification) (uuid.UUID, error) {
	const op = "NotificationRepository.CreateNotification"

	query := `
		INSERT INTO notifications (user_id, type, title, body, entity_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING notification_id
	`

	var id uuid.UUID
	err := r.db.QueryRow(ctx, query, n.UserID, string(n.Type), n.Title, n.Body, n.EntityID).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", op, err)
	}

	return id, nil
}

// ListByUser — уведомления пользователя, новые первыми.
// При unreadOnly возвращаются только непрочитанные.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]domain.Notification, error) {
	const op = "NotificationRepository.ListByUser"

	query := `
		SELECT notification_id, user_id, type, title, body, entity_id, read, created_at
		FROM notifications
		WHERE user_id = $1
	`
	if unreadOnly {
		query += " AND read = FALSE"
	}
	query += " ORDER BY created_at DESC LIMIT 100"

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var notifications []domain.Notification
	for rows.Next() {
		var n domain.Notification
		var typeStr string
		if err := rows.Scan(&n.ID, &n.UserID, &typeStr, &n.Title, &n.Body, &n.EntityID, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: scan failed: %w", op, err)
		}
		n.Type = domain.NotificationType(typeStr)
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return notifications, nil
}

// MarkRead — помечает уведомления пользователя прочитанными.
// Пустой список ids помечает все.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	const op = "NotificationRepository.MarkRead"

	query := `UPDATE notifications SET read = TRUE WHERE user_id = $1`
	params := []interface{}{userID}
	if len(ids) > 0 {
		query += ` AND notification_id = ANY($2)`
		params = append(params, ids)
	}

	if _, err := r.db.Exec(ctx, query, params...); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// UnreadCounts — число непрочитанных уведомлений по каждому пользователю,
// у которого они есть. Используется дайджестом.
func (r *NotificationRepository) UnreadCounts(ctx context.Context) ([]domain.UnreadCount, error) {
	const op = "NotificationRepository.UnreadCounts"

	query := `
		SELECT user_id, COUNT(*)
		FROM notifications
		WHERE read = FALSE
		GROUP BY user_id
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var counts []domain.UnreadCount
	for rows.Next() {
		var c domain.UnreadCount
		if err := rows.Scan(&c.UserID, &c.Count); err != nil {
			return nil, fmt.Errorf("%s: scan failed: %w", op, err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows error: %w", op, err)
	}

	return counts, nil
}

package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"dharma_realty/internal/domain"
	"dharma_realty/internal/lib/logger/sl"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, n domain.Notification) (uuid.UUID, error)
	ListByUser(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
	UnreadCounts(ctx context.Context) ([]domain.UnreadCount, error)
}

type Service struct {
	log  *slog.Logger
	repo NotificationRepository
}

func New(log *slog.Logger, repo NotificationRepository) *Service {
	return &Service{log: log, repo: repo}
}

// Notify — создаёт уведомление. Ошибка записи не прерывает вызывающую
// операцию: уведомления не являются критичным путём.
func (s *Service) Notify(ctx context.Context, userID uuid.UUID, nType domain.NotificationType, title, body string, entityID *uuid.UUID) {
	_, err := s.repo.CreateNotification(ctx, domain.Notification{
		UserID:   userID,
		Type:     nType,
		Title:    title,
		Body:     body,
		EntityID: entityID,
	})
	if err != nil {
		s.log.Error("failed to create notification",
			slog.String("user_id", userID.String()),
			slog.String("type", string(nType)),
			sl.Err(err),
		)
		return
	}

	s.log.Debug("notification created",
		slog.String("user_id", userID.String()),
		slog.String("type", string(nType)),
	)
}

// List — уведомления пользователя, новые первыми.
func (s *Service) List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]domain.Notification, error) {
	const op = "notification.Service.List"

	notifications, err := s.repo.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return notifications, nil
}

// MarkRead — помечает уведомления прочитанными, пустой список — все.
func (s *Service) MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error {
	const op = "notification.Service.MarkRead"

	if err := s.repo.MarkRead(ctx, userID, ids); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RunDigest — создаёт каждому пользователю с непрочитанными уведомлениями
// сводное уведомление-дайджест.
func (s *Service) RunDigest(ctx context.Context) error {
	const op = "notification.Service.RunDigest"

	counts, err := s.repo.UnreadCounts(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for _, c := range counts {
		s.Notify(ctx, c.UserID, domain.NotificationDigest,
			"Your daily digest",
			fmt.Sprintf("You have %d unread notifications waiting for you.", c.Count),
			nil,
		)
	}

	s.log.Info("digest completed", slog.Int("users", len(counts)))
	return nil
}

// StartDigest — запускает планировщик дайджеста по cron-расписанию.
// Возвращает функцию остановки.
func (s *Service) StartDigest(schedule string) (func(), error) {
	const op = "notification.Service.StartDigest"

	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		if err := s.RunDigest(context.Background()); err != nil {
			s.log.Error("digest run failed", sl.Err(err))
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%s: invalid schedule %q: %w", op, schedule, err)
	}

	c.Start()
	s.log.Info("digest scheduler started", slog.String("schedule", schedule))

	return func() {
		<-c.Stop().Done()
	}, nil
}

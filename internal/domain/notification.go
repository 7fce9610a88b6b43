package domain

import (
	"time"

	"github.com/google/uuid"
)

// Notification — внутриплатформенное уведомление пользователя.
type Notification struct {
	ID     uuid.UUID
	UserID uuid.UUID
	Type   NotificationType
	Title  string
	Body   string
	// EntityID — идентификатор связанной сущности (оффер, сравнение)
	EntityID *uuid.UUID
	Read     bool

	CreatedAt time.Time
}

// NotificationType — тип уведомления.
type NotificationType string

const (
	NotificationOfferReceived  NotificationType = "OFFER_RECEIVED"
	NotificationOfferStatus    NotificationType = "OFFER_STATUS"
	NotificationComparisonSaved NotificationType = "COMPARISON_SAVED"
	NotificationDigest         NotificationType = "DIGEST"
)

// UnreadCount — число непрочитанных уведомлений пользователя, для дайджеста.
type UnreadCount struct {
	UserID uuid.UUID
	Count  int32
}

package notificationhttp

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"dharma_realty/internal/domain"
	"dharma_realty/internal/http/middleware"
	"dharma_realty/internal/http/response"
)

// NotificationService описывает чтение и пометку уведомлений.
type NotificationService interface {
	List(ctx context.Context, userID uuid.UUID, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID uuid.UUID, ids []uuid.UUID) error
}

type Handler struct {
	service NotificationService
}

func NewHandler(service NotificationService) *Handler {
	return &Handler{service: service}
}

// Routes регистрирует эндпоинты уведомлений.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/read", h.markRead)
	})
}

type notificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	EntityID  *string   `json:"entity_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

func notificationToResponse(n domain.Notification) notificationResponse {
	var entityID *string
	if n.EntityID != nil {
		entityID = lo.ToPtr(n.EntityID.String())
	}
	return notificationResponse{
		ID:        n.ID.String(),
		Type:      string(n.Type),
		Title:     n.Title,
		Body:      n.Body,
		EntityID:  entityID,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing token")
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"

	notifications, err := h.service.List(r.Context(), userID, unreadOnly)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	response.JSON(w, http.StatusOK, map[string][]notificationResponse{
		"items": lo.Map(notifications, func(n domain.Notification, _ int) notificationResponse { return notificationToResponse(n) }),
	})
}

type markReadRequest struct {
	// IDs — пустой список помечает все уведомления
	IDs []string `json:"ids"`
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing token")
		return
	}

	var req markReadRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ids := make([]uuid.UUID, 0, len(req.IDs))
	for _, raw := range req.IDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "ids must be valid UUIDs")
			return
		}
		ids = append(ids, id)
	}

	if err := h.service.MarkRead(r.Context(), userID, ids); err != nil {
		response.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	response.JSON(w, http.StatusNoContent, nil)
}

package comparisonhttp

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"dharma_realty/internal/domain"
	"dharma_realty/internal/http/middleware"
	"dharma_realty/internal/http/response"
	"dharma_realty/internal/services/comparison"
)

// ComparisonService описывает бизнес-логику сравнения объектов.
type ComparisonService interface {
	Compare(ctx context.Context, propertyIDs []uuid.UUID) (*comparison.Result, error)
	Save(ctx context.Context, userID uuid.UUID, propertyIDs []uuid.UUID) (uuid.UUID, error)
	ListSaved(ctx context.Context, userID uuid.UUID) ([]domain.SavedComparison, error)
	GetSaved(ctx context.Context, id, userID uuid.UUID) (*comparison.Result, error)
	DeleteSaved(ctx context.Context, id, userID uuid.UUID) error
}

type Handler struct {
	service ComparisonService
}

func NewHandler(service ComparisonService) *Handler {
	return &Handler{service: service}
}

// Routes регистрирует эндпоинты сравнений.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/comparisons", func(r chi.Router) {
		r.Post("/compare", h.compare)
		r.Post("/", h.save)
		r.Get("/", h.listSaved)
		r.Get("/{id}", h.getSaved)
		r.Delete("/{id}", h.deleteSaved)
	})
}

type compareRequest struct {
	PropertyIDs []string `json:"property_ids"`
}

func (h *Handler) parseIDs(w http.ResponseWriter, r *http.Request) ([]uuid.UUID, bool) {
	var req compareRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	ids := make([]uuid.UUID, 0, len(req.PropertyIDs))
	for _, raw := range req.PropertyIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "property_ids must be valid UUIDs")
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}

func (h *Handler) compare(w http.ResponseWriter, r *http.Request) {
	ids, ok := h.parseIDs(w, r)
	if !ok {
		return
	}

	result, err := h.service.Compare(r.Context(), ids)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

type savedComparisonResponse struct {
	ID          string    `json:"id"`
	PropertyIDs []string  `json:"property_ids"`
	CreatedAt   time.Time `json:"created_at"`
}

func savedToResponse(c domain.SavedComparison) savedComparisonResponse {
	return savedComparisonResponse{
		ID:          c.ID.String(),
		PropertyIDs: lo.Map(c.PropertyIDs, func(id uuid.UUID, _ int) string { return id.String() }),
		CreatedAt:   c.CreatedAt,
	}
}

func (h *Handler) save(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing token")
		return
	}

	ids, ok := h.parseIDs(w, r)
	if !ok {
		return
	}

	id, err := h.service.Save(r.Context(), userID, ids)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (h *Handler) listSaved(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing token")
		return
	}

	comparisons, err := h.service.ListSaved(r.Context(), userID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	response.JSON(w, http.StatusOK, map[string][]savedComparisonResponse{
		"items": lo.Map(comparisons, func(c domain.SavedComparison, _ int) savedComparisonResponse { return savedToResponse(c) }),
	})
}

func (h *Handler) getSaved(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing token")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid comparison id")
		return
	}

	result, err := h.service.GetSaved(r.Context(), id, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

func (h *Handler) deleteSaved(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing token")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid comparison id")
		return
	}

	if err := h.service.DeleteSaved(r.Context(), id, userID); err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusNoContent, nil)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, comparison.ErrInvalidEntityCount):
		response.Error(w, http.StatusBadRequest, comparison.ErrInvalidEntityCount.Error())
	case errors.Is(err, comparison.ErrNoMetrics):
		response.Error(w, http.StatusBadRequest, comparison.ErrNoMetrics.Error())
	case errors.Is(err, comparison.ErrPropertyNotFound):
		// Сообщение перечисляет отсутствующие идентификаторы
		msg := err.Error()
		if idx := strings.Index(msg, comparison.ErrPropertyNotFound.Error()); idx >= 0 {
			msg = msg[idx:]
		}
		response.Error(w, http.StatusNotFound, msg)
	case errors.Is(err, comparison.ErrComparisonNotFound):
		response.Error(w, http.StatusNotFound, "comparison not found")
	default:
		response.Error(w, http.StatusInternalServerError, "internal error")
	}
}

package offerhttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"dharma_realty/internal/domain"
	"dharma_realty/internal/http/middleware"
	"dharma_realty/internal/http/response"
	"dharma_realty/internal/services/offer"
)

// OfferService описывает бизнес-логику предложений и переговорной аналитики.
type OfferService interface {
	CreateOffer(ctx context.Context, propertyID, buyerID uuid.UUID, amount int64, message *string) (uuid.UUID, error)
	GetOffer(ctx context.Context, offerID, userID uuid.UUID) (domain.Offer, error)
	ListByProperty(ctx context.Context, propertyID, userID uuid.UUID) ([]domain.Offer, error)
	UpdateStatus(ctx context.Context, offerID, userID uuid.UUID, next domain.OfferStatus, counterAmount *int64) (domain.Offer, error)
	NegotiationAdvice(ctx context.Context, propertyID uuid.UUID) (domain.NegotiationAdvice, error)
}

type Handler struct {
	service OfferService
}

func NewHandler(service OfferService) *Handler {
	return &Handler{service: service}
}

// Routes регистрирует эндпоинты предложений.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/offers", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/{id}", h.get)
		r.Post("/{id}/status", h.updateStatus)
	})
	r.Get("/properties/{id}/offers", h.listByProperty)
	r.Get("/properties/{id}/negotiation-advice", h.negotiationAdvice)
}

type offerResponse struct {
	ID            string    `json:"id"`
	PropertyID    string    `json:"property_id"`
	BuyerID       string    `json:"buyer_id"`
	Amount        int64     `json:"amount"`
	Message       *string   `json:"message,omitempty"`
	Status        string    `json:"status"`
	CounterAmount *int64    `json:"counter_amount,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func offerToResponse(o domain.Offer) offerResponse {
	return offerResponse{
		ID:            o.ID.String(),
		PropertyID:    o.PropertyID.String(),
		BuyerID:       o.BuyerID.String(),
		Amount:        o.Amount,
		Message:       o.Message,
		Status:        o.Status.String(),
		CounterAmount: o.CounterAmount,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

type createOfferRequest struct {
	PropertyID string  `json:"property_id"`
	Amount     int64   `json:"amount"`
	Message    *string `json:"message,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing token")
		return
	}

	var req createOfferRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	propertyID, err := uuid.Parse(req.PropertyID)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "property_id must be a valid UUID")
		return
	}
	if req.Amount <= 0 {
		response.Error(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	id, err := h.service.CreateOffer(r.Context(), propertyID, userID, req.Amount, req.Message)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing token")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid offer id")
		return
	}

	o, err := h.service.GetOffer(r.Context(), id, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, offerToResponse(o))
}

type updateStatusRequest struct {
	Status        string `json:"status"`
	CounterAmount *int64 `json:"counter_amount,omitempty"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing token")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid offer id")
		return
	}

	var req updateStatusRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	o, err := h.service.UpdateStatus(r.Context(), id, userID, domain.OfferStatus(req.Status), req.CounterAmount)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, offerToResponse(o))
}

func (h *Handler) listByProperty(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing token")
		return
	}

	propertyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid property id")
		return
	}

	offers, err := h.service.ListByProperty(r.Context(), propertyID, userID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string][]offerResponse{
		"items": lo.Map(offers, func(o domain.Offer, _ int) offerResponse { return offerToResponse(o) }),
	})
}

func (h *Handler) negotiationAdvice(w http.ResponseWriter, r *http.Request) {
	propertyID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid property id")
		return
	}

	advice, err := h.service.NegotiationAdvice(r.Context(), propertyID)
	if err != nil {
		if errors.Is(err, offer.ErrNoAskingPrice) {
			response.Error(w, http.StatusUnprocessableEntity, "property has no asking price")
			return
		}
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, advice)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, offer.ErrOfferNotFound):
		response.Error(w, http.StatusNotFound, "offer not found")
	case errors.Is(err, offer.ErrPropertyNotFound):
		response.Error(w, http.StatusNotFound, "property not found")
	case errors.Is(err, offer.ErrInvalidTransition):
		response.Error(w, http.StatusConflict, "invalid offer status transition")
	case errors.Is(err, offer.ErrCounterRequired):
		response.Error(w, http.StatusBadRequest, "counter_amount is required for COUNTERED status")
	case errors.Is(err, offer.ErrPermissionDenied):
		response.Error(w, http.StatusForbidden, "forbidden")
	default:
		response.Error(w, http.StatusInternalServerError, "internal error")
	}
}

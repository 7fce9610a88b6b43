package crmhttp

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"dharma_realty/internal/domain"
	"dharma_realty/internal/http/middleware"
	"dharma_realty/internal/http/response"
	"dharma_realty/internal/services/crm"
	"dharma_realty/internal/services/offer"
)

// CRMService описывает бизнес-логику работы агента с лидами.
type CRMService interface {
	CreateLead(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	GetLead(ctx context.Context, id, agentID uuid.UUID) (domain.Lead, error)
	ListLeads(ctx context.Context, agentID uuid.UUID, filter domain.LeadFilter) (*domain.PaginatedResult[domain.Lead], error)
	UpdateStatus(ctx context.Context, id, agentID uuid.UUID, status domain.LeadStatus, notes *string) (domain.Lead, error)
	AddActivity(ctx context.Context, leadID, agentID uuid.UUID, activityType string, note *string) (domain.Lead, error)
	Pipeline(ctx context.Context, agentID uuid.UUID) (domain.PipelineSummary, error)
}

type Handler struct {
	service CRMService
}

func NewHandler(service CRMService) *Handler {
	return &Handler{service: service}
}

// Routes регистрирует CRM-эндпоинты, доступ только агентам.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/crm", func(r chi.Router) {
		r.Use(middleware.RequireRole(domain.RoleAgent))

		r.Post("/leads", h.createLead)
		r.Get("/leads", h.listLeads)
		r.Get("/leads/{id}", h.getLead)
		r.Post("/leads/{id}/status", h.updateStatus)
		r.Post("/leads/{id}/activities", h.addActivity)
		r.Get("/pipeline", h.pipeline)
		r.Get("/commission", h.commission)
	})
}

type leadResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Phone          *string   `json:"phone,omitempty"`
	Email          *string   `json:"email,omitempty"`
	Budget         *int64    `json:"budget,omitempty"`
	TimelineMonths *int32    `json:"timeline_months,omitempty"`
	Source         string    `json:"source"`
	Status         string    `json:"status"`
	Score          int32     `json:"score"`
	ActivityCount  int32     `json:"activity_count"`
	Notes          *string   `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func leadToResponse(l domain.Lead) leadResponse {
	return leadResponse{
		ID:             l.ID.String(),
		Name:           l.Name,
		Phone:          l.Phone,
		Email:          l.Email,
		Budget:         l.Budget,
		TimelineMonths: l.TimelineMonths,
		Source:         string(l.Source),
		Status:         l.Status.String(),
		Score:          l.Score,
		ActivityCount:  l.ActivityCount,
		Notes:          l.Notes,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

type createLeadRequest struct {
	Name           string  `json:"name"`
	Phone          *string `json:"phone,omitempty"`
	Email          *string `json:"email,omitempty"`
	Budget         *int64  `json:"budget,omitempty"`
	TimelineMonths *int32  `json:"timeline_months,omitempty"`
	Source         string  `json:"source,omitempty"`
	Notes          *string `json:"notes,omitempty"`
}

func (h *Handler) createLead(w http.ResponseWriter, r *http.Request) {
	agentID, ok := middleware.UserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing token")
		return
	}

	var req createLeadRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		response.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	lead, err := h.service.CreateLead(r.Context(), domain.Lead{
		AgentID:        agentID,
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		Budget:         req.Budget,
		TimelineMonths: req.TimelineMonths,
		Source:         domain.LeadSource(req.Source),
		Notes:          req.Notes,
	})
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	response.JSON(w, http.StatusCreated, leadToResponse(lead))
}

func (h *Handler) getLead(w http.ResponseWriter, r *http.Request) {
	agentID, ok := middleware.UserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing token")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid lead id")
		return
	}

	lead, err := h.service.GetLead(r.Context(), id, agentID)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, leadToResponse(lead))
}

func (h *Handler) listLeads(w http.ResponseWriter, r *http.Request) {
	agentID, ok := middleware.UserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing token")
		return
	}

	q := r.URL.Query()
	filter := domain.LeadFilter{}

	if status := q.Get("status"); status != "" {
		s := domain.LeadStatus(status)
		filter.Status = &s
	}
	if minScore := q.Get("min_score"); minScore != "" {
		v, err := strconv.ParseInt(minScore, 10, 32)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "min_score must be an integer")
			return
		}
		v32 := int32(v)
		filter.MinScore = &v32
	}

	pagination := domain.PaginationParams{PageToken: q.Get("page_token")}
	if size := q.Get("page_size"); size != "" {
		v, err := strconv.ParseInt(size, 10, 32)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "page_size must be an integer")
			return
		}
		pagination.PageSize = int32(v)
	}
	filter.Pagination = &pagination

	result, err := h.service.ListLeads(r.Context(), agentID, filter)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"items":           lo.Map(result.Items, func(l domain.Lead, _ int) leadResponse { return leadToResponse(l) }),
		"next_page_token": result.NextPageToken,
		"total_count":     result.TotalCount,
		"has_more":        result.HasMore,
	})
}

type updateLeadStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	agentID, ok := middleware.UserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing token")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid lead id")
		return
	}

	var req updateLeadStatusRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lead, err := h.service.UpdateStatus(r.Context(), id, agentID, domain.LeadStatus(req.Status), req.Notes)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, leadToResponse(lead))
}

type addActivityRequest struct {
	Type string  `json:"type"`
	Note *string `json:"note,omitempty"`
}

func (h *Handler) addActivity(w http.ResponseWriter, r *http.Request) {
	agentID, ok := middleware.UserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing token")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid lead id")
		return
	}

	var req addActivityRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Type == "" {
		response.Error(w, http.StatusBadRequest, "type is required")
		return
	}

	lead, err := h.service.AddActivity(r.Context(), id, agentID, req.Type, req.Note)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, leadToResponse(lead))
}

func (h *Handler) pipeline(w http.ResponseWriter, r *http.Request) {
	agentID, ok := middleware.UserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing token")
		return
	}

	summary, err := h.service.Pipeline(r.Context(), agentID)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	response.JSON(w, http.StatusOK, summary)
}

func (h *Handler) commission(w http.ResponseWriter, r *http.Request) {
	salePrice, err := strconv.ParseInt(r.URL.Query().Get("sale_price"), 10, 64)
	if err != nil || salePrice <= 0 {
		response.Error(w, http.StatusBadRequest, "sale_price must be a positive integer")
		return
	}

	response.JSON(w, http.StatusOK, offer.Commission(salePrice))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, crm.ErrLeadNotFound):
		response.Error(w, http.StatusNotFound, "lead not found")
	case errors.Is(err, crm.ErrInvalidStatus):
		response.Error(w, http.StatusBadRequest, "unknown lead status")
	default:
		response.Error(w, http.StatusInternalServerError, "internal error")
	}
}

package userhttp

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"dharma_realty/internal/domain"
	"dharma_realty/internal/http/response"
	"dharma_realty/internal/services/user"
)

// UserService описывает бизнес-логику регистрации и входа.
type UserService interface {
	Register(ctx context.Context, email, name, password string, phone *string, role domain.UserRole, birthDate *time.Time) (uuid.UUID, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type Handler struct {
	service UserService
}

func NewHandler(service UserService) *Handler {
	return &Handler{service: service}
}

// Routes регистрирует публичные эндпоинты аутентификации.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/auth/register", h.register)
	r.Post("/auth/login", h.login)
}

type registerRequest struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Password string  `json:"password"`
	Phone    *string `json:"phone,omitempty"`
	Role     string  `json:"role,omitempty"`
	// BirthDate — дата рождения в формате 2006-01-02, для нумерологии
	BirthDate *string `json:"birth_date,omitempty"`
}

type registerResponse struct {
	UserID string `json:"user_id"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		response.Error(w, http.StatusBadRequest, "email, name and password are required")
		return
	}

	var birthDate *time.Time
	if req.BirthDate != nil {
		parsed, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "birth_date must be in YYYY-MM-DD format")
			return
		}
		birthDate = &parsed
	}

	// Роль ADMIN через регистрацию не выдаётся
	role := domain.ParseUserRole(req.Role)
	if role == domain.RoleAdmin {
		role = domain.RoleUser
	}

	id, err := h.service.Register(r.Context(), req.Email, req.Name, req.Password, req.Phone, role, birthDate)
	if err != nil {
		if errors.Is(err, user.ErrUserExists) {
			response.Error(w, http.StatusConflict, "user already exists")
			return
		}
		response.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	response.JSON(w, http.StatusCreated, registerResponse{UserID: id.String()})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, user.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		response.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	response.JSON(w, http.StatusOK, loginResponse{Token: token})
}

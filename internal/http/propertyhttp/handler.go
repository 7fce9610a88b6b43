package propertyhttp

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"dharma_realty/internal/domain"
	"dharma_realty/internal/http/middleware"
	"dharma_realty/internal/http/response"
	"dharma_realty/internal/services/property"
)

// Загрузка фото ограничена 10 МБ на файл.
const maxPhotoSize = 10 << 20

// PropertyService описывает бизнес-логику для работы с объектами недвижимости.
type PropertyService interface {
	CreateProperty(ctx context.Context, p domain.Property) (uuid.UUID, error)
	GetProperty(ctx context.Context, id uuid.UUID) (domain.Property, error)
	UpdateProperty(ctx context.Context, id uuid.UUID, update domain.PropertyFilter) (domain.Property, error)
	ListProperties(ctx context.Context, filter domain.PropertyFilter) (*domain.PaginatedResult[domain.Property], error)
	AnalysisReport(ctx context.Context, id uuid.UUID, now time.Time) (domain.PropertyAnalysisReport, error)
	Compatibility(ctx context.Context, propertyID, userID uuid.UUID, now time.Time) (property.CompatibilityResult, error)
	UploadPhoto(ctx context.Context, propertyID uuid.UUID, fileName, contentType string, r io.Reader, size int64) (string, error)
	ListPhotos(ctx context.Context, propertyID uuid.UUID) ([]string, error)
}

type Handler struct {
	service PropertyService
}

func NewHandler(service PropertyService) *Handler {
	return &Handler{service: service}
}

// Routes регистрирует эндпоинты объектов недвижимости.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/properties", func(r chi.Router) {
		r.Post("/", h.create)
		r.Get("/", h.list)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.get)
			r.Patch("/", h.update)
			r.Get("/analysis", h.analysis)
			r.Get("/compatibility", h.compatibility)
			r.Post("/photos", h.uploadPhoto)
			r.Get("/photos", h.listPhotos)
		})
	})
}

type createPropertyRequest struct {
	Title        string                 `json:"title"`
	Description  string                 `json:"description,omitempty"`
	Address      string                 `json:"address"`
	City         *string                `json:"city,omitempty"`
	PropertyType string                 `json:"property_type,omitempty"`
	Area         *float64               `json:"area,omitempty"`
	Price        *int64                 `json:"price,omitempty"`
	Rooms        *int32                 `json:"rooms,omitempty"`
	YearBuilt    *int32                 `json:"year_built,omitempty"`
	Facing       *string                `json:"facing,omitempty"`
	Placements   *domain.RoomPlacements `json:"placements,omitempty"`
	Hazards      *domain.HazardExposure `json:"hazards,omitempty"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing token")
		return
	}

	var req createPropertyRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" || req.Address == "" {
		response.Error(w, http.StatusBadRequest, "title and address are required")
		return
	}

	p := domain.Property{
		Title:         req.Title,
		Description:   req.Description,
		Address:       req.Address,
		City:          req.City,
		PropertyType:  domain.PropertyType(req.PropertyType),
		Area:          req.Area,
		Price:         req.Price,
		Rooms:         req.Rooms,
		YearBuilt:     req.YearBuilt,
		Status:        domain.PropertyStatusNew,
		OwnerUserID:   userID,
		CreatedUserID: userID,
	}
	if req.Facing != nil {
		facing, ok := domain.ParseCompassDirection(*req.Facing)
		if !ok {
			response.Error(w, http.StatusBadRequest, "facing must be one of N, NE, E, SE, S, SW, W, NW")
			return
		}
		p.Facing = &facing
	}
	if req.Placements != nil {
		p.Placements = *req.Placements
	}
	if req.Hazards != nil {
		p.Hazards = *req.Hazards
	}

	id, err := h.service.CreateProperty(r.Context(), p)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	response.JSON(w, http.StatusCreated, map[string]string{"id": id.String()})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid property id")
		return
	}

	p, err := h.service.GetProperty(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, propertyToResponse(p))
}

type updatePropertyRequest struct {
	Title        *string                `json:"title,omitempty"`
	Description  *string                `json:"description,omitempty"`
	Address      *string                `json:"address,omitempty"`
	City         *string                `json:"city,omitempty"`
	PropertyType *string                `json:"property_type,omitempty"`
	Area         *float64               `json:"area,omitempty"`
	Price        *int64                 `json:"price,omitempty"`
	Rooms        *int32                 `json:"rooms,omitempty"`
	YearBuilt    *int32                 `json:"year_built,omitempty"`
	Facing       *string                `json:"facing,omitempty"`
	Placements   *domain.RoomPlacements `json:"placements,omitempty"`
	Hazards      *domain.HazardExposure `json:"hazards,omitempty"`
	Status       *string                `json:"status,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid property id")
		return
	}

	var req updatePropertyRequest
	if err := response.Decode(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	update := domain.PropertyFilter{
		Title:       req.Title,
		Description: req.Description,
		Address:     req.Address,
		City:        req.City,
		Area:        req.Area,
		Price:       req.Price,
		Rooms:       req.Rooms,
		YearBuilt:   req.YearBuilt,
		Placements:  req.Placements,
		Hazards:     req.Hazards,
	}
	if req.PropertyType != nil {
		pt := domain.PropertyType(*req.PropertyType)
		update.PropertyType = &pt
	}
	if req.Facing != nil {
		facing, ok := domain.ParseCompassDirection(*req.Facing)
		if !ok {
			response.Error(w, http.StatusBadRequest, "facing must be one of N, NE, E, SE, S, SW, W, NW")
			return
		}
		update.Facing = &facing
	}
	if req.Status != nil {
		status := domain.PropertyStatus(*req.Status)
		update.Status = &status
	}

	updated, err := h.service.UpdateProperty(r.Context(), id, update)
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, propertyToResponse(updated))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.PropertyFilter{}

	if city := q.Get("city"); city != "" {
		filter.City = &city
	}
	if pt := q.Get("property_type"); pt != "" {
		propertyType := domain.PropertyType(pt)
		filter.PropertyType = &propertyType
	}
	if status := q.Get("status"); status != "" {
		s := domain.PropertyStatus(status)
		filter.Status = &s
	}

	var parseErr error
	filter.MinPrice = parseInt64Param(q.Get("min_price"), &parseErr)
	filter.MaxPrice = parseInt64Param(q.Get("max_price"), &parseErr)
	filter.MinRooms = parseInt32Param(q.Get("min_rooms"), &parseErr)
	filter.MaxRooms = parseInt32Param(q.Get("max_rooms"), &parseErr)
	if parseErr != nil {
		response.Error(w, http.StatusBadRequest, "numeric filters must be integers")
		return
	}

	pagination := domain.PaginationParams{PageToken: q.Get("page_token")}
	if size := parseInt32Param(q.Get("page_size"), &parseErr); size != nil && parseErr == nil {
		pagination.PageSize = *size
	}
	if ob := q.Get("order_by"); ob != "" {
		pagination.OrderBy = ob
	}
	filter.Pagination = &pagination

	result, err := h.service.ListProperties(r.Context(), filter)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, "internal error")
		return
	}

	response.JSON(w, http.StatusOK, listToResponse(result))
}

func (h *Handler) analysis(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid property id")
		return
	}

	report, err := h.service.AnalysisReport(r.Context(), id, time.Now())
	if err != nil {
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, report)
}

func (h *Handler) compatibility(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		response.Error(w, http.StatusUnauthorized, "missing token")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid property id")
		return
	}

	result, err := h.service.Compatibility(r.Context(), id, userID, time.Now())
	if err != nil {
		if errors.Is(err, property.ErrNoBirthDate) {
			response.Error(w, http.StatusUnprocessableEntity, "add a birth date to your profile for compatibility analysis")
			return
		}
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, result)
}

func (h *Handler) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid property id")
		return
	}

	if err := r.ParseMultipartForm(maxPhotoSize); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("photo")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "photo file is required")
		return
	}
	defer file.Close()

	key, err := h.service.UploadPhoto(r.Context(), id, header.Filename, header.Header.Get("Content-Type"), file, header.Size)
	if err != nil {
		if errors.Is(err, property.ErrPhotosDisabled) {
			response.Error(w, http.StatusServiceUnavailable, "photo storage is not configured")
			return
		}
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, map[string]string{"key": key})
}

func (h *Handler) listPhotos(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "invalid property id")
		return
	}

	urls, err := h.service.ListPhotos(r.Context(), id)
	if err != nil {
		if errors.Is(err, property.ErrPhotosDisabled) {
			response.Error(w, http.StatusServiceUnavailable, "photo storage is not configured")
			return
		}
		h.writeError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string][]string{"urls": urls})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, property.ErrPropertyNotFound) {
		response.Error(w, http.StatusNotFound, "property not found")
		return
	}
	response.Error(w, http.StatusInternalServerError, "internal error")
}

func parseInt64Param(s string, parseErr *error) *int64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		*parseErr = err
		return nil
	}
	return &v
}

func parseInt32Param(s string, parseErr *error) *int32 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		*parseErr = err
		return nil
	}
	v32 := int32(v)
	return &v32
}

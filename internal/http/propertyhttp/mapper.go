package propertyhttp

import (
	"time"

	"github.com/samber/lo"

	"dharma_realty/internal/domain"
)

type propertyResponse struct {
	ID           string                 `json:"id"`
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
	Placements   domain.RoomPlacements  `json:"placements"`
	Hazards      domain.HazardExposure  `json:"hazards"`
	DaysOnMarket int32                  `json:"days_on_market"`
	Status       string                 `json:"status,omitempty"`
	OwnerUserID  string                 `json:"owner_user_id"`

	VastuScore      *int32 `json:"vastu_score,omitempty"`
	ClimateRisk     *int32 `json:"climate_risk,omitempty"`
	LandEnergyScore *int32 `json:"land_energy_score,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func propertyToResponse(p domain.Property) propertyResponse {
	var facing *string
	if p.Facing != nil {
		facing = lo.ToPtr(string(*p.Facing))
	}

	return propertyResponse{
		ID:           p.ID.String(),
		Title:        p.Title,
		Description:  p.Description,
		Address:      p.Address,
		City:         p.City,
		PropertyType: p.PropertyType.String(),
		Area:         p.Area,
		Price:        p.Price,
		Rooms:        p.Rooms,
		YearBuilt:    p.YearBuilt,
		Facing:       facing,
		Placements:   p.Placements,
		Hazards:      p.Hazards,
		DaysOnMarket: p.DaysOnMarket,
		Status:       p.Status.String(),
		OwnerUserID:  p.OwnerUserID.String(),

		VastuScore:      p.VastuScore,
		ClimateRisk:     p.ClimateRisk,
		LandEnergyScore: p.LandEnergyScore,

		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type propertyListResponse struct {
	Items         []propertyResponse `json:"items"`
	NextPageToken string             `json:"next_page_token,omitempty"`
	TotalCount    int32              `json:"total_count"`
	HasMore       bool               `json:"has_more"`
}

func listToResponse(result *domain.PaginatedResult[domain.Property]) propertyListResponse {
	return propertyListResponse{
		Items:         lo.Map(result.Items, func(p domain.Property, _ int) propertyResponse { return propertyToResponse(p) }),
		NextPageToken: result.NextPageToken,
		TotalCount:    result.TotalCount,
		HasMore:       result.HasMore,
	}
}

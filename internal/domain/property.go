package domain

import (
	"time"

	"github.com/google/uuid"
)

// Property — доменная сущность объекта недвижимости.
type Property struct {
	ID          uuid.UUID
	Title       string
	Description string
	Address     string
	// City — город для фильтрации в листингах
	City         *string
	PropertyType PropertyType
	Area         *float64
	Price        *int64
	Rooms        *int32
	// YearBuilt — год постройки (для метрики возраста)
	YearBuilt *int32
	// Facing — направление главного входа (для Vastu-анализа)
	Facing *CompassDirection
	// Placements — расположение ключевых помещений по сторонам света
	Placements RoomPlacements
	// Hazards — флаги подверженности климатическим рискам
	Hazards HazardExposure
	// DaysOnMarket — сколько дней объект в продаже (для переговорной аналитики)
	DaysOnMarket  int32
	Status        PropertyStatus
	OwnerUserID   uuid.UUID
	CreatedUserID uuid.UUID

	// Оценки, вычисляемые асинхронно после создания/обновления.
	// nil — пока анализ не выполнен.
	VastuScore      *int32
	ClimateRisk     *int32
	LandEnergyScore *int32

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PropertyType — тип недвижимости.
type PropertyType string

const (
	PropertyTypeUnspecified PropertyType = ""
	PropertyTypeApartment   PropertyType = "APARTMENT"
	PropertyTypeHouse       PropertyType = "HOUSE"
	PropertyTypeCommercial  PropertyType = "COMMERCIAL"
	PropertyTypeLand        PropertyType = "LAND"
)

func (t PropertyType) String() string {
	return string(t)
}

// PropertyStatus — статус объекта недвижимости.
type PropertyStatus string

const (
	PropertyStatusUnspecified PropertyStatus = ""
	PropertyStatusNew         PropertyStatus = "NEW"       // Создан, виден только создателю
	PropertyStatusPublished   PropertyStatus = "PUBLISHED" // Опубликован, доступен всем
	PropertyStatusSold        PropertyStatus = "SOLD"      // Продан
	PropertyStatusDeleted     PropertyStatus = "DELETED"   // Удалён админом
)

func (s PropertyStatus) String() string {
	return string(s)
}

// CompassDirection — направление по сторонам света (8 направлений).
type CompassDirection string

const (
	DirectionNorth     CompassDirection = "N"
	DirectionNortheast CompassDirection = "NE"
	DirectionEast      CompassDirection = "E"
	DirectionSoutheast CompassDirection = "SE"
	DirectionSouth     CompassDirection = "S"
	DirectionSouthwest CompassDirection = "SW"
	DirectionWest      CompassDirection = "W"
	DirectionNorthwest CompassDirection = "NW"
)

// ParseCompassDirection нормализует строку в направление.
// Неизвестное значение возвращает пустое направление и false.
func ParseCompassDirection(s string) (CompassDirection, bool) {
	switch CompassDirection(s) {
	case DirectionNorth, DirectionNortheast, DirectionEast, DirectionSoutheast,
		DirectionSouth, DirectionSouthwest, DirectionWest, DirectionNorthwest:
		return CompassDirection(s), true
	}
	return "", false
}

// RoomPlacements — расположение помещений по сторонам света.
// Заполняется риелтором по плану квартиры; любое поле может отсутствовать.
type RoomPlacements struct {
	Kitchen       *CompassDirection `json:"kitchen,omitempty"`
	MasterBedroom *CompassDirection `json:"master_bedroom,omitempty"`
	Bathroom      *CompassDirection `json:"bathroom,omitempty"`
	// CenterOpen — свободен ли центр плана (Brahmasthan)
	CenterOpen *bool `json:"center_open,omitempty"`
	// BeamAboveBed — есть ли балка над кроватью в спальне
	BeamAboveBed *bool `json:"beam_above_bed,omitempty"`
}

// HazardExposure — флаги подверженности объекта климатическим опасностям.
type HazardExposure struct {
	FloodZone    bool `json:"flood_zone"`
	CoastalZone  bool `json:"coastal_zone"`
	HeatProne    bool `json:"heat_prone"`
	DroughtProne bool `json:"drought_prone"`
	CycloneProne bool `json:"cyclone_prone"`
	// GeopathicZones — число геопатогенных зон на участке (по обследованию)
	GeopathicZones int32 `json:"geopathic_zones"`
	// UndergroundWater — число подземных водных потоков под участком
	UndergroundWater int32 `json:"underground_water"`
}

// PropertyFilter — фильтр для выборок или обновлений объектов недвижимости.
type PropertyFilter struct {
	Title        *string
	Description  *string
	Address      *string
	City         *string
	PropertyType *PropertyType
	Area         *float64
	Price        *int64
	Rooms        *int32
	YearBuilt    *int32
	Facing       *CompassDirection
	Placements   *RoomPlacements
	Hazards      *HazardExposure
	MinRooms     *int32
	MaxRooms     *int32
	MinPrice     *int64
	MaxPrice     *int64
	Status       *PropertyStatus
	OwnerUserID  *uuid.UUID

	// Пагинация
	Pagination *PaginationParams
}

// PricePerSqm возвращает цену за квадратный метр, если известны цена и площадь.
func (p Property) PricePerSqm() *float64 {
	if p.Price == nil || p.Area == nil || *p.Area <= 0 {
		return nil
	}
	v := float64(*p.Price) / *p.Area
	return &v
}

// Age возвращает возраст объекта в годах относительно переданного момента.
func (p Property) Age(now time.Time) *int32 {
	if p.YearBuilt == nil {
		return nil
	}
	age := int32(now.Year()) - *p.YearBuilt
	if age < 0 {
		age = 0
	}
	return &age
}

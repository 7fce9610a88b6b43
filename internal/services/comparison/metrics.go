package comparison

import "dharma_realty/internal/domain"

// Snapshot — срез данных одного объекта на момент сравнения.
// Собирается вызывающей стороной из записи объекта и его анализов;
// любая вложенная часть может отсутствовать.
type Snapshot struct {
	ID      string
	Listing ListingFacet

	Vastu      *domain.VastuAnalysis
	Climate    *domain.ClimateAnalysis
	LandEnergy *domain.LandEnergyAnalysis
}

// ListingFacet — числовые атрибуты самого объявления.
type ListingFacet struct {
	Price       *float64
	PricePerSqm *float64
	Area        *float64
	// Age — возраст в годах, вычисляется при сборке снимка
	Age *float64
}

// Имена встроенных метрик.
const (
	MetricPrice       = "price"
	MetricPricePerSqm = "price_per_sqm"
	MetricVastuScore  = "vastu_score"
	MetricClimateRisk = "climate_risk"
	MetricLandEnergy  = "land_energy"
	MetricArea        = "area"
	MetricAge         = "age"
)

// Заголовочные метрики для текстового резюме: качество и риск.
var headlineMetrics = [2]string{MetricVastuScore, MetricClimateRisk}

// DefaultMetrics — встроенный набор метрик сравнения объектов.
// Экстракторы типизированы и при отсутствии данных возвращают nil.
func DefaultMetrics() []Metric {
	return []Metric{
		{
			Name:      MetricPrice,
			Direction: LowerIsBetter,
			Weight:    1.0,
			Value:     func(s Snapshot) *float64 { return s.Listing.Price },
		},
		{
			Name:      MetricPricePerSqm,
			Direction: LowerIsBetter,
			Weight:    1.0,
			Value:     func(s Snapshot) *float64 { return s.Listing.PricePerSqm },
		},
		{
			Name:      MetricVastuScore,
			Direction: HigherIsBetter,
			Weight:    1.5,
			Value: func(s Snapshot) *float64 {
				if s.Vastu == nil {
					return nil
				}
				return float64ptr(float64(s.Vastu.Score))
			},
		},
		{
			Name:      MetricClimateRisk,
			Direction: LowerIsBetter,
			Weight:    1.5,
			Value: func(s Snapshot) *float64 {
				if s.Climate == nil {
					return nil
				}
				return float64ptr(float64(s.Climate.OverallRiskScore))
			},
		},
		{
			Name:      MetricLandEnergy,
			Direction: HigherIsBetter,
			Weight:    1.0,
			Value: func(s Snapshot) *float64 {
				if s.LandEnergy == nil {
					return nil
				}
				return float64ptr(float64(s.LandEnergy.EnergyScore))
			},
		},
		{
			Name:      MetricArea,
			Direction: HigherIsBetter,
			Weight:    0.5,
			Value:     func(s Snapshot) *float64 { return s.Listing.Area },
		},
		{
			Name:      MetricAge,
			Direction: LowerIsBetter,
			Weight:    0.5,
			Value:     func(s Snapshot) *float64 { return s.Listing.Age },
		},
	}
}

func float64ptr(v float64) *float64 {
	return &v
}

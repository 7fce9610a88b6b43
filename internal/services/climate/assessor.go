package climate

import (
	"time"

	"dharma_realty/internal/domain"
)

// Уровни риска и их вклад в общий счёт.
const (
	riskLow     = "Low"
	riskMedium  = "Medium"
	riskHigh    = "High"
	riskExtreme = "Extreme"
)

var riskValues = map[string]float64{
	riskLow:     5,
	riskMedium:  15,
	riskHigh:    25,
	riskExtreme: 35,
}

// temp2050 — прогноз роста температуры к 2050 году по среднему
// сценарию SSP2-4.5, °C от базовой линии.
const temp2050 = 2.7

// Assess — детерминированная оценка климатических рисков объекта
// по флагам подверженности. Больший счёт означает больший риск.
func Assess(p domain.Property) domain.ClimateAnalysis {
	var hazards []domain.HazardRisk

	if p.Hazards.FloodZone {
		hazards = append(hazards, domain.HazardRisk{
			Hazard: "Flood", CurrentRisk: riskHigh, FutureRisk: riskExtreme,
		})
	}
	if p.Hazards.CoastalZone {
		hazards = append(hazards, domain.HazardRisk{
			Hazard: "Sea Level Rise", CurrentRisk: riskMedium, FutureRisk: riskHigh,
		})
	}
	if p.Hazards.CycloneProne {
		hazards = append(hazards, domain.HazardRisk{
			Hazard: "Cyclone", CurrentRisk: riskHigh, FutureRisk: riskExtreme,
		})
	}
	if p.Hazards.DroughtProne {
		hazards = append(hazards, domain.HazardRisk{
			Hazard: "Drought", CurrentRisk: riskMedium, FutureRisk: riskHigh,
		})
	}
	// Тепловой риск оценивается всегда: волны жары затрагивают весь регион
	heatCurrent := riskLow
	if p.Hazards.HeatProne {
		heatCurrent = riskMedium
	}
	hazards = append(hazards, domain.HazardRisk{
		Hazard: "Heat Wave", CurrentRisk: heatCurrent, FutureRisk: riskHigh,
	})

	score := 0.0
	for _, h := range hazards {
		score += riskValues[h.CurrentRisk]
		score += riskValues[h.FutureRisk] * 0.5
	}
	score += temp2050 * 5

	overall := int32(score)
	if overall > 100 {
		overall = 100
	}

	return domain.ClimateAnalysis{
		OverallRiskScore: overall,
		Hazards:          hazards,
		InvestmentRating: InvestmentRating(overall),
		InsuranceClass:   InsuranceClass(overall),
		ResilienceScore:  resilience(p),
	}
}

// InvestmentRating — инвестиционная оценка по уровню риска.
func InvestmentRating(score int32) string {
	switch {
	case score <= 25:
		return "A - Excellent (Low climate risk)"
	case score <= 40:
		return "B - Good (Moderate risk, manageable)"
	case score <= 60:
		return "C - Fair (Significant risk, mitigation needed)"
	case score <= 80:
		return "D - Poor (High risk, major mitigation required)"
	default:
		return "F - Avoid (Extreme risk, not recommended)"
	}
}

// InsuranceClass — страховой класс по уровню риска.
func InsuranceClass(score int32) string {
	switch {
	case score <= 30:
		return "Standard"
	case score <= 50:
		return "Preferred (with mitigation)"
	case score <= 70:
		return "Substandard (premium loading)"
	default:
		return "High Risk (specialized coverage needed)"
	}
}

// resilience — устойчивость объекта: базовые 50 плюс 5 за каждую
// приоритетную меру адаптации (затопление и циклоны требуют таких мер).
func resilience(p domain.Property) int32 {
	score := int32(50)
	if p.Hazards.FloodZone {
		score += 5
	}
	if p.Hazards.CycloneProne {
		score += 5
	}
	if score > 100 {
		score = 100
	}
	return score
}

// SeasonalAdvice — сезонная рекомендация по осмотру и покупке.
// Часы не используются: месяц передаёт вызывающая сторона.
func SeasonalAdvice(month time.Month) domain.SeasonalAdvice {
	switch {
	case month >= time.June && month <= time.September:
		return domain.SeasonalAdvice{
			Season:      "Monsoon",
			BuyingScore: 40,
			Advice: []string{
				"Inspect roof and walls for leaks during active rain",
				"Check the plot and access roads for waterlogging",
				"Negotiate harder: monsoon is a slow sales season",
			},
		}
	case month >= time.March && month <= time.May:
		return domain.SeasonalAdvice{
			Season:      "Summer",
			BuyingScore: 60,
			Advice: []string{
				"Visit at mid-day to judge heat build-up and ventilation",
				"Verify cooling costs with the current owner",
			},
		}
	case month == time.October || month == time.November:
		return domain.SeasonalAdvice{
			Season:      "Post-Monsoon",
			BuyingScore: 75,
			Advice: []string{
				"Look for fresh paint that may hide monsoon water damage",
				"Festive season brings developer discounts",
			},
		}
	default:
		return domain.SeasonalAdvice{
			Season:      "Winter",
			BuyingScore: 85,
			Advice: []string{
				"Best season for site visits and structural inspection",
				"Year-end closings motivate sellers to negotiate",
			},
		}
	}
}

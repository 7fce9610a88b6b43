package landenergy

import (
	"fmt"

	"dharma_realty/internal/domain"
)

// Интенсивность одной геопатогенной зоны по обследованию участка.
// Хранится только число зон, интенсивность принимается средней.
const defaultZoneIntensity = 5

// Analyze оценивает энергетику участка по данным обследования:
// геопатогенные зоны и подземные водные потоки снижают счёт от 100.
func Analyze(p domain.Property) domain.LandEnergyAnalysis {
	score := int32(100)

	zones := p.Hazards.GeopathicZones
	water := p.Hazards.UndergroundWater

	score -= zones * defaultZoneIntensity * 2
	score -= water * 10

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	var findings []string
	var remediation []string
	if zones > 0 {
		findings = append(findings, fmt.Sprintf("%d geopathic stress zone(s) detected on the plot", zones))
		remediation = append(remediation, "Place copper rods or Vastu pyramids over stress zones")
		remediation = append(remediation, "Avoid placing beds or work desks above stress zones")
	}
	if water > 0 {
		findings = append(findings, fmt.Sprintf("%d underground water stream(s) run beneath the plot", water))
		remediation = append(remediation, "Shield sleeping areas from water vein crossings with cork or rubber matting")
	}
	if len(findings) == 0 {
		findings = append(findings, "No geopathic stress or underground water detected")
	}

	return domain.LandEnergyAnalysis{
		EnergyScore: score,
		Quality:     Quality(score),
		Findings:    findings,
		Remediation: remediation,
	}
}

// Quality — качественная полоса энергетики участка.
func Quality(score int32) string {
	switch {
	case score >= 80:
		return "Highly Positive"
	case score >= 60:
		return "Positive"
	case score >= 40:
		return "Neutral"
	case score >= 20:
		return "Negative"
	default:
		return "Highly Negative"
	}
}

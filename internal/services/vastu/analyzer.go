package vastu

import (
	"fmt"

	"dharma_realty/internal/domain"
)

// rule — одно правило Vastu. Положительные правила добавляют баллы при
// соблюдении, отрицательные снимают при нарушении и порождают issue.
type rule struct {
	name        string
	category    string
	severity    string
	principle   string
	impact      int32
	description string
	remedies    []domain.VastuRemedy
	applies     func(p domain.Property) bool
}

// rules — таблица правил размещения. Начальный счёт 100, итог в 0..100.
var rules = []rule{
	{
		name:      "East Entrance - Most Auspicious",
		category:  "entrance",
		severity:  "critical",
		principle: "East direction ruled by Indra. Brings prosperity, positive energy, success.",
		impact:    15,
		applies:   facingIs(domain.DirectionEast),
	},
	{
		name:      "North Entrance - Wealth Direction",
		category:  "entrance",
		severity:  "critical",
		principle: "North ruled by Kubera. Attracts prosperity and financial growth.",
		impact:    15,
		applies:   facingIs(domain.DirectionNorth),
	},
	{
		name:        "South-West Entrance - Avoid",
		category:    "entrance",
		severity:    "critical",
		principle:   "SW direction can bring obstacles and negative energy.",
		impact:      -20,
		description: "Main entrance faces South or South-West",
		remedies: []domain.VastuRemedy{
			{Type: "structural", Description: "Relocate entrance to East or North", CostEstimate: 25000, Effectiveness: 100},
			{Type: "placement", Description: "Place Ganesha idol outside entrance, hang sacred toran", CostEstimate: 500, Effectiveness: 60},
			{Type: "symbolic", Description: "Install Vastu pyramid, paint door with specific colors", CostEstimate: 200, Effectiveness: 40},
		},
		applies: func(p domain.Property) bool {
			return p.Facing != nil && (*p.Facing == domain.DirectionSouth || *p.Facing == domain.DirectionSouthwest)
		},
	},
	{
		name:      "Southeast Kitchen - Agni Direction",
		category:  "kitchen",
		severity:  "critical",
		principle: "Southeast ruled by Agni. Perfect alignment for cooking activities.",
		impact:    15,
		applies:   placementIs(kitchen, domain.DirectionSoutheast),
	},
	{
		name:        "Northeast Kitchen - Strictly Avoid",
		category:    "kitchen",
		severity:    "critical",
		principle:   "Northeast is most sacred direction. Kitchen here brings health and financial problems.",
		impact:      -30,
		description: "Kitchen is placed in the Northeast zone",
		remedies: []domain.VastuRemedy{
			{Type: "structural", Description: "Relocate kitchen to Southeast", CostEstimate: 50000, Effectiveness: 100},
			{Type: "energetic", Description: "Perform Vastu Shanti puja, install water feature in NE", CostEstimate: 1000, Effectiveness: 30},
		},
		applies: placementIs(kitchen, domain.DirectionNortheast),
	},
	{
		name:      "Southwest Master Bedroom - Stability",
		category:  "bedroom",
		severity:  "moderate",
		principle: "SW direction provides stability, rest, and strengthens relationships.",
		impact:    10,
		applies:   placementIs(masterBedroom, domain.DirectionSouthwest),
	},
	{
		name:        "Overhead Beam Above Bed",
		category:    "bedroom",
		severity:    "minor",
		principle:   "Beam creates psychological pressure and can cause health issues.",
		impact:      -5,
		description: "A structural beam runs above the bed",
		remedies: []domain.VastuRemedy{
			{Type: "structural", Description: "Install false ceiling to hide beam", CostEstimate: 1500, Effectiveness: 100},
			{Type: "placement", Description: "Relocate bed away from beam", CostEstimate: 0, Effectiveness: 80},
			{Type: "symbolic", Description: "Hang fabric canopy above bed", CostEstimate: 200, Effectiveness: 60},
		},
		applies: func(p domain.Property) bool {
			return p.Placements.BeamAboveBed != nil && *p.Placements.BeamAboveBed
		},
	},
	{
		name:        "Northeast Bathroom - Critical Defect",
		category:    "bathroom",
		severity:    "critical",
		principle:   "NE is sacred water direction. Bathroom pollutes this zone.",
		impact:      -25,
		description: "Bathroom is placed in the Northeast zone",
		remedies: []domain.VastuRemedy{
			{Type: "structural", Description: "Relocate bathroom to West or Northwest", CostEstimate: 40000, Effectiveness: 100},
			{Type: "energetic", Description: "Keep door closed always, install Vastu yantra", CostEstimate: 100, Effectiveness: 20},
		},
		applies: placementIs(bathroom, domain.DirectionNortheast),
	},
	{
		name:      "Open Brahmasthan - Energy Flow",
		category:  "center",
		severity:  "critical",
		principle: "Center should be open for energy circulation. Heavy furniture blocks flow.",
		impact:    15,
		applies: func(p domain.Property) bool {
			return p.Placements.CenterOpen != nil && *p.Placements.CenterOpen
		},
	},
}

func facingIs(dir domain.CompassDirection) func(domain.Property) bool {
	return func(p domain.Property) bool {
		return p.Facing != nil && *p.Facing == dir
	}
}

type roomSelector func(domain.RoomPlacements) *domain.CompassDirection

func kitchen(pl domain.RoomPlacements) *domain.CompassDirection       { return pl.Kitchen }
func masterBedroom(pl domain.RoomPlacements) *domain.CompassDirection { return pl.MasterBedroom }
func bathroom(pl domain.RoomPlacements) *domain.CompassDirection      { return pl.Bathroom }

func placementIs(room roomSelector, dir domain.CompassDirection) func(domain.Property) bool {
	return func(p domain.Property) bool {
		d := room(p.Placements)
		return d != nil && *d == dir
	}
}

// Analyze применяет таблицу правил к плану объекта.
// Детерминированно: одинаковый объект всегда даёт одинаковый отчёт.
func Analyze(p domain.Property) domain.VastuAnalysis {
	score := int32(100)
	var issues []domain.VastuIssue

	for _, r := range rules {
		if !r.applies(p) {
			continue
		}
		score += r.impact
		if r.impact < 0 {
			issues = append(issues, domain.VastuIssue{
				Rule:        r.name,
				Category:    r.category,
				Severity:    r.severity,
				Description: r.description,
				Principle:   r.principle,
				ScoreImpact: r.impact,
				Remedies:    r.remedies,
			})
		}
	}

	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	grade := Grade(score)
	return domain.VastuAnalysis{
		Score:   score,
		Grade:   grade,
		Issues:  issues,
		Summary: summary(score, grade, len(issues)),
	}
}

// Grade — буквенная оценка по счёту.
func Grade(score int32) string {
	switch {
	case score >= 90:
		return "A+"
	case score >= 80:
		return "A"
	case score >= 70:
		return "B"
	case score >= 60:
		return "C"
	case score >= 50:
		return "D"
	default:
		return "F"
	}
}

func summary(score int32, grade string, issueCount int) string {
	if issueCount == 0 {
		return fmt.Sprintf("Vastu grade %s (%d/100): the layout follows classical placement principles.", grade, score)
	}
	return fmt.Sprintf("Vastu grade %s (%d/100): %d placement issue(s) found, remedies available.", grade, score, issueCount)
}

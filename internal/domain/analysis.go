package domain

import "time"

// VastuIssue — нарушение правила Vastu с рекомендациями по исправлению.
type VastuIssue struct {
	Rule        string        `json:"rule"`
	Category    string        `json:"category"`
	Severity    string        `json:"severity"` // critical, moderate, minor
	Description string        `json:"description"`
	Principle   string        `json:"principle"`
	ScoreImpact int32         `json:"score_impact"`
	Remedies    []VastuRemedy `json:"remedies,omitempty"`
}

// VastuRemedy — способ исправления нарушения.
type VastuRemedy struct {
	Type          string `json:"type"` // structural, placement, symbolic, energetic
	Description   string `json:"description"`
	CostEstimate  int64  `json:"cost_estimate"`
	Effectiveness int32  `json:"effectiveness"` // 0-100
}

// VastuAnalysis — результат Vastu-анализа объекта.
type VastuAnalysis struct {
	Score   int32        `json:"score"` // 0-100
	Grade   string       `json:"grade"` // A+..F
	Issues  []VastuIssue `json:"issues"`
	Summary string       `json:"summary"`
}

// ClimateAnalysis — результат оценки климатических рисков.
type ClimateAnalysis struct {
	// OverallRiskScore — общий риск 0-100, больше = хуже
	OverallRiskScore int32        `json:"overall_risk_score"`
	Hazards          []HazardRisk `json:"hazards"`
	InvestmentRating string       `json:"investment_rating"`
	InsuranceClass   string       `json:"insurance_class"`
	// ResilienceScore — устойчивость объекта 0-100, больше = лучше
	ResilienceScore int32 `json:"resilience_score"`
}

// HazardRisk — оценка одной климатической опасности.
type HazardRisk struct {
	Hazard      string `json:"hazard"`
	CurrentRisk string `json:"current_risk"`   // Low, Medium, High, Extreme
	FutureRisk  string `json:"future_risk_2050"`
}

// LandEnergyAnalysis — оценка энергетики участка.
type LandEnergyAnalysis struct {
	EnergyScore int32    `json:"energy_score"` // 0-100
	Quality     string   `json:"quality"`      // Excellent..Very Poor
	Findings    []string `json:"findings"`
	Remediation []string `json:"remediation,omitempty"`
}

// FengShuiSector — анализ одного сектора Багуа.
type FengShuiSector struct {
	Direction CompassDirection `json:"direction"`
	Element   string           `json:"element"`
	BaguaArea string           `json:"bagua_area"`
	// StarNumber — летящая звезда сектора 1-9
	StarNumber  int32    `json:"star_number"`
	StarNature  string   `json:"star_nature"`
	StarAffects string   `json:"star_affects"`
	Score       int32    `json:"score"` // 0-100
	Colors      []string `json:"colors"`
}

// FengShuiAffliction — годовая неблагоприятная зона.
type FengShuiAffliction struct {
	Name     string   `json:"name"`
	Position string   `json:"position"`
	Severity string   `json:"severity"` // High, Highest
	Avoid    []string `json:"avoid"`
	Remedies []string `json:"remedies"`
}

// FengShuiRemedy — корректирующая мера для проблемной зоны.
type FengShuiRemedy struct {
	Location string   `json:"location"`
	Issue    string   `json:"issue"`
	Remedies []string `json:"remedies"`
	Priority string   `json:"priority"` // Critical, High, Medium
}

// FengShuiAnalysis — фэншуй-анализ объекта на конкретный год.
// Летящие звёзды и годовые зоны зависят от года, поэтому год входит в запрос.
type FengShuiAnalysis struct {
	Score          int32                       `json:"score"` // 0-100
	Sectors        []FengShuiSector            `json:"sectors"`
	ElementBalance map[string]float64          `json:"element_balance"`
	WealthSectors  []CompassDirection          `json:"wealth_sectors"`
	Afflictions    []FengShuiAffliction        `json:"afflictions"`
	Remedies       []FengShuiRemedy            `json:"remedies,omitempty"`
	FavorableRooms map[string]CompassDirection `json:"favorable_rooms"`
	HealthConcerns []string                    `json:"health_concerns,omitempty"`
}

// Panchang — пять элементов ведического календаря на дату.
type Panchang struct {
	Date             time.Time `json:"date"`
	Tithi            string    `json:"tithi"`
	TithiNote        string    `json:"tithi_note"`
	Nakshatra        string    `json:"nakshatra"`
	NakshatraRuler   string    `json:"nakshatra_ruler"`
	NakshatraMeaning string    `json:"nakshatra_meaning"`
	Yoga             string    `json:"yoga"`
	Karana           string    `json:"karana"`
	Weekday          string    `json:"weekday"`
	// RahuKaal — неблагоприятный интервал дня
	RahuKaal string `json:"rahu_kaal"`
	// AbhijitMuhurta — самый благоприятный интервал дня
	AbhijitMuhurta string `json:"abhijit_muhurta"`
}

// AuspiciousDate — благоприятная дата для сделки или новоселья.
type AuspiciousDate struct {
	Date           time.Time `json:"date"`
	Quality        string    `json:"quality"` // Excellent, Good
	Nakshatra      string    `json:"nakshatra"`
	Tithi          string    `json:"tithi"`
	Weekday        string    `json:"weekday"`
	AuspiciousTime string    `json:"auspicious_time"`
	AvoidTime      string    `json:"avoid_time"`
}

// AstrologyAnalysis — ведический календарный разбор: панчанг на дату запроса
// и благоприятные даты для покупки и новоселья (грихапревеш).
type AstrologyAnalysis struct {
	Panchang Panchang `json:"panchang"`
	// MuhurtaQuality — качество дня запроса для сделок с недвижимостью
	MuhurtaQuality    string           `json:"muhurta_quality"` // Excellent, Good, Average, Avoid
	PurchaseDates     []AuspiciousDate `json:"purchase_dates"`
	GrihaPraveshDates []AuspiciousDate `json:"griha_pravesh_dates"`
	Recommendations   []string         `json:"recommendations"`
}

// NumerologyAnalysis — нумерологический разбор адреса объекта.
type NumerologyAnalysis struct {
	HouseNumber   string   `json:"house_number"`
	AddressNumber int32    `json:"address_number"`
	ReducedNumber int32    `json:"reduced_number"`
	Energy        string   `json:"energy"`
	SuitableFor   []string `json:"suitable_for"`
	Challenges    []string `json:"challenges,omitempty"`
}

// PropertyAnalysisReport — полный отчёт по объекту для эндпоинта /analysis.
type PropertyAnalysisReport struct {
	PropertyID string              `json:"property_id"`
	Vastu      *VastuAnalysis      `json:"vastu,omitempty"`
	FengShui   *FengShuiAnalysis   `json:"feng_shui,omitempty"`
	Climate    *ClimateAnalysis    `json:"climate,omitempty"`
	LandEnergy *LandEnergyAnalysis `json:"land_energy,omitempty"`
	Numerology *NumerologyAnalysis `json:"numerology,omitempty"`
	Astrology  *AstrologyAnalysis  `json:"astrology,omitempty"`
	Season     *SeasonalAdvice     `json:"season,omitempty"`
}

// CompatibilityReport — нумерологическая совместимость покупателя и объекта.
type CompatibilityReport struct {
	LifePath       int32 `json:"life_path"`
	PropertyNumber int32 `json:"property_number"`
	Score          int32 `json:"score"` // 0-100
	// LifePathMatch — входит ли число объекта в совместимые с жизненным путём
	LifePathMatch   bool     `json:"life_path_match"`
	EnergyAlignment string   `json:"energy_alignment"`
	Strengths       []string `json:"strengths"`
	Challenges      []string `json:"challenges,omitempty"`
	// LuckyDays — благоприятные дни месяца для сделок по этому объекту
	LuckyDays   []int32 `json:"lucky_days"`
	LuckyMonths []int32 `json:"lucky_months"`
}

// LuckyDate — благоприятная дата в окне поиска.
type LuckyDate struct {
	Date         time.Time `json:"date"`
	DayNumber    int32     `json:"day_number"`
	UniversalDay int32     `json:"universal_day"`
	Strength     string    `json:"strength"` // Strong, Moderate
	GoodFor      []string  `json:"good_for"`
}

// SeasonalAdvice — сезонная рекомендация по покупке/осмотру.
type SeasonalAdvice struct {
	Season string `json:"season"`
	// BuyingScore — насколько месяц благоприятен для сделки 0-100
	BuyingScore int32    `json:"buying_score"`
	Advice      []string `json:"advice"`
}

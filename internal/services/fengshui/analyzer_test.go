package fengshui

import (
	"testing"

	"dharma_realty/internal/domain"
)

func TestSectorStar(t *testing.T) {
	tests := []struct {
		facing domain.CompassDirection
		dir    domain.CompassDirection
		want   int32
	}{
		{domain.DirectionNorth, domain.DirectionNorth, 1},
		{domain.DirectionEast, domain.DirectionNortheast, 1},
		{domain.DirectionEast, domain.DirectionEast, 5},
		{domain.DirectionSouth, domain.DirectionNorth, 9},
		{domain.DirectionSouthwest, domain.DirectionNortheast, 9},
	}

	for _, tt := range tests {
		if got := sectorStar(tt.dir, tt.facing); got != tt.want {
			t.Errorf("sectorStar(%s, facing %s) = %d, want %d", tt.dir, tt.facing, got, tt.want)
		}
	}
}

func TestSectorScore_ElementHarmony(t *testing.T) {
	tests := []struct {
		name    string
		star    int32
		element string
		want    int32
	}{
		// Огонь порождает Землю: бонус к звезде болезней
		{"productive bonus", 2, elementFire, 50},
		// Земля разрушает Воду: штраф благоприятной звезде
		{"destructive penalty", 1, elementEarth, 70},
		{"neutral", 6, elementWood, 80},
		{"clamped low", 5, elementWood, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sectorScore(flyingStars[tt.star], tt.element); got != tt.want {
				t.Errorf("score = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAnalyze_EastFacing(t *testing.T) {
	facing := domain.DirectionEast
	got := Analyze(domain.Property{Facing: &facing}, 2026)

	if got.Score != 44 {
		t.Errorf("overall score = %d, want 44", got.Score)
	}
	if len(got.Sectors) != 8 {
		t.Fatalf("sectors = %d, want 8", len(got.Sectors))
	}

	// Восточный сектор получает Пятую Жёлтую с разрушающим элементом
	east := sectorByDirection(t, got.Sectors, domain.DirectionEast)
	if east.StarNumber != 5 || east.StarNature != "Highly Inauspicious" || east.Score != 10 {
		t.Errorf("east sector = star %d %q score %d, want star 5 Highly Inauspicious score 10",
			east.StarNumber, east.StarNature, east.Score)
	}

	northwest := sectorByDirection(t, got.Sectors, domain.DirectionNorthwest)
	if northwest.StarNumber != 8 || northwest.Score != 95 {
		t.Errorf("northwest sector = star %d score %d, want star 8 score 95", northwest.StarNumber, northwest.Score)
	}

	// Богатство: зона Wealth на юго-востоке и звезда 8 на северо-западе
	if len(got.WealthSectors) != 2 ||
		got.WealthSectors[0] != domain.DirectionSoutheast ||
		got.WealthSectors[1] != domain.DirectionNorthwest {
		t.Errorf("wealth sectors = %v, want [SE NW]", got.WealthSectors)
	}

	// Звезда болезней на юге плюс Пятая Жёлтая года
	if len(got.HealthConcerns) != 2 {
		t.Errorf("health concerns = %v, want 2 entries", got.HealthConcerns)
	}

	// Единственный сектор ниже 50 — восток, плюс три годовые зоны
	if len(got.Remedies) != 4 {
		t.Fatalf("remedies = %d, want 4", len(got.Remedies))
	}
	if got.Remedies[0].Location != "E" || got.Remedies[0].Priority != "High" {
		t.Errorf("first remedy = %s/%s, want E/High", got.Remedies[0].Location, got.Remedies[0].Priority)
	}

	if got.FavorableRooms["office"] != domain.DirectionSoutheast {
		t.Errorf("office sector = %s, want SE", got.FavorableRooms["office"])
	}
	if got.FavorableRooms["meditation"] != domain.DirectionNorthwest {
		t.Errorf("meditation sector = %s, want NW", got.FavorableRooms["meditation"])
	}
}

func TestAnnualAfflictions(t *testing.T) {
	afflictions := annualAfflictions(2026)
	if len(afflictions) != 3 {
		t.Fatalf("afflictions = %d, want 3", len(afflictions))
	}

	if afflictions[0].Position != "South" {
		t.Errorf("Tai Sui position = %q, want South", afflictions[0].Position)
	}
	if afflictions[1].Position != "South" || afflictions[1].Severity != "Highest" {
		t.Errorf("5 Yellow = %s/%s, want South/Highest", afflictions[1].Position, afflictions[1].Severity)
	}
	if afflictions[2].Position != "North" {
		t.Errorf("3 Killings position = %q, want North", afflictions[2].Position)
	}
}

func TestAnalyze_MissingFacingDefaultsToNorth(t *testing.T) {
	north := domain.DirectionNorth
	explicit := Analyze(domain.Property{Facing: &north}, 2026)
	missing := Analyze(domain.Property{}, 2026)

	if explicit.Score != missing.Score {
		t.Errorf("score without facing = %d, with north facing = %d", missing.Score, explicit.Score)
	}
}

func TestElementBalance_SumsToHundred(t *testing.T) {
	balance := elementBalance()

	var total float64
	for _, v := range balance {
		total += v
	}
	if total < 99.99 || total > 100.01 {
		t.Errorf("balance total = %v, want 100", total)
	}
	if balance[elementEarth] != 25 {
		t.Errorf("earth share = %v, want 25", balance[elementEarth])
	}
}

func sectorByDirection(t *testing.T, sectors []domain.FengShuiSector, dir domain.CompassDirection) domain.FengShuiSector {
	t.Helper()
	for _, s := range sectors {
		if s.Direction == dir {
			return s
		}
	}
	t.Fatalf("sector %s not found", dir)
	return domain.FengShuiSector{}
}

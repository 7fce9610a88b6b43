// Package fengshui — фэншуй-анализ объекта: карта Багуа, пять элементов,
// летящие звёзды и годовые неблагоприятные зоны.
package fengshui

import (
	"fmt"
	"slices"

	"dharma_realty/internal/domain"
)

// Пять элементов у-син.
const (
	elementWood  = "Wood"
	elementFire  = "Fire"
	elementEarth = "Earth"
	elementMetal = "Metal"
	elementWater = "Water"
)

// sectorOrder — восемь секторов Багуа в порядке обхода по компасу.
var sectorOrder = [8]domain.CompassDirection{
	domain.DirectionNorth, domain.DirectionNortheast,
	domain.DirectionEast, domain.DirectionSoutheast,
	domain.DirectionSouth, domain.DirectionSouthwest,
	domain.DirectionWest, domain.DirectionNorthwest,
}

var directionElements = map[domain.CompassDirection]string{
	domain.DirectionNorth:     elementWater,
	domain.DirectionNortheast: elementEarth,
	domain.DirectionEast:      elementWood,
	domain.DirectionSoutheast: elementWood,
	domain.DirectionSouth:     elementFire,
	domain.DirectionSouthwest: elementEarth,
	domain.DirectionWest:      elementMetal,
	domain.DirectionNorthwest: elementMetal,
}

var directionBagua = map[domain.CompassDirection]string{
	domain.DirectionNorth:     "Career",
	domain.DirectionNortheast: "Knowledge",
	domain.DirectionEast:      "Family",
	domain.DirectionSoutheast: "Wealth",
	domain.DirectionSouth:     "Fame",
	domain.DirectionSouthwest: "Relationships",
	domain.DirectionWest:      "Children",
	domain.DirectionNorthwest: "Helpful People",
}

// directionValues — базовые числа секторов для расчёта летящей звезды.
var directionValues = map[domain.CompassDirection]int32{
	domain.DirectionNorth:     1,
	domain.DirectionNortheast: 8,
	domain.DirectionEast:      3,
	domain.DirectionSoutheast: 4,
	domain.DirectionSouth:     9,
	domain.DirectionSouthwest: 2,
	domain.DirectionWest:      7,
	domain.DirectionNorthwest: 6,
}

var elementColors = map[string][]string{
	elementWood:  {"green", "brown", "teal"},
	elementFire:  {"red", "orange", "pink", "purple"},
	elementEarth: {"yellow", "beige", "tan", "terracotta"},
	elementMetal: {"white", "gray", "silver", "gold"},
	elementWater: {"black", "blue", "navy"},
}

// productiveCycle — порождающий цикл элементов.
var productiveCycle = map[string]string{
	elementWood:  elementFire,
	elementFire:  elementEarth,
	elementEarth: elementMetal,
	elementMetal: elementWater,
	elementWater: elementWood,
}

// destructiveCycle — разрушающий цикл элементов.
var destructiveCycle = map[string]string{
	elementWood:  elementEarth,
	elementFire:  elementMetal,
	elementEarth: elementWater,
	elementMetal: elementWood,
	elementWater: elementFire,
}

type flyingStar struct {
	number   int32
	element  string
	nature   string
	affects  string
	remedies []string
}

const (
	natureMostAuspicious   = "Most Auspicious"
	natureAuspicious       = "Auspicious"
	natureInauspicious     = "Inauspicious"
	natureHighInauspicious = "Highly Inauspicious"
)

var flyingStars = map[int32]flyingStar{
	1: {1, elementWater, natureAuspicious, "Career, wisdom", []string{"Enhance with metal", "Water features"}},
	2: {2, elementEarth, natureInauspicious, "Illness", []string{"Metal wind chimes", "Wu Lou gourd"}},
	3: {3, elementWood, natureInauspicious, "Arguments, litigation", []string{"Red objects", "Fire element"}},
	4: {4, elementWood, natureAuspicious, "Romance, education", []string{"Water features", "Fresh flowers"}},
	5: {5, elementEarth, natureHighInauspicious, "Misfortune", []string{"Metal cure", "Salt water cure", "6-rod wind chime"}},
	6: {6, elementMetal, natureAuspicious, "Authority, heaven luck", []string{"Earth crystals", "Ceramics"}},
	7: {7, elementMetal, natureInauspicious, "Violence, theft", []string{"Water feature", "Blue objects"}},
	8: {8, elementEarth, natureMostAuspicious, "Wealth, prosperity", []string{"Fire element", "Red and purple"}},
	9: {9, elementFire, natureAuspicious, "Future prosperity", []string{"Wood element", "Plants"}},
}

// defaultElementWeights — исходный баланс элементов при отсутствии
// данных об отделке, в сумме даёт 100.
var defaultElementWeights = map[string]float64{
	elementWood:  20,
	elementFire:  15,
	elementEarth: 25,
	elementMetal: 20,
	elementWater: 20,
}

// roomBaguaPreferences — предпочтительные зоны Багуа по типам комнат.
var roomBaguaPreferences = map[string][]string{
	"bedroom":     {"Relationships"},
	"office":      {"Career", "Wealth"},
	"kitchen":     {"Family"},
	"living_room": {"Fame", "Family"},
	"meditation":  {"Knowledge", "Helpful People"},
}

// Analyze строит фэншуй-отчёт по объекту на указанный год.
// Детерминированно при фиксированных объекте и годе. Звёзды считаются
// от фасада; при неизвестном фасаде берётся север.
func Analyze(p domain.Property, year int) domain.FengShuiAnalysis {
	facing := domain.DirectionNorth
	if p.Facing != nil {
		facing = *p.Facing
	}

	sectors := make([]domain.FengShuiSector, 0, len(sectorOrder))
	for _, dir := range sectorOrder {
		sectors = append(sectors, analyzeSector(dir, facing))
	}

	balance := elementBalance()
	afflictions := annualAfflictions(year)

	return domain.FengShuiAnalysis{
		Score:          overallScore(sectors, balance, len(afflictions)),
		Sectors:        sectors,
		ElementBalance: balance,
		WealthSectors:  wealthSectors(sectors),
		Afflictions:    afflictions,
		Remedies:       remedies(sectors, afflictions),
		FavorableRooms: favorableRooms(sectors),
		HealthConcerns: healthConcerns(sectors, afflictions),
	}
}

func analyzeSector(dir, facing domain.CompassDirection) domain.FengShuiSector {
	element := directionElements[dir]
	star := flyingStars[sectorStar(dir, facing)]

	return domain.FengShuiSector{
		Direction:   dir,
		Element:     element,
		BaguaArea:   directionBagua[dir],
		StarNumber:  star.number,
		StarNature:  star.nature,
		StarAffects: star.affects,
		Score:       sectorScore(star, element),
		Colors:      elementColors[element],
	}
}

// sectorStar — номер летящей звезды сектора относительно фасада.
func sectorStar(dir, facing domain.CompassDirection) int32 {
	base := directionValues[facing]
	offset := directionValues[dir]
	return (base+offset-2)%9 + 1
}

// sectorScore — базовый балл по природе звезды с поправкой на
// гармонию элементов сектора и звезды.
func sectorScore(star flyingStar, element string) int32 {
	var score int32
	switch star.nature {
	case natureMostAuspicious:
		score = 95
	case natureAuspicious:
		score = 80
	case natureInauspicious:
		score = 40
	case natureHighInauspicious:
		score = 20
	default:
		score = 50
	}

	if productiveCycle[element] == star.element {
		score += 10
	} else if destructiveCycle[element] == star.element {
		score -= 10
	}

	return clamp(score)
}

func elementBalance() map[string]float64 {
	var total float64
	for _, w := range defaultElementWeights {
		total += w
	}

	balance := make(map[string]float64, len(defaultElementWeights))
	for element, w := range defaultElementWeights {
		balance[element] = w / total * 100
	}
	return balance
}

// annualAfflictions — позиции Тай-Суй, Пятой Жёлтой и Трёх Убийц на год.
func annualAfflictions(year int) []domain.FengShuiAffliction {
	taiSuiCycle := []string{
		"North", "North-Northeast", "East-Northeast", "East",
		"East-Southeast", "South-Southeast", "South",
		"South-Southwest", "West-Southwest", "West",
		"West-Northwest", "North-Northwest",
	}
	fiveYellowCycle := []string{
		"Center", "Northwest", "West", "Northeast",
		"South", "North", "Southwest", "East", "Southeast",
	}
	threeKillings := []string{"South", "East", "North", "West"}

	return []domain.FengShuiAffliction{
		{
			Name:     "Tai Sui (Grand Duke)",
			Position: taiSuiCycle[posMod(year-4, len(taiSuiCycle))],
			Severity: "High",
			Avoid:    []string{"Major renovations", "Disturbing this sector"},
			Remedies: []string{"Pi Yao facing Tai Sui", "Avoid sitting facing this direction"},
		},
		{
			Name:     "5 Yellow (Wu Wang)",
			Position: fiveYellowCycle[posMod(year-2004, len(fiveYellowCycle))],
			Severity: "Highest",
			Avoid:    []string{"Renovations", "Noise", "Ground breaking"},
			Remedies: []string{"6-rod metal wind chime", "Salt water cure", "Wu Lou"},
		},
		{
			Name:     "3 Killings (San Sha)",
			Position: threeKillings[posMod(year, len(threeKillings))],
			Severity: "High",
			Avoid:    []string{"Sitting with back to this direction"},
			Remedies: []string{"3 celestial guardians", "Face this direction"},
		},
	}
}

// remedies — меры для секторов с баллом ниже 50 и для годовых зон.
func remedies(sectors []domain.FengShuiSector, afflictions []domain.FengShuiAffliction) []domain.FengShuiRemedy {
	var out []domain.FengShuiRemedy

	for _, s := range sectors {
		if s.Score >= 50 {
			continue
		}
		priority := "Medium"
		if s.Score < 30 {
			priority = "High"
		}
		out = append(out, domain.FengShuiRemedy{
			Location: string(s.Direction),
			Issue:    s.StarAffects,
			Remedies: flyingStars[s.StarNumber].remedies,
			Priority: priority,
		})
	}

	for _, a := range afflictions {
		priority := "High"
		if a.Severity == "Highest" {
			priority = "Critical"
		}
		out = append(out, domain.FengShuiRemedy{
			Location: a.Position,
			Issue:    a.Name,
			Remedies: a.Remedies,
			Priority: priority,
		})
	}

	return out
}

// wealthSectors — сектора богатства: зона Wealth с баллом от 60
// либо любой сектор со звездой 8.
func wealthSectors(sectors []domain.FengShuiSector) []domain.CompassDirection {
	var out []domain.CompassDirection
	for _, s := range sectors {
		if (s.BaguaArea == "Wealth" && s.Score >= 60) || s.StarNumber == 8 {
			out = append(out, s.Direction)
		}
	}
	return out
}

// favorableRooms — лучший сектор для каждого типа комнаты.
func favorableRooms(sectors []domain.FengShuiSector) map[string]domain.CompassDirection {
	favorable := make(map[string]domain.CompassDirection, len(roomBaguaPreferences))

	for room, preferred := range roomBaguaPreferences {
		var best *domain.FengShuiSector
		for i, s := range sectors {
			if !slices.Contains(preferred, s.BaguaArea) {
				continue
			}
			if best == nil || s.Score > best.Score {
				best = &sectors[i]
			}
		}
		if best != nil {
			favorable[room] = best.Direction
		}
	}

	return favorable
}

func healthConcerns(sectors []domain.FengShuiSector, afflictions []domain.FengShuiAffliction) []string {
	var concerns []string

	for _, s := range sectors {
		if s.StarNumber == 2 {
			concerns = append(concerns, fmt.Sprintf("Illness star 2 in %s - use metal cure", s.Direction))
		}
	}
	for _, a := range afflictions {
		if a.Name == "5 Yellow (Wu Wang)" {
			concerns = append(concerns, fmt.Sprintf("5 Yellow in %s - major health risk", a.Position))
		}
	}

	return concerns
}

// overallScore — средний балл секторов с весом 0.5, баланс элементов
// с весом 0.3 и штраф 5 за каждую годовую зону.
func overallScore(sectors []domain.FengShuiSector, balance map[string]float64, afflictionCount int) int32 {
	var sum float64
	for _, s := range sectors {
		sum += float64(s.Score)
	}
	sectorAvg := sum / float64(len(sectors))

	var variance float64
	for _, v := range balance {
		if v >= 20 {
			variance += v - 20
		} else {
			variance += 20 - v
		}
	}
	balanceScore := 100 - variance
	if balanceScore < 0 {
		balanceScore = 0
	}

	overall := sectorAvg*0.5 + balanceScore*0.3 - float64(afflictionCount*5)
	return clamp(int32(overall))
}

func clamp(v int32) int32 {
	if v > 100 {
		return 100
	}
	if v < 0 {
		return 0
	}
	return v
}

func posMod(v, m int) int {
	return ((v % m) + m) % m
}

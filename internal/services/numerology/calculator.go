package numerology

import (
	"time"

	"dharma_realty/internal/domain"
)

// pythagoreanValues — пифагорейские значения букв (A-Z = 1-9 по кругу).
var pythagoreanValues = map[rune]int32{
	'A': 1, 'B': 2, 'C': 3, 'D': 4, 'E': 5, 'F': 6, 'G': 7, 'H': 8, 'I': 9,
	'J': 1, 'K': 2, 'L': 3, 'M': 4, 'N': 5, 'O': 6, 'P': 7, 'Q': 8, 'R': 9,
	'S': 1, 'T': 2, 'U': 3, 'V': 4, 'W': 5, 'X': 6, 'Y': 7, 'Z': 8,
}

// numberMeaning — значение числа адреса.
type numberMeaning struct {
	energy      string
	suitableFor []string
	challenges  []string
}

var numberMeanings = map[int32]numberMeaning{
	1: {"Leadership, Independence, New Beginnings", []string{"Entrepreneurs", "Leaders", "Independent professionals"}, []string{"Loneliness", "Ego issues"}},
	2: {"Partnership, Balance, Diplomacy", []string{"Couples", "Counselors", "Mediators"}, []string{"Over-sensitivity", "Dependency"}},
	3: {"Creativity, Expression, Joy", []string{"Artists", "Writers", "Entertainers"}, []string{"Scattered energy", "Superficiality"}},
	4: {"Stability, Structure, Hard Work", []string{"Families", "Builders", "Managers"}, []string{"Rigidity", "Workaholism"}},
	5: {"Change, Freedom, Adventure", []string{"Travelers", "Adventurers", "Salespeople"}, []string{"Restlessness", "Overindulgence"}},
	6: {"Home, Family, Responsibility", []string{"Families", "Healers", "Teachers"}, []string{"Over-responsibility", "Worry"}},
	7: {"Spirituality, Wisdom, Introspection", []string{"Scholars", "Spiritual seekers", "Researchers"}, []string{"Isolation", "Skepticism"}},
	8: {"Abundance, Power, Achievement", []string{"Business owners", "Executives", "Investors"}, []string{"Power struggles", "Material focus"}},
	9: {"Completion, Humanitarianism, Wisdom", []string{"Philanthropists", "Healers", "Teachers"}, []string{"Detachment", "Unfinished projects"}},
	11: {"Master Number - Intuition, Inspiration", []string{"Spiritual leaders", "Visionaries"}, nil},
	22: {"Master Number - Master Builder", []string{"Large-scale builders", "Visionary leaders"}, nil},
}

// ReduceToSingle сводит число к одной цифре. При keepMaster мастер-числа
// 11, 22 и 33 не сводятся дальше.
func ReduceToSingle(n int32, keepMaster bool) int32 {
	for n > 9 {
		if keepMaster && (n == 11 || n == 22 || n == 33) {
			return n
		}
		sum := int32(0)
		for n > 0 {
			sum += n % 10
			n /= 10
		}
		n = sum
	}
	return n
}

// SumDigits складывает все цифры строки, прочие символы игнорируются.
func SumDigits(s string) int32 {
	var sum int32
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sum += int32(r - '0')
		}
	}
	return sum
}

// LifePath — число жизненного пути по дате рождения.
func LifePath(birthDate time.Time) int32 {
	day := ReduceToSingle(int32(birthDate.Day()), false)
	month := ReduceToSingle(int32(birthDate.Month()), false)
	year := ReduceToSingle(int32(birthDate.Year()), false)
	return ReduceToSingle(day+month+year, true)
}

// DestinyNumber — число судьбы по полному имени (пифагорейская система).
func DestinyNumber(name string) int32 {
	var total int32
	for _, r := range name {
		if r >= 'a' && r <= 'z' {
			r -= 'a' - 'A'
		}
		total += pythagoreanValues[r]
	}
	return ReduceToSingle(total, true)
}

// AnalyzeAddress — нумерологический разбор адреса объекта.
// Номер дома извлекается из адреса, пустой номер даёт нулевой разбор.
func AnalyzeAddress(address string) domain.NumerologyAnalysis {
	houseNumber := domain.ExtractHouseNumber(address)
	addressNumber := SumDigits(houseNumber)
	reduced := ReduceToSingle(addressNumber, true)

	meaning, ok := numberMeanings[reduced]
	if !ok {
		meaning = numberMeaning{energy: "Neutral"}
	}

	return domain.NumerologyAnalysis{
		HouseNumber:   houseNumber,
		AddressNumber: addressNumber,
		ReducedNumber: reduced,
		Energy:        meaning.energy,
		SuitableFor:   meaning.suitableFor,
		Challenges:    meaning.challenges,
	}
}

// compatibilityMatrix — совместимость жизненного пути с числом объекта.
var compatibilityMatrix = map[[2]int32]int32{
	{1, 1}: 90, {1, 5}: 85, {1, 7}: 80, {1, 9}: 75,
	{2, 2}: 90, {2, 6}: 85, {2, 8}: 80,
	{3, 3}: 90, {3, 5}: 85, {3, 9}: 85,
	{4, 4}: 90, {4, 6}: 85, {4, 8}: 80,
	{5, 5}: 85, {5, 1}: 85, {5, 3}: 80,
	{6, 6}: 90, {6, 2}: 85, {6, 4}: 85,
	{7, 7}: 90, {7, 1}: 80, {7, 5}: 75,
	{8, 8}: 85, {8, 4}: 85, {8, 2}: 80,
	{9, 9}: 85, {9, 3}: 85, {9, 6}: 80,
}

// CompatibilityScore — совместимость покупателя и объекта, 0..100.
// Несимметричные пары смотрятся в обе стороны, по умолчанию 65.
func CompatibilityScore(lifePath, propertyNumber int32) int32 {
	if score, ok := compatibilityMatrix[[2]int32{lifePath, propertyNumber}]; ok {
		return score
	}
	if score, ok := compatibilityMatrix[[2]int32{propertyNumber, lifePath}]; ok {
		return score
	}
	return 65
}

// compatiblePairs — числа объектов, резонирующие с жизненным путём.
var compatiblePairs = map[int32][]int32{
	1: {1, 3, 5, 7, 9}, 2: {2, 4, 6, 8}, 3: {1, 3, 5, 9},
	4: {2, 4, 6, 8}, 5: {1, 3, 5, 7, 9}, 6: {2, 4, 6, 9},
	7: {1, 5, 7}, 8: {2, 4, 6, 8}, 9: {1, 3, 6, 9},
}

// Compatibility — полный отчёт о совместимости покупателя и объекта.
func Compatibility(lifePath, propertyNumber int32) domain.CompatibilityReport {
	lifePath = ReduceToSingle(lifePath, false)
	propertyNumber = ReduceToSingle(propertyNumber, false)

	match := false
	for _, n := range compatiblePairs[lifePath] {
		if n == propertyNumber {
			match = true
			break
		}
	}

	luckySum := lifePath + propertyNumber
	if luckySum > 28 {
		luckySum = 1
	}
	luckyMonth := 12 - lifePath
	if luckyMonth <= 0 {
		luckyMonth = 1
	}

	return domain.CompatibilityReport{
		LifePath:        lifePath,
		PropertyNumber:  propertyNumber,
		Score:           CompatibilityScore(lifePath, propertyNumber),
		LifePathMatch:   match,
		EnergyAlignment: energyAlignment(lifePath, propertyNumber),
		Strengths:       compatibilityStrengths(lifePath, propertyNumber),
		Challenges:      compatibilityChallenges(lifePath, propertyNumber),
		LuckyDays:       []int32{lifePath, propertyNumber, luckySum},
		LuckyMonths:     []int32{lifePath, luckyMonth},
	}
}

func energyAlignment(lifePath, propertyNumber int32) string {
	diff := lifePath - propertyNumber
	if diff < 0 {
		diff = -diff
	}
	switch {
	case lifePath == propertyNumber:
		return "Perfect alignment"
	case diff <= 2:
		return "Harmonious"
	case lifePath+propertyNumber == 10:
		return "Complementary"
	}
	return "Requiring adjustment"
}

func oneOf(n int32, set ...int32) bool {
	for _, v := range set {
		if n == v {
			return true
		}
	}
	return false
}

func compatibilityStrengths(lifePath, propertyNumber int32) []string {
	var strengths []string
	if lifePath == propertyNumber {
		strengths = append(strengths, "Natural resonance with property energy")
	}
	if oneOf(lifePath, 1, 5, 7, 9) && oneOf(propertyNumber, 1, 5, 7, 9) {
		strengths = append(strengths, "Dynamic energy flow")
	}
	if oneOf(lifePath, 2, 4, 6, 8) && oneOf(propertyNumber, 2, 4, 6, 8) {
		strengths = append(strengths, "Stable and grounded energy")
	}
	if len(strengths) == 0 {
		strengths = append(strengths, "Neutral compatibility")
	}
	return strengths
}

func compatibilityChallenges(lifePath, propertyNumber int32) []string {
	if (lifePath == 1 || lifePath == 5) && (propertyNumber == 4 || propertyNumber == 8) {
		return []string{"May feel restricted", "Need for more freedom"}
	}
	if (lifePath == 2 || lifePath == 6) && (propertyNumber == 1 || propertyNumber == 5) {
		return []string{"Energy may be too intense", "Need for calm spaces"}
	}
	return nil
}

// dayActivities — чем благоприятен день с данным числом.
var dayActivities = map[int32][]string{
	1: {"New beginnings", "Signing contracts"},
	2: {"Partnerships", "Negotiations"},
	3: {"Creative projects", "Marketing"},
	4: {"Construction", "Organization"},
	5: {"Travel", "Changes"},
	6: {"Family matters", "Home improvements"},
	7: {"Planning", "Research"},
	8: {"Financial decisions", "Business"},
	9: {"Completion", "Charitable acts"},
}

// LuckyDates — благоприятные даты в окне от start на days дней вперёд.
// День считается удачным, если его число совпадает с жизненным путём
// или универсальным числом дня, либо равно 1 или 8.
func LuckyDates(lifePath int32, start time.Time, days int) []domain.LuckyDate {
	var dates []domain.LuckyDate
	for i := 0; i < days; i++ {
		current := start.AddDate(0, 0, i)
		dayNumber := ReduceToSingle(int32(current.Day()), false)
		monthNumber := ReduceToSingle(int32(current.Month()), false)
		universalDay := ReduceToSingle(int32(current.Day())+int32(current.Month())+int32(current.Year()), false)

		lucky := dayNumber == lifePath || dayNumber == 1 || dayNumber == 8 ||
			universalDay == lifePath ||
			dayNumber+monthNumber == lifePath
		if !lucky {
			continue
		}

		strength := "Moderate"
		if universalDay == lifePath {
			strength = "Strong"
		}
		goodFor := dayActivities[dayNumber]
		if goodFor == nil {
			goodFor = []string{"General activities"}
		}

		dates = append(dates, domain.LuckyDate{
			Date:         current,
			DayNumber:    dayNumber,
			UniversalDay: universalDay,
			Strength:     strength,
			GoodFor:      goodFor,
		})
	}
	return dates
}

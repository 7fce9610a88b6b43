// Package astrology — ведический календарь для сделок с недвижимостью:
// панчанг, качество мухурты и подбор благоприятных дат.
//
// Расчёты упрощённые, без эфемерид: титхи и накшатра выводятся из
// календарной даты. Детерминированно при фиксированной дате.
package astrology

import (
	"fmt"
	"time"

	"dharma_realty/internal/domain"
)

type nakshatra struct {
	name    string
	ruler   string
	symbol  string
	meaning string
}

// nakshatras — 27 лунных стоянок.
var nakshatras = [27]nakshatra{
	{"Ashwini", "Ketu", "Horse", "Healing, speed"},
	{"Bharani", "Venus", "Yoni", "Transformation"},
	{"Krittika", "Sun", "Razor", "Purification"},
	{"Rohini", "Moon", "Chariot", "Growth, beauty"},
	{"Mrigashira", "Mars", "Deer", "Seeking"},
	{"Ardra", "Rahu", "Teardrop", "Destruction, renewal"},
	{"Punarvasu", "Jupiter", "Bow", "Return, restoration"},
	{"Pushya", "Saturn", "Flower", "Nourishment"},
	{"Ashlesha", "Mercury", "Serpent", "Binding"},
	{"Magha", "Ketu", "Throne", "Authority"},
	{"Purva Phalguni", "Venus", "Hammock", "Pleasure"},
	{"Uttara Phalguni", "Sun", "Bed", "Patronage"},
	{"Hasta", "Moon", "Hand", "Skill"},
	{"Chitra", "Mars", "Pearl", "Creativity"},
	{"Swati", "Rahu", "Coral", "Independence"},
	{"Vishakha", "Jupiter", "Gateway", "Purpose"},
	{"Anuradha", "Saturn", "Lotus", "Devotion"},
	{"Jyeshtha", "Mercury", "Earring", "Seniority"},
	{"Mula", "Ketu", "Root", "Foundation"},
	{"Purva Ashadha", "Venus", "Fan", "Invincibility"},
	{"Uttara Ashadha", "Sun", "Tusk", "Final victory"},
	{"Shravana", "Moon", "Ear", "Learning"},
	{"Dhanishta", "Mars", "Drum", "Wealth"},
	{"Shatabhisha", "Rahu", "Circle", "Healing"},
	{"Purva Bhadrapada", "Jupiter", "Sword", "Intensity"},
	{"Uttara Bhadrapada", "Saturn", "Twins", "Depth"},
	{"Revati", "Mercury", "Fish", "Completion"},
}

type tithi struct {
	number int32
	name   string
	note   string
}

// tithis — лунные дни в порядке светлой половины месяца.
var tithis = [16]tithi{
	{1, "Pratipada", "Auspicious for beginnings"},
	{2, "Dwitiya", "Good for journeys"},
	{3, "Tritiya", "Auspicious"},
	{4, "Chaturthi", "Avoid new ventures"},
	{5, "Panchami", "Good for learning"},
	{6, "Shashthi", "Good for travel"},
	{7, "Saptami", "Good for vehicles"},
	{8, "Ashtami", "Avoid buying"},
	{9, "Navami", "Mixed"},
	{10, "Dashami", "Auspicious"},
	{11, "Ekadashi", "Spiritual activities"},
	{12, "Dwadashi", "Good for rituals"},
	{13, "Trayodashi", "Auspicious"},
	{14, "Chaturdashi", "Avoid major activities"},
	{15, "Purnima", "Full Moon - highly auspicious"},
	{30, "Amavasya", "New Moon - introspection"},
}

var yogas = [10]string{
	"Vishkumbha", "Priti", "Ayushman", "Saubhagya", "Shobhana",
	"Atiganda", "Sukarma", "Dhriti", "Shula", "Ganda",
}

var karanas = [11]string{
	"Bava", "Balava", "Kaulava", "Taitila", "Gara",
	"Vanija", "Vishti", "Shakuni", "Chatushpada", "Nagava", "Kimstughna",
}

// auspiciousYogas — йоги, усиливающие качество мухурты.
var auspiciousYogas = map[string]bool{
	"Priti": true, "Ayushman": true, "Saubhagya": true, "Shobhana": true,
}

// purchaseNakshatras — накшатры, благоприятные для покупки недвижимости.
var purchaseNakshatras = map[string]bool{
	"Rohini": true, "Mrigashira": true, "Pushya": true,
	"Uttara Phalguni": true, "Hasta": true, "Chitra": true,
	"Swati": true, "Anuradha": true, "Uttara Ashadha": true,
	"Shravana": true, "Dhanishta": true, "Uttara Bhadrapada": true,
	"Revati": true,
}

// grihaPraveshNakshatras — накшатры для новоселья.
var grihaPraveshNakshatras = map[string]bool{
	"Rohini": true, "Mrigashira": true, "Punarvasu": true,
	"Pushya": true, "Uttara Phalguni": true, "Hasta": true,
	"Swati": true, "Anuradha": true, "Uttara Ashadha": true,
	"Shravana": true, "Dhanishta": true, "Uttara Bhadrapada": true,
	"Revati": true,
}

// avoidTithis — лунные дни, в которые сделки не начинают.
var avoidTithis = map[int32]bool{4: true, 8: true, 9: true, 14: true, 30: true}

// propertyDays — дни недели, благоприятные для дел с недвижимостью.
var propertyDays = map[time.Weekday]bool{
	time.Monday: true, time.Wednesday: true, time.Thursday: true, time.Friday: true,
}

// purchaseDays — дни для подписания сделок, четверг лучший.
var purchaseDays = map[time.Weekday]bool{
	time.Wednesday: true, time.Thursday: true, time.Friday: true,
}

const abhijitMuhurta = "11:48 - 12:36"

// resultLimit — максимум дат в подборке.
const resultLimit = 10

type panchang struct {
	tithi     tithi
	nakshatra nakshatra
	yoga      string
	karana    string
	weekday   time.Weekday
}

func panchangFor(date time.Time) panchang {
	day := date.Day()

	tithiNum := day
	if day > 15 {
		tithiNum = day - 15
	}

	return panchang{
		tithi:     tithis[(tithiNum-1)%len(tithis)],
		nakshatra: nakshatras[(date.YearDay()+date.Year())%len(nakshatras)],
		yoga:      yogas[(day+int(date.Month()))%len(yogas)],
		karana:    karanas[(day*2)%len(karanas)],
		weekday:   date.Weekday(),
	}
}

// PanchangFor — панчанг на дату.
func PanchangFor(date time.Time) domain.Panchang {
	pc := panchangFor(date)

	return domain.Panchang{
		Date:             date,
		Tithi:            pc.tithi.name,
		TithiNote:        pc.tithi.note,
		Nakshatra:        pc.nakshatra.name,
		NakshatraRuler:   pc.nakshatra.ruler,
		NakshatraMeaning: pc.nakshatra.meaning,
		Yoga:             pc.yoga,
		Karana:           pc.karana,
		Weekday:          pc.weekday.String(),
		RahuKaal:         rahuKaal(pc.weekday),
		AbhijitMuhurta:   abhijitMuhurta,
	}
}

// rahuKaal — неблагоприятный полуторачасовой интервал, слот зависит
// от дня недели.
func rahuKaal(weekday time.Weekday) string {
	slots := map[time.Weekday]int{
		time.Sunday: 8, time.Monday: 2, time.Tuesday: 7,
		time.Wednesday: 5, time.Thursday: 6, time.Friday: 4,
		time.Saturday: 3,
	}

	start := 6.0 + float64(slots[weekday]-1)*1.5
	end := start + 1.5
	return fmt.Sprintf("%02d:%02d - %02d:%02d",
		int(start), int(start*60)%60, int(end), int(end*60)%60)
}

// muhurtaQuality — качество дня для сделок с недвижимостью.
func muhurtaQuality(pc panchang) string {
	score := 0
	if purchaseNakshatras[pc.nakshatra.name] {
		score += 30
	}
	if !avoidTithis[pc.tithi.number] {
		score += 25
	}
	if propertyDays[pc.weekday] {
		score += 25
	}
	if auspiciousYogas[pc.yoga] {
		score += 20
	}

	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Average"
	default:
		return "Avoid"
	}
}

// PurchaseDates — благоприятные даты для покупки или регистрации сделки
// в окне от start. Четверг даёт качество Excellent.
func PurchaseDates(start time.Time, months int) []domain.AuspiciousDate {
	var dates []domain.AuspiciousDate

	for i := 0; i < months*30; i++ {
		date := start.AddDate(0, 0, i)
		pc := panchangFor(date)

		if !purchaseNakshatras[pc.nakshatra.name] || avoidTithis[pc.tithi.number] || !purchaseDays[pc.weekday] {
			continue
		}

		quality := "Good"
		if pc.weekday == time.Thursday {
			quality = "Excellent"
		}
		dates = append(dates, auspiciousDate(date, pc, quality))
	}

	return limit(dates)
}

// GrihaPraveshDates — даты для новоселья: подходящая накшатра, титхи и
// день недели, июль исключается. Полнолуние даёт качество Excellent.
func GrihaPraveshDates(start time.Time, months int) []domain.AuspiciousDate {
	var dates []domain.AuspiciousDate

	for i := 0; i < months*30; i++ {
		date := start.AddDate(0, 0, i)
		pc := panchangFor(date)

		if !grihaPraveshNakshatras[pc.nakshatra.name] || avoidTithis[pc.tithi.number] ||
			!propertyDays[pc.weekday] || date.Month() == time.July {
			continue
		}

		quality := "Good"
		if pc.tithi.name == "Purnima" {
			quality = "Excellent"
		}
		dates = append(dates, auspiciousDate(date, pc, quality))
	}

	return limit(dates)
}

func auspiciousDate(date time.Time, pc panchang, quality string) domain.AuspiciousDate {
	return domain.AuspiciousDate{
		Date:           date,
		Quality:        quality,
		Nakshatra:      pc.nakshatra.name,
		Tithi:          pc.tithi.name,
		Weekday:        pc.weekday.String(),
		AuspiciousTime: abhijitMuhurta,
		AvoidTime:      rahuKaal(pc.weekday),
	}
}

func limit(dates []domain.AuspiciousDate) []domain.AuspiciousDate {
	if len(dates) > resultLimit {
		return dates[:resultLimit]
	}
	return dates
}

// Analyze — календарный разбор на дату запроса: панчанг, качество дня
// и подборки дат на ближайшие три месяца.
func Analyze(now time.Time) domain.AstrologyAnalysis {
	pc := panchangFor(now)

	recommendations := []string{
		"Consult a Pandit for personalized Muhurta",
		"Perform Vastu puja before moving in",
	}
	if propertyDays[pc.weekday] {
		recommendations = append([]string{"Today is favorable for property activities"}, recommendations...)
	}

	return domain.AstrologyAnalysis{
		Panchang:          PanchangFor(now),
		MuhurtaQuality:    muhurtaQuality(pc),
		PurchaseDates:     PurchaseDates(now, 3),
		GrihaPraveshDates: GrihaPraveshDates(now, 3),
		Recommendations:   recommendations,
	}
}

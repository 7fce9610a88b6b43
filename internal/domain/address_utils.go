package domain

import (
	"regexp"
	"strings"
)

// KnownCities — список известных городов Индии для автоматического определения.
var KnownCities = []string{
	"Mumbai", "Delhi", "Bengaluru", "Hyderabad", "Ahmedabad",
	"Chennai", "Kolkata", "Pune", "Jaipur", "Surat",
	"Lucknow", "Kanpur", "Nagpur", "Indore", "Thane",
	"Bhopal", "Visakhapatnam", "Patna", "Vadodara", "Ghaziabad",
	"Noida", "Gurugram", "Kochi", "Coimbatore", "Chandigarh",
	"Mysuru", "Thiruvananthapuram", "Bhubaneswar", "Varanasi", "Goa",
	// Прежние названия, встречающиеся в объявлениях
	"Bangalore", "Bombay", "Madras", "Calcutta", "Gurgaon", "Mysore",
}

// cityNormalizations — приведение прежних названий к актуальным.
var cityNormalizations = map[string]string{
	"bangalore": "Bengaluru",
	"bombay":    "Mumbai",
	"madras":    "Chennai",
	"calcutta":  "Kolkata",
	"gurgaon":   "Gurugram",
	"mysore":    "Mysuru",
	"new delhi": "Delhi",
}

// ExtractCityFromAddress пытается извлечь город из адреса.
// Возвращает nil, если город не удалось определить.
func ExtractCityFromAddress(address string) *string {
	if address == "" {
		return nil
	}

	addressLower := strings.ToLower(address)

	// Ищем известные города
	for _, city := range KnownCities {
		if strings.Contains(addressLower, strings.ToLower(city)) {
			normalized := NormalizeCity(city)
			return &normalized
		}
	}

	// Последний сегмент адреса до PIN-кода часто является городом:
	// "12/4 MG Road, Indiranagar, Bengaluru 560038"
	segments := strings.Split(address, ",")
	if len(segments) > 1 {
		last := strings.TrimSpace(segments[len(segments)-1])
		last = pinCodeRe.ReplaceAllString(last, "")
		last = strings.TrimSpace(last)
		if len(last) > 2 {
			normalized := NormalizeCity(last)
			return &normalized
		}
	}

	return nil
}

var pinCodeRe = regexp.MustCompile(`\b\d{6}\b`)

// houseNumberRe — номер дома в начале адреса: "12", "12/4", "12-B", "A-104".
var houseNumberRe = regexp.MustCompile(`^\s*([A-Za-z]?-?\d+(?:[/-][A-Za-z0-9]+)?)`)

// ExtractHouseNumber извлекает номер дома из адреса.
// Возвращает пустую строку, если номер не найден.
func ExtractHouseNumber(address string) string {
	matches := houseNumberRe.FindStringSubmatch(address)
	if len(matches) < 2 {
		return ""
	}
	return strings.TrimSpace(matches[1])
}

// NormalizeCity приводит название города к единому виду.
func NormalizeCity(city string) string {
	city = strings.TrimSpace(city)

	cityLower := strings.ToLower(city)
	if normalized, ok := cityNormalizations[cityLower]; ok {
		return normalized
	}

	// Делаем первую букву заглавной
	if len(city) > 0 {
		runes := []rune(city)
		runes[0] = []rune(strings.ToUpper(string(runes[0])))[0]
		return string(runes)
	}

	return city
}

// CitiesMatch проверяет, совпадают ли два города (с учётом нормализации).
func CitiesMatch(city1, city2 string) bool {
	if city1 == "" || city2 == "" {
		return false
	}
	return strings.EqualFold(NormalizeCity(city1), NormalizeCity(city2))
}

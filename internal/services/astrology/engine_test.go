package astrology

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPanchangFor(t *testing.T) {
	got := PanchangFor(date(2026, time.January, 10))

	if got.Tithi != "Dashami" || got.TithiNote != "Auspicious" {
		t.Errorf("tithi = %s (%s), want Dashami (Auspicious)", got.Tithi, got.TithiNote)
	}
	if got.Nakshatra != "Uttara Phalguni" || got.NakshatraRuler != "Sun" {
		t.Errorf("nakshatra = %s/%s, want Uttara Phalguni/Sun", got.Nakshatra, got.NakshatraRuler)
	}
	if got.Yoga != "Priti" {
		t.Errorf("yoga = %q, want Priti", got.Yoga)
	}
	if got.Karana != "Nagava" {
		t.Errorf("karana = %q, want Nagava", got.Karana)
	}
	if got.Weekday != "Saturday" {
		t.Errorf("weekday = %q, want Saturday", got.Weekday)
	}
	if got.RahuKaal != "09:00 - 10:30" {
		t.Errorf("rahu kaal = %q, want 09:00 - 10:30", got.RahuKaal)
	}
	if got.AbhijitMuhurta != "11:48 - 12:36" {
		t.Errorf("abhijit = %q, want 11:48 - 12:36", got.AbhijitMuhurta)
	}
}

func TestRahuKaal_WeekdaySlots(t *testing.T) {
	tests := []struct {
		weekday time.Weekday
		want    string
	}{
		{time.Sunday, "16:30 - 18:00"},
		{time.Monday, "07:30 - 09:00"},
		{time.Saturday, "09:00 - 10:30"},
	}

	for _, tt := range tests {
		if got := rahuKaal(tt.weekday); got != tt.want {
			t.Errorf("rahuKaal(%s) = %q, want %q", tt.weekday, got, tt.want)
		}
	}
}

func TestMuhurtaQuality(t *testing.T) {
	// Суббота 10.01.2026: накшатра и титхи благоприятны, йога Priti,
	// но день недели не для сделок: 30+25+20 = 75
	if got := muhurtaQuality(panchangFor(date(2026, time.January, 10))); got != "Good" {
		t.Errorf("quality = %q, want Good", got)
	}
}

func TestPurchaseDates_Window(t *testing.T) {
	dates := PurchaseDates(date(2026, time.January, 10), 3)

	if len(dates) < 2 {
		t.Fatalf("dates = %d, want at least 2", len(dates))
	}
	if len(dates) > 10 {
		t.Fatalf("dates = %d, want at most 10", len(dates))
	}

	// Четверг 15.01.2026: Anuradha в полнолуние
	first := dates[0]
	if !first.Date.Equal(date(2026, time.January, 15)) {
		t.Errorf("first date = %v, want 2026-01-15", first.Date)
	}
	if first.Quality != "Excellent" || first.Nakshatra != "Anuradha" || first.Tithi != "Purnima" {
		t.Errorf("first = %s/%s/%s, want Excellent/Anuradha/Purnima",
			first.Quality, first.Nakshatra, first.Tithi)
	}

	// Среда 21.01.2026: Dhanishta, обычное качество
	second := dates[1]
	if !second.Date.Equal(date(2026, time.January, 21)) {
		t.Errorf("second date = %v, want 2026-01-21", second.Date)
	}
	if second.Quality != "Good" {
		t.Errorf("second quality = %q, want Good", second.Quality)
	}

	for _, d := range dates {
		if !purchaseDays[d.Date.Weekday()] {
			t.Errorf("date %v falls on %s", d.Date, d.Date.Weekday())
		}
		if d.Quality == "Excellent" && d.Date.Weekday() != time.Thursday {
			t.Errorf("excellent date %v is not a Thursday", d.Date)
		}
	}
}

func TestGrihaPraveshDates_SkipsJuly(t *testing.T) {
	dates := GrihaPraveshDates(date(2026, time.June, 15), 3)

	if len(dates) == 0 {
		t.Fatal("expected at least one date")
	}
	if len(dates) > 10 {
		t.Fatalf("dates = %d, want at most 10", len(dates))
	}

	// Среда 17.06.2026: Pushya
	first := dates[0]
	if !first.Date.Equal(date(2026, time.June, 17)) {
		t.Errorf("first date = %v, want 2026-06-17", first.Date)
	}
	if first.Nakshatra != "Pushya" || first.Quality != "Good" {
		t.Errorf("first = %s/%s, want Pushya/Good", first.Nakshatra, first.Quality)
	}

	for _, d := range dates {
		if d.Date.Month() == time.July {
			t.Errorf("date %v falls in July", d.Date)
		}
		if !propertyDays[d.Date.Weekday()] {
			t.Errorf("date %v falls on %s", d.Date, d.Date.Weekday())
		}
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	now := date(2026, time.January, 10)

	got := Analyze(now)
	if got.MuhurtaQuality != "Good" {
		t.Errorf("quality = %q, want Good", got.MuhurtaQuality)
	}
	// Суббота — не день сделок, совет о благоприятном дне отсутствует
	if len(got.Recommendations) != 2 {
		t.Errorf("recommendations = %v, want 2 static entries", got.Recommendations)
	}
	if len(got.PurchaseDates) == 0 || len(got.GrihaPraveshDates) == 0 {
		t.Error("expected non-empty date windows")
	}
}

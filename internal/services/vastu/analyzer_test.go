package vastu

import (
	"testing"

	"dharma_realty/internal/domain"
)

func ptr[T any](v T) *T {
	return &v
}

func dir(d domain.CompassDirection) *domain.CompassDirection {
	return &d
}

func TestAnalyze_ScoreImpacts(t *testing.T) {
	tests := []struct {
		name       string
		property   domain.Property
		wantScore  int32
		wantGrade  string
		wantIssues int
	}{
		{
			name:       "no data keeps base score",
			property:   domain.Property{},
			wantScore:  100,
			wantGrade:  "A+",
			wantIssues: 0,
		},
		{
			name: "ideal layout clamps at 100",
			property: domain.Property{
				Facing: dir(domain.DirectionEast),
				Placements: domain.RoomPlacements{
					Kitchen:       dir(domain.DirectionSoutheast),
					MasterBedroom: dir(domain.DirectionSouthwest),
					CenterOpen:    ptr(true),
				},
			},
			wantScore:  100,
			wantGrade:  "A+",
			wantIssues: 0,
		},
		{
			name: "southwest entrance",
			property: domain.Property{
				Facing: dir(domain.DirectionSouthwest),
			},
			wantScore:  80,
			wantGrade:  "A",
			wantIssues: 1,
		},
		{
			name: "northeast kitchen",
			property: domain.Property{
				Placements: domain.RoomPlacements{Kitchen: dir(domain.DirectionNortheast)},
			},
			wantScore:  70,
			wantGrade:  "B",
			wantIssues: 1,
		},
		{
			name: "all defects stack",
			property: domain.Property{
				Facing: dir(domain.DirectionSouth),
				Placements: domain.RoomPlacements{
					Kitchen:      dir(domain.DirectionNortheast),
					Bathroom:     dir(domain.DirectionNortheast),
					BeamAboveBed: ptr(true),
				},
			},
			// 100 - 20 - 30 - 25 - 5 = 20
			wantScore:  20,
			wantGrade:  "F",
			wantIssues: 4,
		},
		{
			name: "defect offset by good placements",
			property: domain.Property{
				Facing: dir(domain.DirectionEast),
				Placements: domain.RoomPlacements{
					Kitchen:      dir(domain.DirectionSoutheast),
					BeamAboveBed: ptr(true),
				},
			},
			// 100 + 15 + 15 - 5, clamp 100
			wantScore:  100,
			wantGrade:  "A+",
			wantIssues: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.property)
			if got.Score != tt.wantScore {
				t.Errorf("score = %d, want %d", got.Score, tt.wantScore)
			}
			if got.Grade != tt.wantGrade {
				t.Errorf("grade = %q, want %q", got.Grade, tt.wantGrade)
			}
			if len(got.Issues) != tt.wantIssues {
				t.Errorf("issues = %d, want %d", len(got.Issues), tt.wantIssues)
			}
		})
	}
}

func TestAnalyze_IssuesCarryRemedies(t *testing.T) {
	got := Analyze(domain.Property{
		Placements: domain.RoomPlacements{Kitchen: dir(domain.DirectionNortheast)},
	})
	if len(got.Issues) != 1 {
		t.Fatalf("issues = %d, want 1", len(got.Issues))
	}
	issue := got.Issues[0]
	if issue.ScoreImpact != -30 {
		t.Errorf("score impact = %d, want -30", issue.ScoreImpact)
	}
	if len(issue.Remedies) == 0 {
		t.Error("expected remedies for northeast kitchen")
	}
}

func TestGrade_Bands(t *testing.T) {
	tests := []struct {
		score int32
		want  string
	}{
		{100, "A+"}, {90, "A+"}, {89, "A"}, {80, "A"},
		{79, "B"}, {70, "B"}, {69, "C"}, {60, "C"},
		{59, "D"}, {50, "D"}, {49, "F"}, {0, "F"},
	}
	for _, tt := range tests {
		if got := Grade(tt.score); got != tt.want {
			t.Errorf("Grade(%d) = %q, want %q", tt.score, got, tt.want)
		}
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	p := domain.Property{
		Facing: dir(domain.DirectionSouth),
		Placements: domain.RoomPlacements{
			Kitchen:    dir(domain.DirectionNortheast),
			CenterOpen: ptr(true),
		},
	}
	first := Analyze(p)
	for i := 0; i < 5; i++ {
		if got := Analyze(p); got.Score != first.Score || got.Grade != first.Grade {
			t.Fatalf("analysis differs between identical calls")
		}
	}
}

package analysis

import (
	"math"
	"testing"
)

func TestNormalizeScore(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want int
	}{
		{"missing", nil, 50},
		{"string garbage", "high", 50},
		{"bool", true, 50},
		{"negative", -12.0, 0},
		{"above range", 130.0, 100},
		{"round down", 69.4, 69},
		{"round up", 69.5, 70},
		{"numeric string", "88", 88},
		{"percent string", "42%", 42},
		{"zero kept", 0.0, 0},
		{"plus inf", math.Inf(1), 100},
		{"minus inf", math.Inf(-1), 0},
		{"nan", math.NaN(), 50},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeScore(tc.in)
			if got != tc.want {
				t.Fatalf("NormalizeScore(%v): want=%d got=%d", tc.in, tc.want, got)
			}
		})
	}
}

func TestNormalizeScoreAlwaysInRange(t *testing.T) {
	for f := -1000.0; f <= 1000.0; f += 7.3 {
		got := NormalizeScore(f)
		if got < 0 || got > 100 {
			t.Fatalf("NormalizeScore(%v) out of range: %d", f, got)
		}
	}
}

func TestNormalizeScoresFillsMissing(t *testing.T) {
	got := NormalizeScores(map[string]any{"feasibility": 91.2, "readiness_score": 69.4})
	if got.Feasibility != 91 || got.ReadinessScore != 69 {
		t.Fatalf("present fields: got=%+v", got)
	}
	if got.ComplianceScore != 50 || got.MarketDemand != 50 || got.CulturalAcceptance != 50 || got.CostViability != 50 {
		t.Fatalf("missing fields default to 50: got=%+v", got)
	}
	if NormalizeScores(nil).ReadinessScore != 50 {
		t.Fatalf("nil scores: want defaults")
	}
}

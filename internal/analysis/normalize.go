package analysis

import "math"

const defaultScore = 50

// NormalizeScore maps any raw model value onto an integer in [0,100].
// Missing or non-numeric values become 50; numbers are rounded to the nearest
// integer and clamped.
func NormalizeScore(v any) int {
	f, ok := toFloat(v)
	if !ok {
		return defaultScore
	}
	if math.IsInf(f, 1) {
		return 100
	}
	if math.IsInf(f, -1) {
		return 0
	}
	r := math.Round(f)
	if r < 0 {
		return 0
	}
	if r > 100 {
		return 100
	}
	return int(r)
}

// NormalizeScores reads the six score fields from the model's "scores" object.
func NormalizeScores(scores map[string]any) Scores {
	if scores == nil {
		scores = map[string]any{}
	}
	return Scores{
		Feasibility:        NormalizeScore(scores["feasibility"]),
		ComplianceScore:    NormalizeScore(scores["compliance_score"]),
		MarketDemand:       NormalizeScore(scores["market_demand"]),
		CulturalAcceptance: NormalizeScore(scores["cultural_acceptance"]),
		CostViability:      NormalizeScore(scores["cost_viability"]),
		ReadinessScore:     NormalizeScore(scores["readiness_score"]),
	}
}

package analysis

import (
	"errors"
	"fmt"
)

var ErrInvalidResponse = errors.New("invalid model response")

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidResponse, fmt.Sprintf(format, args...))
}

// ValidateBasic gates the basic-pass payload before anything is persisted.
func ValidateBasic(raw map[string]any) error {
	if raw == nil {
		return invalid("empty payload")
	}
	scores, ok := raw["scores"].(map[string]any)
	if !ok {
		return invalid("scores must be an object")
	}
	for _, k := range []string{"feasibility", "market_demand", "readiness_score"} {
		if !isNumber(scores[k]) {
			return invalid("scores.%s must be a number", k)
		}
	}
	checks, ok := raw["compliance_checks"].([]any)
	if !ok || len(checks) == 0 {
		return invalid("compliance_checks must be a non-empty array")
	}
	insights, ok := raw["ai_insights"].(map[string]any)
	if !ok {
		return invalid("ai_insights must be an object")
	}
	for _, k := range []string{"market_size", "growth_rate"} {
		if str(insights, k) == "" {
			return invalid("ai_insights.%s is required", k)
		}
	}
	for _, k := range []string{"competitors", "recommendations"} {
		if _, ok := raw[k].([]any); !ok {
			return invalid("%s must be an array", k)
		}
	}
	return nil
}

var deepArrays = []string{
	"failure_cases",
	"success_cases",
	"regulatory_items",
	"market_trends",
	"funding_sources",
	"risks",
	"ai_insights",
	"strategic_recommendations",
	"customer_segments",
	"benchmarks",
}

// ValidateDeep gates the deep-pass payload.
func ValidateDeep(raw map[string]any) error {
	if raw == nil {
		return invalid("empty payload")
	}
	competitors, ok := raw["competitors"].([]any)
	if !ok || len(competitors) == 0 {
		return invalid("competitors must be a non-empty array")
	}
	if _, ok := raw["market_data"].(map[string]any); !ok {
		return invalid("market_data must be an object")
	}
	for _, k := range deepArrays {
		if _, ok := raw[k].([]any); !ok {
			return invalid("%s must be an array", k)
		}
	}
	if _, ok := raw["detailed_report"].(map[string]any); !ok {
		return invalid("detailed_report must be an object")
	}
	return nil
}

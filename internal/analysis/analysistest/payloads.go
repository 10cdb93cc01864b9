package analysistest

// BasicPayload returns a well-formed basic-pass reply with the given
// readiness score and one failed plus one passed compliance check.
func BasicPayload(readiness float64) map[string]any {
	return map[string]any{
		"scores": map[string]any{
			"feasibility":         72.0,
			"compliance_score":    55.0,
			"market_demand":       81.0,
			"cultural_acceptance": 64.0,
			"cost_viability":      60.0,
			"readiness_score":     readiness,
		},
		"compliance_checks": []any{
			map[string]any{
				"rule_name":        "DRAP Regulatory Approval",
				"rule_description": "Software as a medical device needs DRAP registration",
				"passed":           false,
				"recommendations":  "File a SaMD classification request",
			},
			map[string]any{
				"rule_name":        "Data Privacy & Security (PECA 2016)",
				"rule_description": "Patient data stays in-country with consent logging",
				"passed":           true,
			},
		},
		"ai_insights": map[string]any{
			"market_size":               "$120M telehealth market in Pakistan",
			"growth_rate":               "18% CAGR through 2030",
			"target_potential":          "Urban and peri-urban adults aged 18-40",
			"key_risks":                 []any{"Low trust in remote care", "Payment friction"},
			"competitive_advantages":    []any{"Urdu-first experience"},
			"regulatory_considerations": []any{"DRAP SaMD guidance"},
		},
		"competitors": []any{
			map[string]any{"name": "Sehat Kahani", "strength": "Women doctor network", "market_position": "Leader"},
			map[string]any{"name": "Marham", "strength": "Doctor discovery traffic", "market_position": "Challenger"},
		},
		"recommendations": []any{
			"Pilot with two Lahore clinics",
			"Start DRAP classification early",
		},
	}
}

// DeepPayload returns a well-formed deep-pass reply. marketGap tags the
// market data row so tests can tell which writer won.
func DeepPayload(marketGap string) map[string]any {
	return map[string]any{
		"competitors": []any{
			map[string]any{
				"competitor_name":        "Sehat Kahani",
				"competitor_description": "Tele-consultation network",
				"market_position":        "Leader",
				"funding_raised":         3500000.0,
				"status":                 "active",
				"strengths":              []any{"Doctor supply"},
				"weaknesses":             []any{"Rural reach"},
				"market_share_estimated": 22.5,
			},
		},
		"market_data": map[string]any{
			"market_size_usd":            50000000.0,
			"market_growth_rate_percent": 15.0,
			"market_gaps":                []any{marketGap},
			"market_trends":              []any{"Mobile-first care"},
			"opportunity_score":          74.0,
		},
		"failure_cases": []any{
			map[string]any{
				"startup_name":           "CareNow PK",
				"primary_failure_reason": "market_fit",
				"lessons_learned":        []any{"Validate willingness to pay"},
			},
		},
		"success_cases": []any{
			map[string]any{
				"startup_name":    "Oladoc",
				"exit_type":       "operating",
				"success_factors": []any{"Search traffic"},
			},
		},
		"regulatory_items": []any{
			map[string]any{
				"jurisdiction":            "Pakistan",
				"requirement_name":        "DRAP SaMD registration",
				"requirement_description": "Register diagnostic software",
				"approval_body":           "DRAP",
				"severity_level":          "critical",
			},
		},
		"market_trends": []any{
			map[string]any{"trend_name": "Teletherapy adoption", "relevance_score": 85.0, "trend_status": "growing"},
		},
		"funding_sources": []any{
			map[string]any{"name": "Indus Valley Capital", "funder_type": "VC", "category_focus": []any{"healthcare"}, "stage_focus": []any{"seed"}},
		},
		"risks": []any{
			map[string]any{"risk_type": "regulatory", "risk_name": "Licensing delay", "probability_percent": 40.0, "impact_level": "high", "mitigation_strategies": []any{"Engage DRAP early"}},
		},
		"ai_insights": []any{
			map[string]any{"insight_type": "opportunity", "insight_category": "market", "insight_content": "Underserved rural demand", "confidence_score": 0.8, "priority_level": "high"},
		},
		"strategic_recommendations": []any{
			map[string]any{"recommendation_type": "go-to-market", "recommendation_content": "Partner with lady health workers", "priority_level": "high", "expected_impact_on_score": 8.0, "implementation_difficulty": "medium"},
		},
		"customer_segments": []any{
			map[string]any{"segment_name": "University students", "segment_size_estimate": 50000.0, "willingness_to_pay": 5.0, "pain_points": []any{"Stigma"}},
		},
		"benchmarks": []any{
			map[string]any{"metric_name": "Customer Acquisition Cost", "median_value": 12.0, "best_in_class_value": 4.0},
		},
		"detailed_report": map[string]any{
			"executive_summary":    "A viable tele-therapy play with regulatory work ahead.",
			"market_analysis":      map[string]any{"size": "$50M", "growth": "15%", "opportunities": []any{"Rural"}},
			"competitive_analysis": map[string]any{"landscape": "Fragmented"},
			"customer_analysis":    map[string]any{"segments": "Students and young professionals"},
			"risk_assessment":      map[string]any{"critical_risks": []any{"Licensing"}},
			"recommendations":      []any{"Run a 3-month pilot"},
		},
	}
}

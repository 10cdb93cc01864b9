package analysis

type Scores struct {
	Feasibility        int `json:"feasibility"`
	ComplianceScore    int `json:"compliance_score"`
	MarketDemand       int `json:"market_demand"`
	CulturalAcceptance int `json:"cultural_acceptance"`
	CostViability      int `json:"cost_viability"`
	ReadinessScore     int `json:"readiness_score"`
}

type ComplianceItem struct {
	RuleName        string  `json:"rule_name"`
	RuleDescription string  `json:"rule_description"`
	Passed          bool    `json:"passed"`
	Recommendations *string `json:"recommendations,omitempty"`
}

type InsightSummary struct {
	MarketSize               string   `json:"market_size"`
	GrowthRate               string   `json:"growth_rate"`
	TargetPotential          string   `json:"target_potential"`
	KeyRisks                 []string `json:"key_risks"`
	CompetitiveAdvantages    []string `json:"competitive_advantages"`
	RegulatoryConsiderations []string `json:"regulatory_considerations"`
}

// Competitor is the basic-pass competitor shape; it is stored as-is in the
// insight's competitors column.
type Competitor struct {
	Name           string `json:"name"`
	Strength       string `json:"strength"`
	Weakness       string `json:"weakness,omitempty"`
	MarketPosition string `json:"market_position,omitempty"`
}

// BasicResult is a validated, normalized basic-pass analysis.
type BasicResult struct {
	Scores           Scores
	ComplianceChecks []ComplianceItem
	Insights         InsightSummary
	Competitors      []Competitor
	Recommendations  []string
}

// DecodeBasic converts a payload that passed ValidateBasic.
func DecodeBasic(raw map[string]any) *BasicResult {
	out := &BasicResult{
		Scores:           NormalizeScores(obj(raw, "scores")),
		ComplianceChecks: []ComplianceItem{},
		Competitors:      []Competitor{},
		Recommendations:  strList(raw, "recommendations"),
	}

	for _, c := range objList(raw, "compliance_checks") {
		item := ComplianceItem{
			RuleName:        str(c, "rule_name"),
			RuleDescription: str(c, "rule_description"),
			Passed:          boolean(c, "passed"),
		}
		if item.RuleName == "" {
			item.RuleName = "Unnamed compliance check"
		}
		if rec := str(c, "recommendations"); rec != "" {
			item.Recommendations = &rec
		}
		out.ComplianceChecks = append(out.ComplianceChecks, item)
	}

	in := obj(raw, "ai_insights")
	out.Insights = InsightSummary{
		MarketSize:               str(in, "market_size"),
		GrowthRate:               str(in, "growth_rate"),
		TargetPotential:          str(in, "target_potential"),
		KeyRisks:                 strList(in, "key_risks"),
		CompetitiveAdvantages:    strList(in, "competitive_advantages"),
		RegulatoryConsiderations: strList(in, "regulatory_considerations"),
	}

	for _, c := range objList(raw, "competitors") {
		comp := Competitor{
			Name:           str(c, "name"),
			Strength:       str(c, "strength"),
			Weakness:       str(c, "weakness"),
			MarketPosition: str(c, "market_position"),
		}
		if comp.Name == "" && comp.Strength == "" {
			continue
		}
		out.Competitors = append(out.Competitors, comp)
	}
	return out
}

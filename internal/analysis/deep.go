package analysis

type DeepCompetitor struct {
	Name                 string
	Description          string
	MarketPosition       string
	FundingRaised        *float64
	Status               string
	Strengths            []string
	Weaknesses           []string
	MarketShareEstimated *float64
}

type MarketSnapshot struct {
	SizeUSD           *float64
	GrowthRatePercent *float64
	Gaps              []string
	Trends            []string
	OpportunityScore  *float64
}

type FailureCase struct {
	StartupName             string
	PrimaryFailureReason    string
	SecondaryFailureReasons []string
	LessonsLearned          []string
	PreventiveMeasures      []string
}

type SuccessCase struct {
	StartupName    string
	ExitType       string
	ExitValuation  *float64
	SuccessFactors []string
	LessonsLearned []string
}

type RegulatoryItem struct {
	Jurisdiction           string
	RequirementName        string
	RequirementDescription string
	ApprovalBody           string
	SeverityLevel          string
}

type MarketTrend struct {
	Name           string
	Description    string
	RelevanceScore *float64
	Status         string
}

type FundingSource struct {
	Name                string
	FunderType          string
	CategoryFocus       []string
	StageFocus          []string
	TypicalCheckSizeMin *float64
	TypicalCheckSizeMax *float64
}

type Risk struct {
	Type                 string
	Name                 string
	Description          string
	ProbabilityPercent   *float64
	ImpactLevel          string
	MitigationStrategies []string
}

// DeepInsight is serialized into the detailed report's insights column.
type DeepInsight struct {
	Type            string   `json:"insight_type"`
	Category        string   `json:"insight_category"`
	Content         string   `json:"insight_content"`
	ConfidenceScore *float64 `json:"confidence_score,omitempty"`
	PriorityLevel   string   `json:"priority_level"`
}

type StrategicRecommendation struct {
	Type                     string
	Content                  string
	PriorityLevel            string
	ExpectedImpactOnScore    *float64
	ImplementationDifficulty string
}

type CustomerSegment struct {
	Name             string
	SizeEstimate     *float64
	WillingnessToPay *float64
	PainPoints       []string
}

type Benchmark struct {
	MetricName       string
	MedianValue      *float64
	BestInClassValue *float64
}

type DetailedReport struct {
	ExecutiveSummary    string
	MarketAnalysis      map[string]any
	CompetitiveAnalysis map[string]any
	CustomerAnalysis    map[string]any
	RiskAssessment      map[string]any
	Recommendations     []string
}

// DeepResult is a validated deep-pass analysis. Entries missing the field
// that identifies them are dropped during decoding.
type DeepResult struct {
	Competitors              []DeepCompetitor
	MarketData               MarketSnapshot
	FailureCases             []FailureCase
	SuccessCases             []SuccessCase
	RegulatoryItems          []RegulatoryItem
	MarketTrends             []MarketTrend
	FundingSources           []FundingSource
	Risks                    []Risk
	Insights                 []DeepInsight
	StrategicRecommendations []StrategicRecommendation
	CustomerSegments         []CustomerSegment
	Benchmarks               []Benchmark
	DetailedReport           DetailedReport
}

// DecodeDeep converts a payload that passed ValidateDeep.
func DecodeDeep(raw map[string]any) *DeepResult {
	out := &DeepResult{}

	for _, c := range objList(raw, "competitors") {
		name := str(c, "competitor_name")
		if name == "" {
			name = str(c, "name")
		}
		if name == "" {
			name = "Unknown Competitor"
		}
		out.Competitors = append(out.Competitors, DeepCompetitor{
			Name:                 name,
			Description:          str(c, "competitor_description"),
			MarketPosition:       str(c, "market_position"),
			FundingRaised:        num(c, "funding_raised"),
			Status:               str(c, "status"),
			Strengths:            strList(c, "strengths"),
			Weaknesses:           strList(c, "weaknesses"),
			MarketShareEstimated: num(c, "market_share_estimated"),
		})
	}

	md := obj(raw, "market_data")
	out.MarketData = MarketSnapshot{
		SizeUSD:           num(md, "market_size_usd"),
		GrowthRatePercent: num(md, "market_growth_rate_percent"),
		Gaps:              strList(md, "market_gaps"),
		Trends:            strList(md, "market_trends"),
		OpportunityScore:  num(md, "opportunity_score"),
	}

	for _, f := range objList(raw, "failure_cases") {
		if str(f, "startup_name") == "" {
			continue
		}
		out.FailureCases = append(out.FailureCases, FailureCase{
			StartupName:             str(f, "startup_name"),
			PrimaryFailureReason:    str(f, "primary_failure_reason"),
			SecondaryFailureReasons: strList(f, "secondary_failure_reasons"),
			LessonsLearned:          strList(f, "lessons_learned"),
			PreventiveMeasures:      strList(f, "preventive_measures"),
		})
	}

	for _, s := range objList(raw, "success_cases") {
		if str(s, "startup_name") == "" {
			continue
		}
		out.SuccessCases = append(out.SuccessCases, SuccessCase{
			StartupName:    str(s, "startup_name"),
			ExitType:       str(s, "exit_type"),
			ExitValuation:  num(s, "exit_valuation"),
			SuccessFactors: strList(s, "success_factors"),
			LessonsLearned: strList(s, "lessons_learned"),
		})
	}

	for _, r := range objList(raw, "regulatory_items") {
		if str(r, "requirement_name") == "" {
			continue
		}
		out.RegulatoryItems = append(out.RegulatoryItems, RegulatoryItem{
			Jurisdiction:           str(r, "jurisdiction"),
			RequirementName:        str(r, "requirement_name"),
			RequirementDescription: str(r, "requirement_description"),
			ApprovalBody:           str(r, "approval_body"),
			SeverityLevel:          str(r, "severity_level"),
		})
	}

	for _, t := range objList(raw, "market_trends") {
		if str(t, "trend_name") == "" {
			continue
		}
		out.MarketTrends = append(out.MarketTrends, MarketTrend{
			Name:           str(t, "trend_name"),
			Description:    str(t, "trend_description"),
			RelevanceScore: num(t, "relevance_score"),
			Status:         str(t, "trend_status"),
		})
	}

	for _, f := range objList(raw, "funding_sources") {
		if str(f, "name") == "" {
			continue
		}
		out.FundingSources = append(out.FundingSources, FundingSource{
			Name:                str(f, "name"),
			FunderType:          str(f, "funder_type"),
			CategoryFocus:       strList(f, "category_focus"),
			StageFocus:          strList(f, "stage_focus"),
			TypicalCheckSizeMin: num(f, "typical_check_size_min"),
			TypicalCheckSizeMax: num(f, "typical_check_size_max"),
		})
	}

	for _, r := range objList(raw, "risks") {
		name := str(r, "risk_name")
		if name == "" {
			continue
		}
		out.Risks = append(out.Risks, Risk{
			Type:                 str(r, "risk_type"),
			Name:                 name,
			Description:          str(r, "risk_description"),
			ProbabilityPercent:   num(r, "probability_percent"),
			ImpactLevel:          str(r, "impact_level"),
			MitigationStrategies: strList(r, "mitigation_strategies"),
		})
	}

	for _, in := range objList(raw, "ai_insights") {
		if str(in, "insight_content") == "" {
			continue
		}
		out.Insights = append(out.Insights, DeepInsight{
			Type:            str(in, "insight_type"),
			Category:        str(in, "insight_category"),
			Content:         str(in, "insight_content"),
			ConfidenceScore: num(in, "confidence_score"),
			PriorityLevel:   str(in, "priority_level"),
		})
	}

	for _, rec := range objList(raw, "strategic_recommendations") {
		if str(rec, "recommendation_content") == "" {
			continue
		}
		out.StrategicRecommendations = append(out.StrategicRecommendations, StrategicRecommendation{
			Type:                     str(rec, "recommendation_type"),
			Content:                  str(rec, "recommendation_content"),
			PriorityLevel:            str(rec, "priority_level"),
			ExpectedImpactOnScore:    num(rec, "expected_impact_on_score"),
			ImplementationDifficulty: str(rec, "implementation_difficulty"),
		})
	}

	for _, seg := range objList(raw, "customer_segments") {
		if str(seg, "segment_name") == "" {
			continue
		}
		out.CustomerSegments = append(out.CustomerSegments, CustomerSegment{
			Name:             str(seg, "segment_name"),
			SizeEstimate:     num(seg, "segment_size_estimate"),
			WillingnessToPay: num(seg, "willingness_to_pay"),
			PainPoints:       strList(seg, "pain_points"),
		})
	}

	for _, b := range objList(raw, "benchmarks") {
		if str(b, "metric_name") == "" {
			continue
		}
		out.Benchmarks = append(out.Benchmarks, Benchmark{
			MetricName:       str(b, "metric_name"),
			MedianValue:      num(b, "median_value"),
			BestInClassValue: num(b, "best_in_class_value"),
		})
	}

	dr := obj(raw, "detailed_report")
	out.DetailedReport = DetailedReport{
		ExecutiveSummary:    str(dr, "executive_summary"),
		MarketAnalysis:      obj(dr, "market_analysis"),
		CompetitiveAnalysis: obj(dr, "competitive_analysis"),
		CustomerAnalysis:    obj(dr, "customer_analysis"),
		RiskAssessment:      obj(dr, "risk_assessment"),
		Recommendations:     strList(dr, "recommendations"),
	}
	return out
}

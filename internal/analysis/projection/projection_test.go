package projection

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	types "github.com/yungbote/medvalidate-backend/internal/domain"
)

func sampleIdea() *types.Idea {
	return &types.Idea{
		ID:          uuid.New(),
		Title:       "Urdu mental health chatbot",
		Category:    "mental-health",
		Stage:       "mvp",
		Status:      types.IdeaStatusProcessed,
		SubmittedAt: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestBuildIdeaResultPending(t *testing.T) {
	idea := sampleIdea()
	insight := &types.AIInsight{MarketSize: "$10M", Competitors: `[{"name":"X","strength":"Y"}]`}

	got := BuildIdeaResult(idea, nil, nil, insight)
	if got.Status != types.IdeaStatusPending {
		t.Fatalf("status: want=pending got=%s", got.Status)
	}
	if got.OverallScore != nil || got.Scores != nil || got.CompletedAt != nil {
		t.Fatalf("score fields: want nil got=%+v", got)
	}
	if got.MarketAnalysis != nil || got.Competitors != nil || got.Recommendations != nil {
		t.Fatalf("insight fields: want nil got=%+v", got)
	}
	if got.Risks != nil {
		t.Fatalf("risks: want nil got=%v", got.Risks)
	}
}

func TestBuildIdeaResultProcessed(t *testing.T) {
	idea := sampleIdea()
	calc := time.Date(2026, 3, 1, 9, 1, 0, 0, time.UTC)
	score := &types.Score{IdeaID: idea.ID, Feasibility: 72, ComplianceScore: 55, MarketDemand: 81, ReadinessScore: 69, CalculatedAt: calc}
	checks := []*types.ComplianceCheck{
		{RuleName: "DRAP Regulatory Approval", RuleDescription: "SaMD registration", Passed: false},
		{RuleName: "Data Privacy & Security (PECA 2016)", RuleDescription: "Consent logging", Passed: true},
	}
	insight := &types.AIInsight{
		MarketSize:      "$120M",
		Competitors:     `[{"name":"Sehat Kahani","strength":"Doctor network"},{"name":"","market_position":"Niche"}]`,
		Recommendations: `["Pilot with two clinics"]`,
	}

	got := BuildIdeaResult(idea, score, checks, insight)
	if got.Status != types.IdeaStatusProcessed {
		t.Fatalf("status: want=processed got=%s", got.Status)
	}
	if got.OverallScore == nil || *got.OverallScore != 69 {
		t.Fatalf("overall: want=69 got=%v", got.OverallScore)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(calc) {
		t.Fatalf("completedAt: want=%v got=%v", calc, got.CompletedAt)
	}
	if *got.Scores != (IdeaScores{Market: 81, Competition: 55, Feasibility: 72, Innovation: 69}) {
		t.Fatalf("scores: got=%+v", *got.Scores)
	}
	if got.MarketAnalysis.MarketSize != "$120M" || got.MarketAnalysis.GrowthRate != "Not available" {
		t.Fatalf("market analysis: got=%+v", *got.MarketAnalysis)
	}
	if len(got.Competitors) != 2 || got.Competitors[1].Name != "Unknown Competitor" || got.Competitors[1].Strength != "Niche" {
		t.Fatalf("competitors: got=%+v", got.Competitors)
	}
	if len(got.Recommendations) != 1 {
		t.Fatalf("recommendations: got=%v", got.Recommendations)
	}

	var high, low int
	for _, r := range got.Risks {
		switch r.Level {
		case RiskHigh:
			high++
			if r.Title != "DRAP Regulatory Approval" {
				t.Fatalf("high risk title: got=%q", r.Title)
			}
		case RiskLow:
			low++
		}
	}
	if high != 1 || low != 1 {
		t.Fatalf("risk levels: want one high and one low got high=%d low=%d", high, low)
	}
}

func TestBuildIdeaResultFallbacks(t *testing.T) {
	idea := sampleIdea()
	score := &types.Score{IdeaID: idea.ID, ReadinessScore: 85, CalculatedAt: time.Now()}
	insight := &types.AIInsight{Competitors: "not json", Recommendations: "[]"}

	got := BuildIdeaResult(idea, score, nil, insight)
	if len(got.Competitors) != 2 || got.Competitors[0].Name != "Mental Health App A" || got.Competitors[1].Name != "Mental Health Platform B" {
		t.Fatalf("fallback competitors: got=%+v", got.Competitors)
	}
	if len(got.Recommendations) != 2 || !strings.HasPrefix(got.Recommendations[0], "Consider preparing for pilot") {
		t.Fatalf("fallback recommendations: got=%v", got.Recommendations)
	}
	if got.Recommendations[1] != "Next step: validate your mvp with 5–10 target customers." {
		t.Fatalf("stage follow-up: got=%q", got.Recommendations[1])
	}

	idea.Category = ""
	got = BuildIdeaResult(idea, score, nil, insight)
	if got.Competitors != nil || got.Category != nil {
		t.Fatalf("no category: want nil competitors and category got=%+v", got)
	}
}

func TestFallbackRecommendationBands(t *testing.T) {
	cases := []struct {
		score  int
		prefix string
	}{
		{80, "Consider preparing"},
		{79, "Focus on tightening"},
		{60, "Focus on tightening"},
		{59, "Revisit core assumptions"},
		{0, "Revisit core assumptions"},
	}
	for _, tc := range cases {
		got := FallbackRecommendations(tc.score, "")
		if len(got) != 1 || !strings.HasPrefix(got[0], tc.prefix) {
			t.Fatalf("score %d: want prefix %q got=%v", tc.score, tc.prefix, got)
		}
	}
}

func TestIdeaResultEncodesEmptyAsNull(t *testing.T) {
	b, err := json.Marshal(BuildIdeaResult(sampleIdea(), nil, nil, nil))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, k := range []string{"overallScore", "scores", "competitors", "risks", "recommendations"} {
		v, ok := m[k]
		if !ok || v != nil {
			t.Fatalf("%s: want null got=%v (present=%v)", k, v, ok)
		}
	}
}

func TestBuildFullAnalysis(t *testing.T) {
	idea := sampleIdea()
	rows := FullRows{
		Idea:        idea,
		Competitors: []*types.CompetitorAnalysis{{IdeaID: idea.ID, CompetitorName: "Sehat Kahani", Strengths: `["Doctor supply"]`, Weaknesses: "garbage"}},
		MarketData:  &types.MarketData{Category: "mental-health", MarketGaps: `["rural access"]`},
		Report: &types.DetailedReport{
			IdeaID:         idea.ID,
			MarketAnalysis: `{"size":"$50M"}`,
			RiskAssessment: "not json",
			Insights:       `[{"insight_type":"opportunity","insight_category":"market","insight_content":"Rural demand"}]`,
		},
	}

	got := BuildFullAnalysis(rows)
	if len(got.Competitors) != 1 || got.Competitors[0].Strengths[0] != "Doctor supply" {
		t.Fatalf("competitor strengths: got=%+v", got.Competitors)
	}
	if got.Competitors[0].Weaknesses == nil || len(got.Competitors[0].Weaknesses) != 0 {
		t.Fatalf("malformed weaknesses: want empty got=%v", got.Competitors[0].Weaknesses)
	}
	if got.MarketData == nil || got.MarketData.MarketGaps[0] != "rural access" || len(got.MarketData.MarketTrends) != 0 {
		t.Fatalf("market data: got=%+v", got.MarketData)
	}
	if len(got.AIInsights) != 1 || got.AIInsights[0].Content != "Rural demand" {
		t.Fatalf("insights: got=%+v", got.AIInsights)
	}
	if len(got.DetailedReports) != 1 || got.DetailedReports[0].MarketAnalysis["size"] != "$50M" || len(got.DetailedReports[0].RiskAssessment) != 0 {
		t.Fatalf("detailed report: got=%+v", got.DetailedReports)
	}

	b, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	for _, k := range []string{"failureCases", "fundingSources", "benchmarks", "regulatoryItems"} {
		if _, ok := m[k].([]any); !ok {
			t.Fatalf("%s: want [] got=%v", k, m[k])
		}
	}
	comp := m["competitors"].([]any)[0].(map[string]any)
	if _, ok := comp["strengths"].([]any); !ok {
		t.Fatalf("competitor strengths: want decoded list got=%v", comp["strengths"])
	}
}

func TestBuildFullAnalysisWithoutMarketData(t *testing.T) {
	got := BuildFullAnalysis(FullRows{Idea: sampleIdea()})
	if got.MarketData != nil {
		t.Fatalf("market data: want nil got=%+v", got.MarketData)
	}
	if got.AIInsights == nil || got.DetailedReports == nil {
		t.Fatalf("lists: want non-nil")
	}
}

package projection

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/yungbote/medvalidate-backend/internal/analysis"
	"github.com/yungbote/medvalidate-backend/internal/analysis/jsontext"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
)

const notAvailable = "Not available"

const (
	RiskLow  = "low"
	RiskHigh = "high"
)

type IdeaScores struct {
	Market      int `json:"market"`
	Competition int `json:"competition"`
	Feasibility int `json:"feasibility"`
	Innovation  int `json:"innovation"`
}

type MarketAnalysis struct {
	MarketSize      string `json:"marketSize"`
	GrowthRate      string `json:"growthRate"`
	TargetPotential string `json:"targetPotential"`
}

type Competitor struct {
	Name     string `json:"name"`
	Strength string `json:"strength"`
}

type Risk struct {
	Level       string `json:"level"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// IdeaResult is the UI view of one idea and its basic analysis. Empty
// collections are nil so they encode as null.
type IdeaResult struct {
	ID              uuid.UUID       `json:"id"`
	Title           string          `json:"title"`
	Category        *string         `json:"category"`
	Stage           string          `json:"stage,omitempty"`
	Status          string          `json:"status"`
	FullyAnalyzed   bool            `json:"fullyAnalyzed"`
	SubmittedAt     time.Time       `json:"submittedAt"`
	CompletedAt     *time.Time      `json:"completedAt"`
	OverallScore    *int            `json:"overallScore"`
	Scores          *IdeaScores     `json:"scores"`
	MarketAnalysis  *MarketAnalysis `json:"marketAnalysis"`
	Competitors     []Competitor    `json:"competitors"`
	Recommendations []string        `json:"recommendations"`
	Risks           []Risk          `json:"risks"`
	LastError       string          `json:"lastAnalysisError,omitempty"`
}

// BuildIdeaResult projects stored rows into an IdeaResult. score decides the
// status; without it the insight is ignored and the result stays pending.
func BuildIdeaResult(idea *types.Idea, score *types.Score, checks []*types.ComplianceCheck, insight *types.AIInsight) *IdeaResult {
	if idea == nil {
		return nil
	}
	out := &IdeaResult{
		ID:            idea.ID,
		Title:         idea.Title,
		Stage:         idea.Stage,
		Status:        types.IdeaStatusPending,
		FullyAnalyzed: idea.FullyAnalyzed,
		SubmittedAt:   idea.SubmittedAt,
		LastError:     idea.LastAnalysisError,
	}
	if c := strings.TrimSpace(idea.Category); c != "" {
		out.Category = &c
	}

	for _, c := range checks {
		if c == nil {
			continue
		}
		level := RiskHigh
		if c.Passed {
			level = RiskLow
		}
		out.Risks = append(out.Risks, Risk{Level: level, Title: c.RuleName, Description: c.RuleDescription})
	}

	if score == nil {
		return out
	}

	completed := score.CalculatedAt
	overall := score.ReadinessScore
	out.Status = types.IdeaStatusProcessed
	out.CompletedAt = &completed
	out.OverallScore = &overall
	out.Scores = &IdeaScores{
		Market:      score.MarketDemand,
		Competition: score.ComplianceScore,
		Feasibility: score.Feasibility,
		Innovation:  score.ReadinessScore,
	}

	if insight != nil {
		out.MarketAnalysis = &MarketAnalysis{
			MarketSize:      orNotAvailable(insight.MarketSize),
			GrowthRate:      orNotAvailable(insight.GrowthRate),
			TargetPotential: orNotAvailable(insight.TargetPotential),
		}
		for _, c := range jsontext.DecodeList[analysis.Competitor](insight.Competitors) {
			name := strings.TrimSpace(c.Name)
			if name == "" {
				name = "Unknown Competitor"
			}
			strength := firstNonEmpty(c.Strength, c.MarketPosition, "Market presence")
			out.Competitors = append(out.Competitors, Competitor{Name: name, Strength: strength})
		}
		for _, r := range jsontext.DecodeStrings(insight.Recommendations) {
			if strings.TrimSpace(r) != "" {
				out.Recommendations = append(out.Recommendations, r)
			}
		}
	}

	if len(out.Competitors) == 0 && out.Category != nil {
		out.Competitors = FallbackCompetitors(*out.Category)
	}
	if len(out.Recommendations) == 0 {
		out.Recommendations = FallbackRecommendations(overall, idea.Stage)
	}
	return out
}

// FallbackCompetitors names two generic players after the category.
func FallbackCompetitors(category string) []Competitor {
	base := categoryLabel(category)
	if base == "" {
		return nil
	}
	return []Competitor{
		{Name: base + " App A", Strength: "Strong local adoption"},
		{Name: base + " Platform B", Strength: "Backed by large hospital network"},
	}
}

// FallbackRecommendations picks advice by readiness band and adds a
// customer-validation step when the stage is known.
func FallbackRecommendations(readiness int, stage string) []string {
	var out []string
	switch {
	case readiness >= 80:
		out = append(out, "Consider preparing for pilot deployments with key healthcare partners.")
	case readiness >= 60:
		out = append(out, "Focus on tightening regulatory compliance and refining your MVP.")
	default:
		out = append(out, "Revisit core assumptions and strengthen the business model before scaling.")
	}
	if s := strings.TrimSpace(stage); s != "" {
		out = append(out, fmt.Sprintf("Next step: validate your %s with 5–10 target customers.", s))
	}
	return out
}

func categoryLabel(category string) string {
	c := strings.TrimSpace(strings.ReplaceAll(category, "-", " "))
	if c == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.Join(strings.Fields(c), " "))
}

func orNotAvailable(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

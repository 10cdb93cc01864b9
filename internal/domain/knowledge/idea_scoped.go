package knowledge

import (
	"time"

	"github.com/google/uuid"
)

// Rows in this file are private to one idea and written by the deep pass.
// JSON-bearing columns hold serialized text.

type CompetitorAnalysis struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	IdeaID uuid.UUID `gorm:"type:uuid;not null;index" json:"idea_id"`

	CompetitorName        string   `gorm:"column:competitor_name;not null" json:"competitor_name"`
	CompetitorDescription string   `gorm:"column:competitor_description;type:text" json:"competitor_description"`
	MarketPosition        string   `gorm:"column:market_position" json:"market_position"`
	FundingRaised         *float64 `gorm:"column:funding_raised" json:"funding_raised,omitempty"`
	Status                string   `gorm:"column:status" json:"status"`
	Strengths             string   `gorm:"column:strengths;type:text" json:"strengths"`
	Weaknesses            string   `gorm:"column:weaknesses;type:text" json:"weaknesses"`
	MarketShareEstimated  *float64 `gorm:"column:market_share_estimated" json:"market_share_estimated,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (CompetitorAnalysis) TableName() string { return "competitor_analyses" }

type RiskProfile struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	IdeaID uuid.UUID `gorm:"type:uuid;not null;index" json:"idea_id"`

	RiskType             string   `gorm:"column:risk_type" json:"risk_type"`
	RiskName             string   `gorm:"column:risk_name;not null" json:"risk_name"`
	RiskDescription      string   `gorm:"column:risk_description;type:text" json:"risk_description"`
	ProbabilityPercent   *float64 `gorm:"column:probability_percent" json:"probability_percent,omitempty"`
	ImpactLevel          string   `gorm:"column:impact_level" json:"impact_level"`
	MitigationStrategies string   `gorm:"column:mitigation_strategies;type:text" json:"mitigation_strategies"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (RiskProfile) TableName() string { return "risk_profiles" }

type StrategicRecommendation struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	IdeaID uuid.UUID `gorm:"type:uuid;not null;index" json:"idea_id"`

	RecommendationType       string   `gorm:"column:recommendation_type" json:"recommendation_type"`
	RecommendationContent    string   `gorm:"column:recommendation_content;type:text;not null" json:"recommendation_content"`
	PriorityLevel            string   `gorm:"column:priority_level" json:"priority_level"`
	ExpectedImpactOnScore    *float64 `gorm:"column:expected_impact_on_score" json:"expected_impact_on_score,omitempty"`
	ImplementationDifficulty string   `gorm:"column:implementation_difficulty" json:"implementation_difficulty"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (StrategicRecommendation) TableName() string { return "strategic_recommendations" }

type CustomerSegment struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	IdeaID uuid.UUID `gorm:"type:uuid;not null;index" json:"idea_id"`

	SegmentName         string   `gorm:"column:segment_name;not null" json:"segment_name"`
	SegmentSizeEstimate *float64 `gorm:"column:segment_size_estimate" json:"segment_size_estimate,omitempty"`
	WillingnessToPay    *float64 `gorm:"column:willingness_to_pay" json:"willingness_to_pay,omitempty"`
	PainPoints          string   `gorm:"column:pain_points;type:text" json:"pain_points"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (CustomerSegment) TableName() string { return "customer_segments" }

// DetailedReport is the free-form narrative of the deep pass. Insights keeps
// the deep pass's scored insight list alongside the narrative sections.
type DetailedReport struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	IdeaID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_detailed_reports_idea_id" json:"idea_id"`

	ExecutiveSummary    string `gorm:"column:executive_summary;type:text" json:"executive_summary"`
	MarketAnalysis      string `gorm:"column:market_analysis;type:text" json:"market_analysis"`
	CompetitiveAnalysis string `gorm:"column:competitive_analysis;type:text" json:"competitive_analysis"`
	CustomerAnalysis    string `gorm:"column:customer_analysis;type:text" json:"customer_analysis"`
	RiskAssessment      string `gorm:"column:risk_assessment;type:text" json:"risk_assessment"`
	Recommendations     string `gorm:"column:recommendations;type:text" json:"recommendations"`
	Insights            string `gorm:"column:insights;type:text" json:"insights"`

	GeneratedAt time.Time `gorm:"column:generated_at;not null" json:"generated_at"`
}

func (DetailedReport) TableName() string { return "detailed_analysis_reports" }

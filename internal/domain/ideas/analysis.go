package ideas

import (
	"time"

	"github.com/google/uuid"
)

// Score is written exactly once per idea by the basic pass. The unique index
// on idea_id is what makes concurrent first analyses safe.
type Score struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	IdeaID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_scores_idea_id" json:"idea_id"`

	Feasibility        int `gorm:"column:feasibility;not null" json:"feasibility"`
	ComplianceScore    int `gorm:"column:compliance_score;not null" json:"compliance_score"`
	MarketDemand       int `gorm:"column:market_demand;not null" json:"market_demand"`
	CulturalAcceptance int `gorm:"column:cultural_acceptance;not null" json:"cultural_acceptance"`
	CostViability      int `gorm:"column:cost_viability;not null" json:"cost_viability"`
	ReadinessScore     int `gorm:"column:readiness_score;not null" json:"readiness_score"`

	CalculatedAt time.Time `gorm:"column:calculated_at;not null" json:"calculated_at"`
}

func (Score) TableName() string { return "scores" }

type ComplianceCheck struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	IdeaID uuid.UUID `gorm:"type:uuid;not null;index" json:"idea_id"`

	RuleName        string  `gorm:"column:rule_name;not null" json:"rule_name"`
	RuleDescription string  `gorm:"column:rule_description;type:text" json:"rule_description"`
	Passed          bool    `gorm:"column:passed;not null" json:"passed"`
	Recommendations *string `gorm:"column:recommendations;type:text" json:"recommendations,omitempty"`

	CheckedAt time.Time `gorm:"column:checked_at;not null" json:"checked_at"`
}

func (ComplianceCheck) TableName() string { return "compliance_checks" }

// AIInsight holds the basic-pass narrative. List columns are serialized JSON text.
type AIInsight struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	IdeaID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ai_insights_idea_id" json:"idea_id"`

	MarketSize      string `gorm:"column:market_size;type:text" json:"market_size"`
	GrowthRate      string `gorm:"column:growth_rate;type:text" json:"growth_rate"`
	TargetPotential string `gorm:"column:target_potential;type:text" json:"target_potential"`

	KeyRisks                 string `gorm:"column:key_risks;type:text" json:"key_risks"`
	CompetitiveAdvantages    string `gorm:"column:competitive_advantages;type:text" json:"competitive_advantages"`
	RegulatoryConsiderations string `gorm:"column:regulatory_considerations;type:text" json:"regulatory_considerations"`
	Competitors              string `gorm:"column:competitors;type:text" json:"competitors"`
	Recommendations          string `gorm:"column:recommendations;type:text" json:"recommendations"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (AIInsight) TableName() string { return "ai_insights" }

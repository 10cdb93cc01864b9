package ideas

import (
	"time"

	"github.com/google/uuid"
)

const (
	IdeaStatusPending   = "pending"
	IdeaStatusProcessed = "processed"
)

// Idea is one submitted startup concept. Status tracks the basic analysis pass;
// FullyAnalyzed tracks the deep pass.
type Idea struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`

	Title                  string `gorm:"column:title;not null" json:"title"`
	Description            string `gorm:"column:description;type:text" json:"description"`
	ProblemStatement       string `gorm:"column:problem_statement;type:text" json:"problem_statement"`
	TargetAudience         string `gorm:"column:target_audience;type:text" json:"target_audience"`
	UniqueValueProposition string `gorm:"column:unique_value_proposition;type:text" json:"unique_value_proposition"`

	Category  string `gorm:"column:category;index" json:"category"`
	Domain    string `gorm:"column:domain" json:"domain"`
	Subdomain string `gorm:"column:subdomain" json:"subdomain"`
	Stage     string `gorm:"column:stage" json:"stage"`

	// free-form tags such as "2-5" or "under-1m"
	TeamSize      string `gorm:"column:team_size" json:"team_size,omitempty"`
	FundingNeeded string `gorm:"column:funding_needed" json:"funding_needed,omitempty"`

	// pending|processed
	Status        string `gorm:"column:status;not null;index" json:"status"`
	FullyAnalyzed bool   `gorm:"column:fully_analyzed;not null" json:"fully_analyzed"`

	// Set when the most recent re-analysis failed; cleared on success.
	LastAnalysisError string `gorm:"column:last_analysis_error;type:text" json:"last_analysis_error,omitempty"`

	SubmittedAt time.Time `gorm:"column:submitted_at;not null;index" json:"submitted_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (Idea) TableName() string { return "startup_ideas" }

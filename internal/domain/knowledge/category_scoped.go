package knowledge

import (
	"time"

	"github.com/google/uuid"
)

// Category-scoped rows form a knowledge base shared by every idea in the same
// category. Each table carries a unique natural key and rows are inserted
// first-writer-wins: a later deep pass never overwrites an existing row.

type MarketData struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Category string    `gorm:"column:category;not null;uniqueIndex:idx_market_data_category" json:"category"`

	MarketSizeUSD           *float64 `gorm:"column:market_size_usd" json:"market_size_usd,omitempty"`
	MarketGrowthRatePercent *float64 `gorm:"column:market_growth_rate_percent" json:"market_growth_rate_percent,omitempty"`
	MarketGaps              string   `gorm:"column:market_gaps;type:text" json:"market_gaps"`
	MarketTrends            string   `gorm:"column:market_trends;type:text" json:"market_trends"`
	OpportunityScore        *float64 `gorm:"column:opportunity_score" json:"opportunity_score,omitempty"`

	LastUpdated time.Time `gorm:"column:last_updated;not null" json:"last_updated"`
}

func (MarketData) TableName() string { return "healthcare_market_data" }

type FailureCase struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Category    string    `gorm:"column:category;not null;uniqueIndex:idx_failure_category_name,priority:1" json:"category"`
	StartupName string    `gorm:"column:startup_name;not null;uniqueIndex:idx_failure_category_name,priority:2" json:"startup_name"`

	PrimaryFailureReason    string `gorm:"column:primary_failure_reason;type:text" json:"primary_failure_reason"`
	SecondaryFailureReasons string `gorm:"column:secondary_failure_reasons;type:text" json:"secondary_failure_reasons"`
	LessonsLearned          string `gorm:"column:lessons_learned;type:text" json:"lessons_learned"`
	PreventiveMeasures      string `gorm:"column:preventive_measures;type:text" json:"preventive_measures"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (FailureCase) TableName() string { return "failure_analyses" }

type SuccessCase struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Category    string    `gorm:"column:category;not null;uniqueIndex:idx_success_category_name,priority:1" json:"category"`
	StartupName string    `gorm:"column:startup_name;not null;uniqueIndex:idx_success_category_name,priority:2" json:"startup_name"`

	ExitType       string   `gorm:"column:exit_type" json:"exit_type"`
	ExitValuation  *float64 `gorm:"column:exit_valuation" json:"exit_valuation,omitempty"`
	SuccessFactors string   `gorm:"column:success_factors;type:text" json:"success_factors"`
	LessonsLearned string   `gorm:"column:lessons_learned;type:text" json:"lessons_learned"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (SuccessCase) TableName() string { return "success_analyses" }

type RegulatoryItem struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Category        string    `gorm:"column:category;not null;uniqueIndex:idx_regulatory_category_name,priority:1" json:"category"`
	RequirementName string    `gorm:"column:requirement_name;not null;uniqueIndex:idx_regulatory_category_name,priority:2" json:"requirement_name"`

	Jurisdiction           string `gorm:"column:jurisdiction" json:"jurisdiction"`
	RequirementDescription string `gorm:"column:requirement_description;type:text" json:"requirement_description"`
	ApprovalBody           string `gorm:"column:approval_body" json:"approval_body"`
	SeverityLevel          string `gorm:"column:severity_level" json:"severity_level"`

	UpdatedAt time.Time `gorm:"column:updated_at;not null" json:"updated_at"`
}

func (RegulatoryItem) TableName() string { return "regulatory_frameworks" }

type MarketTrend struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Category  string    `gorm:"column:category;not null;uniqueIndex:idx_trend_category_name,priority:1" json:"category"`
	TrendName string    `gorm:"column:trend_name;not null;uniqueIndex:idx_trend_category_name,priority:2" json:"trend_name"`

	TrendDescription string   `gorm:"column:trend_description;type:text" json:"trend_description"`
	RelevanceScore   *float64 `gorm:"column:relevance_score" json:"relevance_score,omitempty"`
	TrendStatus      string   `gorm:"column:trend_status" json:"trend_status"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (MarketTrend) TableName() string { return "market_trends" }

// FundingSource is global rather than category-scoped; CategoryFocus lists
// the categories a funder invests in.
type FundingSource struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name string    `gorm:"column:name;not null;uniqueIndex:idx_funding_sources_name" json:"name"`

	FunderType          string   `gorm:"column:funder_type" json:"funder_type"`
	CategoryFocus       string   `gorm:"column:category_focus;type:text" json:"category_focus"`
	StageFocus          string   `gorm:"column:stage_focus;type:text" json:"stage_focus"`
	TypicalCheckSizeMin *float64 `gorm:"column:typical_check_size_min" json:"typical_check_size_min,omitempty"`
	TypicalCheckSizeMax *float64 `gorm:"column:typical_check_size_max" json:"typical_check_size_max,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (FundingSource) TableName() string { return "funding_sources" }

type Benchmark struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Category   string    `gorm:"column:category;not null;uniqueIndex:idx_benchmark_key,priority:1" json:"category"`
	Stage      string    `gorm:"column:stage;not null;uniqueIndex:idx_benchmark_key,priority:2" json:"stage"`
	MetricName string    `gorm:"column:metric_name;not null;uniqueIndex:idx_benchmark_key,priority:3" json:"metric_name"`

	MedianValue      *float64 `gorm:"column:median_value" json:"median_value,omitempty"`
	BestInClassValue *float64 `gorm:"column:best_in_class_value" json:"best_in_class_value,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;not null" json:"created_at"`
}

func (Benchmark) TableName() string { return "benchmark_data" }

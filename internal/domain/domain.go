package domain

import (
	"github.com/yungbote/medvalidate-backend/internal/domain/ideas"
	"github.com/yungbote/medvalidate-backend/internal/domain/jobs"
	"github.com/yungbote/medvalidate-backend/internal/domain/knowledge"
	"github.com/yungbote/medvalidate-backend/internal/domain/reports"
)

const (
	IdeaStatusPending   = ideas.IdeaStatusPending
	IdeaStatusProcessed = ideas.IdeaStatusProcessed
)

type (
	Idea            = ideas.Idea
	Score           = ideas.Score
	ComplianceCheck = ideas.ComplianceCheck
	AIInsight       = ideas.AIInsight

	CompetitorAnalysis      = knowledge.CompetitorAnalysis
	RiskProfile             = knowledge.RiskProfile
	StrategicRecommendation = knowledge.StrategicRecommendation
	CustomerSegment         = knowledge.CustomerSegment
	DetailedReport          = knowledge.DetailedReport
	MarketData              = knowledge.MarketData
	FailureCase             = knowledge.FailureCase
	SuccessCase             = knowledge.SuccessCase
	RegulatoryItem          = knowledge.RegulatoryItem
	MarketTrend             = knowledge.MarketTrend
	FundingSource           = knowledge.FundingSource
	Benchmark               = knowledge.Benchmark

	Report = reports.Report

	SagaRun    = jobs.SagaRun
	SagaAction = jobs.SagaAction
)

// AllModels lists every persisted type in migration order.
func AllModels() []any {
	return []any{
		&Idea{},
		&Score{},
		&ComplianceCheck{},
		&AIInsight{},
		&CompetitorAnalysis{},
		&MarketData{},
		&FailureCase{},
		&SuccessCase{},
		&RegulatoryItem{},
		&MarketTrend{},
		&FundingSource{},
		&RiskProfile{},
		&StrategicRecommendation{},
		&CustomerSegment{},
		&Benchmark{},
		&DetailedReport{},
		&Report{},
		&SagaRun{},
		&SagaAction{},
	}
}

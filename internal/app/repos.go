package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/medvalidate-backend/internal/data/repos"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
)

type Repos struct {
	Idea       repos.IdeaRepo
	Score      repos.ScoreRepo
	Compliance repos.ComplianceCheckRepo
	Insight    repos.AIInsightRepo
	Own        repos.IdeaKnowledgeRepo
	Shared     repos.CategoryKnowledgeRepo
	Report     repos.ReportRepo
	SagaRun    repos.SagaRunRepo
	SagaAction repos.SagaActionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Idea:       repos.NewIdeaRepo(db, log),
		Score:      repos.NewScoreRepo(db, log),
		Compliance: repos.NewComplianceCheckRepo(db, log),
		Insight:    repos.NewAIInsightRepo(db, log),
		Own:        repos.NewIdeaKnowledgeRepo(db, log),
		Shared:     repos.NewCategoryKnowledgeRepo(db, log),
		Report:     repos.NewReportRepo(db, log),
		SagaRun:    repos.NewSagaRunRepo(db, log),
		SagaAction: repos.NewSagaActionRepo(db, log),
	}
}

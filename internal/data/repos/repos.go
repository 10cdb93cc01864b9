package repos

import (
	"gorm.io/gorm"

	"github.com/yungbote/medvalidate-backend/internal/data/repos/ideas"
	"github.com/yungbote/medvalidate-backend/internal/data/repos/jobs"
	"github.com/yungbote/medvalidate-backend/internal/data/repos/knowledge"
	"github.com/yungbote/medvalidate-backend/internal/data/repos/reports"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
)

type IdeaRepo = ideas.IdeaRepo
type ScoreRepo = ideas.ScoreRepo
type ComplianceCheckRepo = ideas.ComplianceCheckRepo
type AIInsightRepo = ideas.AIInsightRepo

type IdeaKnowledgeRepo = knowledge.IdeaKnowledgeRepo
type CategoryKnowledgeRepo = knowledge.CategoryKnowledgeRepo
type IdeaKnowledgeRows = knowledge.IdeaRows
type CategoryKnowledgeRows = knowledge.CategoryRows
type CategoryInsertCounts = knowledge.InsertCounts

type ReportRepo = reports.ReportRepo

type SagaRunRepo = jobs.SagaRunRepo
type SagaActionRepo = jobs.SagaActionRepo

func NewIdeaRepo(db *gorm.DB, baseLog *logger.Logger) IdeaRepo { return ideas.NewIdeaRepo(db, baseLog) }
func NewScoreRepo(db *gorm.DB, baseLog *logger.Logger) ScoreRepo {
	return ideas.NewScoreRepo(db, baseLog)
}
func NewComplianceCheckRepo(db *gorm.DB, baseLog *logger.Logger) ComplianceCheckRepo {
	return ideas.NewComplianceCheckRepo(db, baseLog)
}
func NewAIInsightRepo(db *gorm.DB, baseLog *logger.Logger) AIInsightRepo {
	return ideas.NewAIInsightRepo(db, baseLog)
}

func NewIdeaKnowledgeRepo(db *gorm.DB, baseLog *logger.Logger) IdeaKnowledgeRepo {
	return knowledge.NewIdeaKnowledgeRepo(db, baseLog)
}
func NewCategoryKnowledgeRepo(db *gorm.DB, baseLog *logger.Logger) CategoryKnowledgeRepo {
	return knowledge.NewCategoryKnowledgeRepo(db, baseLog)
}

func NewReportRepo(db *gorm.DB, baseLog *logger.Logger) ReportRepo {
	return reports.NewReportRepo(db, baseLog)
}

func NewSagaRunRepo(db *gorm.DB, baseLog *logger.Logger) SagaRunRepo {
	return jobs.NewSagaRunRepo(db, baseLog)
}
func NewSagaActionRepo(db *gorm.DB, baseLog *logger.Logger) SagaActionRepo {
	return jobs.NewSagaActionRepo(db, baseLog)
}

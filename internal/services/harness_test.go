package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/medvalidate-backend/internal/analysis"
	"github.com/yungbote/medvalidate-backend/internal/analysis/analysistest"
	"github.com/yungbote/medvalidate-backend/internal/data/repos"
	"github.com/yungbote/medvalidate-backend/internal/data/repos/testutil"
	"github.com/yungbote/medvalidate-backend/internal/platform/objectstore"
	"github.com/yungbote/medvalidate-backend/internal/platform/redislock"
)

// harness wires the real services over a private sqlite database with a
// scripted model client and an in-memory bucket.
type harness struct {
	db     *gorm.DB
	llm    *analysistest.FakeClient
	bucket *objectstore.MemoryBucketService

	ideaRepo    repos.IdeaRepo
	scoreRepo   repos.ScoreRepo
	checkRepo   repos.ComplianceCheckRepo
	insightRepo repos.AIInsightRepo
	ownRepo     repos.IdeaKnowledgeRepo
	sharedRepo  repos.CategoryKnowledgeRepo
	reportRepo  repos.ReportRepo
	runRepo     repos.SagaRunRepo
	actionRepo  repos.SagaActionRepo

	saga    SagaService
	ideas   IdeaService
	deep    DeepAnalysisService
	reports ReportService
}

func newHarness(t *testing.T, responses ...analysistest.Response) *harness {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	h := &harness{
		db:          db,
		llm:         analysistest.NewFakeClient(responses...),
		bucket:      objectstore.NewMemoryBucketService("http://objects.local"),
		ideaRepo:    repos.NewIdeaRepo(db, log),
		scoreRepo:   repos.NewScoreRepo(db, log),
		checkRepo:   repos.NewComplianceCheckRepo(db, log),
		insightRepo: repos.NewAIInsightRepo(db, log),
		ownRepo:     repos.NewIdeaKnowledgeRepo(db, log),
		sharedRepo:  repos.NewCategoryKnowledgeRepo(db, log),
		reportRepo:  repos.NewReportRepo(db, log),
		runRepo:     repos.NewSagaRunRepo(db, log),
		actionRepo:  repos.NewSagaActionRepo(db, log),
	}
	purger := NewIdeaPurger(h.ideaRepo, h.scoreRepo, h.checkRepo, h.insightRepo, h.ownRepo, h.reportRepo)
	gen := analysis.NewGenerator(log, h.llm)
	locker := redislock.NewLocalLocker()

	h.saga = NewSagaService(db, log, h.runRepo, h.actionRepo, purger, h.bucket)
	h.ideas = NewIdeaService(db, log, IdeaServiceDeps{
		Ideas:     h.ideaRepo,
		Scores:    h.scoreRepo,
		Checks:    h.checkRepo,
		Insights:  h.insightRepo,
		Reports:   h.reportRepo,
		Purger:    purger,
		Saga:      h.saga,
		Generator: gen,
		Locker:    locker,
		Bucket:    h.bucket,
	})
	h.deep = NewDeepAnalysisService(db, log, DeepAnalysisServiceDeps{
		Ideas:     h.ideaRepo,
		Own:       h.ownRepo,
		Shared:    h.sharedRepo,
		Generator: gen,
		Locker:    locker,
	})
	h.reports = NewReportService(db, log, ReportServiceDeps{
		Ideas:   h.ideaRepo,
		Reports: h.reportRepo,
		Saga:    h.saga,
		Bucket:  h.bucket,
		Idea:    h.ideas,
		Deep:    h.deep,
	})
	return h
}

func (h *harness) count(t *testing.T, model any, where string, args ...any) int64 {
	t.Helper()
	return testutil.Count(t, h.db, model, where, args...)
}

func sampleSubmission(category string) IdeaSubmission {
	return IdeaSubmission{
		Title:            "Urdu mental health chatbot",
		Description:      "CBT exercises over WhatsApp",
		ProblemStatement: "Stigma keeps students from therapy",
		TargetAudience:   "University students",
		Category:         category,
		Stage:            "mvp",
	}
}

func mustCreate(t *testing.T, h *harness, userID uuid.UUID, category string) *AnalysisOutcome {
	t.Helper()
	out, err := h.ideas.CreateIdea(context.Background(), userID, sampleSubmission(category))
	if err != nil {
		t.Fatalf("CreateIdea: %v", err)
	}
	if !out.Success {
		t.Fatalf("CreateIdea: want success got=%+v", out)
	}
	return out
}

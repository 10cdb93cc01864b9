package services

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/medvalidate-backend/internal/analysis/analysistest"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
)

func TestCreateIdeaStoresRoundedScore(t *testing.T) {
	h := newHarness(t, analysistest.Response{Payload: analysistest.BasicPayload(69.4)})
	ctx := context.Background()
	userID := uuid.New()

	out := mustCreate(t, h, userID, "mental-health")
	require.Equal(t, AnalysisStatusCompleted, out.AnalysisStatus)
	require.NotNil(t, out.Result)
	require.Equal(t, types.IdeaStatusProcessed, out.Result.Status)
	require.NotNil(t, out.Result.OverallScore)
	require.Equal(t, 69, *out.Result.OverallScore)

	score, err := h.scoreRepo.GetByIdeaID(dbctx.Context{Ctx: ctx}, out.Idea.ID)
	require.NoError(t, err)
	require.Equal(t, 69, score.ReadinessScore)

	stored, err := h.ideaRepo.GetByID(dbctx.Context{Ctx: ctx}, out.Idea.ID)
	require.NoError(t, err)
	require.Equal(t, types.IdeaStatusProcessed, stored.Status)

	sr, err := h.runRepo.GetBySubject(dbctx.Context{Ctx: ctx}, SagaOperationIdeaSubmission, out.Idea.ID)
	require.NoError(t, err)
	require.Equal(t, SagaStatusSucceeded, sr.Status)
}

func TestCreateIdeaRisksFromChecks(t *testing.T) {
	h := newHarness(t, analysistest.Response{Payload: analysistest.BasicPayload(70)})
	out := mustCreate(t, h, uuid.New(), "mental-health")

	levels := map[string]int{}
	for _, r := range out.Result.Risks {
		levels[r.Level]++
	}
	require.Equal(t, map[string]int{"high": 1, "low": 1}, levels)
}

func TestCreateIdeaGenerationFailureLeavesNoRows(t *testing.T) {
	netErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}
	h := newHarness(t, analysistest.Response{Err: netErr})
	ctx := context.Background()
	userID := uuid.New()

	out, err := h.ideas.CreateIdea(ctx, userID, sampleSubmission("mental-health"))
	require.NoError(t, err)
	require.False(t, out.Success)
	require.Equal(t, AnalysisStatusFailed, out.AnalysisStatus)
	require.NotEmpty(t, out.Error)
	require.NotNil(t, out.Failure)
	require.Equal(t, types.FailureGeneration, out.Failure.Kind)

	require.Zero(t, h.count(t, &types.Idea{}, ""))
	require.Zero(t, h.count(t, &types.Score{}, ""))
	require.Zero(t, h.count(t, &types.ComplianceCheck{}, ""))
	require.Zero(t, h.count(t, &types.AIInsight{}, ""))

	list, err := h.ideas.ListIdeas(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCreateIdeaValidationFailureLeavesNoRows(t *testing.T) {
	bad := analysistest.BasicPayload(70)
	bad["compliance_checks"] = []any{}
	h := newHarness(t, analysistest.Response{Payload: bad})

	out, err := h.ideas.CreateIdea(context.Background(), uuid.New(), sampleSubmission("mental-health"))
	require.NoError(t, err)
	require.False(t, out.Success)
	require.Equal(t, types.FailureValidation, out.Failure.Kind)
	require.Zero(t, h.count(t, &types.Idea{}, ""))
	require.Equal(t, int64(1), h.count(t, &types.SagaRun{}, "status = ?", SagaStatusCompensated))
}

func failComplianceInserts(t *testing.T, h *harness) {
	t.Helper()
	err := h.db.Callback().Create().Before("gorm:create").Register("test:fail_compliance_checks", func(tx *gorm.DB) {
		if tx.Statement.Table == (types.ComplianceCheck{}).TableName() {
			_ = tx.AddError(errors.New("injected write failure"))
		}
	})
	require.NoError(t, err)
}

func TestCreateIdeaPersistenceFailureLeavesNoRows(t *testing.T) {
	h := newHarness(t, analysistest.Response{Payload: analysistest.BasicPayload(70)})
	failComplianceInserts(t, h)
	ctx := context.Background()
	userID := uuid.New()

	out, err := h.ideas.CreateIdea(ctx, userID, sampleSubmission("mental-health"))
	require.NoError(t, err)
	require.False(t, out.Success)
	require.Equal(t, AnalysisStatusFailed, out.AnalysisStatus)
	require.NotNil(t, out.Failure)
	require.Equal(t, types.FailurePersistence, out.Failure.Kind)

	require.Zero(t, h.count(t, &types.Idea{}, ""))
	require.Zero(t, h.count(t, &types.Score{}, ""))
	require.Zero(t, h.count(t, &types.ComplianceCheck{}, ""))
	require.Zero(t, h.count(t, &types.AIInsight{}, ""))
	require.Equal(t, int64(1), h.count(t, &types.SagaRun{}, "status = ?", SagaStatusCompensated))
}

func TestReanalyzePersistenceFailureKeepsIdeaPending(t *testing.T) {
	h := newHarness(t, analysistest.Response{Payload: analysistest.BasicPayload(70)})
	ctx := context.Background()
	userID := uuid.New()
	out := mustCreate(t, h, userID, "mental-health")
	failComplianceInserts(t, h)

	re, err := h.ideas.ReanalyzeIdea(ctx, userID, out.Idea.ID)
	require.NoError(t, err)
	require.False(t, re.Success)
	require.NotNil(t, re.Failure)
	require.Equal(t, types.FailurePersistence, re.Failure.Kind)

	stored, err := h.ideaRepo.GetByID(dbctx.Context{Ctx: ctx}, out.Idea.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, types.IdeaStatusPending, stored.Status)
	require.NotEmpty(t, stored.LastAnalysisError)
	require.Zero(t, h.count(t, &types.Score{}, "idea_id = ?", out.Idea.ID))
	require.Zero(t, h.count(t, &types.ComplianceCheck{}, "idea_id = ?", out.Idea.ID))
}

func TestCreateIdeaKeepsRangeTags(t *testing.T) {
	h := newHarness(t, analysistest.Response{Payload: analysistest.BasicPayload(70)})
	ctx := context.Background()
	in := sampleSubmission("telemedicine")
	in.Title = "AI Telemedicine for Rural Clinics"
	in.Stage = "idea"
	in.TeamSize = " 2-5 "
	in.FundingNeeded = "under-1m"

	out, err := h.ideas.CreateIdea(ctx, uuid.New(), in)
	require.NoError(t, err)
	require.True(t, out.Success)

	prompt := h.llm.LastUserPrompt()
	require.Contains(t, prompt, "- Team Size: 2-5")
	require.Contains(t, prompt, "- Funding Needed: under-1m")

	stored, err := h.ideaRepo.GetByID(dbctx.Context{Ctx: ctx}, out.Idea.ID)
	require.NoError(t, err)
	require.Equal(t, "2-5", stored.TeamSize)
	require.Equal(t, "under-1m", stored.FundingNeeded)
}

func TestCreateIdeaRejectsMissingTitle(t *testing.T) {
	h := newHarness(t)
	in := sampleSubmission("mental-health")
	in.Title = "   "
	_, err := h.ideas.CreateIdea(context.Background(), uuid.New(), in)
	require.ErrorIs(t, err, types.ErrInvalidArgument)
	require.Zero(t, h.llm.Calls())
}

func TestSequentialAnalysesKeepOneScore(t *testing.T) {
	h := newHarness(t, analysistest.Response{Payload: analysistest.BasicPayload(70)})
	ctx := context.Background()
	out := mustCreate(t, h, uuid.New(), "mental-health")

	// A second first-pass run sees the score and skips generation.
	svc := h.ideas.(*ideaService)
	require.NoError(t, svc.runBasicPass(ctx, out.Idea.ID, false, uuid.Nil))
	require.Equal(t, 1, h.llm.Calls())
	require.Equal(t, int64(1), h.count(t, &types.Score{}, "idea_id = ?", out.Idea.ID))
}

func TestReanalyzeReplacesResult(t *testing.T) {
	h := newHarness(t,
		analysistest.Response{Payload: analysistest.BasicPayload(40)},
		analysistest.Response{Payload: analysistest.BasicPayload(91)},
	)
	ctx := context.Background()
	userID := uuid.New()
	out := mustCreate(t, h, userID, "mental-health")

	re, err := h.ideas.ReanalyzeIdea(ctx, userID, out.Idea.ID)
	require.NoError(t, err)
	require.True(t, re.Success)
	require.Equal(t, 91, *re.Result.OverallScore)
	require.Equal(t, int64(1), h.count(t, &types.Score{}, "idea_id = ?", out.Idea.ID))
	require.Equal(t, int64(2), h.count(t, &types.ComplianceCheck{}, "idea_id = ?", out.Idea.ID))
	require.Equal(t, int64(1), h.count(t, &types.AIInsight{}, "idea_id = ?", out.Idea.ID))
}

func TestReanalyzeFailureKeepsIdeaPending(t *testing.T) {
	h := newHarness(t,
		analysistest.Response{Payload: analysistest.BasicPayload(70)},
		analysistest.Response{Err: errors.New("upstream exploded")},
	)
	ctx := context.Background()
	userID := uuid.New()
	out := mustCreate(t, h, userID, "mental-health")

	re, err := h.ideas.ReanalyzeIdea(ctx, userID, out.Idea.ID)
	require.NoError(t, err)
	require.False(t, re.Success)
	require.Equal(t, AnalysisStatusPending, re.AnalysisStatus)

	stored, err := h.ideaRepo.GetByID(dbctx.Context{Ctx: ctx}, out.Idea.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Equal(t, types.IdeaStatusPending, stored.Status)
	require.NotEmpty(t, stored.LastAnalysisError)
	require.Zero(t, h.count(t, &types.Score{}, "idea_id = ?", out.Idea.ID))

	got, err := h.ideas.GetIdea(ctx, userID, out.Idea.ID)
	require.NoError(t, err)
	require.Equal(t, types.IdeaStatusPending, got.Status)
	require.Nil(t, got.OverallScore)
}

func TestReanalyzeChecksOwnership(t *testing.T) {
	h := newHarness(t, analysistest.Response{Payload: analysistest.BasicPayload(70)})
	out := mustCreate(t, h, uuid.New(), "mental-health")

	_, err := h.ideas.ReanalyzeIdea(context.Background(), uuid.New(), out.Idea.ID)
	require.ErrorIs(t, err, types.ErrForbidden)

	_, err = h.ideas.ReanalyzeIdea(context.Background(), uuid.New(), uuid.New())
	require.ErrorIs(t, err, types.ErrNotFound)
}

func TestReanalyzeRejectsConcurrentRun(t *testing.T) {
	h := newHarness(t, analysistest.Response{Payload: analysistest.BasicPayload(70)})
	ctx := context.Background()
	userID := uuid.New()
	out := mustCreate(t, h, userID, "mental-health")

	svc := h.ideas.(*ideaService)
	release, err := svc.locker.Acquire(ctx, analysisLockKey(out.Idea.ID), svc.lockTTL)
	require.NoError(t, err)
	defer release()

	_, err = h.ideas.ReanalyzeIdea(ctx, userID, out.Idea.ID)
	require.ErrorIs(t, err, types.ErrAnalysisInProgress)
}

func TestListIdeasNewestFirst(t *testing.T) {
	h := newHarness(t, analysistest.Response{Payload: analysistest.BasicPayload(70)})
	ctx := context.Background()
	userID := uuid.New()
	first := mustCreate(t, h, userID, "mental-health")
	second := mustCreate(t, h, userID, "diagnostics")
	mustCreate(t, h, uuid.New(), "mental-health")

	list, err := h.ideas.ListIdeas(ctx, userID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, second.Idea.ID, list[0].ID)
	require.Equal(t, first.Idea.ID, list[1].ID)
	for _, r := range list {
		require.Equal(t, types.IdeaStatusProcessed, r.Status)
	}
}

func TestDeleteIdeaRemovesPrivateRowsOnly(t *testing.T) {
	h := newHarness(t,
		analysistest.Response{Payload: analysistest.BasicPayload(70)},
		analysistest.Response{Payload: analysistest.DeepPayload("rural access")},
	)
	ctx := context.Background()
	userID := uuid.New()
	out := mustCreate(t, h, userID, "mental-health")
	_, err := h.deep.RunDeepAnalysis(ctx, userID, out.Idea.ID)
	require.NoError(t, err)

	require.ErrorIs(t, h.ideas.DeleteIdea(ctx, uuid.New(), out.Idea.ID), types.ErrForbidden)
	require.NoError(t, h.ideas.DeleteIdea(ctx, userID, out.Idea.ID))

	require.Zero(t, h.count(t, &types.Idea{}, ""))
	require.Zero(t, h.count(t, &types.Score{}, ""))
	require.Zero(t, h.count(t, &types.CompetitorAnalysis{}, ""))
	require.Zero(t, h.count(t, &types.DetailedReport{}, ""))
	require.Equal(t, int64(1), h.count(t, &types.MarketData{}, "category = ?", "mental-health"))

	_, err = h.ideas.GetIdea(ctx, userID, out.Idea.ID)
	require.ErrorIs(t, err, types.ErrNotFound)
}

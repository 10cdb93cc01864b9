package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/yungbote/medvalidate-backend/internal/data/repos/testutil"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
	"github.com/yungbote/medvalidate-backend/internal/platform/objectstore"
)

func startSaga(t *testing.T, h *harness, owner uuid.UUID, operation string, subject uuid.UUID, kind string, payload map[string]any) uuid.UUID {
	t.Helper()
	ctx := context.Background()
	var sagaID uuid.UUID
	err := h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		id, err := h.saga.CreateOrGetSaga(dbc, owner, operation, subject)
		if err != nil {
			return err
		}
		sagaID = id
		return h.saga.AppendAction(dbc, sagaID, kind, payload)
	})
	require.NoError(t, err)
	return sagaID
}

func backdateSaga(t *testing.T, h *harness, sagaID uuid.UUID, age time.Duration) {
	t.Helper()
	err := h.db.Model(&types.SagaRun{}).Where("id = ?", sagaID).
		UpdateColumn("updated_at", time.Now().UTC().Add(-age)).Error
	require.NoError(t, err)
}

func sagaStatus(t *testing.T, h *harness, sagaID uuid.UUID) string {
	t.Helper()
	sr, err := h.runRepo.GetByID(dbctx.Context{Ctx: context.Background()}, sagaID)
	require.NoError(t, err)
	require.NotNil(t, sr)
	return sr.Status
}

func TestCreateOrGetSagaIsKeyedBySubject(t *testing.T) {
	h := newHarness(t)
	dbc := dbctx.Context{Ctx: context.Background()}
	owner, subject := uuid.New(), uuid.New()

	a, err := h.saga.CreateOrGetSaga(dbc, owner, SagaOperationIdeaSubmission, subject)
	require.NoError(t, err)
	b, err := h.saga.CreateOrGetSaga(dbc, owner, SagaOperationIdeaSubmission, subject)
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := h.saga.CreateOrGetSaga(dbc, owner, SagaOperationReportGeneration, subject)
	require.NoError(t, err)
	require.NotEqual(t, a, c)
}

func TestAppendActionRequiresTransaction(t *testing.T) {
	h := newHarness(t)
	dbc := dbctx.Context{Ctx: context.Background()}
	sagaID, err := h.saga.CreateOrGetSaga(dbc, uuid.New(), SagaOperationIdeaSubmission, uuid.New())
	require.NoError(t, err)

	err = h.saga.AppendAction(dbc, sagaID, SagaActionKindIdeaDelete, map[string]any{"idea_id": uuid.NewString()})
	require.Error(t, err)
}

func TestAppendActionAssignsSequence(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	sagaID := startSaga(t, h, uuid.New(), SagaOperationReportGeneration, uuid.New(),
		SagaActionKindObjectDelete, map[string]any{"category": "reports", "key": "a.pdf"})
	err := h.db.Transaction(func(tx *gorm.DB) error {
		return h.saga.AppendAction(dbctx.Context{Ctx: ctx, Tx: tx}, sagaID, SagaActionKindObjectDelete,
			map[string]any{"category": "reports", "key": "b.pdf"})
	})
	require.NoError(t, err)

	actions, err := h.actionRepo.ListBySagaIDDesc(dbctx.Context{Ctx: ctx}, sagaID)
	require.NoError(t, err)
	require.Len(t, actions, 2)
	require.Equal(t, int64(2), actions[0].Seq)
	require.Equal(t, int64(1), actions[1].Seq)
}

func TestCompensateDeletesObject(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx}
	require.NoError(t, h.bucket.UploadFile(dbc, objectstore.BucketCategoryReport, "idea-1.pdf", bytes.NewReader([]byte("%PDF-"))))

	sagaID := startSaga(t, h, uuid.New(), SagaOperationReportGeneration, uuid.New(),
		SagaActionKindObjectDelete, map[string]any{"category": "reports", "key": "idea-1.pdf"})

	require.NoError(t, h.saga.Compensate(ctx, sagaID))
	require.Zero(t, h.bucket.Len())
	require.Equal(t, SagaStatusCompensated, sagaStatus(t, h, sagaID))

	// Done actions are skipped; a missing object is not an error either way.
	require.NoError(t, h.saga.Compensate(ctx, sagaID))
}

func TestCompensateFailureLeavesSagaCompensating(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	sagaID := startSaga(t, h, uuid.New(), SagaOperationIdeaSubmission, uuid.New(),
		"unknown_kind", map[string]any{})

	require.Error(t, h.saga.Compensate(ctx, sagaID))
	require.Equal(t, SagaStatusCompensating, sagaStatus(t, h, sagaID))
	require.Equal(t, int64(1), h.count(t, &types.SagaAction{}, "saga_id = ? AND status = ?", sagaID, SagaActionStatusFailed))
}

func TestSweepStaleRemovesAbandonedIdea(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	owner := uuid.New()

	abandoned := testutil.SeedIdea(t, ctx, h.db, owner, "mental-health")
	staleSaga := startSaga(t, h, owner, SagaOperationIdeaSubmission, abandoned.ID,
		SagaActionKindIdeaDelete, map[string]any{"idea_id": abandoned.ID.String()})
	backdateSaga(t, h, staleSaga, time.Hour)

	inFlight := testutil.SeedIdea(t, ctx, h.db, owner, "mental-health")
	freshSaga := startSaga(t, h, owner, SagaOperationIdeaSubmission, inFlight.ID,
		SagaActionKindIdeaDelete, map[string]any{"idea_id": inFlight.ID.String()})

	finished := testutil.SeedIdea(t, ctx, h.db, owner, "mental-health")
	doneSaga := startSaga(t, h, owner, SagaOperationIdeaSubmission, finished.ID,
		SagaActionKindIdeaDelete, map[string]any{"idea_id": finished.ID.String()})
	require.NoError(t, h.saga.MarkSagaStatus(ctx, doneSaga, SagaStatusSucceeded))
	backdateSaga(t, h, doneSaga, time.Hour)

	n, err := h.saga.SweepStale(ctx, 10*time.Minute)
	require.NoError(t, err)
	require.Equal(t, 1, n)

	require.Zero(t, h.count(t, &types.Idea{}, "id = ?", abandoned.ID))
	require.Equal(t, int64(1), h.count(t, &types.Idea{}, "id = ?", inFlight.ID))
	require.Equal(t, int64(1), h.count(t, &types.Idea{}, "id = ?", finished.ID))
	require.Equal(t, SagaStatusCompensated, sagaStatus(t, h, staleSaga))
	require.Equal(t, SagaStatusRunning, sagaStatus(t, h, freshSaga))
	require.Equal(t, SagaStatusSucceeded, sagaStatus(t, h, doneSaga))
}

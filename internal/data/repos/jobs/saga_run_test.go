package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/medvalidate-backend/internal/data/repos/testutil"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
)

func TestSagaRepos(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	log := testutil.Logger(t)
	runs := NewSagaRunRepo(db, log)
	actions := NewSagaActionRepo(db, log)

	subject := uuid.New()
	first, err := runs.CreateIfAbsent(dbc, &types.SagaRun{OwnerUserID: uuid.New(), Operation: "idea_submission", SubjectID: subject, Status: "running"})
	if err != nil || first == nil {
		t.Fatalf("CreateIfAbsent: err=%v row=%v", err, first)
	}
	again, err := runs.CreateIfAbsent(dbc, &types.SagaRun{OwnerUserID: uuid.New(), Operation: "idea_submission", SubjectID: subject, Status: "running"})
	if err != nil || again == nil {
		t.Fatalf("CreateIfAbsent again: err=%v row=%v", err, again)
	}
	if again.ID != first.ID {
		t.Fatalf("CreateIfAbsent reuse: want=%s got=%s", first.ID, again.ID)
	}

	max, err := actions.GetMaxSeq(dbc, first.ID)
	if err != nil || max != 0 {
		t.Fatalf("GetMaxSeq empty: err=%v max=%d", err, max)
	}
	now := time.Now().UTC()
	if err := actions.Create(dbc, []*types.SagaAction{
		{ID: uuid.New(), SagaID: first.ID, Seq: 1, Kind: "idea_delete", Status: "pending", CreatedAt: now, UpdatedAt: now},
		{ID: uuid.New(), SagaID: first.ID, Seq: 2, Kind: "object_delete", Status: "pending", CreatedAt: now, UpdatedAt: now},
	}); err != nil {
		t.Fatalf("Create actions: %v", err)
	}
	list, err := actions.ListBySagaIDDesc(dbc, first.ID)
	if err != nil || len(list) != 2 {
		t.Fatalf("ListBySagaIDDesc: err=%v len=%d", err, len(list))
	}
	if list[0].Seq != 2 {
		t.Fatalf("ListBySagaIDDesc order: want seq=2 first got=%d", list[0].Seq)
	}

	stale := time.Now().UTC().Add(time.Hour)
	if rows, err := runs.ListByStatusBefore(dbc, []string{"running"}, stale, 10); err != nil || len(rows) != 1 {
		t.Fatalf("ListByStatusBefore: err=%v len=%d", err, len(rows))
	}
	if err := runs.UpdateFields(dbc, first.ID, map[string]interface{}{"status": "succeeded"}); err != nil {
		t.Fatalf("UpdateFields: %v", err)
	}
	if rows, err := runs.ListByStatusBefore(dbc, []string{"running"}, stale, 10); err != nil || len(rows) != 0 {
		t.Fatalf("ListByStatusBefore after update: err=%v len=%d", err, len(rows))
	}
}

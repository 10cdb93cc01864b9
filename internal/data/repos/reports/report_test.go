package reports

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/yungbote/medvalidate-backend/internal/data/repos/testutil"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
)

func TestReportRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewReportRepo(db, testutil.Logger(t))

	userID := uuid.New()
	idea := testutil.SeedIdea(t, ctx, tx, userID, "diagnostics")

	first := &types.Report{IdeaID: idea.ID, UserID: userID, FileKey: "a.pdf", FileURL: "memory://objects/a.pdf"}
	if stored, err := repo.InsertIfAbsent(dbc, first); err != nil || !stored {
		t.Fatalf("InsertIfAbsent: err=%v stored=%v", err, stored)
	}
	second := &types.Report{IdeaID: idea.ID, UserID: userID, FileKey: "b.pdf", FileURL: "memory://objects/b.pdf"}
	if stored, err := repo.InsertIfAbsent(dbc, second); err != nil || stored {
		t.Fatalf("InsertIfAbsent duplicate: err=%v stored=%v", err, stored)
	}

	got, err := repo.GetByIdeaID(dbc, idea.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByIdeaID: err=%v row=%v", err, got)
	}
	if got.FileKey != "a.pdf" {
		t.Fatalf("FileKey: want=%q got=%q", "a.pdf", got.FileKey)
	}

	if err := repo.DeleteByID(dbc, got.ID); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if got, err := repo.GetByID(dbc, first.ID); err != nil || got != nil {
		t.Fatalf("GetByID after delete: err=%v row=%v", err, got)
	}
}

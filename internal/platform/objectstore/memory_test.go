package objectstore

import (
	"context"
	"strings"
	"testing"

	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
)

func TestMemoryBucketServiceRoundTrip(t *testing.T) {
	m := NewMemoryBucketService("")
	dbc := dbctx.Context{Ctx: context.Background()}

	if err := m.UploadFile(dbc, BucketCategoryReport, "a.pdf", strings.NewReader("%PDF-1.3")); err != nil {
		t.Fatalf("UploadFile: %v", err)
	}
	raw, ok := m.Get(BucketCategoryReport, "a.pdf")
	if !ok || string(raw) != "%PDF-1.3" {
		t.Fatalf("Get: ok=%v raw=%q", ok, raw)
	}
	if got := m.GetPublicURL(BucketCategoryReport, "a.pdf"); got != "memory://objects/reports/a.pdf" {
		t.Fatalf("GetPublicURL: got=%q", got)
	}
	if err := m.DeleteFile(dbc, BucketCategoryReport, "a.pdf"); err != nil {
		t.Fatalf("DeleteFile: %v", err)
	}
	err := m.DeleteFile(dbc, BucketCategoryReport, "a.pdf")
	if !IsNotFound(err) {
		t.Fatalf("second delete: want not found got=%v", err)
	}
}

func TestMemoryBucketServiceRejectsUnknownCategory(t *testing.T) {
	m := NewMemoryBucketService("")
	err := m.UploadFile(dbctx.Context{Ctx: context.Background()}, BucketCategory("avatar"), "a.png", strings.NewReader("x"))
	if err == nil {
		t.Fatalf("UploadFile: expected error for unknown category")
	}
}

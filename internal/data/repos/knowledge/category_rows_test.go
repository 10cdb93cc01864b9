package knowledge

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/medvalidate-backend/internal/data/repos/testutil"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
)

func TestCategoryKnowledgeFirstWriterWins(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewCategoryKnowledgeRepo(db, testutil.Logger(t))
	now := time.Now().UTC()

	first := &CategoryRows{
		MarketData: &types.MarketData{Category: "mental-health", MarketGaps: `["rural access"]`, LastUpdated: now},
		FailureCases: []*types.FailureCase{
			{ID: uuid.New(), Category: "mental-health", StartupName: "CalmNow", PrimaryFailureReason: "burn rate", CreatedAt: now},
			{ID: uuid.New(), Category: "mental-health", StartupName: "CalmNow", PrimaryFailureReason: "duplicate", CreatedAt: now},
		},
		FundingSources: []*types.FundingSource{
			{ID: uuid.New(), Name: "Indus Angels", CreatedAt: now},
		},
		Benchmarks: []*types.Benchmark{
			{ID: uuid.New(), Category: "mental-health", Stage: "idea", MetricName: "CAC", CreatedAt: now},
		},
	}
	counts, err := repo.InsertIfAbsent(dbc, first)
	if err != nil {
		t.Fatalf("InsertIfAbsent: %v", err)
	}
	if counts.MarketData != 1 || counts.FailureCases != 1 || counts.FundingSources != 1 || counts.Benchmarks != 1 {
		t.Fatalf("first counts: got=%+v", counts)
	}

	second := &CategoryRows{
		MarketData: &types.MarketData{Category: "mental-health", MarketGaps: `["overwritten"]`, LastUpdated: now},
		FailureCases: []*types.FailureCase{
			{ID: uuid.New(), Category: "mental-health", StartupName: "CalmNow", PrimaryFailureReason: "changed", CreatedAt: now},
			{ID: uuid.New(), Category: "mental-health", StartupName: "MindBridge", CreatedAt: now},
		},
	}
	counts, err = repo.InsertIfAbsent(dbc, second)
	if err != nil {
		t.Fatalf("second InsertIfAbsent: %v", err)
	}
	if counts.MarketData != 0 || counts.FailureCases != 1 || counts.Total() != 1 {
		t.Fatalf("second counts: got=%+v", counts)
	}

	md, err := repo.GetMarketData(dbc, "mental-health")
	if err != nil || md == nil {
		t.Fatalf("GetMarketData: err=%v row=%v", err, md)
	}
	if md.MarketGaps != `["rural access"]` {
		t.Fatalf("market data overwritten: got=%q", md.MarketGaps)
	}

	cases, err := repo.ListFailureCases(dbc, "mental-health")
	if err != nil || len(cases) != 2 {
		t.Fatalf("ListFailureCases: err=%v len=%d", err, len(cases))
	}
	for _, c := range cases {
		if c.StartupName == "CalmNow" && c.PrimaryFailureReason != "burn rate" {
			t.Fatalf("failure case overwritten: got=%q", c.PrimaryFailureReason)
		}
	}

	if bs, err := repo.ListBenchmarks(dbc, "mental-health", "idea"); err != nil || len(bs) != 1 {
		t.Fatalf("ListBenchmarks: err=%v len=%d", err, len(bs))
	}
	if bs, err := repo.ListBenchmarks(dbc, "mental-health", "growth"); err != nil || len(bs) != 0 {
		t.Fatalf("ListBenchmarks other stage: err=%v len=%d", err, len(bs))
	}
	if fs, err := repo.ListFundingSources(dbc, 10); err != nil || len(fs) != 1 {
		t.Fatalf("ListFundingSources: err=%v len=%d", err, len(fs))
	}
}

func TestIdeaKnowledgeRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}
	repo := NewIdeaKnowledgeRepo(db, testutil.Logger(t))
	now := time.Now().UTC()

	idea := testutil.SeedIdea(t, ctx, tx, uuid.New(), "mental-health")
	rows := &IdeaRows{
		Competitors: []*types.CompetitorAnalysis{
			{ID: uuid.New(), IdeaID: idea.ID, CompetitorName: "Sehat Kahani", CreatedAt: now},
		},
		Risks: []*types.RiskProfile{
			{ID: uuid.New(), IdeaID: idea.ID, RiskName: "Regulatory delay", CreatedAt: now},
		},
		Report: &types.DetailedReport{ID: uuid.New(), IdeaID: idea.ID, ExecutiveSummary: "ok", GeneratedAt: now},
	}
	if err := repo.Create(dbc, rows); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got, err := repo.ListCompetitors(dbc, idea.ID); err != nil || len(got) != 1 {
		t.Fatalf("ListCompetitors: err=%v len=%d", err, len(got))
	}
	if got, err := repo.GetDetailedReport(dbc, idea.ID); err != nil || got == nil || got.ExecutiveSummary != "ok" {
		t.Fatalf("GetDetailedReport: err=%v row=%v", err, got)
	}

	if err := repo.DeleteByIdeaID(dbc, idea.ID); err != nil {
		t.Fatalf("DeleteByIdeaID: %v", err)
	}
	if got, err := repo.ListRisks(dbc, idea.ID); err != nil || len(got) != 0 {
		t.Fatalf("ListRisks after delete: err=%v len=%d", err, len(got))
	}
	if got, err := repo.GetDetailedReport(dbc, idea.ID); err != nil || got != nil {
		t.Fatalf("GetDetailedReport after delete: err=%v row=%v", err, got)
	}
}

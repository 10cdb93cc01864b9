package knowledge

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/medvalidate-backend/internal/data/repos/query"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
)

// CategoryRows is the shared knowledge a deep pass contributes for a category.
type CategoryRows struct {
	MarketData      *types.MarketData
	FailureCases    []*types.FailureCase
	SuccessCases    []*types.SuccessCase
	RegulatoryItems []*types.RegulatoryItem
	Trends          []*types.MarketTrend
	FundingSources  []*types.FundingSource
	Benchmarks      []*types.Benchmark
}

// InsertCounts reports how many rows of each kind were new. Rows whose
// natural key already existed are skipped and not counted.
type InsertCounts struct {
	MarketData      int64
	FailureCases    int64
	SuccessCases    int64
	RegulatoryItems int64
	Trends          int64
	FundingSources  int64
	Benchmarks      int64
}

func (c InsertCounts) Total() int64 {
	return c.MarketData + c.FailureCases + c.SuccessCases + c.RegulatoryItems + c.Trends + c.FundingSources + c.Benchmarks
}

type CategoryKnowledgeRepo interface {
	InsertIfAbsent(dbc dbctx.Context, rows *CategoryRows) (InsertCounts, error)

	GetMarketData(dbc dbctx.Context, category string) (*types.MarketData, error)
	ListFailureCases(dbc dbctx.Context, category string) ([]*types.FailureCase, error)
	ListSuccessCases(dbc dbctx.Context, category string) ([]*types.SuccessCase, error)
	ListRegulatoryItems(dbc dbctx.Context, category string) ([]*types.RegulatoryItem, error)
	ListTrends(dbc dbctx.Context, category string) ([]*types.MarketTrend, error)
	ListBenchmarks(dbc dbctx.Context, category, stage string) ([]*types.Benchmark, error)
	ListFundingSources(dbc dbctx.Context, limit int) ([]*types.FundingSource, error)
}

type categoryKnowledgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCategoryKnowledgeRepo(db *gorm.DB, baseLog *logger.Logger) CategoryKnowledgeRepo {
	return &categoryKnowledgeRepo{db: db, log: baseLog.With("repo", "CategoryKnowledgeRepo")}
}

func (r *categoryKnowledgeRepo) InsertIfAbsent(dbc dbctx.Context, rows *CategoryRows) (InsertCounts, error) {
	var out InsertCounts
	if rows == nil {
		return out, nil
	}
	var err error
	if rows.MarketData != nil {
		if rows.MarketData.ID == uuid.Nil {
			rows.MarketData.ID = uuid.New()
		}
		if out.MarketData, err = query.InsertIgnoringConflicts(dbc, r.db, []*types.MarketData{rows.MarketData}, "category"); err != nil {
			return out, err
		}
	}
	if out.FailureCases, err = query.InsertIgnoringConflicts(dbc, r.db, dedupe(rows.FailureCases, func(x *types.FailureCase) string { return x.Category + "\x00" + x.StartupName }), "category", "startup_name"); err != nil {
		return out, err
	}
	if out.SuccessCases, err = query.InsertIgnoringConflicts(dbc, r.db, dedupe(rows.SuccessCases, func(x *types.SuccessCase) string { return x.Category + "\x00" + x.StartupName }), "category", "startup_name"); err != nil {
		return out, err
	}
	if out.RegulatoryItems, err = query.InsertIgnoringConflicts(dbc, r.db, dedupe(rows.RegulatoryItems, func(x *types.RegulatoryItem) string { return x.Category + "\x00" + x.RequirementName }), "category", "requirement_name"); err != nil {
		return out, err
	}
	if out.Trends, err = query.InsertIgnoringConflicts(dbc, r.db, dedupe(rows.Trends, func(x *types.MarketTrend) string { return x.Category + "\x00" + x.TrendName }), "category", "trend_name"); err != nil {
		return out, err
	}
	if out.FundingSources, err = query.InsertIgnoringConflicts(dbc, r.db, dedupe(rows.FundingSources, func(x *types.FundingSource) string { return x.Name }), "name"); err != nil {
		return out, err
	}
	if out.Benchmarks, err = query.InsertIgnoringConflicts(dbc, r.db, dedupe(rows.Benchmarks, func(x *types.Benchmark) string { return x.Category + "\x00" + x.Stage + "\x00" + x.MetricName }), "category", "stage", "metric_name"); err != nil {
		return out, err
	}
	return out, nil
}

// dedupe drops later rows sharing a natural key. Postgres rejects an
// ON CONFLICT statement that touches the same key twice.
func dedupe[T any](rows []*T, key func(*T) string) []*T {
	if len(rows) < 2 {
		return rows
	}
	seen := make(map[string]struct{}, len(rows))
	out := rows[:0:0]
	for _, row := range rows {
		if row == nil {
			continue
		}
		k := key(row)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, row)
	}
	return out
}

func (r *categoryKnowledgeRepo) GetMarketData(dbc dbctx.Context, category string) (*types.MarketData, error) {
	return query.First[types.MarketData](dbc, r.db, "", "category = ?", category)
}

func (r *categoryKnowledgeRepo) ListFailureCases(dbc dbctx.Context, category string) ([]*types.FailureCase, error) {
	return query.List[types.FailureCase](dbc, r.db, "created_at ASC, startup_name ASC", "category = ?", category)
}

func (r *categoryKnowledgeRepo) ListSuccessCases(dbc dbctx.Context, category string) ([]*types.SuccessCase, error) {
	return query.List[types.SuccessCase](dbc, r.db, "created_at ASC, startup_name ASC", "category = ?", category)
}

func (r *categoryKnowledgeRepo) ListRegulatoryItems(dbc dbctx.Context, category string) ([]*types.RegulatoryItem, error) {
	return query.List[types.RegulatoryItem](dbc, r.db, "requirement_name ASC", "category = ?", category)
}

func (r *categoryKnowledgeRepo) ListTrends(dbc dbctx.Context, category string) ([]*types.MarketTrend, error) {
	return query.List[types.MarketTrend](dbc, r.db, "created_at ASC, trend_name ASC", "category = ?", category)
}

func (r *categoryKnowledgeRepo) ListBenchmarks(dbc dbctx.Context, category, stage string) ([]*types.Benchmark, error) {
	return query.List[types.Benchmark](dbc, r.db, "metric_name ASC", "category = ? AND stage = ?", category, stage)
}

func (r *categoryKnowledgeRepo) ListFundingSources(dbc dbctx.Context, limit int) ([]*types.FundingSource, error) {
	var out []*types.FundingSource
	q := dbc.DB(r.db).Order("created_at ASC, name ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

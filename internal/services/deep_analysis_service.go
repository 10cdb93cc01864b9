package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/yungbote/medvalidate-backend/internal/analysis"
	"github.com/yungbote/medvalidate-backend/internal/analysis/projection"
	"github.com/yungbote/medvalidate-backend/internal/data/repos"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/observability"
	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
	"github.com/yungbote/medvalidate-backend/internal/platform/redislock"
)

// fundingSourceLimit caps the global funding list attached to a projection.
const fundingSourceLimit = 50

type DeepAnalysisService interface {
	// RunDeepAnalysis runs the deep pass unless the idea is already fully
	// analyzed. It reports whether a pass ran.
	RunDeepAnalysis(ctx context.Context, userID uuid.UUID, ideaID uuid.UUID) (bool, error)
	// GetFullAnalysis runs the deep pass if needed and returns the stored view.
	GetFullAnalysis(ctx context.Context, userID uuid.UUID, ideaID uuid.UUID) (*projection.FullAnalysis, error)
}

type DeepAnalysisServiceDeps struct {
	Ideas     repos.IdeaRepo
	Own       repos.IdeaKnowledgeRepo
	Shared    repos.CategoryKnowledgeRepo
	Generator analysis.Generator
	Locker    redislock.Locker
	LockTTL   time.Duration
}

type deepAnalysisService struct {
	db  *gorm.DB
	log *logger.Logger

	ideas     repos.IdeaRepo
	own       repos.IdeaKnowledgeRepo
	shared    repos.CategoryKnowledgeRepo
	generator analysis.Generator
	locker    redislock.Locker
	lockTTL   time.Duration

	now func() time.Time
}

func NewDeepAnalysisService(db *gorm.DB, baseLog *logger.Logger, deps DeepAnalysisServiceDeps) DeepAnalysisService {
	ttl := deps.LockTTL
	if ttl <= 0 {
		ttl = defaultAnalysisLockTTL
	}
	locker := deps.Locker
	if locker == nil {
		locker = redislock.NewLocalLocker()
	}
	return &deepAnalysisService{
		db:        db,
		log:       baseLog.With("service", "DeepAnalysisService"),
		ideas:     deps.Ideas,
		own:       deps.Own,
		shared:    deps.Shared,
		generator: deps.Generator,
		locker:    locker,
		lockTTL:   ttl,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *deepAnalysisService) RunDeepAnalysis(ctx context.Context, userID uuid.UUID, ideaID uuid.UUID) (bool, error) {
	idea, err := loadOwnedIdea(dbctx.Context{Ctx: ctx}, s.ideas, userID, ideaID)
	if err != nil {
		return false, err
	}
	if idea.FullyAnalyzed {
		return false, nil
	}
	start := time.Now()
	ran, err := s.runDeepPass(ctx, idea)
	outcome := analysisOutcome(err)
	if err == nil && !ran {
		outcome = "skipped"
	}
	observability.Current().ObserveAnalysis(analysis.PassDeep, outcome, time.Since(start))
	return ran, err
}

func (s *deepAnalysisService) runDeepPass(ctx context.Context, idea *types.Idea) (bool, error) {
	ideaID := idea.ID

	release, err := s.locker.Acquire(ctx, "idea-deep-analysis:"+ideaID.String(), s.lockTTL)
	if err != nil {
		if errors.Is(err, redislock.ErrNotAcquired) {
			return false, fmt.Errorf("idea %s: %w", ideaID, types.ErrAnalysisInProgress)
		}
		return false, err
	}
	defer release()

	res, err := s.generator.GenerateDeep(ctx, idea)
	if err != nil {
		s.log.Warn("deep analysis generation failed", "idea_id", ideaID.String(), "err", err.Error())
		return false, err
	}
	own, shared, err := buildDeepRows(idea, res, s.now())
	if err != nil {
		return false, &types.AnalysisFailure{Kind: types.FailurePersistence, Pass: analysis.PassDeep, Err: err}
	}

	ran := false
	var counts repos.CategoryInsertCounts
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		locked, err := s.ideas.LockByID(dbc, ideaID)
		if err != nil {
			return err
		}
		if locked == nil {
			return fmt.Errorf("idea %s: %w", ideaID, types.ErrNotFound)
		}
		if locked.FullyAnalyzed {
			return nil
		}
		if err := s.own.DeleteByIdeaID(dbc, ideaID); err != nil {
			return fmt.Errorf("clear deep analysis rows: %w", err)
		}
		if err := s.own.Create(dbc, own); err != nil {
			return fmt.Errorf("store deep analysis rows: %w", err)
		}
		counts, err = s.shared.InsertIfAbsent(dbc, shared)
		if err != nil {
			return fmt.Errorf("store category knowledge: %w", err)
		}
		if err := s.ideas.UpdateFields(dbc, ideaID, map[string]interface{}{"fully_analyzed": true}); err != nil {
			return fmt.Errorf("mark idea fully analyzed: %w", err)
		}
		ran = true
		return nil
	})
	if err != nil {
		if errors.Is(err, types.ErrNotFound) {
			return false, err
		}
		s.log.Warn("deep analysis rolled back", "idea_id", ideaID.String(), "err", err.Error())
		return false, &types.AnalysisFailure{Kind: types.FailurePersistence, Pass: analysis.PassDeep, Retryable: true, Err: err}
	}
	if ran {
		s.log.Info("deep analysis stored",
			"idea_id", ideaID.String(),
			"category", idea.Category,
			"competitors", len(own.Competitors),
			"shared_rows_inserted", counts.Total(),
		)
	}
	return ran, nil
}

func (s *deepAnalysisService) GetFullAnalysis(ctx context.Context, userID uuid.UUID, ideaID uuid.UUID) (*projection.FullAnalysis, error) {
	if _, err := s.RunDeepAnalysis(ctx, userID, ideaID); err != nil {
		return nil, err
	}
	idea, err := s.ideas.GetByID(dbctx.Context{Ctx: ctx}, ideaID)
	if err != nil {
		return nil, fmt.Errorf("load idea: %w", err)
	}
	if idea == nil {
		return nil, fmt.Errorf("idea %s: %w", ideaID, types.ErrNotFound)
	}
	rows, err := s.loadFullRows(ctx, idea)
	if err != nil {
		return nil, err
	}
	return projection.BuildFullAnalysis(*rows), nil
}

// loadFullRows fans the read out: idea-keyed tables by id, category-keyed
// tables by the idea's category (benchmarks also by stage).
func (s *deepAnalysisService) loadFullRows(ctx context.Context, idea *types.Idea) (*projection.FullRows, error) {
	rows := &projection.FullRows{Idea: idea}
	category := strings.TrimSpace(idea.Category)
	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.Context{Ctx: gctx}

	g.Go(func() (err error) {
		rows.Competitors, err = s.own.ListCompetitors(dbc, idea.ID)
		return wrapRead("competitors", err)
	})
	g.Go(func() (err error) {
		rows.Risks, err = s.own.ListRisks(dbc, idea.ID)
		return wrapRead("risks", err)
	})
	g.Go(func() (err error) {
		rows.Recommendations, err = s.own.ListRecommendations(dbc, idea.ID)
		return wrapRead("strategic recommendations", err)
	})
	g.Go(func() (err error) {
		rows.Segments, err = s.own.ListSegments(dbc, idea.ID)
		return wrapRead("customer segments", err)
	})
	g.Go(func() (err error) {
		rows.Report, err = s.own.GetDetailedReport(dbc, idea.ID)
		return wrapRead("detailed report", err)
	})
	g.Go(func() (err error) {
		rows.FundingSources, err = s.shared.ListFundingSources(dbc, fundingSourceLimit)
		return wrapRead("funding sources", err)
	})
	if category != "" {
		g.Go(func() (err error) {
			rows.MarketData, err = s.shared.GetMarketData(dbc, category)
			return wrapRead("market data", err)
		})
		g.Go(func() (err error) {
			rows.FailureCases, err = s.shared.ListFailureCases(dbc, category)
			return wrapRead("failure cases", err)
		})
		g.Go(func() (err error) {
			rows.SuccessCases, err = s.shared.ListSuccessCases(dbc, category)
			return wrapRead("success cases", err)
		})
		g.Go(func() (err error) {
			rows.RegulatoryItems, err = s.shared.ListRegulatoryItems(dbc, category)
			return wrapRead("regulatory items", err)
		})
		g.Go(func() (err error) {
			rows.Trends, err = s.shared.ListTrends(dbc, category)
			return wrapRead("market trends", err)
		})
		g.Go(func() (err error) {
			rows.Benchmarks, err = s.shared.ListBenchmarks(dbc, category, strings.TrimSpace(idea.Stage))
			return wrapRead("benchmarks", err)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func wrapRead(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("load %s: %w", what, err)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/medvalidate-backend/internal/analysis"
	"github.com/yungbote/medvalidate-backend/internal/analysis/projection"
	"github.com/yungbote/medvalidate-backend/internal/data/db"
	"github.com/yungbote/medvalidate-backend/internal/data/repos"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/observability"
	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
	"github.com/yungbote/medvalidate-backend/internal/platform/objectstore"
	"github.com/yungbote/medvalidate-backend/internal/platform/redislock"
)

const (
	AnalysisStatusCompleted = "completed"
	AnalysisStatusPending   = "pending"
	AnalysisStatusFailed    = "failed"
)

const defaultAnalysisLockTTL = 3 * time.Minute

// IdeaSubmission is the user-supplied part of a new idea.
type IdeaSubmission struct {
	Title                  string   `json:"title"`
	Description            string   `json:"description"`
	ProblemStatement       string   `json:"problem_statement"`
	TargetAudience         string   `json:"target_audience"`
	UniqueValueProposition string   `json:"unique_value_proposition"`
	Category               string   `json:"category"`
	Domain                 string   `json:"domain"`
	Subdomain              string   `json:"subdomain"`
	Stage                  string   `json:"stage"`
	TeamSize               string   `json:"team_size"`
	FundingNeeded          string   `json:"funding_needed"`
}

// AnalysisOutcome is what create and re-analyze return. Analysis failures are
// reported here with Success=false rather than as an error.
type AnalysisOutcome struct {
	Success        bool                   `json:"success"`
	Idea           *types.Idea            `json:"idea,omitempty"`
	Result         *projection.IdeaResult `json:"result,omitempty"`
	Error          string                 `json:"error,omitempty"`
	AnalysisStatus string                 `json:"analysisStatus"`
	Failure        *types.AnalysisFailure `json:"-"`
}

type IdeaService interface {
	CreateIdea(ctx context.Context, userID uuid.UUID, in IdeaSubmission) (*AnalysisOutcome, error)
	ReanalyzeIdea(ctx context.Context, userID uuid.UUID, ideaID uuid.UUID) (*AnalysisOutcome, error)
	ListIdeas(ctx context.Context, userID uuid.UUID) ([]*projection.IdeaResult, error)
	GetIdea(ctx context.Context, userID uuid.UUID, ideaID uuid.UUID) (*projection.IdeaResult, error)
	DeleteIdea(ctx context.Context, userID uuid.UUID, ideaID uuid.UUID) error
}

type IdeaServiceDeps struct {
	Ideas     repos.IdeaRepo
	Scores    repos.ScoreRepo
	Checks    repos.ComplianceCheckRepo
	Insights  repos.AIInsightRepo
	Reports   repos.ReportRepo
	Purger    IdeaPurger
	Saga      SagaService
	Generator analysis.Generator
	Locker    redislock.Locker
	Bucket    objectstore.BucketService
	LockTTL   time.Duration
}

type ideaService struct {
	db  *gorm.DB
	log *logger.Logger

	ideas     repos.IdeaRepo
	scores    repos.ScoreRepo
	checks    repos.ComplianceCheckRepo
	insights  repos.AIInsightRepo
	reports   repos.ReportRepo
	purger    IdeaPurger
	saga      SagaService
	generator analysis.Generator
	locker    redislock.Locker
	bucket    objectstore.BucketService
	lockTTL   time.Duration

	now func() time.Time
}

func NewIdeaService(db *gorm.DB, baseLog *logger.Logger, deps IdeaServiceDeps) IdeaService {
	ttl := deps.LockTTL
	if ttl <= 0 {
		ttl = defaultAnalysisLockTTL
	}
	locker := deps.Locker
	if locker == nil {
		locker = redislock.NewLocalLocker()
	}
	return &ideaService{
		db:        db,
		log:       baseLog.With("service", "IdeaService"),
		ideas:     deps.Ideas,
		scores:    deps.Scores,
		checks:    deps.Checks,
		insights:  deps.Insights,
		reports:   deps.Reports,
		purger:    deps.Purger,
		saga:      deps.Saga,
		generator: deps.Generator,
		locker:    locker,
		bucket:    deps.Bucket,
		lockTTL:   ttl,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func (s *ideaService) CreateIdea(ctx context.Context, userID uuid.UUID, in IdeaSubmission) (*AnalysisOutcome, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("missing user id: %w", types.ErrInvalidArgument)
	}
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, fmt.Errorf("title is required: %w", types.ErrInvalidArgument)
	}

	now := s.now()
	idea := &types.Idea{
		ID:                     uuid.New(),
		UserID:                 userID,
		Title:                  in.Title,
		Description:            strings.TrimSpace(in.Description),
		ProblemStatement:       strings.TrimSpace(in.ProblemStatement),
		TargetAudience:         strings.TrimSpace(in.TargetAudience),
		UniqueValueProposition: strings.TrimSpace(in.UniqueValueProposition),
		Category:               strings.TrimSpace(in.Category),
		Domain:                 strings.TrimSpace(in.Domain),
		Subdomain:              strings.TrimSpace(in.Subdomain),
		Stage:                  strings.TrimSpace(in.Stage),
		TeamSize:               strings.TrimSpace(in.TeamSize),
		FundingNeeded:          strings.TrimSpace(in.FundingNeeded),
		Status:                 types.IdeaStatusPending,
		SubmittedAt:            now,
		UpdatedAt:              now,
	}

	// The idea commits before generation; its saga deletes it again if the
	// first analysis never completes.
	var sagaID uuid.UUID
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.ideas.Create(dbc, idea); err != nil {
			return fmt.Errorf("create idea: %w", err)
		}
		id, err := s.saga.CreateOrGetSaga(dbc, userID, SagaOperationIdeaSubmission, idea.ID)
		if err != nil {
			return err
		}
		sagaID = id
		return s.saga.AppendAction(dbc, sagaID, SagaActionKindIdeaDelete, map[string]any{"idea_id": idea.ID.String()})
	})
	if err != nil {
		return nil, err
	}

	if err := s.runBasicPass(ctx, idea.ID, false, sagaID); err != nil {
		af := asPersistenceFailure(err)
		s.log.Warn("first analysis failed; removing idea",
			"idea_id", idea.ID.String(),
			"kind", string(af.Kind),
			"retryable", af.Retryable,
			"err", err.Error(),
		)
		if cerr := s.saga.Compensate(context.WithoutCancel(ctx), sagaID); cerr != nil {
			s.log.Error("idea submission compensation failed", "idea_id", idea.ID.String(), "saga_id", sagaID.String(), "err", cerr.Error())
		}
		return &AnalysisOutcome{
			Success:        false,
			Error:          failureMessage(af),
			AnalysisStatus: AnalysisStatusFailed,
			Failure:        af,
		}, nil
	}

	res, stored, err := s.loadResult(ctx, idea.ID)
	if err != nil {
		return nil, err
	}
	return &AnalysisOutcome{Success: true, Idea: stored, Result: res, AnalysisStatus: AnalysisStatusCompleted}, nil
}

func (s *ideaService) ReanalyzeIdea(ctx context.Context, userID uuid.UUID, ideaID uuid.UUID) (*AnalysisOutcome, error) {
	if _, err := s.ownedIdea(ctx, userID, ideaID); err != nil {
		return nil, err
	}

	if err := s.runBasicPass(ctx, ideaID, true, uuid.Nil); err != nil {
		if errors.Is(err, types.ErrAnalysisInProgress) {
			return nil, err
		}
		af := asPersistenceFailure(err)
		s.log.Warn("re-analysis failed; idea kept pending",
			"idea_id", ideaID.String(),
			"kind", string(af.Kind),
			"err", err.Error(),
		)
		if uerr := s.ideas.UpdateFields(dbctx.Context{Ctx: context.WithoutCancel(ctx)}, ideaID, map[string]interface{}{
			"last_analysis_error": failureMessage(af),
		}); uerr != nil {
			s.log.Error("record analysis error failed", "idea_id", ideaID.String(), "err", uerr.Error())
		}
		res, stored, lerr := s.loadResult(ctx, ideaID)
		if lerr != nil {
			return nil, lerr
		}
		return &AnalysisOutcome{
			Success:        false,
			Idea:           stored,
			Result:         res,
			Error:          failureMessage(af),
			AnalysisStatus: AnalysisStatusPending,
			Failure:        af,
		}, nil
	}

	res, stored, err := s.loadResult(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	return &AnalysisOutcome{Success: true, Idea: stored, Result: res, AnalysisStatus: AnalysisStatusCompleted}, nil
}

// runBasicPass drives one basic analysis under the idea's lock. reset clears
// the previous result first. sagaID, when set, is completed in the same
// transaction as the result rows.
func (s *ideaService) runBasicPass(ctx context.Context, ideaID uuid.UUID, reset bool, sagaID uuid.UUID) (err error) {
	start := time.Now()
	defer func() {
		observability.Current().ObserveAnalysis(analysis.PassBasic, analysisOutcome(err), time.Since(start))
	}()

	release, err := s.locker.Acquire(ctx, analysisLockKey(ideaID), s.lockTTL)
	if err != nil {
		if errors.Is(err, redislock.ErrNotAcquired) {
			return fmt.Errorf("idea %s: %w", ideaID, types.ErrAnalysisInProgress)
		}
		return &types.AnalysisFailure{Kind: types.FailurePersistence, Pass: analysis.PassBasic, Retryable: true, Err: err}
	}
	defer release()

	if reset {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			dbc := dbctx.Context{Ctx: ctx, Tx: tx}
			if err := s.scores.DeleteByIdeaID(dbc, ideaID); err != nil {
				return err
			}
			if err := s.checks.DeleteByIdeaID(dbc, ideaID); err != nil {
				return err
			}
			if err := s.insights.DeleteByIdeaID(dbc, ideaID); err != nil {
				return err
			}
			return s.ideas.UpdateFields(dbc, ideaID, map[string]interface{}{
				"status":              types.IdeaStatusPending,
				"last_analysis_error": "",
			})
		})
		if err != nil {
			return &types.AnalysisFailure{Kind: types.FailurePersistence, Pass: analysis.PassBasic, Retryable: true, Err: err}
		}
	} else {
		existing, err := s.scores.GetByIdeaID(dbctx.Context{Ctx: ctx}, ideaID)
		if err != nil {
			return &types.AnalysisFailure{Kind: types.FailurePersistence, Pass: analysis.PassBasic, Retryable: true, Err: err}
		}
		if existing != nil {
			s.log.Debug("score already present; skipping generation", "idea_id", ideaID.String())
			return s.finishWithoutWrite(ctx, ideaID, sagaID)
		}
	}

	idea, err := s.ideas.GetByID(dbctx.Context{Ctx: ctx}, ideaID)
	if err != nil {
		return &types.AnalysisFailure{Kind: types.FailurePersistence, Pass: analysis.PassBasic, Retryable: true, Err: err}
	}
	if idea == nil {
		return &types.AnalysisFailure{Kind: types.FailurePersistence, Pass: analysis.PassBasic, Err: fmt.Errorf("idea %s: %w", ideaID, types.ErrNotFound)}
	}

	res, err := s.generator.GenerateBasic(ctx, idea)
	if err != nil {
		return err
	}

	rows, err := buildBasicRows(ideaID, res, s.now())
	if err != nil {
		return &types.AnalysisFailure{Kind: types.FailurePersistence, Pass: analysis.PassBasic, Err: err}
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		stored, err := s.scores.InsertIfAbsent(dbc, rows.Score)
		if err != nil {
			return fmt.Errorf("insert score: %w", err)
		}
		if !stored {
			// A concurrent pass won; its rows stand.
			s.log.Info("score written by a concurrent analysis", "idea_id", ideaID.String())
		} else {
			if err := s.checks.Create(dbc, rows.Checks); err != nil {
				return fmt.Errorf("insert compliance checks: %w", err)
			}
			if err := s.insights.Replace(dbc, rows.Insight); err != nil {
				return fmt.Errorf("store ai insight: %w", err)
			}
			if err := s.ideas.UpdateFields(dbc, ideaID, map[string]interface{}{
				"status":              types.IdeaStatusProcessed,
				"last_analysis_error": "",
			}); err != nil {
				return fmt.Errorf("mark idea processed: %w", err)
			}
		}
		if sagaID != uuid.Nil {
			return s.saga.CompleteSaga(dbc, sagaID)
		}
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			s.log.Warn("basic analysis collided with a concurrent writer", "idea_id", ideaID.String(), "error", err)
		}
		return &types.AnalysisFailure{Kind: types.FailurePersistence, Pass: analysis.PassBasic, Retryable: true, Err: err}
	}

	s.log.Info("basic analysis stored",
		"idea_id", ideaID.String(),
		"readiness_score", rows.Score.ReadinessScore,
		"checks", len(rows.Checks),
	)
	return nil
}

func (s *ideaService) finishWithoutWrite(ctx context.Context, ideaID uuid.UUID, sagaID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.ideas.UpdateFields(dbc, ideaID, map[string]interface{}{"status": types.IdeaStatusProcessed}); err != nil {
			return err
		}
		if sagaID != uuid.Nil {
			return s.saga.CompleteSaga(dbc, sagaID)
		}
		return nil
	})
	if err != nil {
		return &types.AnalysisFailure{Kind: types.FailurePersistence, Pass: analysis.PassBasic, Retryable: true, Err: err}
	}
	return nil
}

func (s *ideaService) ListIdeas(ctx context.Context, userID uuid.UUID) ([]*projection.IdeaResult, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("missing user id: %w", types.ErrInvalidArgument)
	}
	dbc := dbctx.Context{Ctx: ctx}
	ideas, err := s.ideas.ListByUserID(dbc, userID)
	if err != nil {
		return nil, fmt.Errorf("list ideas: %w", err)
	}
	if len(ideas) == 0 {
		return []*projection.IdeaResult{}, nil
	}
	ids := make([]uuid.UUID, 0, len(ideas))
	for _, i := range ideas {
		ids = append(ids, i.ID)
	}
	scores, err := s.scores.GetByIdeaIDs(dbc, ids)
	if err != nil {
		return nil, fmt.Errorf("load scores: %w", err)
	}
	checks, err := s.checks.ListByIdeaIDs(dbc, ids)
	if err != nil {
		return nil, fmt.Errorf("load compliance checks: %w", err)
	}
	insights, err := s.insights.GetByIdeaIDs(dbc, ids)
	if err != nil {
		return nil, fmt.Errorf("load ai insights: %w", err)
	}
	out := make([]*projection.IdeaResult, 0, len(ideas))
	for _, i := range ideas {
		out = append(out, projection.BuildIdeaResult(i, scores[i.ID], checks[i.ID], insights[i.ID]))
	}
	return out, nil
}

func (s *ideaService) GetIdea(ctx context.Context, userID uuid.UUID, ideaID uuid.UUID) (*projection.IdeaResult, error) {
	if _, err := s.ownedIdea(ctx, userID, ideaID); err != nil {
		return nil, err
	}
	res, _, err := s.loadResult(ctx, ideaID)
	return res, err
}

func (s *ideaService) DeleteIdea(ctx context.Context, userID uuid.UUID, ideaID uuid.UUID) error {
	if _, err := s.ownedIdea(ctx, userID, ideaID); err != nil {
		return err
	}
	rep, err := s.reports.GetByIdeaID(dbctx.Context{Ctx: ctx}, ideaID)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.purger.PurgeIdea(dbctx.Context{Ctx: ctx, Tx: tx}, ideaID)
	})
	if err != nil {
		return err
	}
	if rep != nil && rep.FileKey != "" && s.bucket != nil {
		if err := s.bucket.DeleteFile(dbctx.Context{Ctx: ctx}, objectstore.BucketCategoryReport, rep.FileKey); err != nil && !objectstore.IsNotFound(err) {
			s.log.Warn("failed to delete report object (ignored)", "idea_id", ideaID.String(), "key", rep.FileKey, "err", err.Error())
		}
	}
	s.log.Info("idea deleted", "idea_id", ideaID.String())
	return nil
}

func (s *ideaService) ownedIdea(ctx context.Context, userID, ideaID uuid.UUID) (*types.Idea, error) {
	return loadOwnedIdea(dbctx.Context{Ctx: ctx}, s.ideas, userID, ideaID)
}

func (s *ideaService) loadResult(ctx context.Context, ideaID uuid.UUID) (*projection.IdeaResult, *types.Idea, error) {
	dbc := dbctx.Context{Ctx: ctx}
	idea, err := s.ideas.GetByID(dbc, ideaID)
	if err != nil {
		return nil, nil, fmt.Errorf("load idea: %w", err)
	}
	if idea == nil {
		return nil, nil, fmt.Errorf("idea %s: %w", ideaID, types.ErrNotFound)
	}
	score, err := s.scores.GetByIdeaID(dbc, ideaID)
	if err != nil {
		return nil, nil, fmt.Errorf("load score: %w", err)
	}
	checks, err := s.checks.ListByIdeaID(dbc, ideaID)
	if err != nil {
		return nil, nil, fmt.Errorf("load compliance checks: %w", err)
	}
	insight, err := s.insights.GetByIdeaID(dbc, ideaID)
	if err != nil {
		return nil, nil, fmt.Errorf("load ai insight: %w", err)
	}
	return projection.BuildIdeaResult(idea, score, checks, insight), idea, nil
}

func loadOwnedIdea(dbc dbctx.Context, ideas repos.IdeaRepo, userID, ideaID uuid.UUID) (*types.Idea, error) {
	if userID == uuid.Nil || ideaID == uuid.Nil {
		return nil, fmt.Errorf("missing user or idea id: %w", types.ErrInvalidArgument)
	}
	idea, err := ideas.GetByID(dbc, ideaID)
	if err != nil {
		return nil, fmt.Errorf("load idea: %w", err)
	}
	if idea == nil {
		return nil, fmt.Errorf("idea %s: %w", ideaID, types.ErrNotFound)
	}
	if idea.UserID != userID {
		return nil, fmt.Errorf("idea %s: %w", ideaID, types.ErrForbidden)
	}
	return idea, nil
}

func analysisLockKey(ideaID uuid.UUID) string {
	return "idea-analysis:" + ideaID.String()
}

// asPersistenceFailure returns err's AnalysisFailure, or wraps err as a
// persistence failure.
func asPersistenceFailure(err error) *types.AnalysisFailure {
	if af, ok := types.AsAnalysisFailure(err); ok {
		return af
	}
	return &types.AnalysisFailure{Kind: types.FailurePersistence, Pass: analysis.PassBasic, Err: err}
}

// analysisOutcome labels a pass result for metrics.
func analysisOutcome(err error) string {
	if err == nil {
		return "stored"
	}
	if errors.Is(err, types.ErrAnalysisInProgress) {
		return "in_progress"
	}
	if af, ok := types.AsAnalysisFailure(err); ok {
		return string(af.Kind)
	}
	return "error"
}

func failureMessage(af *types.AnalysisFailure) string {
	if af == nil {
		return "analysis failed"
	}
	switch af.Kind {
	case types.FailureGeneration:
		return "AI analysis could not be generated. Please try again."
	case types.FailureValidation:
		return "AI analysis returned an incomplete result. Please try again."
	default:
		return "Analysis results could not be saved. Please try again."
	}
}

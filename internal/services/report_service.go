package services

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/medvalidate-backend/internal/analysis/pdfreport"
	"github.com/yungbote/medvalidate-backend/internal/data/repos"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/observability"
	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
	"github.com/yungbote/medvalidate-backend/internal/platform/objectstore"
)

type ReportService interface {
	// GetOrCreateReport returns the idea's stored report, rendering and
	// uploading one first when none exists.
	GetOrCreateReport(ctx context.Context, userID uuid.UUID, ideaID uuid.UUID) (*types.Report, error)
	DeleteReport(ctx context.Context, userID uuid.UUID, reportID uuid.UUID) error
}

type ReportServiceDeps struct {
	Ideas   repos.IdeaRepo
	Reports repos.ReportRepo
	Saga    SagaService
	Bucket  objectstore.BucketService
	Idea    IdeaService
	Deep    DeepAnalysisService
}

type reportService struct {
	db  *gorm.DB
	log *logger.Logger

	ideas   repos.IdeaRepo
	reports repos.ReportRepo
	saga    SagaService
	bucket  objectstore.BucketService
	idea    IdeaService
	deep    DeepAnalysisService

	now func() time.Time
}

func NewReportService(db *gorm.DB, baseLog *logger.Logger, deps ReportServiceDeps) ReportService {
	return &reportService{
		db:      db,
		log:     baseLog.With("service", "ReportService"),
		ideas:   deps.Ideas,
		reports: deps.Reports,
		saga:    deps.Saga,
		bucket:  deps.Bucket,
		idea:    deps.Idea,
		deep:    deps.Deep,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *reportService) GetOrCreateReport(ctx context.Context, userID uuid.UUID, ideaID uuid.UUID) (*types.Report, error) {
	if s.bucket == nil {
		return nil, fmt.Errorf("bucket service unavailable")
	}
	existing, err := s.existingReport(ctx, userID, ideaID)
	if err != nil || existing != nil {
		return existing, err
	}
	idea, err := loadOwnedIdea(dbctx.Context{Ctx: ctx}, s.ideas, userID, ideaID)
	if err != nil {
		return nil, err
	}

	full, err := s.deep.GetFullAnalysis(ctx, userID, ideaID)
	if err != nil {
		return nil, err
	}
	basic, err := s.idea.GetIdea(ctx, userID, ideaID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	pdf, err := pdfreport.Render(pdfreport.Input{Full: full, Basic: basic, GeneratedAt: now})
	if err != nil {
		return nil, err
	}

	reportID := uuid.New()
	key := ReportKey(idea.Title, now)

	// The object cannot join the row's transaction; the saga deletes it
	// again if the row never lands.
	var sagaID uuid.UUID
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		id, err := s.saga.CreateOrGetSaga(dbc, userID, SagaOperationReportGeneration, reportID)
		if err != nil {
			return err
		}
		sagaID = id
		return s.saga.AppendAction(dbc, sagaID, SagaActionKindObjectDelete, map[string]any{
			"category": string(objectstore.BucketCategoryReport),
			"key":      key,
		})
	})
	if err != nil {
		return nil, err
	}

	if err := s.bucket.UploadFile(dbctx.Context{Ctx: ctx}, objectstore.BucketCategoryReport, key, bytes.NewReader(pdf)); err != nil {
		s.compensate(ctx, sagaID)
		return nil, fmt.Errorf("upload report: %w", err)
	}

	row := &types.Report{
		ID:          reportID,
		IdeaID:      ideaID,
		UserID:      userID,
		FileKey:     key,
		FileURL:     s.bucket.GetPublicURL(objectstore.BucketCategoryReport, key),
		GeneratedAt: now,
	}
	stored := false
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		ok, err := s.reports.InsertIfAbsent(dbc, row)
		if err != nil {
			return fmt.Errorf("insert report: %w", err)
		}
		stored = ok
		if !ok {
			return nil
		}
		return s.saga.CompleteSaga(dbc, sagaID)
	})
	if err != nil {
		s.compensate(ctx, sagaID)
		return nil, err
	}
	if !stored {
		// A concurrent request stored its report first; drop our object.
		s.compensate(ctx, sagaID)
		return s.existingReport(ctx, userID, ideaID)
	}

	observability.Current().IncReportGenerated()
	s.log.Info("report generated", "idea_id", ideaID.String(), "report_id", reportID.String(), "key", key, "bytes", len(pdf))
	return row, nil
}

func (s *reportService) DeleteReport(ctx context.Context, userID uuid.UUID, reportID uuid.UUID) error {
	if userID == uuid.Nil || reportID == uuid.Nil {
		return fmt.Errorf("missing user or report id: %w", types.ErrInvalidArgument)
	}
	dbc := dbctx.Context{Ctx: ctx}
	rep, err := s.reports.GetByID(dbc, reportID)
	if err != nil {
		return fmt.Errorf("load report: %w", err)
	}
	if rep == nil {
		return fmt.Errorf("report %s: %w", reportID, types.ErrNotFound)
	}
	if rep.UserID != userID {
		return fmt.Errorf("report %s: %w", reportID, types.ErrForbidden)
	}
	if rep.FileKey != "" && s.bucket != nil {
		if err := s.bucket.DeleteFile(dbc, objectstore.BucketCategoryReport, rep.FileKey); err != nil && !objectstore.IsNotFound(err) {
			s.log.Warn("failed to delete report object (ignored)", "report_id", reportID.String(), "key", rep.FileKey, "err", err.Error())
		}
	}
	if err := s.reports.DeleteByID(dbc, reportID); err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	return nil
}

func (s *reportService) existingReport(ctx context.Context, userID, ideaID uuid.UUID) (*types.Report, error) {
	if userID == uuid.Nil || ideaID == uuid.Nil {
		return nil, fmt.Errorf("missing user or idea id: %w", types.ErrInvalidArgument)
	}
	rep, err := s.reports.GetByIdeaID(dbctx.Context{Ctx: ctx}, ideaID)
	if err != nil {
		return nil, fmt.Errorf("load report: %w", err)
	}
	if rep == nil {
		return nil, nil
	}
	if rep.UserID != userID {
		return nil, fmt.Errorf("report for idea %s: %w", ideaID, types.ErrForbidden)
	}
	return rep, nil
}

func (s *reportService) compensate(ctx context.Context, sagaID uuid.UUID) {
	if err := s.saga.Compensate(context.WithoutCancel(ctx), sagaID); err != nil {
		s.log.Error("report saga compensation failed", "saga_id", sagaID.String(), "err", err.Error())
	}
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

// ReportKey builds "<slug(title)[:50]>-<unix millis>.pdf".
func ReportKey(title string, now time.Time) string {
	if strings.TrimSpace(title) == "" {
		title = "report"
	}
	slug := slugInvalid.ReplaceAllString(strings.ToLower(title), "-")
	if len(slug) > 50 {
		slug = slug[:50]
	}
	return fmt.Sprintf("%s-%d.pdf", slug, now.UnixMilli())
}

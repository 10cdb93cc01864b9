package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/medvalidate-backend/internal/data/repos"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/observability"
	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
	"github.com/yungbote/medvalidate-backend/internal/platform/objectstore"
)

const (
	SagaStatusRunning       = "running"
	SagaStatusSucceeded     = "succeeded"
	SagaStatusFailed        = "failed"
	SagaStatusCompensating  = "compensating"
	SagaStatusCompensated   = "compensated"
	SagaActionStatusPending = "pending"
	SagaActionStatusDone    = "done"
	SagaActionStatusFailed  = "failed"
)

const (
	SagaOperationIdeaSubmission   = "idea_submission"
	SagaOperationReportGeneration = "report_generation"
)

const (
	SagaActionKindIdeaDelete   = "idea_delete"
	SagaActionKindObjectDelete = "object_delete"
)

type SagaService interface {
	// CreateOrGetSaga joins dbc.Tx when set so the saga commits with the
	// effect it guards.
	CreateOrGetSaga(dbc dbctx.Context, ownerUserID uuid.UUID, operation string, subjectID uuid.UUID) (uuid.UUID, error)
	AppendAction(dbc dbctx.Context, sagaID uuid.UUID, kind string, payload map[string]any) error
	Compensate(ctx context.Context, sagaID uuid.UUID) error
	MarkSagaStatus(ctx context.Context, sagaID uuid.UUID, status string) error
	// CompleteSaga marks the saga succeeded. Pass the tx that commits the
	// guarded effect so a crash cannot leave a finished saga sweepable.
	CompleteSaga(dbc dbctx.Context, sagaID uuid.UUID) error
	// SweepStale compensates sagas left running or compensating for longer
	// than olderThan. It returns how many were compensated.
	SweepStale(ctx context.Context, olderThan time.Duration) (int, error)
}

type sagaService struct {
	db      *gorm.DB
	log     *logger.Logger
	runs    repos.SagaRunRepo
	actions repos.SagaActionRepo

	purger IdeaPurger
	bucket objectstore.BucketService
}

func NewSagaService(
	db *gorm.DB,
	baseLog *logger.Logger,
	runs repos.SagaRunRepo,
	actions repos.SagaActionRepo,
	purger IdeaPurger,
	bucket objectstore.BucketService,
) SagaService {
	return &sagaService{
		db:      db,
		log:     baseLog.With("service", "SagaService"),
		runs:    runs,
		actions: actions,
		purger:  purger,
		bucket:  bucket,
	}
}

func (s *sagaService) CreateOrGetSaga(dbc dbctx.Context, ownerUserID uuid.UUID, operation string, subjectID uuid.UUID) (uuid.UUID, error) {
	if s == nil || s.db == nil || s.runs == nil {
		return uuid.Nil, fmt.Errorf("saga service not configured")
	}
	if ownerUserID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("missing owner_user_id")
	}
	operation = strings.TrimSpace(operation)
	if operation == "" {
		return uuid.Nil, fmt.Errorf("missing saga operation")
	}
	if subjectID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("missing subject_id")
	}

	create := func(dbc dbctx.Context) (uuid.UUID, error) {
		now := time.Now().UTC()
		row, err := s.runs.CreateIfAbsent(dbc, &types.SagaRun{
			ID:          uuid.New(),
			OwnerUserID: ownerUserID,
			Operation:   operation,
			SubjectID:   subjectID,
			Status:      SagaStatusRunning,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err != nil {
			return uuid.Nil, err
		}
		if row == nil || row.ID == uuid.Nil {
			return uuid.Nil, fmt.Errorf("saga_run not stored for %s %s", operation, subjectID)
		}
		return row.ID, nil
	}

	if dbc.Tx != nil {
		return create(dbc)
	}
	var sagaID uuid.UUID
	err := s.db.WithContext(dbc.Ctx).Transaction(func(tx *gorm.DB) error {
		id, err := create(dbctx.Context{Ctx: dbc.Ctx, Tx: tx})
		sagaID = id
		return err
	})
	if err != nil {
		return uuid.Nil, err
	}
	return sagaID, nil
}

// AppendAction must be called with a non-nil tx so actions are committed atomically
// with the state they compensate.
func (s *sagaService) AppendAction(dbc dbctx.Context, sagaID uuid.UUID, kind string, payload map[string]any) error {
	if s == nil || s.runs == nil || s.actions == nil {
		return fmt.Errorf("saga service not configured")
	}
	if dbc.Tx == nil {
		return fmt.Errorf("AppendAction requires a db transaction")
	}
	if sagaID == uuid.Nil {
		return fmt.Errorf("missing saga_id")
	}
	kind = strings.TrimSpace(kind)
	if kind == "" {
		return fmt.Errorf("missing saga action kind")
	}

	// Serialize seq assignment by locking saga_run.
	sr, err := s.runs.LockByID(dbc, sagaID)
	if err != nil {
		return err
	}
	if sr == nil {
		return fmt.Errorf("saga_run not found: %s", sagaID.String())
	}

	maxSeq, err := s.actions.GetMaxSeq(dbc, sagaID)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode saga action payload: %w", err)
	}
	now := time.Now().UTC()
	return s.actions.Create(dbc, []*types.SagaAction{{
		ID:        uuid.New(),
		SagaID:    sagaID,
		Seq:       maxSeq + 1,
		Kind:      kind,
		Payload:   datatypes.JSON(raw),
		Status:    SagaActionStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}})
}

func (s *sagaService) MarkSagaStatus(ctx context.Context, sagaID uuid.UUID, status string) error {
	if s == nil || s.runs == nil {
		return fmt.Errorf("saga service not configured")
	}
	if sagaID == uuid.Nil {
		return fmt.Errorf("missing saga_id")
	}
	status = strings.TrimSpace(status)
	if status == "" {
		return fmt.Errorf("missing saga status")
	}
	return s.runs.UpdateFields(dbctx.Context{Ctx: ctx}, sagaID, map[string]interface{}{"status": status})
}

func (s *sagaService) CompleteSaga(dbc dbctx.Context, sagaID uuid.UUID) error {
	if s == nil || s.runs == nil {
		return fmt.Errorf("saga service not configured")
	}
	if sagaID == uuid.Nil {
		return fmt.Errorf("missing saga_id")
	}
	return s.runs.UpdateFields(dbc, sagaID, map[string]interface{}{"status": SagaStatusSucceeded})
}

func (s *sagaService) Compensate(ctx context.Context, sagaID uuid.UUID) error {
	if s == nil || s.actions == nil {
		return fmt.Errorf("saga service not configured")
	}
	if sagaID == uuid.Nil {
		return fmt.Errorf("missing saga_id")
	}

	_ = s.MarkSagaStatus(ctx, sagaID, SagaStatusCompensating)

	actions, err := s.actions.ListBySagaIDDesc(dbctx.Context{Ctx: ctx}, sagaID)
	if err != nil {
		return err
	}

	failed := 0
	for _, a := range actions {
		if a == nil || a.ID == uuid.Nil {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(a.Status), SagaActionStatusDone) {
			continue
		}

		execErr := s.executeAction(ctx, a)
		nextStatus := SagaActionStatusDone
		if execErr != nil {
			failed++
			nextStatus = SagaActionStatusFailed
			s.log.Warn("saga action compensate failed",
				"saga_id", sagaID.String(),
				"action_id", a.ID.String(),
				"kind", a.Kind,
				"seq", a.Seq,
				"err", execErr.Error(),
			)
		}
		_ = s.actions.UpdateFields(dbctx.Context{Ctx: ctx}, a.ID, map[string]interface{}{"status": nextStatus})
	}

	operation := ""
	if sr, err := s.runs.GetByID(dbctx.Context{Ctx: ctx}, sagaID); err == nil && sr != nil {
		operation = sr.Operation
	}

	// A failed action leaves the saga compensating so the next sweep retries it.
	if failed > 0 {
		observability.Current().IncSagaCompensation(operation, SagaStatusCompensating)
		return fmt.Errorf("saga %s: %d compensating actions failed", sagaID, failed)
	}
	_ = s.MarkSagaStatus(ctx, sagaID, SagaStatusCompensated)
	observability.Current().IncSagaCompensation(operation, SagaStatusCompensated)
	return nil
}

func (s *sagaService) SweepStale(ctx context.Context, olderThan time.Duration) (int, error) {
	if s == nil || s.runs == nil {
		return 0, fmt.Errorf("saga service not configured")
	}
	if olderThan <= 0 {
		olderThan = 10 * time.Minute
	}
	before := time.Now().UTC().Add(-olderThan)
	stale, err := s.runs.ListByStatusBefore(
		dbctx.Context{Ctx: ctx},
		[]string{SagaStatusRunning, SagaStatusCompensating},
		before,
		500,
	)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, sr := range stale {
		if sr == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return n, err
		}
		if err := s.Compensate(ctx, sr.ID); err != nil {
			s.log.Warn("stale saga compensation incomplete", "saga_id", sr.ID.String(), "operation", sr.Operation, "err", err.Error())
			continue
		}
		n++
	}
	if n > 0 {
		s.log.Info("compensated stale sagas", "count", n, "older_than", olderThan.String())
	}
	return n, nil
}

func (s *sagaService) executeAction(ctx context.Context, a *types.SagaAction) error {
	if a == nil {
		return nil
	}
	kind := strings.TrimSpace(a.Kind)
	if kind == "" {
		return nil
	}
	switch kind {
	case SagaActionKindIdeaDelete:
		if s.purger == nil {
			return fmt.Errorf("idea purger unavailable")
		}
		var p struct {
			IdeaID string `json:"idea_id"`
		}
		_ = json.Unmarshal(a.Payload, &p)
		ideaID, err := uuid.Parse(strings.TrimSpace(p.IdeaID))
		if err != nil {
			return fmt.Errorf("invalid idea_id in saga payload: %w", err)
		}
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return s.purger.PurgeIdea(dbctx.Context{Ctx: ctx, Tx: tx}, ideaID)
		})

	case SagaActionKindObjectDelete:
		if s.bucket == nil {
			return fmt.Errorf("bucket service unavailable")
		}
		var p struct {
			Category string `json:"category"`
			Key      string `json:"key"`
		}
		_ = json.Unmarshal(a.Payload, &p)
		cat, err := objectstore.ParseBucketCategory(p.Category)
		if err != nil {
			return err
		}
		key := strings.TrimSpace(p.Key)
		if key == "" {
			return nil
		}
		err = s.bucket.DeleteFile(dbctx.Context{Ctx: ctx}, cat, key)
		if objectstore.IsNotFound(err) {
			return nil
		}
		return err

	default:
		return fmt.Errorf("unknown saga action kind: %s", kind)
	}
}

package jobs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/medvalidate-backend/internal/data/repos/query"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
)

type SagaRunRepo interface {
	// CreateIfAbsent inserts row unless a saga for the same operation and
	// subject already exists. It returns the stored saga either way.
	CreateIfAbsent(dbc dbctx.Context, row *types.SagaRun) (*types.SagaRun, error)

	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.SagaRun, error)
	GetBySubject(dbc dbctx.Context, operation string, subjectID uuid.UUID) (*types.SagaRun, error)

	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.SagaRun, error)

	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error

	ListByStatusBefore(dbc dbctx.Context, statuses []string, before time.Time, limit int) ([]*types.SagaRun, error)
}

type sagaRunRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSagaRunRepo(db *gorm.DB, baseLog *logger.Logger) SagaRunRepo {
	return &sagaRunRepo{db: db, log: baseLog.With("repo", "SagaRunRepo")}
}

func (r *sagaRunRepo) CreateIfAbsent(dbc dbctx.Context, row *types.SagaRun) (*types.SagaRun, error) {
	if row == nil {
		return nil, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	now := time.Now().UTC()
	if row.CreatedAt.IsZero() {
		row.CreatedAt = now
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = now
	}
	n, err := query.InsertIgnoringConflicts(dbc, r.db, []*types.SagaRun{row}, "operation", "subject_id")
	if err != nil {
		return nil, err
	}
	if n == 1 {
		return row, nil
	}
	return r.GetBySubject(dbc, row.Operation, row.SubjectID)
}

func (r *sagaRunRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.SagaRun, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return query.First[types.SagaRun](dbc, r.db, "", "id = ?", id)
}

func (r *sagaRunRepo) GetBySubject(dbc dbctx.Context, operation string, subjectID uuid.UUID) (*types.SagaRun, error) {
	if operation == "" || subjectID == uuid.Nil {
		return nil, nil
	}
	return query.First[types.SagaRun](dbc, r.db, "", "operation = ? AND subject_id = ?", operation, subjectID)
}

func (r *sagaRunRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.SagaRun, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var rows []*types.SagaRun
	err := dbc.DB(r.db).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *sagaRunRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return dbc.DB(r.db).
		Model(&types.SagaRun{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *sagaRunRepo) ListByStatusBefore(dbc dbctx.Context, statuses []string, before time.Time, limit int) ([]*types.SagaRun, error) {
	var out []*types.SagaRun
	if len(statuses) == 0 {
		return out, nil
	}
	q := dbc.DB(r.db).Where("status IN ? AND updated_at < ?", statuses, before).Order("updated_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

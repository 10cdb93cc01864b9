package jobs

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/medvalidate-backend/internal/data/repos/query"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
)

type SagaActionRepo interface {
	Create(dbc dbctx.Context, rows []*types.SagaAction) error

	ListBySagaIDDesc(dbc dbctx.Context, sagaID uuid.UUID) ([]*types.SagaAction, error)
	GetMaxSeq(dbc dbctx.Context, sagaID uuid.UUID) (int64, error)

	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
}

type sagaActionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSagaActionRepo(db *gorm.DB, baseLog *logger.Logger) SagaActionRepo {
	return &sagaActionRepo{db: db, log: baseLog.With("repo", "SagaActionRepo")}
}

func (r *sagaActionRepo) Create(dbc dbctx.Context, rows []*types.SagaAction) error {
	return query.CreateAll(dbc, r.db, rows)
}

func (r *sagaActionRepo) ListBySagaIDDesc(dbc dbctx.Context, sagaID uuid.UUID) ([]*types.SagaAction, error) {
	if sagaID == uuid.Nil {
		return []*types.SagaAction{}, nil
	}
	return query.List[types.SagaAction](dbc, r.db, "seq DESC", "saga_id = ?", sagaID)
}

func (r *sagaActionRepo) GetMaxSeq(dbc dbctx.Context, sagaID uuid.UUID) (int64, error) {
	if sagaID == uuid.Nil {
		return 0, nil
	}
	var max int64
	if err := dbc.DB(r.db).
		Model(&types.SagaAction{}).
		Select("COALESCE(MAX(seq), 0)").
		Where("saga_id = ?", sagaID).
		Scan(&max).Error; err != nil {
		return 0, err
	}
	return max, nil
}

func (r *sagaActionRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.SagaAction{}).
		Where("id = ?", id).
		Updates(updates).Error
}

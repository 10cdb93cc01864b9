package ideas

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

type IdeaRepo interface {
	Create(dbc dbctx.Context, row *types.Idea) error

	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Idea, error)
	ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.Idea, error)

	LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Idea, error)
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error

	Delete(dbc dbctx.Context, id uuid.UUID) error
}

type ideaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIdeaRepo(db *gorm.DB, baseLog *logger.Logger) IdeaRepo {
	return &ideaRepo{db: db, log: baseLog.With("repo", "IdeaRepo")}
}

func (r *ideaRepo) Create(dbc dbctx.Context, row *types.Idea) error {
	if row == nil {
		return nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	now := time.Now().UTC()
	if row.SubmittedAt.IsZero() {
		row.SubmittedAt = now
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.SubmittedAt
	}
	if row.Status == "" {
		row.Status = types.IdeaStatusPending
	}
	return dbc.DB(r.db).Create(row).Error
}

func (r *ideaRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Idea, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return query.First[types.Idea](dbc, r.db, "", "id = ?", id)
}

func (r *ideaRepo) ListByUserID(dbc dbctx.Context, userID uuid.UUID) ([]*types.Idea, error) {
	if userID == uuid.Nil {
		return []*types.Idea{}, nil
	}
	return query.List[types.Idea](dbc, r.db, "submitted_at DESC, id DESC", "user_id = ?", userID)
}

func (r *ideaRepo) LockByID(dbc dbctx.Context, id uuid.UUID) (*types.Idea, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	var rows []*types.Idea
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

func (r *ideaRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.Idea{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *ideaRepo) Delete(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	_, err := query.DeleteWhere(dbc, r.db, &types.Idea{}, "id = ?", id)
	return err
}

package ideas

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/medvalidate-backend/internal/data/repos/query"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
)

type AIInsightRepo interface {
	// Replace swaps the idea's insight row for row.
	Replace(dbc dbctx.Context, row *types.AIInsight) error

	GetByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) (*types.AIInsight, error)
	GetByIdeaIDs(dbc dbctx.Context, ideaIDs []uuid.UUID) (map[uuid.UUID]*types.AIInsight, error)

	DeleteByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) error
}

type aiInsightRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAIInsightRepo(db *gorm.DB, baseLog *logger.Logger) AIInsightRepo {
	return &aiInsightRepo{db: db, log: baseLog.With("repo", "AIInsightRepo")}
}

func (r *aiInsightRepo) Replace(dbc dbctx.Context, row *types.AIInsight) error {
	if row == nil || row.IdeaID == uuid.Nil {
		return nil
	}
	if err := r.DeleteByIdeaID(dbc, row.IdeaID); err != nil {
		return err
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return dbc.DB(r.db).Create(row).Error
}

func (r *aiInsightRepo) GetByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) (*types.AIInsight, error) {
	if ideaID == uuid.Nil {
		return nil, nil
	}
	return query.First[types.AIInsight](dbc, r.db, "", "idea_id = ?", ideaID)
}

func (r *aiInsightRepo) GetByIdeaIDs(dbc dbctx.Context, ideaIDs []uuid.UUID) (map[uuid.UUID]*types.AIInsight, error) {
	out := map[uuid.UUID]*types.AIInsight{}
	if len(ideaIDs) == 0 {
		return out, nil
	}
	rows, err := query.List[types.AIInsight](dbc, r.db, "", "idea_id IN ?", ideaIDs)
	if err != nil {
		return nil, err
	}
	for _, in := range rows {
		out[in.IdeaID] = in
	}
	return out, nil
}

func (r *aiInsightRepo) DeleteByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) error {
	_, err := query.DeleteWhere(dbc, r.db, &types.AIInsight{}, "idea_id = ?", ideaID)
	return err
}

package ideas

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/medvalidate-backend/internal/data/repos/query"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
)

type ScoreRepo interface {
	// InsertIfAbsent writes row unless the idea already has a score.
	// It reports whether row was stored.
	InsertIfAbsent(dbc dbctx.Context, row *types.Score) (bool, error)

	GetByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) (*types.Score, error)
	GetByIdeaIDs(dbc dbctx.Context, ideaIDs []uuid.UUID) (map[uuid.UUID]*types.Score, error)

	DeleteByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) error
}

type scoreRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScoreRepo(db *gorm.DB, baseLog *logger.Logger) ScoreRepo {
	return &scoreRepo{db: db, log: baseLog.With("repo", "ScoreRepo")}
}

func (r *scoreRepo) InsertIfAbsent(dbc dbctx.Context, row *types.Score) (bool, error) {
	if row == nil || row.IdeaID == uuid.Nil {
		return false, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.CalculatedAt.IsZero() {
		row.CalculatedAt = time.Now().UTC()
	}
	n, err := query.InsertIgnoringConflicts(dbc, r.db, []*types.Score{row}, "idea_id")
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *scoreRepo) GetByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) (*types.Score, error) {
	if ideaID == uuid.Nil {
		return nil, nil
	}
	return query.First[types.Score](dbc, r.db, "", "idea_id = ?", ideaID)
}

func (r *scoreRepo) GetByIdeaIDs(dbc dbctx.Context, ideaIDs []uuid.UUID) (map[uuid.UUID]*types.Score, error) {
	out := map[uuid.UUID]*types.Score{}
	if len(ideaIDs) == 0 {
		return out, nil
	}
	rows, err := query.List[types.Score](dbc, r.db, "", "idea_id IN ?", ideaIDs)
	if err != nil {
		return nil, err
	}
	for _, s := range rows {
		out[s.IdeaID] = s
	}
	return out, nil
}

func (r *scoreRepo) DeleteByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) error {
	_, err := query.DeleteWhere(dbc, r.db, &types.Score{}, "idea_id = ?", ideaID)
	return err
}

package reports

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/medvalidate-backend/internal/data/repos/query"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
)

type ReportRepo interface {
	// InsertIfAbsent stores row unless the idea already has a report.
	// It reports whether row was stored.
	InsertIfAbsent(dbc dbctx.Context, row *types.Report) (bool, error)

	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Report, error)
	GetByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) (*types.Report, error)

	DeleteByID(dbc dbctx.Context, id uuid.UUID) error
}

type reportRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewReportRepo(db *gorm.DB, baseLog *logger.Logger) ReportRepo {
	return &reportRepo{db: db, log: baseLog.With("repo", "ReportRepo")}
}

func (r *reportRepo) InsertIfAbsent(dbc dbctx.Context, row *types.Report) (bool, error) {
	if row == nil || row.IdeaID == uuid.Nil {
		return false, nil
	}
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	if row.GeneratedAt.IsZero() {
		row.GeneratedAt = time.Now().UTC()
	}
	n, err := query.InsertIgnoringConflicts(dbc, r.db, []*types.Report{row}, "idea_id")
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *reportRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Report, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	return query.First[types.Report](dbc, r.db, "", "id = ?", id)
}

func (r *reportRepo) GetByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) (*types.Report, error) {
	if ideaID == uuid.Nil {
		return nil, nil
	}
	return query.First[types.Report](dbc, r.db, "", "idea_id = ?", ideaID)
}

func (r *reportRepo) DeleteByID(dbc dbctx.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return nil
	}
	_, err := query.DeleteWhere(dbc, r.db, &types.Report{}, "id = ?", id)
	return err
}

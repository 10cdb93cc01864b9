package ideas

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/medvalidate-backend/internal/data/repos/query"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
)

type ComplianceCheckRepo interface {
	Create(dbc dbctx.Context, rows []*types.ComplianceCheck) error

	ListByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) ([]*types.ComplianceCheck, error)
	ListByIdeaIDs(dbc dbctx.Context, ideaIDs []uuid.UUID) (map[uuid.UUID][]*types.ComplianceCheck, error)

	DeleteByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) error
}

type complianceCheckRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewComplianceCheckRepo(db *gorm.DB, baseLog *logger.Logger) ComplianceCheckRepo {
	return &complianceCheckRepo{db: db, log: baseLog.With("repo", "ComplianceCheckRepo")}
}

func (r *complianceCheckRepo) Create(dbc dbctx.Context, rows []*types.ComplianceCheck) error {
	return query.CreateAll(dbc, r.db, rows)
}

func (r *complianceCheckRepo) ListByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) ([]*types.ComplianceCheck, error) {
	if ideaID == uuid.Nil {
		return []*types.ComplianceCheck{}, nil
	}
	return query.List[types.ComplianceCheck](dbc, r.db, "checked_at ASC, rule_name ASC", "idea_id = ?", ideaID)
}

func (r *complianceCheckRepo) ListByIdeaIDs(dbc dbctx.Context, ideaIDs []uuid.UUID) (map[uuid.UUID][]*types.ComplianceCheck, error) {
	out := map[uuid.UUID][]*types.ComplianceCheck{}
	if len(ideaIDs) == 0 {
		return out, nil
	}
	rows, err := query.List[types.ComplianceCheck](dbc, r.db, "checked_at ASC, rule_name ASC", "idea_id IN ?", ideaIDs)
	if err != nil {
		return nil, err
	}
	for _, c := range rows {
		out[c.IdeaID] = append(out[c.IdeaID], c)
	}
	return out, nil
}

func (r *complianceCheckRepo) DeleteByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) error {
	_, err := query.DeleteWhere(dbc, r.db, &types.ComplianceCheck{}, "idea_id = ?", ideaID)
	return err
}

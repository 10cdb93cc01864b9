package knowledge

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/medvalidate-backend/internal/data/repos/query"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
)

// IdeaRows is everything a deep pass writes that belongs to one idea.
type IdeaRows struct {
	Competitors     []*types.CompetitorAnalysis
	Risks           []*types.RiskProfile
	Recommendations []*types.StrategicRecommendation
	Segments        []*types.CustomerSegment
	Report          *types.DetailedReport
}

type IdeaKnowledgeRepo interface {
	Create(dbc dbctx.Context, rows *IdeaRows) error

	ListCompetitors(dbc dbctx.Context, ideaID uuid.UUID) ([]*types.CompetitorAnalysis, error)
	ListRisks(dbc dbctx.Context, ideaID uuid.UUID) ([]*types.RiskProfile, error)
	ListRecommendations(dbc dbctx.Context, ideaID uuid.UUID) ([]*types.StrategicRecommendation, error)
	ListSegments(dbc dbctx.Context, ideaID uuid.UUID) ([]*types.CustomerSegment, error)
	GetDetailedReport(dbc dbctx.Context, ideaID uuid.UUID) (*types.DetailedReport, error)

	DeleteByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) error
}

type ideaKnowledgeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIdeaKnowledgeRepo(db *gorm.DB, baseLog *logger.Logger) IdeaKnowledgeRepo {
	return &ideaKnowledgeRepo{db: db, log: baseLog.With("repo", "IdeaKnowledgeRepo")}
}

func (r *ideaKnowledgeRepo) Create(dbc dbctx.Context, rows *IdeaRows) error {
	if rows == nil {
		return nil
	}
	if err := query.CreateAll(dbc, r.db, rows.Competitors); err != nil {
		return err
	}
	if err := query.CreateAll(dbc, r.db, rows.Risks); err != nil {
		return err
	}
	if err := query.CreateAll(dbc, r.db, rows.Recommendations); err != nil {
		return err
	}
	if err := query.CreateAll(dbc, r.db, rows.Segments); err != nil {
		return err
	}
	if rows.Report != nil {
		if _, err := query.DeleteWhere(dbc, r.db, &types.DetailedReport{}, "idea_id = ?", rows.Report.IdeaID); err != nil {
			return err
		}
		if err := dbc.DB(r.db).Create(rows.Report).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *ideaKnowledgeRepo) ListCompetitors(dbc dbctx.Context, ideaID uuid.UUID) ([]*types.CompetitorAnalysis, error) {
	return query.List[types.CompetitorAnalysis](dbc, r.db, "created_at ASC, competitor_name ASC", "idea_id = ?", ideaID)
}

func (r *ideaKnowledgeRepo) ListRisks(dbc dbctx.Context, ideaID uuid.UUID) ([]*types.RiskProfile, error) {
	return query.List[types.RiskProfile](dbc, r.db, "created_at ASC, risk_name ASC", "idea_id = ?", ideaID)
}

func (r *ideaKnowledgeRepo) ListRecommendations(dbc dbctx.Context, ideaID uuid.UUID) ([]*types.StrategicRecommendation, error) {
	return query.List[types.StrategicRecommendation](dbc, r.db, "created_at ASC", "idea_id = ?", ideaID)
}

func (r *ideaKnowledgeRepo) ListSegments(dbc dbctx.Context, ideaID uuid.UUID) ([]*types.CustomerSegment, error) {
	return query.List[types.CustomerSegment](dbc, r.db, "created_at ASC, segment_name ASC", "idea_id = ?", ideaID)
}

func (r *ideaKnowledgeRepo) GetDetailedReport(dbc dbctx.Context, ideaID uuid.UUID) (*types.DetailedReport, error) {
	if ideaID == uuid.Nil {
		return nil, nil
	}
	return query.First[types.DetailedReport](dbc, r.db, "generated_at DESC", "idea_id = ?", ideaID)
}

func (r *ideaKnowledgeRepo) DeleteByIdeaID(dbc dbctx.Context, ideaID uuid.UUID) error {
	if ideaID == uuid.Nil {
		return nil
	}
	for _, model := range []any{
		&types.CompetitorAnalysis{},
		&types.RiskProfile{},
		&types.StrategicRecommendation{},
		&types.CustomerSegment{},
		&types.DetailedReport{},
	} {
		if _, err := query.DeleteWhere(dbc, r.db, model, "idea_id = ?", ideaID); err != nil {
			return err
		}
	}
	return nil
}

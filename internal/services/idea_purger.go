package services

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/yungbote/medvalidate-backend/internal/data/repos"
	"github.com/yungbote/medvalidate-backend/internal/platform/dbctx"
)

// IdeaPurger removes an idea and every row private to it. Category-keyed
// knowledge rows are shared and stay.
type IdeaPurger interface {
	PurgeIdea(dbc dbctx.Context, ideaID uuid.UUID) error
}

type ideaPurger struct {
	ideas     repos.IdeaRepo
	scores    repos.ScoreRepo
	checks    repos.ComplianceCheckRepo
	insights  repos.AIInsightRepo
	knowledge repos.IdeaKnowledgeRepo
	reports   repos.ReportRepo
}

func NewIdeaPurger(
	ideas repos.IdeaRepo,
	scores repos.ScoreRepo,
	checks repos.ComplianceCheckRepo,
	insights repos.AIInsightRepo,
	knowledge repos.IdeaKnowledgeRepo,
	reports repos.ReportRepo,
) IdeaPurger {
	return &ideaPurger{
		ideas:     ideas,
		scores:    scores,
		checks:    checks,
		insights:  insights,
		knowledge: knowledge,
		reports:   reports,
	}
}

func (p *ideaPurger) PurgeIdea(dbc dbctx.Context, ideaID uuid.UUID) error {
	if ideaID == uuid.Nil {
		return fmt.Errorf("missing idea_id")
	}
	if err := p.scores.DeleteByIdeaID(dbc, ideaID); err != nil {
		return fmt.Errorf("delete scores: %w", err)
	}
	if err := p.checks.DeleteByIdeaID(dbc, ideaID); err != nil {
		return fmt.Errorf("delete compliance checks: %w", err)
	}
	if err := p.insights.DeleteByIdeaID(dbc, ideaID); err != nil {
		return fmt.Errorf("delete ai insights: %w", err)
	}
	if err := p.knowledge.DeleteByIdeaID(dbc, ideaID); err != nil {
		return fmt.Errorf("delete deep analysis rows: %w", err)
	}
	if rep, err := p.reports.GetByIdeaID(dbc, ideaID); err != nil {
		return fmt.Errorf("load report: %w", err)
	} else if rep != nil {
		if err := p.reports.DeleteByID(dbc, rep.ID); err != nil {
			return fmt.Errorf("delete report: %w", err)
		}
	}
	if err := p.ideas.Delete(dbc, ideaID); err != nil {
		return fmt.Errorf("delete idea: %w", err)
	}
	return nil
}

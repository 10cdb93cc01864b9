package analysis

import (
	"context"
	"time"

	"github.com/yungbote/medvalidate-backend/internal/analysis/prompts"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
	"github.com/yungbote/medvalidate-backend/internal/platform/httpx"
	"github.com/yungbote/medvalidate-backend/internal/platform/llm"
	"github.com/yungbote/medvalidate-backend/internal/platform/logger"
)

const (
	PassBasic = "basic"
	PassDeep  = "deep"
)

// Generator turns an idea into a validated analysis. It asks the model once
// per call; callers decide whether to retry.
type Generator interface {
	GenerateBasic(ctx context.Context, idea *types.Idea) (*BasicResult, error)
	GenerateDeep(ctx context.Context, idea *types.Idea) (*DeepResult, error)
}

type generator struct {
	log    *logger.Logger
	client llm.Client
	now    func() time.Time
}

func NewGenerator(baseLog *logger.Logger, client llm.Client) Generator {
	return &generator{
		log:    baseLog.With("service", "AnalysisGenerator"),
		client: client,
		now:    time.Now,
	}
}

// FieldsFromIdea lifts the prompt-relevant columns off an idea row.
func FieldsFromIdea(idea *types.Idea) prompts.IdeaFields {
	if idea == nil {
		return prompts.IdeaFields{}
	}
	return prompts.IdeaFields{
		Title:                  idea.Title,
		Description:            idea.Description,
		ProblemStatement:       idea.ProblemStatement,
		TargetAudience:         idea.TargetAudience,
		UniqueValueProposition: idea.UniqueValueProposition,
		Category:               idea.Category,
		Stage:                  idea.Stage,
		TeamSize:               idea.TeamSize,
		FundingNeeded:          idea.FundingNeeded,
		Domain:                 idea.Domain,
		Subdomain:              idea.Subdomain,
	}
}

func (g *generator) GenerateBasic(ctx context.Context, idea *types.Idea) (*BasicResult, error) {
	raw, err := g.generate(ctx, PassBasic, prompts.PromptBasicAnalysis, idea)
	if err != nil {
		return nil, err
	}
	if err := ValidateBasic(raw); err != nil {
		g.log.Warn("basic analysis rejected", "idea_id", idea.ID, "error", err)
		return nil, &types.AnalysisFailure{Kind: types.FailureValidation, Pass: PassBasic, Retryable: true, Err: err}
	}
	return DecodeBasic(raw), nil
}

func (g *generator) GenerateDeep(ctx context.Context, idea *types.Idea) (*DeepResult, error) {
	raw, err := g.generate(ctx, PassDeep, prompts.PromptDeepAnalysis, idea)
	if err != nil {
		return nil, err
	}
	if err := ValidateDeep(raw); err != nil {
		g.log.Warn("deep analysis rejected", "idea_id", idea.ID, "error", err)
		return nil, &types.AnalysisFailure{Kind: types.FailureValidation, Pass: PassDeep, Retryable: true, Err: err}
	}
	return DecodeDeep(raw), nil
}

func (g *generator) generate(ctx context.Context, pass string, name prompts.PromptName, idea *types.Idea) (map[string]any, error) {
	if idea == nil {
		return nil, &types.AnalysisFailure{Kind: types.FailureGeneration, Pass: pass, Err: types.ErrInvalidArgument}
	}
	p, err := prompts.Build(name, prompts.NewInput(FieldsFromIdea(idea), g.now()))
	if err != nil {
		return nil, &types.AnalysisFailure{Kind: types.FailureGeneration, Pass: pass, Err: err}
	}

	start := time.Now()
	raw, err := g.client.GenerateJSON(ctx, p.System, p.User)
	if err != nil {
		g.log.Warn("model call failed",
			"pass", pass,
			"idea_id", idea.ID,
			"model", g.client.Model(),
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return nil, &types.AnalysisFailure{
			Kind:      types.FailureGeneration,
			Pass:      pass,
			Retryable: httpx.IsRetryableError(err),
			Err:       err,
		}
	}
	g.log.Debug("model call ok",
		"pass", pass,
		"idea_id", idea.ID,
		"model", g.client.Model(),
		"prompt_version", p.Version,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return raw, nil
}

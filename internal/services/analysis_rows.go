package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/medvalidate-backend/internal/analysis"
	"github.com/yungbote/medvalidate-backend/internal/analysis/jsontext"
	"github.com/yungbote/medvalidate-backend/internal/data/repos"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
)

// textEncoder keeps the first serialization error so row builders can stay
// flat.
type textEncoder struct {
	err error
}

func (e *textEncoder) list(v []string) string {
	s, err := jsontext.EncodeList(v)
	if err != nil && e.err == nil {
		e.err = err
	}
	return s
}

func (e *textEncoder) object(v any) string {
	s, err := jsontext.EncodeObject(v)
	if err != nil && e.err == nil {
		e.err = err
	}
	return s
}

func encodeListOf[T any](e *textEncoder, v []T) string {
	s, err := jsontext.EncodeList(v)
	if err != nil && e.err == nil {
		e.err = err
	}
	return s
}

type basicRows struct {
	Score   *types.Score
	Checks  []*types.ComplianceCheck
	Insight *types.AIInsight
}

func buildBasicRows(ideaID uuid.UUID, res *analysis.BasicResult, now time.Time) (*basicRows, error) {
	enc := &textEncoder{}
	out := &basicRows{
		Score: &types.Score{
			ID:                 uuid.New(),
			IdeaID:             ideaID,
			Feasibility:        res.Scores.Feasibility,
			ComplianceScore:    res.Scores.ComplianceScore,
			MarketDemand:       res.Scores.MarketDemand,
			CulturalAcceptance: res.Scores.CulturalAcceptance,
			CostViability:      res.Scores.CostViability,
			ReadinessScore:     res.Scores.ReadinessScore,
			CalculatedAt:       now,
		},
		Insight: &types.AIInsight{
			ID:                       uuid.New(),
			IdeaID:                   ideaID,
			MarketSize:               res.Insights.MarketSize,
			GrowthRate:               res.Insights.GrowthRate,
			TargetPotential:          res.Insights.TargetPotential,
			KeyRisks:                 enc.list(res.Insights.KeyRisks),
			CompetitiveAdvantages:    enc.list(res.Insights.CompetitiveAdvantages),
			RegulatoryConsiderations: enc.list(res.Insights.RegulatoryConsiderations),
			Competitors:              encodeListOf(enc, res.Competitors),
			Recommendations:          enc.list(res.Recommendations),
			CreatedAt:                now,
		},
	}
	for _, c := range res.ComplianceChecks {
		out.Checks = append(out.Checks, &types.ComplianceCheck{
			ID:              uuid.New(),
			IdeaID:          ideaID,
			RuleName:        c.RuleName,
			RuleDescription: c.RuleDescription,
			Passed:          c.Passed,
			Recommendations: c.Recommendations,
			CheckedAt:       now,
		})
	}
	if enc.err != nil {
		return nil, enc.err
	}
	return out, nil
}

func buildDeepRows(idea *types.Idea, res *analysis.DeepResult, now time.Time) (*repos.IdeaKnowledgeRows, *repos.CategoryKnowledgeRows, error) {
	enc := &textEncoder{}
	category := strings.TrimSpace(idea.Category)
	stage := strings.TrimSpace(idea.Stage)

	own := &repos.IdeaKnowledgeRows{}
	for _, c := range res.Competitors {
		own.Competitors = append(own.Competitors, &types.CompetitorAnalysis{
			ID:                    uuid.New(),
			IdeaID:                idea.ID,
			CompetitorName:        c.Name,
			CompetitorDescription: c.Description,
			MarketPosition:        c.MarketPosition,
			FundingRaised:         c.FundingRaised,
			Status:                c.Status,
			Strengths:             enc.list(c.Strengths),
			Weaknesses:            enc.list(c.Weaknesses),
			MarketShareEstimated:  c.MarketShareEstimated,
			CreatedAt:             now,
		})
	}
	for _, r := range res.Risks {
		own.Risks = append(own.Risks, &types.RiskProfile{
			ID:                   uuid.New(),
			IdeaID:               idea.ID,
			RiskType:             r.Type,
			RiskName:             r.Name,
			RiskDescription:      r.Description,
			ProbabilityPercent:   r.ProbabilityPercent,
			ImpactLevel:          r.ImpactLevel,
			MitigationStrategies: enc.list(r.MitigationStrategies),
			CreatedAt:            now,
		})
	}
	for _, r := range res.StrategicRecommendations {
		own.Recommendations = append(own.Recommendations, &types.StrategicRecommendation{
			ID:                       uuid.New(),
			IdeaID:                   idea.ID,
			RecommendationType:       r.Type,
			RecommendationContent:    r.Content,
			PriorityLevel:            r.PriorityLevel,
			ExpectedImpactOnScore:    r.ExpectedImpactOnScore,
			ImplementationDifficulty: r.ImplementationDifficulty,
			CreatedAt:                now,
		})
	}
	for _, s := range res.CustomerSegments {
		own.Segments = append(own.Segments, &types.CustomerSegment{
			ID:                  uuid.New(),
			IdeaID:              idea.ID,
			SegmentName:         s.Name,
			SegmentSizeEstimate: s.SizeEstimate,
			WillingnessToPay:    s.WillingnessToPay,
			PainPoints:          enc.list(s.PainPoints),
			CreatedAt:           now,
		})
	}
	rep := res.DetailedReport
	own.Report = &types.DetailedReport{
		ID:                  uuid.New(),
		IdeaID:              idea.ID,
		ExecutiveSummary:    rep.ExecutiveSummary,
		MarketAnalysis:      enc.object(rep.MarketAnalysis),
		CompetitiveAnalysis: enc.object(rep.CompetitiveAnalysis),
		CustomerAnalysis:    enc.object(rep.CustomerAnalysis),
		RiskAssessment:      enc.object(rep.RiskAssessment),
		Recommendations:     enc.list(rep.Recommendations),
		Insights:            encodeListOf(enc, res.Insights),
		GeneratedAt:         now,
	}

	shared := &repos.CategoryKnowledgeRows{}
	if category != "" {
		md := res.MarketData
		shared.MarketData = &types.MarketData{
			ID:                      uuid.New(),
			Category:                category,
			MarketSizeUSD:           md.SizeUSD,
			MarketGrowthRatePercent: md.GrowthRatePercent,
			MarketGaps:              enc.list(md.Gaps),
			MarketTrends:            enc.list(md.Trends),
			OpportunityScore:        md.OpportunityScore,
			LastUpdated:             now,
		}
		for _, f := range res.FailureCases {
			shared.FailureCases = append(shared.FailureCases, &types.FailureCase{
				ID:                      uuid.New(),
				Category:                category,
				StartupName:             f.StartupName,
				PrimaryFailureReason:    f.PrimaryFailureReason,
				SecondaryFailureReasons: enc.list(f.SecondaryFailureReasons),
				LessonsLearned:          enc.list(f.LessonsLearned),
				PreventiveMeasures:      enc.list(f.PreventiveMeasures),
				CreatedAt:               now,
			})
		}
		for _, s := range res.SuccessCases {
			shared.SuccessCases = append(shared.SuccessCases, &types.SuccessCase{
				ID:             uuid.New(),
				Category:       category,
				StartupName:    s.StartupName,
				ExitType:       s.ExitType,
				ExitValuation:  s.ExitValuation,
				SuccessFactors: enc.list(s.SuccessFactors),
				LessonsLearned: enc.list(s.LessonsLearned),
				CreatedAt:      now,
			})
		}
		for _, r := range res.RegulatoryItems {
			shared.RegulatoryItems = append(shared.RegulatoryItems, &types.RegulatoryItem{
				ID:                     uuid.New(),
				Category:               category,
				RequirementName:        r.RequirementName,
				Jurisdiction:           r.Jurisdiction,
				RequirementDescription: r.RequirementDescription,
				ApprovalBody:           r.ApprovalBody,
				SeverityLevel:          r.SeverityLevel,
				UpdatedAt:              now,
			})
		}
		for _, t := range res.MarketTrends {
			shared.Trends = append(shared.Trends, &types.MarketTrend{
				ID:               uuid.New(),
				Category:         category,
				TrendName:        t.Name,
				TrendDescription: t.Description,
				RelevanceScore:   t.RelevanceScore,
				TrendStatus:      t.Status,
				CreatedAt:        now,
			})
		}
		for _, b := range res.Benchmarks {
			shared.Benchmarks = append(shared.Benchmarks, &types.Benchmark{
				ID:               uuid.New(),
				Category:         category,
				Stage:            stage,
				MetricName:       b.MetricName,
				MedianValue:      b.MedianValue,
				BestInClassValue: b.BestInClassValue,
				CreatedAt:        now,
			})
		}
	}
	// Funding sources are global, so they are stored even without a category.
	for _, f := range res.FundingSources {
		shared.FundingSources = append(shared.FundingSources, &types.FundingSource{
			ID:                  uuid.New(),
			Name:                f.Name,
			FunderType:          f.FunderType,
			CategoryFocus:       enc.list(f.CategoryFocus),
			StageFocus:          enc.list(f.StageFocus),
			TypicalCheckSizeMin: f.TypicalCheckSizeMin,
			TypicalCheckSizeMax: f.TypicalCheckSizeMax,
			CreatedAt:           now,
		})
	}

	if enc.err != nil {
		return nil, nil, enc.err
	}
	return own, shared, nil
}

package projection

import (
	"github.com/yungbote/medvalidate-backend/internal/analysis"
	"github.com/yungbote/medvalidate-backend/internal/analysis/jsontext"
	types "github.com/yungbote/medvalidate-backend/internal/domain"
)

// The view types below shadow the text columns of the embedded row with
// their decoded form.

type CompetitorView struct {
	*types.CompetitorAnalysis
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

type MarketDataView struct {
	*types.MarketData
	MarketGaps   []string `json:"market_gaps"`
	MarketTrends []string `json:"market_trends"`
}

type FailureCaseView struct {
	*types.FailureCase
	SecondaryFailureReasons []string `json:"secondary_failure_reasons"`
	LessonsLearned          []string `json:"lessons_learned"`
	PreventiveMeasures      []string `json:"preventive_measures"`
}

type SuccessCaseView struct {
	*types.SuccessCase
	SuccessFactors []string `json:"success_factors"`
	LessonsLearned []string `json:"lessons_learned"`
}

type FundingSourceView struct {
	*types.FundingSource
	CategoryFocus []string `json:"category_focus"`
	StageFocus    []string `json:"stage_focus"`
}

type RiskView struct {
	*types.RiskProfile
	MitigationStrategies []string `json:"mitigation_strategies"`
}

type CustomerSegmentView struct {
	*types.CustomerSegment
	PainPoints []string `json:"pain_points"`
}

type DetailedReportView struct {
	*types.DetailedReport
	MarketAnalysis      map[string]any         `json:"market_analysis"`
	CompetitiveAnalysis map[string]any         `json:"competitive_analysis"`
	CustomerAnalysis    map[string]any         `json:"customer_analysis"`
	RiskAssessment      map[string]any         `json:"risk_assessment"`
	Recommendations     []string               `json:"recommendations"`
	Insights            []analysis.DeepInsight `json:"insights"`
}

// FullRows is everything the deep read path loads for one idea.
type FullRows struct {
	Idea            *types.Idea
	Competitors     []*types.CompetitorAnalysis
	MarketData      *types.MarketData
	FailureCases    []*types.FailureCase
	SuccessCases    []*types.SuccessCase
	RegulatoryItems []*types.RegulatoryItem
	Trends          []*types.MarketTrend
	FundingSources  []*types.FundingSource
	Risks           []*types.RiskProfile
	Recommendations []*types.StrategicRecommendation
	Segments        []*types.CustomerSegment
	Benchmarks      []*types.Benchmark
	Report          *types.DetailedReport
}

// FullAnalysis is the deep view of one idea. Lists are never null.
type FullAnalysis struct {
	Idea                     *types.Idea                      `json:"idea"`
	Competitors              []CompetitorView                 `json:"competitors"`
	MarketData               *MarketDataView                  `json:"marketData"`
	FailureCases             []FailureCaseView                `json:"failureCases"`
	SuccessCases             []SuccessCaseView                `json:"successCases"`
	RegulatoryItems          []*types.RegulatoryItem          `json:"regulatoryItems"`
	MarketTrends             []*types.MarketTrend             `json:"marketTrends"`
	FundingSources           []FundingSourceView              `json:"fundingSources"`
	Risks                    []RiskView                       `json:"risks"`
	AIInsights               []analysis.DeepInsight           `json:"aiInsights"`
	StrategicRecommendations []*types.StrategicRecommendation `json:"strategicRecommendations"`
	CustomerSegments         []CustomerSegmentView            `json:"customerSegments"`
	Benchmarks               []*types.Benchmark               `json:"benchmarks"`
	DetailedReports          []DetailedReportView             `json:"detailedReports"`
}

func BuildFullAnalysis(rows FullRows) *FullAnalysis {
	out := &FullAnalysis{
		Idea:                     rows.Idea,
		Competitors:              make([]CompetitorView, 0, len(rows.Competitors)),
		FailureCases:             make([]FailureCaseView, 0, len(rows.FailureCases)),
		SuccessCases:             make([]SuccessCaseView, 0, len(rows.SuccessCases)),
		RegulatoryItems:          nonNil(rows.RegulatoryItems),
		MarketTrends:             nonNil(rows.Trends),
		FundingSources:           make([]FundingSourceView, 0, len(rows.FundingSources)),
		Risks:                    make([]RiskView, 0, len(rows.Risks)),
		AIInsights:               []analysis.DeepInsight{},
		StrategicRecommendations: nonNil(rows.Recommendations),
		CustomerSegments:         make([]CustomerSegmentView, 0, len(rows.Segments)),
		Benchmarks:               nonNil(rows.Benchmarks),
		DetailedReports:          []DetailedReportView{},
	}
	for _, c := range rows.Competitors {
		if c == nil {
			continue
		}
		out.Competitors = append(out.Competitors, CompetitorView{
			CompetitorAnalysis: c,
			Strengths:          jsontext.DecodeStrings(c.Strengths),
			Weaknesses:         jsontext.DecodeStrings(c.Weaknesses),
		})
	}
	if md := rows.MarketData; md != nil {
		out.MarketData = &MarketDataView{
			MarketData:   md,
			MarketGaps:   jsontext.DecodeStrings(md.MarketGaps),
			MarketTrends: jsontext.DecodeStrings(md.MarketTrends),
		}
	}
	for _, f := range rows.FailureCases {
		if f == nil {
			continue
		}
		out.FailureCases = append(out.FailureCases, FailureCaseView{
			FailureCase:             f,
			SecondaryFailureReasons: jsontext.DecodeStrings(f.SecondaryFailureReasons),
			LessonsLearned:          jsontext.DecodeStrings(f.LessonsLearned),
			PreventiveMeasures:      jsontext.DecodeStrings(f.PreventiveMeasures),
		})
	}
	for _, s := range rows.SuccessCases {
		if s == nil {
			continue
		}
		out.SuccessCases = append(out.SuccessCases, SuccessCaseView{
			SuccessCase:    s,
			SuccessFactors: jsontext.DecodeStrings(s.SuccessFactors),
			LessonsLearned: jsontext.DecodeStrings(s.LessonsLearned),
		})
	}
	for _, f := range rows.FundingSources {
		if f == nil {
			continue
		}
		out.FundingSources = append(out.FundingSources, FundingSourceView{
			FundingSource: f,
			CategoryFocus: jsontext.DecodeStrings(f.CategoryFocus),
			StageFocus:    jsontext.DecodeStrings(f.StageFocus),
		})
	}
	for _, r := range rows.Risks {
		if r == nil {
			continue
		}
		out.Risks = append(out.Risks, RiskView{
			RiskProfile:          r,
			MitigationStrategies: jsontext.DecodeStrings(r.MitigationStrategies),
		})
	}
	for _, s := range rows.Segments {
		if s == nil {
			continue
		}
		out.CustomerSegments = append(out.CustomerSegments, CustomerSegmentView{
			CustomerSegment: s,
			PainPoints:      jsontext.DecodeStrings(s.PainPoints),
		})
	}
	if r := rows.Report; r != nil {
		insights := jsontext.DecodeList[analysis.DeepInsight](r.Insights)
		out.AIInsights = insights
		out.DetailedReports = append(out.DetailedReports, DetailedReportView{
			DetailedReport:      r,
			MarketAnalysis:      jsontext.DecodeObject(r.MarketAnalysis),
			CompetitiveAnalysis: jsontext.DecodeObject(r.CompetitiveAnalysis),
			CustomerAnalysis:    jsontext.DecodeObject(r.CustomerAnalysis),
			RiskAssessment:      jsontext.DecodeObject(r.RiskAssessment),
			Recommendations:     jsontext.DecodeStrings(r.Recommendations),
			Insights:            insights,
		})
	}
	return out
}

func nonNil[T any](in []*T) []*T {
	if in == nil {
		return []*T{}
	}
	return in
}

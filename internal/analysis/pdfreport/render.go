// Package pdfreport renders an idea's analysis into the downloadable PDF
// report.
package pdfreport

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/yungbote/medvalidate-backend/internal/analysis"
	"github.com/yungbote/medvalidate-backend/internal/analysis/projection"
)

const (
	ReportTitle  = "MedValidateAI Analysis Report"
	ReportFooter = "This report was generated by MedValidateAI. All data is for informational purposes only."

	margin       = 50.0
	fundingLimit = 5
)

// Input is what one report is built from. Basic is optional; without a score
// the chart is left out.
type Input struct {
	Full        *projection.FullAnalysis
	Basic       *projection.IdeaResult
	GeneratedAt time.Time
}

type writer struct {
	pdf     *fpdf.Fpdf
	tr      func(string) string
	width   float64
	printer *message.Printer
}

// Render produces the PDF bytes for in.
func Render(in Input) ([]byte, error) {
	if in.Full == nil || in.Full.Idea == nil {
		return nil, fmt.Errorf("report input has no idea")
	}
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(ReportTitle, true)
	pdf.SetCreator("MedValidateAI", true)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pageW, pageH := pdf.GetPageSize()
	pdf.SetHeaderFunc(func() {
		pdf.SetDrawColor(204, 204, 204)
		pdf.SetLineWidth(0.7)
		pdf.Rect(margin-10, margin-10, pageW-2*margin+20, pageH-2*margin+20, "D")
	})

	w := &writer{
		pdf:     pdf,
		tr:      pdf.UnicodeTranslatorFromDescriptor(""),
		width:   pageW - 2*margin,
		printer: message.NewPrinter(language.English),
	}
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(0, 102, 204)
	pdf.CellFormat(0, 24, w.tr(ReportTitle), "", 1, "L", false, 0, "")
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(102, 102, 102)
	pdf.CellFormat(0, 16, w.tr("Generated: "+in.GeneratedAt.Format("January 2, 2006")), "", 1, "L", false, 0, "")
	pdf.Ln(14)

	if in.Basic != nil && in.Basic.Scores != nil && in.Basic.OverallScore != nil {
		if err := w.chart(*in.Basic.Scores, *in.Basic.OverallScore); err != nil {
			return nil, err
		}
	}

	w.overview(in.Full)
	w.competitors(in.Full.Competitors)
	w.marketData(in.Full.MarketData)
	w.risks(in.Full.Risks)
	w.insights(in.Full.AIInsights)
	w.recommendations(in.Full)
	w.segments(in.Full.CustomerSegments)
	w.funding(in.Full.FundingSources)

	pdf.Ln(20)
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(153, 153, 153)
	pdf.MultiCell(w.width, 11, w.tr(ReportFooter), "", "L", false)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (w *writer) chart(scores projection.IdeaScores, overall int) error {
	png, err := renderScoreChart(scores, overall)
	if err != nil {
		return err
	}
	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	w.pdf.RegisterImageOptionsReader("score-chart", opts, bytes.NewReader(png))
	h := w.width * float64(chartHeight) / float64(chartWidth)
	w.pdf.ImageOptions("score-chart", margin, w.pdf.GetY(), w.width, h, true, opts, 0, "")
	w.pdf.Ln(10)
	return nil
}

func (w *writer) heading(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	w.pdf.Ln(4)
	w.pdf.SetFont("Helvetica", "B", 14)
	w.pdf.SetTextColor(26, 26, 26)
	w.pdf.MultiCell(w.width, 17, w.tr(text), "", "L", false)
	w.pdf.Ln(5)
}

func (w *writer) subheading(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	w.pdf.SetFont("Helvetica", "B", 11)
	w.pdf.SetTextColor(51, 51, 51)
	w.pdf.MultiCell(w.width, 14, w.tr(text), "", "L", false)
	w.pdf.Ln(3)
}

func (w *writer) body(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	w.pdf.SetFont("Helvetica", "", 10)
	w.pdf.SetTextColor(69, 69, 69)
	w.pdf.MultiCell(w.width, 12, w.tr(text), "", "L", false)
	w.pdf.Ln(5)
}

func (w *writer) bullets(items []string) {
	w.pdf.SetFont("Helvetica", "", 10)
	w.pdf.SetTextColor(69, 69, 69)
	for _, item := range items {
		if strings.TrimSpace(item) == "" {
			continue
		}
		w.pdf.SetX(margin + 15)
		w.pdf.MultiCell(w.width-15, 12, w.tr("• "+item), "", "L", false)
	}
	w.pdf.Ln(4)
}

func (w *writer) overview(full *projection.FullAnalysis) {
	idea := full.Idea
	w.heading("Idea Overview")
	w.body("Title: " + idea.Title)
	w.body("Category: " + orNA(idea.Category))
	w.body("Stage: " + orNA(idea.Stage))
	w.body(fmt.Sprintf("Domain: %s / %s", idea.Domain, idea.Subdomain))

	for _, f := range []struct{ label, text string }{
		{"Description", idea.Description},
		{"Problem Statement", idea.ProblemStatement},
		{"Target Audience", idea.TargetAudience},
		{"Unique Value Proposition", idea.UniqueValueProposition},
	} {
		if strings.TrimSpace(f.text) == "" {
			continue
		}
		w.subheading(f.label)
		w.body(f.text)
	}
}

func (w *writer) competitors(list []projection.CompetitorView) {
	w.heading("Competitor Analysis")
	if len(list) == 0 {
		w.body("No competitor data available.")
		return
	}
	for _, c := range list {
		name := c.CompetitorName
		if strings.TrimSpace(name) == "" {
			name = "Unknown Competitor"
		}
		w.subheading(name)
		w.body(c.CompetitorDescription)
		if c.MarketPosition != "" {
			w.body("Market Position: " + c.MarketPosition)
		}
		if c.FundingRaised != nil && *c.FundingRaised != 0 {
			w.body("Funding Raised: $" + w.grouped(*c.FundingRaised))
		}
		if len(c.Strengths) > 0 {
			w.body("Strengths:")
			w.bullets(c.Strengths)
		}
		if len(c.Weaknesses) > 0 {
			w.body("Weaknesses:")
			w.bullets(c.Weaknesses)
		}
	}
}

func (w *writer) marketData(md *projection.MarketDataView) {
	w.heading("Market Data")
	if md == nil {
		w.body("No market data available.")
		return
	}
	if md.MarketSizeUSD != nil && *md.MarketSizeUSD != 0 {
		w.body("Market Size: $" + w.grouped(*md.MarketSizeUSD))
	}
	if md.MarketGrowthRatePercent != nil && *md.MarketGrowthRatePercent != 0 {
		w.body("Growth Rate: " + plain(*md.MarketGrowthRatePercent) + "%")
	}
	if md.OpportunityScore != nil && *md.OpportunityScore != 0 {
		w.body("Opportunity Score: " + plain(*md.OpportunityScore))
	}
	if len(md.MarketGaps) > 0 {
		w.body("Market Gaps:")
		w.bullets(md.MarketGaps)
	}
}

func (w *writer) risks(list []projection.RiskView) {
	w.heading("Risk Assessment")
	if len(list) == 0 {
		w.body("No risk data available.")
		return
	}
	for _, r := range list {
		w.subheading(fmt.Sprintf("%s: %s", r.RiskType, r.RiskName))
		w.body(r.RiskDescription)
		if r.ProbabilityPercent != nil {
			w.body("Probability: " + plain(*r.ProbabilityPercent) + "%")
		}
		if r.ImpactLevel != "" {
			w.body("Impact: " + r.ImpactLevel)
		}
	}
}

func (w *writer) insights(full []analysis.DeepInsight) {
	w.heading("AI Insights")
	if len(full) == 0 {
		w.body("No AI insights available.")
		return
	}
	for _, in := range full {
		if in.Type == "" || in.Category == "" {
			continue
		}
		w.subheading(fmt.Sprintf("%s - %s", in.Type, in.Category))
		w.body(in.Content)
		if in.ConfidenceScore != nil && *in.ConfidenceScore != 0 {
			w.body(fmt.Sprintf("Confidence: %.0f%%", *in.ConfidenceScore*100))
		}
	}
}

func (w *writer) recommendations(full *projection.FullAnalysis) {
	w.heading("Strategic Recommendations")
	if len(full.StrategicRecommendations) == 0 {
		w.body("No recommendations available.")
		return
	}
	for _, r := range full.StrategicRecommendations {
		if r == nil {
			continue
		}
		w.subheading(r.RecommendationType)
		w.body(r.RecommendationContent)
		if r.PriorityLevel != "" {
			w.body("Priority: " + r.PriorityLevel)
		}
	}
}

func (w *writer) segments(list []projection.CustomerSegmentView) {
	w.heading("Customer Segments")
	if len(list) == 0 {
		w.body("No customer segment data available.")
		return
	}
	for _, s := range list {
		w.subheading(s.SegmentName)
		if s.SegmentSizeEstimate != nil && *s.SegmentSizeEstimate != 0 {
			w.body("Estimated Size: " + w.grouped(*s.SegmentSizeEstimate))
		}
		if s.WillingnessToPay != nil && *s.WillingnessToPay != 0 {
			w.body("Willingness to Pay: " + plain(*s.WillingnessToPay))
		}
	}
}

func (w *writer) funding(list []projection.FundingSourceView) {
	w.heading("Potential Funding Sources")
	if len(list) == 0 {
		w.body("No funding source data available.")
		return
	}
	names := make([]string, 0, fundingLimit)
	for _, f := range list {
		if len(names) == fundingLimit {
			break
		}
		names = append(names, f.Name)
	}
	w.bullets(names)
}

func (w *writer) grouped(v float64) string {
	return w.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}

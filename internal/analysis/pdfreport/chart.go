package pdfreport

import (
	"bytes"
	"fmt"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/yungbote/medvalidate-backend/internal/analysis/projection"
)

const (
	chartWidth  = 990
	chartHeight = 360
)

var (
	faceOnce sync.Once
	faceErr  error
	chartTTF *truetype.Font
)

func chartFace(size float64) (font.Face, error) {
	faceOnce.Do(func() {
		chartTTF, faceErr = truetype.Parse(goregular.TTF)
	})
	if faceErr != nil {
		return nil, fmt.Errorf("failed to parse TTF: %w", faceErr)
	}
	return truetype.NewFace(chartTTF, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	}), nil
}

var (
	barLow  = color.NRGBA{R: 0xE0, G: 0x5A, B: 0x47, A: 0xFF}
	barMid  = color.NRGBA{R: 0xF2, G: 0xB1, B: 0x34, A: 0xFF}
	barHigh = color.NRGBA{R: 0x2E, G: 0x9E, B: 0x6B, A: 0xFF}
	gridCol = color.NRGBA{R: 0xDD, G: 0xDD, B: 0xDD, A: 0xFF}
	textCol = color.NRGBA{R: 0x44, G: 0x44, B: 0x44, A: 0xFF}
)

func barColor(v int) color.Color {
	switch {
	case v >= 80:
		return barHigh
	case v >= 60:
		return barMid
	default:
		return barLow
	}
}

// renderScoreChart draws a horizontal bar per score on a 0..100 axis and
// returns the PNG bytes.
func renderScoreChart(scores projection.IdeaScores, overall int) ([]byte, error) {
	face, err := chartFace(26)
	if err != nil {
		return nil, err
	}
	bars := []struct {
		label string
		value int
	}{
		{"Overall readiness", overall},
		{"Market demand", scores.Market},
		{"Compliance", scores.Competition},
		{"Feasibility", scores.Feasibility},
	}

	dc := gg.NewContext(chartWidth, chartHeight)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetFontFace(face)

	const (
		left   = 290.0
		right  = 90.0
		top    = 30.0
		rowH   = 78.0
		barH   = 44.0
		maxVal = 100.0
	)
	plotW := float64(chartWidth) - left - right

	dc.SetColor(gridCol)
	dc.SetLineWidth(2)
	for tick := 0; tick <= 100; tick += 25 {
		x := left + plotW*float64(tick)/maxVal
		dc.DrawLine(x, top-10, x, top+rowH*float64(len(bars)))
		dc.Stroke()
	}

	for i, b := range bars {
		v := b.value
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		y := top + rowH*float64(i)
		dc.SetColor(textCol)
		dc.DrawStringAnchored(b.label, left-20, y+barH/2, 1, 0.35)

		dc.SetColor(barColor(v))
		dc.DrawRectangle(left, y, plotW*float64(v)/maxVal, barH)
		dc.Fill()

		dc.SetColor(textCol)
		dc.DrawStringAnchored(fmt.Sprintf("%d", v), left+plotW*float64(v)/maxVal+12, y+barH/2, 0, 0.35)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// Package report renders the analysis bundle into charts and a PDF document.
// Everything displayed comes straight from the spc result; no statistic is
// re-derived here.
package report

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/Shekhar67907/SPC/internal/spc"
)

var (
	limitColor  = color.RGBA{R: 200, A: 255}
	centerColor = color.Gray{Y: 96}
	seriesColor = color.RGBA{B: 200, A: 255}
	barFill     = color.RGBA{R: 140, G: 170, B: 220, A: 255}
	barOutline  = color.RGBA{R: 60, G: 90, B: 160, A: 255}
)

// CreateXBarChart renders the subgroup means against their control limits.
func CreateXBarChart(res *spc.Result) ([]byte, error) {
	return controlChart(res.XBarSeries, res.Limits.XBarUCL, res.Limits.XBarLCL, res.Limits.XBarMean,
		"X-Bar Chart", "Subgroup Mean")
}

// CreateRangeChart renders the subgroup ranges against their control limits.
func CreateRangeChart(res *spc.Result) ([]byte, error) {
	return controlChart(res.RangeSeries, res.Limits.RangeUCL, res.Limits.RangeLCL, res.Limits.RangeMean,
		"Range Chart", "Subgroup Range")
}

func controlChart(series []spc.Point, ucl, lcl, center float64, title, yLabel string) ([]byte, error) {
	if len(series) == 0 {
		return nil, fmt.Errorf("no points to plot for %s", title)
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Subgroup"
	p.Y.Label.Text = yLabel
	p.X.Min = 0
	p.X.Max = float64(len(series) + 1)
	p.Add(plotter.NewGrid())

	for _, hl := range []struct {
		value float64
		label string
		col   color.Color
	}{
		{ucl, fmt.Sprintf("UCL %.4f", ucl), limitColor},
		{lcl, fmt.Sprintf("LCL %.4f", lcl), limitColor},
		{center, fmt.Sprintf("CL %.4f", center), centerColor},
	} {
		line, err := plotter.NewLine(plotter.XYs{
			{X: 0, Y: hl.value},
			{X: float64(len(series) + 1), Y: hl.value},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s line: %w", hl.label, err)
		}
		line.Color = hl.col
		line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(5)}
		p.Add(line)
		p.Legend.Add(hl.label, line)
	}

	pts := make(plotter.XYs, len(series))
	for i, pt := range series {
		pts[i] = plotter.XY{X: pt.X, Y: pt.Y}
	}
	line, scatter, err := plotter.NewLinePoints(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to create series for %s: %w", title, err)
	}
	line.Color = seriesColor
	line.LineStyle.Width = vg.Points(1.5)
	scatter.Color = seriesColor
	p.Add(line, scatter)

	p.Legend.Top = true
	p.Legend.XOffs = vg.Points(10)

	return renderPNG(p, vg.Points(800), vg.Points(400))
}

// CreateHistogramChart renders the binned distribution with the specification
// limits and target overlaid.
func CreateHistogramChart(res *spc.Result) ([]byte, error) {
	h := res.Histogram
	if len(h.Bins) == 0 {
		return nil, fmt.Errorf("no histogram bins to plot")
	}

	p := plot.New()
	p.Title.Text = "Histogram"
	p.X.Label.Text = "Measurement"
	p.Y.Label.Text = "Count"
	p.Add(plotter.NewGrid())

	// Zero-variance input has a degenerate bin width; give the bars a
	// nominal width so something visible is drawn.
	width := h.BinWidth
	if width <= 0 {
		width = 1
	}

	maxCount := 0
	for _, bin := range h.Bins {
		if bin.Y > maxCount {
			maxCount = bin.Y
		}
	}

	for _, bin := range h.Bins {
		if bin.Y == 0 {
			continue
		}
		left := bin.X - width/2
		right := bin.X + width/2
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: left, Y: 0},
			{X: right, Y: 0},
			{X: right, Y: float64(bin.Y)},
			{X: left, Y: float64(bin.Y)},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create histogram bar: %w", err)
		}
		poly.Color = barFill
		poly.LineStyle.Color = barOutline
		p.Add(poly)
	}

	top := float64(maxCount) * 1.1
	metrics := res.Capability
	for _, vl := range []struct {
		value float64
		label string
		col   color.Color
	}{
		{metrics.LSL, fmt.Sprintf("LSL %.4g", metrics.LSL), limitColor},
		{metrics.USL, fmt.Sprintf("USL %.4g", metrics.USL), limitColor},
		{metrics.Target, fmt.Sprintf("Target %.4g", metrics.Target), centerColor},
	} {
		line, err := plotter.NewLine(plotter.XYs{
			{X: vl.value, Y: 0},
			{X: vl.value, Y: top},
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create %s line: %w", vl.label, err)
		}
		line.Color = vl.col
		line.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
		p.Add(line)
		p.Legend.Add(vl.label, line)
	}

	p.Y.Min = 0
	p.Legend.Top = true

	return renderPNG(p, vg.Points(800), vg.Points(400))
}

func renderPNG(p *plot.Plot, w, h vg.Length) ([]byte, error) {
	writer, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}
	buf := new(bytes.Buffer)
	if _, err := writer.WriteTo(buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

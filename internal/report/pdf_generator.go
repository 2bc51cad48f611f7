package report

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/Shekhar67907/SPC/internal/spc"
)

const (
	inchToMm              = 25.4
	pdfPageWidthPortrait  = 8.5 * inchToMm // Letter portrait
	pdfPageHeightPortrait = 11 * inchToMm
	pdfMargin             = 0.5 * inchToMm
	pdfContentWidth       = pdfPageWidthPortrait - (2 * pdfMargin)
)

// Meta carries the report header context: where the measurements came from
// and which filters selected them.
type Meta struct {
	Source      string // CSV path or service URL
	From        string
	To          string
	Shift       string
	Material    string
	Operation   string
	Gauge       string
	GeneratedAt time.Time
}

// pdfStyler holds reusable styling and a flowing Y cursor for page layout.
type pdfStyler struct {
	pdf         *gofpdf.Fpdf
	styles      map[string]func()
	lineHeight  float64
	currentY    float64
	pageHeight  float64
	contentTopY float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:         pdf,
		styles:      make(map[string]func()),
		lineHeight:  6, // mm
		pageHeight:  pdfPageHeightPortrait - (2 * pdfMargin),
		contentTopY: pdfMargin,
	}
	s.currentY = s.contentTopY
	s.defineStyles()
	return s
}

func (s *pdfStyler) defineStyles() {
	s.styles["h1"] = func() {
		s.pdf.SetFont("Arial", "B", 16)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["h2"] = func() {
		s.pdf.SetFont("Arial", "B", 13)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["normal"] = func() {
		s.pdf.SetFont("Arial", "", 10)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["small"] = func() {
		s.pdf.SetFont("Arial", "", 8)
		s.pdf.SetTextColor(90, 90, 90)
	}
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
}

func (s *pdfStyler) applyStyle(styleName string) {
	if fn, ok := s.styles[styleName]; ok {
		fn()
	} else {
		s.styles["normal"]()
	}
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.pdf.AddPage()
		s.currentY = s.contentTopY
	}
}

func (s *pdfStyler) newPage() {
	s.pdf.AddPage()
	s.currentY = s.contentTopY
}

func (s *pdfStyler) writeParagraph(text string, styleName string, align string) {
	s.applyStyle(styleName)
	s.checkAddPage(s.lineHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY()
	s.currentY += 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

// writeTable renders a two-column-style table with fixed relative widths.
func (s *pdfStyler) writeTable(headers []string, rows [][]string, colWidthsRel []float64) {
	colWidthsAbs := make([]float64, len(colWidthsRel))
	for i, rel := range colWidthsRel {
		colWidthsAbs[i] = rel * pdfContentWidth
	}

	s.checkAddPage(s.lineHeight * float64(len(rows)+1))

	sY := s.currentY
	sX := pdfMargin
	s.applyStyle("tableHeader")
	for i, header := range headers {
		s.pdf.SetXY(sX, sY)
		s.pdf.CellFormat(colWidthsAbs[i], s.lineHeight, header, "1", 0, "C", true, 0, "")
		sX += colWidthsAbs[i]
	}
	sY += s.lineHeight
	s.currentY = sY

	s.applyStyle("tableCell")
	for _, row := range rows {
		s.checkAddPage(s.lineHeight)
		sY = s.currentY
		sX = pdfMargin
		for i, cell := range row {
			s.pdf.SetXY(sX, sY)
			s.pdf.CellFormat(colWidthsAbs[i], s.lineHeight, cell, "1", 0, "C", false, 0, "")
			sX += colWidthsAbs[i]
		}
		sY += s.lineHeight
		s.currentY = sY
	}
}

func (s *pdfStyler) addImage(imageBytes []byte, imageName string, width, height float64, caption string) {
	s.pdf.RegisterImageReader(imageName, "PNG", bytes.NewReader(imageBytes))

	if width > pdfContentWidth {
		ratio := pdfContentWidth / width
		width = pdfContentWidth
		height *= ratio
	}

	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	s.pdf.Image(imageName, pdfMargin, s.currentY, width, height, false, "PNG", 0, "")
	s.currentY += height

	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "small", "C")
	}
	s.addSpacer(2)
}

// BuildPDFReport writes the SPC report for one analysis run: header with the
// selection filters, control-limit and capability tables, then the charts.
func BuildPDFReport(filepath string, res *spc.Result, meta Meta, chartImages map[string][]byte) error {
	if res == nil {
		return fmt.Errorf("no analysis result to report")
	}

	pdf := gofpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.AddPage()

	styler := newPDFStyler(pdf)

	styler.writeParagraph("Statistical Process Control Report", "h1", "C")
	styler.addSpacer(2)
	styler.writeParagraph(fmt.Sprintf("Generated %s  |  Run %s",
		meta.GeneratedAt.Format("2006-01-02 15:04"), res.RunID), "small", "C")
	styler.addSpacer(4)

	styler.writeParagraph("Selection", "h2", "L")
	selection := [][]string{
		{"Source", meta.Source},
		{"Date range", fmt.Sprintf("%s to %s", orDash(meta.From), orDash(meta.To))},
		{"Shift", orDash(meta.Shift)},
		{"Material", orDash(meta.Material)},
		{"Operation", orDash(meta.Operation)},
		{"Gauge", orDash(meta.Gauge)},
		{"Subgroup size", fmt.Sprintf("%d", res.Options.SubgroupSize)},
		{"Subgroups", fmt.Sprintf("%d", len(res.Subgroups))},
	}
	styler.writeTable([]string{"Parameter", "Value"}, selection, []float64{0.3, 0.7})
	styler.addSpacer(5)

	styler.writeParagraph("Control Limits", "h2", "L")
	limits := res.Limits
	styler.writeTable(
		[]string{"Chart", "LCL", "Center", "UCL"},
		[][]string{
			{"X-Bar", f4(limits.XBarLCL), f4(limits.XBarMean), f4(limits.XBarUCL)},
			{"Range", f4(limits.RangeLCL), f4(limits.RangeMean), f4(limits.RangeUCL)},
		},
		[]float64{0.25, 0.25, 0.25, 0.25})
	styler.addSpacer(5)

	styler.writeParagraph("Process Capability", "h2", "L")
	m := res.Capability
	styler.writeTable(
		[]string{"Index", "Value", "Index", "Value"},
		[][]string{
			{"Cp", f4(m.Cp), "Pp", f4(m.Pp)},
			{"Cpu", f4(m.Cpu), "Ppu", f4(m.Ppu)},
			{"Cpl", f4(m.Cpl), "Ppl", f4(m.Ppl)},
			{"Cpk", f4(m.Cpk), "Ppk", f4(m.Ppk)},
			{"X-Bar", f4(m.XBar), "Std Dev", f4(m.StdDevWithin)},
			{"LSL", f4(m.LSL), "USL", f4(m.USL)},
			{"Target", f4(m.Target), "R-Bar", f4(m.MovingRange)},
		},
		[]float64{0.25, 0.25, 0.25, 0.25})

	chartDefs := []struct {
		Key     string
		Caption string
	}{
		{"xbar", "X-Bar chart with control limits"},
		{"range", "Range chart with control limits"},
		{"histogram", "Measurement distribution with specification limits"},
	}

	imgWidth := pdfContentWidth * 0.95
	imgHeight := imgWidth * 0.5

	styler.newPage()
	styler.writeParagraph("Charts", "h1", "C")
	styler.addSpacer(3)
	for _, def := range chartDefs {
		if imgBytes, ok := chartImages[def.Key]; ok && len(imgBytes) > 0 {
			styler.addImage(imgBytes, def.Key, imgWidth, imgHeight, def.Caption)
		} else {
			styler.writeParagraph(fmt.Sprintf("Chart '%s' not available.", def.Key), "normal", "L")
		}
	}

	return pdf.OutputFileAndClose(filepath)
}

func f4(v float64) string {
	return fmt.Sprintf("%.4f", v)
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}

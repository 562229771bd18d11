package report

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/Jianzhao-Huang/JFK-NIAH/internal/analysis"
)

const (
	inchToMm               = 25.4
	pdfPageWidthLandscape  = 11 * inchToMm // Letter landscape
	pdfPageHeightLandscape = 8.5 * inchToMm
	pdfMargin              = 0.5 * inchToMm
	pdfContentWidth        = pdfPageWidthLandscape - (2 * pdfMargin)
)

// Summary carries the run-level numbers shown at the top of the PDF report.
type Summary struct {
	Title        string
	Model        string
	FilesScanned int
	Trials       int
	Skipped      int
	OverallMean  float64
}

// Images holds the pre-rendered PNGs embedded into the report. Nil entries
// are simply omitted.
type Images struct {
	Heatmap         []byte
	ColorBar        []byte
	MarginalDepth   []byte
	MarginalContext []byte
}

// pdfStyler holds reusable styling and manual Y-position tracking for flowing
// content across pages.
type pdfStyler struct {
	pdf        *gofpdf.Fpdf
	styles     map[string]func()
	lineHeight float64
	currentY   float64
	pageHeight float64
}

func newPDFStyler(pdf *gofpdf.Fpdf) *pdfStyler {
	s := &pdfStyler{
		pdf:        pdf,
		styles:     make(map[string]func()),
		lineHeight: 6, // mm
		pageHeight: pdfPageHeightLandscape - pdfMargin,
		currentY:   pdfMargin,
	}
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
	s.styles["tableHeader"] = func() {
		s.pdf.SetFont("Arial", "B", 9)
		s.pdf.SetFillColor(200, 200, 200)
		s.pdf.SetTextColor(0, 0, 0)
	}
	s.styles["tableCell"] = func() {
		s.pdf.SetFont("Arial", "", 9)
		s.pdf.SetTextColor(50, 50, 50)
	}
	return s
}

func (s *pdfStyler) applyStyle(name string) {
	if fn, ok := s.styles[name]; ok {
		fn()
		return
	}
	s.styles["normal"]()
}

func (s *pdfStyler) checkAddPage(neededHeight float64) {
	if s.currentY+neededHeight > s.pageHeight {
		s.pdf.AddPage()
		s.currentY = pdfMargin
	}
}

func (s *pdfStyler) writeParagraph(text, styleName, align string) {
	s.applyStyle(styleName)
	s.checkAddPage(s.lineHeight)
	s.pdf.SetXY(pdfMargin, s.currentY)
	s.pdf.MultiCell(pdfContentWidth, s.lineHeight, text, "", align, false)
	s.currentY = s.pdf.GetY() + 1
}

func (s *pdfStyler) addSpacer(height float64) {
	s.checkAddPage(height)
	s.currentY += height
}

func (s *pdfStyler) addImage(png []byte, name string, width, height float64, caption string) {
	if len(png) == 0 {
		return
	}
	s.pdf.RegisterImageReader(name, "PNG", bytes.NewReader(png))

	if width > pdfContentWidth {
		height *= pdfContentWidth / width
		width = pdfContentWidth
	}
	captionHeight := 0.0
	if caption != "" {
		captionHeight = s.lineHeight + 1
	}
	s.checkAddPage(height + captionHeight)

	x := pdfMargin + (pdfContentWidth-width)/2
	s.pdf.Image(name, x, s.currentY, width, height, false, "PNG", 0, "")
	s.currentY += height

	if caption != "" {
		s.addSpacer(1)
		s.writeParagraph(caption, "normal", "C")
	}
	s.addSpacer(2)
}

// addMeanTable writes a two-column table of axis label to marginal mean.
// Undefined means render as "n/a" rather than 0.
func (s *pdfStyler) addMeanTable(title, axisHeader string, labels []string, means []float64) {
	s.writeParagraph(title, "h2", "L")

	colWidths := []float64{0.3 * pdfContentWidth, 0.3 * pdfContentWidth}
	headers := []string{axisHeader, "Mean Score"}

	s.checkAddPage(s.lineHeight * float64(len(labels)+1))

	x := pdfMargin
	s.applyStyle("tableHeader")
	for i, header := range headers {
		s.pdf.SetXY(x, s.currentY)
		s.pdf.CellFormat(colWidths[i], s.lineHeight, header, "1", 0, "C", true, 0, "")
		x += colWidths[i]
	}
	s.currentY += s.lineHeight

	s.applyStyle("tableCell")
	for i, label := range labels {
		s.checkAddPage(s.lineHeight)
		meanText := "n/a"
		if !math.IsNaN(means[i]) {
			meanText = strconv.FormatFloat(means[i], 'f', 2, 64)
		}
		x = pdfMargin
		for j, cell := range []string{label, meanText} {
			s.pdf.SetXY(x, s.currentY)
			s.pdf.CellFormat(colWidths[j], s.lineHeight, cell, "1", 0, "C", false, 0, "")
			x += colWidths[j]
		}
		s.currentY += s.lineHeight
	}
	s.addSpacer(5)
}

// BuildPDFReport writes the full report: summary, heatmap with color bar,
// marginal line plots, and marginal-mean tables.
func BuildPDFReport(path string, summary Summary, grid *analysis.Grid, images Images) error {
	pdf := gofpdf.New("L", "mm", "Letter", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.AddPage()

	styler := newPDFStyler(pdf)

	title := summary.Title
	if title == "" {
		title = "Needle In A Haystack Evaluation Report"
	}
	styler.writeParagraph(title, "h1", "C")
	styler.addSpacer(3)

	if summary.Model != "" {
		styler.writeParagraph(fmt.Sprintf("Model: %s", summary.Model), "normal", "L")
	}
	styler.writeParagraph(fmt.Sprintf("Result files scanned: %d", summary.FilesScanned), "normal", "L")
	styler.writeParagraph(fmt.Sprintf("Trials aggregated: %d (skipped: %d)", summary.Trials, summary.Skipped), "normal", "L")
	overall := "n/a"
	if !math.IsNaN(summary.OverallMean) {
		overall = fmt.Sprintf("%.2f", summary.OverallMean)
	}
	styler.writeParagraph(fmt.Sprintf("Overall mean score: %s", overall), "normal", "L")
	if grid != nil {
		if min, max := grid.ScoreRange(); !math.IsNaN(min) {
			styler.writeParagraph(fmt.Sprintf("Cell score range: %.2f to %.2f", min, max), "normal", "L")
		}
	}
	styler.addSpacer(5)

	if grid == nil || len(grid.Depths) == 0 {
		styler.writeParagraph("No aggregated results to display.", "normal", "L")
		return pdf.OutputFileAndClose(path)
	}

	imgWidth := pdfContentWidth * 0.9
	styler.addImage(images.Heatmap, "heatmap", imgWidth, imgWidth*0.5,
		"Mean retrieval score by needle depth and context length")
	styler.addImage(images.ColorBar, "colorbar", imgWidth*0.7, imgWidth*0.7*0.07, "")

	pdf.AddPage()
	styler.currentY = pdfMargin
	styler.writeParagraph("Marginal Means", "h1", "C")
	styler.addSpacer(3)

	lineWidth := pdfContentWidth * 0.75
	styler.addImage(images.MarginalDepth, "marginal_depth", lineWidth, lineWidth*0.5, "")
	styler.addImage(images.MarginalContext, "marginal_context", lineWidth, lineWidth*0.5, "")

	pdf.AddPage()
	styler.currentY = pdfMargin

	depthLabels := make([]string, len(grid.Depths))
	for i, depth := range grid.Depths {
		depthLabels[i] = formatDepth(depth)
	}
	styler.addMeanTable("Mean Score by Needle Depth", "Depth", depthLabels, analysis.RowMeans(grid))

	ctxLabels := make([]string, len(grid.ContextLengths))
	for i, ctx := range grid.ContextLengths {
		ctxLabels[i] = strconv.Itoa(ctx)
	}
	styler.addMeanTable("Mean Score by Context Length", "Context Length (tokens)", ctxLabels, analysis.ColMeans(grid))

	return pdf.OutputFileAndClose(path)
}

package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/atlasforge/atlasforge/internal/model"
)

// cellColor represents an RGB color for a placed glyph cell.
type cellColor struct {
	R, G, B int
}

// cellColors is the palette cycled through when drawing glyph cells.
var cellColors = []cellColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF proof sheet for an atlas layout: a page with
// the packed glyph cells drawn to scale, followed by a summary page with
// statistics and a per-glyph placement table.
func ExportPDF(path string, result model.AtlasResult, fontFile string) error {
	if len(result.Placements) == 0 {
		return fmt.Errorf("no placements to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderLayoutPage(pdf, result, fontFile)

	pdf.AddPage()
	renderSummaryPage(pdf, result, fontFile)

	return pdf.OutputFileAndClose(path)
}

// renderLayoutPage draws the atlas layout to scale on the current page.
func renderLayoutPage(pdf *fpdf.Fpdf, result model.AtlasResult, fontFile string) {
	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	title := fmt.Sprintf("Atlas Layout: %s (%d x %d texels)", fontFile, result.Width, result.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Glyphs: %d | Char height: %d px | Used area: %d px² | Total area: %d px² | Efficiency: %.1f%%",
		len(result.Placements), result.CharHeight, result.UsedArea(), result.TotalArea(), result.Efficiency())
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Calculate drawing area
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom

	// Calculate scale to fit the texture within the drawing area
	scaleX := drawWidth / float64(result.Width)
	scaleY := drawHeight / float64(result.Height)
	scale := math.Min(scaleX, scaleY)

	canvasW := float64(result.Width) * scale
	canvasH := float64(result.Height) * scale

	// Center the drawing horizontally
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	// Draw texture background
	pdf.SetFillColor(40, 40, 40)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	pdf.Rect(offsetX, offsetY, canvasW, canvasH, "FD")

	// Draw placed glyph cells
	for i, p := range result.Placements {
		col := cellColors[i%len(cellColors)]
		cw := float64(p.W) * scale
		ch := float64(p.H) * scale
		cx := offsetX + float64(p.X)*scale
		cy := offsetY + float64(p.Y)*scale

		// Cell fill
		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.2)
		pdf.Rect(cx, cy, cw, ch, "FD")

		// Rune label (only if the cell is large enough)
		if cw > 4 && ch > 4 {
			pdf.SetFont("Helvetica", "", labelFontSize(cw, ch))
			pdf.SetTextColor(0, 0, 0)

			label := glyphLabel(p.Rune)
			labelW := pdf.GetStringWidth(label)
			if labelW < cw-1 {
				pdf.SetXY(cx+(cw-labelW)/2, cy+ch/2-2)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
		}
	}

	// Dimension annotations along the edges
	drawDimensionAnnotations(pdf, result, scale, offsetX, offsetY, canvasW, canvasH)
}

// drawDimensionAnnotations adds width and height labels outside the texture rectangle.
func drawDimensionAnnotations(pdf *fpdf.Fpdf, result model.AtlasResult, scale, offsetX, offsetY, canvasW, canvasH float64) {
	pdf.SetFont("Helvetica", "", 8)
	pdf.SetTextColor(80, 80, 80)

	// Width annotation (below the texture)
	widthLabel := fmt.Sprintf("%d px", result.Width)
	wLabelW := pdf.GetStringWidth(widthLabel)
	pdf.SetXY(offsetX+(canvasW-wLabelW)/2, offsetY+canvasH+1)
	pdf.CellFormat(wLabelW, 4, widthLabel, "", 0, "C", false, 0, "")

	// Height annotation (to the left of the texture, rotated)
	heightLabel := fmt.Sprintf("%d px", result.Height)
	pdf.TransformBegin()
	pdf.TransformRotate(90, offsetX-3, offsetY+canvasH/2)
	hLabelW := pdf.GetStringWidth(heightLabel)
	pdf.SetXY(offsetX-3-hLabelW/2, offsetY+canvasH/2-2)
	pdf.CellFormat(hLabelW, 4, heightLabel, "", 0, "C", false, 0, "")
	pdf.TransformEnd()

	// Reset text color
	pdf.SetTextColor(0, 0, 0)
}

// renderSummaryPage draws the summary page with overall statistics and a
// per-glyph placement table.
func renderSummaryPage(pdf *fpdf.Fpdf, result model.AtlasResult, fontFile string) {
	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Atlas Generation Summary", "", 0, "L", false, 0, "")

	// Separator line
	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	// Overall statistics
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Overall Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Font", fontFile},
		{"Texture Size", fmt.Sprintf("%d x %d px", result.Width, result.Height)},
		{"Char Height", fmt.Sprintf("%d px", result.CharHeight)},
		{"Glyphs Placed", fmt.Sprintf("%d", len(result.Placements))},
		{"Efficiency", fmt.Sprintf("%.1f%%", result.Efficiency())},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(100, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	// Per-glyph placement table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Glyph Placements", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{20, 25, 20, 20, 20, 20}
	headers := []string{"Glyph", "Unicode", "X", "Y", "W", "H"}
	tableWidth := 0.0
	for _, w := range colWidths {
		tableWidth += w
	}

	// Fit as many table columns side by side as the page allows,
	// wrapping to a new page when the full height is used.
	drawHeader := func(x, yy float64) {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for i, header := range headers {
			pdf.SetXY(x, yy)
			pdf.CellFormat(colWidths[i], 5, header, "1", 0, "C", true, 0, "")
			x += colWidths[i]
		}
	}

	tableX := marginLeft
	tableTop := y
	drawHeader(tableX, y)
	y += 5

	pdf.SetFont("Helvetica", "", 8)
	for i, p := range result.Placements {
		if y+5 > pageHeight-marginBottom {
			// Next column block, or a fresh page when the row is full
			tableX += tableWidth + 10
			if tableX+tableWidth > pageWidth-marginRight {
				pdf.AddPage()
				tableX = marginLeft
				tableTop = marginTop
			}
			drawHeader(tableX, tableTop)
			y = tableTop + 5
			pdf.SetFont("Helvetica", "", 8)
		}

		rowData := []string{
			glyphLabel(p.Rune),
			fmt.Sprintf("U+%04X", p.Rune),
			fmt.Sprintf("%d", p.X),
			fmt.Sprintf("%d", p.Y),
			fmt.Sprintf("%d", p.W),
			fmt.Sprintf("%d", p.H),
		}

		// Alternate row background
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		x := tableX
		for j, cell := range rowData {
			pdf.SetXY(x, y)
			pdf.CellFormat(colWidths[j], 5, cell, "1", 0, "C", true, 0, "")
			x += colWidths[j]
		}
		y += 5
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by AtlasForge - Font Atlas Generator", "", 0, "C", false, 0, "")
}

// glyphLabel returns a printable label for a rune, falling back to the
// codepoint for whitespace and non-ASCII characters that Helvetica may
// not cover.
func glyphLabel(r rune) string {
	if r > 0x20 && r < 0x7F {
		return string(r)
	}
	return fmt.Sprintf("U+%04X", r)
}

// labelFontSize returns an appropriate font size based on the cell dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 12:
		return 7
	case minDim > 7:
		return 6
	default:
		return 4
	}
}

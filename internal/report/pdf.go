package report

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// =============================================================================
// PDF Generator
// =============================================================================

// PDFGenerator lays out a composed document plus its technical footer across
// A4 pages.
type PDFGenerator struct {
	// Page dimensions (A4 in mm)
	pageWidth  float64
	pageHeight float64
	margin     float64

	// Content area
	contentWidth float64

	// bottomMargin is the footer exclusion zone: body lines never enter it.
	bottomMargin float64

	// footerOffset anchors the one-time technical footer above the page end.
	footerOffset float64

	// lineHeight is the per-line vertical advance of body text.
	lineHeight float64
}

// Font sizes in points.
const (
	fontTitle    = 16
	fontSubtitle = 12
	fontBody     = 11
	fontSmall    = 9
)

// NewPDFGenerator creates a PDF generator with the fixed document geometry.
func NewPDFGenerator() *PDFGenerator {
	margin := 20.0
	pageWidth := 210.0 // A4 width in mm
	return &PDFGenerator{
		pageWidth:    pageWidth,
		pageHeight:   297.0, // A4 height in mm
		margin:       margin,
		contentWidth: pageWidth - (2 * margin),
		bottomMargin: 40.0,
		footerOffset: 30.0,
		lineHeight:   5.0,
	}
}

// Format returns the output format of this generator.
func (g *PDFGenerator) Format() Format {
	return FormatPDF
}

// Generate renders the document and writes the PDF bytes to w.
//
// Body text is wrapped to the content width and emitted line by line; a page
// break is forced whenever the cursor would enter the bottom margin. The
// technical footer lands exactly once, anchored to the bottom of the page
// reached after the last body line.
func (g *PDFGenerator) Generate(ctx context.Context, data *Data, w io.Writer) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetTitle(tr("Ofício de Requisição de Imagens - DAS/PCERJ"), true)
	pdf.SetCreator("oficiogen", true)

	pdf.AddPage()
	y := g.margin
	y = g.addHeader(pdf, tr, y)
	g.addBody(pdf, tr, data.Text, y)
	g.addTechnicalFooter(pdf, tr, data)

	if err := pdf.Error(); err != nil {
		return 0, fmt.Errorf("pdf generation error: %w", err)
	}

	// Write to buffer to count bytes
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return 0, fmt.Errorf("pdf output error: %w", err)
	}

	n, err := w.Write(buf.Bytes())
	return int64(n), err
}

// =============================================================================
// Header
// =============================================================================

func (g *PDFGenerator) addHeader(pdf *fpdf.Fpdf, tr func(string) string, y float64) float64 {
	pdf.SetFont("Helvetica", "B", fontTitle)
	title := tr("POLÍCIA CIVIL DO ESTADO DO RIO DE JANEIRO")
	pdf.Text((g.pageWidth-pdf.GetStringWidth(title))/2, y, title)
	y += 8

	pdf.SetFont("Helvetica", "B", fontSubtitle)
	subtitle := "DELEGACIA ANTISSEQUESTRO - DAS"
	pdf.Text((g.pageWidth-pdf.GetStringWidth(subtitle))/2, y, subtitle)
	y += 12

	pdf.SetLineWidth(0.5)
	pdf.Line(g.margin, y, g.pageWidth-g.margin, y)
	y += 10

	return y
}

// =============================================================================
// Body Pagination
// =============================================================================

// paginate groups wrapped body lines into pages. The cursor starts at startY
// on the first page and at the top margin on every later page; a line that
// would land inside the bottom margin opens a new page instead.
func (g *PDFGenerator) paginate(lines []string, startY float64) [][]string {
	pages := [][]string{}
	page := []string{}
	y := startY

	for _, line := range lines {
		if y > g.pageHeight-g.bottomMargin {
			pages = append(pages, page)
			page = []string{}
			y = g.margin
		}
		page = append(page, line)
		y += g.lineHeight
	}
	return append(pages, page)
}

// addBody wraps text to the content width and emits it page by page.
func (g *PDFGenerator) addBody(pdf *fpdf.Fpdf, tr func(string) string, text string, y float64) float64 {
	pdf.SetFont("Helvetica", "", fontBody)
	lines := pdf.SplitText(tr(text), g.contentWidth)

	for i, page := range g.paginate(lines, y) {
		if i > 0 {
			pdf.AddPage()
			y = g.margin
		}
		for _, line := range page {
			pdf.Text(g.margin, y, line)
			y += g.lineHeight
		}
	}
	return y + 10
}

// =============================================================================
// Technical Footer
// =============================================================================

// addTechnicalFooter draws the one-time footer on the current (last) page:
// generation timestamp, optional coordinates, the attachment digest manifest
// and the neighborhood/city reference line.
func (g *PDFGenerator) addTechnicalFooter(pdf *fpdf.Fpdf, tr func(string) string, data *Data) {
	footerY := g.pageHeight - g.footerOffset

	pdf.SetLineWidth(0.3)
	pdf.Line(g.margin, footerY-5, g.pageWidth-g.margin, footerY-5)

	pdf.SetFont("Helvetica", "", fontSmall)
	currentY := footerY

	pdf.Text(g.margin, currentY, fmt.Sprintf("Gerado em: %s (America/Sao_Paulo)", FormatGeneratedAt(data.GeneratedAt)))
	currentY += 4

	if data.Form.HasCoordinates() {
		pdf.Text(g.margin, currentY, fmt.Sprintf("Coordenadas: %s, %s", data.Form.Lat, data.Form.Lon))
		currentY += 4
	}

	if len(data.Attachments) > 0 {
		pdf.Text(g.margin, currentY, "Anexos (hashes):")
		currentY += 4

		for _, att := range data.Attachments {
			hashLine := tr(fmt.Sprintf("%s – SHA256: %s", att.Name, att.Digest))
			for _, line := range pdf.SplitText(hashLine, g.contentWidth) {
				pdf.Text(g.margin+5, currentY, line)
				currentY += 3
			}
		}
	}

	ref := fmt.Sprintf("Ref.: %s/%s – %s",
		ExtractBairro(data.Form.Endereco),
		ExtractCidade(data.Form.Endereco),
		data.Form.NProc,
	)
	pdf.Text(g.margin, currentY+2, tr(ref))
}

// =============================================================================
// Reference Line Derivation
// =============================================================================

// ExtractBairro takes the second comma-delimited segment of the address as
// the neighborhood, or "N/A" when the address has fewer segments.
func ExtractBairro(endereco string) string {
	if endereco == "" {
		return "N/A"
	}
	parts := strings.Split(endereco, ",")
	if len(parts) >= 2 {
		return strings.TrimSpace(parts[1])
	}
	return "N/A"
}

// ExtractCidade takes the third comma-delimited segment of the address as
// the city. Addresses without one still resolve to "Rio de Janeiro" when the
// text mentions the city or the state abbreviation.
func ExtractCidade(endereco string) string {
	if endereco == "" {
		return "N/A"
	}
	parts := strings.Split(endereco, ",")
	if len(parts) >= 3 {
		return strings.TrimSpace(parts[2])
	}
	if strings.Contains(strings.ToLower(endereco), "rio de janeiro") || strings.Contains(endereco, "RJ") {
		return "Rio de Janeiro"
	}
	return "N/A"
}

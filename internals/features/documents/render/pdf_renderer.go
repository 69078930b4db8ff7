package render

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"schooldocs_backend/internals/features/documents/drafts"
)

const (
	pageW = 210.0 // A4, mm
	pageH = 297.0

	docMargin  = 12.0
	contentW   = pageW - 2*docMargin
	fontFamily = "Helvetica"
	utf8Family = "DocFont"

	// signature line sits signatureOffset above the sheet bottom
	signatureOffset  = 30.0
	signatureReserve = signatureOffset + 8
)

type PDFOptions struct {
	// FontPath points at a TTF with Bengali glyphs. Without it the PDF uses
	// the core Helvetica font and English captions.
	FontPath string
	// TileGap is the gap between copies and around the page, in mm.
	TileGap  float64
	Compress bool
}

type pdfRenderer struct {
	opts PDFOptions
}

func NewPDFRenderer(opts PDFOptions) PDFRenderer {
	if opts.TileGap <= 0 {
		opts.TileGap = 4
	}
	return &pdfRenderer{opts: opts}
}

// RenderPDF draws one copy of the document per tile; layout 1/2/4/9 puts
// that many scaled copies of the same content on a single A4 page. A
// document taller than A4 is shrunk as a whole so nothing is cut off.
func (r *pdfRenderer) RenderPDF(input RenderInput) ([]byte, error) {
	if input.Draft == nil {
		return nil, ErrUnknownDocument
	}
	s := input.Settings.Normalize()

	bottom, err := r.measure(input, s)
	if err != nil {
		return nil, err
	}
	p, err := r.newPainter(input, s)
	if err != nil {
		return nil, err
	}
	p.sheetH = sheetHeight(bottom, s)
	pdf := p.pdf

	pdf.AddPage()
	for _, cell := range tiles(s.Layout, r.opts.TileGap) {
		scale, placed := Fit(pageW, p.sheetH, cell)
		pdf.ClipRect(placed.X, placed.Y, placed.W, placed.H, false)
		pdf.TransformBegin()
		pdf.TransformTranslate(placed.X, placed.Y)
		pdf.TransformScale(scale*100, scale*100, 0, 0)
		p.draw()
		pdf.TransformEnd()
		pdf.ClipEnd()
		if s.Layout > 1 {
			pdf.SetDrawColor(200, 200, 200)
			pdf.SetLineWidth(0.1)
			pdf.SetDashPattern([]float64{1, 1}, 0)
			pdf.Rect(cell.X, cell.Y, cell.W, cell.H, "D")
			pdf.SetDashPattern([]float64{}, 0)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *pdfRenderer) newPainter(input RenderInput, s drafts.TemplateSettings) (*painter, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.opts.Compress)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetCreator("schooldocs", true)
	pdf.SetTitle(input.Draft.FileName(), true)

	family := fontFamily
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	lang := s.Language
	if r.opts.FontPath != "" {
		pdf.AddUTF8Font(utf8Family, "", r.opts.FontPath)
		pdf.AddUTF8Font(utf8Family, "B", r.opts.FontPath)
		family = utf8Family
		tr = func(s string) string { return s }
	} else {
		lang = drafts.LangEN
	}

	view, err := BuildView(input.Draft, lang)
	if err != nil {
		return nil, err
	}
	return &painter{
		pdf:      pdf,
		tr:       tr,
		family:   family,
		color:    parseHexColor(sanitizeColor(s.PrimaryColor)),
		settings: s,
		school:   input.School,
		lang:     lang,
		view:     view,
		sheetH:   pageH,
	}, nil
}

// measure lays the content out once on a scratch document and returns the
// y where it ends, in mm at full size.
func (r *pdfRenderer) measure(input RenderInput, s drafts.TemplateSettings) (float64, error) {
	p, err := r.newPainter(input, s)
	if err != nil {
		return 0, err
	}
	p.pdf.AddPage()
	p.content()
	if err := p.pdf.Error(); err != nil {
		return 0, fmt.Errorf("measure pdf: %w", err)
	}
	return p.pdf.GetY(), nil
}

// sheetHeight is the full-size height of one copy: an A4 page, or taller
// when the content plus the bottom margin (and signature) runs past it.
func sheetHeight(contentBottom float64, s drafts.TemplateSettings) float64 {
	reserve := docMargin
	if s.ShowSignature {
		reserve = signatureReserve
	}
	return math.Max(pageH, contentBottom+reserve)
}

func tiles(layout int, gap float64) []Rect {
	if layout <= 1 {
		return []Rect{{X: 0, Y: 0, W: pageW, H: pageH}}
	}
	return TileRects(layout, pageW, pageH, gap)
}

type rgb struct{ r, g, b int }

func parseHexColor(hex string) rgb {
	hex = strings.TrimPrefix(hex, "#")
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil || len(hex) != 6 {
		return rgb{31, 78, 121}
	}
	return rgb{int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)}
}

// painter draws a single full-size copy, pageW × sheetH, at the origin.
type painter struct {
	sheetH   float64
	pdf      *gofpdf.Fpdf
	tr       func(string) string
	family   string
	color    rgb
	settings drafts.TemplateSettings
	school   SchoolHeader
	lang     string
	view     View
}

func (p *painter) font(style string, size float64) {
	if p.family == utf8Family && style != "" && style != "B" {
		style = ""
	}
	p.pdf.SetFont(p.family, style, size)
}

func (p *painter) draw() {
	pdf := p.pdf
	pdf.SetTextColor(17, 24, 39)

	if p.settings.ShowBorder {
		pdf.SetDrawColor(p.color.r, p.color.g, p.color.b)
		pdf.SetLineWidth(0.8)
		pdf.Rect(6, 6, pageW-12, p.sheetH-12, "D")
	}
	if p.settings.ShowWatermark {
		p.watermark()
	}
	p.content()
	if p.settings.ShowSignature {
		p.signature()
	}
}

func (p *painter) content() {
	p.pdf.SetXY(docMargin, docMargin+2)
	p.header()
	p.heading()
	p.meta()
	p.body()
	p.table()
	p.summary()
}

func (p *painter) header() {
	pdf := p.pdf
	pdf.SetTextColor(p.color.r, p.color.g, p.color.b)
	p.font("B", 18)
	pdf.SetX(docMargin)
	pdf.CellFormat(contentW, 9, p.tr(p.school.NameIn(p.lang)), "", 1, "C", false, 0, "")

	pdf.SetTextColor(75, 85, 99)
	p.font("", 10)
	if p.school.Address != "" {
		pdf.SetX(docMargin)
		pdf.CellFormat(contentW, 5, p.tr(p.school.Address), "", 1, "C", false, 0, "")
	}
	var contact []string
	if p.school.EIIN != "" {
		contact = append(contact, "EIIN: "+p.school.EIIN)
	}
	if p.school.Phone != "" {
		contact = append(contact, p.school.Phone)
	}
	if p.school.Email != "" {
		contact = append(contact, p.school.Email)
	}
	if len(contact) > 0 {
		pdf.SetX(docMargin)
		pdf.CellFormat(contentW, 5, p.tr(strings.Join(contact, " | ")), "", 1, "C", false, 0, "")
	}

	y := pdf.GetY() + 2
	pdf.SetDrawColor(p.color.r, p.color.g, p.color.b)
	pdf.SetLineWidth(0.6)
	pdf.Line(docMargin, y, pageW-docMargin, y)
	pdf.SetY(y + 4)
	pdf.SetTextColor(17, 24, 39)
}

func (p *painter) heading() {
	pdf := p.pdf
	p.font("B", 14)
	pdf.SetX(docMargin)
	pdf.CellFormat(contentW, 8, p.tr(p.view.Heading), "", 1, "C", false, 0, "")
	if p.view.Subheading != "" {
		p.font("", 11)
		pdf.SetX(docMargin)
		pdf.CellFormat(contentW, 6, p.tr(p.view.Subheading), "", 1, "C", false, 0, "")
	}
	pdf.Ln(3)
}

func (p *painter) meta() {
	if len(p.view.Meta) == 0 {
		return
	}
	pdf := p.pdf
	colW := contentW / 2
	for i, m := range p.view.Meta {
		x := docMargin
		if i%2 == 1 {
			x += colW
		}
		pdf.SetX(x)
		p.font("B", 10)
		label := p.tr(m.Label + ": ")
		lw := pdf.GetStringWidth(label) + 1
		pdf.CellFormat(lw, 6, label, "", 0, "L", false, 0, "")
		p.font("", 10)
		ln := 0
		if i%2 == 1 || i == len(p.view.Meta)-1 {
			ln = 1
		}
		pdf.CellFormat(colW-lw, 6, p.tr(m.Value), "", ln, "L", false, 0, "")
	}
	pdf.Ln(3)
}

func (p *painter) body() {
	pdf := p.pdf
	p.font("", 11)
	for _, para := range p.view.Paragraphs {
		pdf.SetX(docMargin)
		pdf.MultiCell(contentW, 6, p.tr(para), "", "J", false)
		pdf.Ln(2)
	}
	for _, b := range p.view.Bullets {
		pdf.SetX(docMargin + 4)
		pdf.MultiCell(contentW-4, 6, p.tr("- "+b), "", "L", false)
	}
	if len(p.view.Paragraphs)+len(p.view.Bullets) > 0 {
		pdf.Ln(3)
	}
}

func (p *painter) table() {
	t := p.view.Table
	if t == nil || len(t.Headers) == 0 {
		return
	}
	pdf := p.pdf
	widths := columnWidths(t.Weights, len(t.Headers), contentW)
	align := func(i int) string {
		if i < len(t.Right) && t.Right[i] {
			return "R"
		}
		return "L"
	}

	pdf.SetFillColor(p.color.r, p.color.g, p.color.b)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetDrawColor(229, 231, 235)
	pdf.SetLineWidth(0.2)
	p.font("B", 9)
	pdf.SetX(docMargin)
	for i, h := range t.Headers {
		pdf.CellFormat(widths[i], 7, p.tr(h), "1", 0, align(i), true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetTextColor(17, 24, 39)
	p.font("", 9)
	for ri, row := range t.Rows {
		pdf.SetX(docMargin)
		fill := ri%2 == 1
		if fill {
			pdf.SetFillColor(243, 244, 246)
		}
		for i := range t.Headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pdf.CellFormat(widths[i], 6.5, p.tr(cell), "1", 0, align(i), fill, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(3)
}

func columnWidths(weights []float64, n int, total float64) []float64 {
	out := make([]float64, n)
	sum := 0.0
	for i := 0; i < n; i++ {
		w := 1.0
		if i < len(weights) && weights[i] > 0 {
			w = weights[i]
		}
		out[i] = w
		sum += w
	}
	for i := range out {
		out[i] = out[i] / sum * total
	}
	return out
}

func (p *painter) summary() {
	if len(p.view.Summary) == 0 {
		return
	}
	pdf := p.pdf
	const boxW = 90.0
	x := pageW - docMargin - boxW
	for _, s := range p.view.Summary {
		pdf.SetX(x)
		style := ""
		border := ""
		if s.Strong {
			style, border = "B", "T"
		}
		p.font(style, 10)
		pdf.CellFormat(boxW*0.6, 6, p.tr(s.Label), border, 0, "L", false, 0, "")
		pdf.CellFormat(boxW*0.4, 6, p.tr(s.Value), border, 1, "R", false, 0, "")
	}
}

func (p *painter) signature() {
	pdf := p.pdf
	const lineW = 60.0
	y := p.sheetH - signatureOffset
	x := pageW - docMargin - lineW
	pdf.SetDrawColor(17, 24, 39)
	pdf.SetLineWidth(0.3)
	pdf.Line(x, y, x+lineW, y)
	p.font("", 9)
	pdf.SetXY(x, y+1)
	if p.view.SignedBy != "" {
		pdf.CellFormat(lineW, 5, p.tr(p.view.SignedBy), "", 2, "C", false, 0, "")
	}
	pdf.CellFormat(lineW, 5, p.tr(p.view.Signature), "", 0, "C", false, 0, "")
}

func (p *painter) watermark() {
	pdf := p.pdf
	pdf.SetAlpha(0.08, "Normal")
	pdf.TransformBegin()
	pdf.TransformRotate(35, pageW/2, p.sheetH/2)
	p.font("B", 64)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(0, p.sheetH/2-15)
	pdf.CellFormat(pageW, 30, p.tr(p.settings.WatermarkText), "", 0, "C", false, 0, "")
	pdf.TransformEnd()
	pdf.SetAlpha(1, "Normal")
	pdf.SetTextColor(17, 24, 39)
}

package render

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schooldocs_backend/internals/features/documents/drafts"
)

func feeReceipt(t *testing.T) drafts.Draft {
	t.Helper()
	d, err := drafts.Decode(drafts.TypeFeeReceipt, []byte(`{
		"receiptNumber": "R-001",
		"date": "2025-02-01",
		"studentName": "Tanvir",
		"className": "Ten",
		"items": [{"description": "Tuition", "amount": "1500"}, {"description": "Exam", "amount": "500"}],
		"discount": "100"
	}`))
	require.NoError(t, err)
	return d
}

func allDrafts(t *testing.T) []drafts.Draft {
	t.Helper()
	payloads := map[string]string{
		drafts.TypeFeeReceipt:     `{"receiptNumber":"1","studentName":"A","className":"C","items":[{"description":"x","amount":"1"}]}`,
		drafts.TypeMarksheet:      `{"studentName":"A","roll":"1","className":"C","examName":"E","subjects":[{"name":"Math","marks":"81"}]}`,
		drafts.TypeNotice:         `{"date":"2025-01-01","title":"Holiday","body":"School closed.\nReopens Sunday.","points":[{"text":"Bring ID"}]}`,
		drafts.TypePaySheet:       `{"employeeName":"E","employeeId":"7","month":"May","basicSalary":"1000","adjustments":[{"description":"Bonus","amount":"50","kind":"earning"}]}`,
		drafts.TypeResultSheet:    `{"className":"C","examName":"E","students":[{"roll":"2","name":"B","marks":"40"},{"roll":"1","name":"A","marks":"90"}]}`,
		drafts.TypeTeacherRoutine: `{"teacherName":"T","periods":[{"day":"monday","startTime":"08:00","endTime":"08:45","className":"6","subject":"Bangla"}]}`,
	}
	var out []drafts.Draft
	for _, typ := range drafts.Types {
		d, err := drafts.Decode(typ, []byte(payloads[typ]))
		require.NoError(t, err, typ)
		out = append(out, d)
	}
	return out
}

func TestBuildViewEveryType(t *testing.T) {
	for _, d := range allDrafts(t) {
		for _, lang := range []string{drafts.LangEN, drafts.LangBN} {
			v, err := BuildView(d, lang)
			require.NoError(t, err, d.DocumentType())
			assert.NotEmpty(t, v.Heading, d.DocumentType())
			assert.Equal(t, d.DocumentType(), v.DocumentType)
		}
	}
}

func TestBuildViewResultSheetInRollOrder(t *testing.T) {
	d := allDrafts(t)[4]
	v, err := BuildView(d, drafts.LangEN)
	require.NoError(t, err)
	require.Len(t, v.Table.Rows, 2)
	assert.Equal(t, []string{"1", "A", "90", "A+", "1"}, v.Table.Rows[0])
	assert.Equal(t, []string{"2", "B", "40", "C", "2"}, v.Table.Rows[1])
}

func TestRenderHTML(t *testing.T) {
	r := NewHTMLRenderer()
	html, err := r.RenderHTML(RenderInput{
		Draft:    feeReceipt(t),
		Settings: drafts.TemplateSettings{Layout: 4, Language: drafts.LangBN, ShowSignature: true},
		School:   SchoolHeader{Name: "Dhaka Model School", NameBn: "ঢাকা মডেল স্কুল", EIIN: "108000"},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, strings.Count(html, `<div class="doc">`))
	assert.Contains(t, html, "ঢাকা মডেল স্কুল")
	assert.Contains(t, html, "টাকা প্রাপ্তির রসিদ")
	assert.Contains(t, html, "1,900.00")
	assert.Contains(t, html, "repeat(2, 1fr)")
}

func TestRenderHTMLEscapesInput(t *testing.T) {
	d, err := drafts.Decode(drafts.TypeNotice, []byte(`{"date":"2025-01-01","title":"<script>alert(1)</script>","body":"ok"}`))
	require.NoError(t, err)
	html, err := NewHTMLRenderer().RenderHTML(RenderInput{Draft: d})
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
}

func TestRenderPDFTilesSameDocument(t *testing.T) {
	r := NewPDFRenderer(PDFOptions{Compress: false})
	for _, layout := range []int{1, 2, 4, 9} {
		out, err := r.RenderPDF(RenderInput{
			Draft:    feeReceipt(t),
			Settings: drafts.TemplateSettings{Layout: layout, ShowBorder: true, ShowWatermark: true, ShowSignature: true},
			School:   SchoolHeader{Name: "Dhaka Model School"},
		})
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
		assert.Equal(t, layout, bytes.Count(out, []byte("(R-001)")), "layout %d", layout)
		assert.Contains(t, string(out), "/Count 1", "single page for layout %d", layout)
	}
}

func TestRenderPDFEveryType(t *testing.T) {
	r := NewPDFRenderer(PDFOptions{Compress: true})
	for _, d := range allDrafts(t) {
		out, err := r.RenderPDF(RenderInput{Draft: d, Settings: drafts.DefaultSettings()})
		require.NoError(t, err, d.DocumentType())
		assert.NotEmpty(t, out)
	}
}

func TestRenderNilDraft(t *testing.T) {
	_, err := NewPDFRenderer(PDFOptions{}).RenderPDF(RenderInput{})
	assert.ErrorIs(t, err, ErrUnknownDocument)
	_, err = NewHTMLRenderer().RenderHTML(RenderInput{})
	assert.ErrorIs(t, err, ErrUnknownDocument)
}

func longResultSheet(t *testing.T, n int) drafts.Draft {
	t.Helper()
	var b strings.Builder
	b.WriteString(`{"className":"Ten","examName":"Final","students":[`)
	for i := 1; i <= n; i++ {
		if i > 1 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, `{"roll":"%d","name":"Student %d","marks":"%d"}`, i, i, 30+i%70)
	}
	b.WriteString(`]}`)
	d, err := drafts.Decode(drafts.TypeResultSheet, []byte(b.String()))
	require.NoError(t, err)
	return d
}

func TestRenderPDFLongDocumentFitsEveryTile(t *testing.T) {
	r := NewPDFRenderer(PDFOptions{}).(*pdfRenderer)
	in := RenderInput{
		Draft:    longResultSheet(t, 60),
		Settings: drafts.TemplateSettings{Layout: 1, ShowSignature: true, ShowBorder: true},
	}
	s := in.Settings.Normalize()

	bottom, err := r.measure(in, s)
	require.NoError(t, err)
	require.Greater(t, bottom, pageH, "60 rows plus statistics run past one A4 page")

	sheetH := sheetHeight(bottom, s)
	assert.GreaterOrEqual(t, sheetH-signatureReserve, bottom)

	for _, layout := range []int{1, 2, 4, 9} {
		for _, cell := range tiles(layout, r.opts.TileGap) {
			scale, placed := Fit(pageW, sheetH, cell)
			assert.LessOrEqual(t, placed.Y+bottom*scale, cell.Y+cell.H+1e-6, "layout %d", layout)
			assert.LessOrEqual(t, placed.Y+placed.H, cell.Y+cell.H+1e-6, "layout %d", layout)
			assert.GreaterOrEqual(t, placed.Y, cell.Y-1e-6, "layout %d", layout)
		}

		in.Settings.Layout = layout
		out, err := r.RenderPDF(in)
		require.NoError(t, err)
		assert.Contains(t, string(out), "/Count 1", "layout %d", layout)
		assert.Equal(t, layout, bytes.Count(out, []byte("(Student 60)")), "layout %d", layout)
	}
}

func TestSheetHeightNeverBelowA4(t *testing.T) {
	assert.Equal(t, pageH, sheetHeight(100, drafts.DefaultSettings()))
	assert.Equal(t, 400+docMargin, sheetHeight(400, drafts.TemplateSettings{Layout: 1}))
	assert.Equal(t, 400+signatureReserve, sheetHeight(400, drafts.TemplateSettings{Layout: 1, ShowSignature: true}))
}

package render

import (
	"bytes"
	"html/template"
	"regexp"
	"strings"
)

const documentHTMLTemplate = `<!doctype html>
<html lang="{{.Lang}}">
<head>
  <meta charset="utf-8" />
  <title>{{.View.Heading}}</title>
  <style>
    :root { --primary: {{.Color}}; }
    * { box-sizing: border-box; }
    body { margin: 0; padding: 16px; font-family: "Noto Sans Bengali", "Helvetica Neue", Arial, sans-serif; color: #111827; background: #ffffff; }
    .sheet { display: grid; grid-template-columns: repeat({{.Cols}}, 1fr); gap: 12px; font-size: {{.FontSize}}px; }
    .doc { position: relative; padding: 16px; overflow: hidden; {{if .Settings.ShowBorder}}border: 2px solid var(--primary);{{end}} }
    .watermark { position: absolute; top: 40%; left: 0; right: 0; text-align: center; font-size: 4em; color: rgba(0,0,0,0.06); transform: rotate(-30deg); pointer-events: none; }
    .school { text-align: center; border-bottom: 2px solid var(--primary); padding-bottom: 8px; margin-bottom: 12px; }
    .school img { max-height: 56px; }
    .school .name { font-size: 1.4em; font-weight: bold; color: var(--primary); }
    .school .sub { font-size: 0.85em; color: #4b5563; }
    h1 { text-align: center; font-size: 1.2em; letter-spacing: 0.08em; margin: 8px 0 4px; }
    h2 { text-align: center; font-size: 1em; font-weight: normal; margin: 0 0 12px; }
    .meta { display: grid; grid-template-columns: 1fr 1fr; gap: 4px 16px; margin-bottom: 12px; }
    .meta .label { color: #6b7280; }
    table { width: 100%; border-collapse: collapse; }
    th, td { padding: 6px; border: 1px solid #e5e7eb; text-align: left; }
    th { background: var(--primary); color: #ffffff; font-size: 0.85em; }
    td.num, th.num { text-align: right; }
    .summary { margin-top: 12px; margin-left: auto; width: 60%; }
    .summary div { display: flex; justify-content: space-between; padding: 2px 0; }
    .summary .strong { font-weight: bold; border-top: 1px solid #111827; }
    .signature { margin-top: 40px; text-align: right; }
    .signature span { display: inline-block; border-top: 1px solid #111827; padding-top: 4px; min-width: 160px; text-align: center; }
  </style>
</head>
<body>
  <div class="sheet">
    {{range .Copies}}
    <div class="doc">
      {{if $.Settings.ShowWatermark}}<div class="watermark">{{$.Settings.WatermarkText}}</div>{{end}}
      <div class="school">
        {{if and $.Settings.ShowLogo $.School.LogoURL}}<img src="{{$.School.LogoURL}}" alt="logo" />{{end}}
        <div class="name">{{$.SchoolName}}</div>
        {{if $.School.Address}}<div class="sub">{{$.School.Address}}</div>{{end}}
        {{if $.School.EIIN}}<div class="sub">EIIN: {{$.School.EIIN}}{{if $.School.Phone}} | {{$.School.Phone}}{{end}}</div>{{end}}
      </div>
      <h1>{{$.View.Heading}}</h1>
      {{if $.View.Subheading}}<h2>{{$.View.Subheading}}</h2>{{end}}
      {{if $.View.Meta}}
      <div class="meta">
        {{range $.View.Meta}}<div><span class="label">{{.Label}}:</span> {{.Value}}</div>{{end}}
      </div>
      {{end}}
      {{range $.View.Paragraphs}}<p>{{.}}</p>{{end}}
      {{if $.View.Bullets}}<ul>{{range $.View.Bullets}}<li>{{.}}</li>{{end}}</ul>{{end}}
      {{with $.View.Table}}
      <table>
        <thead><tr>{{range $i, $h := .Headers}}<th{{if index $.Right $i}} class="num"{{end}}>{{$h}}</th>{{end}}</tr></thead>
        <tbody>
          {{range .Rows}}<tr>{{range $i, $c := .}}<td{{if index $.Right $i}} class="num"{{end}}>{{$c}}</td>{{end}}</tr>{{end}}
        </tbody>
      </table>
      {{end}}
      {{if $.View.Summary}}
      <div class="summary">
        {{range $.View.Summary}}<div{{if .Strong}} class="strong"{{end}}><span>{{.Label}}</span><span>{{.Value}}</span></div>{{end}}
      </div>
      {{end}}
      {{if $.Settings.ShowSignature}}
      <div class="signature"><span>{{if $.View.SignedBy}}{{$.View.SignedBy}}<br/>{{end}}{{$.View.Signature}}</span></div>
      {{end}}
    </div>
    {{end}}
  </div>
</body>
</html>
`

var hexColorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

type htmlRenderer struct {
	tpl *template.Template
}

type htmlData struct {
	Lang       string
	Color      string
	Cols       int
	FontSize   int
	Copies     []int
	Settings   settingsView
	School     SchoolHeader
	SchoolName string
	View       View
	Right      []bool
}

type settingsView struct {
	ShowLogo      bool
	ShowBorder    bool
	ShowWatermark bool
	WatermarkText string
	ShowSignature bool
}

func NewHTMLRenderer() HTMLRenderer {
	return &htmlRenderer{
		tpl: template.Must(template.New("document").Parse(documentHTMLTemplate)),
	}
}

// RenderHTML draws the preview; the same document repeats Layout times,
// matching the PDF tiling.
func (r *htmlRenderer) RenderHTML(input RenderInput) (string, error) {
	if input.Draft == nil {
		return "", ErrUnknownDocument
	}
	s := input.Settings.Normalize()
	view, err := BuildView(input.Draft, s.Language)
	if err != nil {
		return "", err
	}

	cols, _ := GridFor(s.Layout)
	data := htmlData{
		Lang:     s.Language,
		Color:    sanitizeColor(s.PrimaryColor),
		Cols:     cols,
		FontSize: 14 - 2*(cols-1),
		Copies:   make([]int, s.Layout),
		Settings: settingsView{
			ShowLogo:      s.ShowLogo,
			ShowBorder:    s.ShowBorder,
			ShowWatermark: s.ShowWatermark,
			WatermarkText: s.WatermarkText,
			ShowSignature: s.ShowSignature,
		},
		School:     input.School,
		SchoolName: input.School.NameIn(s.Language),
		View:       view,
	}
	if view.Table != nil {
		data.Right = padBools(view.Table.Right, len(view.Table.Headers))
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func padBools(b []bool, n int) []bool {
	out := make([]bool, n)
	copy(out, b)
	return out
}

func sanitizeColor(value string) string {
	trimmed := strings.TrimSpace(value)
	if hexColorPattern.MatchString(trimmed) {
		return trimmed
	}
	return "#1f4e79"
}

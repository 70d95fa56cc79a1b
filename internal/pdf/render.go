package pdf

import (
	"bytes"
	"html/template"
)

// Renderer turns a document into downloadable bytes with a content type
type Renderer interface {
	Render(doc *Document) ([]byte, string, error)
}

// HTMLRenderer renders a print-ready HTML document. Browsers print it to
// PDF, a dedicated converter can be plugged in behind the same interface.
type HTMLRenderer struct {
	tpl *template.Template
}

func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{
		tpl: template.Must(template.New("document").Parse(documentTemplate)),
	}
}

func (r *HTMLRenderer) Render(doc *Document) ([]byte, string, error) {
	var buf bytes.Buffer

	if err := r.tpl.Execute(&buf, doc); err != nil {
		return nil, "", err
	}

	return buf.Bytes(), "text/html; charset=utf-8", nil
}

const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  @page { size: A4; margin: 2cm; }
  body { font-family: "Helvetica Neue", Arial, sans-serif; color: #212529; font-size: 11pt; }
  h1 { font-size: 16pt; margin-bottom: 0; }
  .subtitle { color: #6c757d; margin-bottom: 1.5em; }
  section { page-break-inside: avoid; margin-bottom: 1.25em; }
  h2 { font-size: 12pt; border-bottom: 1px solid #dee2e6; padding-bottom: 2pt; }
  table { width: 100%; border-collapse: collapse; }
  td { vertical-align: top; padding: 2pt 0; }
  td.label { width: 40%; color: #495057; }
  ul { margin: 2pt 0 0 0; padding-left: 1.2em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="subtitle">{{.Subtitle}} &middot; {{.CreatedAt.Format "2006-01-02 15:04"}}</p>
{{range .Sections}}
<section>
<h2>{{.Legend}}</h2>
<table>
{{range .Rows}}
<tr>
<td class="label">{{.Label}}</td>
<td>{{.Value}}{{if .Items}}<ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>{{end}}</td>
</tr>
{{end}}
</table>
</section>
{{end}}
</body>
</html>
`

package report

import (
	"fmt"
	"html"
	"html/template"
	"strings"
)

// SectionContent is one rendered report section: a tool name and the
// verbatim text of its artifact.
type SectionContent struct {
	Name    string
	Content string
}

// HTMLRenderer produces the HTML report document.
// Both implementations emit the same structure: a heading naming the
// domain followed by one <h2>/<pre> pair per section, in order.
type HTMLRenderer interface {
	// Render returns the complete HTML document.
	Render(domain string, sections []SectionContent) (string, error)
}

// reportTemplate mirrors the original report layout. The heading text
// is kept verbatim for continuity with existing report consumers.
var reportTemplate = template.Must(template.New("report").Parse(`<html>
<head><meta charset="utf-8"><title>SubTrace Report</title></head>
<body>
<h1>Reconocimiento para {{.Domain}}</h1>
{{- range .Sections}}
<h2>{{.Name}}</h2>
<pre>{{.Content}}</pre>
{{- end}}
</body>
</html>
`))

// TemplateRenderer renders the report through html/template.
// Template execution escapes section contents automatically.
type TemplateRenderer struct{}

// NewTemplateRenderer creates the template-backed renderer.
func NewTemplateRenderer() *TemplateRenderer {
	return &TemplateRenderer{}
}

// Render implements HTMLRenderer.
func (r *TemplateRenderer) Render(domain string, sections []SectionContent) (string, error) {
	var sb strings.Builder
	data := struct {
		Domain   string
		Sections []SectionContent
	}{Domain: domain, Sections: sections}

	if err := reportTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("failed to execute report template: %w", err)
	}
	return sb.String(), nil
}

// PlainRenderer assembles the same document by string concatenation.
// It exists as the degraded capability when templating is unavailable;
// its output must stay behaviorally equivalent to TemplateRenderer.
type PlainRenderer struct{}

// NewPlainRenderer creates the string-assembly renderer.
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// Render implements HTMLRenderer. It never fails.
func (r *PlainRenderer) Render(domain string, sections []SectionContent) (string, error) {
	var sb strings.Builder
	sb.WriteString("<html>\n")
	sb.WriteString("<head><meta charset=\"utf-8\"><title>SubTrace Report</title></head>\n")
	sb.WriteString("<body>\n")
	sb.WriteString("<h1>Reconocimiento para " + html.EscapeString(domain) + "</h1>\n")
	for _, s := range sections {
		sb.WriteString("<h2>" + html.EscapeString(s.Name) + "</h2>\n")
		sb.WriteString("<pre>" + html.EscapeString(s.Content) + "</pre>\n")
	}
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")
	return sb.String(), nil
}

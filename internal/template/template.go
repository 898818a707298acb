package template

import (
	"html/template"
	"strings"
)

const detailPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
</head>
<body>
{{- if .Placeholder }}
<p class="placeholder">{{ .Title }}</p>
{{- else }}
{{- with .Title }}
<h2>{{ . }}</h2>
{{- end }}
{{- range .Sections }}
<h3>{{ .Heading }}</h3>
{{- if eq .Heading "Severity" }}
<p class="{{ severityClass .Body }}">{{ .Body }}</p>
{{- else if .Body }}
<p>{{ .Body }}</p>
{{- end }}
{{- end }}
{{- if .References }}
<h3>More Information</h3>
<ul>
{{- range .References }}
<li><a href="{{ . }}">{{ . }}</a></li>
{{- end }}
</ul>
{{- end }}
{{- end }}
</body>
</html>
`

// severityClass returns the css class used to colour a severity value.
// helper function for html template
func severityClass(severity string) string {
	return "severity-" + strings.ToLower(strings.TrimSpace(severity))
}

// NewDetailTemplate parses the page used to render the details of a finding.
// The data passed to Execute must expose Title, Placeholder, Sections (Heading, Body) and References.
func NewDetailTemplate() (*template.Template, error) {
	return template.New("detail.html").
		Funcs(template.FuncMap{
			"severityClass": severityClass,
		}).
		Parse(detailPage)
}

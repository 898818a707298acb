package detail

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/scan-io-git/vulx/internal/template"
)

// Format names an output representation of a Document.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
)

// Formats lists the supported formats.
var Formats = []Format{FormatMarkdown, FormatHTML, FormatJSON}

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported format %q", s)
}

// Write renders doc in the requested format.
func Write(doc Document, format Format) ([]byte, error) {
	switch format {
	case FormatMarkdown:
		return []byte(Markdown(doc)), nil
	case FormatHTML:
		out, err := HTML(doc)
		return []byte(out), err
	case FormatJSON:
		return JSON(doc)
	}
	return nil, fmt.Errorf("unsupported format %q", format)
}

// Markdown renders doc as Markdown. An empty document renders as an empty string.
func Markdown(doc Document) string {
	if doc.IsEmpty() {
		return ""
	}
	if doc.Placeholder {
		return doc.Title + "\n"
	}

	var b strings.Builder
	if doc.Title != "" {
		fmt.Fprintf(&b, "# %s\n", doc.Title)
	}
	for _, s := range doc.Sections {
		fmt.Fprintf(&b, "\n## %s\n", s.Heading)
		if s.Body != "" {
			fmt.Fprintf(&b, "\n%s\n", s.Body)
		}
	}
	if len(doc.References) > 0 {
		b.WriteString("\n## More Information\n\n")
		for _, ref := range doc.References {
			fmt.Fprintf(&b, "- <%s>\n", ref)
		}
	}
	return b.String()
}

// HTML renders doc as a standalone, escaped HTML page.
func HTML(doc Document) (string, error) {
	tmpl, err := template.NewDetailTemplate()
	if err != nil {
		return "", fmt.Errorf("failed to parse detail template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("failed to render detail page: %w", err)
	}
	return buf.String(), nil
}

// JSON renders doc as indented JSON.
func JSON(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

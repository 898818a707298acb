package detail

import (
	"strings"

	"github.com/scan-io-git/vulx/internal/explorer"
	"github.com/scan-io-git/vulx/internal/findings"
)

// PlaceholderTitle is shown when a node has no backing finding.
const PlaceholderTitle = "No check data available"

// Section is one heading of a detail document with its optional body.
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body,omitempty"`
}

// Document is the presentation-neutral detail of a tree node.
type Document struct {
	Title       string    `json:"title,omitempty"`
	Sections    []Section `json:"sections,omitempty"`
	References  []string  `json:"references,omitempty"`
	Placeholder bool      `json:"placeholder,omitempty"`
}

// IsEmpty reports whether the document has nothing to show.
func (d Document) IsEmpty() bool {
	return !d.Placeholder && d.Title == "" && len(d.Sections) == 0 && len(d.References) == 0
}

// Render projects node into a Document. It never fails: a node without a finding renders the
// placeholder, and group nodes or nodes whose finding kind does not fit their type render empty.
func Render(node explorer.Node) Document {
	f := node.Finding
	if f == nil {
		return Document{Title: PlaceholderTitle, Placeholder: true}
	}

	switch node.Type {
	case explorer.VulnerabilityCode:
		return findings.Match(f.Kind,
			func(v findings.Vulnerability) Document { return vulnerability(f, v) },
			func(findings.Misconfiguration) Document { return Document{} },
			func(findings.Secret) Document { return Document{} },
			func() Document { return Document{} },
		)
	case explorer.MisconfigCode, explorer.MisconfigInstance:
		return findings.Match(f.Kind,
			func(findings.Vulnerability) Document { return Document{} },
			func(m findings.Misconfiguration) Document { return misconfiguration(f, m) },
			func(findings.Secret) Document { return Document{} },
			func() Document { return Document{} },
		)
	case explorer.SecretInstance:
		return findings.Match(f.Kind,
			func(findings.Vulnerability) Document { return Document{} },
			func(findings.Misconfiguration) Document { return Document{} },
			func(s findings.Secret) Document { return secret(f, s) },
			func() Document { return Document{} },
		)
	}
	return Document{}
}

func vulnerability(f *findings.Finding, v findings.Vulnerability) Document {
	return Document{
		Title: f.ID,
		Sections: []Section{
			{Heading: heading(f), Body: f.Description},
			{Heading: "Severity", Body: f.Severity.String()},
			{Heading: "Package Name", Body: v.PkgName},
			{Heading: "Installed Version", Body: v.InstalledVersion},
			{Heading: "Fixed Version", Body: v.FixedVersion},
			{Heading: "Filename", Body: f.Filename},
		},
		References: references(f),
	}
}

func misconfiguration(f *findings.Finding, m findings.Misconfiguration) Document {
	return Document{
		Title: f.ID,
		Sections: []Section{
			{Heading: heading(f), Body: f.Description},
			{Heading: "Severity", Body: f.Severity.String()},
			{Heading: "Resolution", Body: m.Resolution},
			{Heading: "Filename", Body: f.Filename},
		},
		References: references(f),
	}
}

// heading falls back to the id for findings loaded without a title.
func heading(f *findings.Finding) string {
	if strings.TrimSpace(f.Title) == "" {
		return f.ID
	}
	return f.Title
}

// secret renders the narrower field set of a secret: the title replaces the id and there is
// no description.
func secret(f *findings.Finding, s findings.Secret) Document {
	return Document{
		Title: f.Title,
		Sections: []Section{
			{Heading: "Severity", Body: f.Severity.String()},
			{Heading: "Match", Body: s.Match},
			{Heading: "Filename", Body: f.Filename},
		},
		References: references(f),
	}
}

func references(f *findings.Finding) []string {
	if len(f.References) == 0 {
		return nil
	}
	return append([]string(nil), f.References...)
}

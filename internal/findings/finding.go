package findings

import "encoding/json"

// Finding is one issue reported by the scanner. Findings are not modified after loading.
type Finding struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Severity    Severity `json:"severity"`
	Filename    string   `json:"filename"`

	// StartLine and EndLine are a 1-based inclusive range. Both zero means no location.
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`

	References []string `json:"references,omitempty"`

	Kind Kind `json:"-"`
}

// HasLocation reports whether the finding points at specific lines.
func (f *Finding) HasLocation() bool {
	return !(f.StartLine == 0 && f.EndLine == 0)
}

// Vulnerability returns the vulnerability payload, if the finding is one.
func (f *Finding) Vulnerability() (Vulnerability, bool) {
	v, ok := f.Kind.(Vulnerability)
	if !ok {
		if p, isPtr := f.Kind.(*Vulnerability); isPtr && p != nil {
			return *p, true
		}
	}
	return v, ok
}

// IsSecret reports whether the finding carries a secret payload.
func (f *Finding) IsSecret() bool {
	return Match(f.Kind,
		func(Vulnerability) bool { return false },
		func(Misconfiguration) bool { return false },
		func(Secret) bool { return true },
		func() bool { return false },
	)
}

// KindName returns a short name for the finding's kind, used in output.
func (f *Finding) KindName() string {
	return Match(f.Kind,
		func(Vulnerability) string { return "vulnerability" },
		func(Misconfiguration) string { return "misconfiguration" },
		func(Secret) string { return "secret" },
		func() string { return "" },
	)
}

// MarshalJSON adds the kind name and its payload to the plain fields.
func (f Finding) MarshalJSON() ([]byte, error) {
	type plain Finding
	return json.Marshal(struct {
		plain
		KindName string `json:"kind"`
		Details  Kind   `json:"details,omitempty"`
	}{
		plain:    plain(f),
		KindName: f.KindName(),
		Details:  f.Kind,
	})
}

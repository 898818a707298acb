package findings

import (
	"sort"
	"strings"
)

// Severity is an ordinal ranking of a finding. Higher values are more severe.
type Severity int

const (
	SeverityUnknown Severity = iota
	SeverityLow
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

// Severities lists every severity from the most to the least severe.
var Severities = []Severity{
	SeverityCritical,
	SeverityHigh,
	SeverityMedium,
	SeverityLow,
	SeverityUnknown,
}

// ParseSeverity converts a scanner severity string to a Severity.
// Anything unrecognised maps to SeverityUnknown.
func ParseSeverity(s string) Severity {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "CRITICAL":
		return SeverityCritical
	case "HIGH":
		return SeverityHigh
	case "MEDIUM":
		return SeverityMedium
	case "LOW":
		return SeverityLow
	default:
		return SeverityUnknown
	}
}

// IsValidSeverity reports whether s names one of the known severities, UNKNOWN included.
func IsValidSeverity(s string) bool {
	return ParseSeverity(s) != SeverityUnknown || strings.EqualFold(strings.TrimSpace(s), "UNKNOWN")
}

func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityHigh:
		return "HIGH"
	case SeverityMedium:
		return "MEDIUM"
	case SeverityLow:
		return "LOW"
	default:
		return "UNKNOWN"
	}
}

// MarshalText keeps the scanner's spelling in JSON and YAML output.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	*s = ParseSeverity(string(text))
	return nil
}

// AtLeast returns the severities from CRITICAL down to and including min.
func AtLeast(min Severity) []Severity {
	var out []Severity
	for _, s := range Severities {
		out = append(out, s)
		if s == min {
			break
		}
	}
	return out
}

// SortBySeverity orders findings from the most to the least severe.
// Findings with equal severity keep their relative order.
func SortBySeverity(list []*Finding) {
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Severity > list[j].Severity
	})
}

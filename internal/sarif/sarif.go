package sarif

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/scan-io-git/vulx/internal/findings"
)

const (
	ToolName       = "vul"
	InformationURI = "https://github.com/aquasecurity/trivy"
)

// Report wraps a SARIF report built from findings.
type Report struct {
	*sarif.Report
	logger hclog.Logger
}

// FromFindings builds a single-run report with one rule per distinct finding id, in first-seen
// order, and one result per finding.
func FromFindings(list []*findings.Finding, logger hclog.Logger) (*Report, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	reportSarif, err := sarif.New(sarif.Version210)
	if err != nil {
		return nil, fmt.Errorf("failed to create SARIF report: %w", err)
	}

	run := sarif.NewRunWithInformationURI(ToolName, InformationURI)
	for _, f := range list {
		if f == nil {
			continue
		}
		if strings.TrimSpace(f.ID) == "" {
			logger.Warn("finding without id, skipping", "file", f.Filename)
			continue
		}

		rule := run.AddRule(f.ID)
		if rule.ShortDescription == nil {
			rule.WithShortDescription(sarif.NewMultiformatMessageString(f.Title))
			if f.Description != "" {
				rule.WithFullDescription(sarif.NewMultiformatMessageString(f.Description))
			}
			if len(f.References) > 0 {
				rule.WithHelpURI(f.References[0])
			}
		}

		result := sarif.NewRuleResult(rule.ID).
			WithMessage(sarif.NewTextMessage(message(f))).
			WithLevel(Level(f.Severity)).
			WithLocations([]*sarif.Location{location(f)})
		result.Properties = properties(f)
		run.AddResult(result)
	}
	reportSarif.AddRun(run)

	return &Report{Report: reportSarif, logger: logger}, nil
}

// Level maps a severity to a SARIF result level.
func Level(s findings.Severity) string {
	switch s {
	case findings.SeverityCritical, findings.SeverityHigh:
		return "error"
	case findings.SeverityMedium:
		return "warning"
	case findings.SeverityLow:
		return "note"
	default:
		return "none"
	}
}

func message(f *findings.Finding) string {
	if f.Title != "" {
		return f.Title
	}
	return f.ID
}

func location(f *findings.Finding) *sarif.Location {
	physical := sarif.NewPhysicalLocation().
		WithArtifactLocation(sarif.NewArtifactLocation().WithUri(f.Filename))
	if f.HasLocation() {
		physical.WithRegion(sarif.NewRegion().WithStartLine(f.StartLine).WithEndLine(f.EndLine))
	}
	return sarif.NewLocation().WithPhysicalLocation(physical)
}

// properties keeps the severity and kind-specific fields that have no SARIF counterpart.
func properties(f *findings.Finding) sarif.Properties {
	props := sarif.Properties{
		"Severity": f.Severity.String(),
		"Kind":     f.KindName(),
	}
	findings.Match(f.Kind,
		func(v findings.Vulnerability) struct{} {
			props["PkgName"] = v.PkgName
			props["InstalledVersion"] = v.InstalledVersion
			props["FixedVersion"] = v.FixedVersion
			return struct{}{}
		},
		func(m findings.Misconfiguration) struct{} {
			props["Resolution"] = m.Resolution
			return struct{}{}
		},
		func(s findings.Secret) struct{} {
			props["Match"] = s.Match
			return struct{}{}
		},
		func() struct{} { return struct{}{} },
	)
	return props
}

// CollectSeverityInfo counts results per severity. The returned map also holds the "total".
func (r Report) CollectSeverityInfo() map[string]int {
	severityInfo := map[string]int{"total": 0}
	for _, s := range findings.Severities {
		severityInfo[strings.ToLower(s.String())] = 0
	}

	for _, run := range r.Runs {
		for _, result := range run.Results {
			severity, _ := result.Properties["Severity"].(string)
			key := strings.ToLower(findings.ParseSeverity(severity).String())
			severityInfo[key]++
			severityInfo["total"]++
		}
	}
	return severityInfo
}

// SortResultsByLevel orders every run's results error, warning, note, none. Results of the same
// level keep their order.
func (r Report) SortResultsByLevel() {
	levelOrder := map[string]int{
		"error":   0,
		"warning": 1,
		"note":    2,
		"none":    3,
	}

	for _, run := range r.Runs {
		sort.SliceStable(run.Results, func(i, j int) bool {
			return levelOrder[levelOf(run.Results[i])] < levelOrder[levelOf(run.Results[j])]
		})
	}
}

func levelOf(result *sarif.Result) string {
	if result.Level == nil {
		return "none"
	}
	return *result.Level
}

// WriteFile writes the report as indented JSON to path.
func (r Report) WriteFile(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error writing SARIF report: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := r.PrettyWrite(file); err != nil {
		return fmt.Errorf("error writing SARIF report: %w", err)
	}
	r.logger.Debug("SARIF report written", "path", path)
	return nil
}

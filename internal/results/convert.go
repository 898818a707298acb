package results

import (
	"github.com/scan-io-git/vulx/internal/findings"
)

// Flatten turns one result record into findings: vulnerabilities first, then
// misconfigurations, then secrets, each in document order.
func Flatten(r Result) []*findings.Finding {
	out := make([]*findings.Finding, 0, len(r.Vulnerabilities)+len(r.Misconfigurations)+len(r.Secrets))

	for _, v := range r.Vulnerabilities {
		title := v.Title
		if title == "" {
			title = v.VulnerabilityID
		}
		out = append(out, &findings.Finding{
			ID:          v.VulnerabilityID,
			Title:       title,
			Description: v.Description,
			Severity:    findings.ParseSeverity(v.Severity),
			Filename:    r.Target,
			References:  references(v.References, v.PrimaryURL),
			Kind: findings.Vulnerability{
				PkgName:          v.PkgName,
				InstalledVersion: v.InstalledVersion,
				FixedVersion:     v.FixedVersion,
			},
		})
	}

	for _, m := range r.Misconfigurations {
		f := &findings.Finding{
			ID:          m.ID,
			Title:       m.Title,
			Description: m.Description,
			Severity:    findings.ParseSeverity(m.Severity),
			Filename:    r.Target,
			References:  references(m.References, m.PrimaryURL),
			Kind:        findings.Misconfiguration{Resolution: m.Resolution},
		}
		if m.CauseMetadata != nil {
			f.StartLine = safeLine(m.CauseMetadata.StartLine)
			f.EndLine = safeLine(m.CauseMetadata.EndLine)
		}
		out = append(out, f)
	}

	for _, s := range r.Secrets {
		out = append(out, &findings.Finding{
			ID:        s.RuleID,
			Title:     s.Title,
			Severity:  findings.ParseSeverity(s.Severity),
			Filename:  r.Target,
			StartLine: safeLine(s.StartLine),
			EndLine:   safeLine(s.EndLine),
			Kind:      findings.Secret{Match: s.Match},
		})
	}

	return out
}

func references(refs []string, primary string) []string {
	if len(refs) > 0 {
		return append([]string(nil), refs...)
	}
	if primary != "" {
		return []string{primary}
	}
	return nil
}

func safeLine(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

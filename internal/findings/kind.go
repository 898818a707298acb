package findings

// Kind is the kind-specific payload of a finding. The set of implementations is closed:
// Vulnerability, Misconfiguration and Secret.
type Kind interface {
	isKind()
}

// Vulnerability is a vulnerable package version.
type Vulnerability struct {
	PkgName          string `json:"pkg_name"`
	InstalledVersion string `json:"installed_version"`
	FixedVersion     string `json:"fixed_version"`
}

// Misconfiguration is a failed configuration check.
type Misconfiguration struct {
	Resolution string `json:"resolution"`
}

// Secret is a credential found in a file.
type Secret struct {
	Match string `json:"match"`
}

func (Vulnerability) isKind()    {}
func (Misconfiguration) isKind() {}
func (Secret) isKind()           {}

// Match dispatches on the kind of k. Every kind has its own handler so adding a kind
// breaks all call sites at compile time. onNone handles a missing payload.
func Match[T any](
	k Kind,
	onVulnerability func(Vulnerability) T,
	onMisconfiguration func(Misconfiguration) T,
	onSecret func(Secret) T,
	onNone func() T,
) T {
	switch v := k.(type) {
	case Vulnerability:
		return onVulnerability(v)
	case *Vulnerability:
		if v != nil {
			return onVulnerability(*v)
		}
	case Misconfiguration:
		return onMisconfiguration(v)
	case *Misconfiguration:
		if v != nil {
			return onMisconfiguration(*v)
		}
	case Secret:
		return onSecret(v)
	case *Secret:
		if v != nil {
			return onSecret(*v)
		}
	}
	return onNone()
}

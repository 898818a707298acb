package results

// Document is one JSON result file written by the scanner.
type Document struct {
	SchemaVersion int      `json:"SchemaVersion"`
	ArtifactName  string   `json:"ArtifactName"`
	Results       []Result `json:"Results"`
}

// Result groups the findings reported for one target file.
type Result struct {
	Target            string             `json:"Target"`
	Class             string             `json:"Class"`
	Type              string             `json:"Type"`
	Vulnerabilities   []Vulnerability    `json:"Vulnerabilities,omitempty"`
	Misconfigurations []Misconfiguration `json:"Misconfigurations,omitempty"`
	Secrets           []Secret           `json:"Secrets,omitempty"`
}

type Vulnerability struct {
	VulnerabilityID  string   `json:"VulnerabilityID"`
	PkgName          string   `json:"PkgName"`
	InstalledVersion string   `json:"InstalledVersion"`
	FixedVersion     string   `json:"FixedVersion"`
	Title            string   `json:"Title"`
	Description      string   `json:"Description"`
	Severity         string   `json:"Severity"`
	PrimaryURL       string   `json:"PrimaryURL"`
	References       []string `json:"References"`
}

type Misconfiguration struct {
	Type          string         `json:"Type"`
	ID            string         `json:"ID"`
	AVDID         string         `json:"AVDID"`
	Title         string         `json:"Title"`
	Description   string         `json:"Description"`
	Message       string         `json:"Message"`
	Resolution    string         `json:"Resolution"`
	Severity      string         `json:"Severity"`
	PrimaryURL    string         `json:"PrimaryURL"`
	References    []string       `json:"References"`
	Status        string         `json:"Status"`
	CauseMetadata *CauseMetadata `json:"CauseMetadata,omitempty"`
}

// CauseMetadata locates the cause of a misconfiguration.
type CauseMetadata struct {
	Resource  string `json:"Resource"`
	Provider  string `json:"Provider"`
	Service   string `json:"Service"`
	StartLine int    `json:"StartLine"`
	EndLine   int    `json:"EndLine"`
}

type Secret struct {
	RuleID    string `json:"RuleID"`
	Category  string `json:"Category"`
	Severity  string `json:"Severity"`
	Title     string `json:"Title"`
	StartLine int    `json:"StartLine"`
	EndLine   int    `json:"EndLine"`
	Match     string `json:"Match"`
}

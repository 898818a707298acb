package explorer

import (
	"github.com/scan-io-git/vulx/internal/findings"
	"github.com/scan-io-git/vulx/internal/navigation"
)

// NodeType identifies what a tree node groups and how its children are computed.
type NodeType int

const (
	MisconfigCode NodeType = iota
	MisconfigInstance
	VulnerablePackage
	VulnerabilityCode
	MisconfigFile
	VulnerabilityFile
	SecretFile
	SecretInstance
)

// Level is the structural position of a node type in the hierarchy.
type Level int

const (
	FileGroup Level = iota
	PackageGroup
	CodeGroup
	InstanceLeaf
)

func (t NodeType) String() string {
	switch t {
	case MisconfigCode:
		return "misconfig-code"
	case MisconfigInstance:
		return "misconfig-instance"
	case VulnerablePackage:
		return "vulnerable-package"
	case VulnerabilityCode:
		return "vulnerability-code"
	case MisconfigFile:
		return "misconfig-file"
	case VulnerabilityFile:
		return "vulnerability-file"
	case SecretFile:
		return "secret-file"
	case SecretInstance:
		return "secret-instance"
	default:
		return "unknown"
	}
}

// MarshalText keeps node types readable in JSON output.
func (t NodeType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Level returns the structural level of the node type.
func (t NodeType) Level() Level {
	switch t {
	case MisconfigFile, VulnerabilityFile, SecretFile:
		return FileGroup
	case VulnerablePackage:
		return PackageGroup
	case MisconfigCode:
		return CodeGroup
	default:
		return InstanceLeaf
	}
}

func (l Level) String() string {
	switch l {
	case FileGroup:
		return "file-group"
	case PackageGroup:
		return "package-group"
	case CodeGroup:
		return "code-group"
	default:
		return "instance-leaf"
	}
}

func (l Level) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Node is one row of the tree. Nodes are computed on demand and never cached.
type Node struct {
	Label string   `json:"label"`
	Type  NodeType `json:"type"`
	Level Level    `json:"level"`

	// Finding is the representative finding of a group, or the finding of a leaf.
	Finding *findings.Finding `json:"finding,omitempty"`

	Expandable bool   `json:"expandable"`
	GroupKey   string `json:"group_key"`

	// Command is set on leaves whose file can be opened.
	Command *navigation.OpenDirective `json:"command,omitempty"`
}

func newNode(label string, f *findings.Finding, t NodeType, groupKey string) Node {
	return Node{
		Label:      label,
		Type:       t,
		Level:      t.Level(),
		Finding:    f,
		Expandable: t.Level() != InstanceLeaf,
		GroupKey:   groupKey,
	}
}

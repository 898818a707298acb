package explorer

import (
	"fmt"

	"github.com/scan-io-git/vulx/internal/findings"
	"github.com/scan-io-git/vulx/internal/navigation"
)

// Tree projects the store's flat finding list into a lazily expanded hierarchy.
type Tree struct {
	store         *Store
	workspaceRoot string
}

// NewTree creates a Tree over store. workspaceRoot is used to build navigation directives
// for leaves and may be empty.
func NewTree(store *Store, workspaceRoot string) *Tree {
	return &Tree{store: store, workspaceRoot: workspaceRoot}
}

// WorkspaceRoot returns the root used for navigation directives.
func (t *Tree) WorkspaceRoot() string {
	return t.workspaceRoot
}

// TopLevel returns one file-group node per distinct filename, in first-seen order.
// The group type follows the kind of the first finding seen for the file.
func (t *Tree) TopLevel() []Node {
	var nodes []Node
	seen := make(map[string]struct{})
	for _, f := range t.store.Snapshot().Findings {
		if f == nil {
			continue
		}
		if _, ok := seen[f.Filename]; ok {
			continue
		}
		seen[f.Filename] = struct{}{}
		nodes = append(nodes, newNode(f.Filename, f, fileGroupType(f), f.Filename))
	}
	return nodes
}

func fileGroupType(f *findings.Finding) NodeType {
	return findings.Match(f.Kind,
		func(findings.Vulnerability) NodeType { return VulnerabilityFile },
		func(findings.Misconfiguration) NodeType { return MisconfigFile },
		func(findings.Secret) NodeType { return SecretFile },
		func() NodeType { return SecretFile },
	)
}

// ChildrenOf returns the children of node computed from the current snapshot.
// Leaves and nodes without a backing finding have no children.
func (t *Tree) ChildrenOf(node Node) []Node {
	if node.Finding == nil {
		return nil
	}
	all := t.store.Snapshot().Findings

	switch node.Type {
	case VulnerabilityFile:
		return t.packageGroups(all, node.Finding.Filename)
	case MisconfigFile:
		return t.codeGroups(all, node.Finding.Filename)
	case SecretFile:
		return t.instances(all, node.Finding, SecretInstance)
	case VulnerablePackage:
		return t.packageVulnerabilities(all, node.Label)
	case MisconfigCode:
		return t.instances(all, node.Finding, MisconfigInstance)
	case MisconfigInstance, VulnerabilityCode, SecretInstance:
		return nil
	}
	return nil
}

// packageGroups groups a file's vulnerabilities by package name.
func (t *Tree) packageGroups(all []*findings.Finding, filename string) []Node {
	var nodes []Node
	seen := make(map[string]struct{})
	for _, f := range all {
		if f == nil || f.Filename != filename {
			continue
		}
		v, ok := f.Vulnerability()
		if !ok {
			continue
		}
		if _, dup := seen[v.PkgName]; dup {
			continue
		}
		seen[v.PkgName] = struct{}{}
		nodes = append(nodes, newNode(v.PkgName, f, VulnerablePackage, v.PkgName))
	}
	return nodes
}

// codeGroups lists a file's findings by rule id, most severe first. Secrets become leaves.
func (t *Tree) codeGroups(all []*findings.Finding, filename string) []Node {
	var inFile []*findings.Finding
	for _, f := range all {
		if f != nil && f.Filename == filename {
			inFile = append(inFile, f)
		}
	}
	findings.SortBySeverity(inFile)

	var nodes []Node
	seen := make(map[string]struct{})
	for _, f := range inFile {
		if _, dup := seen[f.ID]; dup {
			continue
		}
		seen[f.ID] = struct{}{}

		if f.IsSecret() {
			nodes = append(nodes, t.leaf(f.ID, f, SecretInstance))
			continue
		}
		nodes = append(nodes, newNode(f.ID, f, MisconfigCode, codeKey(f)))
	}
	return nodes
}

// packageVulnerabilities returns every vulnerability of the named package across all files.
func (t *Tree) packageVulnerabilities(all []*findings.Finding, pkgName string) []Node {
	var nodes []Node
	for _, f := range all {
		if f == nil {
			continue
		}
		if v, ok := f.Vulnerability(); ok && v.PkgName == pkgName {
			nodes = append(nodes, t.leaf(f.ID, f, VulnerabilityCode))
		}
	}
	return nodes
}

// instances returns a leaf for every finding sharing the id and filename of group.
func (t *Tree) instances(all []*findings.Finding, group *findings.Finding, leafType NodeType) []Node {
	var nodes []Node
	for _, f := range all {
		if f == nil || f.ID != group.ID || f.Filename != group.Filename {
			continue
		}
		label := f.ID
		if leafType == MisconfigInstance {
			label = fmt.Sprintf("%s:[%d-%d]", f.Filename, f.StartLine, f.EndLine)
		}
		nodes = append(nodes, t.leaf(label, f, leafType))
	}
	return nodes
}

func (t *Tree) leaf(label string, f *findings.Finding, leafType NodeType) Node {
	n := newNode(label, f, leafType, f.ID)
	n.Command = navigation.BuildOpenCommand(f, t.workspaceRoot)
	return n
}

func codeKey(f *findings.Finding) string {
	return f.ID + "@" + f.Filename
}

package explorer

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/vulx/internal/findings"
)

func vuln(id, file, pkg string, sev findings.Severity) *findings.Finding {
	return &findings.Finding{
		ID:       id,
		Title:    id + " title",
		Severity: sev,
		Filename: file,
		Kind:     findings.Vulnerability{PkgName: pkg, InstalledVersion: "1.0.0", FixedVersion: "1.0.1"},
	}
}

func misconfig(id, file string, sev findings.Severity, start, end int) *findings.Finding {
	return &findings.Finding{
		ID:        id,
		Title:     id + " title",
		Severity:  sev,
		Filename:  file,
		StartLine: start,
		EndLine:   end,
		Kind:      findings.Misconfiguration{Resolution: "fix " + id},
	}
}

func secret(id, file string, sev findings.Severity, line int) *findings.Finding {
	return &findings.Finding{
		ID:        id,
		Title:     id + " title",
		Severity:  sev,
		Filename:  file,
		StartLine: line,
		EndLine:   line,
		Kind:      findings.Secret{Match: "****"},
	}
}

func newTestTree(root string, list ...*findings.Finding) *Tree {
	store := NewStore()
	store.Replace(&Snapshot{Findings: list})
	return NewTree(store, root)
}

func labels(nodes []Node) []string {
	out := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, n.Label)
	}
	return out
}

func TestTopLevelGroupsByFilenameInFirstSeenOrder(t *testing.T) {
	tree := newTestTree("",
		misconfig("M1", "main.tf", findings.SeverityLow, 1, 2),
		vuln("CVE-1", "app/go.mod", "foo", findings.SeverityHigh),
		misconfig("M2", "main.tf", findings.SeverityHigh, 3, 4),
		secret("aws-key", ".env", findings.SeverityCritical, 1),
		vuln("CVE-2", "app/go.mod", "bar", findings.SeverityLow),
	)

	top := tree.TopLevel()
	assert.Equal(t, []string{"main.tf", "app/go.mod", ".env"}, labels(top))
	assert.Equal(t, MisconfigFile, top[0].Type)
	assert.Equal(t, VulnerabilityFile, top[1].Type)
	assert.Equal(t, SecretFile, top[2].Type)
	for _, n := range top {
		assert.Equal(t, FileGroup, n.Level)
		assert.True(t, n.Expandable)
		assert.Equal(t, n.Label, n.GroupKey)
	}
}

func TestTopLevelIsDeterministic(t *testing.T) {
	var list []*findings.Finding
	for i := 0; i < 50; i++ {
		list = append(list, misconfig(fmt.Sprintf("M%d", i%7), fmt.Sprintf("file-%d.tf", i%11), findings.SeverityMedium, i, i))
	}
	tree := newTestTree("", list...)
	assert.Equal(t, tree.TopLevel(), tree.TopLevel())
}

func TestTopLevelDeduplicatesFilenames(t *testing.T) {
	for _, n := range []int{1, 5, 100} {
		t.Run(fmt.Sprint(n), func(t *testing.T) {
			var list []*findings.Finding
			for i := 0; i < n; i++ {
				list = append(list, vuln(fmt.Sprintf("CVE-%d", i), "go.sum", fmt.Sprintf("pkg-%d", i%3), findings.SeverityLow))
			}
			top := newTestTree("", list...).TopLevel()
			require.Len(t, top, 1)
			assert.Equal(t, "go.sum", top[0].Label)
		})
	}
}

func TestTopLevelSkipsNilFindings(t *testing.T) {
	tree := newTestTree("", nil, misconfig("M1", "main.tf", findings.SeverityLow, 1, 1), nil)
	top := tree.TopLevel()
	require.Len(t, top, 1)
	assert.Len(t, tree.ChildrenOf(top[0]), 1)
}

func TestVulnerabilityBranch(t *testing.T) {
	tree := newTestTree("",
		vuln("CVE-1", "app/go.mod", "foo", findings.SeverityHigh),
		vuln("CVE-2", "app/go.mod", "foo", findings.SeverityLow),
	)

	top := tree.TopLevel()
	require.Len(t, top, 1)
	assert.Equal(t, "app/go.mod", top[0].Label)

	packages := tree.ChildrenOf(top[0])
	require.Len(t, packages, 1)
	assert.Equal(t, "foo", packages[0].Label)
	assert.Equal(t, VulnerablePackage, packages[0].Type)
	assert.Equal(t, PackageGroup, packages[0].Level)
	assert.True(t, packages[0].Expandable)

	leaves := tree.ChildrenOf(packages[0])
	assert.Equal(t, []string{"CVE-1", "CVE-2"}, labels(leaves))
	for _, leaf := range leaves {
		assert.Equal(t, VulnerabilityCode, leaf.Type)
		assert.Equal(t, InstanceLeaf, leaf.Level)
		assert.False(t, leaf.Expandable)
		assert.Empty(t, tree.ChildrenOf(leaf))
	}
}

func TestVulnerabilityBranchKeepsInsertionOrder(t *testing.T) {
	tree := newTestTree("",
		vuln("CVE-low", "go.mod", "foo", findings.SeverityLow),
		vuln("CVE-a", "go.mod", "bar", findings.SeverityCritical),
		vuln("CVE-crit", "go.mod", "foo", findings.SeverityCritical),
	)
	packages := tree.ChildrenOf(tree.TopLevel()[0])
	assert.Equal(t, []string{"foo", "bar"}, labels(packages))
	assert.Equal(t, []string{"CVE-low", "CVE-crit"}, labels(tree.ChildrenOf(packages[0])))
}

func TestPackageGroupSpansFiles(t *testing.T) {
	tree := newTestTree("",
		vuln("CVE-1", "a/go.mod", "foo", findings.SeverityHigh),
		vuln("CVE-2", "b/go.mod", "foo", findings.SeverityHigh),
		vuln("CVE-3", "b/go.mod", "bar", findings.SeverityHigh),
	)
	packages := tree.ChildrenOf(tree.TopLevel()[0])
	require.Equal(t, []string{"foo"}, labels(packages))
	assert.Equal(t, []string{"CVE-1", "CVE-2"}, labels(tree.ChildrenOf(packages[0])))
}

func TestMisconfigBranchSortsBySeverity(t *testing.T) {
	tree := newTestTree("",
		misconfig("M1", "main.tf", findings.SeverityMedium, 1, 2),
		misconfig("M2", "main.tf", findings.SeverityCritical, 5, 6),
	)
	codes := tree.ChildrenOf(tree.TopLevel()[0])
	assert.Equal(t, []string{"M2", "M1"}, labels(codes))
	assert.Equal(t, MisconfigCode, codes[0].Type)
	assert.Equal(t, CodeGroup, codes[0].Level)
	assert.Equal(t, "M2@main.tf", codes[0].GroupKey)
}

func TestMisconfigBranchOrderingLaw(t *testing.T) {
	sevs := []findings.Severity{
		findings.SeverityLow, findings.SeverityUnknown, findings.SeverityHigh, findings.SeverityLow,
		findings.SeverityCritical, findings.SeverityMedium, findings.SeverityHigh, findings.SeverityUnknown,
	}
	var list []*findings.Finding
	for i, sev := range sevs {
		list = append(list, misconfig(fmt.Sprintf("M%d", i), "main.tf", sev, i+1, i+1))
	}
	tree := newTestTree("", list...)
	codes := tree.ChildrenOf(tree.TopLevel()[0])
	require.Len(t, codes, len(sevs))

	for i := 1; i < len(codes); i++ {
		a, b := codes[i-1].Finding, codes[i].Finding
		assert.GreaterOrEqual(t, a.Severity, b.Severity)
		if a.Severity == b.Severity {
			assert.Less(t, a.StartLine, b.StartLine, "equal severities keep original order")
		}
	}
}

func TestMisconfigBranchDeduplicatesIDs(t *testing.T) {
	tree := newTestTree("",
		misconfig("DS002", "Dockerfile", findings.SeverityHigh, 1, 1),
		misconfig("DS026", "Dockerfile", findings.SeverityLow, 2, 2),
		misconfig("DS002", "Dockerfile", findings.SeverityHigh, 9, 9),
		misconfig("DS002", "other/Dockerfile", findings.SeverityHigh, 4, 4),
	)
	codes := tree.ChildrenOf(tree.TopLevel()[0])
	require.Equal(t, []string{"DS002", "DS026"}, labels(codes))

	instances := tree.ChildrenOf(codes[0])
	assert.Equal(t, []string{"Dockerfile:[1-1]", "Dockerfile:[9-9]"}, labels(instances))
	for _, n := range instances {
		assert.Equal(t, MisconfigInstance, n.Type)
		assert.False(t, n.Expandable)
	}
}

func TestMisconfigFileWithSecret(t *testing.T) {
	tree := newTestTree("",
		misconfig("M1", "config.yaml", findings.SeverityLow, 1, 1),
		secret("github-pat", "config.yaml", findings.SeverityCritical, 4),
		secret("github-pat", "config.yaml", findings.SeverityCritical, 8),
	)
	top := tree.TopLevel()
	require.Equal(t, MisconfigFile, top[0].Type)

	children := tree.ChildrenOf(top[0])
	require.Equal(t, []string{"github-pat", "M1"}, labels(children))
	assert.Equal(t, SecretInstance, children[0].Type)
	assert.False(t, children[0].Expandable)
	assert.Equal(t, MisconfigCode, children[1].Type)
}

func TestFirstKindDecidesFileBranch(t *testing.T) {
	tree := newTestTree("",
		vuln("CVE-1", "Dockerfile", "openssl", findings.SeverityHigh),
		misconfig("DS002", "Dockerfile", findings.SeverityCritical, 1, 1),
	)
	top := tree.TopLevel()
	require.Len(t, top, 1)
	assert.Equal(t, VulnerabilityFile, top[0].Type)
	assert.Equal(t, []string{"openssl"}, labels(tree.ChildrenOf(top[0])))
}

func TestSecretFileBranch(t *testing.T) {
	tree := newTestTree("",
		secret("aws-key", ".env", findings.SeverityCritical, 1),
		secret("slack-token", ".env", findings.SeverityHigh, 2),
		secret("aws-key", ".env", findings.SeverityCritical, 3),
		secret("aws-key", "other/.env", findings.SeverityCritical, 1),
	)
	top := tree.TopLevel()
	require.Equal(t, SecretFile, top[0].Type)

	leaves := tree.ChildrenOf(top[0])
	require.Len(t, leaves, 2)
	for _, leaf := range leaves {
		assert.Equal(t, "aws-key", leaf.Label)
		assert.Equal(t, SecretInstance, leaf.Type)
		assert.Equal(t, ".env", leaf.Finding.Filename)
	}
	assert.Equal(t, 1, leaves[0].Finding.StartLine)
	assert.Equal(t, 3, leaves[1].Finding.StartLine)
}

func TestFileGroupWithoutMatchingChildrenStillRenders(t *testing.T) {
	orphan := &findings.Finding{ID: "X", Filename: "odd.txt"}
	tree := newTestTree("", orphan)

	top := tree.TopLevel()
	require.Len(t, top, 1)
	assert.Equal(t, SecretFile, top[0].Type)
	assert.True(t, top[0].Expandable)
}

func TestChildrenOfNodeWithoutFinding(t *testing.T) {
	tree := newTestTree("", misconfig("M1", "main.tf", findings.SeverityLow, 1, 1))
	assert.Empty(t, tree.ChildrenOf(Node{Label: "main.tf", Type: MisconfigFile}))
}

func TestLeavesCarryNavigation(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.tf"), []byte("x\n"), 0644))

	tree := newTestTree(root,
		misconfig("M1", "main.tf", findings.SeverityLow, 2, 3),
		misconfig("M2", "gone.tf", findings.SeverityLow, 1, 1),
	)
	top := tree.TopLevel()

	present := tree.ChildrenOf(tree.ChildrenOf(top[0])[0])
	require.Len(t, present, 1)
	require.NotNil(t, present[0].Command)
	assert.Equal(t, filepath.Join(root, "main.tf"), present[0].Command.Path)
	assert.Equal(t, 1, present[0].Command.Selection.Start.Line)

	missing := tree.ChildrenOf(tree.ChildrenOf(top[1])[0])
	require.Len(t, missing, 1)
	assert.Nil(t, missing[0].Command)

	assert.Nil(t, top[0].Command, "groups do not navigate")
}

func TestTreeFollowsStoreReplacement(t *testing.T) {
	store := NewStore()
	tree := NewTree(store, "")
	assert.Empty(t, tree.TopLevel())

	store.Replace(&Snapshot{Findings: []*findings.Finding{misconfig("M1", "main.tf", findings.SeverityLow, 1, 1)}})
	assert.Equal(t, []string{"main.tf"}, labels(tree.TopLevel()))

	store.Replace(&Snapshot{Findings: []*findings.Finding{vuln("CVE-1", "go.mod", "foo", findings.SeverityLow)}})
	assert.Equal(t, []string{"go.mod"}, labels(tree.TopLevel()))
}

func TestNodeTypeLevels(t *testing.T) {
	assert.Equal(t, "misconfig-file", MisconfigFile.String())
	assert.Equal(t, FileGroup, SecretFile.Level())
	assert.Equal(t, InstanceLeaf, SecretInstance.Level())
	assert.Equal(t, "code-group", MisconfigCode.Level().String())
}

package tree

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/vulx/internal/config"
	"github.com/scan-io-git/vulx/internal/explorer"
	"github.com/scan-io-git/vulx/internal/git"
	"github.com/scan-io-git/vulx/internal/navigation"
	"github.com/scan-io-git/vulx/internal/session"
	"github.com/scan-io-git/vulx/pkg/shared"
	"github.com/scan-io-git/vulx/pkg/shared/errors"
)

// RunOptionsTree holds the arguments for the tree command.
type RunOptionsTree struct {
	Depth  int
	Format string
}

// Global variables for configuration and command arguments
var (
	AppConfig   *config.Config
	logger      hclog.Logger
	workspace   string
	treeOptions RunOptionsTree

	exampleTreeUsage = `  # Print the file groups of the current workspace
  vulx tree --depth 1

  # Print the whole tree
  vulx tree

  # Print the tree as JSON for another tool
  vulx tree --format json`
)

// TreeCmd represents the tree command.
var TreeCmd = &cobra.Command{
	Use:                   "tree [--depth/-d DEPTH] [--format/-f text|json]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleTreeUsage,
	Short:                 "Print the findings of the last scan as a tree",
	Long: `Print the findings of the last scan as a tree. Every node is prefixed with its path,
which the show and open commands accept.`,
	Args: cobra.NoArgs,
	RunE: runTreeCommand,
}

// Init initializes the global configuration variables.
func Init(cfg *config.Config, l hclog.Logger, workspaceDir string) {
	AppConfig = cfg
	logger = l
	workspace = workspaceDir
}

// Entry is one node of the JSON output.
type Entry struct {
	Path string        `json:"path"`
	Node explorer.Node `json:"node"`
}

// Output is the JSON document printed by the tree command.
type Output struct {
	Workspace  string                  `json:"workspace"`
	Repository *git.RepositoryMetadata `json:"repository,omitempty"`
	Nodes      []Entry                 `json:"nodes"`
	Findings   int                     `json:"findings"`
	Sources    []string                `json:"sources"`
}

func runTreeCommand(cmd *cobra.Command, args []string) error {
	if err := validateTreeArgs(&treeOptions); err != nil {
		logger.Error("invalid tree arguments", "error", err)
		return errors.NewCommandError(treeOptions, fmt.Errorf("invalid tree arguments: %w", err), errors.ExitInvalidArgs)
	}

	s, err := session.New(AppConfig, logger, workspace)
	if err != nil {
		return errors.NewCommandError(treeOptions, err, errors.ExitGeneric)
	}
	if err := s.Load(shared.CommandContext(cmd)); err != nil {
		logger.Error("failed to load results", "error", err)
		return errors.NewCommandError(treeOptions, err, errors.ExitGeneric)
	}

	if treeOptions.Format == "json" {
		return writeJSON(cmd.OutOrStdout(), s, treeOptions.Depth)
	}
	writeText(cmd.OutOrStdout(), s.Tree, treeOptions.Depth)
	return nil
}

// writeText prints one indented line per node: "<path> <label> (<type>)".
func writeText(out io.Writer, t *explorer.Tree, depth int) {
	t.Walk(depth, func(path []int, node explorer.Node) {
		indent := strings.Repeat("  ", len(path)-1)
		line := fmt.Sprintf("%s%s %s (%s)", indent, explorer.FormatPath(path), node.Label, node.Type)
		if node.Finding != nil && node.Level != explorer.FileGroup {
			line += " " + node.Finding.Severity.String()
		}
		if node.Command != nil {
			line += " -> " + relative(node.Command, t.WorkspaceRoot())
		}
		fmt.Fprintln(out, line)
	})
}

func relative(d *navigation.OpenDirective, root string) string {
	return strings.TrimPrefix(strings.TrimPrefix(d.String(), root), "/")
}

func writeJSON(out io.Writer, s *session.Session, depth int) error {
	snap := s.Store.Snapshot()
	result := Output{
		Workspace:  s.Workspace,
		Repository: s.Metadata,
		Nodes:      []Entry{},
		Findings:   len(snap.Findings),
		Sources:    snap.Sources,
	}
	s.Tree.Walk(depth, func(path []int, node explorer.Node) {
		result.Nodes = append(result.Nodes, Entry{Path: explorer.FormatPath(path), Node: node})
	})

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("error marshaling the tree: %w", err)
	}
	_, err = fmt.Fprintln(out, string(data))
	return err
}

// Initialize flags for the tree command.
func init() {
	TreeCmd.Flags().IntVarP(&treeOptions.Depth, "depth", "d", 0, "Number of levels to print. 0 prints the whole tree.")
	TreeCmd.Flags().StringVarP(&treeOptions.Format, "format", "f", "text", "Output format: text or json.")
	TreeCmd.Flags().BoolP("help", "h", false, "Show help for the tree command.")
}

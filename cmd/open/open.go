package open

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/vulx/internal/config"
	"github.com/scan-io-git/vulx/internal/explorer"
	"github.com/scan-io-git/vulx/internal/session"
	"github.com/scan-io-git/vulx/pkg/shared"
	"github.com/scan-io-git/vulx/pkg/shared/errors"
)

// RunOptionsOpen holds the arguments for the open command.
type RunOptionsOpen struct {
	Path string
	JSON bool
}

// Global variables for configuration and command arguments
var (
	AppConfig   *config.Config
	logger      hclog.Logger
	workspace   string
	openOptions RunOptionsOpen

	exampleOpenUsage = `  # Print the file and line range of a misconfiguration instance
  vulx open 1.2.1

  # Print the open directive as JSON, e.g. for an editor integration
  vulx open --json 1.2.1`
)

// OpenCmd represents the open command.
var OpenCmd = &cobra.Command{
	Use:                   "open [--json] NODE_PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleOpenUsage,
	Short:                 "Print where the finding of a leaf node is located",
	Long: `Print where the finding of a leaf node is located, as PATH:START-END. Nothing is printed
when the node is not navigable: it is a group, its file does not exist or it lies outside the workspace.`,
	RunE: runOpenCommand,
}

// Init initializes the global configuration variables.
func Init(cfg *config.Config, l hclog.Logger, workspaceDir string) {
	AppConfig = cfg
	logger = l
	workspace = workspaceDir
}

func runOpenCommand(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		err := fmt.Errorf("exactly one node path must be specified")
		logger.Error("invalid open arguments", "error", err)
		return errors.NewCommandError(openOptions, err, errors.ExitInvalidArgs)
	}
	openOptions.Path = args[0]

	path, err := explorer.ParsePath(openOptions.Path)
	if err != nil {
		logger.Error("invalid open arguments", "error", err)
		return errors.NewCommandError(openOptions, err, errors.ExitInvalidArgs)
	}

	s, err := session.New(AppConfig, logger, workspace)
	if err != nil {
		return errors.NewCommandError(openOptions, err, errors.ExitGeneric)
	}
	if err := s.Load(shared.CommandContext(cmd)); err != nil {
		logger.Error("failed to load results", "error", err)
		return errors.NewCommandError(openOptions, err, errors.ExitGeneric)
	}

	node, err := s.Tree.Resolve(path)
	if err != nil {
		logger.Error("failed to resolve node", "path", openOptions.Path, "error", err)
		return errors.NewCommandError(openOptions, err, errors.ExitInvalidArgs)
	}

	if node.Command == nil {
		logger.Info("node is not navigable", "path", openOptions.Path, "type", node.Type)
		return nil
	}

	if openOptions.JSON {
		data, err := json.MarshalIndent(node.Command, "", "  ")
		if err != nil {
			return fmt.Errorf("error marshaling the open directive: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), node.Command.String())
	return err
}

// Initialize flags for the open command.
func init() {
	OpenCmd.Flags().BoolVar(&openOptions.JSON, "json", false, "Print the open directive as JSON.")
	OpenCmd.Flags().BoolP("help", "h", false, "Show help for the open command.")
}

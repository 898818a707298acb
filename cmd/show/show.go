package show

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/vulx/internal/config"
	"github.com/scan-io-git/vulx/internal/detail"
	"github.com/scan-io-git/vulx/internal/session"
	"github.com/scan-io-git/vulx/pkg/shared"
	"github.com/scan-io-git/vulx/pkg/shared/errors"
	"github.com/scan-io-git/vulx/pkg/shared/files"
)

// RunOptionsShow holds the arguments for the show command.
type RunOptionsShow struct {
	Path       string
	Format     string
	OutputPath string
}

// Global variables for configuration and command arguments
var (
	AppConfig   *config.Config
	logger      hclog.Logger
	workspace   string
	showOptions RunOptionsShow

	exampleShowUsage = `  # Show the details of the first check of the first file
  vulx show 1.1

  # Render the details of a vulnerability as an HTML page
  vulx show 2.1.1 --format html --output /tmp/CVE.html`
)

// ShowCmd represents the show command.
var ShowCmd = &cobra.Command{
	Use:                   "show [--format/-f markdown|html|json] [--output/-o PATH] NODE_PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleShowUsage,
	Short:                 "Show the details of a tree node",
	RunE:                  runShowCommand,
}

// Init initializes the global configuration variables.
func Init(cfg *config.Config, l hclog.Logger, workspaceDir string) {
	AppConfig = cfg
	logger = l
	workspace = workspaceDir
}

func runShowCommand(cmd *cobra.Command, args []string) error {
	if len(args) == 0 && !shared.HasFlags(cmd.Flags()) {
		return cmd.Help()
	}

	path, format, err := validateShowArgs(&showOptions, args)
	if err != nil {
		logger.Error("invalid show arguments", "error", err)
		return errors.NewCommandError(showOptions, fmt.Errorf("invalid show arguments: %w", err), errors.ExitInvalidArgs)
	}

	s, err := session.New(AppConfig, logger, workspace)
	if err != nil {
		return errors.NewCommandError(showOptions, err, errors.ExitGeneric)
	}
	if err := s.Load(shared.CommandContext(cmd)); err != nil {
		logger.Error("failed to load results", "error", err)
		return errors.NewCommandError(showOptions, err, errors.ExitGeneric)
	}

	node, err := s.Tree.Resolve(path)
	if err != nil {
		logger.Error("failed to resolve node", "path", showOptions.Path, "error", err)
		return errors.NewCommandError(showOptions, err, errors.ExitInvalidArgs)
	}

	doc := detail.Render(node)
	if doc.IsEmpty() {
		logger.Info("nothing to show for the node", "path", showOptions.Path, "type", node.Type)
		return nil
	}

	data, err := detail.Write(doc, format)
	if err != nil {
		return errors.NewCommandError(showOptions, err, errors.ExitGeneric)
	}

	if showOptions.OutputPath != "" {
		if err := files.WriteFile(showOptions.OutputPath, data); err != nil {
			logger.Error("failed to write result", "error", err)
			return errors.NewCommandError(showOptions, err, errors.ExitGeneric)
		}
		logger.Info("details saved to file", "path", showOptions.OutputPath)
		return nil
	}

	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// Initialize flags for the show command.
func init() {
	ShowCmd.Flags().StringVarP(&showOptions.Format, "format", "f", string(detail.FormatMarkdown), "Output format: markdown, html or json.")
	ShowCmd.Flags().StringVarP(&showOptions.OutputPath, "output", "o", "", "Path to a file the details are written to instead of stdout.")
	ShowCmd.Flags().BoolP("help", "h", false, "Show help for the show command.")
}


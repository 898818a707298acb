package tosarif

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/vulx/internal/config"
	"github.com/scan-io-git/vulx/internal/sarif"
	"github.com/scan-io-git/vulx/internal/session"
	"github.com/scan-io-git/vulx/pkg/shared"
	"github.com/scan-io-git/vulx/pkg/shared/errors"
	"github.com/scan-io-git/vulx/pkg/shared/files"
)

// RunOptionsToSarif holds the arguments for the to-sarif command.
type RunOptionsToSarif struct {
	OutputPath string
}

// Global variables for configuration and command arguments
var (
	AppConfig      *config.Config
	logger         hclog.Logger
	workspace      string
	toSarifOptions RunOptionsToSarif

	exampleToSarifUsage = `  # Export the findings of the last scan
  vulx to-sarif -o /path/to/report.sarif`
)

// ToSarifCmd represents the to-sarif command.
var ToSarifCmd = &cobra.Command{
	Use:                   "to-sarif --output/-o PATH",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleToSarifUsage,
	Short:                 "Export the findings of the last scan as a SARIF report",
	Args:                  cobra.NoArgs,
	RunE:                  runToSarifCommand,
}

// Init initializes the global configuration variables.
func Init(cfg *config.Config, l hclog.Logger, workspaceDir string) {
	AppConfig = cfg
	logger = l
	workspace = workspaceDir
}

func runToSarifCommand(cmd *cobra.Command, args []string) error {
	if toSarifOptions.OutputPath == "" {
		err := fmt.Errorf("the 'output' flag must be specified")
		logger.Error("invalid to-sarif arguments", "error", err)
		return errors.NewCommandError(toSarifOptions, err, errors.ExitInvalidArgs)
	}
	outputPath, err := files.ExpandPath(toSarifOptions.OutputPath)
	if err != nil {
		return errors.NewCommandError(toSarifOptions, err, errors.ExitInvalidArgs)
	}

	s, err := session.New(AppConfig, logger, workspace)
	if err != nil {
		return errors.NewCommandError(toSarifOptions, err, errors.ExitGeneric)
	}
	if err := s.Load(shared.CommandContext(cmd)); err != nil {
		logger.Error("failed to load results", "error", err)
		return errors.NewCommandError(toSarifOptions, err, errors.ExitGeneric)
	}

	report, err := sarif.FromFindings(s.Store.Snapshot().Findings, logger)
	if err != nil {
		return errors.NewCommandError(toSarifOptions, err, errors.ExitGeneric)
	}
	report.SortResultsByLevel()

	if err := report.WriteFile(outputPath); err != nil {
		logger.Error("failed to write result", "error", err)
		return errors.NewCommandError(toSarifOptions, err, errors.ExitGeneric)
	}

	info := report.CollectSeverityInfo()
	logger.Info("to-sarif command completed successfully", "path", outputPath)
	logger.Info("statistic", "total", info["total"], "critical", info["critical"], "high", info["high"],
		"medium", info["medium"], "low", info["low"], "unknown", info["unknown"])
	return nil
}

// Initialize flags for the to-sarif command.
func init() {
	ToSarifCmd.Flags().StringVarP(&toSarifOptions.OutputPath, "output", "o", "", "Path to the SARIF report to write.")
	ToSarifCmd.Flags().BoolP("help", "h", false, "Show help for the to-sarif command.")
}

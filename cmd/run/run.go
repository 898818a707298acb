package run

import (
	"fmt"
	"io"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/vulx/internal/config"
	"github.com/scan-io-git/vulx/internal/findings"
	"github.com/scan-io-git/vulx/internal/sarif"
	"github.com/scan-io-git/vulx/internal/scanner"
	"github.com/scan-io-git/vulx/internal/session"
	"github.com/scan-io-git/vulx/pkg/shared"
	"github.com/scan-io-git/vulx/pkg/shared/errors"
)

// RunOptionsRun holds the arguments for the run command.
type RunOptionsRun struct {
	Targets []string
}

// Global variables for configuration and command arguments
var (
	AppConfig  *config.Config
	logger     hclog.Logger
	workspace  string
	runOptions RunOptionsRun

	// newScanner is replaced in tests.
	newScanner = scanner.New

	exampleRunUsage = `  # Scan the whole workspace
  vulx run

  # Scan two folders of the workspace
  vulx run services/api deploy/terraform`
)

// RunCmd represents the run command.
var RunCmd = &cobra.Command{
	Use:                   "run [TARGET...]",
	SilenceUsage:          true,
	DisableFlagsInUseLine: true,
	Example:               exampleRunUsage,
	Short:                 "Run the scanner over the workspace and reload the findings",
	Long: `Run the scanner over the workspace, or over the given targets, replacing the previous results.
Findings are reloaded after every successful scan and summarised per severity.`,
	RunE: runRunCommand,
}

// Init initializes the global configuration variables.
func Init(cfg *config.Config, l hclog.Logger, workspaceDir string) {
	AppConfig = cfg
	logger = l
	workspace = workspaceDir
}

func runRunCommand(cmd *cobra.Command, args []string) error {
	ctx := shared.CommandContext(cmd)

	s, err := session.New(AppConfig, logger, workspace)
	if err != nil {
		return errors.NewCommandError(runOptions, err, errors.ExitGeneric)
	}

	if err := validateRunArgs(&runOptions, args, s.Workspace); err != nil {
		logger.Error("invalid run arguments", "error", err)
		return errors.NewCommandError(runOptions, fmt.Errorf("invalid run arguments: %w", err), errors.ExitInvalidArgs)
	}

	sc := newScanner(AppConfig, logger.Named("scanner"))
	launches, err := sc.Run(ctx, runOptions.Targets, func(target string, scanErr error) {
		s.Reloader.OnScanComplete(ctx, scanErr)
	})
	if err != nil {
		logger.Error("failed to prepare scan", "error", err)
		return errors.NewCommandError(runOptions, err, errors.ExitScanner)
	}
	s.Reloader.Wait()

	if err := s.Reloader.LastError(); err != nil {
		logger.Error("failed to reload results", "error", err)
	}
	if err := printSummary(cmd.OutOrStdout(), s.Store.Snapshot().Findings); err != nil {
		return err
	}

	var failed []string
	for _, launch := range launches {
		if launch.Status != shared.StatusOK {
			failed = append(failed, launch.Target)
		}
	}
	if len(failed) > 0 {
		err := fmt.Errorf("scan failed for %s", strings.Join(failed, ", "))
		logger.Error("run command failed", "error", err)
		return errors.NewCommandError(runOptions, err, errors.ExitScanner)
	}

	logger.Info("run command completed successfully")
	return nil
}

// printSummary prints one line counting the loaded findings per severity.
func printSummary(out io.Writer, list []*findings.Finding) error {
	report, err := sarif.FromFindings(list, nil)
	if err != nil {
		return err
	}
	info := report.CollectSeverityInfo()

	parts := make([]string, 0, len(findings.Severities))
	for _, sev := range findings.Severities {
		name := sev.String()
		parts = append(parts, fmt.Sprintf("%s: %d", name, info[strings.ToLower(name)]))
	}
	_, err = fmt.Fprintf(out, "Total: %d (%s)\n", info["total"], strings.Join(parts, ", "))
	return err
}

// Initialize flags for the run command.
func init() {
	RunCmd.Flags().BoolP("help", "h", false, "Show help for the run command.")
}

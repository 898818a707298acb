package cmd

import (
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/scan-io-git/vulx/cmd/open"
	"github.com/scan-io-git/vulx/cmd/run"
	"github.com/scan-io-git/vulx/cmd/show"
	"github.com/scan-io-git/vulx/cmd/tosarif"
	"github.com/scan-io-git/vulx/cmd/tree"
	"github.com/scan-io-git/vulx/cmd/version"
	"github.com/scan-io-git/vulx/internal/config"
	"github.com/scan-io-git/vulx/internal/logger"
	"github.com/scan-io-git/vulx/pkg/shared/errors"
)

var (
	cfgFile      string
	workspaceDir string
	initErr      error
	AppConfig    *config.Config
	Logger       hclog.Logger
	rootCmd      = &cobra.Command{
		Use:                   "vulx [command]",
		SilenceUsage:          true,
		SilenceErrors:         true,
		DisableFlagsInUseLine: true,
		Short:                 "Vulx browses vulnerability, misconfiguration and secret findings of a workspace.",
		Long: `Vulx runs the vul scanner over a workspace and presents its findings as a navigable tree:
	findings are grouped per file, per vulnerable package and per check, with details on demand.
	`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if initErr != nil {
				return errors.NewCommandError(cfgFile, initErr, errors.ExitInvalidArgs)
			}
			return nil
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is config.yml)")
	rootCmd.PersistentFlags().StringVarP(&workspaceDir, "workspace", "w", ".", "Workspace folder. The enclosing git repository root is used when there is one.")

	rootCmd.AddCommand(tree.TreeCmd)
	rootCmd.AddCommand(show.ShowCmd)
	rootCmd.AddCommand(open.OpenCmd)
	rootCmd.AddCommand(run.RunCmd)
	rootCmd.AddCommand(tosarif.ToSarifCmd)
	rootCmd.AddCommand(version.NewVersionCmd())
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		return errors.ExitCode(err)
	}
	return 0
}

func initConfig() {
	explicit := cfgFile != ""
	if !explicit {
		cfgFile = config.DefaultConfigPath
	}

	AppConfig, initErr = config.LoadConfig(cfgFile, explicit)
	if initErr == nil {
		initErr = config.ValidateConfig(AppConfig)
	}
	if initErr != nil {
		AppConfig = &config.Config{}
	}

	Logger = logger.NewLogger(AppConfig, "core")

	tree.Init(AppConfig, Logger.Named("tree"), workspaceDir)
	show.Init(AppConfig, Logger.Named("show"), workspaceDir)
	open.Init(AppConfig, Logger.Named("open"), workspaceDir)
	run.Init(AppConfig, Logger.Named("run"), workspaceDir)
	tosarif.Init(AppConfig, Logger.Named("to-sarif"), workspaceDir)
	version.Init(AppConfig)
}

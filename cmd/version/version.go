package version

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/scan-io-git/vulx/internal/config"
)

var (
	AppConfig     *config.Config
	CoreVersion   = "unknown"
	GolangVersion = "unknown"
	BuildTime     = "unknown"
	asJSON        bool
)

// Versions holds version information for the application and the scanner it drives.
type Versions struct {
	Version       string `json:"version"`
	GolangVersion string `json:"golang_version"`
	BuildTime     string `json:"build_time"`
	Scanner       string `json:"scanner"`
	ResultsFolder string `json:"results_folder"`
}

// Init initializes the global configuration variable.
func Init(cfg *config.Config) {
	AppConfig = cfg
}

// NewVersionCmd creates a new cobra.Command for the version command.
func NewVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:                   "version [--json]",
		SilenceUsage:          true,
		DisableFlagsInUseLine: true,
		Short:                 "Print the version number of the application",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printVersionInfo(cmd.OutOrStdout(), current(), asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the version information as JSON.")
	return cmd
}

func current() Versions {
	return Versions{
		Version:       CoreVersion,
		GolangVersion: GolangVersion,
		BuildTime:     BuildTime,
		Scanner:       config.GetBinaryPath(AppConfig),
		ResultsFolder: config.GetResultsFolder(AppConfig),
	}
}

// printVersionInfo prints the version information.
func printVersionInfo(out io.Writer, v Versions, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}

	fmt.Fprintf(out, "Core Version: v%s\n", v.Version)
	fmt.Fprintf(out, "Scanner: %s\n", v.Scanner)
	fmt.Fprintf(out, "Results Folder: %s\n", v.ResultsFolder)
	fmt.Fprintf(out, "Go Version: %s\n", v.GolangVersion)
	_, err := fmt.Fprintf(out, "Build Time: %s\n", v.BuildTime)
	return err
}

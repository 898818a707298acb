package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/scan-io-git/vulx/internal/findings"
	"github.com/scan-io-git/vulx/pkg/shared/files"
)

const maxJobs = 16

// ValidateConfig checks if the global configurations have valid values and fills in defaults.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("YAML global config: configuration object is nil")
	}
	if err := ValidateVulConfig(&cfg.Vul); err != nil {
		return fmt.Errorf("YAML global config: vul directive is invalid: %w", err)
	}
	return nil
}

// ValidateVulConfig checks the scanner settings and prepares the results folder.
func ValidateVulConfig(vul *Vul) error {
	if vul == nil {
		return fmt.Errorf("vul configuration is nil")
	}

	if vul.MinimumReportedSeverity == "" {
		vul.MinimumReportedSeverity = findings.SeverityUnknown.String()
	}
	if !findings.IsValidSeverity(vul.MinimumReportedSeverity) {
		return fmt.Errorf("unknown minimum_reported_severity %q", vul.MinimumReportedSeverity)
	}
	vul.MinimumReportedSeverity = strings.ToUpper(strings.TrimSpace(vul.MinimumReportedSeverity))

	if vul.Jobs == 0 {
		vul.Jobs = 1
	}
	if vul.Jobs < 1 || vul.Jobs > maxJobs {
		return fmt.Errorf("jobs must be between 1 and %d: %d", maxJobs, vul.Jobs)
	}

	if err := validateServer(&vul.Server); err != nil {
		return err
	}

	if err := updateResultsFolder(vul); err != nil {
		return fmt.Errorf("failed to update results folder: %w", err)
	}
	return nil
}

// validateServer checks the client/server mode settings.
func validateServer(server *Server) error {
	if !server.Enable {
		return nil
	}
	if server.URL == "" {
		return fmt.Errorf("server.url must be set when server mode is enabled")
	}
	u, err := url.Parse(server.URL)
	if err != nil {
		return fmt.Errorf("invalid server url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("server url %q must be absolute", server.URL)
	}
	return nil
}

// updateResultsFolder resolves the results folder from the environment or a default and creates it.
func updateResultsFolder(vul *Vul) error {
	if envValue := os.Getenv("VULX_RESULTS_FOLDER"); envValue != "" {
		vul.ResultsFolder = envValue
	} else if vul.ResultsFolder == "" {
		home, err := getHome()
		if err != nil {
			return err
		}
		vul.ResultsFolder = filepath.Join(home, "results")
	}

	expanded, err := files.ExpandPath(vul.ResultsFolder)
	if err != nil {
		return fmt.Errorf("failed to expand path %q: %w", vul.ResultsFolder, err)
	}
	vul.ResultsFolder = expanded

	if err := files.CreateFolderIfNotExists(expanded); err != nil {
		return fmt.Errorf("failed to create folder %q: %w", expanded, err)
	}
	return nil
}

// getHome returns VULX_HOME or ~/.vulx.
func getHome() (string, error) {
	if home := os.Getenv("VULX_HOME"); home != "" {
		return files.ExpandPath(home)
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("unable to get user home folder: %w", err)
	}
	return filepath.Join(userHome, ".vulx"), nil
}

package scanner

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/vulx/internal/config"
	"github.com/scan-io-git/vulx/internal/findings"
	"github.com/scan-io-git/vulx/internal/results"
	"github.com/scan-io-git/vulx/pkg/shared"
	"github.com/scan-io-git/vulx/pkg/shared/files"
)

// CommandFunc runs name with args, writing its combined output to out.
type CommandFunc func(ctx context.Context, name string, args []string, out io.Writer) error

// Launch is the outcome of scanning one target.
type Launch struct {
	Target      string `json:"target"`
	ResultsPath string `json:"results_path"`
	Status      string `json:"status"`
	Message     string `json:"message,omitempty"`
}

// Scanner runs the external scanner over workspace targets and stores its reports
// in the results folder.
type Scanner struct {
	binary         string       // Scanner executable
	resultsFolder  string       // Folder receiving <uuid>_results.json documents
	settings       config.Vul   // Flags forwarded to the scanner
	concurrentJobs int          // Number of scanner processes allowed at once
	logger         hclog.Logger // Logger for scanner output and progress
	run            CommandFunc
}

// New creates a Scanner from the validated configuration.
func New(cfg *config.Config, logger hclog.Logger) *Scanner {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	var settings config.Vul
	if cfg != nil {
		settings = cfg.Vul
	}
	return &Scanner{
		binary:         config.GetBinaryPath(cfg),
		resultsFolder:  config.GetResultsFolder(cfg),
		settings:       settings,
		concurrentJobs: config.GetJobs(cfg),
		logger:         logger,
		run:            execCommand,
	}
}

// WithCommand replaces the function used to start the scanner process.
func (s *Scanner) WithCommand(run CommandFunc) *Scanner {
	s.run = run
	return s
}

// ResultsFolder returns the folder reports are written to.
func (s *Scanner) ResultsFolder() string {
	return s.resultsFolder
}

// BuildArgs returns the scanner arguments for one target writing its report to resultsPath.
func (s *Scanner) BuildArgs(target, resultsPath string) []string {
	var args []string
	if s.settings.Debug {
		args = append(args, "--debug")
	}

	checks := "config,vuln"
	if s.settings.SecretScanning {
		checks += ",secret"
	}
	args = append(args, "fs", "--security-checks="+checks, "--severity="+severityList(s.settings.MinimumReportedSeverity))

	if s.settings.OfflineScan {
		args = append(args, "--offline-scan")
	}
	if s.settings.FixedOnly {
		args = append(args, "--ignore-unfixed")
	}
	if s.settings.Server.Enable && s.settings.Server.URL != "" {
		args = append(args, "--server", s.settings.Server.URL)
	}

	return append(args, "--format=json", "--output="+resultsPath, target)
}

// severityList lists every severity from CRITICAL down to minimum.
func severityList(minimum string) string {
	var names []string
	for _, sev := range findings.AtLeast(findings.ParseSeverity(minimum)) {
		names = append(names, sev.String())
	}
	return strings.Join(names, ",")
}

// Run clears previous reports once, then scans every target with at most concurrentJobs
// processes at a time. onComplete, when set, is called once per target with the scan error.
func (s *Scanner) Run(ctx context.Context, targets []string, onComplete func(target string, err error)) ([]Launch, error) {
	if err := files.CreateFolderIfNotExists(s.resultsFolder); err != nil {
		return nil, fmt.Errorf("failed to create results folder '%s': %w", s.resultsFolder, err)
	}
	if err := results.Clear(s.resultsFolder); err != nil {
		return nil, err
	}
	s.logger.Info("scan starting", "total", len(targets), "goroutines", s.concurrentJobs)

	launches := make([]Launch, len(targets))
	shared.ForEveryStringWithBoundedGoroutines(s.concurrentJobs, targets, func(i int, target string) {
		launch, err := s.scanTarget(ctx, target)
		launches[i] = launch
		if onComplete != nil {
			onComplete(target, err)
		}
	})
	return launches, nil
}

func (s *Scanner) scanTarget(ctx context.Context, target string) (Launch, error) {
	resultsPath := results.NewResultsPath(s.resultsFolder)
	launch := Launch{Target: target, ResultsPath: resultsPath, Status: shared.StatusOK}

	if err := ctx.Err(); err != nil {
		launch.Status, launch.Message = shared.StatusFailed, err.Error()
		return launch, err
	}

	args := s.BuildArgs(target, resultsPath)
	s.logger.Info("scan is starting", "target", target)
	s.logger.Debug("scanner command", "binary", s.binary, "args", args)

	var stdBuffer bytes.Buffer
	out := io.MultiWriter(s.logger.StandardWriter(&hclog.StandardLoggerOptions{
		InferLevels: true,
	}), &stdBuffer)

	if err := s.run(ctx, s.binary, args, out); err != nil {
		err = fmt.Errorf("scanner failed for %q: %w", target, err)
		s.logger.Error("scanner execution error", "target", target, "error", err, "output", strings.TrimSpace(stdBuffer.String()))
		launch.Status, launch.Message = shared.StatusFailed, err.Error()
		return launch, err
	}

	s.logger.Info("scan finished", "target", target, "results", resultsPath)
	return launch, nil
}

func execCommand(ctx context.Context, name string, args []string, out io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = out
	cmd.Stderr = out
	return cmd.Run()
}

package results

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/scan-io-git/vulx/internal/findings"
	"github.com/scan-io-git/vulx/pkg/shared/files"
)

// Suffixes of the result documents written by the scanner.
var Suffixes = []string{"_results.json", "_results.json.json"}

// Set is the outcome of one load: every finding of every readable document.
type Set struct {
	Findings []*findings.Finding
	Sources  []string
}

// Loader reads result documents from a folder.
type Loader struct {
	folder string
	logger hclog.Logger
}

// NewLoader creates a Loader for the given results folder.
func NewLoader(folder string, logger hclog.Logger) *Loader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Loader{folder: folder, logger: logger}
}

// Folder returns the folder the loader reads from.
func (l *Loader) Folder() string {
	return l.folder
}

// Load reads every result document in the folder. A document that cannot be read or parsed
// is skipped with a warning; only a folder that cannot be listed fails the whole load.
func (l *Loader) Load(ctx context.Context) (*Set, error) {
	names, err := files.ListBySuffix(l.folder, Suffixes)
	if err != nil {
		return nil, fmt.Errorf("failed to list result documents: %w", err)
	}

	set := &Set{}
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		path := filepath.Join(l.folder, name)
		list, err := ReadDocument(path)
		if err != nil {
			l.logger.Warn("skipping result document", "path", path, "error", err)
			continue
		}
		set.Findings = append(set.Findings, list...)
		set.Sources = append(set.Sources, path)
	}

	l.logger.Debug("result documents loaded", "documents", len(set.Sources), "findings", len(set.Findings))
	return set, nil
}

// ReadDocument reads and flattens a single result document.
// A null document or a null Results list yields no findings and no error.
func ReadDocument(path string) ([]*findings.Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseDocument(data)
}

// ParseDocument flattens the raw bytes of a result document.
func ParseDocument(data []byte) ([]*findings.Finding, error) {
	var doc *Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse result document: %w", err)
	}
	if doc == nil {
		return nil, nil
	}

	var out []*findings.Finding
	for _, r := range doc.Results {
		out = append(out, Flatten(r)...)
	}
	return out, nil
}

// NewResultsPath returns a fresh result document path inside folder.
func NewResultsPath(folder string) string {
	return filepath.Join(folder, fmt.Sprintf("%s_results.json", uuid.New().String()))
}

// Clear removes previous result documents from folder.
func Clear(folder string) error {
	if err := files.RemoveBySuffix(folder, Suffixes); err != nil {
		return fmt.Errorf("failed to clear results folder: %w", err)
	}
	return nil
}

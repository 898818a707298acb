package navigation

import (
	"fmt"
	"path/filepath"

	"github.com/scan-io-git/vulx/internal/findings"
	"github.com/scan-io-git/vulx/pkg/shared/files"
)

// CommandOpen asks the host to open a file, optionally selecting a range.
const CommandOpen = "open"

// Position is a 0-based line and character offset.
type Position struct {
	Line      int `json:"line"`
	Character int `json:"character"`
}

// Range is a half-open selection from Start to End.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// OpenDirective tells the host which file to open and what to select.
// A nil Selection means the file is opened without selecting anything.
type OpenDirective struct {
	Command   string `json:"command"`
	Path      string `json:"path"`
	Selection *Range `json:"selection"`
}

func (d *OpenDirective) String() string {
	if d.Selection == nil {
		return d.Path
	}
	return fmt.Sprintf("%s:%d-%d", d.Path, d.Selection.Start.Line+1, d.Selection.End.Line)
}

// BuildOpenCommand returns a directive opening the finding's file inside workspaceRoot.
// It returns nil when the finding is not navigable: no workspace root, a path escaping
// the root, or a file that does not exist.
func BuildOpenCommand(f *findings.Finding, workspaceRoot string) *OpenDirective {
	if f == nil || workspaceRoot == "" {
		return nil
	}

	path, err := files.EnsureWithinRoot(workspaceRoot, filepath.Join(workspaceRoot, f.Filename))
	if err != nil || !files.Exists(path) {
		return nil
	}

	directive := &OpenDirective{Command: CommandOpen, Path: path}
	if f.HasLocation() {
		start := f.StartLine - 1
		if start < 0 {
			start = 0
		}
		directive.Selection = &Range{
			Start: Position{Line: start},
			End:   Position{Line: f.EndLine},
		}
	}
	return directive
}

package run

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/scan-io-git/vulx/pkg/shared/files"
)

// validateRunArgs resolves the scan targets. Relative targets are taken from the workspace root;
// no target means the whole workspace.
func validateRunArgs(options *RunOptionsRun, args []string, workspaceRoot string) error {
	if len(args) == 0 {
		options.Targets = []string{workspaceRoot}
		return nil
	}

	options.Targets = options.Targets[:0]
	for _, arg := range args {
		target, err := files.ExpandPath(arg)
		if err != nil {
			return err
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(workspaceRoot, target)
		}
		if _, err := os.Stat(target); os.IsNotExist(err) {
			return fmt.Errorf("the target path does not exist: %v", arg)
		}
		options.Targets = append(options.Targets, filepath.Clean(target))
	}
	return nil
}

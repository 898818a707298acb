package show

import (
	"fmt"

	"github.com/scan-io-git/vulx/internal/detail"
	"github.com/scan-io-git/vulx/internal/explorer"
)

// validateShowArgs validates the arguments provided to the show command and returns the parsed
// node path and output format.
func validateShowArgs(options *RunOptionsShow, args []string) ([]int, detail.Format, error) {
	if len(args) != 1 {
		return nil, "", fmt.Errorf("exactly one node path must be specified")
	}
	options.Path = args[0]

	path, err := explorer.ParsePath(options.Path)
	if err != nil {
		return nil, "", err
	}

	format, err := detail.ParseFormat(options.Format)
	if err != nil {
		return nil, "", err
	}
	return path, format, nil
}

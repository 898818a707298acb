package tree

import (
	"fmt"
	"strings"
)

// validateTreeArgs validates the arguments provided to the tree command.
func validateTreeArgs(options *RunOptionsTree) error {
	if options.Depth < 0 {
		return fmt.Errorf("the 'depth' flag must not be negative")
	}

	options.Format = strings.ToLower(strings.TrimSpace(options.Format))
	switch options.Format {
	case "":
		options.Format = "text"
	case "text", "json":
	default:
		return fmt.Errorf("unsupported format %q, expected text or json", options.Format)
	}
	return nil
}

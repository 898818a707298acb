package shared

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// HasFlags reports whether any flag of the set was set on the command line.
func HasFlags(flags *pflag.FlagSet) bool {
	changed := false
	flags.Visit(func(*pflag.Flag) {
		changed = true
	})
	return changed
}

// CommandContext returns the context of cmd, or a background context when it has none.
func CommandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

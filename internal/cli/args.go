package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RequireInput validates that exactly one input argument is provided.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireInput(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <input>

Usage: %s

Example:
  %s project.qgs
  %s -i project.qgz`, cmd.UseLine(), cmd.CommandPath(), cmd.CommandPath())
	}
	if len(args) > 1 {
		return fmt.Errorf("accepts 1 arg(s), received %d", len(args))
	}
	return nil
}

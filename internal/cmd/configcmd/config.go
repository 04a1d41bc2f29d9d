// Package configcmd provides commands for inspecting and managing saved
// configuration profiles.
package configcmd

import (
	"github.com/spf13/cobra"
)

// NewCmdConfig creates the config command group.
func NewCmdConfig() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage cfmd configuration profiles",
		Long: `Commands for inspecting and managing saved configuration profiles.

Profiles let you keep credentials for several Confluence instances and
switch between them with the global --profile flag.`,
	}

	cmd.AddCommand(NewCmdShow())
	cmd.AddCommand(NewCmdList())
	cmd.AddCommand(NewCmdDelete())

	return cmd
}

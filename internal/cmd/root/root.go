// Package root provides the root command for the cfmd CLI.
package root

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-markdown/internal/cmd/completion"
	"github.com/open-cli-collective/confluence-markdown/internal/cmd/configcmd"
	initcmd "github.com/open-cli-collective/confluence-markdown/internal/cmd/init"
	"github.com/open-cli-collective/confluence-markdown/internal/cmd/page"
	"github.com/open-cli-collective/confluence-markdown/internal/cmd/search"
	"github.com/open-cli-collective/confluence-markdown/internal/version"
)

// NewCmdRoot creates the root command for cfmd.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cfmd",
		Short: "Work with Confluence pages as markdown",
		Long: `cfmd is a CLI tool for Confluence Data Center that converts pages
to markdown and back, preserving Confluence macros across the round trip.

It provides commands for viewing, editing, creating, and searching pages,
with your own editor driving the edit flow.

Get started by running: cfmd init`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("output", "o", "table", "output format: table, json, plain")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")
	cmd.PersistentFlags().StringP("profile", "p", "", "config profile name (default: \"default\")")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug output")

	cmd.SetVersionTemplate("cfmd version {{.Version}} (commit: " + version.Commit + ", built: " + version.Date + ")\n")

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(page.NewCmdPage())
	cmd.AddCommand(search.NewCmdSearch())
	cmd.AddCommand(completion.NewCmdCompletion())

	return cmd
}

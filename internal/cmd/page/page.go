// Package page provides page-related commands.
package page

import (
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-markdown/api"
	"github.com/open-cli-collective/confluence-markdown/internal/config"
)

// NewCmdPage creates the page command.
func NewCmdPage() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "page",
		Aliases: []string{"pages"},
		Short:   "Manage Confluence pages",
		Long:    `Commands for viewing, editing, creating, and appending to Confluence pages.`,
	}

	cmd.AddCommand(NewCmdView())
	cmd.AddCommand(NewCmdEdit())
	cmd.AddCommand(NewCmdCreate())
	cmd.AddCommand(NewCmdAppend())
	cmd.AddCommand(NewCmdRecent())

	return cmd
}

// newClient builds an API client from the active profile and the global
// flags. Commands take an injectable client for testing and fall back to this.
func newClient(cmd *cobra.Command) (*api.Client, error) {
	profileName, _ := cmd.Flags().GetString("profile")
	verbose, _ := cmd.Flags().GetBool("verbose")

	profile, err := config.LoadProfile(config.DefaultConfigPath(), profileName)
	if err != nil {
		return nil, err
	}

	client := api.NewClient(profile.BaseURL, profile.Username, profile.Password, profile.Token)
	client.SetVerbose(verbose)
	return client, nil
}

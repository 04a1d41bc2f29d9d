// Package search provides the search command for finding Confluence pages.
package search

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-markdown/api"
	"github.com/open-cli-collective/confluence-markdown/internal/cmd/page"
	"github.com/open-cli-collective/confluence-markdown/internal/config"
	"github.com/open-cli-collective/confluence-markdown/internal/picker"
	"github.com/open-cli-collective/confluence-markdown/internal/view"
)

type searchOptions struct {
	query string // Positional arg: free-text search
	cql   string // Raw CQL (power users)
	limit int

	pickEdit bool
	pickView bool

	output  string
	noColor bool
}

// NewCmdSearch creates the search command.
func NewCmdSearch() *cobra.Command {
	opts := &searchOptions{}

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search Confluence pages",
		Long: `Search for pages in Confluence.

A free-text query is wrapped in CQL for you; raw CQL is available with
--cql for advanced queries (a type=page filter is added unless the query
already has one).

With --view or --edit, an interactive picker opens on the results and the
selected page is displayed or edited.`,
		Example: `  # Full-text search
  cfmd search "deployment guide"

  # Search and open the selected result
  cfmd search "release notes" --view

  # Search and edit the selected result
  cfmd search "runbook" --edit

  # Power user: raw CQL query
  cfmd search --cql "space=DEV AND lastmodified > now('-7d')"

  # Output as JSON for scripting
  cfmd search "config" -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				opts.query = args[0]
			}
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runSearch(cmd, opts, nil)
		},
	}

	cmd.Flags().StringVar(&opts.cql, "cql", "", "Raw CQL query (advanced)")
	cmd.Flags().IntVarP(&opts.limit, "limit", "l", 10, "Maximum number of results")
	cmd.Flags().BoolVar(&opts.pickEdit, "edit", false, "Pick a result interactively and edit it")
	cmd.Flags().BoolVar(&opts.pickView, "view", false, "Pick a result interactively and view it")

	return cmd
}

func runSearch(cmd *cobra.Command, opts *searchOptions, client *api.Client) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	if opts.query == "" && opts.cql == "" {
		return fmt.Errorf("search requires a query or --cql")
	}
	if opts.pickEdit && opts.pickView {
		return fmt.Errorf("--edit and --view are mutually exclusive")
	}
	if opts.limit <= 0 {
		return fmt.Errorf("invalid limit: %d (must be > 0)", opts.limit)
	}

	cql := api.TextSearchCQL(opts.query)
	if opts.cql != "" {
		cql = api.EnsurePageCQL(opts.cql)
	}

	if client == nil {
		var err error
		if client, err = newClient(cmd); err != nil {
			return err
		}
	}

	pages, err := client.Search(context.Background(), cql, opts.limit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)

	if len(pages) == 0 {
		if opts.output == "json" {
			return renderer.RenderJSON([]interface{}{})
		}
		renderer.RenderText("No search results found.")
		return nil
	}

	if !opts.pickEdit && !opts.pickView {
		return renderResults(renderer, opts.output, pages)
	}

	selected, err := picker.SelectPage("Select a page", pages)
	if err != nil {
		return err
	}
	fmt.Printf("Page URL: %s\n", selected.URL)

	if opts.pickEdit {
		return page.EditPage(cmd, selected.ID, opts.output, opts.noColor, client)
	}
	return page.ViewPage(cmd, selected.ID, opts.output, opts.noColor, client)
}

func renderResults(renderer *view.Renderer, output string, pages []api.PageSummary) error {
	if output == "json" {
		return renderer.RenderJSON(pages)
	}

	headers := []string{"ID", "SPACE", "MODIFIED", "TITLE"}
	var rows [][]string
	for _, p := range pages {
		rows = append(rows, []string{
			p.ID,
			view.Truncate(p.Space, 15),
			p.LastModified,
			view.Truncate(p.Title, 50),
		})
	}

	renderer.RenderTable(headers, rows)
	return nil
}

// newClient builds an API client from the active profile and the global flags.
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

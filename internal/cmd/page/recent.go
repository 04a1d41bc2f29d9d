package page

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-markdown/api"
	"github.com/open-cli-collective/confluence-markdown/internal/picker"
	"github.com/open-cli-collective/confluence-markdown/internal/view"
)

type recentOptions struct {
	limit    int
	viewed   bool
	pickEdit bool
	pickView bool
	output   string
	noColor  bool
}

// NewCmdRecent creates the page recent command.
func NewCmdRecent() *cobra.Command {
	opts := &recentOptions{}

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently edited or viewed pages",
		Long: `List pages you recently edited, or recently viewed with --viewed.

With --edit or --view, an interactive picker opens on the list and the
selected page is edited or displayed.`,
		Example: `  # List your recently edited pages
  cfmd page recent

  # Pick a recent page and edit it
  cfmd page recent --edit

  # Pick a recently viewed page and read it
  cfmd page recent --viewed --view`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runRecent(cmd, opts, nil)
		},
	}

	cmd.Flags().IntVarP(&opts.limit, "limit", "l", 10, "Number of pages to fetch")
	cmd.Flags().BoolVar(&opts.viewed, "viewed", false, "List recently viewed pages instead of recently edited")
	cmd.Flags().BoolVar(&opts.pickEdit, "edit", false, "Pick a page interactively and edit it")
	cmd.Flags().BoolVar(&opts.pickView, "view", false, "Pick a page interactively and view it")

	return cmd
}

func runRecent(cmd *cobra.Command, opts *recentOptions, client *api.Client) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}
	if opts.pickEdit && opts.pickView {
		return fmt.Errorf("--edit and --view are mutually exclusive")
	}
	if opts.limit <= 0 {
		return fmt.Errorf("invalid limit: %d (must be > 0)", opts.limit)
	}

	if client == nil {
		var err error
		if client, err = newClient(cmd); err != nil {
			return err
		}
	}

	var (
		pages []api.PageSummary
		err   error
	)
	if opts.viewed {
		pages, err = client.RecentlyViewedPages(context.Background(), opts.limit)
	} else {
		pages, err = client.RecentPages(context.Background(), opts.limit)
	}
	if err != nil {
		return err
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)

	if len(pages) == 0 {
		if opts.output == "json" {
			return renderer.RenderJSON([]interface{}{})
		}
		renderer.RenderText("No recent pages found.")
		return nil
	}

	if !opts.pickEdit && !opts.pickView {
		return renderSummaries(renderer, opts.output, pages)
	}

	selected, err := picker.SelectPage("Select a page", pages)
	if err != nil {
		return err
	}
	fmt.Printf("Page URL: %s\n", selected.URL)

	if opts.pickEdit {
		return runEdit(cmd, selected.ID, &editOptions{output: opts.output, noColor: opts.noColor}, client)
	}
	return runView(cmd, selected.ID, &viewOptions{output: opts.output, noColor: opts.noColor}, client)
}

// renderSummaries renders a page summary listing in the requested format.
func renderSummaries(renderer *view.Renderer, output string, pages []api.PageSummary) error {
	if output == "json" {
		return renderer.RenderJSON(pages)
	}

	headers := []string{"ID", "SPACE", "MODIFIED", "TITLE"}
	var rows [][]string
	for _, page := range pages {
		rows = append(rows, []string{
			page.ID,
			view.Truncate(page.Space, 15),
			page.LastModified,
			view.Truncate(page.Title, 50),
		})
	}

	renderer.RenderTable(headers, rows)
	return nil
}

package page

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-markdown/api"
	"github.com/open-cli-collective/confluence-markdown/internal/view"
	"github.com/open-cli-collective/confluence-markdown/pkg/md"
)

type appendOptions struct {
	content string
	file    string
	prepend bool
	html    bool
	output  string
	noColor bool
	stdin   io.Reader // For testing; defaults to os.Stdin
}

// NewCmdAppend creates the page append command.
func NewCmdAppend() *cobra.Command {
	opts := &appendOptions{}

	cmd := &cobra.Command{
		Use:   "append <page-url-or-id>",
		Short: "Append content to a page",
		Long: `Append markdown content to an existing Confluence page.

The content is converted to storage format and added after the existing
page body (or before it with --prepend). Existing content, including
macros, is left untouched.`,
		Example: `  # Append a note to a page
  cfmd page append 12345 --content "## Update\nShipped today."

  # Append a file's content
  cfmd page append 12345 --file changelog.md

  # Prepend instead
  cfmd page append 12345 --content "**Moved:** see below." --prepend`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runAppend(cmd, args[0], opts, nil)
		},
	}

	cmd.Flags().StringVar(&opts.content, "content", "", "Content to add")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read content from file")
	cmd.Flags().BoolVar(&opts.prepend, "prepend", false, "Add content before the existing body")
	cmd.Flags().BoolVar(&opts.html, "html", false, "Content is Confluence storage format, not markdown")

	return cmd
}

func runAppend(cmd *cobra.Command, pageRef string, opts *appendOptions, client *api.Client) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	content, err := readContent(opts.content, opts.file, opts.stdin)
	if err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("content cannot be empty")
	}

	addition := content
	if !opts.html {
		if addition, err = md.ToStorage(content); err != nil {
			return fmt.Errorf("failed to convert markdown: %w", err)
		}
	}

	if client == nil {
		if client, err = newClient(cmd); err != nil {
			return err
		}
	}

	page, err := client.GetPageByURL(context.Background(), pageRef)
	if err != nil {
		return fmt.Errorf("failed to get page: %w", err)
	}

	current := page.StorageValue()
	combined := current + "\n" + addition
	if opts.prepend {
		combined = addition + "\n" + current
	}

	updated, err := client.UpdatePage(context.Background(), page.ID, &api.UpdateContentRequest{
		Version: &api.Version{Number: page.Version.Number + 1},
		Title:   page.Title,
		Type:    "page",
		Body: &api.Body{Storage: &api.BodyRepresentation{
			Value:          combined,
			Representation: "storage",
		}},
	})
	if err != nil {
		return fmt.Errorf("failed to update page: %w", err)
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)

	if opts.output == "json" {
		return renderer.RenderJSON(updated)
	}

	renderer.Success(fmt.Sprintf("Content added to: %s", updated.Title))
	renderer.RenderKeyValue("Version", strconv.Itoa(updated.Version.Number))
	renderer.RenderKeyValue("URL", client.PageURL(updated.ID))

	return nil
}

package page

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-markdown/api"
	"github.com/open-cli-collective/confluence-markdown/internal/editor"
	"github.com/open-cli-collective/confluence-markdown/internal/view"
)

type editOptions struct {
	output  string
	noColor bool
}

// NewCmdEdit creates the page edit command.
func NewCmdEdit() *cobra.Command {
	opts := &editOptions{}

	cmd := &cobra.Command{
		Use:   "edit <page-url-or-id>",
		Short: "Edit a page in your editor",
		Long: `Edit a Confluence page in your editor.

The page is fetched, converted to markdown, and opened in your editor
($EDITOR, falling back to common editors). Confluence macros are replaced
with placeholders and restored on upload, so they survive the round trip.

Save and close the editor to upload changes. Exiting without saving, or
with a non-zero status, cancels the edit.`,
		Example: `  # Edit a page by URL
  cfmd page edit "https://confluence.example.com/pages/viewpage.action?pageId=12345"

  # Edit a page by ID
  cfmd page edit 12345`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runEdit(cmd, args[0], opts, nil)
		},
	}

	return cmd
}

// EditPage edits a page with default edit options. Other commands use it
// after a picker selection.
func EditPage(cmd *cobra.Command, pageRef, output string, noColor bool, client *api.Client) error {
	return runEdit(cmd, pageRef, &editOptions{output: output, noColor: noColor}, client)
}

func runEdit(cmd *cobra.Command, pageRef string, opts *editOptions, client *api.Client) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	if client == nil {
		var err error
		if client, err = newClient(cmd); err != nil {
			return err
		}
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)

	session := &editor.Session{Service: client}
	result, err := session.Run(context.Background(), pageRef)
	if err != nil {
		if errors.Is(err, api.ErrVersionConflict) {
			return fmt.Errorf("the page changed while you were editing: %w", err)
		}
		return err
	}

	if result.Cancelled {
		renderer.RenderText(fmt.Sprintf("Edit cancelled: %s. No changes uploaded.", result.Reason))
		return nil
	}

	if opts.output == "json" {
		return renderer.RenderJSON(result.Page)
	}

	renderer.Success(fmt.Sprintf("Updated page: %s", result.Page.Title))
	renderer.RenderKeyValue("Version", strconv.Itoa(result.Page.Version.Number))
	renderer.RenderKeyValue("URL", client.PageURL(result.Page.ID))

	return nil
}

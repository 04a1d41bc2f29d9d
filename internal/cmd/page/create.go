package page

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-markdown/api"
	"github.com/open-cli-collective/confluence-markdown/internal/view"
	"github.com/open-cli-collective/confluence-markdown/pkg/md"
)

type createOptions struct {
	space   string
	title   string
	content string
	file    string
	parent  string
	html    bool
	output  string
	noColor bool
	stdin   io.Reader // For testing; defaults to os.Stdin
}

// NewCmdCreate creates the page create command.
func NewCmdCreate() *cobra.Command {
	opts := &createOptions{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new page",
		Long: `Create a new Confluence page from markdown.

Content can be provided via --content, --file, or standard input.
Markdown is converted to Confluence storage format; use --html to
provide storage format directly.`,
		Example: `  # Create a page from a markdown file
  cfmd page create --space DOCS --title "Release Notes" --file notes.md

  # Create from inline content
  cfmd page create --space DOCS --title "Quick Note" --content "# Hello"

  # Create from stdin, under a parent page
  cat notes.md | cfmd page create --space DOCS --title "Notes" --parent 12345`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runCreate(cmd, opts, nil)
		},
	}

	cmd.Flags().StringVarP(&opts.space, "space", "s", "", "Space key for the new page (required)")
	cmd.Flags().StringVarP(&opts.title, "title", "t", "", "Page title (required)")
	cmd.Flags().StringVar(&opts.content, "content", "", "Page content")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read content from file")
	cmd.Flags().StringVar(&opts.parent, "parent", "", "Parent page ID")
	cmd.Flags().BoolVar(&opts.html, "html", false, "Content is Confluence storage format, not markdown")
	_ = cmd.MarkFlagRequired("space")
	_ = cmd.MarkFlagRequired("title")

	return cmd
}

func runCreate(cmd *cobra.Command, opts *createOptions, client *api.Client) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	content, err := readContent(opts.content, opts.file, opts.stdin)
	if err != nil {
		return err
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("page content cannot be empty")
	}

	storage := content
	if !opts.html {
		if storage, err = md.ToStorage(content); err != nil {
			return fmt.Errorf("failed to convert markdown: %w", err)
		}
	}

	if client == nil {
		if client, err = newClient(cmd); err != nil {
			return err
		}
	}

	req := &api.CreateContentRequest{
		Type:  "page",
		Title: opts.title,
		Space: api.SpaceKey{Key: opts.space},
		Body: &api.Body{Storage: &api.BodyRepresentation{
			Value:          storage,
			Representation: "storage",
		}},
	}
	if opts.parent != "" {
		req.Ancestors = []api.Ancestor{{ID: opts.parent}}
	}

	page, err := client.CreatePage(context.Background(), req)
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)

	if opts.output == "json" {
		return renderer.RenderJSON(page)
	}

	renderer.Success(fmt.Sprintf("Created page: %s", page.Title))
	renderer.RenderKeyValue("ID", page.ID)
	renderer.RenderKeyValue("URL", client.PageURL(page.ID))

	return nil
}

// readContent resolves page content from the --content flag, a file, or
// stdin, in that order.
func readContent(content, file string, stdin io.Reader) (string, error) {
	if content != "" {
		return content, nil
	}
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read file: %w", err)
		}
		return string(data), nil
	}
	if stdin != nil {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	if !isTerminal() {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(data), nil
	}
	return "", fmt.Errorf("no content provided (use --content, --file, or pipe to stdin)")
}

// isTerminal checks if stdin is a terminal.
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

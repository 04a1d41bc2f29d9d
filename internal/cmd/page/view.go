package page

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/confluence-markdown/api"
	"github.com/open-cli-collective/confluence-markdown/internal/view"
	"github.com/open-cli-collective/confluence-markdown/pkg/md"
)

type viewOptions struct {
	raw     bool
	web     bool
	noPager bool
	outFile string
	output  string
	noColor bool
}

// NewCmdView creates the page view command.
func NewCmdView() *cobra.Command {
	opts := &viewOptions{}

	cmd := &cobra.Command{
		Use:   "view <page-url-or-id>",
		Short: "View a page as markdown",
		Long: `View a Confluence page converted to markdown.

The page can be referenced by a full URL or a bare numeric ID. By default
the markdown is rendered for the terminal and paginated; use --raw for
plain markdown, or --out to save it to a file.`,
		Example: `  # View a page by URL
  cfmd page view "https://confluence.example.com/pages/viewpage.action?pageId=12345"

  # View a page by ID
  cfmd page view 12345

  # Plain markdown without terminal formatting
  cfmd page view 12345 --raw

  # Save to a file
  cfmd page view 12345 --out page.md

  # Open in browser
  cfmd page view 12345 --web`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.output, _ = cmd.Flags().GetString("output")
			opts.noColor, _ = cmd.Flags().GetBool("no-color")
			return runView(cmd, args[0], opts, nil)
		},
	}

	cmd.Flags().BoolVar(&opts.raw, "raw", false, "Print plain markdown without terminal formatting")
	cmd.Flags().BoolVarP(&opts.web, "web", "w", false, "Open in browser instead of displaying")
	cmd.Flags().BoolVar(&opts.noPager, "no-pager", false, "Print everything at once without paging")
	cmd.Flags().StringVar(&opts.outFile, "out", "", "Write markdown to a file instead of the terminal")

	return cmd
}

// ViewPage displays a page with default view options. Other commands use it
// after a picker selection.
func ViewPage(cmd *cobra.Command, pageRef, output string, noColor bool, client *api.Client) error {
	return runView(cmd, pageRef, &viewOptions{output: output, noColor: noColor}, client)
}

func runView(cmd *cobra.Command, pageRef string, opts *viewOptions, client *api.Client) error {
	if err := view.ValidateFormat(opts.output); err != nil {
		return err
	}

	if client == nil {
		var err error
		if client, err = newClient(cmd); err != nil {
			return err
		}
	}

	page, err := client.GetPageByURL(context.Background(), pageRef)
	if err != nil {
		return fmt.Errorf("failed to get page: %w", err)
	}

	pageURL := client.PageURL(page.ID)

	if opts.web {
		return openBrowser(pageURL)
	}

	renderer := view.NewRenderer(view.Format(opts.output), opts.noColor)

	if opts.output == "json" {
		return renderer.RenderJSON(page)
	}

	// Run the macro-aware path so macros show up as their markup instead of
	// being silently dropped.
	markdown, macros, err := md.FromStorageWithMacros(page.StorageValue())
	if err != nil {
		return fmt.Errorf("failed to convert page to markdown: %w", err)
	}
	markdown = md.RestoreMacros(markdown, macros)

	if opts.outFile != "" {
		doc := fmt.Sprintf("# %s\n\n%s\n", md.EscapeHeading(page.Title), markdown)
		if err := os.WriteFile(opts.outFile, []byte(doc), 0644); err != nil {
			return fmt.Errorf("failed to write file: %w", err)
		}
		renderer.Success(fmt.Sprintf("Saved to %s", opts.outFile))
		return nil
	}

	renderer.RenderKeyValue("Title", page.Title)
	if page.Space != nil {
		renderer.RenderKeyValue("Space", fmt.Sprintf("%s (%s)", page.Space.Name, page.Space.Key))
	}
	if page.Version != nil {
		renderer.RenderKeyValue("Version", fmt.Sprintf("%d", page.Version.Number))
	}
	renderer.RenderKeyValue("URL", pageURL)
	fmt.Println()

	if markdown == "" {
		renderer.RenderText("(No content)")
		return nil
	}

	body := markdown
	if !opts.raw {
		body = view.RenderMarkdown(markdown)
	}
	body += "\n\nPage URL: " + pageURL

	if opts.noPager {
		fmt.Println(body)
		return nil
	}
	view.Paginate(os.Stdout, os.Stdin, body)
	return nil
}

func openBrowser(url string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("unsupported platform")
	}

	return cmd.Start()
}

package editor

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/open-cli-collective/confluence-markdown/api"
	"github.com/open-cli-collective/confluence-markdown/pkg/md"
)

// PageService is the slice of the API client a session needs.
type PageService interface {
	GetPageByURL(ctx context.Context, pageURL string) (*api.Content, error)
	UpdatePage(ctx context.Context, id string, req *api.UpdateContentRequest) (*api.Content, error)
}

// Session drives one round-trip edit of a single page.
type Session struct {
	Service PageService

	// Editor overrides editor resolution when non-empty. Used by tests and
	// honored so scripts can force a specific command.
	Editor []string

	// Out receives status messages. Defaults to os.Stdout.
	Out io.Writer
}

// Result reports how a session ended. Cancelled sessions upload nothing and
// carry no page.
type Result struct {
	Cancelled bool
	Reason    string
	Page      *api.Content
}

// Run fetches the page, opens the editor on its markdown rendition, and
// uploads the edited content as a new version. The session is cancelled, not
// failed, when the editor exits non-zero or leaves the file untouched.
func (s *Session) Run(ctx context.Context, pageRef string) (*Result, error) {
	out := s.Out
	if out == nil {
		out = os.Stdout
	}

	page, err := s.Service.GetPageByURL(ctx, pageRef)
	if err != nil {
		return nil, fmt.Errorf("failed to get page: %w", err)
	}

	markdown, macros, err := md.FromStorageWithMacros(page.StorageValue())
	if err != nil {
		return nil, fmt.Errorf("failed to convert page to markdown: %w", err)
	}

	tmpfile, err := os.CreateTemp("", "cfmd-edit-*.md")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmpfile.Name()) }()

	if _, err := tmpfile.WriteString(buildBuffer(page, markdown, macros)); err != nil {
		_ = tmpfile.Close()
		return nil, fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, err
	}

	editorCmd := s.Editor
	if len(editorCmd) == 0 {
		editorCmd = ResolveEditor()
	}

	fmt.Fprintf(out, "Opening editor: %s\n", strings.Join(editorCmd, " "))
	fmt.Fprintf(out, "Editing page: %s\n", page.Title)
	fmt.Fprintln(out, "Save and close the editor to upload changes, or exit without saving to cancel.")

	before, err := os.Stat(tmpfile.Name())
	if err != nil {
		return nil, err
	}

	cmd := exec.CommandContext(ctx, editorCmd[0], append(editorCmd[1:], tmpfile.Name())...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if _, ok := err.(*exec.ExitError); ok {
			return &Result{Cancelled: true, Reason: "editor exited with an error"}, nil
		}
		return nil, fmt.Errorf("failed to run editor: %w", err)
	}

	after, err := os.Stat(tmpfile.Name())
	if err != nil {
		return nil, err
	}
	if after.ModTime().Equal(before.ModTime()) {
		return &Result{Cancelled: true, Reason: "file was not modified"}, nil
	}

	edited, err := os.ReadFile(tmpfile.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to read edited content: %w", err)
	}

	storage, err := restoreStorage(string(edited))
	if err != nil {
		return nil, err
	}

	updated, err := s.Service.UpdatePage(ctx, page.ID, &api.UpdateContentRequest{
		Version: &api.Version{Number: page.Version.Number + 1},
		Title:   page.Title,
		Type:    "page",
		Body: &api.Body{Storage: &api.BodyRepresentation{
			Value:          storage,
			Representation: "storage",
		}},
	})
	if err != nil {
		return nil, err
	}

	return &Result{Page: updated}, nil
}

// buildBuffer assembles the file handed to the editor: a title heading, two
// annotation comments, the markdown body, and the encoded macro block when the
// page has macros.
func buildBuffer(page *api.Content, markdown string, macros md.MacroMap) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", md.EscapeHeading(page.Title))
	b.WriteString("<!-- Edit the content below. Lines starting with <!-- are comments and will be ignored -->\n")
	fmt.Fprintf(&b, "<!-- Page ID: %s, Version: %d -->\n\n", page.ID, page.Version.Number)
	return md.AppendMacroBlock(b.String()+markdown, macros)
}

// restoreStorage turns an edited buffer back into storage format: decode and
// strip the macro block, drop the annotations, re-inline the macros, then
// render the markdown.
func restoreStorage(edited string) (string, error) {
	macros := md.ExtractMacroBlock(edited)
	content := md.RemoveMacroBlock(edited)
	content = stripAnnotations(content)
	if content == "" {
		return "", fmt.Errorf("page content cannot be empty")
	}
	content = md.RestoreMacros(content, macros)

	storage, err := md.ToStorage(content)
	if err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}
	return storage, nil
}

// stripAnnotations removes single-line comments and the first title heading
// from an edited buffer.
func stripAnnotations(content string) string {
	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	skipTitle := true

	for _, line := range lines {
		if strings.HasPrefix(line, "<!--") && strings.Contains(line, "-->") {
			continue
		}
		if skipTitle && strings.HasPrefix(line, "# ") {
			skipTitle = false
			continue
		}
		kept = append(kept, line)
	}

	return strings.TrimSpace(strings.Join(kept, "\n"))
}

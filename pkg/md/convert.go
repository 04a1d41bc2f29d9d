package md

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghtml "github.com/yuin/goldmark/renderer/html"
)

// htmlConverter renders HTML to markdown with a fixed style: ATX headings and
// hyphen bullets. script/style content is dropped by the base plugin.
var htmlConverter = converter.NewConverter(
	converter.WithPlugins(
		base.NewBasePlugin(),
		commonmark.NewCommonmarkPlugin(
			commonmark.WithHeadingStyle(commonmark.HeadingStyleATX),
			commonmark.WithBulletListMarker("-"),
		),
	),
)

// mdParser converts markdown back to storage HTML. WithUnsafe is required:
// restored macro markup is raw XML inline in the markdown and must pass
// through to the output. Hard wraps match how Confluence treats newlines in
// storage format.
var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithRendererOptions(
		ghtml.WithHardWraps(),
		ghtml.WithUnsafe(),
	),
)

// The markdown renderer escapes bracket characters in text nodes; placeholder
// tokens must keep their literal form or restoration cannot find them.
var escapedPlaceholderPattern = regexp.MustCompile(`\\?\[\\?\[CONFLUENCE-MACRO-(\d+)\\?\]\\?\]`)

// FromStorage converts Confluence storage format to markdown. Macro elements
// are not preserved on this path; use FromStorageWithMacros for edits.
func FromStorage(storage string) (string, error) {
	if storage == "" {
		return "", nil
	}
	markdown, err := htmlConverter.ConvertString(storage)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(markdown), nil
}

// FromStorageWithMacros converts storage format to markdown after replacing
// every top-level macro element with a placeholder, and returns the
// placeholder→markup map alongside the markdown.
func FromStorageWithMacros(storage string) (string, MacroMap, error) {
	if storage == "" {
		return "", MacroMap{}, nil
	}

	substituted, macros, err := ExtractMacros(storage)
	if err != nil {
		return "", nil, err
	}

	markdown, err := htmlConverter.ConvertString(substituted)
	if err != nil {
		return "", nil, err
	}

	markdown = escapedPlaceholderPattern.ReplaceAllString(markdown, "[[CONFLUENCE-MACRO-$1]]")
	return strings.TrimSpace(markdown), macros, nil
}

// ToStorage converts markdown to Confluence storage format.
func ToStorage(markdown string) (string, error) {
	if markdown == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Package md converts Confluence storage format (XHTML) to and from markdown,
// preserving Confluence macro elements across the round trip.
package md

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// macroPrefix is the reserved tag-name namespace for Confluence rich-content
// elements (structured macros, images, links, task lists, ...).
const macroPrefix = "ac:"

// IsMacroElement reports whether a tag name belongs to the Confluence macro
// namespace.
func IsMacroElement(tagName string) bool {
	return strings.HasPrefix(tagName, macroPrefix)
}

// Placeholder returns the sentinel token substituted for the n-th macro
// element found in a document. Numbering is 1-based in document order.
func Placeholder(n int) string {
	return fmt.Sprintf("[[CONFLUENCE-MACRO-%d]]", n)
}

// ExtractMacros replaces every top-level macro element in the storage HTML
// with a numbered placeholder and returns the rewritten HTML together with
// the placeholder→markup map. A macro element nested inside another macro
// element is captured as part of its ancestor's serialized markup and never
// receives its own placeholder.
func ExtractMacros(storage string) (string, MacroMap, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(storage))
	if err != nil {
		return "", nil, fmt.Errorf("failed to parse storage format: %w", err)
	}

	// Collect first, then rewrite: the selection must not observe its own
	// mutations. Find("*") walks in document order, which fixes numbering.
	var topLevel []*html.Node
	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		node := s.Nodes[0]
		if node.Type != html.ElementNode || !IsMacroElement(node.Data) {
			return
		}
		if hasMacroAncestor(node) {
			return
		}
		topLevel = append(topLevel, node)
	})

	macros := make(MacroMap, len(topLevel))
	for i, node := range topLevel {
		placeholder := Placeholder(i + 1)
		markup, err := renderNode(node)
		if err != nil {
			return "", nil, err
		}
		macros[placeholder] = markup

		text := &html.Node{Type: html.TextNode, Data: placeholder}
		node.Parent.InsertBefore(text, node)
		node.Parent.RemoveChild(node)
	}

	out, err := doc.Find("body").Html()
	if err != nil {
		return "", nil, err
	}
	return out, macros, nil
}

// RestoreMacros substitutes every placeholder in text back to its original
// markup. Placeholders are distinct literal tokens, so replacement order does
// not matter.
func RestoreMacros(text string, macros MacroMap) string {
	for placeholder, markup := range macros {
		text = strings.ReplaceAll(text, placeholder, markup)
	}
	return text
}

func hasMacroAncestor(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && IsMacroElement(p.Data) {
			return true
		}
	}
	return false
}

func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", fmt.Errorf("failed to serialize macro element: %w", err)
	}
	return buf.String(), nil
}

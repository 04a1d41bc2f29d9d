package md

import "strings"

// EscapeHeading makes a page title safe to use as a markdown heading line:
// newlines fold to spaces, backslashes and hash signs are escaped.
func EscapeHeading(title string) string {
	escaped := strings.NewReplacer("\r", " ", "\n", " ").Replace(title)
	escaped = strings.ReplaceAll(escaped, `\`, `\\`)
	return strings.ReplaceAll(escaped, "#", `\#`)
}

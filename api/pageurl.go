package api

import (
	"fmt"
	"net/url"
	"strings"
)

// ExtractPageID pulls the numeric page ID out of a Confluence page URL.
// Bare numeric IDs are accepted as-is so commands can take either form.
// Supported URL shapes:
//
//	…/pages/viewpage.action?pageId=123456
//	…/pages/123456/Some+Page+Title
func ExtractPageID(pageURL string) (string, error) {
	if pageURL == "" {
		return "", fmt.Errorf("page URL is required")
	}
	if isDigits(pageURL) {
		return pageURL, nil
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid page URL %q: %w", pageURL, err)
	}

	if id := parsed.Query().Get("pageId"); id != "" {
		return id, nil
	}

	parts := strings.Split(parsed.Path, "/")
	for i, part := range parts {
		if part == "pages" && i+1 < len(parts) {
			if isDigits(parts[i+1]) {
				return parts[i+1], nil
			}
			break
		}
	}

	return "", fmt.Errorf("could not extract page ID from URL: %s", pageURL)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

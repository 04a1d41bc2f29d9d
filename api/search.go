package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// PageSummary is a flattened search result row for listings and pickers.
type PageSummary struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Space        string `json:"space"`
	LastModified string `json:"lastModified"`
	URL          string `json:"url"`
}

// Label renders a summary as a single picker line.
func (p PageSummary) Label() string {
	return fmt.Sprintf("%s - %s - %s", p.Title, p.Space, p.LastModified)
}

// searchResponse is the /search response envelope. Each result either wraps a
// content object or is the content itself, depending on the server version.
type searchResponse struct {
	Results []searchResult `json:"results"`
}

type searchResult struct {
	Content *Content `json:"content"`
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Space   *Space   `json:"space"`
	Version *Version `json:"version"`
}

func (r searchResult) content() Content {
	if r.Content != nil {
		return *r.Content
	}
	return Content{ID: r.ID, Title: r.Title, Space: r.Space, Version: r.Version}
}

// recentPagesCQL lists query variants for pages recently edited by the
// current user, most specific first. Older servers reject the user-based
// fields, so callers fall through the list.
var recentPagesCQL = []string{
	"type=page AND lastModifiedBy=currentUser() order by lastmodified desc",
	"type=page AND contributor=currentUser() order by lastmodified desc",
	"type=page AND creator=currentUser() order by lastmodified desc",
	"type=page order by lastmodified desc",
}

// recentlyViewedCQL lists query variants for recently viewed pages.
var recentlyViewedCQL = []string{
	"type=page AND lastViewed is not EMPTY order by lastViewed desc",
	"type=page AND lastviewed is not EMPTY order by lastviewed desc",
	"type=page order by lastmodified desc",
}

// Search runs a CQL query and returns flattened page summaries.
func (c *Client) Search(ctx context.Context, cql string, limit int) ([]PageSummary, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("cql", cql)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("expand", "content.space,content.version")

	body, err := c.Get(ctx, "/search?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	summaries := make([]PageSummary, 0, len(resp.Results))
	for _, result := range resp.Results {
		content := result.content()
		if content.ID == "" {
			continue
		}
		summaries = append(summaries, c.summarize(content))
	}
	return summaries, nil
}

// RecentPages lists pages recently edited by the current user, trying CQL
// variants in order until one is accepted.
func (c *Client) RecentPages(ctx context.Context, limit int) ([]PageSummary, error) {
	return c.searchVariants(ctx, recentPagesCQL, limit,
		"Confluence rejected all recent-page queries; this instance may not support user-based filters")
}

// RecentlyViewedPages lists pages recently viewed by the current user.
func (c *Client) RecentlyViewedPages(ctx context.Context, limit int) ([]PageSummary, error) {
	return c.searchVariants(ctx, recentlyViewedCQL, limit,
		"Confluence rejected all recently-viewed queries; this instance may not support view tracking")
}

func (c *Client) searchVariants(ctx context.Context, variants []string, limit int, exhausted string) ([]PageSummary, error) {
	for _, cql := range variants {
		pages, err := c.Search(ctx, cql, limit)
		if err != nil {
			if isUnsupportedCQL(err) {
				c.debugf("CQL variant rejected, trying next: %s", cql)
				continue
			}
			return nil, err
		}
		return pages, nil
	}
	return nil, errors.New(exhausted)
}

// isUnsupportedCQL reports whether an error is a 400 caused by a CQL field
// the server does not know, as opposed to a genuine failure.
func isUnsupportedCQL(err error) bool {
	var apiErr *ErrorResponse
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 400 {
		return false
	}
	return strings.Contains(apiErr.Body, "No field exists") ||
		strings.Contains(apiErr.Body, "Could not parse cql")
}

func (c *Client) summarize(content Content) PageSummary {
	summary := PageSummary{
		ID:           content.ID,
		Title:        content.Title,
		Space:        "UNKNOWN",
		LastModified: "unknown",
		URL:          c.PageURL(content.ID),
	}
	if summary.Title == "" {
		summary.Title = "(untitled)"
	}
	if content.Space != nil && content.Space.Key != "" {
		summary.Space = content.Space.Key
	}
	if content.Version != nil && content.Version.When != "" {
		summary.LastModified = content.Version.When
	}
	return summary
}

// TextSearchCQL builds a CQL query for a free-text search over pages.
func TextSearchCQL(query string) string {
	escaped := strings.ReplaceAll(query, `"`, `\"`)
	return fmt.Sprintf(`type=page AND text~"%s" order by lastmodified desc`, escaped)
}

// EnsurePageCQL wraps a raw CQL query with a page-type filter unless it
// already has one.
func EnsurePageCQL(cql string) string {
	if strings.Contains(strings.ToLower(cql), "type=page") {
		return cql
	}
	return fmt.Sprintf("type=page AND (%s)", cql)
}

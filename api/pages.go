package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// GetPage returns a page by ID with its storage body, space, version, and
// ancestors expanded.
func (c *Client) GetPage(ctx context.Context, pageID string) (*Content, error) {
	params := url.Values{}
	params.Set("expand", "body.storage,space,version,ancestors")

	body, err := c.Get(ctx, fmt.Sprintf("/content/%s?%s", pageID, params.Encode()))
	if err != nil {
		return nil, err
	}

	var page Content
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse page response: %w", err)
	}
	return &page, nil
}

// GetPageByURL extracts the page ID from a Confluence page URL and fetches
// the page. URL validation happens locally, before any network call.
func (c *Client) GetPageByURL(ctx context.Context, pageURL string) (*Content, error) {
	pageID, err := ExtractPageID(pageURL)
	if err != nil {
		return nil, err
	}
	return c.GetPage(ctx, pageID)
}

// UpdatePage updates an existing page. A version conflict (the page changed
// since it was fetched) is reported as ErrVersionConflict and is never
// retried here.
func (c *Client) UpdatePage(ctx context.Context, pageID string, req *UpdateContentRequest) (*Content, error) {
	body, err := c.Put(ctx, "/content/"+pageID, req)
	if err != nil {
		var apiErr *ErrorResponse
		if errors.As(err, &apiErr) && apiErr.StatusCode == 409 {
			return nil, ErrVersionConflict
		}
		return nil, err
	}

	var page Content
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse update response: %w", err)
	}
	return &page, nil
}

// CreatePage creates a new page.
func (c *Client) CreatePage(ctx context.Context, req *CreateContentRequest) (*Content, error) {
	body, err := c.Post(ctx, "/content", req)
	if err != nil {
		return nil, err
	}

	var page Content
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("failed to parse create response: %w", err)
	}
	return &page, nil
}

// CurrentUser returns the authenticated user. Used to verify credentials.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	body, err := c.Get(ctx, "/user/current")
	if err != nil {
		return nil, err
	}

	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil, fmt.Errorf("failed to parse user response: %w", err)
	}
	return &user, nil
}

// Package api provides the Confluence Data Center REST API client.
package api

import "errors"

// ErrVersionConflict is returned when Confluence rejects a page update
// because the page changed since it was fetched. Refresh the page and retry
// manually; a blind retry could overwrite someone else's edit.
var ErrVersionConflict = errors.New("version conflict: the page was modified since it was fetched; refresh and try again")

// Content represents a Confluence content resource (a page).
type Content struct {
	ID        string     `json:"id,omitempty"`
	Type      string     `json:"type"`
	Status    string     `json:"status,omitempty"`
	Title     string     `json:"title"`
	Space     *Space     `json:"space,omitempty"`
	Version   *Version   `json:"version,omitempty"`
	Body      *Body      `json:"body,omitempty"`
	Ancestors []Ancestor `json:"ancestors,omitempty"`
	Links     Links      `json:"_links,omitempty"`
}

// StorageValue returns the storage-format body, or "" when absent.
func (c *Content) StorageValue() string {
	if c.Body == nil || c.Body.Storage == nil {
		return ""
	}
	return c.Body.Storage.Value
}

// Space represents a Confluence space.
type Space struct {
	ID   int    `json:"id,omitempty"`
	Key  string `json:"key"`
	Name string `json:"name,omitempty"`
}

// Version contains content version information.
type Version struct {
	Number  int    `json:"number"`
	When    string `json:"when,omitempty"`
	Message string `json:"message,omitempty"`
}

// Body contains page content representations.
type Body struct {
	Storage *BodyRepresentation `json:"storage,omitempty"`
}

// BodyRepresentation holds content in a specific format.
type BodyRepresentation struct {
	Value          string `json:"value"`
	Representation string `json:"representation"`
}

// Ancestor is a parent reference used when creating pages in a hierarchy.
type Ancestor struct {
	ID string `json:"id"`
}

// Links contains navigation links returned by the API.
type Links struct {
	WebUI string `json:"webui,omitempty"`
	Base  string `json:"base,omitempty"`
	Self  string `json:"self,omitempty"`
}

// User represents a Confluence user.
type User struct {
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	UserKey     string `json:"userKey"`
}

// UpdateContentRequest is the request body for updating a page.
type UpdateContentRequest struct {
	Version *Version `json:"version"`
	Title   string   `json:"title"`
	Type    string   `json:"type"`
	Body    *Body    `json:"body"`
}

// CreateContentRequest is the request body for creating a page.
type CreateContentRequest struct {
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Space     SpaceKey   `json:"space"`
	Body      *Body      `json:"body"`
	Ancestors []Ancestor `json:"ancestors,omitempty"`
}

// SpaceKey identifies a space by key in create requests.
type SpaceKey struct {
	Key string `json:"key"`
}

// ErrorResponse represents an API error.
type ErrorResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
	Body       string `json:"-"`
}

func (e *ErrorResponse) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "API error"
}

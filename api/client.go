package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	defaultTimeout = 30 * time.Second
	apiBasePath    = "/rest/api"
)

// Client is the Confluence Data Center REST API client.
//
// Authentication: a personal access token alone is sent as a Bearer header; a
// token together with a username, or a username/password pair, is sent as
// Basic auth.
type Client struct {
	baseURL    string
	username   string
	password   string
	token      string
	httpClient *http.Client
	verbose    bool
	debugOut   io.Writer
}

// NewClient creates a new Confluence Data Center API client.
func NewClient(baseURL, username, password, token string) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		username: username,
		password: password,
		token:    token,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		debugOut: os.Stderr,
	}
}

// SetVerbose enables debug output for every request.
func (c *Client) SetVerbose(verbose bool) {
	c.verbose = verbose
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// PageURL returns the canonical view URL for a page ID.
func (c *Client) PageURL(pageID string) string {
	return c.baseURL + "/pages/viewpage.action?pageId=" + pageID
}

// do executes an HTTP request against the REST API and returns the response body.
func (c *Client) do(ctx context.Context, method, path string, body interface{}) ([]byte, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	url := c.baseURL + apiBasePath + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	c.setAuth(req)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	c.debugf("%s %s", method, url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	c.debugf("response status: %d", resp.StatusCode)

	if resp.StatusCode >= 400 {
		errResp := &ErrorResponse{}
		if err := json.Unmarshal(respBody, errResp); err != nil || errResp.Message == "" {
			errResp.Message = strings.TrimSpace(string(respBody))
		}
		errResp.StatusCode = resp.StatusCode
		errResp.Body = string(respBody)
		return nil, errResp
	}

	return respBody, nil
}

func (c *Client) setAuth(req *http.Request) {
	switch {
	case c.token != "" && c.username != "":
		// Data Center commonly accepts a personal access token as a Basic
		// auth password.
		req.SetBasicAuth(c.username, c.token)
	case c.token != "":
		req.Header.Set("Authorization", "Bearer "+c.token)
	default:
		req.SetBasicAuth(c.username, c.password)
	}
}

func (c *Client) debugf(format string, args ...interface{}) {
	if !c.verbose {
		return
	}
	fmt.Fprintf(c.debugOut, "DEBUG: "+format+"\n", args...)
}

// Get performs a GET request against an API path.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post performs a POST request against an API path.
func (c *Client) Post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

// Put performs a PUT request against an API path.
func (c *Client) Put(ctx context.Context, path string, body interface{}) ([]byte, error) {
	return c.do(ctx, http.MethodPut, path, body)
}

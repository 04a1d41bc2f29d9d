package page

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/open-cli-collective/confluence-markdown/api"
)

func TestRunCreate_ConvertsMarkdown(t *testing.T) {
	var received api.CreateContentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.Write([]byte(`{"id": "999", "title": "New Page"}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "user", "", "token")
	opts := &createOptions{
		space:   "DOCS",
		title:   "New Page",
		content: "# Heading\n\nSome **bold** text",
		noColor: true,
	}

	err := runCreate(&cobra.Command{}, opts, client)
	require.NoError(t, err)

	assert.Equal(t, "page", received.Type)
	assert.Equal(t, "New Page", received.Title)
	assert.Equal(t, "DOCS", received.Space.Key)
	assert.Contains(t, received.Body.Storage.Value, "<h1>Heading</h1>")
	assert.Contains(t, received.Body.Storage.Value, "<strong>bold</strong>")
	assert.Empty(t, received.Ancestors)
}

func TestRunCreate_HTMLPassthrough(t *testing.T) {
	var received api.CreateContentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.Write([]byte(`{"id": "999", "title": "New Page"}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "user", "", "token")
	opts := &createOptions{
		space:   "DOCS",
		title:   "New Page",
		content: "<p>already storage</p>",
		html:    true,
		noColor: true,
	}

	err := runCreate(&cobra.Command{}, opts, client)
	require.NoError(t, err)
	assert.Equal(t, "<p>already storage</p>", received.Body.Storage.Value)
}

func TestRunCreate_WithParent(t *testing.T) {
	var received api.CreateContentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.Write([]byte(`{"id": "999", "title": "Child"}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "user", "", "token")
	opts := &createOptions{
		space:   "DOCS",
		title:   "Child",
		content: "text",
		parent:  "12345",
		noColor: true,
	}

	err := runCreate(&cobra.Command{}, opts, client)
	require.NoError(t, err)
	require.Len(t, received.Ancestors, 1)
	assert.Equal(t, "12345", received.Ancestors[0].ID)
}

func TestRunCreate_FromStdin(t *testing.T) {
	var received api.CreateContentRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &received))
		w.Write([]byte(`{"id": "999", "title": "Piped"}`))
	}))
	defer server.Close()

	client := api.NewClient(server.URL, "user", "", "token")
	opts := &createOptions{
		space:   "DOCS",
		title:   "Piped",
		stdin:   strings.NewReader("piped content"),
		noColor: true,
	}

	err := runCreate(&cobra.Command{}, opts, client)
	require.NoError(t, err)
	assert.Contains(t, received.Body.Storage.Value, "piped content")
}

func TestRunCreate_EmptyContent(t *testing.T) {
	client := api.NewClient("http://unused", "user", "", "token")
	opts := &createOptions{
		space:   "DOCS",
		title:   "Empty",
		stdin:   strings.NewReader("   \n"),
		noColor: true,
	}

	err := runCreate(&cobra.Command{}, opts, client)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be empty")
}

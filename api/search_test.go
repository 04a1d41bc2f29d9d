package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/api/search", r.URL.Path)
		assert.Equal(t, `type=page AND text~"wiki" order by lastmodified desc`, r.URL.Query().Get("cql"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		w.Write([]byte(`{"results": [
			{"content": {"id": "1", "title": "First", "space": {"key": "DOCS"}, "version": {"number": 3, "when": "2024-01-02T00:00:00.000Z"}}},
			{"id": "2", "title": "Second", "space": {"key": "ENG"}, "version": {"number": 1, "when": "2024-01-01T00:00:00.000Z"}}
		]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass", "")
	pages, err := client.Search(context.Background(), TextSearchCQL("wiki"), 5)
	require.NoError(t, err)
	require.Len(t, pages, 2)

	assert.Equal(t, "1", pages[0].ID)
	assert.Equal(t, "First", pages[0].Title)
	assert.Equal(t, "DOCS", pages[0].Space)
	assert.Equal(t, "2024-01-02T00:00:00.000Z", pages[0].LastModified)
	assert.Equal(t, server.URL+"/pages/viewpage.action?pageId=1", pages[0].URL)

	// Inline result shape, without the content wrapper.
	assert.Equal(t, "2", pages[1].ID)
	assert.Equal(t, "ENG", pages[1].Space)
}

func TestSearch_MissingFieldsGetDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"content": {"id": "9"}}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass", "")
	pages, err := client.Search(context.Background(), "type=page", 10)
	require.NoError(t, err)
	require.Len(t, pages, 1)

	assert.Equal(t, "(untitled)", pages[0].Title)
	assert.Equal(t, "UNKNOWN", pages[0].Space)
	assert.Equal(t, "unknown", pages[0].LastModified)
}

func TestSearch_SkipsResultsWithoutID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"results": [{"title": "no id"}, {"id": "5", "title": "kept"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass", "")
	pages, err := client.Search(context.Background(), "type=page", 10)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "5", pages[0].ID)
}

func TestRecentPages_FallsBackThroughVariants(t *testing.T) {
	var queries []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cql := r.URL.Query().Get("cql")
		queries = append(queries, cql)
		if strings.Contains(cql, "lastModifiedBy") || strings.Contains(cql, "contributor") {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"statusCode": 400, "message": "Could not parse cql : No field exists with the name 'lastModifiedBy'"}`))
			return
		}
		w.Write([]byte(`{"results": [{"content": {"id": "1", "title": "Mine"}}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass", "")
	pages, err := client.RecentPages(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pages, 1)
	assert.Equal(t, "Mine", pages[0].Title)

	require.Len(t, queries, 3)
	assert.Contains(t, queries[0], "lastModifiedBy")
	assert.Contains(t, queries[1], "contributor")
	assert.Contains(t, queries[2], "creator")
}

func TestRecentPages_GenuineErrorStopsFallback(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"statusCode": 500, "message": "boom"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass", "")
	_, err := client.RecentPages(context.Background(), 10)
	require.Error(t, err)
	assert.Equal(t, 1, requests, "a non-CQL failure must not trigger the next variant")
}

func TestRecentlyViewedPages_AllVariantsRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"statusCode": 400, "message": "No field exists with the name 'lastViewed'"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "user", "pass", "")
	_, err := client.RecentlyViewedPages(context.Background(), 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected all recently-viewed queries")
}

func TestTextSearchCQL(t *testing.T) {
	assert.Equal(t,
		`type=page AND text~"hello world" order by lastmodified desc`,
		TextSearchCQL("hello world"))
	assert.Equal(t,
		`type=page AND text~"say \"hi\"" order by lastmodified desc`,
		TextSearchCQL(`say "hi"`))
}

func TestEnsurePageCQL(t *testing.T) {
	assert.Equal(t, "type=page AND (label=howto)", EnsurePageCQL("label=howto"))
	assert.Equal(t, "type=page AND title~foo", EnsurePageCQL("type=page AND title~foo"))
}

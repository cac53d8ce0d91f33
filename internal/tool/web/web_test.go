package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(maxFetchBytes int64) *Client {
	return NewClient(5*time.Second, maxFetchBytes, 3)
}

func TestFetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("page content"))
	}))
	defer server.Close()

	client := newTestClient(1 << 20)
	result, err := client.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, 200, result.Status)
	assert.Equal(t, "page content", result.Body)
	assert.Equal(t, "text/plain", result.ContentType)
	assert.False(t, result.Truncated)
}

func TestFetch_Truncation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 1000)))
	}))
	defer server.Close()

	client := newTestClient(100)
	result, err := client.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.True(t, result.Truncated)
	assert.Len(t, result.Body, 100)
}

func TestFetch_NonOKStatusIsNormalResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := newTestClient(1 << 20)
	result, err := client.Fetch(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, 404, result.Status)
}

func TestFetch_RejectsNonHTTPSchemes(t *testing.T) {
	client := newTestClient(1 << 20)

	_, err := client.Fetch(context.Background(), "file:///etc/passwd")
	assert.Error(t, err)

	_, err = client.Fetch(context.Background(), "ftp://example.com/x")
	assert.Error(t, err)
}

const searchPage = `
<div class="results">
  <a rel="nofollow" class="result__a" href="/l/?uddg=https%3A%2F%2Fgolang.org%2Fdoc">Go <b>Documentation</b></a>
  <a rel="nofollow" class="result__a" href="https://go.dev/blog">The Go Blog</a>
  <a rel="nofollow" class="result__a" href="https://pkg.go.dev">Package Index</a>
  <a rel="nofollow" class="result__a" href="https://example.com/4">Fourth Result</a>
</div>`

func TestSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "go docs", r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(searchPage))
	}))
	defer server.Close()

	client := newTestClient(1 << 20)
	client.SetSearchEndpoint(server.URL)

	hits, err := client.Search(context.Background(), "go docs")
	require.NoError(t, err)

	// Capped at 3 results; redirect link unwrapped; markup stripped.
	require.Len(t, hits, 3)
	assert.Equal(t, "Go Documentation", hits[0].Title)
	assert.Equal(t, "https://golang.org/doc", hits[0].URL)
	assert.Equal(t, "https://go.dev/blog", hits[1].URL)
}

func TestSearch_EmptyQuery(t *testing.T) {
	client := newTestClient(1 << 20)
	_, err := client.Search(context.Background(), "   ")
	assert.Error(t, err)
}

func TestSearch_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(1 << 20)
	client.SetSearchEndpoint(server.URL)

	_, err := client.Search(context.Background(), "query")
	assert.Error(t, err)
}

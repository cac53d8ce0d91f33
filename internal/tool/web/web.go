// Package web implements the web-fetch and web-search tools on a shared
// HTTP client.
package web

import (
	"context"
	"fmt"
	"html"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultSearchEndpoint = "https://html.duckduckgo.com/html/"

// Client performs bounded web requests for the agent.
type Client struct {
	http           *resty.Client
	searchEndpoint string
	maxFetchBytes  int64
	maxResults     int
}

// NewClient creates a web client with a request timeout, a body size bound
// for fetches, and a result cap for searches.
func NewClient(timeout time.Duration, maxFetchBytes int64, maxResults int) *Client {
	httpClient := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "aide/1.0 (+https://github.com/aide-cli/aide)").
		SetRedirectPolicy(resty.FlexibleRedirectPolicy(5))

	return &Client{
		http:           httpClient,
		searchEndpoint: defaultSearchEndpoint,
		maxFetchBytes:  maxFetchBytes,
		maxResults:     maxResults,
	}
}

// SetSearchEndpoint overrides the search endpoint (used in tests).
func (c *Client) SetSearchEndpoint(endpoint string) {
	c.searchEndpoint = endpoint
}

// FetchResult is the outcome of a Fetch.
type FetchResult struct {
	URL         string `json:"url"`
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
	Truncated   bool   `json:"truncated"`
}

// Fetch retrieves a single http(s) URL. Bodies larger than the configured
// bound are truncated; a non-2xx status is a normal result, not an error.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*FetchResult, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", parsed.Scheme)
	}

	resp, err := c.http.R().SetContext(ctx).Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("fetch failed: %w", err)
	}

	body := resp.Body()
	truncated := false
	if int64(len(body)) > c.maxFetchBytes {
		body = body[:c.maxFetchBytes]
		truncated = true
	}

	return &FetchResult{
		URL:         rawURL,
		Status:      resp.StatusCode(),
		ContentType: resp.Header().Get("Content-Type"),
		Body:        string(body),
		Truncated:   truncated,
	}, nil
}

// SearchHit is one web search result.
type SearchHit struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// resultLinkRe matches result anchors in the DuckDuckGo HTML interface.
var resultLinkRe = regexp.MustCompile(`<a[^>]+class="result__a"[^>]+href="([^"]+)"[^>]*>(.*?)</a>`)

// tagRe strips nested markup from result titles.
var tagRe = regexp.MustCompile(`<[^>]+>`)

// Search queries the DuckDuckGo HTML endpoint and extracts result titles
// and URLs, capped at the configured maximum.
func (c *Client) Search(ctx context.Context, query string) ([]SearchHit, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("query must not be empty")
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("q", query).
		Get(c.searchEndpoint)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("search failed: status %d", resp.StatusCode())
	}

	var hits []SearchHit
	for _, m := range resultLinkRe.FindAllStringSubmatch(resp.String(), -1) {
		if len(hits) >= c.maxResults {
			break
		}
		hits = append(hits, SearchHit{
			Title: html.UnescapeString(strings.TrimSpace(tagRe.ReplaceAllString(m[2], ""))),
			URL:   cleanResultURL(m[1]),
		})
	}
	return hits, nil
}

// cleanResultURL unwraps DuckDuckGo's redirect links (`/l/?uddg=<target>`).
func cleanResultURL(raw string) string {
	parsed, err := url.Parse(html.UnescapeString(raw))
	if err != nil {
		return raw
	}
	if target := parsed.Query().Get("uddg"); target != "" {
		if decoded, err := url.QueryUnescape(target); err == nil {
			return decoded
		}
	}
	return parsed.String()
}

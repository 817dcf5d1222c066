package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Feed de Teste</title>
    <link>https://example.com</link>
    <item>
      <title>Primeira notícia</title>
      <link>https://example.com/1</link>
    </item>
  </channel>
</rss>`

func TestFetcherParsesAndCaches(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if got := r.Header.Get("User-Agent"); got != "Teste/1.0" {
			t.Errorf("Expected custom User-Agent, got %q", got)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "Teste/1.0", time.Minute)

	feed := fetcher.Run(context.Background(), server.URL)
	if feed.Title != "Feed de Teste" {
		t.Errorf("Expected parsed feed title, got %q", feed.Title)
	}
	if len(feed.Items) != 1 {
		t.Errorf("Expected 1 item, got %d", len(feed.Items))
	}

	// Second call within the TTL must be served from the cache.
	feed = fetcher.Run(context.Background(), server.URL)
	if feed.Title != "Feed de Teste" {
		t.Errorf("Expected cached feed title, got %q", feed.Title)
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("Expected 1 upstream request, got %d", n)
	}
}

func TestFetcherRefetchesAfterTTL(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "Teste/1.0", 0)

	fetcher.Run(context.Background(), server.URL)
	fetcher.Run(context.Background(), server.URL)
	if n := requests.Load(); n != 2 {
		t.Errorf("Expected expired cache to refetch, got %d requests", n)
	}
}

func TestFetcherHTTPErrorDegradesToEmptyFeed(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "Teste/1.0", time.Minute)

	feed := fetcher.Run(context.Background(), server.URL)
	if feed == nil {
		t.Fatal("Expected empty feed, got nil")
	}
	if len(feed.Items) != 0 {
		t.Errorf("Expected no items from failed fetch, got %d", len(feed.Items))
	}

	// The failure is cached too, so the origin is not hammered.
	fetcher.Run(context.Background(), server.URL)
	if n := requests.Load(); n != 1 {
		t.Errorf("Expected failure to be cached, got %d requests", n)
	}
}

func TestFetcherNonFeedBodyFallsBackThenDegrades(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html><body>Não é um feed</body></html>"))
	}))
	defer server.Close()

	fetcher := NewFetcher(server.Client(), "Teste/1.0", time.Minute)

	feed := fetcher.Run(context.Background(), server.URL)
	if len(feed.Items) != 0 {
		t.Errorf("Expected empty feed for HTML body, got %d items", len(feed.Items))
	}
	// The sniff miss triggers one extra fallback request before giving up.
	if n := requests.Load(); n != 2 {
		t.Errorf("Expected 2 upstream requests (direct + fallback), got %d", n)
	}
}

func TestFetcherUnreachableHostDegradesToEmptyFeed(t *testing.T) {
	fetcher := NewFetcher(&http.Client{Timeout: time.Second}, "Teste/1.0", time.Minute)

	feed := fetcher.Run(context.Background(), "http://127.0.0.1:1/rss")
	if feed == nil || len(feed.Items) != 0 {
		t.Errorf("Expected empty feed for unreachable host, got %v", feed)
	}
}

func TestLooksLikeFeed(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected bool
	}{
		{"xml declaration", `<?xml version="1.0"?><rss>`, true},
		{"bom prefix", "\xef\xbb\xbf<?xml version=\"1.0\"?>", true},
		{"leading whitespace rss", "\n\t <rss version=\"2.0\">", true},
		{"atom feed element", `<feed xmlns="http://www.w3.org/2005/Atom">`, true},
		{"rdf element", `<rdf:RDF xmlns:rdf="x">`, true},
		{"uppercase markers", "<RSS VERSION=\"2.0\">", true},
		{"html page", "<!DOCTYPE html><html><head>", false},
		{"empty body", "", false},
		{"plain text", "service temporarily unavailable", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := looksLikeFeed([]byte(tt.data)); got != tt.expected {
				t.Errorf("looksLikeFeed(%q) = %v, expected %v", tt.data, got, tt.expected)
			}
		})
	}
}

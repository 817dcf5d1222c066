package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
)

// Leading bytes inspected when deciding whether a response body is a feed.
const sniffWindow = 300

type cachedFetch struct {
	fetchedAt time.Time
	feed      *gofeed.Feed
}

// Fetcher retrieves and parses one feed URL at a time, memoizing results
// per URL for a short TTL. Failures degrade to an empty feed which is
// cached for the same TTL, so a broken origin is not hammered on every
// request. Entries in the cache are immutable once stored; overwrites are
// last-write-wins.
type Fetcher struct {
	client    *http.Client
	parser    *gofeed.Parser
	userAgent string
	ttl       time.Duration

	mu    sync.RWMutex
	cache map[string]cachedFetch
}

func NewFetcher(client *http.Client, userAgent string, ttl time.Duration) *Fetcher {
	return &Fetcher{
		client:    client,
		parser:    gofeed.NewParser(),
		userAgent: userAgent,
		ttl:       ttl,
		cache:     make(map[string]cachedFetch),
	}
}

// Run returns the parsed feed for url, served from the per-URL cache when
// the previous fetch is younger than the TTL. It never returns an error:
// network, HTTP and parse failures all degrade to an empty feed.
func (f *Fetcher) Run(ctx context.Context, url string) *gofeed.Feed {
	f.mu.RLock()
	cached, ok := f.cache[url]
	f.mu.RUnlock()

	if ok && time.Since(cached.fetchedAt) <= f.ttl {
		return cached.feed
	}

	parsed, err := f.fetch(ctx, url)
	if err != nil {
		slog.Warn("Feed fetch failed", "url", url, "error", err)
		parsed = &gofeed.Feed{}
	}

	f.mu.Lock()
	f.cache[url] = cachedFetch{fetchedAt: time.Now(), feed: parsed}
	f.mu.Unlock()

	return parsed
}

func (f *Fetcher) fetch(ctx context.Context, url string) (*gofeed.Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/xml;q=0.9, text/xml;q=0.8, */*;q=0.7")
	req.Header.Set("Accept-Language", "pt-BR,pt;q=0.9,en;q=0.8")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if !looksLikeFeed(data) {
		// Some origins serve feeds behind intermediaries that mangle the
		// plain GET (interstitials, odd content negotiation). Let gofeed
		// fetch the URL itself before giving up.
		parsed, err := f.parser.ParseURLWithContext(url, ctx)
		if err != nil {
			return nil, fmt.Errorf("fallback parse failed: %w", err)
		}
		return parsed, nil
	}

	parsed, err := f.parser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}
	return parsed, nil
}

// looksLikeFeed sniffs the leading bytes for XML/RSS/Atom/RDF markers.
func looksLikeFeed(data []byte) bool {
	head := bytes.TrimLeft(data, " \t\r\n\xef\xbb\xbf")
	if len(head) > sniffWindow {
		head = head[:sniffWindow]
	}
	s := strings.ToLower(string(head))
	return strings.HasPrefix(s, "<?xml") ||
		strings.Contains(s, "<rss") ||
		strings.Contains(s, "<feed") ||
		strings.Contains(s, "<rdf")
}

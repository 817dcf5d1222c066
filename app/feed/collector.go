package feed

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/mmcdole/gofeed"
)

type FetcherInterface interface {
	Run(ctx context.Context, url string) *gofeed.Feed
}

var _ FetcherInterface = (*Fetcher)(nil)

// Collector assembles one topic's bucket from its configured feeds.
type Collector struct {
	fetcher    FetcherInterface
	normalizer *Normalizer
	filterer   *Filterer
}

func NewCollector(fetcher FetcherInterface, normalizer *Normalizer, filterer *Filterer) *Collector {
	return &Collector{
		fetcher:    fetcher,
		normalizer: normalizer,
		filterer:   filterer,
	}
}

// Run fetches every feed of the topic, deduplicates, filters, sorts by
// recency and caps at the topic limit. The bucket is rebuilt wholesale on
// every invocation. Deduplication happens twice: by the raw flat link
// before normalization (an entry already seen from an earlier feed is
// dropped before any work is spent on it) and by (title, link) after, which
// also catches items whose link was recovered from the link list or a
// custom alias. Failures are isolated per URL; a dead feed contributes
// nothing.
func (c *Collector) Run(ctx context.Context, topic *Topic) []Entry {
	seenLinks := make(map[string]struct{})
	seenPairs := make(map[[2]string]struct{})
	var entries []Entry

	for _, url := range topic.Feeds {
		parsed := c.fetcher.Run(ctx, url)
		for _, item := range parsed.Items {
			if item == nil {
				continue
			}

			if link := strings.TrimSpace(item.Link); link != "" {
				if _, ok := seenLinks[link]; ok {
					continue
				}
				seenLinks[link] = struct{}{}
			}

			entry := c.normalizer.Run(item, parsed.Title)
			if entry.Link == "" {
				continue
			}
			key := [2]string{entry.Title, entry.Link}
			if _, ok := seenPairs[key]; ok {
				continue
			}
			seenPairs[key] = struct{}{}

			entries = append(entries, entry)
		}
	}

	entries = c.filterer.Run(entries, topic)

	// Stable sort keeps feed-list order, then in-feed order, on timestamp
	// ties.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})

	if topic.Limit > 0 && len(entries) > topic.Limit {
		entries = entries[:topic.Limit]
	}

	slog.Debug("Topic collected", "topic", topic.Name, "feeds", len(topic.Feeds), "entries", len(entries))
	return entries
}

package api

import (
	"fmt"
	"time"

	"github.com/ftacconi/jornal/app/feed"
	"github.com/gorilla/feeds"
)

// RSSGenerator re-exports an assembled topic bucket as an RSS 2.0 feed, so
// the aggregated sections can be consumed by feed readers as well as by
// the HTML portal.
type RSSGenerator struct{}

func NewRSSGenerator() *RSSGenerator {
	return &RSSGenerator{}
}

func (g *RSSGenerator) Run(topic *feed.Topic, title string, entries []feed.Entry, selfURL string) (string, error) {
	out := &feeds.Feed{
		Title:       title,
		Link:        &feeds.Link{Href: selfURL},
		Description: fmt.Sprintf("Notícias agregadas do tema %s", topic.Label),
		Created:     time.Now(),
	}

	for _, entry := range entries {
		item := &feeds.Item{
			Title:       entry.Title,
			Link:        &feeds.Link{Href: entry.Link},
			Description: entry.Summary,
			Id:          entry.Link,
		}
		if entry.Source != "" {
			item.Author = &feeds.Author{Name: entry.Source}
		}
		if entry.Timestamp > 0 {
			item.Created = time.Unix(int64(entry.Timestamp), 0).UTC()
		}
		out.Items = append(out.Items, item)
	}

	rss, err := out.ToRss()
	if err != nil {
		return "", fmt.Errorf("failed to generate RSS: %w", err)
	}
	return rss, nil
}

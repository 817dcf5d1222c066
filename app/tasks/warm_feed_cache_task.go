package tasks

import (
	"context"
	"log/slog"
)

// WarmFeedCacheTask primes the per-URL feed cache by fetching every feed
// configured across all topics once. A URL shared by several topics is
// fetched a single time; fetch failures are already degraded to empty
// results inside the fetcher, so the task itself cannot fail on a bad
// origin.
type WarmFeedCacheTask struct {
	Task
	fetcher FetcherInterface
	topics  TopicSourceInterface
}

func NewWarmFeedCacheTask(fetcher FetcherInterface, topics TopicSourceInterface) *WarmFeedCacheTask {
	return &WarmFeedCacheTask{
		Task:    NewTask(TaskTypeWarmFeedCache),
		fetcher: fetcher,
		topics:  topics,
	}
}

func (t *WarmFeedCacheTask) Execute(ctx context.Context) error {
	seen := make(map[string]struct{})
	fetched := 0

	for _, topic := range t.topics.GetTopics() {
		for _, url := range topic.Feeds {
			if _, ok := seen[url]; ok {
				continue
			}
			seen[url] = struct{}{}

			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			t.fetcher.Run(ctx, url)
			fetched++
		}
	}

	slog.Info("Task completed",
		"type", "WarmFeedCache",
		"duration", t.GetDuration(),
		"feeds", fetched)

	return nil
}

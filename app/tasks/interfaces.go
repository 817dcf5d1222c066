package tasks

import (
	"context"

	"github.com/ftacconi/jornal/app/feed"
	"github.com/mmcdole/gofeed"
)

// TaskSchedulerInterface defines the interface for background task
// scheduling. The scheduler owns a worker pool and a task queue; it
// enqueues a section refresh whenever the snapshot goes stale and warms
// the feed cache at startup.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}

// SectionCacheInterface is the slice of the section cache the scheduler
// needs: staleness probing and the acquire-or-skip refresh.
type SectionCacheInterface interface {
	IsStale() bool
	TryRefresh(ctx context.Context) bool
}

type FetcherInterface interface {
	Run(ctx context.Context, url string) *gofeed.Feed
}

type TopicSourceInterface interface {
	GetTopics() []*feed.Topic
}

package tasks

import (
	"context"
	"log/slog"
)

// RefreshSectionsTask rebuilds all topic buckets through the section
// cache's acquire-or-skip refresh, so at most one rebuild runs
// system-wide no matter how many tasks are queued.
type RefreshSectionsTask struct {
	Task
	sections SectionCacheInterface
}

func NewRefreshSectionsTask(sections SectionCacheInterface) *RefreshSectionsTask {
	return &RefreshSectionsTask{
		Task:     NewTask(TaskTypeRefreshSections),
		sections: sections,
	}
}

func (t *RefreshSectionsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	if !t.sections.TryRefresh(ctx) {
		slog.Debug("Section refresh already in progress, skipping", "id", t.GetID())
		return nil
	}

	slog.Info("Task completed",
		"type", "RefreshSections",
		"duration", t.GetDuration())

	return nil
}

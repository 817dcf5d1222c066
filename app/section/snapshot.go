package section

import (
	"time"

	"github.com/ftacconi/jornal/app/feed"
)

// Snapshot is the complete result of one aggregation pass across all
// topics. It is replaced wholesale on refresh, never patched, and is
// persisted as a single human-inspectable JSON document.
type Snapshot struct {
	UpdatedAt time.Time               `json:"updated_at"`
	Buckets   map[string][]feed.Entry `json:"buckets"`
}

// Empty reports whether the snapshot represents a cold start: no previous
// aggregation pass, or one that produced no buckets at all.
func (s Snapshot) Empty() bool {
	return s.UpdatedAt.IsZero() || len(s.Buckets) == 0
}

func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.UpdatedAt)
}

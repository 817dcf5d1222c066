package section

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ftacconi/jornal/app/feed"
)

const generalTitle = "📰 Geral"

// backgroundRefreshTimeout bounds a rebuild triggered from the read path.
const backgroundRefreshTimeout = 2 * time.Minute

type CollectorInterface interface {
	Run(ctx context.Context, topic *feed.Topic) []feed.Entry
}

type TopicSource interface {
	GetTopics() []*feed.Topic
	GetTopic(topicName string) (*feed.Topic, error)
	GetGeneral() *feed.Topic
}

// Cache holds the assembled topic sections. Reads are served from the
// in-memory snapshot; a stale snapshot is served as-is while a single
// background rebuild refreshes it (stale-while-revalidate). The snapshot
// is persisted across restarts as one JSON file replaced atomically.
type Cache struct {
	collector CollectorInterface
	topics    TopicSource
	path      string
	ttl       time.Duration

	mu       sync.RWMutex
	snapshot Snapshot

	refreshMu  sync.Mutex  // serializes rebuilds
	refreshing atomic.Bool // acquire-or-skip flag for background rebuilds
}

func NewCache(collector CollectorInterface, topics TopicSource, path string, ttl time.Duration) *Cache {
	c := &Cache{
		collector: collector,
		topics:    topics,
		path:      path,
		ttl:       ttl,
	}
	c.load()
	return c
}

// load reads the persisted snapshot. A missing, unreadable or corrupt file
// is a cold start, not an error.
func (c *Cache) load() {
	data, err := os.ReadFile(c.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("Snapshot read failed, starting cold", "path", c.path, "error", err)
		}
		return
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		slog.Warn("Snapshot file corrupt, starting cold", "path", c.path, "error", err)
		return
	}

	c.snapshot = snapshot
	slog.Info("Snapshot loaded", "path", c.path, "updated_at", snapshot.UpdatedAt, "buckets", len(snapshot.Buckets))
}

// GetSection returns the render-ready section for a topic name. An empty
// name resolves to the designated general topic, falling back to the first
// non-empty bucket in configured order. Entries are re-sorted by recency
// and capped at limit regardless of the bucket's own cap.
//
// A cold cache rebuilds synchronously; a stale one is served immediately
// while at most one background rebuild runs.
func (c *Cache) GetSection(ctx context.Context, topicName string, limit int) (string, []feed.Entry, error) {
	c.mu.RLock()
	snapshot := c.snapshot
	c.mu.RUnlock()

	if snapshot.Empty() {
		c.Refresh(ctx)
		c.mu.RLock()
		snapshot = c.snapshot
		c.mu.RUnlock()
	} else if snapshot.Age(time.Now()) > c.ttl {
		c.backgroundRefresh()
	}

	title, entries, err := c.resolve(snapshot, topicName)
	if err != nil {
		return "", nil, err
	}

	entries = append([]feed.Entry(nil), entries...)
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	return title, entries, nil
}

func (c *Cache) resolve(snapshot Snapshot, topicName string) (string, []feed.Entry, error) {
	if topicName == "" {
		if general := c.topics.GetGeneral(); general != nil {
			return generalTitle, snapshot.Buckets[general.Name], nil
		}
		for _, topic := range c.topics.GetTopics() {
			if entries := snapshot.Buckets[topic.Name]; len(entries) > 0 {
				return generalTitle, entries, nil
			}
		}
		return generalTitle, nil, nil
	}

	topic, err := c.topics.GetTopic(topicName)
	if err != nil {
		return "", nil, err
	}
	return topic.DisplayLabel(), snapshot.Buckets[topic.Name], nil
}

// Refresh rebuilds every topic bucket in one pass, replaces the in-memory
// snapshot and persists it atomically. Concurrent forced refreshes
// serialize. A persistence failure is logged and leaves the previous
// on-disk snapshot authoritative; the read path is unaffected either way.
// Returns the new snapshot time.
func (c *Cache) Refresh(ctx context.Context) time.Time {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	started := time.Now()
	buckets := make(map[string][]feed.Entry)
	for _, topic := range c.topics.GetTopics() {
		buckets[topic.Name] = c.collector.Run(ctx, topic)
	}

	snapshot := Snapshot{
		UpdatedAt: time.Now().UTC(),
		Buckets:   buckets,
	}

	c.mu.Lock()
	c.snapshot = snapshot
	c.mu.Unlock()

	if err := c.persist(snapshot); err != nil {
		slog.Error("Snapshot write failed", "path", c.path, "error", err)
	}

	slog.Info("Sections refreshed", "topics", len(buckets), "duration", time.Since(started))
	return snapshot.UpdatedAt
}

// TryRefresh is the acquire-or-skip variant used by background paths: when
// a background rebuild is already in flight the request is dropped, not
// queued. Reports whether a rebuild ran.
func (c *Cache) TryRefresh(ctx context.Context) bool {
	if !c.refreshing.CompareAndSwap(false, true) {
		return false
	}
	defer c.refreshing.Store(false)

	c.Refresh(ctx)
	return true
}

func (c *Cache) backgroundRefresh() {
	if !c.refreshing.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.refreshing.Store(false)

		ctx, cancel := context.WithTimeout(context.Background(), backgroundRefreshTimeout)
		defer cancel()
		c.Refresh(ctx)
	}()
}

// persist writes the snapshot to a temp file in the target directory and
// renames it into place, so readers of the file never observe a partial
// write.
func (c *Cache) persist(snapshot Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	dir := filepath.Dir(c.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(c.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// GetSnapshot returns a shallow copy of the current snapshot. Buckets are
// immutable once built, so sharing the entry slices is safe.
func (c *Cache) GetSnapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	buckets := make(map[string][]feed.Entry, len(c.snapshot.Buckets))
	for k, v := range c.snapshot.Buckets {
		buckets[k] = v
	}
	return Snapshot{UpdatedAt: c.snapshot.UpdatedAt, Buckets: buckets}
}

func (c *Cache) UpdatedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot.UpdatedAt
}

// IsStale reports whether the snapshot is past its freshness window. A
// cold snapshot counts as stale.
func (c *Cache) IsStale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot.Empty() || c.snapshot.Age(time.Now()) > c.ttl
}

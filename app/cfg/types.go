package cfg

import "time"

type Cfg struct {
	// Application configuration
	Port         string
	BaseUrl      string
	TopicsDir    string
	SnapshotPath string
	StaticDir    string

	// Aggregation tuning
	FeedTimeout  int // seconds
	FeedCacheTTL int // seconds
	SectionTTL   int // seconds

	// Background scheduler
	WorkerCount       int
	SchedulerInterval int // seconds

	// Application metadata
	APIAccessKey string
	UserAgent    string
	Timezone     string
	Debug        bool
	Version      string

	location *time.Location
}

func (c *Cfg) GetFeedTimeout() time.Duration {
	return time.Duration(c.FeedTimeout) * time.Second
}

func (c *Cfg) GetFeedCacheTTL() time.Duration {
	return time.Duration(c.FeedCacheTTL) * time.Second
}

func (c *Cfg) GetSectionTTL() time.Duration {
	return time.Duration(c.SectionTTL) * time.Second
}

func (c *Cfg) GetSchedulerInterval() time.Duration {
	return time.Duration(c.SchedulerInterval) * time.Second
}

// Location returns the viewer timezone, falling back to UTC when the
// configured name could not be resolved at load time.
func (c *Cfg) Location() *time.Location {
	if c.location == nil {
		return time.UTC
	}
	return c.location
}

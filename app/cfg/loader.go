package cfg

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	if Version != "" {
		return Version
	}
	return "unknown"
}

type rawCfg struct {
	// Application configuration
	Port         string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl      string `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://jornal.example.com)"`
	TopicsDir    string `long:"topics-dir" env:"TOPICS_DIR" default:"./topics" description:"Directory containing topic configuration files"`
	SnapshotPath string `long:"snapshot-path" env:"SNAPSHOT_PATH" default:"./data/sections.json" description:"Path of the persisted section snapshot"`
	StaticDir    string `long:"static-dir" env:"STATIC_DIR" default:"./static" description:"Directory served under /static (hero images)"`

	// Aggregation tuning
	FeedTimeout  int `long:"feed-timeout" env:"JC_TIMEOUT" default:"8" description:"Feed fetch timeout in seconds"`
	FeedCacheTTL int `long:"feed-cache-ttl" env:"JC_CACHE_TTL" default:"180" description:"Per-URL feed cache TTL in seconds"`
	SectionTTL   int `long:"section-ttl" env:"CACHE_TTL" default:"300" description:"Assembled section snapshot TTL in seconds"`

	// Background scheduler
	WorkerCount       int `long:"worker-count" env:"WORKER_COUNT" default:"3" description:"Number of background workers"`
	SchedulerInterval int `long:"scheduler-interval" env:"SCHEDULER_INTERVAL" default:"60" description:"Scheduler interval in seconds"`

	// Application metadata
	APIAccessKey string `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for operator endpoints (optional)"`
	UserAgent    string `long:"user-agent" env:"USER_AGENT" default:"Jornal/1.0 (+https://github.com/ftacconi/jornal)" description:"User agent string for feed requests"`
	Timezone     string `long:"timezone" env:"JC_TIMEZONE" default:"America/Sao_Paulo" description:"Viewer timezone for displayed times"`
	Debug        bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

// Load parses environment variables and command-line flags. Returns
// (nil, nil) when help was requested.
func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		Port:              raw.Port,
		BaseUrl:           raw.BaseUrl,
		TopicsDir:         raw.TopicsDir,
		SnapshotPath:      raw.SnapshotPath,
		StaticDir:         raw.StaticDir,
		FeedTimeout:       raw.FeedTimeout,
		FeedCacheTTL:      raw.FeedCacheTTL,
		SectionTTL:        raw.SectionTTL,
		WorkerCount:       raw.WorkerCount,
		SchedulerInterval: raw.SchedulerInterval,
		APIAccessKey:      raw.APIAccessKey,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if loc, err := time.LoadLocation(cfg.Timezone); err != nil {
		slog.Warn("Invalid timezone, falling back to UTC", "timezone", cfg.Timezone, "error", err)
	} else {
		cfg.location = loc
	}

	return cfg, nil
}

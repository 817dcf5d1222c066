package cfg

import (
	"testing"
	"time"
)

func TestGetVersion(t *testing.T) {
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := &Cfg{
		FeedTimeout:       8,
		FeedCacheTTL:      180,
		SectionTTL:        300,
		SchedulerInterval: 60,
	}

	if cfg.GetFeedTimeout() != 8*time.Second {
		t.Errorf("Expected 8s feed timeout, got %v", cfg.GetFeedTimeout())
	}
	if cfg.GetFeedCacheTTL() != 3*time.Minute {
		t.Errorf("Expected 3m feed cache TTL, got %v", cfg.GetFeedCacheTTL())
	}
	if cfg.GetSectionTTL() != 5*time.Minute {
		t.Errorf("Expected 5m section TTL, got %v", cfg.GetSectionTTL())
	}
	if cfg.GetSchedulerInterval() != time.Minute {
		t.Errorf("Expected 1m scheduler interval, got %v", cfg.GetSchedulerInterval())
	}
}

func TestLocationFallsBackToUTC(t *testing.T) {
	cfg := &Cfg{Timezone: "Not/AZone"}
	if cfg.Location() != time.UTC {
		t.Errorf("Expected UTC fallback, got %v", cfg.Location())
	}

	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatal(err)
	}
	cfg.location = loc
	if cfg.Location() != loc {
		t.Errorf("Expected configured location, got %v", cfg.Location())
	}
}

func TestConfigFields(t *testing.T) {
	cfg := &Cfg{
		Port:         "8080",
		BaseUrl:      "https://jornal.example.com",
		TopicsDir:    "./topics",
		SnapshotPath: "./data/sections.json",
		StaticDir:    "./static",
		UserAgent:    "Test Agent",
		APIAccessKey: "test-key",
		Timezone:     "America/Sao_Paulo",
		Debug:        true,
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.BaseUrl != "https://jornal.example.com" {
		t.Errorf("Expected base URL 'https://jornal.example.com', got '%s'", cfg.BaseUrl)
	}
	if cfg.TopicsDir != "./topics" {
		t.Errorf("Expected topics dir './topics', got '%s'", cfg.TopicsDir)
	}
	if cfg.SnapshotPath != "./data/sections.json" {
		t.Errorf("Expected snapshot path './data/sections.json', got '%s'", cfg.SnapshotPath)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.APIAccessKey != "test-key" {
		t.Errorf("Expected API key 'test-key', got '%s'", cfg.APIAccessKey)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
}

package feed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		label    string
		expected string
	}{
		{"⚽ Esporte", "esporte"},
		{"🏛️ Política Brasil", "política-brasil"},
		{"🌍 Economia", "economia"},
		{"📰 Últimas", "últimas"},
		{"Ciência & Tecnologia", "ciência-tecnologia"},
		{"  Espaços   extras  ", "espaços-extras"},
		{"", "tema"},
		{"🎉🎉🎉", "tema"},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			if got := Slugify(tt.label); got != tt.expected {
				t.Errorf("Slugify(%q) = %q, expected %q", tt.label, got, tt.expected)
			}
		})
	}
}

func writeTopicFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name+".yml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestTopicCacheLoadsTopics(t *testing.T) {
	dir := t.TempDir()
	writeTopicFile(t, dir, "esporte", `
label: "⚽ Esporte"
position: 1
limit: 9
feeds:
  - https://example.com/esporte.rss
`)
	writeTopicFile(t, dir, "economia", `
label: "🌍 Economia"
position: 2
feeds:
  - https://example.com/economia.rss
filter:
  includes:
    - economia
  excludes:
    - futebol
`)

	tc := NewTopicCache(dir)
	if err := tc.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if count := tc.GetTopicCount(); count != 2 {
		t.Fatalf("Expected 2 topics, got %d", count)
	}

	topic, err := tc.GetTopic("esporte")
	if err != nil {
		t.Fatal(err)
	}
	if topic.Slug != "esporte" {
		t.Errorf("Expected slug derived from label, got %q", topic.Slug)
	}
	if topic.Limit != 9 {
		t.Errorf("Expected limit 9, got %d", topic.Limit)
	}
	if topic.Filter != nil {
		t.Error("Expected no filter on esporte")
	}

	topic, err = tc.GetTopic("economia")
	if err != nil {
		t.Fatal(err)
	}
	if topic.Filter == nil || len(topic.Filter.Includes) != 1 || len(topic.Filter.Excludes) != 1 {
		t.Errorf("Expected parsed filter keywords, got %+v", topic.Filter)
	}
	if topic.Limit != 0 {
		t.Errorf("Expected unset limit to default to 0, got %d", topic.Limit)
	}
}

func TestTopicCacheGetBySlug(t *testing.T) {
	dir := t.TempDir()
	writeTopicFile(t, dir, "politica", `
label: "🏛️ Política Brasil"
feeds:
  - https://example.com/politica.rss
`)

	tc := NewTopicCache(dir)
	if err := tc.Run(); err != nil {
		t.Fatal(err)
	}

	topic, err := tc.GetTopicBySlug("política-brasil")
	if err != nil {
		t.Fatalf("Expected slug lookup to succeed: %v", err)
	}
	if topic.Name != "politica" {
		t.Errorf("Expected topic name from filename, got %q", topic.Name)
	}

	if _, err := tc.GetTopicBySlug("inexistente"); err == nil {
		t.Error("Expected error for unknown slug")
	}
}

func TestTopicCacheOrdering(t *testing.T) {
	dir := t.TempDir()
	writeTopicFile(t, dir, "zebra", "label: Zebra\nposition: 1\nfeeds: [https://example.com/z.rss]\n")
	writeTopicFile(t, dir, "alpha", "label: Alpha\nposition: 2\nfeeds: [https://example.com/a.rss]\n")
	writeTopicFile(t, dir, "beta", "label: Beta\nposition: 2\nfeeds: [https://example.com/b.rss]\n")

	tc := NewTopicCache(dir)
	if err := tc.Run(); err != nil {
		t.Fatal(err)
	}

	topics := tc.GetTopics()
	got := make([]string, len(topics))
	for i, topic := range topics {
		got[i] = topic.Name
	}
	expected := "zebra,alpha,beta"
	if strings.Join(got, ",") != expected {
		t.Errorf("Expected order %s, got %s", expected, strings.Join(got, ","))
	}
}

func TestTopicCacheGetGeneral(t *testing.T) {
	dir := t.TempDir()
	writeTopicFile(t, dir, "esporte", "label: Esporte\nposition: 1\nfeeds: [https://example.com/e.rss]\n")

	tc := NewTopicCache(dir)
	if err := tc.Run(); err != nil {
		t.Fatal(err)
	}
	if tc.GetGeneral() != nil {
		t.Error("Expected nil when no topic is flagged general")
	}

	writeTopicFile(t, dir, "ultimas", "label: Últimas\nposition: 2\ngeneral: true\nfeeds: [https://example.com/u.rss]\n")
	if _, err := tc.LoadTopic("ultimas"); err != nil {
		t.Fatal(err)
	}

	general := tc.GetGeneral()
	if general == nil || general.Name != "ultimas" {
		t.Errorf("Expected ultimas as general topic, got %v", general)
	}
}

func TestTopicCacheValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "missing label",
			content: "feeds: [https://example.com/a.rss]\n",
		},
		{
			name:    "no feeds",
			content: "label: Vazio\n",
		},
		{
			name:    "blank feed url",
			content: "label: Branco\nfeeds: [\"  \"]\n",
		},
		{
			name:    "negative limit",
			content: "label: Negativo\nlimit: -1\nfeeds: [https://example.com/a.rss]\n",
		},
		{
			name:    "empty filter",
			content: "label: Filtro\nfeeds: [https://example.com/a.rss]\nfilter: {}\n",
		},
		{
			name:    "malformed yaml",
			content: "label: [unclosed\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeTopicFile(t, dir, "invalido", tt.content)

			tc := NewTopicCache(dir)
			if err := tc.Run(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestTopicCacheMissingDirIsNotAnError(t *testing.T) {
	tc := NewTopicCache(filepath.Join(t.TempDir(), "nao-existe"))
	if err := tc.Run(); err != nil {
		t.Errorf("Expected missing directory to be tolerated, got %v", err)
	}
	if tc.GetTopicCount() != 0 {
		t.Errorf("Expected no topics, got %d", tc.GetTopicCount())
	}
}

func TestTopicDisplayLabel(t *testing.T) {
	topic := &Topic{Label: "🌍 Economia"}
	if topic.DisplayLabel() != "🌍 Economia" {
		t.Errorf("Expected label fallback, got %q", topic.DisplayLabel())
	}

	topic.Display = "Economia & Mercados"
	if topic.DisplayLabel() != "Economia & Mercados" {
		t.Errorf("Expected display override, got %q", topic.DisplayLabel())
	}
}

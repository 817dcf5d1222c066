package feed

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	reSlugStrip = regexp.MustCompile(`[^\p{L}\p{N}_\s-]`)
	reSlugSpace = regexp.MustCompile(`\s+`)
	reSlugDash  = regexp.MustCompile(`-+`)
)

// Slugify derives a URL-safe slug from a topic label, dropping emoji and
// punctuation while keeping accented letters.
func Slugify(label string) string {
	s := reSlugStrip.ReplaceAllString(label, "")
	s = strings.ToLower(strings.TrimSpace(s))
	s = reSlugSpace.ReplaceAllString(s, "-")
	s = reSlugDash.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		return "tema"
	}
	return s
}

// TopicCache loads and serves the topic configurations (one .yml per
// topic). The keyword filter lists live here as data so they can be tuned
// without code changes.
type TopicCache struct {
	topicsDir string
	mu        sync.RWMutex
	cache     map[string]*Topic
}

func NewTopicCache(topicsDir string) *TopicCache {
	return &TopicCache{
		topicsDir: topicsDir,
		cache:     make(map[string]*Topic),
	}
}

func (tc *TopicCache) Run() error {
	if _, err := os.Stat(tc.topicsDir); os.IsNotExist(err) {
		return nil
	}

	files, err := filepath.Glob(filepath.Join(tc.topicsDir, "*.yml"))
	if err != nil {
		return fmt.Errorf("failed to find YML files: %w", err)
	}

	for _, file := range files {
		fileName := filepath.Base(file)
		topicName := strings.TrimSuffix(fileName, ".yml")

		topic, err := tc.LoadTopic(topicName)
		if err != nil {
			return fmt.Errorf("error loading %s: %w", file, err)
		}

		slog.Debug("Topic configuration loaded", "topic", topicName, "label", topic.Label, "feeds", len(topic.Feeds), "limit", topic.Limit)
	}

	return nil
}

func (tc *TopicCache) LoadTopic(topicName string) (*Topic, error) {
	configFile := filepath.Join(tc.topicsDir, topicName+".yml")

	topic, err := tc.parseTopic(configFile)
	if err != nil {
		return nil, err
	}

	topic.Name = topicName
	topic.Slug = Slugify(topic.Label)

	if err := tc.validateTopic(topic); err != nil {
		return nil, fmt.Errorf("invalid topic %s: %w", configFile, err)
	}

	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.cache[topic.Name] = topic

	return topic, nil
}

func (tc *TopicCache) GetTopic(topicName string) (*Topic, error) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	topic, ok := tc.cache[topicName]
	if !ok {
		return nil, fmt.Errorf("topic with name '%s' not found", topicName)
	}
	return topic, nil
}

func (tc *TopicCache) GetTopicBySlug(slug string) (*Topic, error) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	for _, topic := range tc.cache {
		if topic.Slug == slug {
			return topic, nil
		}
	}
	return nil, fmt.Errorf("topic with slug '%s' not found", slug)
}

// GetTopics returns all topics in configured order (position, then name).
func (tc *TopicCache) GetTopics() []*Topic {
	tc.mu.RLock()
	defer tc.mu.RUnlock()

	topics := make([]*Topic, 0, len(tc.cache))
	for _, topic := range tc.cache {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Position != topics[j].Position {
			return topics[i].Position < topics[j].Position
		}
		return topics[i].Name < topics[j].Name
	})
	return topics
}

// GetGeneral returns the designated "latest news" topic, or nil when no
// topic is flagged as general.
func (tc *TopicCache) GetGeneral() *Topic {
	for _, topic := range tc.GetTopics() {
		if topic.General {
			return topic
		}
	}
	return nil
}

func (tc *TopicCache) GetTopicCount() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.cache)
}

func (tc *TopicCache) parseTopic(configFile string) (*Topic, error) {
	data, err := os.ReadFile(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var topic Topic
	if err := yaml.Unmarshal(data, &topic); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	return &topic, nil
}

func (tc *TopicCache) validateTopic(topic *Topic) error {
	if topic.Label == "" {
		return fmt.Errorf("topic label is required")
	}
	if len(topic.Feeds) == 0 {
		return fmt.Errorf("topic must have at least one feed URL")
	}
	for i, url := range topic.Feeds {
		if strings.TrimSpace(url) == "" {
			return fmt.Errorf("feed URL at index %d is empty", i)
		}
	}
	if topic.Limit < 0 {
		return fmt.Errorf("limit must be non-negative")
	}
	if topic.Filter != nil && len(topic.Filter.Includes) == 0 && len(topic.Filter.Excludes) == 0 {
		return fmt.Errorf("filter must have at least one include or exclude keyword")
	}
	return nil
}

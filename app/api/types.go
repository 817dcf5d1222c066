package api

import (
	"context"
	"time"

	"github.com/ftacconi/jornal/app/feed"
	"github.com/ftacconi/jornal/app/section"
)

// SectionReader is the read surface of the section cache the portal
// consumes, plus the operator-forced refresh.
type SectionReader interface {
	GetSection(ctx context.Context, topicName string, limit int) (string, []feed.Entry, error)
	Refresh(ctx context.Context) time.Time
	UpdatedAt() time.Time
}

var _ SectionReader = (*section.Cache)(nil)

type TopicSource interface {
	GetTopics() []*feed.Topic
	GetTopicBySlug(slug string) (*feed.Topic, error)
	GetGeneral() *feed.Topic
	GetTopicCount() int
}

var _ TopicSource = (*feed.TopicCache)(nil)

type Handler struct {
	sections  SectionReader
	topics    TopicSource
	generator *RSSGenerator
	baseURL   string
	location  *time.Location
}

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	homeLimit  = 80
	topicLimit = 60
)

func NewHandler(sections SectionReader, topics TopicSource, baseURL string, location *time.Location) *Handler {
	return &Handler{
		sections:  sections,
		topics:    topics,
		generator: NewRSSGenerator(),
		baseURL:   baseURL,
		location:  location,
	}
}

func (h *Handler) GetHome(c *gin.Context) {
	title, entries, err := h.sections.GetSection(c.Request.Context(), "", homeLimit)
	if err != nil {
		slog.Error("Section lookup failed", "section", "general", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	var images []string
	if general := h.topics.GetGeneral(); general != nil {
		images = general.Images
	}

	c.HTML(http.StatusOK, "index.html", h.pageData(c, "", title, images, entries))
}

func (h *Handler) GetTopicPage(c *gin.Context) {
	slug := c.Param("slug")

	topic, err := h.topics.GetTopicBySlug(slug)
	if err != nil {
		redirectHome(c)
		return
	}

	title, entries, err := h.sections.GetSection(c.Request.Context(), topic.Name, topicLimit)
	if err != nil {
		slog.Error("Section lookup failed", "topic", topic.Name, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "index.html", h.pageData(c, slug, title, topic.Images, entries))
}

func (h *Handler) GetTopicRSS(c *gin.Context) {
	slug := c.Param("slug")

	topic, err := h.topics.GetTopicBySlug(slug)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	title, entries, err := h.sections.GetSection(c.Request.Context(), topic.Name, topicLimit)
	if err != nil {
		slog.Error("Section lookup failed", "topic", topic.Name, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	rss, err := h.generator.Run(topic, title, entries, h.selfURL(slug))
	if err != nil {
		slog.Error("RSS generation failed", "topic", topic.Name, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.String(http.StatusOK, rss)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(h.location).Format(time.RFC3339),
		"topics":    h.topics.GetTopicCount(),
	}

	if updatedAt := h.sections.UpdatedAt(); !updatedAt.IsZero() {
		health["snapshot_updated_at"] = updatedAt.UTC().Format(time.RFC3339)
		health["snapshot_age"] = time.Since(updatedAt).Round(time.Second).String()
	}

	c.JSON(http.StatusOK, health)
}

// PostRefresh forces a synchronous full rebuild and reports the new
// snapshot time.
func (h *Handler) PostRefresh(c *gin.Context) {
	updatedAt := h.sections.Refresh(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"updated_at": updatedAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) selfURL(slug string) string {
	if h.baseURL != "" {
		return h.baseURL + "/tema/" + slug + "/rss"
	}
	return "/tema/" + slug + "/rss"
}

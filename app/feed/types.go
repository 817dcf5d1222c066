package feed

// Aggregation types

// Entry is the canonical, render-ready representation of one feed item.
// Immutable once built; the JSON field names match the persisted snapshot
// layout consumed by the presentation layer.
type Entry struct {
	Title       string  `json:"titulo"`
	Link        string  `json:"link"`
	Source      string  `json:"fonte"`
	Summary     string  `json:"resumo"`
	Timestamp   float64 `json:"ts"`   // seconds since epoch, UTC
	DisplayTime string  `json:"hora"` // viewer-local, "15:04" or "02/01 15:04"
}

// Configuration types

type Topic struct {
	Name     string       // Derived from filename (without .yml extension)
	Slug     string       // Derived from label
	Label    string       `yaml:"label"`
	Display  string       `yaml:"display_label"` // optional label override for the menu
	Feeds    []string     `yaml:"feeds"`
	Limit    int          `yaml:"limit"`    // 0 means unbounded
	Position int          `yaml:"position"` // menu and fallback order
	General  bool         `yaml:"general"`  // designated "latest news" topic
	Filter   *TopicFilter `yaml:"filter"`
	Images   []string     `yaml:"images"` // hero image candidates, relative to static dir
}

// TopicFilter is a keyword admission rule over an entry's title and
// summary. Excludes are checked first and reject outright.
type TopicFilter struct {
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
}

func (t *Topic) DisplayLabel() string {
	if t.Display != "" {
		return t.Display
	}
	return t.Label
}

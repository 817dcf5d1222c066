package feed

import (
	"strings"
	"time"

	"github.com/mmcdole/gofeed"
)

const (
	placeholderTitle = "(sem título)"
	titleMaxChars    = 140
	summaryMaxChars  = 320
)

// Custom-element aliases tried, in order, when the canonical gofeed field
// is empty. Kept as data so a new feed quirk is a table entry, not a code
// branch.
var (
	titleAliases   = []string{"titulo", "headline"}
	linkAliases    = []string{"url", "href"}
	sourceAliases  = []string{"source", "fonte", "publisher", "site"}
	summaryAliases = []string{"summary", "subtitle", "resumo"}
)

// Normalizer converts heterogeneous gofeed items into comparable Entries.
type Normalizer struct {
	location *time.Location
	now      func() time.Time
}

func NewNormalizer(location *time.Location) *Normalizer {
	return &Normalizer{
		location: location,
		now:      time.Now,
	}
}

// Run builds an Entry from a raw item. Missing fields are recovered per
// field through the alias tables; a completely missing title falls back to
// a placeholder. feedTitle is used as the source of last resort.
func (n *Normalizer) Run(item *gofeed.Item, feedTitle string) Entry {
	title := Summarize(pick(item.Title, item, titleAliases), titleMaxChars)
	if title == "" {
		title = placeholderTitle
	}

	source := pick("", item, sourceAliases)
	if source == "" {
		source = feedTitle
	}

	summary := item.Description
	if strings.TrimSpace(summary) == "" {
		summary = pick("", item, summaryAliases)
	}
	if strings.TrimSpace(summary) == "" {
		summary = item.Content
	}

	ts := entryTimestamp(item)

	return Entry{
		Title:       title,
		Link:        extractLink(item),
		Source:      StripHTML(source),
		Summary:     Summarize(summary, summaryMaxChars),
		Timestamp:   ts,
		DisplayTime: n.displayTime(ts),
	}
}

// pick returns primary when non-empty, otherwise the first non-empty
// custom element among the aliases.
func pick(primary string, item *gofeed.Item, aliases []string) string {
	if strings.TrimSpace(primary) != "" {
		return primary
	}
	for _, key := range aliases {
		if v, ok := item.Custom[key]; ok && strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// extractLink handles both the flat RSS link and the Atom link list.
// gofeed already prefers rel="alternate" when populating Link; the list is
// the fallback for entries where only secondary links carry an href.
func extractLink(item *gofeed.Item) string {
	if l := strings.TrimSpace(item.Link); l != "" {
		return l
	}
	for _, l := range item.Links {
		if trimmed := strings.TrimSpace(l); trimmed != "" {
			return trimmed
		}
	}
	return strings.TrimSpace(pick("", item, linkAliases))
}

// entryTimestamp reads the published time, falling back to the updated
// time, as epoch seconds. gofeed parses feed dates into time.Time with the
// feed's own zone applied, so Unix() is timezone-safe regardless of the
// process-local zone. Missing dates map to 0.
func entryTimestamp(item *gofeed.Item) float64 {
	t := item.PublishedParsed
	if t == nil {
		t = item.UpdatedParsed
	}
	if t == nil {
		return 0
	}
	return float64(t.Unix())
}

// displayTime renders the timestamp in the viewer's timezone: "15:04" for
// today, "02/01 15:04" otherwise, empty when the entry carries no date.
func (n *Normalizer) displayTime(ts float64) string {
	if ts == 0 {
		return ""
	}
	local := time.Unix(int64(ts), 0).In(n.location)
	now := n.now().In(n.location)
	if local.Year() == now.Year() && local.YearDay() == now.YearDay() {
		return local.Format("15:04")
	}
	return local.Format("02/01 15:04")
}

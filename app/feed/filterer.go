package feed

import "strings"

// Filterer applies a topic's keyword admission rules. Topics without a
// configured filter admit every entry unchanged.
type Filterer struct{}

func NewFilterer() *Filterer {
	return &Filterer{}
}

func (f *Filterer) Run(entries []Entry, topic *Topic) []Entry {
	if topic.Filter == nil {
		return entries
	}

	kept := make([]Entry, 0, len(entries))
	for _, entry := range entries {
		if f.admit(entry, topic.Filter) {
			kept = append(kept, entry)
		}
	}
	return kept
}

// admit checks the exclude list first: one off-topic keyword rejects the
// entry even when an include keyword also matches.
func (f *Filterer) admit(entry Entry, filter *TopicFilter) bool {
	haystack := strings.ToLower(entry.Title + " " + entry.Summary)

	for _, keyword := range filter.Excludes {
		if strings.Contains(haystack, strings.ToLower(keyword)) {
			return false
		}
	}

	if len(filter.Includes) == 0 {
		return true
	}
	for _, keyword := range filter.Includes {
		if strings.Contains(haystack, strings.ToLower(keyword)) {
			return true
		}
	}
	return false
}

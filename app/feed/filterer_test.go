package feed

import (
	"reflect"
	"testing"
)

func economicsTopic() *Topic {
	return &Topic{
		Name:  "economia",
		Label: "🌍 Economia",
		Filter: &TopicFilter{
			Includes: []string{"economia", "mercado", "bitcoin", "juros"},
			Excludes: []string{"flamengo", "futebol", "bbb"},
		},
	}
}

func TestFiltererNoFilterAdmitsAll(t *testing.T) {
	filterer := NewFilterer()
	entries := []Entry{
		{Title: "Qualquer coisa"},
		{Title: "Outra qualquer"},
	}

	result := filterer.Run(entries, &Topic{Name: "esporte"})
	if !reflect.DeepEqual(result, entries) {
		t.Errorf("Expected unfiltered topic to pass entries through, got %v", result)
	}
}

func TestFiltererKeywordAdmission(t *testing.T) {
	filterer := NewFilterer()
	topic := economicsTopic()

	tests := []struct {
		name     string
		entry    Entry
		admitted bool
	}{
		{
			name:     "include match on title",
			entry:    Entry{Title: "Bitcoin dispara após anúncio"},
			admitted: true,
		},
		{
			name:     "include match is case-insensitive",
			entry:    Entry{Title: "MERCADO em alta"},
			admitted: true,
		},
		{
			name:     "include match on summary",
			entry:    Entry{Title: "Decisão do Copom", Summary: "Taxa de juros mantida"},
			admitted: true,
		},
		{
			name:     "no include match rejects",
			entry:    Entry{Title: "Chuva forte atinge capital"},
			admitted: false,
		},
		{
			name:     "exclude beats include",
			entry:    Entry{Title: "Flamengo movimenta o mercado da bola"},
			admitted: false,
		},
		{
			name:     "exclude match on summary",
			entry:    Entry{Title: "Economia do clube", Summary: "Transmissão do futebol rende milhões"},
			admitted: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := filterer.Run([]Entry{tt.entry}, topic)
			if got := len(result) == 1; got != tt.admitted {
				t.Errorf("Expected admitted=%v for %q, got %v", tt.admitted, tt.entry.Title, got)
			}
		})
	}
}

func TestFiltererEmptyIncludesOnlyExcludes(t *testing.T) {
	filterer := NewFilterer()
	topic := &Topic{
		Name:   "geral",
		Filter: &TopicFilter{Excludes: []string{"bbb"}},
	}

	entries := []Entry{
		{Title: "Notícia comum"},
		{Title: "Tudo sobre o BBB de hoje"},
	}

	result := filterer.Run(entries, topic)
	if len(result) != 1 || result[0].Title != "Notícia comum" {
		t.Errorf("Expected only non-excluded entry, got %v", result)
	}
}

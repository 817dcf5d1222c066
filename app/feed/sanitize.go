package feed

import (
	"html"
	"regexp"
	"strings"
)

var (
	reImg    = regexp.MustCompile(`(?i)<img[^>]*>`)
	reBr     = regexp.MustCompile(`(?i)<br\s*/?>`)
	rePOpen  = regexp.MustCompile(`(?i)<p[^>]*>`)
	rePClose = regexp.MustCompile(`(?i)</p\s*>`)
	reTag    = regexp.MustCompile(`<[^>]+>`)
	reURL    = regexp.MustCompile(`https?://\S+`)
	reSpace  = regexp.MustCompile(`\s+`)
)

// Promotional boilerplate that outlets append to feed summaries.
var boilerplate = []string{
	"Leia mais", "Veja mais", "VÍDEOS:", "Veja os vídeos", "Siga o canal",
	"Clique aqui", "Participe do canal", "Receba as notícias", "The post",
	"appeared first on", "Leia a íntegra", "Leia a nota", "Assista", "AO VIVO",
}

// StripHTML reduces a feed-provided HTML fragment to plain text: tags are
// removed (img, br and p variants first, so they become word separators),
// entities are unescaped, bare URLs and boilerplate phrases are dropped and
// whitespace is collapsed.
func StripHTML(text string) string {
	if text == "" {
		return ""
	}
	t := reImg.ReplaceAllString(text, " ")
	t = reBr.ReplaceAllString(t, " ")
	t = rePClose.ReplaceAllString(t, " ")
	t = rePOpen.ReplaceAllString(t, " ")
	t = reTag.ReplaceAllString(t, " ")
	t = html.UnescapeString(t)
	t = reURL.ReplaceAllString(t, " ")
	for _, phrase := range boilerplate {
		t = strings.ReplaceAll(t, phrase, " ")
	}
	return strings.TrimSpace(reSpace.ReplaceAllString(t, " "))
}

// Summarize strips text and truncates it to maxChars runes at the nearest
// preceding word boundary, appending an ellipsis when truncated.
func Summarize(text string, maxChars int) string {
	t := StripHTML(text)
	runes := []rune(t)
	if len(runes) <= maxChars {
		return t
	}
	cut := string(runes[:maxChars])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,;:") + "…"
}

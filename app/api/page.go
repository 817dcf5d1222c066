package api

import (
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/ftacconi/jornal/app/feed"
	"github.com/gin-gonic/gin"
)

type MenuEntry struct {
	Label  string
	Slug   string
	Active bool
}

type PageData struct {
	Now       string
	MoonPhase string
	Menu      []MenuEntry
	Title     string
	HeroImage string
	Entries   []feed.Entry
}

var (
	weekdaysPT = []string{
		"Segunda-feira", "Terça-feira", "Quarta-feira",
		"Quinta-feira", "Sexta-feira", "Sábado", "Domingo",
	}
	monthsPT = []string{
		"", "janeiro", "fevereiro", "março", "abril", "maio", "junho",
		"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
	}
)

// headerDate renders the masthead date, e.g.
// "Terça-feira, 17 de fevereiro de 2025 — 14:32".
func headerDate(now time.Time) string {
	// time.Weekday starts on Sunday; the table starts on Monday.
	weekday := weekdaysPT[(int(now.Weekday())+6)%7]
	month := monthsPT[int(now.Month())]
	return fmt.Sprintf("%s, %d de %s de %d — %s",
		weekday, now.Day(), month, now.Year(), now.Format("15:04"))
}

// moonPhase returns the current lunar phase from the synodic age relative
// to the new moon of 2000-01-06 18:14 UTC.
func moonPhase(now time.Time) string {
	ref := time.Date(2000, 1, 6, 18, 14, 0, 0, time.UTC)
	days := now.Sub(ref).Hours() / 24
	synodic := 29.53058867
	age := days - float64(int(days/synodic))*synodic

	switch {
	case age < 1.84566:
		return "🌑 Lua Nova"
	case age < 5.53699:
		return "🌒 Crescente"
	case age < 9.22831:
		return "🌓 Quarto Crescente"
	case age < 12.91963:
		return "🌔 Gibosa Crescente"
	case age < 16.61096:
		return "🌕 Lua Cheia"
	case age < 20.30228:
		return "🌖 Gibosa Minguante"
	case age < 23.99361:
		return "🌗 Quarto Minguante"
	case age < 27.68493:
		return "🌘 Minguante"
	default:
		return "🌑 Lua Nova"
	}
}

func buildMenu(topics []*feed.Topic, activeSlug string) []MenuEntry {
	menu := make([]MenuEntry, 0, len(topics)+1)
	menu = append(menu, MenuEntry{Label: "📰 Geral", Slug: "", Active: activeSlug == ""})
	for _, topic := range topics {
		menu = append(menu, MenuEntry{
			Label:  topic.DisplayLabel(),
			Slug:   topic.Slug,
			Active: topic.Slug == activeSlug,
		})
	}
	return menu
}

// pickHeroImage chooses a hero image for the section, avoiding an
// immediate repeat of the image the client saw last (remembered in a
// cookie).
func pickHeroImage(c *gin.Context, cookieKey string, images []string) string {
	if len(images) == 0 {
		return ""
	}
	if len(images) == 1 {
		return images[0]
	}

	last, _ := c.Cookie(cookieKey)

	pool := make([]string, 0, len(images))
	for _, img := range images {
		if img != last {
			pool = append(pool, img)
		}
	}
	if len(pool) == 0 {
		pool = images
	}

	chosen := pool[rand.Intn(len(pool))]
	c.SetCookie(cookieKey, chosen, int((24 * time.Hour).Seconds()), "/", "", false, true)
	return chosen
}

func (h *Handler) pageData(c *gin.Context, activeSlug, title string, images []string, entries []feed.Entry) PageData {
	now := time.Now().In(h.location)
	return PageData{
		Now:       headerDate(now),
		MoonPhase: moonPhase(now),
		Menu:      buildMenu(h.topics.GetTopics(), activeSlug),
		Title:     title,
		HeroImage: pickHeroImage(c, "jornal_last_img_"+slugOrGeneral(activeSlug), images),
		Entries:   entries,
	}
}

func slugOrGeneral(slug string) string {
	if slug == "" {
		return "geral"
	}
	return slug
}

func redirectHome(c *gin.Context) {
	c.Redirect(http.StatusFound, "/")
}

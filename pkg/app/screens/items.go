package screens

import (
	"strings"

	"github.com/kerbaras/komik/pkg/app/components"
	"github.com/kerbaras/komik/pkg/data"
	"github.com/kerbaras/komik/pkg/state"
)

func homeItems(s state.State) []components.ListItem {
	sections := state.Sections(s.Home)
	var out []components.ListItem
	out = append(out, comicItems(s, sections.Hot, "Hot Updates")...)
	out = append(out, comicItems(s, sections.Latest, "Latest Releases")...)
	out = append(out, comicItems(s, sections.Project, "Project Updates")...)
	return out
}

func comicItems(s state.State, comics []data.Comic, section string) []components.ListItem {
	out := make([]components.ListItem, 0, len(comics))
	for _, c := range comics {
		out = append(out, components.ListItem{
			ID:       c.Slug,
			Title:    c.Title,
			Subtitle: comicSubtitle(c),
			Section:  section,
			Marked:   s.IsBookmarked(c.Slug),
		})
	}
	return out
}

func comicSubtitle(c data.Comic) string {
	var parts []string
	if c.Type != "" {
		parts = append(parts, c.Type)
	}
	chapter := c.LatestChapter
	if chapter == "" {
		chapter = c.Chapter
	}
	if chapter != "" {
		parts = append(parts, chapter)
	}
	if c.Rating != "" {
		parts = append(parts, "★ "+c.Rating)
	}
	return strings.Join(parts, " • ")
}

func historyItems(s state.State) []components.ListItem {
	out := make([]components.ListItem, 0, len(s.History))
	for _, h := range s.History {
		sub := ""
		if h.LastChapterTitle != "" {
			sub = "Last read: " + h.LastChapterTitle
		}
		out = append(out, components.ListItem{
			ID:       h.Slug,
			Title:    h.Title,
			Subtitle: sub,
			Marked:   s.IsBookmarked(h.Slug),
		})
	}
	return out
}

func bookmarkItems(s state.State) []components.ListItem {
	out := make([]components.ListItem, 0, len(s.Bookmarks))
	for _, b := range s.Bookmarks {
		sub := ""
		if h, ok := s.LastRead(b.Slug); ok && h.LastChapterTitle != "" {
			sub = "Last read: " + h.LastChapterTitle
		}
		out = append(out, components.ListItem{ID: b.Slug, Title: b.Title, Subtitle: sub, Marked: true})
	}
	return out
}

func genreItems(genres []data.Genre) []components.ListItem {
	out := make([]components.ListItem, 0, len(genres))
	for _, g := range genres {
		out = append(out, components.ListItem{ID: g.Slug, Title: g.Title})
	}
	return out
}

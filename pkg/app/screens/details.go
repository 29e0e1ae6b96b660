package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/komik/pkg/app/styles"
	"github.com/kerbaras/komik/pkg/data"
)

type DetailsScreen struct {
	comic           *data.Comic
	bookmarked      bool
	lastRead        *data.HistoryItem
	selectedChapter int
	width           int
	height          int
}

func NewDetailsScreen() *DetailsScreen {
	return &DetailsScreen{width: 80, height: 24}
}

// SetComic shows comic; nil clears the screen. Selection survives updates
// of the same comic.
func (s *DetailsScreen) SetComic(comic *data.Comic, bookmarked bool, lastRead *data.HistoryItem) {
	if comic == nil || s.comic == nil || comic.Slug != s.comic.Slug {
		s.selectedChapter = 0
	}
	s.comic = comic
	s.bookmarked = bookmarked
	s.lastRead = lastRead
	if comic != nil && s.selectedChapter >= len(comic.Chapters) {
		s.selectedChapter = max(len(comic.Chapters)-1, 0)
	}
}

func (s *DetailsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
}

func (s *DetailsScreen) Top() {
	s.selectedChapter = 0
}

func (s *DetailsScreen) Next() {
	if s.comic != nil && s.selectedChapter < len(s.comic.Chapters)-1 {
		s.selectedChapter++
	}
}

func (s *DetailsScreen) Prev() {
	if s.selectedChapter > 0 {
		s.selectedChapter--
	}
}

func (s *DetailsScreen) SelectedChapter() (data.Chapter, bool) {
	if s.comic == nil || s.selectedChapter >= len(s.comic.Chapters) {
		return data.Chapter{}, false
	}
	return s.comic.Chapters[s.selectedChapter], true
}

func (s *DetailsScreen) View() string {
	if s.comic == nil {
		return styles.MutedStyle.Render("Nothing loaded")
	}

	title := s.comic.Title
	if s.bookmarked {
		title = styles.BookmarkStyle.Render("★ ") + title
	}
	header := styles.TitleStyle.Render(title)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		s.renderInfo(),
		s.renderChapters(),
	)
}

func (s *DetailsScreen) renderInfo() string {
	var meta []string
	if s.comic.Type != "" {
		meta = append(meta, s.comic.Type)
	}
	if s.comic.Status != "" {
		meta = append(meta, styles.StatusStyle(s.comic.Status).Render(s.comic.Status))
	}
	if s.comic.Rating != "" {
		meta = append(meta, "★ "+s.comic.Rating)
	}

	genres := make([]string, 0, len(s.comic.Genres))
	for _, g := range s.comic.Genres {
		genres = append(genres, g.Title)
	}

	synopsis := s.comic.Synopsis
	if len([]rune(synopsis)) > 300 {
		synopsis = truncate(synopsis, 300)
	}

	lines := []string{strings.Join(meta, " • ")}
	if len(genres) > 0 {
		lines = append(lines, styles.MutedStyle.Render("Genres: "+strings.Join(genres, ", ")))
	}
	if s.lastRead != nil && s.lastRead.LastChapterTitle != "" {
		lines = append(lines, styles.SubtitleStyle.Render("Last read: "+s.lastRead.LastChapterTitle))
	}
	if synopsis != "" {
		lines = append(lines, "", styles.TextStyle.Render(synopsis))
	}

	return styles.CardStyle.Width(max(s.width-4, 20)).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (s *DetailsScreen) renderChapters() string {
	chapters := s.comic.Chapters
	if len(chapters) == 0 {
		return styles.MutedStyle.Render("No chapters available")
	}

	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Chapters (%d total):", len(chapters))))
	b.WriteString("\n\n")

	visible := max(s.height-18, 5)
	start := max(s.selectedChapter-visible/2, 0)
	end := min(start+visible, len(chapters))
	start = max(end-visible, 0)

	lastSlug := ""
	if s.lastRead != nil {
		lastSlug = s.lastRead.LastChapterSlug
	}
	for i := start; i < end; i++ {
		ch := chapters[i]
		icon := "○"
		if ch.Slug == lastSlug {
			icon = "●"
		}
		line := fmt.Sprintf("%s %s", icon, ch.Title)
		if i == s.selectedChapter {
			line = styles.SelectedItemStyle.Render(line)
		} else {
			line = styles.ItemStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(chapters) > visible {
		b.WriteString("\n")
		b.WriteString(styles.MutedStyle.Render(
			fmt.Sprintf("Showing %d-%d of %d chapters", start+1, end, len(chapters)),
		))
	}

	return b.String()
}

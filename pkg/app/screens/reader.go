package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/komik/pkg/app/components"
	"github.com/kerbaras/komik/pkg/app/styles"
	"github.com/kerbaras/komik/pkg/data"
	"github.com/kerbaras/komik/pkg/reader"
)

// chromeRows is the header plus the footer.
const chromeRows = 2

// ReaderScreen scrolls through a chapter's pages. Each page is drawn as a
// block whose height follows the image's aspect ratio.
type ReaderScreen struct {
	tracker  *reader.Tracker
	release  func()
	viewport viewport.Model
	picker   *components.List
	picking  bool

	slug    string
	stale   *data.ChapterDetail
	chapter *data.ChapterDetail
	sizes   []reader.Size
	layout  reader.Layout

	width  int
	height int
}

func NewReaderScreen(hideThreshold int) *ReaderScreen {
	return &ReaderScreen{
		tracker:  reader.NewTracker(hideThreshold),
		viewport: viewport.New(80, 20),
		picker:   components.NewList(),
		width:    80,
		height:   20 + chromeRows,
	}
}

// Open starts a reading session for slug. current is the chapter the state
// holds at that moment; it belongs to the previous session and is ignored.
func (s *ReaderScreen) Open(slug string, current *data.ChapterDetail) {
	s.Close()
	s.release = s.tracker.Attach()
	s.slug = slug
	s.stale = current
	s.chapter = nil
	s.sizes = nil
	s.layout = reader.Layout{}
	s.viewport.SetContent("")
	s.viewport.GotoTop()
}

// Close ends the session; scroll samples are ignored until the next Open.
func (s *ReaderScreen) Close() {
	if s.release != nil {
		s.release()
		s.release = nil
	}
	s.slug = ""
	s.picking = false
}

func (s *ReaderScreen) Slug() string {
	return s.slug
}

func (s *ReaderScreen) Chapter() *data.ChapterDetail {
	return s.chapter
}

// Accepts reports whether ch is new data for the open session.
func (s *ReaderScreen) Accepts(ch *data.ChapterDetail) bool {
	return s.slug != "" && ch != nil && ch != s.stale && ch != s.chapter
}

func (s *ReaderScreen) SetChapter(ch *data.ChapterDetail) {
	s.chapter = ch
	s.sizes = make([]reader.Size, len(ch.Images))
	s.render()
	s.viewport.GotoTop()
	s.sample()
}

// SetSizes applies probed image sizes if they still belong to the chapter
// on screen.
func (s *ReaderScreen) SetSizes(ch *data.ChapterDetail, sizes []reader.Size) {
	if ch != s.chapter || len(sizes) != len(s.sizes) {
		return
	}
	page := s.layout.PageAt(s.viewport.YOffset)
	s.sizes = sizes
	s.render()
	if page < len(s.layout.Offsets) {
		s.viewport.SetYOffset(s.layout.Offsets[page])
	}
	s.sample()
}

func (s *ReaderScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.viewport.Width = width
	s.viewport.Height = max(height-chromeRows, 1)
	s.picker.Width = max(width-4, 10)
	s.picker.Height = s.viewport.Height
	if s.chapter != nil {
		s.render()
	}
}

func (s *ReaderScreen) ToggleChrome() {
	s.tracker.Toggle()
}

func (s *ReaderScreen) Progress() int {
	return s.tracker.Progress()
}

func (s *ReaderScreen) ChromeVisible() bool {
	return s.tracker.ChromeVisible()
}

// OpenPicker lists chapters with the open one selected.
func (s *ReaderScreen) OpenPicker(chapters []data.Chapter) {
	items := make([]components.ListItem, 0, len(chapters))
	selected := 0
	for i, ch := range chapters {
		item := components.ListItem{ID: ch.Slug, Title: ch.Title}
		if ch.Slug == s.slug {
			item.Subtitle = "reading"
			selected = i
		}
		items = append(items, item)
	}
	s.picker.SetItems(items)
	s.picker.SelectedIndex = selected
	s.picking = len(items) > 0
}

func (s *ReaderScreen) ClosePicker() {
	s.picking = false
}

func (s *ReaderScreen) Picking() bool {
	return s.picking
}

func (s *ReaderScreen) Picker() *components.List {
	return s.picker
}

// inImage reports whether screen row y falls on the page area, below the
// header row.
func (s *ReaderScreen) inImage(y int) bool {
	return y >= 1 && y <= s.viewport.Height
}

func (s *ReaderScreen) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(tea.MouseMsg); ok && !s.picking &&
		m.Action == tea.MouseActionPress && m.Button == tea.MouseButtonLeft {
		if s.inImage(m.Y) {
			s.ToggleChrome()
		}
		return nil
	}
	var cmd tea.Cmd
	s.viewport, cmd = s.viewport.Update(msg)
	s.sample()
	return cmd
}

func (s *ReaderScreen) sample() {
	if s.chapter == nil {
		return
	}
	s.tracker.Sample(s.viewport.YOffset, s.layout.Height, s.viewport.Height)
}

func (s *ReaderScreen) render() {
	s.layout = reader.NewLayout(s.sizes, s.width)
	lines := make([]string, 0, s.layout.Height)
	for i, url := range s.chapter.Images {
		lines = append(lines, pageBlock(i, len(s.chapter.Images), url, reader.PageRows(s.sizes[i], s.width), s.width)...)
	}
	s.viewport.SetContent(strings.Join(lines, "\n"))
}

func pageBlock(i, total int, url string, rows, width int) []string {
	lines := make([]string, rows)
	label := fmt.Sprintf("── Page %d/%d ", i+1, total)
	lines[0] = styles.PageHeaderStyle.Render(label + strings.Repeat("─", max(width-lipgloss.Width(label), 0)))
	if rows > 1 {
		lines[1] = styles.MutedStyle.Render(truncate(url, width))
	}
	return lines
}

// View renders the reader. Hidden chrome leaves its rows blank so the page
// does not jump.
func (s *ReaderScreen) View(title string, bookmarked, loading bool, help string) string {
	header, footer := "", ""
	if s.tracker.ChromeVisible() || s.picking {
		mark := ""
		if bookmarked {
			mark = "★ "
		}
		page := ""
		if s.chapter != nil && len(s.chapter.Images) > 0 {
			page = fmt.Sprintf("  p.%d/%d", s.layout.PageAt(s.viewport.YOffset)+1, len(s.chapter.Images))
		}
		left := truncate(mark+title+page, max(s.width/2, 10))
		bar := components.ReadingProgress(s.tracker.Progress(), max(s.width-lipgloss.Width(left)-4, 10))
		header = styles.ChromeStyle.Width(s.width).Render(left + "  " + bar)
		footer = help
	}

	body := s.viewport.View()
	if s.picking {
		body = lipgloss.NewStyle().Height(s.viewport.Height).Render(s.picker.View())
	} else if s.chapter == nil {
		msg := "Nothing loaded"
		if loading {
			msg = "Loading chapter..."
		}
		body = lipgloss.Place(s.width, s.viewport.Height, lipgloss.Center, lipgloss.Center,
			styles.MutedStyle.Render(msg))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}

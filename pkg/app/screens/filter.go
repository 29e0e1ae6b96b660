package screens

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/komik/pkg/app/styles"
	"github.com/kerbaras/komik/pkg/data"
	"github.com/kerbaras/komik/pkg/state"
)

var (
	typeOptions   = []string{"", "Manga", "Manhwa", "Manhua"}
	statusOptions = []string{"", state.StatusOngoing, state.StatusCompleted}
)

const (
	fieldSearch = iota
	fieldQuery
	fieldType
	fieldStatus
	fieldGenre
	numFields
)

// FilterScreen is the search box plus the advanced filter form. Submitting
// yields an ApplyFilter action; resolution happens in the reducer.
type FilterScreen struct {
	search textinput.Model
	query  textinput.Model
	focus  int

	typeIdx   int
	statusIdx int
	genreIdx  int
	genres    []data.Genre

	active bool
	width  int
}

func NewFilterScreen() *FilterScreen {
	search := textinput.New()
	search.Placeholder = "Search comics..."
	search.CharLimit = 100
	search.Width = 50

	query := textinput.New()
	query.Placeholder = "Filter query (optional)"
	query.CharLimit = 100
	query.Width = 50

	return &FilterScreen{search: search, query: query, width: 80}
}

func (s *FilterScreen) Active() bool {
	return s.active
}

// Open shows the form focused on the search box, or on the filter fields
// when advanced is set.
func (s *FilterScreen) Open(genres []data.Genre, advanced bool) tea.Cmd {
	s.active = true
	s.genres = genres
	if s.genreIdx > len(genres) {
		s.genreIdx = 0
	}
	if advanced {
		return s.setFocus(fieldQuery)
	}
	return s.setFocus(fieldSearch)
}

func (s *FilterScreen) Close() {
	s.active = false
	s.search.Blur()
	s.query.Blur()
}

func (s *FilterScreen) SetWidth(width int) {
	s.width = width
	s.search.Width = max(min(width-10, 60), 10)
	s.query.Width = s.search.Width
}

// Options returns the form's current filter and search box.
func (s *FilterScreen) Options() (data.FilterOptions, string) {
	f := data.FilterOptions{
		Type:   typeOptions[s.typeIdx],
		Status: statusOptions[s.statusIdx],
		Query:  strings.TrimSpace(s.query.Value()),
	}
	if s.genreIdx > 0 && s.genreIdx <= len(s.genres) {
		f.Genre = s.genres[s.genreIdx-1].Slug
	}
	return f, s.search.Value()
}

// Update handles a key while the form is open. It returns the action to
// dispatch on submit.
func (s *FilterScreen) Update(msg tea.KeyMsg) (state.Action, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.Close()
		return nil, nil
	case "enter":
		f, box := s.Options()
		s.Close()
		return state.ApplyFilter{Filter: f, SearchBox: box}, nil
	case "tab", "down":
		return nil, s.setFocus((s.focus + 1) % numFields)
	case "shift+tab", "up":
		return nil, s.setFocus((s.focus + numFields - 1) % numFields)
	case "left":
		if s.cycle(-1) {
			return nil, nil
		}
	case "right", " ":
		if s.cycle(1) {
			return nil, nil
		}
	case "ctrl+r":
		s.reset()
		return nil, nil
	}

	var cmd tea.Cmd
	switch s.focus {
	case fieldSearch:
		s.search, cmd = s.search.Update(msg)
	case fieldQuery:
		s.query, cmd = s.query.Update(msg)
	}
	return nil, cmd
}

func (s *FilterScreen) cycle(delta int) bool {
	step := func(i, n int) int { return (i + delta + n) % n }
	switch s.focus {
	case fieldType:
		s.typeIdx = step(s.typeIdx, len(typeOptions))
	case fieldStatus:
		s.statusIdx = step(s.statusIdx, len(statusOptions))
	case fieldGenre:
		s.genreIdx = step(s.genreIdx, len(s.genres)+1)
	default:
		return false
	}
	return true
}

func (s *FilterScreen) reset() {
	s.search.SetValue("")
	s.query.SetValue("")
	s.typeIdx, s.statusIdx, s.genreIdx = 0, 0, 0
}

func (s *FilterScreen) setFocus(field int) tea.Cmd {
	s.focus = field
	s.search.Blur()
	s.query.Blur()
	switch field {
	case fieldSearch:
		return s.search.Focus()
	case fieldQuery:
		return s.query.Focus()
	}
	return nil
}

func (s *FilterScreen) View() string {
	input := func(m textinput.Model, focused bool) string {
		style := styles.InputStyle
		if focused {
			style = styles.FocusedInputStyle
		}
		return style.Render(m.View())
	}
	option := func(label, value string, focused bool) string {
		if value == "" {
			value = "any"
		}
		text := fmt.Sprintf("%-7s ‹ %s ›", label, value)
		if focused {
			return styles.SelectedItemStyle.Render(text)
		}
		return styles.ItemStyle.Render(text)
	}

	genre := ""
	if s.genreIdx > 0 && s.genreIdx <= len(s.genres) {
		genre = s.genres[s.genreIdx-1].Title
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render("Search"),
		input(s.search, s.focus == fieldSearch),
		"",
		styles.SubtitleStyle.Render("Advanced filter"),
		input(s.query, s.focus == fieldQuery),
		option("Type", typeOptions[s.typeIdx], s.focus == fieldType),
		option("Status", statusOptions[s.statusIdx], s.focus == fieldStatus),
		option("Genre", genre, s.focus == fieldGenre),
		styles.HelpStyle.Render("enter: apply • tab: next field • ←/→: change • ctrl+r: reset • esc: cancel"),
	)
}

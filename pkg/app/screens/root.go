package screens

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/komik/pkg/app/components"
	"github.com/kerbaras/komik/pkg/app/styles"
	"github.com/kerbaras/komik/pkg/data"
	"github.com/kerbaras/komik/pkg/reader"
	"github.com/kerbaras/komik/pkg/services"
	"github.com/kerbaras/komik/pkg/state"
)

type Options struct {
	Controller    *services.Controller
	Exporter      *services.Exporter // optional
	Prober        *reader.Prober     // optional
	HideThreshold int
}

// RootScreen renders the controller's state and turns keys into actions.
// Remote calls run as commands and come back as actionMsg.
type RootScreen struct {
	ctx        context.Context
	controller *services.Controller
	exporter   *services.Exporter
	prober     *reader.Prober

	keys     keyMap
	help     help.Model
	spinner  spinner.Model
	list     *components.List
	details  *DetailsScreen
	reader   *ReaderScreen
	filter   *FilterScreen
	progress *components.ProgressTracker

	scrollResets uint64
	listening    bool
	notice       string

	width  int
	height int
}

func NewRootScreen(opts Options) *RootScreen {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.StatusDownloading

	return &RootScreen{
		ctx:        context.Background(),
		controller: opts.Controller,
		exporter:   opts.Exporter,
		prober:     opts.Prober,
		keys:       defaultKeyMap(),
		help:       help.New(),
		spinner:    sp,
		list:       components.NewList(),
		details:    NewDetailsScreen(),
		reader:     NewReaderScreen(opts.HideThreshold),
		filter:     NewFilterScreen(),
		progress:   components.NewProgressTracker(76),
		width:      80,
		height:     24,
	}
}

// Messages
type actionMsg struct {
	action state.Action
}

type probedMsg struct {
	chapter *data.ChapterDetail
	sizes   []reader.Size
}

type exportProgressMsg services.ExportProgress

type exportDoneMsg struct {
	slug string
	path string
	err  error
}

func (r *RootScreen) Init() tea.Cmd {
	return tea.Batch(r.spinner.Tick, r.dispatch(state.Boot{}))
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.resize(msg.Width, msg.Height)
		return r, nil

	case actionMsg:
		return r, r.dispatch(msg.action)

	case probedMsg:
		r.reader.SetSizes(msg.chapter, msg.sizes)
		return r, nil

	case exportProgressMsg:
		r.progress.Update(services.ExportProgress(msg))
		return r, r.listenForProgress()

	case exportDoneMsg:
		if msg.err != nil {
			r.notice = styles.StatusError.Render("Export failed: " + msg.slug)
		} else {
			r.notice = styles.StatusCompleted.Render("Saved " + msg.path)
		}
		return r, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		r.spinner, cmd = r.spinner.Update(msg)
		return r, cmd

	case tea.MouseMsg:
		if r.view().Kind() == state.Reader {
			return r, r.reader.Update(msg)
		}
		return r, nil

	case tea.KeyMsg:
		return r, r.handleKey(msg)
	}

	return r, nil
}

func (r *RootScreen) state() state.State {
	return r.controller.State()
}

func (r *RootScreen) view() state.View {
	return r.controller.State().View
}

// dispatch hands a to the controller, refreshes the screens and schedules
// the resulting fetches.
func (r *RootScreen) dispatch(a state.Action) tea.Cmd {
	jobs := r.controller.Dispatch(a)
	cmds := []tea.Cmd{r.sync()}
	for _, job := range jobs {
		cmds = append(cmds, r.run(job))
	}
	return tea.Batch(cmds...)
}

func (r *RootScreen) run(job services.Job) tea.Cmd {
	ctx := r.ctx
	return func() tea.Msg {
		return actionMsg{action: job(ctx)}
	}
}

// sync projects the state onto the screens.
func (r *RootScreen) sync() tea.Cmd {
	s := r.state()

	if n := r.controller.ScrollResets(); n != r.scrollResets {
		r.scrollResets = n
		r.list.Top()
		r.details.Top()
	}

	var cmd tea.Cmd
	if rv, ok := s.View.(state.ReaderView); ok {
		if rv.ChapterSlug != r.reader.Slug() {
			r.reader.Open(rv.ChapterSlug, s.Chapter)
		}
		if !s.Loading && r.reader.Accepts(s.Chapter) {
			r.reader.SetChapter(s.Chapter)
			cmd = r.probe(s.Chapter)
		}
	} else if r.reader.Slug() != "" {
		r.reader.Close()
	}

	if dv, ok := s.View.(state.DetailView); ok {
		comic := s.Comic
		if comic != nil && comic.Slug != dv.Slug {
			comic = nil
		}
		var last *data.HistoryItem
		if comic != nil {
			if h, ok := s.LastRead(comic.Slug); ok {
				last = &h
			}
		}
		r.details.SetComic(comic, comic != nil && s.IsBookmarked(comic.Slug), last)
	}

	r.list.Empty = "Nothing loaded"
	switch s.View.Kind() {
	case state.Home:
		r.list.SetItems(homeItems(s))
	case state.Ongoing, state.Completed, state.GenreDetail, state.Search:
		r.list.SetItems(comicItems(s, s.List, ""))
	case state.History:
		r.list.Empty = "No reading history yet"
		r.list.SetItems(historyItems(s))
	case state.Bookmarks:
		r.list.Empty = "No bookmarks yet"
		r.list.SetItems(bookmarkItems(s))
	case state.GenresList:
		r.list.SetItems(genreItems(s.Genres))
	}
	return cmd
}

func (r *RootScreen) probe(ch *data.ChapterDetail) tea.Cmd {
	if r.prober == nil || len(ch.Images) == 0 {
		return nil
	}
	ctx := r.ctx
	return func() tea.Msg {
		return probedMsg{chapter: ch, sizes: r.prober.Probe(ctx, ch.Images)}
	}
}

func (r *RootScreen) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}
	if r.filter.Active() {
		action, cmd := r.filter.Update(msg)
		if action != nil {
			return tea.Batch(cmd, r.dispatch(action))
		}
		return cmd
	}

	switch {
	case key.Matches(msg, r.keys.Quit):
		r.reader.Close()
		return tea.Quit
	case key.Matches(msg, r.keys.Home):
		return r.dispatch(state.GoHome{})
	case key.Matches(msg, r.keys.Ongoing):
		return r.dispatch(state.GoOngoing{Page: 1})
	case key.Matches(msg, r.keys.Completed):
		return r.dispatch(state.GoCompleted{Page: 1})
	case key.Matches(msg, r.keys.Genres):
		return r.dispatch(state.GoGenres{})
	case key.Matches(msg, r.keys.History):
		return r.dispatch(state.GoHistory{})
	case key.Matches(msg, r.keys.Bookmarks):
		return r.dispatch(state.GoBookmarks{})
	case key.Matches(msg, r.keys.Search):
		return r.filter.Open(r.state().Genres, false)
	}

	switch v := r.view().(type) {
	case state.ReaderView:
		return r.readerKey(msg, v)
	case state.DetailView:
		return r.detailKey(msg, v)
	}
	return r.browseKey(msg)
}

func (r *RootScreen) readerKey(msg tea.KeyMsg, v state.ReaderView) tea.Cmd {
	s := r.state()
	if r.reader.Picking() {
		return r.pickerKey(msg)
	}
	switch {
	case key.Matches(msg, r.keys.Back):
		if v.ComicSlug != "" {
			return r.dispatch(state.GoDetail{Slug: v.ComicSlug})
		}
		return r.dispatch(state.GoHome{})
	case key.Matches(msg, r.keys.NextCh):
		return r.dispatch(state.NextChapter{})
	case key.Matches(msg, r.keys.PrevCh):
		return r.dispatch(state.PrevChapter{})
	case key.Matches(msg, r.keys.Chrome):
		r.reader.ToggleChrome()
		return nil
	case key.Matches(msg, r.keys.Chapters):
		if s.Comic != nil && s.Comic.Slug == v.ComicSlug {
			r.reader.OpenPicker(s.Comic.Chapters)
		}
		return nil
	case key.Matches(msg, r.keys.Bookmark):
		if s.Comic != nil {
			return r.dispatch(state.ToggleBookmark{Comic: *s.Comic})
		}
		return nil
	case key.Matches(msg, r.keys.Export):
		return r.export(s.Comic, v.ChapterSlug)
	}
	return r.reader.Update(msg)
}

// pickerKey drives the chapter picker. Picking the open chapter reloads it.
func (r *RootScreen) pickerKey(msg tea.KeyMsg) tea.Cmd {
	picker := r.reader.Picker()
	switch {
	case key.Matches(msg, r.keys.Up):
		picker.Prev()
	case key.Matches(msg, r.keys.Down):
		picker.Next()
	case key.Matches(msg, r.keys.Open):
		item := picker.Selected()
		r.reader.ClosePicker()
		if item != nil {
			return r.dispatch(state.GoChapter{Slug: item.ID})
		}
	case key.Matches(msg, r.keys.Back), key.Matches(msg, r.keys.Chapters):
		r.reader.ClosePicker()
	}
	return nil
}

func (r *RootScreen) detailKey(msg tea.KeyMsg, v state.DetailView) tea.Cmd {
	s := r.state()
	switch {
	case key.Matches(msg, r.keys.Up):
		r.details.Prev()
	case key.Matches(msg, r.keys.Down):
		r.details.Next()
	case key.Matches(msg, r.keys.Open):
		if ch, ok := r.details.SelectedChapter(); ok {
			return r.dispatch(state.GoChapter{Slug: ch.Slug})
		}
	case key.Matches(msg, r.keys.Continue):
		return r.dispatch(state.ContinueReading{})
	case key.Matches(msg, r.keys.Bookmark):
		if s.Comic != nil && s.Comic.Slug == v.Slug {
			return r.dispatch(state.ToggleBookmark{Comic: *s.Comic})
		}
	case key.Matches(msg, r.keys.Export):
		if ch, ok := r.details.SelectedChapter(); ok {
			return r.export(s.Comic, ch.Slug)
		}
	case key.Matches(msg, r.keys.Refresh):
		return r.dispatch(state.GoDetail{Slug: v.Slug})
	case key.Matches(msg, r.keys.Back):
		return r.dispatch(state.GoHome{})
	}
	return nil
}

func (r *RootScreen) browseKey(msg tea.KeyMsg) tea.Cmd {
	s := r.state()
	switch {
	case key.Matches(msg, r.keys.Up):
		r.list.Prev()
	case key.Matches(msg, r.keys.Down):
		r.list.Next()
	case key.Matches(msg, r.keys.Open):
		item := r.list.Selected()
		if item == nil {
			return nil
		}
		if s.View.Kind() == state.GenresList {
			return r.dispatch(state.GoGenre{Genre: data.Genre{Title: item.Title, Slug: item.ID}, Page: 1})
		}
		return r.dispatch(state.GoDetail{Slug: item.ID})
	case key.Matches(msg, r.keys.Filter):
		return r.filter.Open(s.Genres, true)
	case key.Matches(msg, r.keys.NextPage):
		if page, ok := currentPage(s.View); ok && hasNextPage(s.Pagination, page) {
			return r.dispatch(state.GoPage{Page: page + 1})
		}
	case key.Matches(msg, r.keys.PrevPage):
		if page, ok := currentPage(s.View); ok && page > 1 {
			return r.dispatch(state.GoPage{Page: page - 1})
		}
	case key.Matches(msg, r.keys.Refresh):
		if page, ok := currentPage(s.View); ok {
			return r.dispatch(state.GoPage{Page: page})
		}
		if s.View.Kind() == state.Home {
			return r.dispatch(state.GoHome{})
		}
	case key.Matches(msg, r.keys.Back):
		if s.View.Kind() != state.Home {
			return r.dispatch(state.GoHome{})
		}
	}
	return nil
}

func (r *RootScreen) export(comic *data.Comic, slug string) tea.Cmd {
	if r.exporter == nil || slug == "" {
		return nil
	}
	var c *data.Comic
	if comic != nil {
		copied := *comic
		c = &copied
	}
	r.notice = styles.StatusDownloading.Render("Exporting " + slug + "...")

	ctx := r.ctx
	cmds := []tea.Cmd{func() tea.Msg {
		path, err := r.exporter.Export(ctx, c, slug)
		return exportDoneMsg{slug: slug, path: path, err: err}
	}}
	if !r.listening {
		r.listening = true
		cmds = append(cmds, r.listenForProgress())
	}
	return tea.Batch(cmds...)
}

func (r *RootScreen) listenForProgress() tea.Cmd {
	progress := r.exporter.Progress()
	return func() tea.Msg {
		return exportProgressMsg(<-progress)
	}
}

func (r *RootScreen) resize(width, height int) {
	r.width = width
	r.height = height
	r.help.Width = width
	r.list.Width = max(width-4, 10)
	r.list.Height = max(height-10, 3)
	r.details.SetSize(width, height)
	r.reader.SetSize(width, height)
	r.filter.SetWidth(width)
	r.progress.SetWidth(max(width-4, 10))
}

func (r *RootScreen) View() string {
	s := r.state()

	if rv, ok := s.View.(state.ReaderView); ok && !r.filter.Active() {
		title := rv.ChapterSlug
		if ch := r.reader.Chapter(); ch != nil && ch.Title != "" {
			title = ch.Title
		}
		bookmarked := rv.ComicSlug != "" && s.IsBookmarked(rv.ComicSlug)
		bindings := r.keys.readerHelp()
		if r.reader.Picking() {
			bindings = r.keys.pickerHelp()
		}
		return r.reader.View(title, bookmarked, s.Loading, r.help.ShortHelpView(bindings))
	}

	heading := state.Title(s.View)
	if dv, ok := s.View.(state.DetailView); ok {
		heading = "Detail: " + dv.Slug
	}
	if s.Loading {
		heading += " " + r.spinner.View()
	}

	var body string
	bindings := r.keys.browseHelp()
	switch {
	case r.filter.Active():
		body = r.filter.View()
	case s.View.Kind() == state.Detail:
		body = r.details.View()
		bindings = r.keys.detailHelp()
	default:
		body = r.list.View()
		if footer := paginationFooter(s); footer != "" {
			body = lipgloss.JoinVertical(lipgloss.Left, body, "", footer)
		}
	}

	parts := []string{
		r.renderTabs(s.View.Kind()),
		styles.TitleStyle.Render(heading),
		body,
	}
	if p := r.progress.View(); p != "" {
		parts = append(parts, p)
	}
	if r.notice != "" {
		parts = append(parts, r.notice)
	}
	parts = append(parts, styles.HelpStyle.Render(r.help.ShortHelpView(bindings)))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

var tabs = []struct {
	kind  state.Kind
	label string
}{
	{state.Home, "Home"},
	{state.Ongoing, "Ongoing"},
	{state.Completed, "Completed"},
	{state.GenresList, "Genres"},
	{state.History, "History"},
	{state.Bookmarks, "Bookmarks"},
}

func (r *RootScreen) renderTabs(active state.Kind) string {
	rendered := make([]string, 0, len(tabs))
	for i, t := range tabs {
		label := fmt.Sprintf("%d %s", i+1, t.label)
		if t.kind == active {
			rendered = append(rendered, styles.ActiveTabStyle.Render(label))
		} else {
			rendered = append(rendered, styles.InactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func currentPage(v state.View) (int, bool) {
	switch v := v.(type) {
	case state.StatusView:
		return v.Page, true
	case state.GenreView:
		return v.Page, true
	case state.SearchView:
		return v.Page, true
	}
	return 0, false
}

func hasNextPage(p data.Pagination, page int) bool {
	if p.HasNextPage {
		return true
	}
	return p.TotalPages > 0 && page < p.TotalPages
}

func paginationFooter(s state.State) string {
	page, ok := currentPage(s.View)
	if !ok {
		return ""
	}
	text := fmt.Sprintf("Page %d", page)
	if s.Pagination.TotalPages > 0 {
		text += fmt.Sprintf(" of %d", s.Pagination.TotalPages)
	}
	if hasNextPage(s.Pagination, page) {
		text += " • n: next"
	}
	if page > 1 {
		text += " • p: prev"
	}
	return styles.MutedStyle.Render(text)
}

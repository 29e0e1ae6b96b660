package screens

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/komik/pkg/data"
	"github.com/kerbaras/komik/pkg/services"
	"github.com/kerbaras/komik/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct{}

func comics(prefix string, n int) []data.Comic {
	out := make([]data.Comic, n)
	for i := range out {
		slug := fmt.Sprintf("%s-%d", prefix, i)
		out[i] = data.Comic{Slug: slug, Title: "Title " + slug, Type: "Manhwa"}
	}
	return out
}

func (fakeSource) Home(ctx context.Context) (*data.HomeData, error) {
	return &data.HomeData{
		HotUpdates:     comics("hot", 2),
		LatestReleases: comics("latest", 20),
		ProjectUpdates: comics("project", 1),
	}, nil
}

func (fakeSource) Detail(ctx context.Context, slug string) (*data.Comic, error) {
	return &data.Comic{
		Slug:     slug,
		Title:    "Title " + slug,
		Status:   "Ongoing",
		Synopsis: "Synopsis of " + slug,
		Chapters: []data.Chapter{
			{Slug: slug + "-ch-3", Title: "Chapter 3"},
			{Slug: slug + "-ch-2", Title: "Chapter 2"},
			{Slug: slug + "-ch-1", Title: "Chapter 1"},
		},
	}, nil
}

func (fakeSource) Chapter(ctx context.Context, slug string) (*data.ChapterDetail, error) {
	return &data.ChapterDetail{
		Title:  "Read " + slug,
		Images: []string{"https://img/1.jpg", "https://img/2.jpg", "https://img/3.jpg"},
	}, nil
}

func (fakeSource) List(ctx context.Context, status string, page int) (*data.ComicPage, error) {
	return &data.ComicPage{
		Comics:     comics(fmt.Sprintf("%s-p%d", status, page), 5),
		Pagination: data.Pagination{CurrentPage: page, HasNextPage: page < 3, TotalPages: 3},
	}, nil
}

func (fakeSource) Genres(ctx context.Context) ([]data.Genre, error) {
	return []data.Genre{{Title: "Action", Slug: "action"}, {Title: "Romance", Slug: "romance"}}, nil
}

func (fakeSource) Genre(ctx context.Context, slug string, page int) (*data.ComicPage, error) {
	return &data.ComicPage{Comics: comics(slug, 3), Pagination: data.Pagination{CurrentPage: page}}, nil
}

func (fakeSource) Search(ctx context.Context, query string, page int) (*data.ComicPage, error) {
	return &data.ComicPage{Comics: comics("q-"+query, 2), Pagination: data.Pagination{CurrentPage: page}}, nil
}

type memKV map[string]string

func (m memKV) Get(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memKV) Put(key, value string) error {
	m[key] = value
	return nil
}

func newRoot(t *testing.T) *RootScreen {
	t.Helper()
	store := data.NewStore(memKV{}, nil)
	store.Load()
	r := NewRootScreen(Options{Controller: services.NewController(fakeSource{}, store, nil)})
	r.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	drive(r, r.Init())
	return r
}

// drive runs cmd and feeds controller results back until none remain.
// Timer-based messages are dropped.
func drive(r *RootScreen, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drive(r, c)
		}
	case actionMsg, probedMsg:
		_, next := r.Update(msg)
		drive(r, next)
	}
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "pgdown":
		return tea.KeyMsg{Type: tea.KeyPgDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends k and runs the resulting fetches.
func press(r *RootScreen, k string) {
	_, cmd := r.Update(keyMsg(k))
	drive(r, cmd)
}

func TestRootBootShowsHome(t *testing.T) {
	r := newRoot(t)

	s := r.controller.State()
	assert.Equal(t, state.Home, s.View.Kind())
	assert.False(t, s.Loading)
	assert.Len(t, s.Genres, 2)
	assert.Len(t, r.list.Items, 2+state.LatestReleasesShown+1)

	view := r.View()
	assert.Contains(t, view, "Hot Updates")
	assert.Contains(t, view, "Latest Releases")
	assert.Contains(t, view, "Title hot-0")
}

func TestRootPaginatesLists(t *testing.T) {
	r := newRoot(t)

	press(r, "2")
	assert.Equal(t, state.StatusView{Status: state.StatusOngoing, Page: 1}, r.controller.State().View)
	assert.Equal(t, "Ongoing-p1-0", r.list.Items[0].ID)

	press(r, "p")
	assert.Equal(t, 1, r.controller.State().View.(state.StatusView).Page, "no page before the first")

	press(r, "n")
	press(r, "n")
	assert.Equal(t, 3, r.controller.State().View.(state.StatusView).Page)
	assert.Contains(t, r.View(), "Page 3 of 3")

	press(r, "n")
	assert.Equal(t, 3, r.controller.State().View.(state.StatusView).Page, "no page after the last")

	press(r, "p")
	assert.Equal(t, "Ongoing-p2-0", r.list.Items[0].ID)
}

func TestRootOpensDetailAndRecordsHistory(t *testing.T) {
	r := newRoot(t)

	press(r, "down")
	press(r, "enter")

	s := r.controller.State()
	assert.Equal(t, state.DetailView{Slug: "hot-1"}, s.View)
	view := r.View()
	assert.Contains(t, view, "Title hot-1")
	assert.Contains(t, view, "Chapters (3 total)")

	press(r, "5")
	require.Len(t, r.list.Items, 1)
	assert.Equal(t, "hot-1", r.list.Items[0].ID)
}

func TestRootReaderSession(t *testing.T) {
	r := newRoot(t)
	press(r, "enter")
	require.Equal(t, state.Detail, r.controller.State().View.Kind())

	press(r, "r") // continue reading starts at the first chapter
	s := r.controller.State()
	assert.Equal(t, state.ReaderView{ComicSlug: "hot-0", ChapterSlug: "hot-0-ch-1"}, s.View)
	assert.True(t, r.reader.tracker.Attached())
	require.NotNil(t, r.reader.Chapter())
	assert.Contains(t, r.View(), "Page 1/3")
	assert.True(t, r.reader.ChromeVisible())

	h, ok := r.controller.State().LastRead("hot-0")
	require.True(t, ok)
	assert.Equal(t, "hot-0-ch-1", h.LastChapterSlug)

	// 3 pages of 75 rows in a 38 row viewport.
	press(r, "pgdown")
	press(r, "pgdown")
	assert.True(t, r.reader.ChromeVisible(), "chrome stays near the top")
	press(r, "pgdown")
	assert.False(t, r.reader.ChromeVisible())
	assert.Equal(t, 60, r.reader.Progress())

	press(r, "t")
	assert.True(t, r.reader.ChromeVisible())

	press(r, "esc")
	assert.Equal(t, state.DetailView{Slug: "hot-0"}, r.controller.State().View)
	assert.False(t, r.reader.tracker.Attached())
}

func click(r *RootScreen, y int) {
	r.Update(tea.MouseMsg{X: 10, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func TestRootReaderClickTogglesChrome(t *testing.T) {
	r := newRoot(t)
	press(r, "enter")
	press(r, "r")
	require.True(t, r.reader.ChromeVisible())

	click(r, 10)
	assert.False(t, r.reader.ChromeVisible())
	click(r, 10)
	assert.True(t, r.reader.ChromeVisible())

	click(r, 0) // header row
	assert.True(t, r.reader.ChromeVisible())
}

func TestRootReaderChapterPicker(t *testing.T) {
	r := newRoot(t)
	press(r, "enter")
	press(r, "r")
	require.Equal(t, "hot-0-ch-1", r.reader.Slug())

	press(r, "c")
	require.True(t, r.reader.Picking())
	picker := r.reader.Picker()
	require.Len(t, picker.Items, 3)
	assert.Equal(t, "hot-0-ch-1", picker.Selected().ID)
	assert.Contains(t, r.View(), "Chapter 3")

	press(r, "esc")
	assert.False(t, r.reader.Picking())
	assert.Equal(t, state.Reader, r.controller.State().View.Kind(), "esc closes only the picker")

	press(r, "c")
	press(r, "up")
	press(r, "enter")
	assert.False(t, r.reader.Picking())
	assert.Equal(t, state.ReaderView{ComicSlug: "hot-0", ChapterSlug: "hot-0-ch-2"}, r.controller.State().View)
	require.NotNil(t, r.reader.Chapter())
	assert.Equal(t, "Read hot-0-ch-2", r.reader.Chapter().Title)
}

func TestRootReaderPickerReloadsOpenChapter(t *testing.T) {
	r := newRoot(t)
	press(r, "enter")
	press(r, "r")
	first := r.reader.Chapter()
	require.NotNil(t, first)

	press(r, "c")
	press(r, "enter")
	assert.Equal(t, "hot-0-ch-1", r.reader.Slug())
	require.NotNil(t, r.reader.Chapter())
	assert.NotSame(t, first, r.reader.Chapter())
	assert.False(t, r.controller.State().Loading)
}

func TestRootOpensSelectedChapter(t *testing.T) {
	r := newRoot(t)
	press(r, "enter")

	press(r, "down")
	press(r, "enter")
	assert.Equal(t, "hot-0-ch-2", r.controller.State().View.(state.ReaderView).ChapterSlug)
}

func TestRootBookmarks(t *testing.T) {
	r := newRoot(t)
	press(r, "enter")

	press(r, "b")
	assert.True(t, r.controller.State().IsBookmarked("hot-0"))
	assert.Contains(t, r.View(), "★")

	press(r, "6")
	require.Len(t, r.list.Items, 1)
	assert.Equal(t, "hot-0", r.list.Items[0].ID)

	press(r, "enter")
	press(r, "b")
	press(r, "6")
	assert.Empty(t, r.list.Items)
	assert.Contains(t, r.View(), "No bookmarks yet")
}

func TestRootGenres(t *testing.T) {
	r := newRoot(t)

	press(r, "4")
	require.Len(t, r.list.Items, 2)
	press(r, "down")
	press(r, "enter")

	assert.Equal(t, state.GenreView{Genre: data.Genre{Title: "Romance", Slug: "romance"}, Page: 1}, r.controller.State().View)
	assert.Equal(t, "romance-0", r.list.Items[0].ID)
}

func TestRootSearch(t *testing.T) {
	r := newRoot(t)

	r.Update(keyMsg("/"))
	require.True(t, r.filter.Active())
	for _, ch := range "solo" {
		r.Update(keyMsg(string(ch)))
	}
	assert.Equal(t, state.Home, r.controller.State().View.Kind(), "typing does not navigate")

	press(r, "enter")
	assert.False(t, r.filter.Active())
	assert.Equal(t, state.SearchView{Query: "solo", Page: 1}, r.controller.State().View)
	assert.Equal(t, "q-solo-0", r.list.Items[0].ID)
}

func TestRootFilterEscape(t *testing.T) {
	r := newRoot(t)

	r.Update(keyMsg("f"))
	require.True(t, r.filter.Active())
	press(r, "esc")
	assert.False(t, r.filter.Active())
	assert.Equal(t, state.Home, r.controller.State().View.Kind())
}

func TestRootScrollResetOnNavigation(t *testing.T) {
	r := newRoot(t)
	press(r, "down")
	press(r, "down")
	require.Equal(t, 2, r.list.SelectedIndex)

	press(r, "3")
	assert.Equal(t, 0, r.list.SelectedIndex)
}

func TestRootQuit(t *testing.T) {
	r := newRoot(t)

	_, cmd := r.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

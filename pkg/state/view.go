package state

import "github.com/kerbaras/komik/pkg/data"

type Kind int

const (
	Home Kind = iota
	Ongoing
	Completed
	History
	Bookmarks
	Detail
	Reader
	GenresList
	GenreDetail
	Search
)

var kindNames = [...]string{
	Home:        "home",
	Ongoing:     "ongoing",
	Completed:   "completed",
	History:     "history",
	Bookmarks:   "bookmarks",
	Detail:      "detail",
	Reader:      "reader",
	GenresList:  "genres",
	GenreDetail: "genre",
	Search:      "search",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

const (
	StatusOngoing   = "Ongoing"
	StatusCompleted = "Completed"
)

// View is the active screen. Each implementation carries exactly what is
// needed to reproduce it.
type View interface {
	Kind() Kind
}

type HomeView struct{}

// StatusView is the Ongoing or Completed list.
type StatusView struct {
	Status string
	Page   int
}

type HistoryView struct{}

type BookmarksView struct{}

type DetailView struct {
	Slug string
}

type ReaderView struct {
	ComicSlug   string
	ChapterSlug string
}

type GenresView struct{}

type GenreView struct {
	Genre data.Genre
	Page  int
}

type SearchView struct {
	Query string
	Page  int
}

func (HomeView) Kind() Kind      { return Home }
func (HistoryView) Kind() Kind   { return History }
func (BookmarksView) Kind() Kind { return Bookmarks }
func (DetailView) Kind() Kind    { return Detail }
func (ReaderView) Kind() Kind    { return Reader }
func (GenresView) Kind() Kind    { return GenresList }
func (GenreView) Kind() Kind     { return GenreDetail }
func (SearchView) Kind() Kind    { return Search }

func (v StatusView) Kind() Kind {
	if v.Status == StatusOngoing {
		return Ongoing
	}
	return Completed
}

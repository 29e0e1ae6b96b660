package state

import "github.com/kerbaras/komik/pkg/data"

// Category groups fetches that write the same slot. A result is only
// committed if it answers the newest request of its category.
type Category int

const (
	HomeFetch Category = iota
	ListFetch
	GenresFetch
	DetailFetch
	ChapterFetch

	numCategories
)

func (c Category) String() string {
	switch c {
	case HomeFetch:
		return "home"
	case ListFetch:
		return "list"
	case GenresFetch:
		return "genres"
	case DetailFetch:
		return "detail"
	case ChapterFetch:
		return "chapter"
	}
	return "unknown"
}

// State is the whole client state. Reduce never mutates its input.
type State struct {
	View    View
	Loading bool

	Home       *data.HomeData
	List       []data.Comic
	Pagination data.Pagination
	Genres     []data.Genre
	Comic      *data.Comic
	Chapter    *data.ChapterDetail

	History   []data.HistoryItem
	Bookmarks []data.BookmarkItem

	seq [numCategories]uint64
}

func New() State {
	return State{
		View:       HomeView{},
		Pagination: data.Pagination{CurrentPage: 1},
	}
}

// Seq returns the newest sequence number issued for c.
func (s State) Seq(c Category) uint64 {
	return s.seq[c]
}

func (s State) IsBookmarked(slug string) bool {
	for _, b := range s.Bookmarks {
		if b.Slug == slug {
			return true
		}
	}
	return false
}

func (s State) LastRead(slug string) (data.HistoryItem, bool) {
	for _, h := range s.History {
		if h.Slug == slug {
			return h, true
		}
	}
	return data.HistoryItem{}, false
}

// Action is an input to Reduce.
type Action interface{ isAction() }

type (
	Boot        struct{}
	GoHome      struct{}
	GoOngoing   struct{ Page int }
	GoCompleted struct{ Page int }
	GoGenre     struct {
		Genre data.Genre
		Page  int
	}
	GoSearch struct {
		Query string
		Page  int
	}
	GoDetail    struct{ Slug string }
	GoChapter   struct{ Slug string }
	GoHistory   struct{}
	GoBookmarks struct{}
	GoGenres    struct{}

	// GoPage re-requests the current paginated view at Page.
	GoPage          struct{ Page int }
	ContinueReading struct{}
	NextChapter     struct{}
	PrevChapter     struct{}
	ToggleBookmark  struct{ Comic data.Comic }
	ApplyFilter     struct {
		Filter    data.FilterOptions
		SearchBox string
	}

	HomeLoaded struct {
		Seq  uint64
		Home *data.HomeData
	}
	ListLoaded struct {
		Seq  uint64
		Page *data.ComicPage
	}
	GenresLoaded struct {
		Seq    uint64
		Genres []data.Genre
	}
	DetailLoaded struct {
		Seq   uint64
		Comic *data.Comic
	}
	ChapterLoaded struct {
		Seq     uint64
		Slug    string
		Chapter *data.ChapterDetail
	}
	FetchFailed struct {
		Category Category
		Seq      uint64
		Err      error
	}

	// LibraryChanged carries a fresh snapshot of the persisted lists.
	LibraryChanged struct {
		History   []data.HistoryItem
		Bookmarks []data.BookmarkItem
	}
)

func (Boot) isAction()            {}
func (GoHome) isAction()          {}
func (GoOngoing) isAction()       {}
func (GoCompleted) isAction()     {}
func (GoGenre) isAction()         {}
func (GoSearch) isAction()        {}
func (GoDetail) isAction()        {}
func (GoChapter) isAction()       {}
func (GoHistory) isAction()       {}
func (GoBookmarks) isAction()     {}
func (GoGenres) isAction()        {}
func (GoPage) isAction()          {}
func (ContinueReading) isAction() {}
func (NextChapter) isAction()     {}
func (PrevChapter) isAction()     {}
func (ToggleBookmark) isAction()  {}
func (ApplyFilter) isAction()     {}
func (HomeLoaded) isAction()      {}
func (ListLoaded) isAction()      {}
func (GenresLoaded) isAction()    {}
func (DetailLoaded) isAction()    {}
func (ChapterLoaded) isAction()   {}
func (FetchFailed) isAction()     {}
func (LibraryChanged) isAction()  {}

// Effect is a side effect requested by Reduce.
type Effect interface{ isEffect() }

type (
	Fetch struct {
		Category Category
		Seq      uint64
		Request  Request
	}
	RecordHistory struct {
		Comic   data.Comic
		Chapter *data.Chapter
	}
	SaveBookmark struct{ Comic data.Comic }
	ScrollTop    struct{}
)

func (Fetch) isEffect()         {}
func (RecordHistory) isEffect() {}
func (SaveBookmark) isEffect()  {}
func (ScrollTop) isEffect()     {}

// Request describes one remote call.
type Request interface{ isRequest() }

type (
	HomeRequest   struct{}
	ListRequest   struct {
		Status string
		Page   int
	}
	GenresRequest struct{}
	GenreRequest  struct {
		Slug string
		Page int
	}
	SearchRequest struct {
		Query string
		Page  int
	}
	DetailRequest  struct{ Slug string }
	ChapterRequest struct{ Slug string }
)

func (HomeRequest) isRequest()    {}
func (ListRequest) isRequest()    {}
func (GenresRequest) isRequest()  {}
func (GenreRequest) isRequest()   {}
func (SearchRequest) isRequest()  {}
func (DetailRequest) isRequest()  {}
func (ChapterRequest) isRequest() {}

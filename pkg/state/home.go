package state

import "github.com/kerbaras/komik/pkg/data"

// LatestReleasesShown caps the latest-releases grid on the home screen.
const LatestReleasesShown = 15

type HomeSections struct {
	Hot     []data.Comic
	Latest  []data.Comic
	Project []data.Comic
}

// Sections returns what the home screen renders for h.
func Sections(h *data.HomeData) HomeSections {
	if h == nil {
		return HomeSections{}
	}
	latest := h.LatestReleases
	if len(latest) > LatestReleasesShown {
		latest = latest[:LatestReleasesShown]
	}
	return HomeSections{
		Hot:     h.HotUpdates,
		Latest:  latest,
		Project: h.ProjectUpdates,
	}
}

// Title is the heading of list-like views.
func Title(v View) string {
	switch v := v.(type) {
	case StatusView:
		if v.Status == StatusOngoing {
			return "Ongoing"
		}
		return "Completed"
	case SearchView:
		return "Search: " + v.Query
	case GenreView:
		return "Genre: " + v.Genre.Title
	case HistoryView:
		return "History"
	case BookmarksView:
		return "Bookmarks"
	case GenresView:
		return "Genres"
	case DetailView:
		return "Detail"
	case ReaderView:
		return "Reader"
	}
	return "Home"
}

// Paginated reports whether v accepts GoPage.
func Paginated(v View) bool {
	switch v.(type) {
	case StatusView, GenreView, SearchView:
		return true
	}
	return false
}

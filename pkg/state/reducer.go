package state

import (
	"strings"

	"github.com/kerbaras/komik/pkg/data"
)

// Reduce maps (state, action) to the next state and the side effects the
// caller must run. It is pure.
func Reduce(s State, a Action) (State, []Effect) {
	switch a := a.(type) {
	case Boot:
		s, genres := s.fetch(GenresRequest{})
		s, effects := Reduce(s, GoHome{})
		return s, append([]Effect{genres}, effects...)

	case GoHome:
		return s.navigate(HomeView{}, HomeRequest{})

	case GoOngoing:
		p := page(a.Page)
		return s.navigate(StatusView{Status: StatusOngoing, Page: p}, ListRequest{Status: StatusOngoing, Page: p})

	case GoCompleted:
		p := page(a.Page)
		return s.navigate(StatusView{Status: StatusCompleted, Page: p}, ListRequest{Status: StatusCompleted, Page: p})

	case GoGenre:
		if a.Genre.Slug == "" {
			return s, nil
		}
		p := page(a.Page)
		return s.navigate(GenreView{Genre: a.Genre, Page: p}, GenreRequest{Slug: a.Genre.Slug, Page: p})

	case GoSearch:
		q := strings.TrimSpace(a.Query)
		if q == "" {
			return s, nil
		}
		p := page(a.Page)
		return s.navigate(SearchView{Query: q, Page: p}, SearchRequest{Query: q, Page: p})

	case GoDetail:
		if a.Slug == "" {
			return s, nil
		}
		return s.navigate(DetailView{Slug: a.Slug}, DetailRequest{Slug: a.Slug})

	case GoChapter:
		if a.Slug == "" {
			return s, nil
		}
		var comicSlug string
		if s.Comic != nil {
			comicSlug = s.Comic.Slug
		}
		s.View = ReaderView{ComicSlug: comicSlug, ChapterSlug: a.Slug}
		s, fetch := s.fetch(ChapterRequest{Slug: a.Slug})
		// The reader keeps its own scroll position.
		return s, []Effect{fetch}

	case GoHistory:
		s.View = HistoryView{}
		return s, []Effect{ScrollTop{}}

	case GoBookmarks:
		s.View = BookmarksView{}
		return s, []Effect{ScrollTop{}}

	case GoGenres:
		s.View = GenresView{}
		return s, []Effect{ScrollTop{}}

	case GoPage:
		if a.Page < 1 {
			return s, nil
		}
		switch v := s.View.(type) {
		case StatusView:
			if v.Status == StatusOngoing {
				return Reduce(s, GoOngoing{Page: a.Page})
			}
			return Reduce(s, GoCompleted{Page: a.Page})
		case GenreView:
			return Reduce(s, GoGenre{Genre: v.Genre, Page: a.Page})
		case SearchView:
			return Reduce(s, GoSearch{Query: v.Query, Page: a.Page})
		}
		return s, nil

	case ContinueReading:
		if s.View.Kind() != Detail || s.Comic == nil {
			return s, nil
		}
		if h, ok := s.LastRead(s.Comic.Slug); ok && h.LastChapterSlug != "" {
			return Reduce(s, GoChapter{Slug: h.LastChapterSlug})
		}
		if first, ok := s.Comic.FirstChapter(); ok {
			return Reduce(s, GoChapter{Slug: first.Slug})
		}
		return s, nil

	case NextChapter:
		if s.View.Kind() != Reader || s.Chapter == nil || s.Chapter.Navigation.Next == nil {
			return s, nil
		}
		return Reduce(s, GoChapter{Slug: *s.Chapter.Navigation.Next})

	case PrevChapter:
		if s.View.Kind() != Reader || s.Chapter == nil || s.Chapter.Navigation.Prev == nil {
			return s, nil
		}
		return Reduce(s, GoChapter{Slug: *s.Chapter.Navigation.Prev})

	case ToggleBookmark:
		if a.Comic.Slug == "" {
			return s, nil
		}
		return s, []Effect{SaveBookmark{Comic: a.Comic}}

	case ApplyFilter:
		next, ok := ResolveFilter(a.Filter, a.SearchBox, s.Genres)
		if !ok {
			return s, nil
		}
		return Reduce(s, next)

	case HomeLoaded:
		if !s.current(HomeFetch, a.Seq) {
			return s, nil
		}
		s.Loading = false
		s.Home = a.Home
		return s, nil

	case ListLoaded:
		if !s.current(ListFetch, a.Seq) {
			return s, nil
		}
		s.Loading = false
		s.List = a.Page.Comics
		s.Pagination = a.Page.Pagination
		return s, nil

	case GenresLoaded:
		if !s.current(GenresFetch, a.Seq) {
			return s, nil
		}
		s.Genres = a.Genres
		return s, nil

	case DetailLoaded:
		if !s.current(DetailFetch, a.Seq) {
			return s, nil
		}
		s.Loading = false
		s.Comic = a.Comic
		return s, []Effect{RecordHistory{Comic: *a.Comic}}

	case ChapterLoaded:
		if !s.current(ChapterFetch, a.Seq) {
			return s, nil
		}
		s.Loading = false
		s.Chapter = a.Chapter
		if s.Comic == nil {
			return s, nil
		}
		return s, []Effect{RecordHistory{
			Comic:   *s.Comic,
			Chapter: &data.Chapter{Slug: a.Slug, Title: a.Chapter.Title},
		}}

	case FetchFailed:
		if !s.current(a.Category, a.Seq) {
			return s, nil
		}
		if a.Category != GenresFetch {
			s.Loading = false
		}
		return s, nil

	case LibraryChanged:
		s.History = a.History
		s.Bookmarks = a.Bookmarks
		return s, nil
	}

	return s, nil
}

func (s State) navigate(v View, req Request) (State, []Effect) {
	s.View = v
	s, fetch := s.fetch(req)
	return s, []Effect{fetch, ScrollTop{}}
}

// fetch issues the next sequence number for the request's category. The
// genre index loads in the background and leaves Loading alone.
func (s State) fetch(req Request) (State, Fetch) {
	c := categoryOf(req)
	s.seq[c]++
	if c != GenresFetch {
		s.Loading = true
	}
	return s, Fetch{Category: c, Seq: s.seq[c], Request: req}
}

func (s State) current(c Category, seq uint64) bool {
	return seq == s.seq[c]
}

func categoryOf(req Request) Category {
	switch req.(type) {
	case HomeRequest:
		return HomeFetch
	case GenresRequest:
		return GenresFetch
	case DetailRequest:
		return DetailFetch
	case ChapterRequest:
		return ChapterFetch
	}
	return ListFetch
}

func page(p int) int {
	if p < 1 {
		return 1
	}
	return p
}

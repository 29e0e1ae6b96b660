package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/kerbaras/komik/pkg/data"
	"github.com/kerbaras/komik/pkg/sources"
	"github.com/kerbaras/komik/pkg/state"
)

var errUnknownRequest = errors.New("unknown request")

// Job is a pending remote call. It runs off the event loop and reports back
// with an action for Dispatch.
type Job func(ctx context.Context) state.Action

// Controller owns the client state and runs the reducer's effects. It is
// not safe for concurrent use: Dispatch must be called from one goroutine.
type Controller struct {
	source sources.Source
	store  *data.Store
	log    *slog.Logger

	state        state.State
	scrollResets uint64
}

func NewController(source sources.Source, store *data.Store, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	c := &Controller{
		source: source,
		store:  store,
		log:    log,
		state:  state.New(),
	}
	c.refreshLibrary()
	return c
}

func (c *Controller) State() state.State {
	return c.state
}

// ScrollResets counts transitions that asked for the viewport to return to
// the top.
func (c *Controller) ScrollResets() uint64 {
	return c.scrollResets
}

// Dispatch applies a to the state, runs local effects and returns the
// fetches to perform.
func (c *Controller) Dispatch(a state.Action) []Job {
	if f, ok := a.(state.FetchFailed); ok {
		c.log.Warn("fetch failed", "category", f.Category, "seq", f.Seq, "error", f.Err)
	}

	next, effects := state.Reduce(c.state, a)
	c.state = next

	var jobs []Job
	libraryChanged := false
	for _, e := range effects {
		switch e := e.(type) {
		case state.Fetch:
			c.log.Debug("fetch", "category", e.Category, "seq", e.Seq, "request", e.Request)
			jobs = append(jobs, c.job(e))
		case state.RecordHistory:
			if err := c.store.RecordHistory(e.Comic, e.Chapter); err != nil {
				c.log.Error("failed to record history", "slug", e.Comic.Slug, "error", err)
			}
			libraryChanged = true
		case state.SaveBookmark:
			on, err := c.store.ToggleBookmark(e.Comic)
			if err != nil {
				c.log.Error("failed to save bookmark", "slug", e.Comic.Slug, "error", err)
			}
			c.log.Info("bookmark toggled", "slug", e.Comic.Slug, "bookmarked", on)
			libraryChanged = true
		case state.ScrollTop:
			c.scrollResets++
		}
	}
	if libraryChanged {
		c.refreshLibrary()
	}
	return jobs
}

// Run dispatches a and performs every resulting fetch inline until none
// remain. The state stays fail-soft; the failures are returned for callers
// that want to report them.
func (c *Controller) Run(ctx context.Context, a state.Action) error {
	var errs []error
	queue := c.Dispatch(a)
	for len(queue) > 0 {
		job := queue[0]
		result := job(ctx)
		if f, ok := result.(state.FetchFailed); ok {
			errs = append(errs, fmt.Errorf("%s: %w", f.Category, f.Err))
		}
		queue = append(queue[1:], c.Dispatch(result)...)
	}
	return errors.Join(errs...)
}

func (c *Controller) refreshLibrary() {
	c.state, _ = state.Reduce(c.state, state.LibraryChanged{
		History:   c.store.History(),
		Bookmarks: c.store.Bookmarks(),
	})
}

func (c *Controller) job(f state.Fetch) Job {
	failed := func(err error) state.Action {
		return state.FetchFailed{Category: f.Category, Seq: f.Seq, Err: err}
	}

	return func(ctx context.Context) state.Action {
		switch r := f.Request.(type) {
		case state.HomeRequest:
			home, err := c.source.Home(ctx)
			if err == nil && home == nil {
				err = sources.ErrNoPayload
			}
			if err != nil {
				return failed(err)
			}
			return state.HomeLoaded{Seq: f.Seq, Home: home}

		case state.ListRequest:
			page, err := c.source.List(ctx, r.Status, r.Page)
			if err == nil && page == nil {
				err = sources.ErrNoPayload
			}
			if err != nil {
				return failed(err)
			}
			return state.ListLoaded{Seq: f.Seq, Page: page}

		case state.GenreRequest:
			page, err := c.source.Genre(ctx, r.Slug, r.Page)
			if err == nil && page == nil {
				err = sources.ErrNoPayload
			}
			if err != nil {
				return failed(err)
			}
			return state.ListLoaded{Seq: f.Seq, Page: page}

		case state.SearchRequest:
			page, err := c.source.Search(ctx, r.Query, r.Page)
			if err == nil && page == nil {
				err = sources.ErrNoPayload
			}
			if err != nil {
				return failed(err)
			}
			return state.ListLoaded{Seq: f.Seq, Page: page}

		case state.GenresRequest:
			genres, err := c.source.Genres(ctx)
			if err != nil {
				return failed(err)
			}
			return state.GenresLoaded{Seq: f.Seq, Genres: genres}

		case state.DetailRequest:
			comic, err := c.source.Detail(ctx, r.Slug)
			if err == nil && comic == nil {
				err = sources.ErrNoPayload
			}
			if err != nil {
				return failed(err)
			}
			return state.DetailLoaded{Seq: f.Seq, Comic: comic}

		case state.ChapterRequest:
			ch, err := c.source.Chapter(ctx, r.Slug)
			if err == nil && ch == nil {
				err = sources.ErrNoPayload
			}
			if err != nil {
				return failed(err)
			}
			return state.ChapterLoaded{Seq: f.Seq, Slug: r.Slug, Chapter: ch}
		}
		return failed(errUnknownRequest)
	}
}

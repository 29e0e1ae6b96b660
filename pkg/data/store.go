package data

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"
)

const (
	HistoryKey   = "history"
	BookmarksKey = "bookmarks"

	MaxHistory = 50
)

// KV is the durable backing of a Store.
type KV interface {
	Get(key string) (string, bool, error)
	Put(key, value string) error
}

// Store keeps reading history and bookmarks in memory and writes the whole
// list through to the KV after every mutation. It is not safe for concurrent
// use; callers mutate it from a single goroutine.
type Store struct {
	kv        KV
	log       *slog.Logger
	now       func() time.Time
	lastStamp int64

	history   []HistoryItem
	bookmarks []BookmarkItem
}

func NewStore(kv KV, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		kv:        kv,
		log:       log,
		now:       time.Now,
		history:   []HistoryItem{},
		bookmarks: []BookmarkItem{},
	}
}

// Load reads both lists once. Missing or unparsable values load as empty.
// Repeated slugs keep their first, most recent entry and the history is
// capped at MaxHistory.
func (s *Store) Load() {
	s.history = uniqueBySlug(loadList[HistoryItem](s, HistoryKey), func(h HistoryItem) string { return h.Slug })
	if len(s.history) > MaxHistory {
		s.history = s.history[:MaxHistory]
	}
	s.bookmarks = uniqueBySlug(loadList[BookmarkItem](s, BookmarksKey), func(b BookmarkItem) string { return b.Slug })

	for _, h := range s.history {
		s.lastStamp = max(s.lastStamp, h.Timestamp)
	}
	for _, b := range s.bookmarks {
		s.lastStamp = max(s.lastStamp, b.Timestamp)
	}
}

func loadList[T any](s *Store, key string) []T {
	raw, ok, err := s.kv.Get(key)
	if err != nil {
		s.log.Warn("failed to read stored list", "key", key, "error", err)
		return []T{}
	}
	if !ok {
		return []T{}
	}
	var out []T
	if err := json.Unmarshal([]byte(raw), &out); err != nil || out == nil {
		s.log.Warn("discarding unparsable stored list", "key", key, "error", err)
		return []T{}
	}
	return out
}

func uniqueBySlug[T any](items []T, slug func(T) string) []T {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		key := slug(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

// stamp returns a millisecond timestamp strictly greater than any issued
// before.
func (s *Store) stamp() int64 {
	ts := s.now().UnixMilli()
	if ts <= s.lastStamp {
		ts = s.lastStamp + 1
	}
	s.lastStamp = ts
	return ts
}

// RecordHistory moves comic to the front of the history, replacing any
// previous entry for the same slug.
func (s *Store) RecordHistory(comic Comic, chapter *Chapter) error {
	item := HistoryItem{
		Slug:      comic.Slug,
		Title:     comic.Title,
		Image:     comic.Image,
		Timestamp: s.stamp(),
	}
	if chapter != nil {
		item.LastChapterSlug = chapter.Slug
		item.LastChapterTitle = chapter.Title
	}

	updated := make([]HistoryItem, 0, len(s.history)+1)
	updated = append(updated, item)
	for _, h := range s.history {
		if h.Slug != comic.Slug {
			updated = append(updated, h)
		}
	}
	if len(updated) > MaxHistory {
		updated = updated[:MaxHistory]
	}
	s.history = updated

	return s.persist(HistoryKey, s.history)
}

// ToggleBookmark removes comic if bookmarked, otherwise inserts it at the
// front. It reports whether the comic is bookmarked afterwards.
func (s *Store) ToggleBookmark(comic Comic) (bool, error) {
	var bookmarked bool
	if s.IsBookmarked(comic.Slug) {
		updated := make([]BookmarkItem, 0, len(s.bookmarks))
		for _, b := range s.bookmarks {
			if b.Slug != comic.Slug {
				updated = append(updated, b)
			}
		}
		s.bookmarks = updated
	} else {
		item := BookmarkItem{
			Slug:      comic.Slug,
			Title:     comic.Title,
			Image:     comic.Image,
			Timestamp: s.stamp(),
		}
		s.bookmarks = append([]BookmarkItem{item}, s.bookmarks...)
		bookmarked = true
	}

	return bookmarked, s.persist(BookmarksKey, s.bookmarks)
}

func (s *Store) IsBookmarked(slug string) bool {
	for _, b := range s.bookmarks {
		if b.Slug == slug {
			return true
		}
	}
	return false
}

// LastRead returns the history entry for slug, if any.
func (s *Store) LastRead(slug string) (HistoryItem, bool) {
	for _, h := range s.history {
		if h.Slug == slug {
			return h, true
		}
	}
	return HistoryItem{}, false
}

func (s *Store) History() []HistoryItem {
	return append([]HistoryItem(nil), s.history...)
}

func (s *Store) Bookmarks() []BookmarkItem {
	return append([]BookmarkItem(nil), s.bookmarks...)
}

func (s *Store) persist(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := s.kv.Put(key, string(raw)); err != nil {
		s.log.Error("failed to persist list", "key", key, "error", err)
		return err
	}
	return nil
}

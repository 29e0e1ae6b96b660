package data

type Genre struct {
	Title string `json:"title"`
	Slug  string `json:"slug"`
}

type Chapter struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
}

type Comic struct {
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Image         string    `json:"image"`
	Type          string    `json:"type,omitempty"` // "manga", "manhwa", "manhua", ...
	Chapter       string    `json:"chapter,omitempty"`
	LatestChapter string    `json:"latestChapter,omitempty"`
	Rating        string    `json:"rating,omitempty"`
	Status        string    `json:"status,omitempty"` // "Ongoing", "Completed"
	Synopsis      string    `json:"synopsis,omitempty"`
	Genres        []Genre   `json:"genres,omitempty"`
	Chapters      []Chapter `json:"chapters,omitempty"`
}

// FirstChapter returns the oldest chapter. Sources list chapters newest
// first, so it is the last element.
func (c *Comic) FirstChapter() (Chapter, bool) {
	if c == nil || len(c.Chapters) == 0 {
		return Chapter{}, false
	}
	return c.Chapters[len(c.Chapters)-1], true
}

type Navigation struct {
	Prev *string `json:"prev"`
	Next *string `json:"next"`
}

type ChapterDetail struct {
	Title      string     `json:"title"`
	Images     []string   `json:"images"`
	Navigation Navigation `json:"navigation"`
}

type HomeData struct {
	HotUpdates     []Comic `json:"hotUpdates"`
	LatestReleases []Comic `json:"latestReleases"`
	ProjectUpdates []Comic `json:"projectUpdates"`
}

type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	HasNextPage bool `json:"hasNextPage"`
	TotalPages  int  `json:"totalPages,omitempty"`
}

// ComicPage is one page of a paginated listing.
type ComicPage struct {
	Comics     []Comic
	Pagination Pagination
}

type HistoryItem struct {
	Slug             string `json:"slug"`
	Title            string `json:"title"`
	Image            string `json:"image"`
	LastChapterSlug  string `json:"lastChapterSlug,omitempty"`
	LastChapterTitle string `json:"lastChapterTitle,omitempty"`
	Timestamp        int64  `json:"timestamp"`
}

type BookmarkItem struct {
	Slug      string `json:"slug"`
	Title     string `json:"title"`
	Image     string `json:"image"`
	Timestamp int64  `json:"timestamp"`
}

// FilterOptions is a one-shot query; empty fields are unset.
type FilterOptions struct {
	Type   string
	Status string
	Genre  string
	Query  string
}

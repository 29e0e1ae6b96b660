package integrations

import "github.com/kerbaras/komik/pkg/data"

// ImageData is one downloaded chapter page.
type ImageData struct {
	Content     []byte
	ContentType string
	Index       int
}

// CoverData is the comic cover image.
type CoverData struct {
	Content     []byte
	ContentType string
}

// Builder receives a chapter's pages in reading order and produces a file.
type Builder interface {
	Init(comic *data.Comic, chapter *data.ChapterDetail) error
	SetCover(cover CoverData) error
	Next(image ImageData) error
	Done() (string, error)
	// Abort discards an unfinished book and its intermediate files.
	Abort()
}

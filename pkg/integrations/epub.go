package integrations

import (
	"errors"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"
	"github.com/kerbaras/komik/pkg/data"
)

var (
	ErrNotInitialized = errors.New("epub builder not initialized")
	ErrEmptyImage     = errors.New("empty image")
	ErrNoPages        = errors.New("no pages added")
)

// EPubBuilder streams one chapter's pages into an EPUB file.
type EPubBuilder struct {
	outputDir string

	book    *epub.Epub
	title   string
	workDir string
	body    strings.Builder
	pages   int
	cover   *CoverData
}

func NewEPubBuilder(outputDir string) *EPubBuilder {
	return &EPubBuilder{outputDir: outputDir}
}

// Init starts a new book. Any previous unfinished book is discarded.
func (b *EPubBuilder) Init(comic *data.Comic, chapter *data.ChapterDetail) error {
	if chapter == nil {
		return fmt.Errorf("chapter cannot be nil")
	}
	b.reset()

	title := chapter.Title
	if comic != nil && comic.Title != "" && !strings.Contains(title, comic.Title) {
		title = comic.Title + " - " + title
	}
	if strings.TrimSpace(title) == "" {
		title = "Chapter"
	}

	book, err := epub.NewEpub(title)
	if err != nil {
		return fmt.Errorf("failed to create EPub: %w", err)
	}
	book.SetLang("id")
	if comic != nil && comic.Synopsis != "" {
		book.SetDescription(comic.Synopsis)
	}

	workDir, err := os.MkdirTemp("", "komik-epub-*")
	if err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}

	b.book = book
	b.title = title
	b.workDir = workDir
	fmt.Fprintf(&b.body, "<h1>%s</h1>\n", html.EscapeString(title))
	return nil
}

func (b *EPubBuilder) SetCover(cover CoverData) error {
	if b.book == nil {
		return ErrNotInitialized
	}
	if len(cover.Content) == 0 {
		return fmt.Errorf("cover: %w", ErrEmptyImage)
	}
	b.cover = &cover
	return nil
}

// Next appends a page. Pages are expected in reading order.
func (b *EPubBuilder) Next(image ImageData) error {
	if b.book == nil {
		return ErrNotInitialized
	}
	if len(image.Content) == 0 {
		return fmt.Errorf("page %d: %w", image.Index, ErrEmptyImage)
	}

	name := fmt.Sprintf("page-%04d%s", image.Index, extension(image.ContentType))
	path, err := b.writeFile(name, image.Content)
	if err != nil {
		return err
	}
	internal, err := b.book.AddImage(path, name)
	if err != nil {
		return fmt.Errorf("failed to add image %s: %w", name, err)
	}
	fmt.Fprintf(&b.body,
		`<div class="page"><img src="%s" alt="Page %d" style="width:100%%;height:auto;"/></div>`+"\n",
		internal, image.Index+1,
	)
	b.pages++
	return nil
}

func (b *EPubBuilder) Pages() int {
	return b.pages
}

// Done writes the book into the output directory and returns its path.
func (b *EPubBuilder) Done() (string, error) {
	if b.book == nil {
		return "", ErrNotInitialized
	}
	defer b.reset()
	if b.pages == 0 {
		return "", ErrNoPages
	}

	if b.cover != nil {
		name := "cover" + extension(b.cover.ContentType)
		path, err := b.writeFile(name, b.cover.Content)
		if err != nil {
			return "", err
		}
		internal, err := b.book.AddImage(path, name)
		if err != nil {
			return "", fmt.Errorf("failed to add cover: %w", err)
		}
		if err := b.book.SetCover(internal, ""); err != nil {
			return "", fmt.Errorf("failed to set cover: %w", err)
		}
	}

	if _, err := b.book.AddSection(b.body.String(), b.title, "", ""); err != nil {
		return "", fmt.Errorf("failed to add section: %w", err)
	}

	if err := os.MkdirAll(b.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	outputPath := filepath.Join(b.outputDir, sanitizeFilename(b.title)+".epub")
	if err := b.book.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}
	return outputPath, nil
}

// Abort drops the book in progress. It is a no-op after Done.
func (b *EPubBuilder) Abort() {
	b.reset()
}

func (b *EPubBuilder) writeFile(name string, content []byte) (string, error) {
	path := filepath.Join(b.workDir, name)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return path, nil
}

func (b *EPubBuilder) reset() {
	if b.workDir != "" {
		os.RemoveAll(b.workDir)
	}
	b.book = nil
	b.title = ""
	b.workDir = ""
	b.body.Reset()
	b.pages = 0
	b.cover = nil
}

// extension maps an image content type to a file extension.
func extension(contentType string) string {
	ct := strings.ToLower(strings.TrimSpace(strings.Split(contentType, ";")[0]))
	switch ct {
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ".jpg"
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	if result == "" {
		result = "chapter"
	}
	return result
}

var _ Builder = (*EPubBuilder)(nil)

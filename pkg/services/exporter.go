package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/kerbaras/komik/pkg/data"
	"github.com/kerbaras/komik/pkg/integrations"
	"github.com/kerbaras/komik/pkg/sources"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

type ExportStatus string

const (
	ExportDownloading ExportStatus = "downloading"
	ExportProcessing  ExportStatus = "processing"
	ExportComplete    ExportStatus = "complete"
	ExportError       ExportStatus = "error"
)

// ExportProgress reports the state of a chapter export.
type ExportProgress struct {
	ChapterSlug string
	CurrentPage int
	TotalPages  int
	Status      ExportStatus
	Path        string
	Error       error
}

type ExportOptions struct {
	Concurrency int
	RateLimit   float64 // image requests per second
	Timeout     time.Duration
}

func DefaultExportOptions() ExportOptions {
	return ExportOptions{Concurrency: 3, RateLimit: 4, Timeout: 30 * time.Second}
}

// Exporter downloads a chapter's pages and streams them into a Builder.
type Exporter struct {
	source      sources.Source
	newBuilder  func() integrations.Builder
	client      *http.Client
	limiter     *rate.Limiter
	concurrency int
	progress    chan ExportProgress
	log         *slog.Logger
}

func NewExporter(source sources.Source, outputDir string, opts ExportOptions, log *slog.Logger) *Exporter {
	def := DefaultExportOptions()
	if opts.Concurrency <= 0 {
		opts.Concurrency = def.Concurrency
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = def.RateLimit
	}
	if opts.Timeout <= 0 {
		opts.Timeout = def.Timeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Exporter{
		source: source,
		newBuilder: func() integrations.Builder {
			return integrations.NewEPubBuilder(outputDir)
		},
		client:      &http.Client{Timeout: opts.Timeout},
		limiter:     rate.NewLimiter(rate.Limit(opts.RateLimit), opts.Concurrency),
		concurrency: opts.Concurrency,
		progress:    make(chan ExportProgress, 100),
		log:         log,
	}
}

// Progress returns the channel receiving export updates. Updates are
// dropped when nobody reads them.
func (e *Exporter) Progress() <-chan ExportProgress {
	return e.progress
}

// Export writes the chapter identified by chapterSlug to a file and returns
// its path. comic is optional and only supplies metadata and the cover.
func (e *Exporter) Export(ctx context.Context, comic *data.Comic, chapterSlug string) (string, error) {
	path, err := e.export(ctx, comic, chapterSlug)
	if err != nil {
		e.log.Error("export failed", "chapter", chapterSlug, "error", err)
		e.sendProgress(ExportProgress{ChapterSlug: chapterSlug, Status: ExportError, Error: err})
		return "", err
	}
	e.log.Info("chapter exported", "chapter", chapterSlug, "path", path)
	return path, nil
}

func (e *Exporter) export(ctx context.Context, comic *data.Comic, chapterSlug string) (string, error) {
	if chapterSlug == "" {
		return "", fmt.Errorf("chapter slug cannot be empty")
	}

	e.sendProgress(ExportProgress{ChapterSlug: chapterSlug, Status: ExportDownloading})

	chapter, err := e.source.Chapter(ctx, chapterSlug)
	if err != nil {
		return "", fmt.Errorf("failed to get chapter: %w", err)
	}
	if chapter == nil {
		return "", sources.ErrNoPayload
	}
	if len(chapter.Images) == 0 {
		return "", fmt.Errorf("no pages found for chapter")
	}
	total := len(chapter.Images)

	builder := e.newBuilder()
	if err := builder.Init(comic, chapter); err != nil {
		return "", fmt.Errorf("failed to initialize EPUB builder: %w", err)
	}
	defer builder.Abort()

	if comic != nil && comic.Image != "" {
		// A missing cover does not fail the export.
		if cover, err := e.download(ctx, comic.Image); err == nil {
			if err := builder.SetCover(integrations.CoverData{Content: cover.Content, ContentType: cover.ContentType}); err != nil {
				e.log.Warn("cover rejected", "url", comic.Image, "error", err)
			}
		} else {
			e.log.Warn("cover download failed", "url", comic.Image, "error", err)
		}
	}

	pages := make([]integrations.ImageData, total)
	var done atomic.Int32
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i, url := range chapter.Images {
		g.Go(func() error {
			img, err := e.download(gctx, url)
			if err != nil {
				return fmt.Errorf("failed to download page %d: %w", i, err)
			}
			img.Index = i
			pages[i] = img
			e.sendProgress(ExportProgress{
				ChapterSlug: chapterSlug,
				CurrentPage: int(done.Add(1)),
				TotalPages:  total,
				Status:      ExportDownloading,
			})
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	e.sendProgress(ExportProgress{ChapterSlug: chapterSlug, CurrentPage: total, TotalPages: total, Status: ExportProcessing})

	for i, img := range pages {
		if err := builder.Next(img); err != nil {
			return "", fmt.Errorf("failed to add page %d to EPUB: %w", i, err)
		}
	}

	path, err := builder.Done()
	if err != nil {
		return "", fmt.Errorf("failed to finalize EPUB: %w", err)
	}

	e.sendProgress(ExportProgress{
		ChapterSlug: chapterSlug,
		CurrentPage: total,
		TotalPages:  total,
		Status:      ExportComplete,
		Path:        path,
	})
	return path, nil
}

func (e *Exporter) download(ctx context.Context, url string) (integrations.ImageData, error) {
	if err := e.limiter.Wait(ctx); err != nil {
		return integrations.ImageData{}, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return integrations.ImageData{}, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return integrations.ImageData{}, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return integrations.ImageData{}, fmt.Errorf("bad status: %s", resp.Status)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return integrations.ImageData{}, fmt.Errorf("failed to read image content: %w", err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}
	return integrations.ImageData{Content: content, ContentType: contentType}, nil
}

// sendProgress sends a progress update (non-blocking)
func (e *Exporter) sendProgress(p ExportProgress) {
	select {
	case e.progress <- p:
	default:
	}
}

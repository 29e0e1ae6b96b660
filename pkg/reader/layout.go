package reader

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"time"

	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// CellAspect is the height of a terminal cell relative to its width.
const CellAspect = 2.0

// DefaultPageAspect is used for pages whose size is unknown; webtoon-style
// pages are tall.
const DefaultPageAspect = 1.5

// Size is the pixel size of a page image. Zero means unknown.
type Size struct {
	Width  int
	Height int
}

// PageRows returns how many terminal rows a page occupies at the given
// column width.
func PageRows(s Size, columns int) int {
	aspect := DefaultPageAspect
	if s.Width > 0 && s.Height > 0 {
		aspect = float64(s.Height) / float64(s.Width)
	}
	rows := int(aspect * float64(columns) / CellAspect)
	return max(rows, 1)
}

// Layout maps page images to row offsets in the reader document.
type Layout struct {
	Offsets []int // first row of each page
	Height  int   // total rows
}

func NewLayout(sizes []Size, columns int) Layout {
	l := Layout{Offsets: make([]int, len(sizes))}
	for i, s := range sizes {
		l.Offsets[i] = l.Height
		l.Height += PageRows(s, columns)
	}
	return l
}

// PageAt returns the index of the page shown at row.
func (l Layout) PageAt(row int) int {
	page := 0
	for i, off := range l.Offsets {
		if off > row {
			break
		}
		page = i
	}
	return page
}

// Prober reads only image headers to learn page sizes.
type Prober struct {
	client      *http.Client
	concurrency int
}

func NewProber(timeout time.Duration, concurrency int) *Prober {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &Prober{
		client:      &http.Client{Timeout: timeout},
		concurrency: concurrency,
	}
}

// Probe returns one Size per URL. Pages that cannot be probed stay zero;
// the reader falls back to DefaultPageAspect for them.
func (p *Prober) Probe(ctx context.Context, urls []string) []Size {
	sizes := make([]Size, len(urls))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	for i, u := range urls {
		g.Go(func() error {
			if s, err := p.probe(ctx, u); err == nil {
				sizes[i] = s
			}
			return nil
		})
	}
	_ = g.Wait()
	return sizes
}

func (p *Prober) probe(ctx context.Context, url string) (Size, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Size{}, err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return Size{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return Size{}, fmt.Errorf("image %s: status %d", url, resp.StatusCode)
	}
	cfg, _, err := image.DecodeConfig(resp.Body)
	if err != nil {
		return Size{}, fmt.Errorf("image %s: %w", url, err)
	}
	return Size{Width: cfg.Width, Height: cfg.Height}, nil
}

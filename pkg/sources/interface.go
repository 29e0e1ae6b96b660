package sources

import (
	"context"

	"github.com/kerbaras/komik/pkg/data"
)

// Source is the remote catalog. All methods are read-only.
type Source interface {
	Home(ctx context.Context) (*data.HomeData, error)
	Detail(ctx context.Context, slug string) (*data.Comic, error)
	Chapter(ctx context.Context, slug string) (*data.ChapterDetail, error)
	List(ctx context.Context, status string, page int) (*data.ComicPage, error)
	Genres(ctx context.Context) ([]data.Genre, error)
	Genre(ctx context.Context, slug string, page int) (*data.ComicPage, error)
	Search(ctx context.Context, query string, page int) (*data.ComicPage, error)
}

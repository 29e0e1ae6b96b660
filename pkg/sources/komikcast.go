package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/kerbaras/komik/pkg/data"
	"github.com/kerbaras/komik/pkg/utils"
)

const (
	DefaultBaseURL  = "https://www.sankavollerei.com/comic/komikcast"
	DefaultProxyURL = "https://api.nekolabs.web.id/px?url="
)

var (
	ErrUnsuccessful = utils.ErrUnsuccessful
	// ErrNoPayload is returned when a successful envelope carries no data.
	ErrNoPayload = errors.New("api: response has no data")
)

type response[T any] struct {
	Data       *T          `json:"data"`
	Pagination *pagination `json:"pagination"`
}

type pagination struct {
	HasNextPage bool `json:"hasNextPage"`
	TotalPages  int  `json:"totalPages"`
}

type Komikcast struct {
	api *utils.API
}

func NewKomikcast(api *utils.API) *Komikcast {
	return &Komikcast{api: api}
}

func fetch[T any](ctx context.Context, k *Komikcast, path string, params url.Values) (*response[T], error) {
	var out response[T]
	if err := k.api.Get(ctx, path, params, &out); err != nil {
		return nil, fmt.Errorf("GET %s: %w", path, err)
	}
	if out.Data == nil {
		return nil, fmt.Errorf("GET %s: %w", path, ErrNoPayload)
	}
	return &out, nil
}

func (k *Komikcast) Home(ctx context.Context) (*data.HomeData, error) {
	res, err := fetch[data.HomeData](ctx, k, "/home", nil)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (k *Komikcast) Detail(ctx context.Context, slug string) (*data.Comic, error) {
	res, err := fetch[data.Comic](ctx, k, "/detail/"+url.PathEscape(slug), nil)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (k *Komikcast) Chapter(ctx context.Context, slug string) (*data.ChapterDetail, error) {
	res, err := fetch[data.ChapterDetail](ctx, k, "/chapter/"+url.PathEscape(slug), nil)
	if err != nil {
		return nil, err
	}
	return res.Data, nil
}

func (k *Komikcast) List(ctx context.Context, status string, page int) (*data.ComicPage, error) {
	params := url.Values{
		"status":  {status},
		"orderby": {"popular"},
		"page":    {strconv.Itoa(page)},
	}
	return k.page(ctx, "/list", params, page)
}

func (k *Komikcast) Genres(ctx context.Context) ([]data.Genre, error) {
	res, err := fetch[[]data.Genre](ctx, k, "/genres", nil)
	if err != nil {
		return nil, err
	}
	return *res.Data, nil
}

func (k *Komikcast) Genre(ctx context.Context, slug string, page int) (*data.ComicPage, error) {
	path := fmt.Sprintf("/genre/%s/%d", url.PathEscape(slug), page)
	return k.page(ctx, path, nil, page)
}

func (k *Komikcast) Search(ctx context.Context, query string, page int) (*data.ComicPage, error) {
	path := fmt.Sprintf("/search/%s/%d", url.PathEscape(query), page)
	return k.page(ctx, path, nil, page)
}

// page keeps the requested page number as current; the source only reports
// whether another page follows.
func (k *Komikcast) page(ctx context.Context, path string, params url.Values, page int) (*data.ComicPage, error) {
	res, err := fetch[[]data.Comic](ctx, k, path, params)
	if err != nil {
		return nil, err
	}
	p := &data.ComicPage{
		Comics:     *res.Data,
		Pagination: data.Pagination{CurrentPage: page},
	}
	if res.Pagination != nil {
		p.Pagination.HasNextPage = res.Pagination.HasNextPage
		p.Pagination.TotalPages = res.Pagination.TotalPages
	}
	return p, nil
}

// compile-time check
var _ Source = (*Komikcast)(nil)

// lenient accepts numbers sent as strings in pagination records.
func (p *pagination) UnmarshalJSON(b []byte) error {
	var raw struct {
		HasNextPage any `json:"hasNextPage"`
		TotalPages  any `json:"totalPages"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch v := raw.HasNextPage.(type) {
	case bool:
		p.HasNextPage = v
	case string:
		p.HasNextPage, _ = strconv.ParseBool(v)
	}
	switch v := raw.TotalPages.(type) {
	case float64:
		p.TotalPages = int(v)
	case string:
		p.TotalPages, _ = strconv.Atoi(v)
	}
	return nil
}

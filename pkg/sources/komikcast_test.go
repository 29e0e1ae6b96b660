package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kerbaras/komik/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSource(t *testing.T, routes map[string]string) *Komikcast {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Path
		if r.URL.RawQuery != "" {
			key += "?" + r.URL.RawQuery
		}
		body, ok := routes[key]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return NewKomikcast(utils.NewAPI(server.URL, utils.Options{}))
}

func TestKomikcast_Home(t *testing.T) {
	src := newTestSource(t, map[string]string{
		"/home": `{"success":true,"result":{"content":{"data":{
			"hotUpdates":[{"slug":"a","title":"A"}],
			"latestReleases":[{"slug":"b","title":"B"},{"slug":"c","title":"C"}],
			"projectUpdates":[]}}}}`,
	})

	home, err := src.Home(context.Background())
	require.NoError(t, err)
	assert.Len(t, home.HotUpdates, 1)
	assert.Len(t, home.LatestReleases, 2)
	assert.Empty(t, home.ProjectUpdates)
}

func TestKomikcast_Detail(t *testing.T) {
	src := newTestSource(t, map[string]string{
		"/detail/solo-leveling": `{"success":true,"result":{"data":{
			"slug":"solo-leveling","title":"Solo Leveling","rating":"9.1","status":"Completed",
			"genres":[{"title":"Action","slug":"action"}],
			"chapters":[{"slug":"sl-2","title":"Chapter 2"},{"slug":"sl-1","title":"Chapter 1"}]}}}`,
	})

	comic, err := src.Detail(context.Background(), "solo-leveling")
	require.NoError(t, err)
	assert.Equal(t, "Solo Leveling", comic.Title)
	assert.Equal(t, "9.1", comic.Rating)
	require.Len(t, comic.Genres, 1)
	first, ok := comic.FirstChapter()
	require.True(t, ok)
	assert.Equal(t, "sl-1", first.Slug)
}

func TestKomikcast_ChapterNavigation(t *testing.T) {
	src := newTestSource(t, map[string]string{
		"/chapter/sl-1": `{"success":true,"result":{"data":{
			"title":"Chapter 1","images":["https://img/1.jpg","https://img/2.jpg"],
			"navigation":{"prev":null,"next":"sl-2"}}}}`,
	})

	ch, err := src.Chapter(context.Background(), "sl-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://img/1.jpg", "https://img/2.jpg"}, ch.Images)
	assert.Nil(t, ch.Navigation.Prev)
	require.NotNil(t, ch.Navigation.Next)
	assert.Equal(t, "sl-2", *ch.Navigation.Next)
}

func TestKomikcast_ListPagination(t *testing.T) {
	src := newTestSource(t, map[string]string{
		"/list?orderby=popular&page=2&status=Ongoing": `{"success":true,"result":{
			"data":[{"slug":"x","title":"X"}],"pagination":{"hasNextPage":true,"totalPages":"9"}}}`,
	})

	page, err := src.List(context.Background(), "Ongoing", 2)
	require.NoError(t, err)
	assert.Len(t, page.Comics, 1)
	assert.Equal(t, 2, page.Pagination.CurrentPage)
	assert.True(t, page.Pagination.HasNextPage)
	assert.Equal(t, 9, page.Pagination.TotalPages)
}

func TestKomikcast_GenreAndSearchPaths(t *testing.T) {
	src := newTestSource(t, map[string]string{
		"/genres":                `{"success":true,"result":{"data":[{"title":"Isekai","slug":"isekai"}]}}`,
		"/genre/isekai/3":        `{"success":true,"result":{"data":[],"pagination":{"hasNextPage":false}}}`,
		"/search/tower of god/1": `{"success":true,"result":{"data":[{"slug":"tog","title":"Tower of God"}]}}`,
	})

	genres, err := src.Genres(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "isekai", genres[0].Slug)

	page, err := src.Genre(context.Background(), "isekai", 3)
	require.NoError(t, err)
	assert.Empty(t, page.Comics)
	assert.Equal(t, 3, page.Pagination.CurrentPage)
	assert.False(t, page.Pagination.HasNextPage)

	page, err = src.Search(context.Background(), "tower of god", 1)
	require.NoError(t, err)
	assert.Equal(t, "tog", page.Comics[0].Slug)
}

func TestKomikcast_Failures(t *testing.T) {
	src := newTestSource(t, map[string]string{
		"/detail/failed": `{"success":false,"message":"blocked"}`,
		"/detail/empty":  `{"success":true,"result":{"data":null}}`,
	})

	_, err := src.Detail(context.Background(), "failed")
	assert.ErrorIs(t, err, ErrUnsuccessful)

	_, err = src.Detail(context.Background(), "empty")
	assert.ErrorIs(t, err, ErrNoPayload)

	_, err = src.Detail(context.Background(), "missing")
	assert.Error(t, err)
}

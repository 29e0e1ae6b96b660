package state

import (
	"fmt"
	"testing"

	"github.com/kerbaras/komik/pkg/data"
	"github.com/stretchr/testify/assert"
)

func comics(n int, prefix string) []data.Comic {
	out := make([]data.Comic, n)
	for i := range out {
		out[i] = data.Comic{Slug: fmt.Sprintf("%s-%d", prefix, i)}
	}
	return out
}

func TestSectionsSliceLatestReleases(t *testing.T) {
	home := &data.HomeData{
		HotUpdates:     comics(3, "hot"),
		LatestReleases: comics(20, "latest"),
		ProjectUpdates: comics(2, "project"),
	}

	sections := Sections(home)

	assert.Len(t, sections.Hot, 3)
	assert.Len(t, sections.Latest, 15)
	assert.Len(t, sections.Project, 2)
	assert.Equal(t, "latest-14", sections.Latest[14].Slug)
}

func TestSectionsNil(t *testing.T) {
	assert.Equal(t, HomeSections{}, Sections(nil))
}

func TestKindOfViews(t *testing.T) {
	assert.Equal(t, Ongoing, StatusView{Status: StatusOngoing}.Kind())
	assert.Equal(t, Completed, StatusView{Status: StatusCompleted}.Kind())
	assert.Equal(t, Reader, ReaderView{}.Kind())
	assert.Equal(t, "genre", GenreDetail.String())
	assert.Equal(t, "unknown", Kind(99).String())
}

func TestTitleAndPaginated(t *testing.T) {
	assert.Equal(t, "Search: dragon", Title(SearchView{Query: "dragon"}))
	assert.Equal(t, "Genre: Isekai", Title(GenreView{Genre: data.Genre{Title: "Isekai"}}))
	assert.True(t, Paginated(SearchView{}))
	assert.False(t, Paginated(HistoryView{}))
}

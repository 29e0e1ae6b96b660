package state

import (
	"testing"

	"github.com/kerbaras/komik/pkg/data"
	"github.com/stretchr/testify/assert"
)

func TestResolveFilter(t *testing.T) {
	genres := []data.Genre{{Title: "Isekai", Slug: "isekai"}, {Title: "Action", Slug: "action"}}
	isekai := genres[0]

	tests := []struct {
		name      string
		filter    data.FilterOptions
		searchBox string
		want      Action
		ok        bool
	}{
		{
			name:   "genre wins over status and query",
			filter: data.FilterOptions{Genre: "isekai", Status: "Ongoing", Query: "foo"},
			want:   GoGenre{Genre: isekai, Page: 1},
			ok:     true,
		},
		{
			name:   "status without query",
			filter: data.FilterOptions{Status: "Completed"},
			want:   GoCompleted{Page: 1},
			ok:     true,
		},
		{
			name:   "ongoing status",
			filter: data.FilterOptions{Status: "Ongoing", Type: "Manhwa"},
			want:   GoOngoing{Page: 1},
			ok:     true,
		},
		{
			name:   "query alone",
			filter: data.FilterOptions{Query: "dragon"},
			want:   GoSearch{Query: "dragon", Page: 1},
			ok:     true,
		},
		{
			name:   "query beats status",
			filter: data.FilterOptions{Status: "Ongoing", Query: "dragon"},
			want:   GoSearch{Query: "dragon", Page: 1},
			ok:     true,
		},
		{
			name:      "search box fills in missing query",
			filter:    data.FilterOptions{Type: "Manga"},
			searchBox: "tower",
			want:      GoSearch{Query: "tower", Page: 1},
			ok:        true,
		},
		{
			name:      "filter query preferred over search box",
			filter:    data.FilterOptions{Query: "dragon"},
			searchBox: "tower",
			want:      GoSearch{Query: "dragon", Page: 1},
			ok:        true,
		},
		{
			name:   "unknown genre falls through",
			filter: data.FilterOptions{Genre: "nope", Status: "Completed"},
			want:   GoCompleted{Page: 1},
			ok:     true,
		},
		{
			name:   "everything empty",
			filter: data.FilterOptions{},
			ok:     false,
		},
		{
			name:      "whitespace only",
			filter:    data.FilterOptions{Query: "   "},
			searchBox: " ",
			ok:        false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveFilter(tt.filter, tt.searchBox, genres)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApplyFilterNavigates(t *testing.T) {
	s := New()
	s.Genres = []data.Genre{{Title: "Isekai", Slug: "isekai"}}

	s, effects := Reduce(s, ApplyFilter{Filter: data.FilterOptions{Genre: "isekai", Status: "Ongoing", Query: "foo"}})

	assert.Equal(t, GenreView{Genre: data.Genre{Title: "Isekai", Slug: "isekai"}, Page: 1}, s.View)
	assert.Equal(t, GenreRequest{Slug: "isekai", Page: 1}, fetchOf(t, effects).Request)

	before := s
	s, effects = Reduce(s, ApplyFilter{})
	assert.Empty(t, effects)
	assert.Equal(t, before, s)
}

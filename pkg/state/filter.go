package state

import (
	"strings"

	"github.com/kerbaras/komik/pkg/data"
)

// ResolveFilter picks the single navigation an advanced search performs.
// A known genre wins over everything; a status applies only without a
// query; otherwise the filter query, then the search box, is searched.
// Type never takes part.
func ResolveFilter(f data.FilterOptions, searchBox string, genres []data.Genre) (Action, bool) {
	if f.Genre != "" {
		for _, g := range genres {
			if g.Slug == f.Genre {
				return GoGenre{Genre: g, Page: 1}, true
			}
		}
	}

	query := strings.TrimSpace(f.Query)
	if f.Status != "" && query == "" {
		if f.Status == StatusOngoing {
			return GoOngoing{Page: 1}, true
		}
		return GoCompleted{Page: 1}, true
	}

	if query == "" {
		query = strings.TrimSpace(searchBox)
	}
	if query != "" {
		return GoSearch{Query: query, Page: 1}, true
	}

	return nil, false
}

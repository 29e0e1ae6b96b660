package cmd

import (
	"fmt"
	"strings"

	"github.com/kerbaras/komik/pkg/data"
	"github.com/kerbaras/komik/pkg/state"
	"github.com/spf13/cobra"
)

var homeCmd = &cobra.Command{
	Use:   "home",
	Short: "Show the home feed",
	Long:  "Display hot updates, the latest releases and project updates",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := newRuntime(cfg, log)
		cobra.CheckErr(err)
		defer rt.Close()

		cobra.CheckErr(rt.controller.Run(cmd.Context(), state.GoHome{}))

		sections := state.Sections(rt.controller.State().Home)
		out := cmd.OutOrStdout()
		printComics(out, "🔥 Hot Updates", sections.Hot)
		printComics(out, "🆕 Latest Releases", sections.Latest)
		printComics(out, "📌 Project Updates", sections.Project)
	},
}

var ongoingCmd = &cobra.Command{
	Use:   "ongoing",
	Short: "List ongoing comics",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		page, _ := cmd.Flags().GetInt("page")
		runListing(cmd, state.GoOngoing{Page: page})
	},
}

var completedCmd = &cobra.Command{
	Use:   "completed",
	Short: "List completed comics",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		page, _ := cmd.Flags().GetInt("page")
		runListing(cmd, state.GoCompleted{Page: page})
	},
}

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List all genres",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := newRuntime(cfg, log)
		cobra.CheckErr(err)
		defer rt.Close()

		genres, err := rt.source.Genres(cmd.Context())
		if err != nil {
			cobra.CheckErr(fmt.Errorf("failed to load genres: %w", err))
		}

		out := cmd.OutOrStdout()
		if len(genres) == 0 {
			secondaryStyle.Fprintln(out, "No genres found.")
			return
		}
		t := newTable("Genre", "Slug")
		for _, g := range genres {
			t.Row(g.Title, g.Slug)
		}
		fmt.Fprintln(out, t)
	},
}

var genreCmd = &cobra.Command{
	Use:   "genre [slug]",
	Short: "List comics of a genre",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		page, _ := cmd.Flags().GetInt("page")
		runListing(cmd, state.GoGenre{Genre: data.Genre{Title: args[0], Slug: args[0]}, Page: page})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search for comics",
	Long: "Search by title, or filter by genre or status. A genre wins over the other filters; " +
		"a status applies only without a query.",
	Run: func(cmd *cobra.Command, args []string) {
		filter := data.FilterOptions{}
		filter.Status, _ = cmd.Flags().GetString("status")
		filter.Genre, _ = cmd.Flags().GetString("genre")
		page, _ := cmd.Flags().GetInt("page")
		filter.Status = normalizeStatus(filter.Status)

		rt, err := newRuntime(cfg, log)
		cobra.CheckErr(err)
		defer rt.Close()

		var genres []data.Genre
		if filter.Genre != "" {
			genres, err = rt.source.Genres(cmd.Context())
			if err != nil {
				cobra.CheckErr(fmt.Errorf("failed to load genres: %w", err))
			}
		}

		action, ok := state.ResolveFilter(filter, strings.Join(args, " "), genres)
		if !ok {
			cobra.CheckErr(fmt.Errorf("nothing to search: give a query, --status or a known --genre"))
		}
		listing(cmd, rt, withPage(action, page))
	},
}

var detailCmd = &cobra.Command{
	Use:   "detail [slug]",
	Short: "Show a comic and its chapters",
	Long:  "Show a comic's details and chapter list. Viewing a comic records it in the reading history.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := newRuntime(cfg, log)
		cobra.CheckErr(err)
		defer rt.Close()

		cobra.CheckErr(rt.controller.Run(cmd.Context(), state.GoDetail{Slug: args[0]}))

		s := rt.controller.State()
		comic := s.Comic
		out := cmd.OutOrStdout()

		title := comic.Title
		if s.IsBookmarked(comic.Slug) {
			title = "★ " + title
		}
		titleStyle.Fprintf(out, "\n📖 %s\n", title)
		var meta []string
		for _, m := range []string{comic.Type, comic.Status, comic.Rating} {
			if m != "" {
				meta = append(meta, m)
			}
		}
		if len(meta) > 0 {
			fmt.Fprintln(out, strings.Join(meta, " • "))
		}
		if len(comic.Genres) > 0 {
			names := make([]string, 0, len(comic.Genres))
			for _, g := range comic.Genres {
				names = append(names, g.Title)
			}
			labelStyle.Fprint(out, "Genres: ")
			fmt.Fprintln(out, strings.Join(names, ", "))
		}
		if comic.Synopsis != "" {
			fmt.Fprintf(out, "\n%s\n", comic.Synopsis)
		}

		if len(comic.Chapters) == 0 {
			secondaryStyle.Fprintln(out, "\nNo chapters available.")
			return
		}
		t := newTable("#", "Chapter", "Slug")
		for i, ch := range comic.Chapters {
			t.Row(fmt.Sprintf("%d", len(comic.Chapters)-i), ch.Title, ch.Slug)
		}
		titleStyle.Fprintf(out, "\nChapters (%d total)\n", len(comic.Chapters))
		fmt.Fprintln(out, t)
	},
}

// runListing performs a paginated navigation and prints its result.
func runListing(cmd *cobra.Command, action state.Action) {
	rt, err := newRuntime(cfg, log)
	cobra.CheckErr(err)
	defer rt.Close()
	listing(cmd, rt, action)
}

func listing(cmd *cobra.Command, rt *runtime, action state.Action) {
	cobra.CheckErr(rt.controller.Run(cmd.Context(), action))

	s := rt.controller.State()
	out := cmd.OutOrStdout()
	printComics(out, state.Title(s.View), s.List)
	if len(s.List) > 0 {
		printPagination(out, s.Pagination)
	}
}

func withPage(a state.Action, page int) state.Action {
	switch a := a.(type) {
	case state.GoOngoing:
		a.Page = page
		return a
	case state.GoCompleted:
		a.Page = page
		return a
	case state.GoGenre:
		a.Page = page
		return a
	case state.GoSearch:
		a.Page = page
		return a
	}
	return a
}

func normalizeStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "ongoing":
		return state.StatusOngoing
	case "completed":
		return state.StatusCompleted
	}
	return ""
}

func init() {
	for _, c := range []*cobra.Command{ongoingCmd, completedCmd, genreCmd, searchCmd} {
		c.Flags().IntP("page", "p", 1, "Page number")
	}
	searchCmd.Flags().StringP("status", "s", "", "Status (ongoing, completed)")
	searchCmd.Flags().StringP("genre", "g", "", "Genre slug")
}

package cmd

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/komik/pkg/state"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your reading history",
	Long:  "Display recently read comics, most recent first, with the last chapter read",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := newRuntime(cfg, log)
		cobra.CheckErr(err)
		defer rt.Close()

		history := rt.controller.State().History
		out := cmd.OutOrStdout()
		if len(history) == 0 {
			secondaryStyle.Fprintln(out, "📚 No reading history yet. Use 'komik' to start reading.")
			return
		}

		columns := []table.Column{
			{Title: "Title", Width: 40},
			{Title: "Last Chapter", Width: 24},
			{Title: "Read", Width: 16},
			{Title: "Slug", Width: 30},
		}

		rows := []table.Row{}
		for _, h := range history {
			rows = append(rows, table.Row{
				truncateString(h.Title, 38),
				truncateString(h.LastChapterTitle, 22),
				formatTimestamp(h.Timestamp),
				h.Slug,
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Cell
		t.SetStyles(s)

		titleStyle.Fprintf(out, "\n📚 History (%d comics)\n\n", len(history))
		fmt.Fprintln(out, t.View())
	},
}

var bookmarksCmd = &cobra.Command{
	Use:   "bookmarks",
	Short: "Show your bookmarks",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := newRuntime(cfg, log)
		cobra.CheckErr(err)
		defer rt.Close()

		s := rt.controller.State()
		out := cmd.OutOrStdout()
		if len(s.Bookmarks) == 0 {
			secondaryStyle.Fprintln(out, "★ No bookmarks yet. Use 'komik bookmark [slug]' to add one.")
			return
		}

		t := newTable("#", "Title", "Last Read", "Added", "Slug")
		for i, b := range s.Bookmarks {
			last := ""
			if h, ok := s.LastRead(b.Slug); ok {
				last = h.LastChapterTitle
			}
			t.Row(fmt.Sprintf("%d", i+1), truncateString(b.Title, 48), last, formatTimestamp(b.Timestamp), b.Slug)
		}
		titleStyle.Fprintf(out, "\n★ Bookmarks (%d)\n", len(s.Bookmarks))
		fmt.Fprintln(out, t)
	},
}

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark [slug]",
	Short: "Toggle a bookmark",
	Long:  "Bookmark a comic, or remove the bookmark if it is already set",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		rt, err := newRuntime(cfg, log)
		cobra.CheckErr(err)
		defer rt.Close()

		comic, err := rt.source.Detail(cmd.Context(), args[0])
		if err != nil {
			cobra.CheckErr(fmt.Errorf("failed to load %s: %w", args[0], err))
		}

		rt.controller.Dispatch(state.ToggleBookmark{Comic: *comic})

		out := cmd.OutOrStdout()
		if rt.controller.State().IsBookmarked(comic.Slug) {
			successStyle.Fprintf(out, "★ Bookmarked '%s'\n", comic.Title)
		} else {
			infoStyle.Fprintf(out, "Removed bookmark for '%s'\n", comic.Title)
		}
	},
}

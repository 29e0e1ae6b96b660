package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/kerbaras/komik/pkg/data"
)

// Styles for plain command output
var (
	titleStyle     = color.New(color.Bold, color.FgCyan)
	labelStyle     = color.New(color.FgHiBlue)
	infoStyle      = color.New(color.FgBlue)
	successStyle   = color.New(color.FgGreen)
	secondaryStyle = color.New(color.FgHiBlack)
)

var (
	purple = lipgloss.Color("99")

	headerStyle = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(purple)).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			default:
				return cellStyle
			}
		}).
		Headers(headers...)
}

func comicTable(comics []data.Comic) *table.Table {
	t := newTable("#", "Title", "Type", "Chapter", "Rating", "Slug")
	for i, c := range comics {
		chapter := c.LatestChapter
		if chapter == "" {
			chapter = c.Chapter
		}
		t.Row(fmt.Sprintf("%d", i+1), truncateString(c.Title, 48), c.Type, chapter, c.Rating, c.Slug)
	}
	return t
}

// printComics writes a titled comic table, or a hint when there is nothing
// to show.
func printComics(w io.Writer, title string, comics []data.Comic) {
	if len(comics) == 0 {
		secondaryStyle.Fprintf(w, "%s: no comics found.\n", title)
		return
	}
	titleStyle.Fprintf(w, "\n%s (%d)\n", title, len(comics))
	fmt.Fprintln(w, comicTable(comics))
}

func printPagination(w io.Writer, p data.Pagination) {
	text := fmt.Sprintf("Page %d", p.CurrentPage)
	if p.TotalPages > 0 {
		text += fmt.Sprintf(" of %d", p.TotalPages)
	}
	if p.HasNextPage {
		text += fmt.Sprintf(" • next: --page %d", p.CurrentPage+1)
	}
	secondaryStyle.Fprintln(w, text)
}

func formatTimestamp(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).Format("2006-01-02 15:04")
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return strings.TrimSpace(string(r[:maxLen-3])) + "..."
}

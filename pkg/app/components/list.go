package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/komik/pkg/app/styles"
)

type ListItem struct {
	ID       string
	Title    string
	Subtitle string
	Section  string
	Marked   bool
}

// List is a vertical selectable list that keeps the selection in view.
type List struct {
	Items         []ListItem
	SelectedIndex int
	Width         int
	Height        int
	Empty         string
}

func NewList() *List {
	return &List{
		Items:         []ListItem{},
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
		Empty:         "Nothing loaded",
	}
}

func (l *List) SetItems(items []ListItem) {
	l.Items = items
	if l.SelectedIndex >= len(items) && len(items) > 0 {
		l.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		l.SelectedIndex = 0
	}
}

func (l *List) Top() {
	l.SelectedIndex = 0
}

func (l *List) Next() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex++
	if l.SelectedIndex >= len(l.Items) {
		l.SelectedIndex = 0
	}
}

func (l *List) Prev() {
	if len(l.Items) == 0 {
		return
	}
	l.SelectedIndex--
	if l.SelectedIndex < 0 {
		l.SelectedIndex = len(l.Items) - 1
	}
}

func (l *List) Selected() *ListItem {
	if len(l.Items) == 0 || l.SelectedIndex >= len(l.Items) {
		return nil
	}
	return &l.Items[l.SelectedIndex]
}

func (l *List) View() string {
	if len(l.Items) == 0 {
		empty := styles.MutedStyle.Render(l.Empty)
		return lipgloss.Place(l.Width, max(l.Height, 1), lipgloss.Center, lipgloss.Center, empty)
	}

	var lines []string
	selectedLine := 0
	section := ""
	for i, item := range l.Items {
		if item.Section != "" && item.Section != section {
			section = item.Section
			lines = append(lines, styles.SectionStyle.UnsetMarginTop().Render(section))
		}
		if i == l.SelectedIndex {
			selectedLine = len(lines)
		}
		lines = append(lines, l.renderItem(item, i == l.SelectedIndex))
	}

	start, end := window(len(lines), selectedLine, l.Height)
	return strings.Join(lines[start:end], "\n")
}

func (l *List) renderItem(item ListItem, selected bool) string {
	title := item.Title
	if item.Marked {
		title = styles.BookmarkStyle.Render("★ ") + title
	}
	line := title
	if item.Subtitle != "" {
		line += styles.MutedStyle.Render("  " + item.Subtitle)
	}
	if selected {
		return styles.SelectedItemStyle.Render(line)
	}
	return styles.ItemStyle.Render(line)
}

// window returns the [start, end) range of n lines of which at most height
// are shown, centering focus when possible.
func window(n, focus, height int) (int, int) {
	if height <= 0 || n <= height {
		return 0, n
	}
	start := max(focus-height/2, 0)
	end := start + height
	if end > n {
		end = n
		start = n - height
	}
	return start, end
}

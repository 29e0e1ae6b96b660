package components

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kerbaras/komik/pkg/app/styles"
	"github.com/kerbaras/komik/pkg/services"
)

// ProgressTracker shows running chapter exports.
type ProgressTracker struct {
	exports map[string]services.ExportProgress
	width   int
}

func NewProgressTracker(width int) *ProgressTracker {
	return &ProgressTracker{
		exports: make(map[string]services.ExportProgress),
		width:   width,
	}
}

func (p *ProgressTracker) SetWidth(width int) {
	p.width = width
}

// Update records an export event. Finished exports are dropped; failed ones
// stay until cleared.
func (p *ProgressTracker) Update(progress services.ExportProgress) {
	if progress.Status == services.ExportComplete {
		delete(p.exports, progress.ChapterSlug)
		return
	}
	p.exports[progress.ChapterSlug] = progress
}

func (p *ProgressTracker) Clear() {
	p.exports = make(map[string]services.ExportProgress)
}

func (p *ProgressTracker) HasActive() bool {
	return len(p.exports) > 0
}

func (p *ProgressTracker) View() string {
	if len(p.exports) == 0 {
		return ""
	}

	slugs := make([]string, 0, len(p.exports))
	for slug := range p.exports {
		slugs = append(slugs, slug)
	}
	sort.Strings(slugs)

	var b strings.Builder
	b.WriteString(styles.SubtitleStyle.Render("Exports"))
	b.WriteString("\n")

	for _, slug := range slugs {
		progress := p.exports[slug]
		b.WriteString(styles.TextStyle.Render(slug))
		b.WriteString("\n")

		statusText := string(progress.Status)
		if progress.TotalPages > 0 {
			percentage := float64(progress.CurrentPage) / float64(progress.TotalPages) * 100
			statusText = fmt.Sprintf("%s (%d/%d pages - %.0f%%)",
				progress.Status, progress.CurrentPage, progress.TotalPages, percentage)

			b.WriteString(renderProgressBar(progress.CurrentPage, progress.TotalPages, p.width-4))
			b.WriteString("\n")
		}
		b.WriteString(styles.StatusStyle(string(progress.Status)).Render(statusText))
		b.WriteString("\n")

		if progress.Error != nil {
			b.WriteString(styles.StatusError.Render(fmt.Sprintf("Error: %s", progress.Error)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// ReadingProgress renders a percentage bar followed by the number.
func ReadingProgress(percent, width int) string {
	bar := renderProgressBar(percent, 100, max(width-5, 1))
	return fmt.Sprintf("%s %3d%%", bar, percent)
}

func renderProgressBar(current, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}

	filled := int(float64(current) / float64(total) * float64(width))
	filled = min(max(filled, 0), width)

	return styles.ProgressBarStyle.Render(strings.Repeat("█", filled)) +
		styles.ProgressEmptyStyle.Render(strings.Repeat("░", width-filled))
}

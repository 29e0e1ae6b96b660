package cmd

import (
	"fmt"

	"github.com/kerbaras/komik/pkg/data"
	"github.com/kerbaras/komik/pkg/services"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [chapter-slug...]",
	Short: "Export chapters as EPUB",
	Long:  "Download the pages of one or more chapters and pack each into an EPUB file",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		comicSlug, _ := cmd.Flags().GetString("comic")
		if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
			cfg.Export.Dir = dir
		}

		rt, err := newRuntime(cfg, log)
		cobra.CheckErr(err)
		defer rt.Close()

		out := cmd.OutOrStdout()

		var comic *data.Comic
		if comicSlug != "" {
			comic, err = rt.source.Detail(cmd.Context(), comicSlug)
			if err != nil {
				cobra.CheckErr(fmt.Errorf("failed to load %s: %w", comicSlug, err))
			}
			titleStyle.Fprintf(out, "📚 %s\n", comic.Title)
		}

		// Listen for progress
		done := make(chan struct{})
		defer close(done)
		go func() {
			for {
				select {
				case <-done:
					return
				case p := <-rt.exporter.Progress():
					if p.Status == services.ExportDownloading && p.TotalPages > 0 {
						secondaryStyle.Fprintf(out, "  %s: %d/%d pages\n", p.ChapterSlug, p.CurrentPage, p.TotalPages)
					}
				}
			}
		}()

		for _, slug := range args {
			infoStyle.Fprintf(out, "📥 Exporting %s\n", slug)
			path, err := rt.exporter.Export(cmd.Context(), comic, slug)
			if err != nil {
				cobra.CheckErr(fmt.Errorf("export of %s failed: %w", slug, err))
			}
			successStyle.Fprintf(out, "📖 EPUB created: %s\n", path)
		}
	},
}

func init() {
	exportCmd.Flags().String("comic", "", "Comic slug used for the book title and cover")
	exportCmd.Flags().StringP("dir", "d", "", "Output directory (default: export.dir)")
}

package cmd

import (
	"log/slog"
	"os"

	"github.com/kerbaras/komik/pkg/app"
	"github.com/kerbaras/komik/pkg/app/screens"
	"github.com/kerbaras/komik/pkg/config"
	"github.com/kerbaras/komik/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	configPath string

	cfg      *config.Config
	log      *slog.Logger
	closeLog func() error
)

var rootCmd = &cobra.Command{
	Use:   "komik",
	Short: "Read comics from Komikcast in your terminal",
	Long:  "Browse, read and bookmark comics with a TUI, or query the catalog from the command line",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		log, closeLog, err = logger.Init(logger.Config{
			Level:  cfg.Log.Level,
			Format: cfg.Log.Format,
			File:   cfg.Log.File,
		})
		if err != nil {
			return err
		}
		log.Debug("configuration loaded", "file", cfg.File)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if closeLog != nil {
			_ = closeLog()
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		// Launch TUI by default
		rt, err := newRuntime(cfg, log)
		cobra.CheckErr(err)
		defer rt.Close()

		a := app.NewApp(screens.Options{
			Controller:    rt.controller,
			Exporter:      rt.exporter,
			Prober:        rt.prober,
			HideThreshold: cfg.Reader.HideThreshold,
		})
		if err := a.Run(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default: "+config.Dir()+"/config.yaml or ./komik.yaml)")

	rootCmd.AddCommand(homeCmd)
	rootCmd.AddCommand(ongoingCmd)
	rootCmd.AddCommand(completedCmd)
	rootCmd.AddCommand(genresCmd)
	rootCmd.AddCommand(genreCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(detailCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(bookmarksCmd)
	rootCmd.AddCommand(bookmarkCmd)
	rootCmd.AddCommand(exportCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"log/slog"

	"github.com/kerbaras/komik/pkg/config"
	"github.com/kerbaras/komik/pkg/data"
	"github.com/kerbaras/komik/pkg/reader"
	"github.com/kerbaras/komik/pkg/services"
	"github.com/kerbaras/komik/pkg/sources"
	"github.com/kerbaras/komik/pkg/utils"
)

// runtime holds the wired services shared by the TUI and the subcommands.
type runtime struct {
	source     sources.Source
	repo       *data.Repository
	store      *data.Store
	controller *services.Controller
	exporter   *services.Exporter
	prober     *reader.Prober
}

func newRuntime(cfg *config.Config, log *slog.Logger) (*runtime, error) {
	api := utils.NewAPI(cfg.API.BaseURL, utils.Options{
		ProxyURL:  cfg.API.ProxyURL,
		Timeout:   cfg.API.Timeout,
		RateLimit: cfg.API.RateLimit,
		RateBurst: cfg.API.RateBurst,
	})
	source := sources.NewKomikcast(api)

	repo, err := data.NewDuckDBRepository(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open library %s: %w", cfg.Storage.Path, err)
	}
	store := data.NewStore(repo, log)
	store.Load()

	rt := &runtime{
		source:     source,
		repo:       repo,
		store:      store,
		controller: services.NewController(source, store, log),
		exporter: services.NewExporter(source, cfg.Export.Dir, services.ExportOptions{
			Concurrency: cfg.Export.Concurrency,
			RateLimit:   cfg.Export.RateLimit,
			Timeout:     cfg.API.Timeout,
		}, log),
	}
	if cfg.Reader.ProbeImages {
		rt.prober = reader.NewProber(cfg.API.Timeout, 4)
	}

	log.Info("runtime ready", "api", cfg.API.BaseURL, "storage", cfg.Storage.Path)
	return rt, nil
}

func (rt *runtime) Close() {
	if err := rt.repo.Close(); err != nil {
		log.Warn("failed to close library", "error", err)
	}
}

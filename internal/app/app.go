package app

import (
	"context"
	"fmt"
	"log/slog"

	"syndicator/internal/config"
	"syndicator/internal/infrastructure/bluesky"
	"syndicator/internal/infrastructure/mastodon"
	"syndicator/internal/infrastructure/storage"
	"syndicator/internal/infrastructure/web"
	"syndicator/internal/logging"
	"syndicator/internal/ports"
	"syndicator/internal/publish"
	"syndicator/internal/scanner"
	"syndicator/internal/usecase"
	"syndicator/internal/writeback"
)

// Application wires configuration to adapters and the pipeline.
type Application struct {
	cfg    config.Config
	logger *slog.Logger
}

// RunOptions carries the per-invocation CLI switches.
type RunOptions struct {
	ContentRoot string
	DryRun      bool
	Force       bool
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}
	return &Application{cfg: cfg, logger: baseLogger}
}

// Run connects the configured platform clients and executes one
// syndication pass over the content tree. With no platform configured
// at all (outside dry-run) the run aborts before touching any document.
func (a *Application) Run(ctx context.Context, opts RunOptions) error {
	registry := publish.NewRegistry()

	if opts.DryRun {
		a.logger.Info("dry run mode active")
	} else if err := a.connectPublishers(ctx, registry); err != nil {
		return err
	}

	var history ports.DeliveryRepository
	if !opts.DryRun && a.cfg.History.Path != "" {
		repo, err := storage.Open(a.cfg.History.Path)
		if err != nil {
			a.logger.Warn("delivery history disabled", "error", err)
		} else {
			defer repo.Close()
			history = repo
		}
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		BaseURL:  a.cfg.Site.BaseURL,
		Source:   scanner.New(a.logger.With("component", "scanner")),
		Checker:  web.NewChecker(nil, a.logger.With("component", "checker")),
		Registry: registry,
		Marker:   writeback.NewFileMarker(),
		History:  history,
		Logger:   a.logger.With("component", "pipeline"),
	})

	return pipeline.Run(ctx, opts.ContentRoot, usecase.Options{
		DryRun: opts.DryRun,
		Force:  opts.Force,
	})
}

// connectPublishers registers every platform with working credentials.
// A platform whose login fails is left unregistered, so documents
// requesting it collect a failure outcome instead of being marked.
func (a *Application) connectPublishers(ctx context.Context, registry *publish.Registry) error {
	hasBsky := a.cfg.Bluesky.Configured()
	hasMasto := a.cfg.Mastodon.Configured()

	if !hasBsky && !hasMasto {
		return fmt.Errorf("no credentials found for bluesky or mastodon")
	}

	if hasBsky {
		pub := bluesky.NewPublisher(a.cfg.Bluesky)
		if err := pub.Login(ctx); err != nil {
			a.logger.Error("bluesky connection error", "error", err)
		} else {
			registry.Register(pub)
			a.logger.Info("connected to bluesky", "handle", a.cfg.Bluesky.Handle)
		}
	}

	if hasMasto {
		registry.Register(mastodon.NewPublisher(a.cfg.Mastodon))
		a.logger.Info("connected to mastodon", "instance", a.cfg.Mastodon.APIBase)
	}

	return nil
}

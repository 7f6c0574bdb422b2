package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"syndicator/internal/domain"
	"syndicator/internal/ports"
	"syndicator/internal/publish"
	"syndicator/internal/siteurl"
)

// PipelineDeps wires all driven adapters into the orchestration pipeline.
type PipelineDeps struct {
	BaseURL   string
	Source    ports.ManifestSource
	Checker   ports.ReachabilityChecker
	Registry  *publish.Registry
	Marker    ports.Marker
	History   ports.DeliveryRepository
	Logger    *slog.Logger
	DryRunOut io.Writer
}

// Options selects the per-run behavior switches.
type Options struct {
	DryRun bool
	Force  bool
}

// Pipeline implements the syndication workflow: resolve, verify,
// publish per target, and mark on all-target success.
type Pipeline struct {
	baseURL   string
	source    ports.ManifestSource
	checker   ports.ReachabilityChecker
	registry  *publish.Registry
	marker    ports.Marker
	history   ports.DeliveryRepository
	logger    *slog.Logger
	dryRunOut io.Writer
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	out := deps.DryRunOut
	if out == nil {
		out = os.Stdout
	}
	return &Pipeline{
		baseURL:   deps.BaseURL,
		source:    deps.Source,
		checker:   deps.Checker,
		registry:  deps.Registry,
		marker:    deps.Marker,
		history:   deps.History,
		logger:    logger,
		dryRunOut: out,
	}
}

// Run scans the content root and processes every eligible document in
// worklist order, one at a time. Per-document failures never abort the
// run; only a failed scan does.
func (p *Pipeline) Run(ctx context.Context, contentRoot string, opts Options) error {
	if p.source == nil {
		return fmt.Errorf("manifest source is not configured")
	}

	entries, err := p.source.Scan(ctx, contentRoot)
	if err != nil {
		return fmt.Errorf("scan content: %w", err)
	}

	p.logger.Info("found posts ready to syndicate", "count", len(entries))

	marked := 0
	for _, entry := range entries {
		if p.process(ctx, entry, opts) {
			marked++
		}
	}

	p.logger.Info("run complete", "eligible", len(entries), "marked", marked)
	return nil
}

// process handles one document end to end and reports whether it was
// marked (or, in dry-run, would have been).
func (p *Pipeline) process(ctx context.Context, entry domain.ManifestEntry, opts Options) bool {
	url := siteurl.Resolve(p.baseURL, entry.FilePath, entry.Matter)
	title := entry.Matter.DisplayTitle()

	if !opts.DryRun && !opts.Force {
		p.logger.Info("verifying url", "url", url)
		if p.checker == nil || !p.checker.CheckReachable(ctx, url) {
			p.logger.Error("url not reachable, skipping post", "url", url, "path", entry.FilePath)
			return false
		}
	}

	outcomes, failures := 0, 0
	seen := map[string]bool{}
	for _, target := range entry.Matter.SyndicateTo {
		if !domain.IsKnownTarget(target) {
			p.logger.Debug("ignoring unknown target", "target", target, "path", entry.FilePath)
			continue
		}
		// syndicate_to is a set; a repeated name posts at most once.
		if seen[target] {
			continue
		}
		seen[target] = true

		if opts.DryRun {
			fmt.Fprintf(p.dryRunOut, "[%s dry run] %s -> %s\n", target, title, url)
			outcomes++
			continue
		}

		outcomes++
		pub, err := p.registry.Resolve(target)
		if err == nil {
			err = pub.Publish(ctx, entry.Matter, url)
		}
		if err != nil {
			failures++
			p.logger.Error("publish failed", "target", target, "title", title, "error", err)
			continue
		}

		p.logger.Info("published", "target", target, "title", title, "url", url)
		p.recordDelivery(ctx, entry, target, url, title)
	}

	switch {
	case outcomes == 0:
		return false
	case failures > 0:
		p.logger.Warn("partial failure, not marking as syndicated", "title", title, "path", entry.FilePath)
		return false
	}

	if opts.DryRun {
		fmt.Fprintf(p.dryRunOut, "ACTION: would mark %s as syndicated\n", filepath.Base(entry.FilePath))
		return true
	}

	if err := p.marker.MarkSyndicated(entry); err != nil {
		// Left unmarked: the next run retries, accepting a duplicate post.
		p.logger.Error("error marking syndicated", "path", entry.FilePath, "error", err)
		return false
	}

	p.logger.Info("updated syndicated status", "path", entry.FilePath)
	return true
}

func (p *Pipeline) recordDelivery(ctx context.Context, entry domain.ManifestEntry, target, url, title string) {
	if p.history == nil {
		return
	}

	delivery := domain.Delivery{
		FilePath: entry.FilePath,
		Target:   target,
		URL:      url,
		Title:    title,
	}
	if err := p.history.SaveDelivery(ctx, delivery); err != nil {
		p.logger.Warn("could not record delivery", "target", target, "error", err)
	}
}

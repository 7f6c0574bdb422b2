package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"syndicator/internal/domain"
	"syndicator/internal/matter"
	"syndicator/internal/ports"
)

const documentExt = ".md"

// TreeScanner walks a content tree and collects the eligible worklist.
// Read and parse failures are independent per file: they are logged and
// the file is skipped, never aborting the walk.
type TreeScanner struct {
	logger *slog.Logger
}

var _ ports.ManifestSource = (*TreeScanner)(nil)

// New builds a scanner; a nil logger silences it.
func New(logger *slog.Logger) *TreeScanner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TreeScanner{logger: logger}
}

// Scan visits every document under contentRoot in traversal order and
// returns one manifest entry per eligible document.
func (s *TreeScanner) Scan(ctx context.Context, contentRoot string) ([]domain.ManifestEntry, error) {
	var entries []domain.ManifestEntry

	err := filepath.WalkDir(contentRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == contentRoot {
				return fmt.Errorf("walk content root: %w", walkErr)
			}
			s.logger.Warn("cannot visit path", "path", path, "error", walkErr)
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), documentExt) {
			return nil
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			s.logger.Warn("could not read document", "path", path, "error", err)
			return nil
		}

		fm, err := matter.Parse(raw)
		if err != nil {
			s.logger.Warn("could not parse document", "path", path, "error", err)
			return nil
		}

		if len(fm.SyndicateTo) == 0 {
			return nil
		}
		if fm.Syndicated {
			s.logger.Debug("already syndicated", "path", path)
			return nil
		}
		if fm.MicroblogContent == "" {
			s.logger.Warn("skipped: missing microblog_content", "path", path)
			return nil
		}

		entries = append(entries, domain.ManifestEntry{FilePath: path, Matter: fm})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

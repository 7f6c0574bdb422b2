package web

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"syndicator/internal/ports"
)

const userAgent = "Mozilla/5.0 (SyndicationScript)"

// Checker verifies a derived URL actually serves a page before anything
// is published against it.
type Checker struct {
	client *http.Client
	logger *slog.Logger
}

var _ ports.ReachabilityChecker = (*Checker)(nil)

// NewChecker wires an HTTP client; the default uses a 10s timeout.
func NewChecker(client *http.Client, logger *slog.Logger) *Checker {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Checker{client: client, logger: logger}
}

// CheckReachable fetches the URL and reports whether it answered 200.
// The served page's <title> is logged as a sanity signal. Any network
// error reports as unreachable.
func (c *Checker) CheckReachable(ctx context.Context, url string) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.logger.Error("build request", "url", url, "error", err)
		return false
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("connection failed", "url", url, "error", err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("unexpected status", "url", url, "status", resp.Status)
		return false
	}

	if doc, parseErr := goquery.NewDocumentFromReader(resp.Body); parseErr == nil {
		title := strings.TrimSpace(doc.Find("title").First().Text())
		c.logger.Debug("url reachable", "url", url, "page_title", title)
	}

	return true
}

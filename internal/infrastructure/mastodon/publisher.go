package mastodon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"syndicator/internal/config"
	"syndicator/internal/domain"
	"syndicator/internal/ports"
	"syndicator/internal/textutil"
)

// Publisher posts statuses to a Mastodon instance. The post URL is
// appended after the excerpt, so its length is reserved out of the
// character budget before truncation.
type Publisher struct {
	apiBase     string
	accessToken string
	charLimit   int
	client      *http.Client
}

var _ ports.Publisher = (*Publisher)(nil)

// NewPublisher wires instance endpoint, token, and text budget.
func NewPublisher(cfg config.MastodonConfig) *Publisher {
	return &Publisher{
		apiBase:     strings.TrimRight(cfg.APIBase, "/"),
		accessToken: cfg.AccessToken,
		charLimit:   cfg.CharLimit,
		client:      &http.Client{Timeout: 15 * time.Second},
	}
}

// Name identifies the target inside the registry.
func (p *Publisher) Name() string {
	return domain.TargetMastodon
}

// Publish posts the excerpt followed by the post URL as a new status.
func (p *Publisher) Publish(ctx context.Context, matter domain.FrontMatter, postURL string) error {
	if p.accessToken == "" || p.apiBase == "" {
		return fmt.Errorf("mastodon publisher misconfigured")
	}

	limit := p.charLimit - utf8.RuneCountInString(postURL) - 2
	text := textutil.Truncate(matter.DisplayTitle(), matter.MicroblogContent, limit, "")
	status := text + "\n\n" + postURL

	form := url.Values{}
	form.Set("status", status)

	endpoint := p.apiBase + "/api/v1/statuses"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("post status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("mastodon error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	return nil
}

package bluesky

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"syndicator/internal/config"
	"syndicator/internal/domain"
	"syndicator/internal/ports"
	"syndicator/internal/textutil"
)

const (
	createSessionPath = "/xrpc/com.atproto.server.createSession"
	createRecordPath  = "/xrpc/com.atproto.repo.createRecord"

	postCollection = "app.bsky.feed.post"

	// Link-card descriptions are capped independently of the post text.
	descriptionLimit = 200
)

// Publisher posts to Bluesky over the ATProto HTTP API. The post URL
// travels in an external-link embed, so the text budget is spent on
// title and excerpt alone.
type Publisher struct {
	host      string
	handle    string
	password  string
	charLimit int
	client    *http.Client

	session *session
}

type session struct {
	AccessJwt string `json:"accessJwt"`
	DID       string `json:"did"`
}

var _ ports.Publisher = (*Publisher)(nil)

// NewPublisher wires credentials and the platform text budget. Login
// must be called before the first Publish.
func NewPublisher(cfg config.BlueskyConfig) *Publisher {
	return &Publisher{
		host:      strings.TrimRight(cfg.Host, "/"),
		handle:    cfg.Handle,
		password:  cfg.Password,
		charLimit: cfg.CharLimit,
		client:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Name identifies the target inside the registry.
func (p *Publisher) Name() string {
	return domain.TargetBluesky
}

// Login exchanges handle and app password for a session token.
func (p *Publisher) Login(ctx context.Context) error {
	if p.handle == "" || p.password == "" {
		return fmt.Errorf("bluesky publisher misconfigured")
	}

	body, err := json.Marshal(map[string]string{
		"identifier": p.handle,
		"password":   p.password,
	})
	if err != nil {
		return fmt.Errorf("marshal session request: %w", err)
	}

	var sess session
	if err := p.post(ctx, createSessionPath, "", body, &sess); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	if sess.AccessJwt == "" || sess.DID == "" {
		return fmt.Errorf("create session: incomplete response")
	}

	p.session = &sess
	return nil
}

// Publish sends the excerpt as a post carrying an external-link card.
func (p *Publisher) Publish(ctx context.Context, matter domain.FrontMatter, postURL string) error {
	if p.session == nil {
		return fmt.Errorf("bluesky publisher not logged in")
	}

	title := matter.DisplayTitle()
	text := textutil.Truncate(title, matter.MicroblogContent, p.charLimit, "")

	record := map[string]any{
		"$type":     postCollection,
		"text":      text,
		"createdAt": time.Now().UTC().Format(time.RFC3339),
		"embed": map[string]any{
			"$type": "app.bsky.embed.external",
			"external": map[string]any{
				"uri":         postURL,
				"title":       title,
				"description": truncateDescription(matter.MicroblogContent),
			},
		},
	}

	body, err := json.Marshal(map[string]any{
		"repo":       p.session.DID,
		"collection": postCollection,
		"record":     record,
	})
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	if err := p.post(ctx, createRecordPath, p.session.AccessJwt, body, nil); err != nil {
		return fmt.Errorf("create record: %w", err)
	}

	return nil
}

func (p *Publisher) post(ctx context.Context, path, token string, body []byte, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.host+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("bluesky error %s: %s", resp.Status, strings.TrimSpace(string(payload)))
	}

	if v == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

func truncateDescription(text string) string {
	runes := []rune(text)
	if len(runes) <= descriptionLimit {
		return text
	}
	return string(runes[:descriptionLimit])
}

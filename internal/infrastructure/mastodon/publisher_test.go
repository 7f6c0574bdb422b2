package mastodon

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"syndicator/internal/config"
	"syndicator/internal/domain"
)

func TestPublishPostsStatusWithURL(t *testing.T) {
	t.Parallel()

	var gotAuth, gotStatus string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/statuses" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotStatus = r.PostFormValue("status")
		_, _ = w.Write([]byte(`{"id":"1"}`))
	}))
	defer server.Close()

	pub := NewPublisher(config.MastodonConfig{
		APIBase:     server.URL,
		AccessToken: "token123",
		CharLimit:   490,
	})

	matter := domain.FrontMatter{Title: "Post", MicroblogContent: "excerpt text"}
	postURL := "https://example.com/blog/post/"
	if err := pub.Publish(context.Background(), matter, postURL); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	if gotAuth != "Bearer token123" {
		t.Fatalf("unexpected auth header: %s", gotAuth)
	}
	if !strings.HasSuffix(gotStatus, "\n\n"+postURL) {
		t.Fatalf("status must end with the post url: %q", gotStatus)
	}
	if !strings.HasPrefix(gotStatus, "Post\n\nexcerpt text") {
		t.Fatalf("unexpected status body: %q", gotStatus)
	}
}

func TestPublishRespectsCharLimitWithURLReserved(t *testing.T) {
	t.Parallel()

	var gotStatus string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		gotStatus = r.PostFormValue("status")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	pub := NewPublisher(config.MastodonConfig{
		APIBase:     server.URL,
		AccessToken: "token",
		CharLimit:   120,
	})

	matter := domain.FrontMatter{
		Title:            "A Title",
		MicroblogContent: strings.Repeat("long excerpt ", 50),
	}
	postURL := "https://example.com/blog/post/"
	if err := pub.Publish(context.Background(), matter, postURL); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	if utf8.RuneCountInString(gotStatus) > 120 {
		t.Fatalf("status exceeds platform limit: %d runes", utf8.RuneCountInString(gotStatus))
	}
	if !strings.HasSuffix(gotStatus, postURL) {
		t.Fatalf("url must never be cut: %q", gotStatus)
	}
}

func TestPublishServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}))
	defer server.Close()

	pub := NewPublisher(config.MastodonConfig{APIBase: server.URL, AccessToken: "bad", CharLimit: 490})
	if err := pub.Publish(context.Background(), domain.FrontMatter{MicroblogContent: "x"}, "https://example.com/p/"); err == nil {
		t.Fatal("expected error on 401")
	}
}

func TestPublishMisconfigured(t *testing.T) {
	t.Parallel()

	pub := NewPublisher(config.MastodonConfig{CharLimit: 490})
	if err := pub.Publish(context.Background(), domain.FrontMatter{}, "https://example.com/p/"); err == nil {
		t.Fatal("expected misconfiguration error")
	}
}

func TestPublisherName(t *testing.T) {
	t.Parallel()

	if got := NewPublisher(config.MastodonConfig{}).Name(); got != domain.TargetMastodon {
		t.Fatalf("unexpected name: %s", got)
	}
}

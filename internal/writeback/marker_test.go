package writeback

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"syndicator/internal/domain"
	"syndicator/internal/matter"
)

func writeTempDoc(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestMarkSyndicatedTOML(t *testing.T) {
	t.Parallel()

	original := "+++\ntitle = \"Post\"\nsyndicate_to = [\"bluesky\"]\nmicroblog_content = \"x\"\n+++\n\nBody stays put.\n"
	path := writeTempDoc(t, "post.md", original)

	marker := NewFileMarker()
	if err := marker.MarkSyndicated(domain.ManifestEntry{FilePath: path}); err != nil {
		t.Fatalf("MarkSyndicated error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	want := "+++\ntitle = \"Post\"\nsyndicate_to = [\"bluesky\"]\nmicroblog_content = \"x\"\nsyndicated = true\n+++\n\nBody stays put.\n"
	if string(raw) != want {
		t.Fatalf("unexpected rewrite:\n%s", raw)
	}

	fm, err := matter.Parse(raw)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !fm.Syndicated {
		t.Fatal("expected reparsed header to carry syndicated=true")
	}
}

func TestMarkSyndicatedYAML(t *testing.T) {
	t.Parallel()

	original := "---\ntitle: Post\nsyndicate_to:\n  - mastodon\nmicroblog_content: x\n---\n\nBody.\n"
	path := writeTempDoc(t, "post.md", original)

	marker := NewFileMarker()
	if err := marker.MarkSyndicated(domain.ManifestEntry{FilePath: path}); err != nil {
		t.Fatalf("MarkSyndicated error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}

	want := "---\ntitle: Post\nsyndicate_to:\n  - mastodon\nmicroblog_content: x\nsyndicated: true\n---\n\nBody.\n"
	if string(raw) != want {
		t.Fatalf("unexpected rewrite:\n%s", raw)
	}

	fm, err := matter.Parse(raw)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	if !fm.Syndicated {
		t.Fatal("expected reparsed header to carry syndicated=true")
	}
}

func TestMarkSyndicatedInsertsExactlyOnce(t *testing.T) {
	t.Parallel()

	// A horizontal rule in the body reuses the YAML delimiter; only the
	// first closing delimiter past the opening line gets the marker.
	original := "---\ntitle: Post\n---\n\nIntro.\n\n---\n\nOutro.\n"
	path := writeTempDoc(t, "post.md", original)

	if err := NewFileMarker().MarkSyndicated(domain.ManifestEntry{FilePath: path}); err != nil {
		t.Fatalf("MarkSyndicated error: %v", err)
	}

	raw, _ := os.ReadFile(path)
	if got := strings.Count(string(raw), "syndicated: true"); got != 1 {
		t.Fatalf("expected exactly one marker, found %d:\n%s", got, raw)
	}

	want := "---\ntitle: Post\nsyndicated: true\n---\n\nIntro.\n\n---\n\nOutro.\n"
	if string(raw) != want {
		t.Fatalf("unexpected rewrite:\n%s", raw)
	}
}

func TestMarkSyndicatedNoClosingDelimiterIsNoOp(t *testing.T) {
	t.Parallel()

	original := "---\ntitle: Broken header, never closed\n"
	path := writeTempDoc(t, "post.md", original)

	if err := NewFileMarker().MarkSyndicated(domain.ManifestEntry{FilePath: path}); err != nil {
		t.Fatalf("MarkSyndicated error: %v", err)
	}

	raw, _ := os.ReadFile(path)
	if string(raw) != original {
		t.Fatalf("file changed despite missing closing delimiter:\n%s", raw)
	}
}

func TestMarkSyndicatedMissingFile(t *testing.T) {
	t.Parallel()

	entry := domain.ManifestEntry{FilePath: filepath.Join(t.TempDir(), "absent.md")}
	if err := NewFileMarker().MarkSyndicated(entry); err == nil {
		t.Fatal("expected error for missing file")
	}
}

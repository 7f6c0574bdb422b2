package siteurl

import (
	"strings"
	"testing"

	"syndicator/internal/domain"
)

func TestResolveNestedPost(t *testing.T) {
	t.Parallel()

	got := Resolve("https://example.com", "content/blog/2025/11/post.md", domain.FrontMatter{})
	want := "https://example.com/blog/2025/11/post/"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestResolveLeafBundleSlugOverride(t *testing.T) {
	t.Parallel()

	got := Resolve("https://example.com", "content/blog/index.md", domain.FrontMatter{Slug: "custom"})
	want := "https://example.com/custom/"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestResolveLeafBundleKeepsDirectory(t *testing.T) {
	t.Parallel()

	got := Resolve("https://example.com", "content/blog/my-bundle/index.md", domain.FrontMatter{})
	want := "https://example.com/blog/my-bundle/"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestResolveUnderscoreIndexBundle(t *testing.T) {
	t.Parallel()

	got := Resolve("https://example.com", "content/blog/_index.md", domain.FrontMatter{})
	want := "https://example.com/blog/"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestResolveSlugOverrideOnPlainFile(t *testing.T) {
	t.Parallel()

	got := Resolve("https://example.com", "content/blog/post.md", domain.FrontMatter{Slug: "hello"})
	want := "https://example.com/blog/hello/"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestResolveWithoutContentSegment(t *testing.T) {
	t.Parallel()

	got := Resolve("https://example.com", "notes/post.md", domain.FrontMatter{})
	want := "https://example.com/posts/post/"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestResolveZeroDirectoriesAfterContent(t *testing.T) {
	t.Parallel()

	got := Resolve("https://example.com", "content/post.md", domain.FrontMatter{})
	want := "https://example.com/post/"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestResolveStripsTrailingSlashAndFallsBack(t *testing.T) {
	t.Parallel()

	got := Resolve("https://blog.example.org/", "content/blog/post.md", domain.FrontMatter{})
	want := "https://blog.example.org/blog/post/"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}

	got = Resolve("", "content/blog/post.md", domain.FrontMatter{})
	want = "https://example.com/blog/post/"
	if got != want {
		t.Fatalf("got %s, want %s", got, want)
	}
}

func TestResolveNeverEmitsContentSegment(t *testing.T) {
	t.Parallel()

	paths := []string{
		"content/blog/2025/11/post.md",
		"content/post.md",
		"site/content/blog/deep/nest/index.md",
	}
	for _, path := range paths {
		url := Resolve("https://example.com", path, domain.FrontMatter{})
		if strings.Contains(url, "/content/") {
			t.Fatalf("url %s leaks the content segment for path %s", url, path)
		}
	}
}

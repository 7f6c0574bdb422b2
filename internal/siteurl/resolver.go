package siteurl

import (
	"path/filepath"
	"strings"

	"syndicator/internal/domain"
)

const fallbackRoot = "https://example.com"

// Resolve builds the canonical public URL for a content file.
//
// Directory segments between the first "content" segment and the file
// itself become the URL path; a file outside any content directory falls
// back to a "posts" section. Leaf bundles (index.md, _index.md) take
// their slug from the containing directory, which a front-matter slug
// override replaces. Slugs are used as-is, no sanitization.
func Resolve(baseURL, filePath string, fm domain.FrontMatter) string {
	root := strings.TrimRight(baseURL, "/")
	if root == "" {
		root = fallbackRoot
	}

	norm := filepath.ToSlash(filepath.Clean(filePath))
	parts := strings.Split(norm, "/")
	filename := parts[len(parts)-1]

	dirs := []string{"posts"}
	for i, part := range parts {
		if part == "content" {
			dirs = parts[i+1 : len(parts)-1]
			break
		}
	}

	var urlPath string
	switch filename {
	case "index.md", "_index.md":
		if fm.Slug != "" {
			if len(dirs) > 0 {
				dirs[len(dirs)-1] = fm.Slug
			} else {
				dirs = []string{fm.Slug}
			}
		}
		urlPath = strings.Join(dirs, "/")
	default:
		slug := fm.Slug
		if slug == "" {
			slug = strings.TrimSuffix(filename, filepath.Ext(filename))
		}
		urlPath = strings.Join(append(dirs, slug), "/")
	}

	return root + "/" + urlPath + "/"
}

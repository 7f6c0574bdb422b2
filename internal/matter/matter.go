package matter

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"

	"syndicator/internal/domain"
)

// Parse extracts the typed front matter from a document's raw bytes.
// Both supported dialects are recognized by their opening marker:
// "+++" delimits TOML, "---" delimits YAML. A document without a header
// block, or with a malformed one, yields an error and is not eligible.
func Parse(source []byte) (domain.FrontMatter, error) {
	var fm domain.FrontMatter

	if _, err := frontmatter.MustParse(bytes.NewReader(source), &fm); err != nil {
		return domain.FrontMatter{}, fmt.Errorf("parse front matter: %w", err)
	}

	return fm, nil
}

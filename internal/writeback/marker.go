package writeback

import (
	"fmt"
	"io/fs"
	"os"
	"strings"

	"syndicator/internal/domain"
	"syndicator/internal/ports"
)

// Dialect carries the delimiter and assignment syntax of one header
// style, resolved once per document from its opening line.
type Dialect struct {
	Delimiter  string
	MarkerLine string
}

var (
	dialectTOML = Dialect{Delimiter: "+++", MarkerLine: "syndicated = true"}
	dialectYAML = Dialect{Delimiter: "---", MarkerLine: "syndicated: true"}
)

const defaultFileMode fs.FileMode = 0o644

// FileMarker rewrites a source document in place, inserting the
// syndicated flag immediately before the closing header delimiter.
type FileMarker struct{}

var _ ports.Marker = (*FileMarker)(nil)

// NewFileMarker returns the sole writer of source documents.
func NewFileMarker() *FileMarker {
	return &FileMarker{}
}

// MarkSyndicated inserts exactly one marker line before the first
// closing delimiter past the opening line. Every other byte of the file
// passes through unchanged. A file without a closing delimiter is
// rewritten identically.
func (m *FileMarker) MarkSyndicated(entry domain.ManifestEntry) error {
	raw, err := os.ReadFile(entry.FilePath)
	if err != nil {
		return fmt.Errorf("read %s: %w", entry.FilePath, err)
	}

	mode := defaultFileMode
	if info, statErr := os.Stat(entry.FilePath); statErr == nil {
		mode = info.Mode().Perm()
	}

	lines := strings.SplitAfter(string(raw), "\n")
	dialect := detectDialect(lines[0])

	var out strings.Builder
	out.Grow(len(raw) + len(dialect.MarkerLine) + 1)

	inserted := false
	for i, line := range lines {
		if !inserted && i > 0 && strings.TrimSpace(line) == dialect.Delimiter {
			out.WriteString(dialect.MarkerLine)
			out.WriteString("\n")
			inserted = true
		}
		out.WriteString(line)
	}

	if err := os.WriteFile(entry.FilePath, []byte(out.String()), mode); err != nil {
		return fmt.Errorf("write %s: %w", entry.FilePath, err)
	}

	return nil
}

func detectDialect(openingLine string) Dialect {
	if strings.TrimSpace(openingLine) == dialectTOML.Delimiter {
		return dialectTOML
	}
	return dialectYAML
}

package domain

// Target identifiers understood by the pipeline. A front-matter target
// outside this set produces no outcome at all (neither success nor failure).
const (
	TargetBluesky  = "bluesky"
	TargetMastodon = "mastodon"
)

// KnownTargets lists every platform the pipeline can address, configured
// or not.
var KnownTargets = []string{TargetBluesky, TargetMastodon}

// IsKnownTarget reports whether name identifies a supported platform.
func IsKnownTarget(name string) bool {
	for _, t := range KnownTargets {
		if t == name {
			return true
		}
	}
	return false
}

// FrontMatter is the typed view over a document's parsed header block.
type FrontMatter struct {
	Title            string   `yaml:"title" toml:"title"`
	Slug             string   `yaml:"slug" toml:"slug"`
	MicroblogContent string   `yaml:"microblog_content" toml:"microblog_content"`
	SyndicateTo      []string `yaml:"syndicate_to" toml:"syndicate_to"`
	Syndicated       bool     `yaml:"syndicated" toml:"syndicated"`
}

// DisplayTitle falls back to a placeholder when the header omits a title.
func (f FrontMatter) DisplayTitle() string {
	if f.Title == "" {
		return "New Post"
	}
	return f.Title
}

// ManifestEntry pairs an eligible document with its parsed header.
// Entries are created by the scanner and never mutated afterwards; the
// on-disk file is the only thing the pipeline writes to.
type ManifestEntry struct {
	FilePath string
	Matter   FrontMatter
}

// Delivery records one successful per-target publication, kept for audit.
type Delivery struct {
	FilePath string
	Target   string
	URL      string
	Title    string
}

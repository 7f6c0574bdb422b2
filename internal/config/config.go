package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv          = "SYNDICATOR_CONFIG"
	baseURLEnv             = "BASE_URL"
	bskyHandleEnv          = "BSKY_HANDLE"
	bskyPasswordEnv        = "BSKY_PASSWORD"
	mastodonAccessTokenEnv = "MASTODON_ACCESS_TOKEN"
	mastodonAPIBaseEnv     = "MASTODON_API_BASE"
	historyDBEnv           = "SYNDICATOR_HISTORY_DB"
)

// Config holds the process-wide settings shared by every component.
// It is read-only after Load returns.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Bluesky  BlueskyConfig  `yaml:"bluesky"`
	Mastodon MastodonConfig `yaml:"mastodon"`
	History  HistoryConfig  `yaml:"history"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SiteConfig describes the site the content tree publishes to.
type SiteConfig struct {
	BaseURL string `yaml:"baseUrl"`
}

// BlueskyConfig wires ATProto credentials and the platform text budget.
type BlueskyConfig struct {
	Host      string `yaml:"host"`
	Handle    string `yaml:"handle"`
	Password  string `yaml:"password"`
	CharLimit int    `yaml:"charLimit"`
}

// Configured reports whether enough credentials exist to log in.
func (b BlueskyConfig) Configured() bool {
	return b.Handle != "" && b.Password != ""
}

// MastodonConfig wires the instance endpoint, token, and text budget.
type MastodonConfig struct {
	APIBase     string `yaml:"apiBase"`
	AccessToken string `yaml:"accessToken"`
	CharLimit   int    `yaml:"charLimit"`
}

// Configured reports whether enough credentials exist to post.
func (m MastodonConfig) Configured() bool {
	return m.AccessToken != "" && m.APIBase != ""
}

// HistoryConfig points at the optional delivery-audit database.
type HistoryConfig struct {
	Path string `yaml:"path"`
}

// LoggingConfig selects the slog level.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides. An empty path falls back to the SYNDICATOR_CONFIG env var.
func Load(path string) Config {
	cfg := defaultConfig()

	if path == "" {
		path = os.Getenv(configPathEnv)
	}
	if path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(baseURLEnv); v != "" {
		c.Site.BaseURL = v
	}

	if v := os.Getenv(bskyHandleEnv); v != "" {
		c.Bluesky.Handle = v
	}
	if v := os.Getenv(bskyPasswordEnv); v != "" {
		c.Bluesky.Password = v
	}

	if v := os.Getenv(mastodonAccessTokenEnv); v != "" {
		c.Mastodon.AccessToken = v
	}
	if v := os.Getenv(mastodonAPIBaseEnv); v != "" {
		c.Mastodon.APIBase = v
	}

	if v := os.Getenv(historyDBEnv); v != "" {
		c.History.Path = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Site.BaseURL != "" {
		base.Site.BaseURL = override.Site.BaseURL
	}

	if override.Bluesky.Host != "" {
		base.Bluesky.Host = override.Bluesky.Host
	}
	if override.Bluesky.Handle != "" {
		base.Bluesky.Handle = override.Bluesky.Handle
	}
	if override.Bluesky.Password != "" {
		base.Bluesky.Password = override.Bluesky.Password
	}
	if override.Bluesky.CharLimit > 0 {
		base.Bluesky.CharLimit = override.Bluesky.CharLimit
	}

	if override.Mastodon.APIBase != "" {
		base.Mastodon.APIBase = override.Mastodon.APIBase
	}
	if override.Mastodon.AccessToken != "" {
		base.Mastodon.AccessToken = override.Mastodon.AccessToken
	}
	if override.Mastodon.CharLimit > 0 {
		base.Mastodon.CharLimit = override.Mastodon.CharLimit
	}

	if override.History.Path != "" {
		base.History.Path = override.History.Path
	}

	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Site: SiteConfig{BaseURL: "https://example.com"},
		Bluesky: BlueskyConfig{
			Host:      "https://bsky.social",
			CharLimit: 290,
		},
		Mastodon: MastodonConfig{
			CharLimit: 490,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

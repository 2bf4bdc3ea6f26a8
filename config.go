package portfolio

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/sgsasesora/portfolio/contact"
	"github.com/sgsasesora/portfolio/prismic"
)

// SiteConfig holds all configuration for the site.
type SiteConfig struct {
	Name        string `toml:"name"`        // Site name (default "Sara García Sánchez")
	URL         string `toml:"url"`         // Canonical URL (default "http://localhost:3000")
	Description string `toml:"description"` // Site description for RSS and meta tags
	Author      string `toml:"author"`      // Author name for JSON-LD
	Locale      string `toml:"locale"`      // html lang (default "es")

	Addr         string `toml:"addr"`          // Listen address (default ":3000")
	DatabasePath string `toml:"database_path"` // SQLite inbox path (default "data/portfolio.db")
	StaticDir    string `toml:"static_dir"`    // User-owned assets served under /public (default "public")
	ProfilePath  string `toml:"profile_path"`  // Profile TOML; empty uses the built-in profile

	SessionSecret string `toml:"session_secret"` // Required: session encryption secret
	CookieSecure  bool   `toml:"cookie_secure"`  // Set true for HTTPS

	Prismic PrismicConfig `toml:"prismic"`

	FormForwardURL    string   `toml:"form_forward_url"`    // Optional external form handler
	ContactLimit      int      `toml:"contact_limit"`       // Submissions per window per IP (default 5)
	ContactWindow     Duration `toml:"contact_window"`      // default 1m
	ContactResetAfter Duration `toml:"contact_reset_after"` // Success message lifetime (default 5s)

	FetchTimeout    Duration `toml:"fetch_timeout"`    // CMS fetch timeout (default 30s)
	ShutdownTimeout Duration `toml:"shutdown_timeout"` // Graceful shutdown (default 10s)
	ThumbCacheSize  int      `toml:"thumb_cache_size"` // Resized images kept in memory (default 64)
}

// PrismicConfig selects the CMS repository.
type PrismicConfig struct {
	Repository  string `toml:"repository"`
	Endpoint    string `toml:"endpoint"`
	AccessToken string `toml:"access_token"`
}

// ClientConfig returns the settings for prismic.NewClient.
func (p PrismicConfig) ClientConfig() prismic.Config {
	return prismic.Config{Repository: p.Repository, Endpoint: p.Endpoint, AccessToken: p.AccessToken}
}

// Enabled reports whether a CMS repository is configured.
func (p PrismicConfig) Enabled() bool {
	return p.Repository != "" || p.Endpoint != ""
}

// Duration is a time.Duration read from strings like "5s".
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Sara García Sánchez"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Locale == "" {
		c.Locale = "es"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/portfolio.db"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.ContactLimit == 0 {
		c.ContactLimit = 5
	}
	if c.ContactWindow.Duration == 0 {
		c.ContactWindow.Duration = time.Minute
	}
	if c.ContactResetAfter.Duration == 0 {
		c.ContactResetAfter.Duration = contact.ResetAfter
	}
	if c.FetchTimeout.Duration == 0 {
		c.FetchTimeout.Duration = 30 * time.Second
	}
	if c.ShutdownTimeout.Duration == 0 {
		c.ShutdownTimeout.Duration = 10 * time.Second
	}
	if c.ThumbCacheSize == 0 {
		c.ThumbCacheSize = 64
	}
}

// LoadConfig reads a TOML config file, then applies environment overrides.
// A missing file is not an error.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return SiteConfig{}, fmt.Errorf("reading config file: %w", err)
		default:
			if err := toml.Unmarshal(data, &cfg); err != nil {
				return SiteConfig{}, fmt.Errorf("unmarshaling config: %w", err)
			}
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return SiteConfig{}, err
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) applyEnv(lookup func(string) (string, bool)) error {
	str := map[string]*string{
		"SITE_NAME":          &c.Name,
		"SITE_URL":           &c.URL,
		"SITE_DESCRIPTION":   &c.Description,
		"SITE_AUTHOR":        &c.Author,
		"ADDR":               &c.Addr,
		"DATABASE_PATH":      &c.DatabasePath,
		"STATIC_DIR":         &c.StaticDir,
		"PROFILE_PATH":       &c.ProfilePath,
		"SESSION_SECRET":     &c.SessionSecret,
		"PRISMIC_REPOSITORY": &c.Prismic.Repository,
		"PRISMIC_ENDPOINT":   &c.Prismic.Endpoint,
		"PRISMIC_TOKEN":      &c.Prismic.AccessToken,
		"FORM_FORWARD_URL":   &c.FormForwardURL,
	}
	for key, dst := range str {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	if v, ok := lookup("COOKIE_SECURE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("COOKIE_SECURE: %w", err)
		}
		c.CookieSecure = b
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithPostSource replaces the CMS client, e.g. with a fixed list in tests.
func WithPostSource(src PostSource) Option {
	return func(a *App) {
		a.source = src
	}
}

// WithSubmitter replaces the contact submission chain.
func WithSubmitter(s contact.Submitter) Option {
	return func(a *App) {
		a.submitter = s
	}
}

package content

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"
)

//go:embed profile.toml
var defaultProfile []byte

// Profile is the static content of the home page.
type Profile struct {
	Name        string       `toml:"name"`
	Email       string       `toml:"email"`
	Hero        Hero         `toml:"hero"`
	Bio         string       `toml:"bio"`
	Skills      []string     `toml:"skills"`
	Values      []string     `toml:"values"`
	Languages   []Language   `toml:"languages"`
	Experience  []Entry      `toml:"experience"`
	Education   []Entry      `toml:"education"`
	Socials     []SocialLink `toml:"socials"`
	ContactText string       `toml:"contact_text"`
}

// Hero is the landing block of the home page.
type Hero struct {
	Headline string   `toml:"headline"`
	Emphasis string   `toml:"emphasis"`
	Intro    []string `toml:"intro"`
	Image    string   `toml:"image"`
	ImageAlt string   `toml:"image_alt"`
}

// Language is a spoken language with a self-assessed level.
type Language struct {
	Name       string `toml:"name"`
	Percentage int    `toml:"percentage"`
}

// Entry is one experience or education item.
type Entry struct {
	Title       string `toml:"title"`
	Org         string `toml:"org"`
	Years       string `toml:"years"`
	Description string `toml:"description"`
	Link        string `toml:"link,omitempty"`
	LinkText    string `toml:"link_text,omitempty"`
}

// SocialLink is an external profile.
type SocialLink struct {
	Name    string `toml:"name"`
	Acronym string `toml:"acronym"`
	URL     string `toml:"url"`
}

// BioParagraphs splits the biography on blank lines.
func (p Profile) BioParagraphs() []string {
	var out []string
	for _, para := range strings.Split(p.Bio, "\n\n") {
		if s := strings.TrimSpace(para); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Social returns the link with the given name, or false.
func (p Profile) Social(name string) (SocialLink, bool) {
	for _, s := range p.Socials {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return SocialLink{}, false
}

// ParseProfile decodes a TOML profile document.
func ParseProfile(data []byte) (Profile, error) {
	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("parse profile: %w", err)
	}
	if strings.TrimSpace(p.Name) == "" {
		return Profile{}, fmt.Errorf("parse profile: name is required")
	}
	return p, nil
}

// DefaultProfile returns the profile compiled into the binary.
func DefaultProfile() Profile {
	p, err := ParseProfile(defaultProfile)
	if err != nil {
		panic(err)
	}
	return p
}

// LoadProfile reads a profile from path. An empty path yields the
// built-in profile.
func LoadProfile(path string) (Profile, error) {
	if path == "" {
		return DefaultProfile(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("read profile: %w", err)
	}
	return ParseProfile(data)
}

// Logger is the subset of the server logger used while watching.
type Logger interface {
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// ProfileSource serves the current profile and can reload it from disk.
type ProfileSource struct {
	path    string
	current atomic.Pointer[Profile]
}

// NewProfileSource loads the profile at path (built-in when empty).
func NewProfileSource(path string) (*ProfileSource, error) {
	p, err := LoadProfile(path)
	if err != nil {
		return nil, err
	}
	s := &ProfileSource{path: path}
	s.current.Store(&p)
	return s, nil
}

// Profile returns the current profile.
func (s *ProfileSource) Profile() Profile {
	return *s.current.Load()
}

// Reload re-reads the profile file. On error the previous profile stays.
func (s *ProfileSource) Reload() error {
	p, err := LoadProfile(s.path)
	if err != nil {
		return err
	}
	s.current.Store(&p)
	return nil
}

// Watch reloads the profile whenever its file changes, until ctx is done.
// It returns immediately for the built-in profile.
func (s *ProfileSource) Watch(ctx context.Context, logger Logger) error {
	if s.path == "" {
		return nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create profile watcher: %w", err)
	}
	defer watcher.Close()

	// Editors replace files on save, so watch the directory.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watch profile: %w", err)
	}
	target := filepath.Clean(s.path)

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename) {
				debounce = time.After(200 * time.Millisecond)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warnf("profile watcher: %v", err)
		case <-debounce:
			debounce = nil
			if err := s.Reload(); err != nil {
				logger.Errorf("reload profile: %v", err)
				continue
			}
			logger.Infof("profile reloaded from %s", s.path)
		}
	}
}

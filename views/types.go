package views

import (
	"time"

	"github.com/sgsasesora/portfolio/contact"
	"github.com/sgsasesora/portfolio/content"
	"github.com/sgsasesora/portfolio/nav"
)

// SiteConfig holds site-wide settings every page needs.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
	Locale      string // html lang, e.g. "es"
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head> template.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string
}

// Nav is the navigation state a page is rendered with.
type Nav struct {
	Items       []nav.Item
	Page        nav.Page
	SidebarOpen bool
	BodyLocked  bool
	Scroll      string // JSON scroll command for site.js, empty for none
}

func (n Nav) PageName() string { return n.Page.String() }

// Contact is the contact form as rendered.
type Contact struct {
	Form       contact.Form
	Errors     contact.FieldErrors
	Status     contact.Status
	ResetAfter time.Duration
	CSRF       string
}

func (c Contact) Sending() bool { return c.Status == contact.StatusSending }
func (c Contact) Success() bool { return c.Status == contact.StatusSuccess }
func (c Contact) Failed() bool  { return c.Status == contact.StatusError }

// Error returns the message for a field, or "".
func (c Contact) Error(field string) string { return c.Errors[field] }

// ResetMillis is the success display time for site.js.
func (c Contact) ResetMillis() int64 { return c.ResetAfter.Milliseconds() }

// Data is passed to every page template.
type Data struct {
	Site    SiteConfig
	Meta    PageMeta
	Profile content.Profile
	Nav     Nav
	CSRF    string

	Posts   []content.BlogPost
	Loading bool
	Post    content.BlogPost
	Contact Contact
	Year    int

	main string
}

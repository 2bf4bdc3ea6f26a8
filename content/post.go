// Package content holds the site's content types: blog posts delivered by
// the CMS and the static profile shown on the home page.
package content

import (
	"errors"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sgsasesora/portfolio/richtext"
)

// TeaserSize is the number of posts shown in the home page blog section.
const TeaserSize = 3

// ErrPostNotFound is returned when no post matches an identifier.
var ErrPostNotFound = errors.New("content: post not found")

// FeaturedImage is the header image of a post.
type FeaturedImage struct {
	URL string
	Alt string
}

// PostData carries the editable fields of a post document.
type PostData struct {
	Title         richtext.RichText
	Subtitle      richtext.RichText
	FeaturedImage FeaturedImage
	MainContent   richtext.RichText
	PublishDate   *time.Time
}

// BlogPost is a CMS document of type blog_post. ID is stable and unique,
// UID is the optional human-readable slug.
type BlogPost struct {
	ID   string
	UID  string
	Data PostData
}

// Identifier returns the value used in the post URL: UID when present,
// otherwise ID.
func (p BlogPost) Identifier() string {
	if p.UID != "" {
		return p.UID
	}
	return p.ID
}

// Link returns the site-relative URL of the post.
func (p BlogPost) Link() string {
	return "/blog/" + p.Identifier() + "/"
}

// Title returns the plain-text title.
func (p BlogPost) Title() string {
	return strings.TrimSpace(p.Data.Title.AsText())
}

// Summary returns the plain-text subtitle.
func (p BlogPost) Summary() string {
	return strings.TrimSpace(p.Data.Subtitle.AsText())
}

// ImageAlt returns the featured image alt text, falling back to the title.
func (p BlogPost) ImageAlt() string {
	if p.Data.FeaturedImage.Alt != "" {
		return p.Data.FeaturedImage.Alt
	}
	if t := p.Title(); t != "" {
		return t
	}
	return "Imagen de entrada de blog"
}

// PublishDateISO returns the publish date as YYYY-MM-DD, or "".
func (p BlogPost) PublishDateISO() string {
	if p.Data.PublishDate == nil {
		return ""
	}
	return p.Data.PublishDate.Format("2006-01-02")
}

// SortByPublishDate orders posts newest first. Undated posts go last; ties
// keep their input order.
func SortByPublishDate(posts []BlogPost) {
	sort.SliceStable(posts, func(i, j int) bool {
		a, b := posts[i].Data.PublishDate, posts[j].Data.PublishDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.After(*b)
	})
}

// Teaser returns the first min(TeaserSize, len(posts)) posts.
func Teaser(posts []BlogPost) []BlogPost {
	if len(posts) <= TeaserSize {
		return posts
	}
	return posts[:TeaserSize]
}

// Find looks a post up by UID first, then by ID.
func Find(posts []BlogPost, identifier string) (BlogPost, error) {
	if identifier == "" {
		return BlogPost{}, ErrPostNotFound
	}
	for _, p := range posts {
		if p.UID != "" && p.UID == identifier {
			return p, nil
		}
	}
	for _, p := range posts {
		if p.ID == identifier {
			return p, nil
		}
	}
	return BlogPost{}, ErrPostNotFound
}

var monthsES = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// FormatDate renders t as a long es-ES date, e.g. "5 de enero de 2024".
func FormatDate(t time.Time) string {
	return strconv.Itoa(t.Day()) + " de " + monthsES[t.Month()-1] + " de " + strconv.Itoa(t.Year())
}

// FormatPublishDate formats the post date or returns the "not available" copy.
func (p BlogPost) FormatPublishDate() string {
	if p.Data.PublishDate == nil {
		return "Fecha no disponible"
	}
	return FormatDate(*p.Data.PublishDate)
}

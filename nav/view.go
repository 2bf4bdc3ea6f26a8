// Package nav coordinates which page is shown and how the browser scrolls
// when it changes. All types are per-request values and are not safe for
// concurrent use.
package nav

import (
	"errors"
	"strconv"
	"strings"

	"github.com/sgsasesora/portfolio/content"
)

const (
	// Breakpoint is the viewport width below which the sidebar collapses.
	Breakpoint = 768
	// MobileHeaderHeight is the fixed header height shown below Breakpoint.
	MobileHeaderHeight = 64
)

var (
	ErrPostNotFound   = content.ErrPostNotFound
	ErrUnknownSection = errors.New("nav: unknown section")
)

// Item is a sidebar entry pointing at a home section.
type Item struct {
	Name string
	ID   string
}

var items = []Item{
	{Name: "Biografía", ID: "biography"},
	{Name: "Experiencia", ID: "expertise"},
	{Name: "Educación", ID: "education"},
	{Name: "Blog", ID: "blog"},
	{Name: "Contacto", ID: "contact"},
}

// Items returns the sidebar entries in display order.
func Items() []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// IsSection reports whether id names a home section anchor.
func IsSection(id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

// Page selects a top-level layout.
type Page int

const (
	PageHome Page = iota
	PageBlogList
	PageBlogDetail
)

func (p Page) String() string {
	switch p {
	case PageHome:
		return "home"
	case PageBlogList:
		return "blog-list"
	case PageBlogDetail:
		return "blog-detail"
	}
	return "page(" + strconv.Itoa(int(p)) + ")"
}

// ViewState is the active page. The zero value is Home.
type ViewState struct {
	page Page
	post *content.BlogPost
}

func Home() ViewState     { return ViewState{page: PageHome} }
func BlogList() ViewState { return ViewState{page: PageBlogList} }

// BlogDetail returns the detail view for post.
func BlogDetail(post content.BlogPost) ViewState {
	return ViewState{page: PageBlogDetail, post: &post}
}

func (v ViewState) Page() Page { return v.page }

// Post returns the selected post; ok is false outside BlogDetail.
func (v ViewState) Post() (post content.BlogPost, ok bool) {
	if v.page != PageBlogDetail || v.post == nil {
		return content.BlogPost{}, false
	}
	return *v.post, true
}

// Viewport is the client's layout width as last reported.
type Viewport struct {
	Width int
	Known bool
}

// Mobile reports whether the viewport is below Breakpoint. An unknown
// viewport is treated as desktop.
func (v Viewport) Mobile() bool {
	return v.Known && v.Width < Breakpoint
}

// ParseViewport reads a width reported by the client, such as the
// X-Viewport-Width or Sec-CH-Viewport-Width header.
func ParseViewport(s string) Viewport {
	w, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || w <= 0 {
		return Viewport{}
	}
	return Viewport{Width: w, Known: true}
}

package nav

import (
	"fmt"

	"github.com/sgsasesora/portfolio/content"
)

// PostFinder resolves a post by uid, falling back to id.
type PostFinder interface {
	Find(identifier string) (content.BlogPost, error)
}

// Navigator applies user intents to a Store and schedules the matching
// scroll on its Orchestrator.
type Navigator struct {
	store  *Store
	scroll *Orchestrator
	posts  PostFinder
}

func NewNavigator(store *Store, posts PostFinder) *Navigator {
	return &Navigator{
		store:  store,
		scroll: NewOrchestrator(store.Viewport(), ""),
		posts:  posts,
	}
}

func (n *Navigator) Store() *Store               { return n.store }
func (n *Navigator) Orchestrator() *Orchestrator { return n.scroll }

// Mount handles a full page load of v. A full load is a navigation, so
// an open mobile sidebar is closed. An anchor is only honoured on Home.
func (n *Navigator) Mount(v ViewState, anchor string) {
	if anchor != "" && !IsSection(anchor) {
		anchor = ""
	}
	n.store.CloseSidebarIfMobile()
	n.store.SetView(v)
	n.scroll.Mount(v.Page(), anchor)
}

// GoHome shows the home page and scrolls smoothly to the top.
func (n *Navigator) GoHome() {
	n.store.CloseSidebarIfMobile()
	n.store.SetView(Home())
	n.scroll.RequestTop(Smooth)
}

// GoToBlogList shows the full post list from its top.
func (n *Navigator) GoToBlogList() {
	n.store.CloseSidebarIfMobile()
	n.store.SetView(BlogList())
	n.scroll.RequestTop(Instant)
}

// SelectPost opens the post matching identifier. When nothing matches the
// view falls back to the blog list and the error wraps ErrPostNotFound.
func (n *Navigator) SelectPost(identifier string) (ViewState, error) {
	n.store.CloseSidebarIfMobile()
	var (
		post content.BlogPost
		err  = ErrPostNotFound
	)
	if n.posts != nil {
		post, err = n.posts.Find(identifier)
	}
	if err != nil {
		n.store.SetView(BlogList())
		n.scroll.RequestTop(Instant)
		return n.store.View(), fmt.Errorf("select post %q: %w", identifier, err)
	}
	n.store.SetView(BlogDetail(post))
	n.scroll.RequestTop(Instant)
	return n.store.View(), nil
}

// NavigateToSection scrolls to a home section. Off the home page it
// switches to Home first and holds the scroll until the home layout
// reports mounted.
func (n *Navigator) NavigateToSection(anchor string) error {
	if !IsSection(anchor) {
		return fmt.Errorf("%w: %q", ErrUnknownSection, anchor)
	}
	n.store.CloseSidebarIfMobile()
	if n.store.View().Page() == PageHome {
		n.scroll.RequestAnchor(anchor, true)
	} else {
		n.store.SetView(Home())
		n.scroll.RequestAnchor(anchor, false)
	}
	return nil
}

// ToggleSidebar opens or closes the mobile sidebar.
func (n *Navigator) ToggleSidebar() {
	n.store.ToggleSidebar()
}

// SetViewport records a new client width on the store and the orchestrator.
func (n *Navigator) SetViewport(vp Viewport) {
	n.store.SetViewport(vp)
	n.scroll.SetViewport(vp)
}

// Mounted reports that the layout for the current view is in the document
// and returns the scroll command to run against it, if any.
func (n *Navigator) Mounted() (ScrollCommand, bool) {
	n.scroll.LayoutMounted(n.store.View().Page())
	return n.scroll.Drain()
}

package nav

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sgsasesora/portfolio/content"
)

type postList []content.BlogPost

func (p postList) Find(identifier string) (content.BlogPost, error) {
	return content.Find(p, identifier)
}

var (
	mobile  = Viewport{Width: 375, Known: true}
	desktop = Viewport{Width: 1280, Known: true}
)

func testPosts() postList {
	return postList{
		{ID: "X1", UID: "primera"},
		{ID: "X2"},
	}
}

func TestViewport(t *testing.T) {
	tests := []struct {
		in     string
		want   Viewport
		mobile bool
	}{
		{"375", Viewport{Width: 375, Known: true}, true},
		{" 767 ", Viewport{Width: 767, Known: true}, true},
		{"768", Viewport{Width: 768, Known: true}, false},
		{"", Viewport{}, false},
		{"wide", Viewport{}, false},
		{"-4", Viewport{}, false},
	}
	for _, tt := range tests {
		got := ParseViewport(tt.in)
		if got != tt.want {
			t.Errorf("ParseViewport(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		if got.Mobile() != tt.mobile {
			t.Errorf("ParseViewport(%q).Mobile() = %v", tt.in, got.Mobile())
		}
	}
}

func TestItems(t *testing.T) {
	var ids []string
	for _, it := range Items() {
		ids = append(ids, it.ID)
	}
	if diff := cmp.Diff([]string{"biography", "expertise", "education", "blog", "contact"}, ids); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
	Items()[0].ID = "mutated"
	if !IsSection("biography") {
		t.Error("Items() returned shared backing array")
	}
}

func TestSidebarLock(t *testing.T) {
	s := NewStore(mobile)
	s.ToggleSidebar()
	if !s.SidebarOpen() || !s.BodyLocked() {
		t.Fatalf("open=%v locked=%v after toggle", s.SidebarOpen(), s.BodyLocked())
	}
	s.ToggleSidebar()
	if s.SidebarOpen() || s.BodyLocked() {
		t.Fatalf("open=%v locked=%v after second toggle", s.SidebarOpen(), s.BodyLocked())
	}

	s.ToggleSidebar()
	s.SetViewport(desktop)
	if s.SidebarOpen() || s.BodyLocked() {
		t.Errorf("widening kept sidebar open=%v locked=%v", s.SidebarOpen(), s.BodyLocked())
	}

	s = NewStore(mobile)
	s.ToggleSidebar()
	s.Close()
	if s.BodyLocked() || s.SidebarOpen() {
		t.Errorf("after Close open=%v locked=%v", s.SidebarOpen(), s.BodyLocked())
	}
}

func TestSidebarIgnoredOnDesktop(t *testing.T) {
	s := NewStore(desktop)
	s.ToggleSidebar()
	if s.SidebarOpen() || s.BodyLocked() {
		t.Errorf("desktop toggle open=%v locked=%v", s.SidebarOpen(), s.BodyLocked())
	}
	s = Restore(Snapshot{SidebarOpen: true}, desktop)
	if s.SidebarOpen() {
		t.Error("restored desktop store has an open sidebar")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	s := NewStore(mobile)
	s.ToggleSidebar()
	r := Restore(s.Snapshot(), mobile)
	if !r.SidebarOpen() || !r.BodyLocked() {
		t.Errorf("restored open=%v locked=%v", r.SidebarOpen(), r.BodyLocked())
	}
}

func TestLeavingDetailDropsPost(t *testing.T) {
	s := NewStore(desktop)
	s.SetView(BlogDetail(content.BlogPost{ID: "a"}))
	if _, ok := s.View().Post(); !ok {
		t.Fatal("detail view has no post")
	}
	s.SetView(BlogList())
	if _, ok := s.View().Post(); ok {
		t.Error("blog list view still carries a post")
	}
	s.SetView(ViewState{page: PageBlogDetail})
	if s.View().Page() != PageBlogList {
		t.Errorf("detail without post became %v", s.View().Page())
	}
}

func TestNavigatorClosesMobileSidebar(t *testing.T) {
	ops := map[string]func(n *Navigator){
		"GoHome":            func(n *Navigator) { n.GoHome() },
		"GoToBlogList":      func(n *Navigator) { n.GoToBlogList() },
		"SelectPost":        func(n *Navigator) { n.SelectPost("primera") },
		"SelectPostMissing": func(n *Navigator) { n.SelectPost("nope") },
		"NavigateToSection": func(n *Navigator) { n.NavigateToSection("contact") },
	}
	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			s := NewStore(mobile)
			s.ToggleSidebar()
			op(NewNavigator(s, testPosts()))
			if s.SidebarOpen() || s.BodyLocked() {
				t.Errorf("sidebar open=%v locked=%v", s.SidebarOpen(), s.BodyLocked())
			}
		})
	}
}

func TestGoHomeAndBlogList(t *testing.T) {
	n := NewNavigator(NewStore(desktop), testPosts())
	n.GoToBlogList()
	cmd, ok := n.Mounted()
	if n.Store().View().Page() != PageBlogList {
		t.Fatalf("page = %v", n.Store().View().Page())
	}
	if !ok || cmd != (ScrollCommand{Behavior: Instant}) {
		t.Errorf("blog list scroll = %+v, %v", cmd, ok)
	}

	n.GoHome()
	cmd, ok = n.Mounted()
	if !ok || cmd != (ScrollCommand{Behavior: Smooth}) {
		t.Errorf("home scroll = %+v, %v", cmd, ok)
	}
}

func TestSelectPost(t *testing.T) {
	n := NewNavigator(NewStore(desktop), testPosts())

	v, err := n.SelectPost("primera")
	if err != nil {
		t.Fatalf("SelectPost(uid): %v", err)
	}
	if p, ok := v.Post(); !ok || p.ID != "X1" {
		t.Errorf("selected %+v, %v", p, ok)
	}
	if cmd, ok := n.Mounted(); !ok || !cmd.IsTop() || cmd.Behavior != Instant {
		t.Errorf("detail scroll = %+v, %v", cmd, ok)
	}

	v, err = n.SelectPost("X2")
	if err != nil {
		t.Fatalf("SelectPost(id): %v", err)
	}
	if p, _ := v.Post(); p.ID != "X2" {
		t.Errorf("selected %q, want X2", p.ID)
	}
}

func TestSelectPostIsTotal(t *testing.T) {
	for _, id := range []string{"nonexistent-uid", "", "X3", "PRIMERA"} {
		n := NewNavigator(NewStore(desktop), testPosts())
		n.SelectPost("primera")
		v, err := n.SelectPost(id)
		if !errors.Is(err, ErrPostNotFound) {
			t.Errorf("SelectPost(%q) error = %v", id, err)
		}
		if v.Page() != PageBlogList {
			t.Errorf("SelectPost(%q) page = %v, want blog list", id, v.Page())
		}
		if _, ok := n.Store().View().Post(); ok {
			t.Errorf("SelectPost(%q) left a stale post", id)
		}
	}

	n := NewNavigator(NewStore(desktop), nil)
	if _, err := n.SelectPost("primera"); !errors.Is(err, ErrPostNotFound) {
		t.Errorf("nil finder error = %v", err)
	}
}

func TestNavigateToSectionDefersUntilHomeMounts(t *testing.T) {
	s := NewStore(mobile)
	s.SetView(BlogList())
	n := NewNavigator(s, testPosts())

	if err := n.NavigateToSection("education"); err != nil {
		t.Fatalf("NavigateToSection: %v", err)
	}
	if s.View().Page() != PageHome {
		t.Fatalf("page = %v, want home", s.View().Page())
	}
	if _, ok := n.Orchestrator().Drain(); ok {
		t.Fatal("scroll issued before the home layout mounted")
	}
	if !n.Orchestrator().Pending() {
		t.Fatal("no pending scroll")
	}

	cmd, ok := n.Mounted()
	want := ScrollCommand{Target: "education", Behavior: Smooth, Offset: MobileHeaderHeight}
	if !ok || cmd != want {
		t.Errorf("scroll after mount = %+v, %v; want %+v", cmd, ok, want)
	}
	if cur := n.Orchestrator().Current(); cur != "education" {
		t.Errorf("current anchor = %q", cur)
	}
}

func TestNavigateToSectionOnHomeIsImmediate(t *testing.T) {
	n := NewNavigator(NewStore(desktop), testPosts())
	if err := n.NavigateToSection("blog"); err != nil {
		t.Fatal(err)
	}
	cmd, ok := n.Orchestrator().Drain()
	if !ok || cmd != (ScrollCommand{Target: "blog", Behavior: Smooth}) {
		t.Errorf("scroll = %+v, %v", cmd, ok)
	}
}

func TestNavigateToSectionIdempotent(t *testing.T) {
	n := NewNavigator(NewStore(desktop), testPosts())
	n.NavigateToSection("contact")
	if _, ok := n.Mounted(); !ok {
		t.Fatal("first request issued nothing")
	}
	for i := 0; i < 3; i++ {
		n.NavigateToSection("contact")
		if cmd, ok := n.Mounted(); ok {
			t.Errorf("repeat %d issued %+v", i, cmd)
		}
	}

	// A later request cannot know where the visitor has scrolled since,
	// so the same section scrolls again.
	next := NewNavigator(Restore(n.Store().Snapshot(), desktop), testPosts())
	next.NavigateToSection("contact")
	if cmd, ok := next.Mounted(); !ok || cmd.Target != "contact" {
		t.Errorf("repeat across requests = %+v, %v", cmd, ok)
	}
	next.NavigateToSection("biography")
	if cmd, ok := next.Mounted(); !ok || cmd.Target != "biography" {
		t.Errorf("different anchor = %+v, %v", cmd, ok)
	}
}

func TestNavigateToUnknownSection(t *testing.T) {
	s := NewStore(desktop)
	s.SetView(BlogList())
	n := NewNavigator(s, testPosts())
	if err := n.NavigateToSection("pricing"); !errors.Is(err, ErrUnknownSection) {
		t.Fatalf("error = %v", err)
	}
	if s.View().Page() != PageBlogList {
		t.Errorf("view changed to %v", s.View().Page())
	}
}

func TestMount(t *testing.T) {
	n := NewNavigator(NewStore(desktop), testPosts())
	n.Mount(Home(), "")
	if cmd, ok := n.Mounted(); ok {
		t.Errorf("plain load issued %+v", cmd)
	}

	n = NewNavigator(NewStore(desktop), testPosts())
	n.Mount(Home(), "expertise")
	if _, ok := n.Orchestrator().Drain(); ok {
		t.Error("anchor load scrolled before layout mounted")
	}
	if cmd, ok := n.Mounted(); !ok || cmd.Target != "expertise" {
		t.Errorf("anchor load = %+v, %v", cmd, ok)
	}

	n = NewNavigator(NewStore(desktop), testPosts())
	n.Mount(BlogList(), "expertise")
	if cmd, ok := n.Mounted(); ok {
		t.Errorf("anchor on blog list issued %+v", cmd)
	}
}

func TestMountClosesMobileSidebar(t *testing.T) {
	s := Restore(Snapshot{SidebarOpen: true}, mobile)
	if !s.SidebarOpen() {
		t.Fatal("restored mobile store has a closed sidebar")
	}
	n := NewNavigator(s, testPosts())
	n.Mount(BlogList(), "")
	if s.SidebarOpen() || s.BodyLocked() {
		t.Errorf("after full load open=%v locked=%v", s.SidebarOpen(), s.BodyLocked())
	}
	if s.Snapshot().SidebarOpen {
		t.Error("snapshot still records an open sidebar")
	}
}

func TestOrchestratorSupersedes(t *testing.T) {
	o := NewOrchestrator(desktop, "")
	o.RequestAnchor("biography", false)
	o.RequestAnchor("contact", false)
	o.LayoutMounted(PageHome)
	cmd, ok := o.Drain()
	if !ok || cmd.Target != "contact" {
		t.Errorf("pending replaced = %+v, %v", cmd, ok)
	}

	o.RequestAnchor("biography", false)
	o.RequestTop(Instant)
	o.LayoutMounted(PageHome)
	cmd, ok = o.Drain()
	if !ok || !cmd.IsTop() {
		t.Errorf("top did not supersede pending anchor: %+v, %v", cmd, ok)
	}

	o.RequestAnchor("blog", false)
	o.LayoutMounted(PageBlogList)
	if o.Pending() {
		t.Error("pending anchor kept after a non-home mount")
	}
	if _, ok := o.Drain(); ok {
		t.Error("non-home mount issued an anchor scroll")
	}
}

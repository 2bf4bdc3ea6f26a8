package nav

// ScrollLock guards body scrolling while the mobile sidebar covers the page.
type ScrollLock struct {
	held bool
}

func (l *ScrollLock) Acquire()   { l.held = true }
func (l *ScrollLock) Release()   { l.held = false }
func (l *ScrollLock) Held() bool { return l.held }

// Snapshot is the part of the store kept between requests.
type Snapshot struct {
	SidebarOpen bool `json:"sidebar_open"`
}

// Store holds the view, the sidebar and the viewport for one client.
type Store struct {
	view     ViewState
	sidebar  bool
	viewport Viewport
	lock     ScrollLock
}

func NewStore(vp Viewport) *Store {
	return &Store{view: Home(), viewport: vp}
}

// Restore rebuilds a store from a snapshot taken on an earlier request.
func Restore(snap Snapshot, vp Viewport) *Store {
	s := NewStore(vp)
	if snap.SidebarOpen && vp.Mobile() {
		s.sidebar = true
		s.lock.Acquire()
	}
	return s
}

func (s *Store) Snapshot() Snapshot {
	return Snapshot{SidebarOpen: s.SidebarOpen()}
}

func (s *Store) View() ViewState    { return s.view }
func (s *Store) Viewport() Viewport { return s.viewport }

// SetView switches the active page.
func (s *Store) SetView(v ViewState) {
	if v.page == PageBlogDetail && v.post == nil {
		v = BlogList()
	}
	s.view = v
}

// SidebarOpen reports whether the sidebar is open. Above the breakpoint
// the sidebar is always visible and this returns false.
func (s *Store) SidebarOpen() bool {
	return s.sidebar && s.viewport.Mobile()
}

func (s *Store) ToggleSidebar() {
	if s.SidebarOpen() {
		s.closeSidebar()
		return
	}
	if !s.viewport.Mobile() {
		return
	}
	s.sidebar = true
	s.lock.Acquire()
}

func (s *Store) CloseSidebarIfMobile() {
	if s.SidebarOpen() {
		s.closeSidebar()
	}
}

// SetViewport records a new width. Growing past the breakpoint closes the
// sidebar and releases the scroll lock.
func (s *Store) SetViewport(vp Viewport) {
	s.viewport = vp
	if !vp.Mobile() {
		s.closeSidebar()
	}
}

func (s *Store) BodyLocked() bool { return s.lock.Held() }

// Close closes the sidebar and releases the scroll lock. The store stays
// usable.
func (s *Store) Close() {
	s.closeSidebar()
}

func (s *Store) closeSidebar() {
	s.sidebar = false
	s.lock.Release()
}

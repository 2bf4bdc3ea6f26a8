package nav

// Behavior is the scroll animation requested from the browser.
type Behavior string

const (
	Smooth  Behavior = "smooth"
	Instant Behavior = "instant"
)

// ScrollCommand tells the client where to scroll once the layout it
// belongs to has mounted. An empty Target means the top of the page.
type ScrollCommand struct {
	Target   string   `json:"target,omitempty"`
	Behavior Behavior `json:"behavior"`
	Offset   int      `json:"offset,omitempty"`
}

func (c ScrollCommand) IsTop() bool { return c.Target == "" }

// Orchestrator turns navigation into at most one scroll command per
// render. Anchor scrolls aimed at a layout that has not mounted yet are
// held until LayoutMounted reports the home layout.
type Orchestrator struct {
	viewport Viewport
	current  string
	pending  *ScrollCommand
	issued   *ScrollCommand
}

// NewOrchestrator starts with current as the anchor the client is already
// scrolled to ("" for none).
func NewOrchestrator(vp Viewport, current string) *Orchestrator {
	return &Orchestrator{viewport: vp, current: current}
}

// Mount handles a fresh page load. An anchor on the home page is scrolled
// to after the layout mounts; anything else produces no command.
func (o *Orchestrator) Mount(page Page, anchor string) {
	o.current = ""
	o.pending = nil
	o.issued = nil
	if page != PageHome || anchor == "" {
		return
	}
	cmd := o.anchorCommand(anchor)
	o.pending = &cmd
}

// RequestTop resets the scroll position, superseding any pending request.
func (o *Orchestrator) RequestTop(b Behavior) {
	o.pending = nil
	o.current = ""
	o.issued = &ScrollCommand{Behavior: b}
}

// RequestAnchor scrolls to anchor. When mounted is false the command waits
// for LayoutMounted(PageHome). Requesting the anchor already scrolled to,
// with nothing pending, is a no-op.
func (o *Orchestrator) RequestAnchor(anchor string, mounted bool) {
	if mounted && o.pending == nil && anchor == o.current {
		return
	}
	cmd := o.anchorCommand(anchor)
	if !mounted {
		o.issued = nil
		o.pending = &cmd
		return
	}
	o.pending = nil
	o.current = anchor
	o.issued = &cmd
}

// LayoutMounted releases a pending anchor scroll once the home layout is
// in the document. Other layouts drop it.
func (o *Orchestrator) LayoutMounted(page Page) {
	if o.pending == nil {
		return
	}
	if page != PageHome {
		o.pending = nil
		return
	}
	cmd := *o.pending
	o.pending = nil
	o.current = cmd.Target
	o.issued = &cmd
}

// Drain returns the command for the current render and clears it.
func (o *Orchestrator) Drain() (ScrollCommand, bool) {
	if o.issued == nil {
		return ScrollCommand{}, false
	}
	cmd := *o.issued
	o.issued = nil
	return cmd, true
}

// Pending reports whether an anchor scroll is waiting for a mount.
func (o *Orchestrator) Pending() bool { return o.pending != nil }

// Current is the anchor the client is scrolled to, "" for none.
func (o *Orchestrator) Current() string { return o.current }

// SetViewport updates the width used to compute header offsets.
func (o *Orchestrator) SetViewport(vp Viewport) { o.viewport = vp }

func (o *Orchestrator) anchorCommand(anchor string) ScrollCommand {
	cmd := ScrollCommand{Target: anchor, Behavior: Smooth}
	if o.viewport.Mobile() {
		cmd.Offset = MobileHeaderHeight
	}
	return cmd
}

package portfolio

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/sgsasesora/portfolio/nav"
	"github.com/sgsasesora/portfolio/views"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus writes a templ component with a specific HTTP status code.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(code)
	return cmp.Render(c.Request().Context(), c.Response().Writer)
}

type settleTrigger struct {
	Scroll nav.ScrollCommand `json:"scroll"`
}

// commitNav reports the layout as mounted, saves the nav snapshot and
// returns the nav state to render with. Partial responses carry the
// state in headers for site.js; full pages carry the scroll command in
// the body's data-scroll attribute.
func (a *App) commitNav(c echo.Context, n *nav.Navigator, pushURL string) (views.Nav, error) {
	cmd, ok := n.Mounted()
	store := n.Store()
	nv := views.Nav{
		Items:       nav.Items(),
		Page:        store.View().Page(),
		SidebarOpen: store.SidebarOpen(),
		BodyLocked:  store.BodyLocked(),
	}
	if err := saveNavSnapshot(c, store.Snapshot()); err != nil {
		c.Logger().Warnf("save nav session: %v", err)
	}

	if !isPartial(c) {
		if ok {
			b, err := json.Marshal(cmd)
			if err != nil {
				return nv, err
			}
			nv.Scroll = string(b)
		}
		return nv, nil
	}

	h := c.Response().Header()
	if pushURL != "" {
		h.Set("HX-Push-Url", pushURL)
	}
	h.Set("X-Page", nv.Page.String())
	h.Set("X-Sidebar-Open", strconv.FormatBool(nv.SidebarOpen))
	h.Set("X-Body-Locked", strconv.FormatBool(nv.BodyLocked))
	if ok {
		b, err := json.Marshal(settleTrigger{Scroll: cmd})
		if err != nil {
			return nv, err
		}
		h.Set("HX-Trigger-After-Settle", string(b))
	}
	return nv, nil
}

// renderPage writes the partial for an in-page navigation, or the full
// layout for a direct load.
func renderPage(c echo.Context, code int, d views.Data, partial, full func(views.Data) templ.Component) error {
	if isPartial(c) {
		return RenderStatus(c, code, partial(d))
	}
	return RenderStatus(c, code, full(d))
}

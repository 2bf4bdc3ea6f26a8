package portfolio

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sgsasesora/portfolio/contact"
	"github.com/sgsasesora/portfolio/content"
	"github.com/sgsasesora/portfolio/nav"
	"github.com/sgsasesora/portfolio/views"
)

// navigator rebuilds the visitor's navigation state for this request. For
// in-page requests the view the client is currently showing is taken from
// HX-Current-URL.
func (a *App) navigator(c echo.Context) *nav.Navigator {
	store := nav.Restore(navSnapshot(c), requestViewport(c))
	if isPartial(c) {
		store.SetView(a.currentView(c.Request().Header.Get("HX-Current-URL")))
	}
	return nav.NewNavigator(store, a.Cache)
}

func (a *App) currentView(raw string) nav.ViewState {
	u, err := url.Parse(raw)
	if err != nil {
		return nav.Home()
	}
	path := strings.TrimSuffix(u.Path, "/")
	switch {
	case path == "/blog":
		return nav.BlogList()
	case strings.HasPrefix(path, "/blog/"):
		post, err := a.Cache.Find(strings.TrimPrefix(path, "/blog/"))
		if err != nil {
			return nav.BlogList()
		}
		return nav.BlogDetail(post)
	default:
		return nav.Home()
	}
}

// pageData fills in what every page shares.
func (a *App) pageData(c echo.Context, meta views.PageMeta, nv views.Nav) views.Data {
	csrf := CsrfToken(c)
	return views.Data{
		Site:    a.viewSite(),
		Meta:    meta,
		Profile: a.Profile.Profile(),
		Nav:     nv,
		CSRF:    csrf,
		Contact: a.contactView(c, nil, csrf),
		Year:    time.Now().Year(),
	}
}

func (a *App) handleHome(c echo.Context) error {
	n := a.navigator(c)
	section := c.QueryParam("section")
	pushURL := "/"
	if section != "" && nav.IsSection(section) {
		pushURL = "/?section=" + url.QueryEscape(section)
	}

	if isPartial(c) {
		onHome := n.Store().View().Page() == nav.PageHome
		if err := n.NavigateToSection(section); err != nil {
			n.GoHome()
		}
		if onHome {
			// Already showing home: only the scroll is needed.
			if _, err := a.commitNav(c, n, pushURL); err != nil {
				return err
			}
			return c.NoContent(http.StatusNoContent)
		}
	} else {
		n.Mount(nav.Home(), section)
	}

	nv, err := a.commitNav(c, n, pushURL)
	if err != nil {
		return err
	}
	return renderPage(c, http.StatusOK, a.homeData(c, nv), a.Views.HomePartial, a.Views.Home)
}

func (a *App) homeData(c echo.Context, nv views.Nav) views.Data {
	d := a.pageData(c, a.homeMeta(), nv)
	posts, loading := a.Cache.Snapshot()
	d.Posts = content.Teaser(posts)
	d.Loading = loading
	return d
}

func (a *App) handleBlogList(c echo.Context) error {
	n := a.navigator(c)
	if isPartial(c) {
		n.GoToBlogList()
	} else {
		n.Mount(nav.BlogList(), "")
	}
	nv, err := a.commitNav(c, n, "/blog/")
	if err != nil {
		return err
	}
	d := a.pageData(c, a.blogMeta(), nv)
	d.Posts, d.Loading = a.Cache.Snapshot()
	return renderPage(c, http.StatusOK, d, a.Views.BlogListPartial, a.Views.BlogList)
}

func (a *App) handlePost(c echo.Context) error {
	id := c.Param("identifier")
	n := a.navigator(c)

	var err error
	if isPartial(c) {
		_, err = n.SelectPost(id)
	} else {
		view := nav.BlogList()
		if p, ferr := a.Cache.Find(id); ferr == nil {
			view = nav.BlogDetail(p)
		} else {
			err = ferr
		}
		n.Mount(view, "")
	}

	pushURL := "/blog/" + url.PathEscape(id) + "/"
	nv, cerr := a.commitNav(c, n, pushURL)
	if cerr != nil {
		return cerr
	}

	if err != nil {
		if !errors.Is(err, nav.ErrPostNotFound) {
			return err
		}
		d := a.pageData(c, a.blogMeta(), nv)
		d.Meta.Title = "Entrada no encontrada | " + a.Config.Name
		d.Loading = a.Cache.Loading()
		code := http.StatusNotFound
		if d.Loading {
			code = http.StatusOK
		}
		return RenderStatus(c, code, a.Views.PostNotFound(d, !isPartial(c)))
	}

	post, _ := n.Store().View().Post()
	d := a.pageData(c, a.postMeta(post), nv)
	d.Post = post
	return renderPage(c, http.StatusOK, d, a.Views.PostPartial, a.Views.Post)
}

type sidebarState struct {
	SidebarOpen bool `json:"sidebar_open"`
	BodyLocked  bool `json:"body_locked"`
}

func (a *App) handleSidebarToggle(c echo.Context) error {
	n := a.navigator(c)
	n.ToggleSidebar()
	store := n.Store()
	if err := saveNavSnapshot(c, store.Snapshot()); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sidebarState{
		SidebarOpen: store.SidebarOpen(),
		BodyLocked:  store.BodyLocked(),
	})
}

// contactView returns the form as it should render now. With a nil state
// it reports the success flash from the session, or an idle form.
func (a *App) contactView(c echo.Context, st *contact.State, csrf string) views.Contact {
	reset := a.Config.ContactResetAfter.Duration
	now := time.Now()
	if st == nil {
		st = &contact.State{}
		if sent := contactSentAt(c); !sent.IsZero() {
			st.Status = contact.StatusSuccess
			st.SentAt = sent
		}
	}
	status := st.StatusAt(now, reset)
	return views.Contact{
		Form:       st.Form,
		Errors:     st.Errors,
		Status:     status,
		ResetAfter: st.ResetIn(now, reset),
		CSRF:       csrf,
	}
}

func (a *App) handleContactForm(c echo.Context) error {
	v := a.contactView(c, nil, CsrfToken(c))
	if v.Status == contact.StatusIdle && !contactSentAt(c).IsZero() {
		if err := setContactSentAt(c, time.Time{}); err != nil {
			c.Logger().Warnf("clear contact flash: %v", err)
		}
	}
	return Render(c, a.Views.ContactPartial(views.Data{Contact: v}))
}

// handleFormPost accepts the contact form posted to "/", the action a
// static form host expects. Other forms are rejected.
func (a *App) handleFormPost(c echo.Context) error {
	if c.FormValue(contact.FieldFormName) != contact.FormName {
		return echo.NewHTTPError(http.StatusBadRequest, "unknown form")
	}
	return a.handleContactSubmit(c)
}

func (a *App) handleContactSubmit(c echo.Context) error {
	values, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	st := &contact.State{Form: contact.FormFromValues(values)}
	ip := c.RealIP()
	code := http.StatusOK

	if !a.contactLimiter.Allow(ip) {
		st.Status = contact.StatusError
		code = http.StatusTooManyRequests
	} else {
		ctx := WithRemoteIP(c.Request().Context(), ip)
		err := st.Submit(ctx, a.submitter, time.Now())
		var fieldErrs contact.FieldErrors
		switch {
		case err == nil:
			if serr := setContactSentAt(c, st.SentAt); serr != nil {
				c.Logger().Warnf("save contact flash: %v", serr)
			}
		case errors.As(err, &fieldErrs):
			code = http.StatusUnprocessableEntity
		default:
			c.Logger().Errorf("contact submit from %s: %v", ip, err)
			code = http.StatusServiceUnavailable
		}
	}

	csrf := CsrfToken(c)
	if isPartial(c) {
		v := a.contactView(c, st, csrf)
		return RenderStatus(c, code, a.Views.ContactPartial(views.Data{Contact: v}))
	}

	// Without script the browser lands back on home at the form.
	n := a.navigator(c)
	n.Mount(nav.Home(), "contact")
	nv, err := a.commitNav(c, n, "")
	if err != nil {
		return err
	}
	d := a.homeData(c, nv)
	d.Contact = a.contactView(c, st, csrf)
	return RenderStatus(c, code, a.Views.Home(d))
}

func (a *App) handleSitemap(c echo.Context) error {
	posts, _ := a.Cache.Snapshot()
	return a.renderSitemap(c, posts)
}

func (a *App) handleFeed(c echo.Context) error {
	posts, _ := a.Cache.Snapshot()
	return a.renderRSS(c, posts)
}

func (a *App) handleFavicon(c echo.Context) error {
	return c.File(a.Config.StaticDir + "/favicon.svg")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}

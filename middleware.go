package portfolio

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/sgsasesora/portfolio/nav"
)

const (
	sessionName = "portfolio_session"

	sessSidebarOpen   = "sidebar_open"
	sessContactSentAt = "contact_sent_at"
)

func (a *App) setupMiddleware() {
	e := a.Echo

	e.IPExtractor = echo.ExtractIPFromXFFHeader(
		echo.TrustLoopback(true),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(true),
	)

	e.HTTPErrorHandler = a.httpErrorHandler

	e.Pre(middleware.NonWWWRedirect())

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			c.Logger().Infof("%s %s -> %d (%s)", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))

	e.Use(middleware.Recover())

	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/public/") || strings.HasPrefix(path, "/thumbs/")
		},
	}))

	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:         "1; mode=block",
		ContentTypeNosniff:    "nosniff",
		XFrameOptions:         "DENY",
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' https: data:; font-src 'self'; connect-src 'self'; frame-src https:",
		HSTSMaxAge:            31536000,
		HSTSExcludeSubdomains: false,
	}))

	e.Use(session.Middleware(a.newSessionStore()))

	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		ContextKey:     middleware.DefaultCSRFConfig.ContextKey,
		TokenLookup:    "header:X-CSRF-Token,form:_csrf",
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieSameSite: http.SameSiteLaxMode,
		CookieSecure:   a.Config.CookieSecure,
		ErrorHandler: func(err error, c echo.Context) error {
			return c.String(http.StatusForbidden, "Forbidden")
		},
	}))

	e.Use(middleware.AddTrailingSlashWithConfig(middleware.TrailingSlashConfig{
		RedirectCode: http.StatusMovedPermanently,
		Skipper: func(c echo.Context) bool {
			path := c.Request().URL.Path
			return strings.HasPrefix(path, "/public") ||
				path == "/sitemap.xml" || path == "/feed.xml" || path == "/robots.txt"
		},
	}))

	e.Use(cacheControlMiddleware)
	e.Use(clientHintsMiddleware)
}

func cacheControlMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		path := c.Request().URL.Path
		switch {
		case strings.HasPrefix(path, "/public/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		case strings.HasPrefix(path, "/thumbs/"):
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		case path == "/sitemap.xml" || path == "/feed.xml" || path == "/robots.txt":
			c.Response().Header().Set("Cache-Control", "public, max-age=86400")
		default:
			// Pages carry per-visitor nav and form state.
			c.Response().Header().Set("Cache-Control", "private, no-cache")
		}
		return next(c)
	}
}

// clientHintsMiddleware asks supporting browsers to report their viewport
// width so the first full page load can be laid out for mobile.
func clientHintsMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		h := c.Response().Header()
		h.Set("Accept-CH", "Sec-CH-Viewport-Width")
		h.Add("Vary", "Sec-CH-Viewport-Width")
		h.Add("Vary", "HX-Request")
		return next(c)
	}
}

func (a *App) newSessionStore() *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(a.Config.SessionSecret))
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		MaxAge:   60 * 60 * 12,
		SameSite: http.SameSiteLaxMode,
		Secure:   a.Config.CookieSecure,
	}
	return store
}

// requestViewport reads the width site.js reports, falling back to the
// client hint.
func requestViewport(c echo.Context) nav.Viewport {
	h := c.Request().Header
	if vp := nav.ParseViewport(h.Get("X-Viewport-Width")); vp.Known {
		return vp
	}
	return nav.ParseViewport(h.Get("Sec-CH-Viewport-Width"))
}

// navSnapshot returns the nav state saved by the previous request.
func navSnapshot(c echo.Context) nav.Snapshot {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return nav.Snapshot{}
	}
	open, _ := sess.Values[sessSidebarOpen].(bool)
	return nav.Snapshot{SidebarOpen: open}
}

func saveNavSnapshot(c echo.Context, snap nav.Snapshot) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	sess.Values[sessSidebarOpen] = snap.SidebarOpen
	return sess.Save(c.Request(), c.Response())
}

// contactSentAt returns when this visitor last sent the form.
func contactSentAt(c echo.Context) time.Time {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return time.Time{}
	}
	ms, ok := sess.Values[sessContactSentAt].(int64)
	if !ok {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

func setContactSentAt(c echo.Context, t time.Time) error {
	sess, err := session.Get(sessionName, c)
	if err != nil {
		return err
	}
	if t.IsZero() {
		delete(sess.Values, sessContactSentAt)
	} else {
		sess.Values[sessContactSentAt] = t.UnixMilli()
	}
	return sess.Save(c.Request(), c.Response())
}

// CsrfToken extracts the CSRF token from the Echo context.
func CsrfToken(c echo.Context) string {
	token, _ := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string)
	return token
}

func isPartial(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// Package portfolio serves a personal portfolio site: a single home page
// with biography, experience, education, a blog teaser and a contact form,
// plus a blog backed by a headless CMS.
//
// Pages are rendered on the server. In-page navigation is driven by
// site.js, which fetches partials and applies the scroll and sidebar state
// the server returns in response headers.
package portfolio

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"

	"github.com/sgsasesora/portfolio/contact"
	"github.com/sgsasesora/portfolio/content"
	"github.com/sgsasesora/portfolio/prismic"
	"github.com/sgsasesora/portfolio/views"
)

// ViewFuncs holds the components the handlers render. DefaultViews
// returns the built-in templates; a site can swap individual pages.
type ViewFuncs struct {
	Home            func(d views.Data) templ.Component
	HomePartial     func(d views.Data) templ.Component
	BlogList        func(d views.Data) templ.Component
	BlogListPartial func(d views.Data) templ.Component
	Post            func(d views.Data) templ.Component
	PostPartial     func(d views.Data) templ.Component
	PostNotFound    func(d views.Data, full bool) templ.Component
	ContactPartial  func(d views.Data) templ.Component
	NotFound        func() templ.Component
	ServerError     func() templ.Component
}

// DefaultViews returns the views package templates.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:            views.Home,
		HomePartial:     views.HomePartial,
		BlogList:        views.BlogList,
		BlogListPartial: views.BlogListPartial,
		Post:            views.Post,
		PostPartial:     views.PostPartial,
		PostNotFound:    views.PostNotFound,
		ContactPartial:  views.ContactPartial,
		NotFound:        views.NotFound,
		ServerError:     views.ServerError,
	}
}

// App wires together the inbox store, the post cache, handlers,
// middleware and templates.
type App struct {
	Config  SiteConfig
	Echo    *echo.Echo
	Store   *Store
	Cache   *PostCache
	Profile *content.ProfileSource
	Views   ViewFuncs

	source         PostSource
	submitter      contact.Submitter
	contactLimiter *ContactLimiter
	thumbs         *thumbnailer
	customRoutes   []func(*App)
}

// New creates an App with the given configuration and views.
func New(cfg SiteConfig, v ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.INFO)

	a := &App{
		Config: cfg,
		Echo:   e,
		Views:  v,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Setup opens the inbox, loads the profile and registers middleware and
// routes. It does not start fetching posts; Start does.
func (a *App) Setup() error {
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("portfolio: SessionSecret is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("portfolio: init store: %w", err)
	}
	a.Store = store

	profile, err := content.NewProfileSource(a.Config.ProfilePath)
	if err != nil {
		return fmt.Errorf("portfolio: load profile: %w", err)
	}
	a.Profile = profile

	if a.source == nil && a.Config.Prismic.Enabled() {
		a.source = prismic.NewClient(a.Config.Prismic.ClientConfig(), nil)
	}
	if a.source == nil {
		a.Echo.Logger.Warn("no CMS repository configured, the blog will be empty")
	}
	a.Cache = NewPostCache(a.source, a.Config.FetchTimeout.Duration, a.Echo.Logger)

	a.contactLimiter = NewContactLimiter(a.Config.ContactLimit, a.Config.ContactWindow.Duration)

	a.thumbs, err = newThumbnailer(a.Config.ThumbCacheSize, nil)
	if err != nil {
		return fmt.Errorf("portfolio: init thumbnails: %w", err)
	}

	if a.submitter == nil {
		chain := contact.Chain{a.Store}
		if a.Config.FormForwardURL != "" {
			chain = append(chain, contact.NewForwarder(a.Config.FormForwardURL))
		}
		a.submitter = chain
	}

	a.setupMiddleware()
	a.setupRoutes()
	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// Start sets the app up, begins the post fetch and serves until ctx is
// cancelled, then shuts down gracefully.
func (a *App) Start(ctx context.Context) error {
	if err := a.Setup(); err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)

	a.Cache.Load(ctx)

	g.Go(func() error {
		if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := a.Profile.Watch(ctx, a.Echo.Logger); err != nil {
			a.Echo.Logger.Warnf("profile reload disabled: %v", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout.Duration)
		defer cancel()
		return a.Echo.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func (a *App) setupRoutes() {
	e := a.Echo

	// site.js and site.css ship with the binary; anything else under
	// /public comes from the site's static dir.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/site.js", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))

	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)

	e.GET("/", a.handleHome)
	e.POST("/", a.handleFormPost)
	e.GET("/blog/", a.handleBlogList)
	e.GET("/blog/:identifier/", a.handlePost)
	e.GET("/thumbs/:id/", a.handleThumb)

	e.GET("/contact/", a.handleContactForm)
	e.POST("/contact/", a.handleContactSubmit)
	e.POST("/nav/sidebar/", a.handleSidebarToggle)
}

// Close cancels the post fetch and releases resources.
func (a *App) Close() error {
	if a.Cache != nil {
		a.Cache.Close()
	}
	if a.contactLimiter != nil {
		a.contactLimiter.Close()
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package portfolio

import (
	"net/url"
	"path"
	"strings"

	"github.com/sgsasesora/portfolio/content"
	"github.com/sgsasesora/portfolio/views"
)

// BuildURL joins a base URL with path segments, ensuring a trailing slash.
func BuildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// siteRoot returns the configured site URL without a trailing slash.
func (a *App) siteRoot() string {
	return strings.TrimSuffix(a.Config.URL, "/")
}

func (a *App) viewSite() views.SiteConfig {
	return views.SiteConfig{
		Name:        a.Config.Name,
		URL:         a.Config.URL,
		Description: a.Config.Description,
		Author:      a.Config.Author,
		Locale:      a.Config.Locale,
	}
}

func (a *App) homeMeta() views.PageMeta {
	desc := a.Config.Description
	if desc == "" {
		if intro := a.Profile.Profile().Hero.Intro; len(intro) > 0 {
			desc = intro[0]
		}
	}
	return views.PageMeta{
		Title:       a.Config.Name,
		Description: desc,
		URL:         a.siteRoot() + "/",
		OGType:      "website",
	}
}

func (a *App) blogMeta() views.PageMeta {
	return views.PageMeta{
		Title:       "Blog | " + a.Config.Name,
		Description: "Todas las entradas del blog de " + a.Config.Name,
		URL:         BuildURL(a.Config.URL, "blog"),
		OGType:      "website",
	}
}

func (a *App) postMeta(p content.BlogPost) views.PageMeta {
	return views.PageMeta{
		Title:       p.Title() + " | " + a.Config.Name,
		Description: p.Summary(),
		URL:         BuildURL(a.Config.URL, "blog", p.Identifier()),
		OGType:      "article",
		Image:       p.Data.FeaturedImage.URL,
	}
}

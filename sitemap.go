package portfolio

import (
	"encoding/xml"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/sgsasesora/portfolio/content"
	"github.com/sgsasesora/portfolio/nav"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// sitemapEntries lists the home page and its sections, the blog index and
// every post. Home and the index change whenever a post is published.
func (a *App) sitemapEntries(posts []content.BlogPost) []sitemapURL {
	root := a.siteRoot()
	latest := ""
	if len(posts) > 0 {
		latest = posts[0].PublishDateISO()
	}

	urls := []sitemapURL{{Loc: root + "/", LastMod: latest, ChangeFreq: "monthly", Priority: "1.0"}}
	for _, it := range nav.Items() {
		urls = append(urls, sitemapURL{
			Loc:      root + "/?section=" + url.QueryEscape(it.ID),
			Priority: "0.5",
		})
	}
	urls = append(urls, sitemapURL{
		Loc:        BuildURL(a.Config.URL, "blog"),
		LastMod:    latest,
		ChangeFreq: "weekly",
		Priority:   "0.8",
	})
	for _, p := range posts {
		urls = append(urls, sitemapURL{
			Loc:      BuildURL(a.Config.URL, "blog", p.Identifier()),
			LastMod:  p.PublishDateISO(),
			Priority: "0.6",
		})
	}
	return urls
}

func (a *App) renderSitemap(c echo.Context, posts []content.BlogPost) error {
	sitemap := sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  a.sitemapEntries(posts),
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(sitemap)
}

func (a *App) handleRobots(c echo.Context) error {
	body := "User-agent: *\nAllow: /\n\nSitemap: " + a.siteRoot() + "/sitemap.xml\n"
	return c.String(http.StatusOK, body)
}

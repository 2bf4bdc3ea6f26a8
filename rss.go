package portfolio

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sgsasesora/portfolio/content"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Atom    string     `xml:"xmlns:atom,attr"`
	DC      string     `xml:"xmlns:dc,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title         string      `xml:"title"`
	Link          string      `xml:"link"`
	Self          rssAtomLink `xml:"atom:link"`
	Description   string      `xml:"description"`
	Language      string      `xml:"language,omitempty"`
	LastBuildDate string      `xml:"lastBuildDate,omitempty"`
	Items         []rssItem   `xml:"item"`
}

type rssAtomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr"`
}

type rssGUID struct {
	Value       string `xml:",chardata"`
	IsPermaLink bool   `xml:"isPermaLink,attr"`
}

type rssEnclosure struct {
	URL    string `xml:"url,attr"`
	Type   string `xml:"type,attr"`
	Length int    `xml:"length,attr"`
}

type rssItem struct {
	Title       string        `xml:"title"`
	Link        string        `xml:"link"`
	Description string        `xml:"description"`
	Creator     string        `xml:"dc:creator,omitempty"`
	PubDate     string        `xml:"pubDate,omitempty"`
	GUID        rssGUID       `xml:"guid"`
	Enclosure   *rssEnclosure `xml:"enclosure,omitempty"`
}

// feedDescription leads with the long Spanish date the site shows on the
// post itself.
func feedDescription(p content.BlogPost) string {
	desc := p.Summary()
	if p.Data.PublishDate == nil {
		return desc
	}
	published := "Publicado el " + content.FormatDate(*p.Data.PublishDate) + "."
	if desc == "" {
		return published
	}
	return published + " " + desc
}

// feedItem builds the entry for one post. The GUID uses the CMS id, which
// survives a change of slug.
func (a *App) feedItem(p content.BlogPost) rssItem {
	base := a.Config.URL
	item := rssItem{
		Title:       p.Title(),
		Link:        BuildURL(base, "blog", p.Identifier()),
		Description: feedDescription(p),
		Creator:     a.Config.Author,
		GUID:        rssGUID{Value: BuildURL(base, "blog", p.ID), IsPermaLink: true},
	}
	if p.Data.PublishDate != nil {
		item.PubDate = p.Data.PublishDate.Format(time.RFC1123Z)
	}
	if p.Data.FeaturedImage.URL != "" {
		item.Enclosure = &rssEnclosure{URL: BuildURL(base, "thumbs", p.ID), Type: "image/jpeg"}
	}
	return item
}

func (a *App) renderRSS(c echo.Context, posts []content.BlogPost) error {
	root := a.siteRoot()
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		items = append(items, a.feedItem(p))
	}
	channel := rssChannel{
		Title:       a.Config.Name,
		Link:        root + "/blog/",
		Self:        rssAtomLink{Href: root + "/feed.xml", Rel: "self", Type: "application/rss+xml"},
		Description: a.Config.Description,
		Language:    a.Config.Locale,
		Items:       items,
	}
	// Posts arrive newest first.
	if len(posts) > 0 && posts[0].Data.PublishDate != nil {
		channel.LastBuildDate = posts[0].Data.PublishDate.Format(time.RFC1123Z)
	}
	feed := rssXML{
		Version: "2.0",
		Atom:    "http://www.w3.org/2005/Atom",
		DC:      "http://purl.org/dc/elements/1.1/",
		Channel: channel,
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}

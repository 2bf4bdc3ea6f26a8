package views

import (
	"encoding/json"
	"html/template"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/sgsasesora/portfolio/content"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
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

// PostURL is the absolute URL of a post.
func PostURL(cfg SiteConfig, post content.BlogPost) string {
	return buildURL(cfg.URL, "blog", post.Identifier())
}

// ThumbURL is the resized featured image route for a post.
func ThumbURL(post content.BlogPost) string {
	return "/thumbs/" + url.PathEscape(post.ID) + "/"
}

// CoverURL is the full-size featured image, or a placeholder seeded by id.
func CoverURL(post content.BlogPost) string {
	if post.Data.FeaturedImage.URL != "" {
		return post.Data.FeaturedImage.URL
	}
	return "https://picsum.photos/seed/" + url.PathEscape(post.ID) + "/800/450"
}

// PersonJsonLD produces a Schema.org Person JSON-LD block for the profile.
func PersonJsonLD(cfg SiteConfig, p content.Profile) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "Person",
		"name":     p.Name,
		"url":      buildURL(cfg.URL),
	}
	if p.Email != "" {
		data["email"] = "mailto:" + p.Email
	}
	if p.Hero.Emphasis != "" {
		data["jobTitle"] = strings.TrimSpace(p.Hero.Headline + " " + p.Hero.Emphasis)
	}
	var sameAs []string
	for _, s := range p.Socials {
		sameAs = append(sameAs, s.URL)
	}
	if len(sameAs) > 0 {
		data["sameAs"] = sameAs
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block for a post.
func BlogPostingJsonLD(cfg SiteConfig, post content.BlogPost) string {
	postURL := PostURL(cfg, post)
	data := map[string]interface{}{
		"@context":    "https://schema.org",
		"@type":       "BlogPosting",
		"headline":    post.Title(),
		"description": post.Summary(),
		"url":         postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
	}
	if d := post.PublishDateISO(); d != "" {
		data["datePublished"] = d
	}
	if post.Data.FeaturedImage.URL != "" {
		data["image"] = post.Data.FeaturedImage.URL
	}
	if cfg.Author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  cfg.Author,
		}
	}
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

var funcs = template.FuncMap{
	"rich": func(rt interface{ AsHTML() string }) template.HTML {
		return template.HTML(rt.AsHTML())
	},
	"thumb": ThumbURL,
	"cover": CoverURL,
	"personLD": func(cfg SiteConfig, p content.Profile) template.JS {
		return template.JS(PersonJsonLD(cfg, p))
	},
	"postLD": func(cfg SiteConfig, post content.BlogPost) template.JS {
		return template.JS(BlogPostingJsonLD(cfg, post))
	},
	"percent": func(n int) template.CSS {
		if n < 0 {
			n = 0
		}
		if n > 100 {
			n = 100
		}
		return template.CSS("width: " + strconv.Itoa(n) + "%")
	},
}

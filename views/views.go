// Package views renders the site's pages. Templates are embedded
// html/template files exposed as templ components.
package views

import (
	"embed"
	"html/template"

	"github.com/a-h/templ"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pages = template.Must(template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*.html"))

func page(main string, d Data) templ.Component {
	d.main = main
	return templ.FromGoHTML(pages.Lookup("layout"), d)
}

func partial(name string, d Data) templ.Component {
	d.main = name
	return templ.FromGoHTML(pages.Lookup(name), d)
}

// Main names the template rendered inside <main>.
func (d Data) Main() string { return d.main }

func Home(d Data) templ.Component        { return page("home", d) }
func HomePartial(d Data) templ.Component { return partial("home", d) }

func BlogList(d Data) templ.Component        { return page("blog-list", d) }
func BlogListPartial(d Data) templ.Component { return partial("blog-list", d) }

func Post(d Data) templ.Component        { return page("post", d) }
func PostPartial(d Data) templ.Component { return partial("post", d) }

// PostNotFound renders the missing-post view, in full or as a partial.
func PostNotFound(d Data, full bool) templ.Component {
	if full {
		return page("post-not-found", d)
	}
	return partial("post-not-found", d)
}

// ContactPartial renders only the contact form.
func ContactPartial(d Data) templ.Component { return partial("contact-form", d) }

func NotFound() templ.Component {
	return templ.FromGoHTML(pages.Lookup("not-found"), nil)
}

func ServerError() templ.Component {
	return templ.FromGoHTML(pages.Lookup("server-error"), nil)
}

// Package richtext models CMS rich-text fields as ordered, typed blocks and
// renders them as plain text or HTML.
package richtext

import (
	"bytes"
	"context"
	"html"
	"io"
	"sort"
	"strings"
	"unicode/utf16"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
)

// BlockType identifies the kind of a rich-text block.
type BlockType string

const (
	Paragraph    BlockType = "paragraph"
	Heading1     BlockType = "heading1"
	Heading2     BlockType = "heading2"
	Heading3     BlockType = "heading3"
	Heading4     BlockType = "heading4"
	Heading5     BlockType = "heading5"
	Heading6     BlockType = "heading6"
	Preformatted BlockType = "preformatted"
	ListItem     BlockType = "list-item"
	OListItem    BlockType = "o-list-item"
	Image        BlockType = "image"
	Embed        BlockType = "embed"
)

// SpanType identifies an inline mark applied to a range of block text.
type SpanType string

const (
	Strong    SpanType = "strong"
	Em        SpanType = "em"
	Hyperlink SpanType = "hyperlink"
	Label     SpanType = "label"
)

// Span marks the rune range [Start, End) of a block's text.
type Span struct {
	Start  int
	End    int
	Type   SpanType
	URL    string // hyperlink target
	Target string // hyperlink target window, e.g. "_blank"
	Label  string // label name, rendered as a CSS class
}

// Block is one structural element of a rich-text field.
type Block struct {
	Type  BlockType
	Text  string
	Spans []Span

	// Image blocks.
	URL string
	Alt string

	// Embed blocks carry provider HTML.
	EmbedHTML string
}

// RichText is an ordered sequence of blocks.
type RichText []Block

// IsEmpty reports whether the field has no visible text or media.
func (rt RichText) IsEmpty() bool {
	for _, b := range rt {
		if strings.TrimSpace(b.Text) != "" || b.URL != "" || b.EmbedHTML != "" {
			return false
		}
	}
	return true
}

// AsText joins the text of every block with sep (a space when sep is empty).
func (rt RichText) AsText(sep ...string) string {
	s := " "
	if len(sep) > 0 {
		s = sep[0]
	}
	parts := make([]string, 0, len(rt))
	for _, b := range rt {
		if b.Text != "" {
			parts = append(parts, b.Text)
		}
	}
	return strings.Join(parts, s)
}

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(bluemonday.SpaceSeparatedTokens).OnElements("span", "div", "pre")
	p.AllowAttrs("target", "rel").Matching(bluemonday.SpaceSeparatedTokens).OnElements("a")
	p.AllowAttrs("loading").OnElements("img")
	p.AllowAttrs("width", "height", "src", "allow", "allowfullscreen", "frameborder", "title").OnElements("iframe")
	p.AllowURLSchemes("http", "https", "mailto", "tel")
	p.RequireNoFollowOnLinks(false)
	p.AddTargetBlankToFullyQualifiedLinks(false)
	return p
}

// AsHTML renders the field as sanitized HTML.
func (rt RichText) AsHTML() string {
	var buf bytes.Buffer
	Render(&buf, rt)
	return policy.Sanitize(buf.String())
}

// Component returns a templ.Component rendering the field as HTML.
func Component(rt RichText) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, rt.AsHTML())
		return err
	})
}

// Render writes the unsanitized HTML for rt to buf. Consecutive list items
// are grouped into a single <ul> or <ol>.
func Render(buf *bytes.Buffer, rt RichText) {
	var openList BlockType
	closeList := func() {
		switch openList {
		case ListItem:
			buf.WriteString("</ul>")
		case OListItem:
			buf.WriteString("</ol>")
		}
		openList = ""
	}

	for _, b := range rt {
		if b.Type != openList {
			closeList()
		}
		switch b.Type {
		case Heading1, Heading2, Heading3, Heading4, Heading5, Heading6:
			tag := "h" + string(b.Type[len(b.Type)-1])
			buf.WriteString("<" + tag + ">")
			buf.WriteString(FormatSpans(b.Text, b.Spans))
			buf.WriteString("</" + tag + ">")
		case Preformatted:
			buf.WriteString("<pre>")
			buf.WriteString(FormatSpans(b.Text, b.Spans))
			buf.WriteString("</pre>")
		case ListItem, OListItem:
			if openList == "" {
				if b.Type == ListItem {
					buf.WriteString("<ul>")
				} else {
					buf.WriteString("<ol>")
				}
				openList = b.Type
			}
			buf.WriteString("<li>")
			buf.WriteString(FormatSpans(b.Text, b.Spans))
			buf.WriteString("</li>")
		case Image:
			if b.URL == "" {
				continue
			}
			buf.WriteString(`<p class="block-img"><img src="` + html.EscapeString(b.URL) + `" alt="` + html.EscapeString(b.Alt) + `" loading="lazy"></p>`)
		case Embed:
			if b.EmbedHTML == "" {
				continue
			}
			buf.WriteString(`<div class="embed">` + b.EmbedHTML + `</div>`)
		default:
			buf.WriteString("<p>")
			buf.WriteString(FormatSpans(b.Text, b.Spans))
			buf.WriteString("</p>")
		}
	}
	closeList()
}

type boundary struct {
	pos   int
	open  bool
	order int
	span  Span
}

// FormatSpans applies inline marks to text, escaping everything else.
// Offsets count UTF-16 code units, as the CMS reports them; out-of-range
// spans are clamped and empty ones dropped. Newlines become <br>.
func FormatSpans(text string, spans []Span) string {
	units := utf16.Encode([]rune(text))
	n := len(units)

	var bounds []boundary
	for i, s := range spans {
		start, end := unitBoundary(units, clamp(s.Start, n)), unitBoundary(units, clamp(s.End, n))
		if start >= end {
			continue
		}
		bounds = append(bounds,
			boundary{pos: start, open: true, order: i, span: s},
			boundary{pos: end, open: false, order: i, span: s},
		)
	}
	// Closers before openers at the same position; closers in reverse
	// opening order so tags nest.
	sort.SliceStable(bounds, func(i, j int) bool {
		a, b := bounds[i], bounds[j]
		if a.pos != b.pos {
			return a.pos < b.pos
		}
		if a.open != b.open {
			return !a.open
		}
		if a.open {
			return a.order < b.order
		}
		return a.order > b.order
	})

	var out strings.Builder
	writeText := func(from, to int) {
		escaped := html.EscapeString(string(utf16.Decode(units[from:to])))
		out.WriteString(strings.ReplaceAll(escaped, "\n", "<br>"))
	}
	cursor := 0
	for _, bd := range bounds {
		if bd.pos > cursor {
			writeText(cursor, bd.pos)
			cursor = bd.pos
		}
		if bd.open {
			out.WriteString(openTag(bd.span))
		} else {
			out.WriteString(closeTag(bd.span))
		}
	}
	if cursor < n {
		writeText(cursor, n)
	}
	return out.String()
}

// unitBoundary moves an offset that falls inside a surrogate pair past the
// pair.
func unitBoundary(units []uint16, pos int) int {
	if pos > 0 && pos < len(units) && units[pos] >= 0xdc00 && units[pos] <= 0xdfff {
		return pos + 1
	}
	return pos
}

func openTag(s Span) string {
	switch s.Type {
	case Strong:
		return "<strong>"
	case Em:
		return "<em>"
	case Hyperlink:
		tag := `<a href="` + html.EscapeString(s.URL) + `"`
		if s.Target != "" {
			tag += ` target="` + html.EscapeString(s.Target) + `" rel="noopener noreferrer"`
		}
		return tag + ">"
	case Label:
		return `<span class="` + html.EscapeString(s.Label) + `">`
	}
	return ""
}

func closeTag(s Span) string {
	switch s.Type {
	case Strong:
		return "</strong>"
	case Em:
		return "</em>"
	case Hyperlink:
		return "</a>"
	case Label:
		return "</span>"
	}
	return ""
}

func clamp(v, n int) int {
	if v < 0 {
		return 0
	}
	if v > n {
		return n
	}
	return v
}

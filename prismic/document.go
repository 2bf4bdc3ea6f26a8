package prismic

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/sgsasesora/portfolio/content"
	"github.com/sgsasesora/portfolio/richtext"
)

type apiInfo struct {
	Refs []apiRef `json:"refs"`
}

type apiRef struct {
	ID          string `json:"id"`
	Ref         string `json:"ref"`
	Label       string `json:"label"`
	IsMasterRef bool   `json:"isMasterRef"`
}

type searchResponse struct {
	Page         int        `json:"page"`
	TotalPages   int        `json:"total_pages"`
	TotalResults int        `json:"total_results_size"`
	Results      []document `json:"results"`
}

type document struct {
	ID   string       `json:"id"`
	UID  *string      `json:"uid"`
	Type string       `json:"type"`
	Data documentData `json:"data"`
}

type documentData struct {
	Title         []rawBlock `json:"title"`
	Subtitle      []rawBlock `json:"subtitle"`
	FeaturedImage rawImage   `json:"featured_image"`
	MainContent   []rawBlock `json:"main_content"`
	PublishDate   *string    `json:"publish_date"`
}

type rawImage struct {
	URL *string `json:"url"`
	Alt *string `json:"alt"`
}

type rawBlock struct {
	Type   string    `json:"type"`
	Text   string    `json:"text"`
	Spans  []rawSpan `json:"spans"`
	URL    string    `json:"url"`
	Alt    *string   `json:"alt"`
	OEmbed *struct {
		HTML string `json:"html"`
	} `json:"oembed"`
}

type rawSpan struct {
	Start int             `json:"start"`
	End   int             `json:"end"`
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
}

type spanData struct {
	URL    string `json:"url"`
	Target string `json:"target"`
	Label  string `json:"label"`
}

func (d document) toPost() content.BlogPost {
	p := content.BlogPost{ID: d.ID}
	if d.UID != nil {
		p.UID = strings.TrimSpace(*d.UID)
	}
	p.Data.Title = toRichText(d.Data.Title)
	p.Data.Subtitle = toRichText(d.Data.Subtitle)
	p.Data.MainContent = toRichText(d.Data.MainContent)
	if d.Data.FeaturedImage.URL != nil {
		p.Data.FeaturedImage.URL = *d.Data.FeaturedImage.URL
	}
	if d.Data.FeaturedImage.Alt != nil {
		p.Data.FeaturedImage.Alt = *d.Data.FeaturedImage.Alt
	}
	if d.Data.PublishDate != nil {
		if t, err := time.Parse("2006-01-02", *d.Data.PublishDate); err == nil {
			p.Data.PublishDate = &t
		}
	}
	return p
}

func toRichText(raw []rawBlock) richtext.RichText {
	if len(raw) == 0 {
		return nil
	}
	rt := make(richtext.RichText, 0, len(raw))
	for _, rb := range raw {
		b := richtext.Block{
			Type: richtext.BlockType(rb.Type),
			Text: rb.Text,
			URL:  rb.URL,
		}
		if rb.Alt != nil {
			b.Alt = *rb.Alt
		}
		if rb.OEmbed != nil {
			b.EmbedHTML = rb.OEmbed.HTML
		}
		for _, rs := range rb.Spans {
			s := richtext.Span{Start: rs.Start, End: rs.End, Type: richtext.SpanType(rs.Type)}
			if len(rs.Data) > 0 {
				var sd spanData
				if err := json.Unmarshal(rs.Data, &sd); err == nil {
					s.URL, s.Target, s.Label = sd.URL, sd.Target, sd.Label
				}
			}
			b.Spans = append(b.Spans, s)
		}
		rt = append(rt, b)
	}
	return rt
}

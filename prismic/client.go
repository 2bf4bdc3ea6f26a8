// Package prismic is a read-only client for the Prismic REST API v2. It
// fetches blog_post documents and converts them into content.BlogPost.
package prismic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-cleanhttp"

	"github.com/sgsasesora/portfolio/content"
)

const (
	// DocumentType is the custom type holding blog posts.
	DocumentType = "blog_post"
	// PublishDateField orders posts.
	PublishDateField = "my.blog_post.publish_date"

	defaultPageSize = 100
	maxBodySize     = 16 << 20
)

// ErrNoMasterRef is returned when the API exposes no master ref.
var ErrNoMasterRef = errors.New("prismic: no master ref")

// Config selects the repository and credentials.
type Config struct {
	Repository  string // repository name, e.g. "sgsasesora"
	Endpoint    string // full API endpoint; overrides Repository
	AccessToken string // optional, for private repositories
	PageSize    int    // documents per page (default 100)
}

// EndpointURL returns the API v2 endpoint for cfg.
func (cfg Config) EndpointURL() string {
	if cfg.Endpoint != "" {
		return strings.TrimSuffix(cfg.Endpoint, "/")
	}
	return "https://" + cfg.Repository + ".cdn.prismic.io/api/v2"
}

// Client queries a Prismic repository.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient returns a client for cfg. A nil httpClient selects a pooled
// client from go-cleanhttp.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if httpClient == nil {
		httpClient = cleanhttp.DefaultPooledClient()
	}
	return &Client{cfg: cfg, http: httpClient}
}

// FetchAllPosts returns every blog_post document ordered by publish date,
// newest first.
func (c *Client) FetchAllPosts(ctx context.Context) ([]content.BlogPost, error) {
	ref, err := c.masterRef(ctx)
	if err != nil {
		return nil, err
	}

	var posts []content.BlogPost
	for page := 1; ; page++ {
		resp, err := c.search(ctx, ref, page)
		if err != nil {
			return nil, err
		}
		for _, doc := range resp.Results {
			if doc.Type != "" && doc.Type != DocumentType {
				continue
			}
			posts = append(posts, doc.toPost())
		}
		if page >= resp.TotalPages || len(resp.Results) == 0 {
			break
		}
	}
	content.SortByPublishDate(posts)
	return posts, nil
}

func (c *Client) masterRef(ctx context.Context) (string, error) {
	var info apiInfo
	if err := c.getJSON(ctx, c.cfg.EndpointURL(), c.tokenQuery(), &info); err != nil {
		return "", fmt.Errorf("prismic: api info: %w", err)
	}
	for _, r := range info.Refs {
		if r.IsMasterRef {
			return r.Ref, nil
		}
	}
	return "", ErrNoMasterRef
}

func (c *Client) search(ctx context.Context, ref string, page int) (searchResponse, error) {
	q := c.tokenQuery()
	q.Set("ref", ref)
	q.Set("q", `[[at(document.type,"`+DocumentType+`")]]`)
	q.Set("orderings", "["+PublishDateField+" desc]")
	q.Set("pageSize", strconv.Itoa(c.cfg.PageSize))
	q.Set("page", strconv.Itoa(page))

	var resp searchResponse
	if err := c.getJSON(ctx, c.cfg.EndpointURL()+"/documents/search", q, &resp); err != nil {
		return searchResponse{}, fmt.Errorf("prismic: search page %d: %w", page, err)
	}
	return resp, nil
}

func (c *Client) tokenQuery() url.Values {
	q := url.Values{}
	if c.cfg.AccessToken != "" {
		q.Set("access_token", c.cfg.AccessToken)
	}
	return q
}

func (c *Client) getJSON(ctx context.Context, endpoint string, q url.Values, v any) error {
	u := endpoint
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(res.Body, 4096))
		return fmt.Errorf("unexpected status %s", res.Status)
	}
	if err := json.NewDecoder(io.LimitReader(res.Body, maxBodySize)).Decode(v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

package prismic

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sgsasesora/portfolio/richtext"
)

// fakeRepo serves the API info document and a paginated search over docs.
func fakeRepo(t *testing.T, docs []string, pageSize int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var searches atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v2", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"refs":[{"id":"draft","ref":"DRAFT","isMasterRef":false},{"id":"master","ref":"MASTER","label":"Master","isMasterRef":true}]}`)
	})
	mux.HandleFunc("/api/v2/documents/search", func(w http.ResponseWriter, r *http.Request) {
		searches.Add(1)
		q := r.URL.Query()
		if q.Get("ref") != "MASTER" {
			t.Errorf("ref = %q, want MASTER", q.Get("ref"))
		}
		if q.Get("q") != `[[at(document.type,"blog_post")]]` {
			t.Errorf("q = %q", q.Get("q"))
		}
		if q.Get("orderings") != "[my.blog_post.publish_date desc]" {
			t.Errorf("orderings = %q", q.Get("orderings"))
		}
		page, _ := strconv.Atoi(q.Get("page"))
		totalPages := (len(docs) + pageSize - 1) / pageSize
		start := (page - 1) * pageSize
		end := start + pageSize
		if end > len(docs) {
			end = len(docs)
		}
		results := "["
		for i := start; i < end; i++ {
			if i > start {
				results += ","
			}
			results += docs[i]
		}
		results += "]"
		fmt.Fprintf(w, `{"page":%d,"total_pages":%d,"total_results_size":%d,"results":%s}`, page, totalPages, len(docs), results)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &searches
}

func doc(id, uid, date string) string {
	uidJSON := "null"
	if uid != "" {
		uidJSON = strconv.Quote(uid)
	}
	dateJSON := "null"
	if date != "" {
		dateJSON = strconv.Quote(date)
	}
	return fmt.Sprintf(`{"id":%q,"uid":%s,"type":"blog_post","data":{
		"title":[{"type":"heading1","text":"Entrada %s","spans":[]}],
		"subtitle":[{"type":"paragraph","text":"Resumen","spans":[{"start":0,"end":7,"type":"em"}]}],
		"featured_image":{"url":"https://images.prismic.io/x/%s.jpg","alt":null},
		"main_content":[
			{"type":"paragraph","text":"Ver la ley","spans":[{"start":4,"end":10,"type":"hyperlink","data":{"link_type":"Web","url":"https://boe.es","target":"_blank"}}]},
			{"type":"image","url":"https://images.prismic.io/x/body.jpg","alt":"cuerpo"},
			{"type":"embed","oembed":{"html":"<iframe></iframe>"}}
		],
		"publish_date":%s}}`, id, uidJSON, id, id, dateJSON)
}

func TestFetchAllPostsPaginates(t *testing.T) {
	docs := []string{
		doc("p5", "cinco", "2024-01-05"),
		doc("p4", "", "2024-01-04"),
		doc("p3", "tres", "2024-01-03"),
		doc("p2", "dos", "2024-01-02"),
		doc("p1", "uno", "2024-01-01"),
	}
	srv, searches := fakeRepo(t, docs, 2)
	c := NewClient(Config{Endpoint: srv.URL + "/api/v2/", PageSize: 2}, srv.Client())

	posts, err := c.FetchAllPosts(context.Background())
	if err != nil {
		t.Fatalf("FetchAllPosts: %v", err)
	}
	if got := searches.Load(); got != 3 {
		t.Errorf("search requests = %d, want 3", got)
	}
	var got []string
	for _, p := range posts {
		got = append(got, p.ID)
	}
	if diff := cmp.Diff([]string{"p5", "p4", "p3", "p2", "p1"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}

	p := posts[1]
	if p.UID != "" || p.Identifier() != "p4" {
		t.Errorf("null uid should fall back to id, got uid=%q identifier=%q", p.UID, p.Identifier())
	}
	if p.Title() != "Entrada p4" {
		t.Errorf("Title() = %q", p.Title())
	}
	if p.Data.FeaturedImage.URL != "https://images.prismic.io/x/p4.jpg" || p.Data.FeaturedImage.Alt != "" {
		t.Errorf("featured image = %+v", p.Data.FeaturedImage)
	}
	if p.PublishDateISO() != "2024-01-04" {
		t.Errorf("publish date = %q", p.PublishDateISO())
	}

	body := p.Data.MainContent
	if len(body) != 3 {
		t.Fatalf("main content blocks = %d, want 3", len(body))
	}
	wantSpan := richtext.Span{Start: 4, End: 10, Type: richtext.Hyperlink, URL: "https://boe.es", Target: "_blank"}
	if diff := cmp.Diff([]richtext.Span{wantSpan}, body[0].Spans); diff != "" {
		t.Errorf("hyperlink span mismatch (-want +got):\n%s", diff)
	}
	if body[1].Type != richtext.Image || body[1].Alt != "cuerpo" {
		t.Errorf("image block = %+v", body[1])
	}
	if body[2].EmbedHTML != "<iframe></iframe>" {
		t.Errorf("embed html = %q", body[2].EmbedHTML)
	}
}

func TestFetchAllPostsEmpty(t *testing.T) {
	srv, _ := fakeRepo(t, nil, 100)
	c := NewClient(Config{Endpoint: srv.URL + "/api/v2"}, srv.Client())
	posts, err := c.FetchAllPosts(context.Background())
	if err != nil {
		t.Fatalf("FetchAllPosts: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("posts = %d, want 0", len(posts))
	}
}

func TestFetchAllPostsResortsOutOfOrderResults(t *testing.T) {
	docs := []string{doc("old", "", "2023-01-01"), doc("undated", "", ""), doc("new", "", "2024-06-01")}
	srv, _ := fakeRepo(t, docs, 100)
	c := NewClient(Config{Endpoint: srv.URL + "/api/v2"}, srv.Client())
	posts, err := c.FetchAllPosts(context.Background())
	if err != nil {
		t.Fatalf("FetchAllPosts: %v", err)
	}
	var got []string
	for _, p := range posts {
		got = append(got, p.ID)
	}
	if diff := cmp.Diff([]string{"new", "old", "undated"}, got); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestFetchAllPostsHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()
	c := NewClient(Config{Endpoint: srv.URL}, srv.Client())
	if _, err := c.FetchAllPosts(context.Background()); err == nil {
		t.Fatal("expected error for 500 response")
	}
}

func TestFetchAllPostsNoMasterRef(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"refs":[]}`)
	}))
	defer srv.Close()
	c := NewClient(Config{Endpoint: srv.URL}, srv.Client())
	if _, err := c.FetchAllPosts(context.Background()); !errors.Is(err, ErrNoMasterRef) {
		t.Fatalf("error = %v, want ErrNoMasterRef", err)
	}
}

func TestAccessTokenSent(t *testing.T) {
	var token string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token = r.URL.Query().Get("access_token")
		fmt.Fprint(w, `{"refs":[]}`)
	}))
	defer srv.Close()
	c := NewClient(Config{Endpoint: srv.URL, AccessToken: "secreto"}, srv.Client())
	c.FetchAllPosts(context.Background())
	if token != "secreto" {
		t.Errorf("access_token = %q", token)
	}
}

func TestEndpointURL(t *testing.T) {
	if got := (Config{Repository: "sgsasesora"}).EndpointURL(); got != "https://sgsasesora.cdn.prismic.io/api/v2" {
		t.Errorf("EndpointURL() = %q", got)
	}
	if got := (Config{Repository: "x", Endpoint: "http://localhost/api/v2/"}).EndpointURL(); got != "http://localhost/api/v2" {
		t.Errorf("EndpointURL() override = %q", got)
	}
}

package portfolio

import (
	"context"
	"sync"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sgsasesora/portfolio/content"
)

// PostSource fetches every blog post, newest first.
type PostSource interface {
	FetchAllPosts(ctx context.Context) ([]content.BlogPost, error)
}

// PostCache holds the posts fetched once at startup. Readers see an empty
// collection until the fetch completes; a failed fetch is logged and the
// collection stays empty.
type PostCache struct {
	mu      sync.RWMutex
	posts   []content.BlogPost
	loading bool
	started bool
	closed  bool
	err     error
	cancel  context.CancelFunc
	done    chan struct{}

	source  PostSource
	timeout time.Duration
	logger  echo.Logger
}

// NewPostCache creates a PostCache backed by src. A nil src leaves the
// cache permanently empty.
func NewPostCache(src PostSource, timeout time.Duration, logger echo.Logger) *PostCache {
	return &PostCache{source: src, timeout: timeout, logger: logger, done: make(chan struct{})}
}

// Load starts the fetch in the background. Only the first call has any
// effect.
func (c *PostCache) Load(ctx context.Context) {
	c.mu.Lock()
	if c.started || c.closed {
		c.mu.Unlock()
		return
	}
	c.started = true
	if c.source == nil {
		close(c.done)
		c.mu.Unlock()
		return
	}
	c.loading = true
	if c.timeout > 0 {
		ctx, c.cancel = context.WithTimeout(ctx, c.timeout)
	} else {
		ctx, c.cancel = context.WithCancel(ctx)
	}
	c.mu.Unlock()

	go c.fetch(ctx)
}

func (c *PostCache) fetch(ctx context.Context) {
	defer close(c.done)
	start := time.Now()
	posts, err := c.source.FetchAllPosts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancel()
	c.loading = false
	if c.closed {
		return
	}
	if err != nil {
		c.err = err
		if c.logger != nil {
			c.logger.Errorf("fetch posts: %v", err)
		}
		return
	}
	content.SortByPublishDate(posts)
	c.posts = posts
	if c.logger != nil {
		c.logger.Infof("loaded %d posts in %s", len(posts), time.Since(start).Round(time.Millisecond))
	}
}

// Done is closed once the fetch has finished, when there is no source to
// fetch from, or when the cache is closed before loading.
func (c *PostCache) Done() <-chan struct{} { return c.done }

// Close cancels an in-flight fetch and waits for it. A result arriving
// after Close is discarded.
func (c *PostCache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.loading = false
	started := c.started
	if c.cancel != nil {
		c.cancel()
	}
	if !started {
		close(c.done)
	}
	c.mu.Unlock()
	<-c.done
}

// Loading reports whether the fetch is still in flight.
func (c *PostCache) Loading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loading
}

// Err returns the fetch error, if any.
func (c *PostCache) Err() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.err
}

// Snapshot returns the cached posts and whether they are still loading.
// The slice must not be modified.
func (c *PostCache) Snapshot() ([]content.BlogPost, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.posts, c.loading
}

// Teaser returns the most recent posts shown on the home page.
func (c *PostCache) Teaser() []content.BlogPost {
	posts, _ := c.Snapshot()
	return content.Teaser(posts)
}

// Find returns a post by uid, falling back to id.
func (c *PostCache) Find(identifier string) (content.BlogPost, error) {
	posts, _ := c.Snapshot()
	return content.Find(posts, identifier)
}

// FindByID matches the document id only.
func (c *PostCache) FindByID(id string) (content.BlogPost, bool) {
	posts, _ := c.Snapshot()
	for _, p := range posts {
		if p.ID == id {
			return p, true
		}
	}
	return content.BlogPost{}, false
}

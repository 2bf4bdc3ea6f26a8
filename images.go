package portfolio

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"

	"github.com/hashicorp/go-cleanhttp"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

const (
	thumbWidth     = 600
	jpegQuality    = 80
	maxSourceImage = 15 << 20 // 15MB
)

// placeholderURL is used for posts without a featured image.
func placeholderURL(id string) string {
	return "https://picsum.photos/seed/" + url.PathEscape(id) + "/600/400"
}

// processImage decodes an image from src, shrinks it to thumbWidth when
// wider, and encodes it as JPEG.
func processImage(src io.Reader) ([]byte, error) {
	img, _, err := image.Decode(src)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w > thumbWidth {
		newH := h * thumbWidth / w
		dst := image.NewRGBA(image.Rect(0, 0, thumbWidth, newH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// thumbnailer downloads featured images and keeps resized copies in an LRU.
type thumbnailer struct {
	client *http.Client
	cache  *lru.Cache[string, []byte]
}

func newThumbnailer(size int, client *http.Client) (*thumbnailer, error) {
	cache, err := lru.New[string, []byte](size)
	if err != nil {
		return nil, err
	}
	if client == nil {
		client = cleanhttp.DefaultPooledClient()
	}
	return &thumbnailer{client: client, cache: cache}, nil
}

func (t *thumbnailer) thumbnail(ctx context.Context, src string) ([]byte, error) {
	if data, ok := t.cache.Get(src); ok {
		return data, nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "image/jpeg,image/png,image/webp,image/gif")
	res, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch image: unexpected status %s", res.Status)
	}
	data, err := processImage(io.LimitReader(res.Body, maxSourceImage))
	if err != nil {
		return nil, err
	}
	t.cache.Add(src, data)
	return data, nil
}

func (a *App) handleThumb(c echo.Context) error {
	id := c.Param("id")
	post, ok := a.Cache.FindByID(id)
	if !ok {
		return echo.ErrNotFound
	}
	src := post.Data.FeaturedImage.URL
	if src == "" {
		return c.Redirect(http.StatusFound, placeholderURL(post.ID))
	}
	data, err := a.thumbs.thumbnail(c.Request().Context(), src)
	if err != nil {
		c.Logger().Warnf("thumbnail %s: %v", id, err)
		return c.Redirect(http.StatusFound, src)
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}

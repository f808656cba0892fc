package download

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"time"

	// Decoders for image.Decode.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/net/context/ctxhttp"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; rv:109.0) Gecko/20100101 Firefox/115.0"
	defaultTimeout   = 60 * time.Second
)

// Client fetches a random image from URL. It satisfies interact.Fetcher.
type Client struct {
	HTTP      *http.Client
	URL       string
	UserAgent string
	// MaxExtent caps the longer side of the returned image; 0 keeps the original size.
	MaxExtent int
}

// New returns a Client for url with a timeout-bounded http.Client.
func New(url string, timeout time.Duration, maxExtent int) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		HTTP:      &http.Client{Timeout: timeout},
		URL:       url,
		UserAgent: defaultUserAgent,
		MaxExtent: maxExtent,
	}
}

// Fetch downloads and decodes one image. Redirects are followed, so endpoints such as
// picsum.photos that answer with a redirect to a random image work as expected.
func (c *Client) Fetch(ctx context.Context) (image.Image, error) {
	req, err := http.NewRequest(http.MethodGet, c.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	client := c.HTTP
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	resp, err := ctxhttp.Do(ctx, client, req)
	if err != nil {
		return nil, fmt.Errorf("download: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download: HTTP %d", resp.StatusCode)
	}
	img, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("download: decode %s: %w", resp.Header.Get("Content-Type"), err)
	}
	return Fit(img, c.MaxExtent), nil
}

// Fit scales img down, keeping its aspect ratio, so neither side exceeds maxExtent.
// Images already within bounds, and maxExtent <= 0, return img unchanged.
func Fit(img image.Image, maxExtent int) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxExtent <= 0 || (w <= maxExtent && h <= maxExtent) {
		return img
	}
	if w >= h {
		h = max(1, h*maxExtent/w)
		w = maxExtent
	} else {
		w = max(1, w*maxExtent/h)
		h = maxExtent
	}
	return transform.Resize(img, w, h, transform.Linear)
}

// Package imageprobe verifies that referenced images actually load,
// substituting a placeholder when they don't.
package imageprobe

import (
	"context"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kelhaddad/folio/internal/post"
)

// DefaultTimeout is the bounded wait per image. After it expires the
// image is treated as failed even if the request is still in flight.
const DefaultTimeout = 5 * time.Second

// InlineSVGPlaceholder is the last-resort placeholder, used when the
// configured placeholder file itself is unavailable.
const InlineSVGPlaceholder = "data:image/svg+xml," +
	"%3Csvg xmlns='http://www.w3.org/2000/svg' viewBox='0 0 160 120'%3E" +
	"%3Crect width='160' height='120' fill='%23e9ecef'/%3E" +
	"%3Cpath d='M40 84l24-28 18 20 14-12 24 20z' fill='%23adb5bd'/%3E" +
	"%3Ccircle cx='56' cy='44' r='10' fill='%23adb5bd'/%3E%3C/svg%3E"

// Image is a gallery image after load verification.
type Image struct {
	Src         string
	Alt         string
	Caption     string
	Loaded      bool
	Placeholder bool
}

// Prober checks image URLs with a bounded wait and remembers outcomes
// in an advisory cache.
type Prober struct {
	Client      *http.Client
	Cache       *Cache // optional
	Timeout     time.Duration
	Placeholder string // configured placeholder image path/URL
	LocalRoot   string // base dir for scheme-less (local asset) sources
}

// New returns a Prober with the default timeout and a plain HTTP client.
func New(placeholder, localRoot string, cache *Cache) *Prober {
	return &Prober{
		Client:      &http.Client{},
		Cache:       cache,
		Timeout:     DefaultTimeout,
		Placeholder: placeholder,
		LocalRoot:   localRoot,
	}
}

// PlaceholderSrc resolves the placeholder to use for failed images:
// the configured file when it exists, otherwise the inline vector.
func (p *Prober) PlaceholderSrc() string {
	if p.Placeholder != "" {
		if strings.Contains(p.Placeholder, "://") || strings.HasPrefix(p.Placeholder, "data:") {
			return p.Placeholder
		}
		candidate := p.Placeholder
		if p.LocalRoot != "" && !filepath.IsAbs(candidate) {
			candidate = filepath.Join(p.LocalRoot, candidate)
		}
		if _, err := os.Stat(candidate); err == nil {
			return "/" + filepath.ToSlash(strings.TrimPrefix(p.Placeholder, "/"))
		}
	}
	return InlineSVGPlaceholder
}

// Verify reports whether the image at src loads within the timeout.
// Outcomes are cached; a cache hit skips the network entirely.
func (p *Prober) Verify(ctx context.Context, src string) bool {
	if src == "" {
		return false
	}
	if strings.HasPrefix(src, "data:") {
		return true
	}

	if p.Cache != nil {
		if ok, found := p.Cache.Get(src); found {
			return ok
		}
	}

	ok := p.probe(ctx, src)

	if p.Cache != nil {
		if err := p.Cache.Put(src, ok); err != nil {
			log.Printf("imageprobe: caching %s: %v", src, err)
		}
	}
	return ok
}

// probe performs the actual check: a stat for local assets, or a
// HEAD-then-GET request pair for remote URLs.
func (p *Prober) probe(ctx context.Context, src string) bool {
	if !strings.Contains(src, "://") {
		path := strings.TrimPrefix(src, "/")
		if p.LocalRoot != "" {
			path = filepath.Join(p.LocalRoot, filepath.FromSlash(path))
		}
		info, err := os.Stat(path)
		return err == nil && !info.IsDir()
	}

	timeout := p.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if ok, decided := p.request(ctx, http.MethodHead, src); decided {
		return ok
	}
	// Some hosts reject HEAD; retry with GET and discard the body.
	ok, _ := p.request(ctx, http.MethodGet, src)
	return ok
}

// request issues one probe request. decided is false when the verdict
// is inconclusive and a retry with another method makes sense.
func (p *Prober) request(ctx context.Context, method, src string) (ok, decided bool) {
	req, err := http.NewRequestWithContext(ctx, method, src, nil)
	if err != nil {
		return false, true
	}

	resp, err := p.Client.Do(req)
	if err != nil {
		// Timeouts and transport errors are failures, not retry fodder.
		return false, true
	}
	defer func() {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))
		resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusMethodNotAllowed || resp.StatusCode == http.StatusNotImplemented {
		return false, false
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, true
	}

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if !strings.HasPrefix(ct, "image/") && !strings.HasPrefix(ct, "application/octet-stream") {
			return false, true
		}
	}
	return true, true
}

// VerifyGallery checks every gallery image, substituting the
// placeholder for failures. Order is preserved.
func (p *Prober) VerifyGallery(ctx context.Context, refs []post.GalleryRef) []Image {
	if len(refs) == 0 {
		return nil
	}
	placeholder := p.PlaceholderSrc()

	out := make([]Image, len(refs))
	for i, ref := range refs {
		img := Image{Src: ref.Src, Alt: ref.Alt, Caption: ref.Caption}
		if p.Verify(ctx, ref.Src) {
			img.Loaded = true
		} else {
			img.Src = placeholder
			img.Placeholder = true
		}
		out[i] = img
	}
	return out
}

// Banner resolves a post's banner image: the verified source, or the
// placeholder when verification fails or no image is set.
func (p *Prober) Banner(ctx context.Context, src string) Image {
	if src != "" && p.Verify(ctx, src) {
		return Image{Src: src, Loaded: true}
	}
	return Image{Src: p.PlaceholderSrc(), Placeholder: true}
}

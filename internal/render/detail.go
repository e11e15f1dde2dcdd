package render

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kelhaddad/folio/internal/imageprobe"
	"github.com/kelhaddad/folio/internal/post"
)

// inlineGalleryMax is how many gallery images are shown inline before
// the "view all" affordance takes over.
const inlineGalleryMax = 3

// Detail renders a single post page.
func (r *Renderer) Detail(ctx context.Context, p post.Post) (string, error) {
	var b strings.Builder

	b.WriteString(`<article class="post-detail">` + "\n")

	banner := r.banner(ctx, p.Image)
	if banner.Src != "" {
		fmt.Fprintf(&b, `<img class="post-banner" src="%s" alt="">`+"\n", esc(banner.Src))
	}

	b.WriteString("<header>\n")
	fmt.Fprintf(&b, "<h1>%s</h1>\n", esc(p.Title))
	fmt.Fprintf(&b, `<time datetime="%s">%s</time>`+"\n", p.Date.Format("2006-01-02"), p.Date.Format("January 2, 2006"))
	if len(p.Tags) > 0 {
		b.WriteString(`<ul class="post-tags">`)
		for _, tag := range p.Tags {
			fmt.Fprintf(&b, `<li><a href="/posts?tags=%s">%s</a></li>`, esc(tag), esc(tag))
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</header>\n")

	b.WriteString(`<div class="post-content">` + "\n")
	if p.Content.IsHTML() {
		// Post data comes from the site owner's own pipeline; it is
		// inserted as-is, not sanitized.
		b.WriteString(p.Content.HTML)
		b.WriteString("\n")
	} else {
		b.WriteString(r.renderBlocks(ctx, p.Content.Blocks))
	}
	b.WriteString("</div>\n")

	r.renderGallery(ctx, &b, p.Gallery)

	b.WriteString(`<nav class="post-nav"><a href="/back">&larr; Back</a> <a href="/posts">All posts</a></nav>` + "\n")
	b.WriteString("</article>\n")

	return r.page(p.Title, b.String())
}

// NotFound renders the missing-post page.
func (r *Renderer) NotFound(id string) (string, error) {
	var b strings.Builder
	b.WriteString(`<section class="not-found">` + "\n")
	b.WriteString("<h1>Post not found</h1>\n")
	fmt.Fprintf(&b, `<p>No post with id <code>%s</code> exists. It may have been renamed or removed.</p>`+"\n", esc(id))
	b.WriteString(`<p><a href="/posts">Browse all posts</a></p>` + "\n")
	b.WriteString("</section>\n")
	return r.page("Not found", b.String())
}

// banner resolves the detail banner through the prober when available.
func (r *Renderer) banner(ctx context.Context, src string) imageprobe.Image {
	if r.prober == nil {
		return imageprobe.Image{Src: src, Loaded: src != ""}
	}
	return r.prober.Banner(ctx, src)
}

// viewerImage is the JSON shape the full-screen viewer script reads.
type viewerImage struct {
	Src     string `json:"src"`
	Alt     string `json:"alt"`
	Caption string `json:"caption,omitempty"`
}

// renderGallery emits the verified gallery: up to three inline images,
// a view-all affordance when more exist, and the viewer dataset. Only
// successfully loaded images enter the viewer's navigable set.
func (r *Renderer) renderGallery(ctx context.Context, b *strings.Builder, refs []post.GalleryRef) {
	if len(refs) == 0 {
		return
	}

	var images []imageprobe.Image
	if r.prober != nil {
		images = r.prober.VerifyGallery(ctx, refs)
	} else {
		for _, ref := range refs {
			images = append(images, imageprobe.Image{Src: ref.Src, Alt: ref.Alt, Caption: ref.Caption, Loaded: true})
		}
	}

	// The viewer navigates loaded images only; placeholders are shown
	// inline but are not clickable.
	var viewable []viewerImage
	viewerIndex := make([]int, len(images))
	for i, img := range images {
		viewerIndex[i] = -1
		if img.Loaded {
			viewerIndex[i] = len(viewable)
			viewable = append(viewable, viewerImage{Src: img.Src, Alt: img.Alt, Caption: img.Caption})
		}
	}

	fmt.Fprintf(b, `<section class="gallery" data-total="%d">`+"\n", len(images))
	b.WriteString("<h2>Gallery</h2>\n")
	b.WriteString(`<div class="gallery-grid">` + "\n")
	for i, img := range images {
		if i >= inlineGalleryMax {
			break
		}
		b.WriteString(`<figure class="gallery-item">`)
		if viewerIndex[i] >= 0 {
			fmt.Fprintf(b, `<img src="%s" alt="%s" data-viewer-index="%d" loading="lazy">`, esc(img.Src), esc(img.Alt), viewerIndex[i])
		} else {
			fmt.Fprintf(b, `<img class="placeholder" src="%s" alt="%s" loading="lazy">`, esc(img.Src), esc(img.Alt))
		}
		if img.Caption != "" {
			fmt.Fprintf(b, "<figcaption>%s</figcaption>", esc(img.Caption))
		}
		b.WriteString("</figure>\n")
	}
	b.WriteString("</div>\n")

	if len(images) > inlineGalleryMax {
		fmt.Fprintf(b, `<button type="button" class="gallery-view-all" data-viewer-index="0">View all %d images</button>`+"\n", len(images))
	}

	if len(viewable) > 0 {
		data, err := json.Marshal(viewable)
		if err == nil {
			fmt.Fprintf(b, `<script type="application/json" id="viewer-images">%s</script>`+"\n", data)
		}
		b.WriteString(viewerMarkup)
	}

	b.WriteString("</section>\n")
}

// viewerMarkup is the hidden full-screen viewer shell. Navigation,
// wrapping, and key handling live in the site script.
const viewerMarkup = `<div class="image-viewer" id="image-viewer" hidden>
<div class="viewer-overlay"></div>
<button type="button" class="viewer-close" aria-label="Close">&times;</button>
<button type="button" class="viewer-prev" aria-label="Previous">&lsaquo;</button>
<figure><img class="viewer-image" src="" alt=""><figcaption class="viewer-caption"></figcaption></figure>
<button type="button" class="viewer-next" aria-label="Next">&rsaquo;</button>
</div>
`

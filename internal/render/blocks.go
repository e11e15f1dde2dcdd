package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/kelhaddad/folio/internal/post"
)

// renderBlocks expands a block sequence into HTML. The switch is
// exhaustive over the closed BlockKind set; KindUnknown renders an
// HTML comment naming the unhandled tag so broken data is visible in
// page source instead of silently vanishing.
func (r *Renderer) renderBlocks(ctx context.Context, blocks []post.Block) string {
	var b strings.Builder
	for _, blk := range blocks {
		r.renderBlock(ctx, &b, blk)
	}
	return b.String()
}

func (r *Renderer) renderBlock(ctx context.Context, b *strings.Builder, blk post.Block) {
	switch blk.Kind {
	case post.KindParagraph:
		b.WriteString(string(r.markdown(blk.Text)))

	case post.KindHeading:
		level := blk.Level
		if level < 1 || level > 6 {
			level = 2
		}
		fmt.Fprintf(b, "<h%d>%s</h%d>\n", level, esc(blk.Text), level)

	case post.KindList:
		tag := "ul"
		if blk.Ordered {
			tag = "ol"
		}
		fmt.Fprintf(b, "<%s>\n", tag)
		for _, item := range blk.Items {
			fmt.Fprintf(b, "<li>%s</li>\n", esc(item))
		}
		fmt.Fprintf(b, "</%s>\n", tag)

	case post.KindCode:
		// Route through the markdown pipeline so code blocks pick up
		// syntax highlighting.
		fence := "```" + blk.Language + "\n" + blk.Code + "\n```"
		b.WriteString(string(r.markdown(fence)))

	case post.KindBlockquote:
		b.WriteString("<blockquote>\n")
		b.WriteString(string(r.markdown(blk.Text)))
		b.WriteString("</blockquote>\n")

	case post.KindImage:
		img := r.verifiedImage(ctx, blk.Src, blk.Alt)
		fmt.Fprintf(b, `<figure class="content-image"><img src="%s" alt="%s" loading="lazy">`, esc(img.Src), esc(img.Alt))
		if blk.Caption != "" {
			fmt.Fprintf(b, "<figcaption>%s</figcaption>", esc(blk.Caption))
		}
		b.WriteString("</figure>\n")

	case post.KindLink:
		label := blk.Label
		if label == "" {
			label = blk.URL
		}
		fmt.Fprintf(b, `<p class="content-link"><a href="%s">%s</a></p>`+"\n", esc(blk.URL), esc(label))

	case post.KindTwoColumn:
		b.WriteString(`<div class="two-column"><div class="column">` + "\n")
		b.WriteString(r.renderBlocks(ctx, blk.Left))
		b.WriteString(`</div><div class="column">` + "\n")
		b.WriteString(r.renderBlocks(ctx, blk.Right))
		b.WriteString("</div></div>\n")

	case post.KindCallout:
		b.WriteString(`<aside class="callout">`)
		if blk.Title != "" {
			fmt.Fprintf(b, `<strong class="callout-title">%s</strong>`, esc(blk.Title))
		}
		b.WriteString(string(r.markdown(blk.Text)))
		b.WriteString("</aside>\n")

	case post.KindDivider:
		b.WriteString("<hr>\n")

	case post.KindVideo:
		fmt.Fprintf(b, `<figure class="content-video"><video controls src="%s"></video>`, esc(blk.Src))
		if blk.Caption != "" {
			fmt.Fprintf(b, "<figcaption>%s</figcaption>", esc(blk.Caption))
		}
		b.WriteString("</figure>\n")

	case post.KindUnknown:
		fmt.Fprintf(b, "<!-- unsupported block type %q -->\n", blk.RawType)

	default:
		// A new BlockKind was added without a renderer arm.
		fmt.Fprintf(b, "<!-- unrendered block kind %q -->\n", blk.Kind)
	}
}

// verifiedImage probes an inline content image, falling back to the
// placeholder like every other image surface.
func (r *Renderer) verifiedImage(ctx context.Context, src, alt string) struct{ Src, Alt string } {
	out := struct{ Src, Alt string }{Src: src, Alt: alt}
	if r.prober == nil {
		return out
	}
	if !r.prober.Verify(ctx, src) {
		out.Src = r.prober.PlaceholderSrc()
	}
	return out
}

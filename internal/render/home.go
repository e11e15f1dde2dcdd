package render

import (
	"fmt"
	"strings"

	"github.com/kelhaddad/folio/internal/post"
	"github.com/kelhaddad/folio/internal/timeline"
)

// Home renders the home view: about, featured posts, work history,
// accomplishments. The timeline is expected to be pre-sorted.
func (r *Renderer) Home(tl *timeline.Timeline, featured []post.Post) (string, error) {
	var b strings.Builder

	b.WriteString(`<section class="about" id="about">` + "\n")
	if r.site.Author != "" {
		fmt.Fprintf(&b, "<h1>%s</h1>\n", esc(r.site.Author))
	}
	if r.site.Tagline != "" {
		fmt.Fprintf(&b, `<p class="tagline">%s</p>`+"\n", esc(r.site.Tagline))
	}
	if r.site.About != "" {
		b.WriteString(string(r.markdown(r.site.About)))
	}
	b.WriteString("</section>\n")

	if len(featured) > 0 {
		b.WriteString(`<section class="featured" id="featured">` + "\n<h2>Featured</h2>\n")
		b.WriteString(`<div class="cards grid">` + "\n")
		for _, p := range featured {
			r.renderCard(&b, p)
		}
		b.WriteString("</div>\n</section>\n")
	}

	if tl != nil {
		b.WriteString(timeline.RenderWorkHistory(tl.WorkHistory))
		b.WriteString(timeline.RenderAccomplishments(tl.Accomplishments))
	}

	return r.page("Home", b.String())
}

package render

import (
	"fmt"
	"strings"

	"github.com/kelhaddad/folio/internal/filter"
	"github.com/kelhaddad/folio/internal/post"
)

// List renders the post list view: the filter control bar and the
// filtered, sorted cards. results must already be the output of the
// filter engine for state.
func (r *Renderer) List(state filter.State, results []post.Post, tagUniverse []string) (string, error) {
	var b strings.Builder

	b.WriteString(`<section class="posts" id="posts">` + "\n<h1>Posts</h1>\n")
	r.renderFilterBar(&b, state, tagUniverse, len(results))

	layout := "grid"
	if state.View == filter.ViewList {
		layout = "list"
	}
	fmt.Fprintf(&b, `<div class="cards %s" id="post-cards">`+"\n", layout)
	if len(results) == 0 {
		b.WriteString(`<p class="no-results">No posts match the current filters.</p>` + "\n")
	}
	for _, p := range results {
		r.renderCard(&b, p)
	}
	b.WriteString("</div>\n</section>\n")

	return r.page("Posts", b.String())
}

// renderFilterBar emits the search box, tag dropdown, sort select,
// view toggle, clear button, and result count. The dropdown's
// open/close-on-outside-click behavior lives in the site script.
func (r *Renderer) renderFilterBar(b *strings.Builder, state filter.State, tagUniverse []string, count int) {
	selected := make(map[string]bool, len(state.Tags))
	for _, t := range state.Tags {
		selected[t] = true
	}

	b.WriteString(`<form class="filter-bar" id="filter-bar" method="get" action="/posts">` + "\n")

	fmt.Fprintf(b, `<input type="search" name="q" placeholder="Search posts..." value="%s" autocomplete="off">`+"\n", esc(state.Search))

	// Custom multi-select: a toggle button plus a checkbox menu.
	label := "Tags"
	if len(state.Tags) > 0 {
		label = fmt.Sprintf("Tags (%d)", len(state.Tags))
	}
	b.WriteString(`<div class="tag-select" id="tag-select">` + "\n")
	fmt.Fprintf(b, `<button type="button" class="tag-select-toggle" aria-haspopup="true" aria-expanded="false">%s</button>`+"\n", esc(label))
	b.WriteString(`<div class="tag-select-menu" hidden>` + "\n")
	for _, tag := range tagUniverse {
		checked := ""
		if selected[tag] {
			checked = " checked"
		}
		fmt.Fprintf(b, `<label><input type="checkbox" name="tags" value="%s"%s> %s</label>`+"\n", esc(tag), checked, esc(tag))
	}
	b.WriteString("</div>\n</div>\n")

	b.WriteString(`<select name="sort">` + "\n")
	for _, opt := range []struct {
		value filter.SortOrder
		label string
	}{
		{filter.SortNewest, "Newest first"},
		{filter.SortOldest, "Oldest first"},
	} {
		sel := ""
		if state.Sort == opt.value {
			sel = " selected"
		}
		fmt.Fprintf(b, `<option value="%s"%s>%s</option>`+"\n", opt.value, sel, opt.label)
	}
	b.WriteString("</select>\n")

	gridActive, listActive := " active", ""
	if state.View == filter.ViewList {
		gridActive, listActive = "", " active"
	}
	fmt.Fprintf(b, `<div class="view-toggle"><button type="submit" name="view" value="grid" class="view-grid%s" aria-label="Grid view">▦</button><button type="submit" name="view" value="list" class="view-list%s" aria-label="List view">☰</button></div>`+"\n",
		gridActive, listActive)

	b.WriteString(`<a class="filter-clear" href="/posts">Clear</a>` + "\n")
	fmt.Fprintf(b, `<span class="result-count">%d %s</span>`+"\n", count, plural(count, "post", "posts"))
	b.WriteString("</form>\n")
}

// renderCard emits one post card, shared by the list and featured views.
func (r *Renderer) renderCard(b *strings.Builder, p post.Post) {
	fmt.Fprintf(b, `<article class="card%s">`+"\n", pinnedClass(p))
	if p.Image != "" {
		fmt.Fprintf(b, `<a href="/posts/%s" class="card-image"><img src="%s" alt="" loading="lazy"></a>`+"\n", esc(p.ID), esc(p.Image))
	}
	fmt.Fprintf(b, `<h3><a href="/posts/%s">%s</a></h3>`+"\n", esc(p.ID), esc(p.Title))
	fmt.Fprintf(b, `<time datetime="%s">%s</time>`+"\n", p.Date.Format("2006-01-02"), p.Date.Format("January 2, 2006"))
	if p.Description != "" {
		fmt.Fprintf(b, `<p class="card-desc">%s</p>`+"\n", esc(p.Description))
	}
	if len(p.Tags) > 0 {
		b.WriteString(`<ul class="card-tags">`)
		for _, tag := range p.Tags {
			fmt.Fprintf(b, `<li><a href="/posts?tags=%s">%s</a></li>`, esc(tag), esc(tag))
		}
		b.WriteString("</ul>\n")
	}
	b.WriteString("</article>\n")
}

func pinnedClass(p post.Post) string {
	if p.Pinned {
		return " pinned"
	}
	return ""
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

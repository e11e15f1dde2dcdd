package timeline

import (
	"fmt"
	"html/template"
	"strings"
)

// esc shortens the escaping calls below.
func esc(s string) string { return template.HTMLEscapeString(s) }

// when formats a (year, month) pair for display.
func when(year int, month string) string {
	if year == 0 {
		return ""
	}
	if month == "" {
		return fmt.Sprintf("%d", year)
	}
	return fmt.Sprintf("%s %d", month, year)
}

// RenderAccomplishments renders the accomplishments column as HTML.
// Entries are emitted in the order they are given; callers sort first.
func RenderAccomplishments(entries []Accomplishment) string {
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<section class="timeline" id="accomplishments">` + "\n")
	b.WriteString("<h2>Accomplishments</h2>\n<ul class=\"timeline-list\">\n")
	for _, e := range entries {
		b.WriteString(`<li class="timeline-entry">`)
		fmt.Fprintf(&b, `<span class="timeline-date">%s</span>`, esc(when(e.Year, e.Month)))
		if e.PostID != "" {
			fmt.Fprintf(&b, `<a class="timeline-title" href="/posts/%s">%s</a>`, esc(e.PostID), esc(e.Title))
		} else {
			fmt.Fprintf(&b, `<span class="timeline-title">%s</span>`, esc(e.Title))
		}
		if e.Description != "" {
			fmt.Fprintf(&b, `<p class="timeline-desc">%s</p>`, esc(e.Description))
		}
		b.WriteString("</li>\n")
	}
	b.WriteString("</ul>\n</section>\n")
	return b.String()
}

// RenderWorkHistory renders employment entries with their optional
// nested project popups. The popup open/close and focus handling live
// in the site script; this emits the triggers and hidden popup bodies.
func RenderWorkHistory(entries []WorkEntry) string {
	if len(entries) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<section class="work-history" id="work">` + "\n")
	b.WriteString("<h2>Work History</h2>\n")
	for i, e := range entries {
		b.WriteString(`<article class="work-entry">` + "\n")
		period := e.Period
		if period == "" {
			period = when(e.Year, e.Month)
		}
		fmt.Fprintf(&b, `<header><h3>%s</h3><span class="work-position">%s</span><span class="work-period">%s</span></header>`+"\n",
			esc(e.Company), esc(e.Position), esc(period))
		if e.Description != "" {
			fmt.Fprintf(&b, `<p class="work-desc">%s</p>`+"\n", esc(e.Description))
		}
		if len(e.Technologies) > 0 {
			b.WriteString(`<ul class="work-tech">`)
			for _, tech := range e.Technologies {
				fmt.Fprintf(&b, `<li>%s</li>`, esc(tech))
			}
			b.WriteString("</ul>\n")
		}
		for j, proj := range e.Projects {
			popupID := fmt.Sprintf("project-popup-%d-%d", i, j)
			fmt.Fprintf(&b, `<button class="project-trigger" data-popup="%s">%s</button>`+"\n", popupID, esc(proj.Name))
			fmt.Fprintf(&b, `<div class="project-popup" id="%s" role="dialog" aria-label="%s" hidden>`+"\n", popupID, esc(proj.Name))
			fmt.Fprintf(&b, `<button class="popup-close" aria-label="Close">&times;</button>`+"\n")
			fmt.Fprintf(&b, `<h4>%s</h4>`+"\n", esc(proj.Name))
			if proj.Description != "" {
				fmt.Fprintf(&b, `<p>%s</p>`+"\n", esc(proj.Description))
			}
			if proj.PostID != "" {
				fmt.Fprintf(&b, `<a href="/posts/%s">Read more</a>`+"\n", esc(proj.PostID))
			}
			b.WriteString("</div>\n")
		}
		b.WriteString("</article>\n")
	}
	b.WriteString("</section>\n")
	return b.String()
}

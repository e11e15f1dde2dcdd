// Package render turns loaded data into HTML pages. Rendering is a
// pure mapping from data to markup: nothing here touches the HTTP
// layer, so every view is testable as a plain function.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/kelhaddad/folio/internal/imageprobe"
)

// Site is the static site identity rendered into every page.
type Site struct {
	Title      string
	Author     string
	Tagline    string
	About      string // markdown, shown on the home view
	LiveReload bool
}

// Renderer renders all three views. It holds no mutable state; caching
// happens in the caller.
type Renderer struct {
	site   Site
	md     goldmark.Markdown
	prober *imageprobe.Prober
	tmpl   *template.Template
}

// New creates a Renderer. prober may be nil, in which case images are
// passed through unverified (used by tests that don't exercise images).
func New(site Site, prober *imageprobe.Prober) (*Renderer, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
		),
	)

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}

	return &Renderer{site: site, md: md, prober: prober, tmpl: tmpl}, nil
}

// pageData is the payload of the outer page template.
type pageData struct {
	Title      string
	SiteTitle  string
	Author     string
	Tagline    string
	Content    template.HTML
	LiveReload bool
}

// page wraps rendered body HTML in the site chrome.
func (r *Renderer) page(title, body string) (string, error) {
	data := pageData{
		Title:      title,
		SiteTitle:  r.site.Title,
		Author:     r.site.Author,
		Tagline:    r.site.Tagline,
		Content:    template.HTML(body),
		LiveReload: r.site.LiveReload,
	}
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing page template: %w", err)
	}
	return buf.String(), nil
}

// markdown converts markdown text to HTML. Conversion failures degrade
// to escaped plain text rather than losing content.
func (r *Renderer) markdown(text string) template.HTML {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(text), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(text) + "</p>")
	}
	return template.HTML(buf.String())
}

// esc is a shorthand for HTML escaping in builder-style rendering.
func esc(s string) string { return template.HTMLEscapeString(s) }

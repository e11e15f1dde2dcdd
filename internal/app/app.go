// Package app owns the mutable application state: the loaded post
// sequence, the filter engine, the navigation history, and the
// rendered-page cache. Everything is constructed at startup and torn
// down on shutdown; there is no package-level state.
package app

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"github.com/kelhaddad/folio/internal/config"
	"github.com/kelhaddad/folio/internal/filter"
	"github.com/kelhaddad/folio/internal/imageprobe"
	"github.com/kelhaddad/folio/internal/nav"
	"github.com/kelhaddad/folio/internal/post"
	"github.com/kelhaddad/folio/internal/render"
	"github.com/kelhaddad/folio/internal/timeline"
)

// App is the explicit application state shared by the HTTP handlers.
// The mutex guards data swaps on reload; handlers take read access.
type App struct {
	cfg      *config.Config
	renderer *render.Renderer
	prober   *imageprobe.Prober
	loader   *post.Loader

	mu       sync.RWMutex
	posts    []post.Post
	engine   *filter.Engine
	tl       *timeline.Timeline
	history  nav.History
	detail   *render.DetailCache
}

// New builds the application state and performs the initial data load.
func New(ctx context.Context, cfg *config.Config, prober *imageprobe.Prober) (*App, error) {
	renderer, err := render.New(render.Site{
		Title:      cfg.Title,
		Author:     cfg.Author,
		Tagline:    cfg.Tagline,
		About:      cfg.About,
		LiveReload: cfg.LiveEdit,
	}, prober)
	if err != nil {
		return nil, fmt.Errorf("building renderer: %w", err)
	}

	a := &App{
		cfg:      cfg,
		renderer: renderer,
		prober:   prober,
		loader:   &post.Loader{Dir: cfg.DataDir, MaxConcurrency: cfg.MaxConcurrency},
		detail:   render.NewDetailCache(),
	}
	a.Reload(ctx)
	return a, nil
}

// Reload re-runs the loader, swaps in the fresh data, and drops every
// advisory cache. Called at startup and whenever the data dir changes.
func (a *App) Reload(ctx context.Context) {
	posts := a.loader.Load(ctx)

	tl, err := timeline.Load(filepath.Join(a.cfg.DataDir, a.cfg.Timeline))
	if err != nil {
		log.Printf("app: timeline load failed, keeping sections empty: %v", err)
		tl = &timeline.Timeline{}
	}
	tl.SortWorkHistory()
	tl.SortAccomplishments(a.cfg.AccomplishmentOrder != config.SortOldestFirst)

	a.mu.Lock()
	a.posts = posts
	a.engine = filter.New(posts)
	a.tl = tl
	a.mu.Unlock()

	a.detail.Clear()
	log.Printf("app: loaded %d posts, %d work entries, %d accomplishments",
		len(posts), len(tl.WorkHistory), len(tl.Accomplishments))
}

// Renderer returns the view renderer.
func (a *App) Renderer() *render.Renderer { return a.renderer }

// DetailCache returns the rendered-detail cache.
func (a *App) DetailCache() *render.DetailCache { return a.detail }

// Posts returns the current post sequence.
func (a *App) Posts() []post.Post {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.posts
}

// Featured returns the posts flagged featured or pinned, pinned first.
func (a *App) Featured() []post.Post {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var pinned, featured []post.Post
	for _, p := range a.posts {
		switch {
		case p.Pinned:
			pinned = append(pinned, p)
		case p.Featured:
			featured = append(featured, p)
		}
	}
	return append(pinned, featured...)
}

// Find looks a post up by id.
func (a *App) Find(id string) (post.Post, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, p := range a.posts {
		if p.ID == id {
			return p, true
		}
	}
	return post.Post{}, false
}

// Filter normalizes the state and runs the filter engine, returning
// the clamped state, the matching posts, and the tag universe.
func (a *App) Filter(state filter.State) (filter.State, []post.Post, []string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	norm := a.engine.Normalize(state)
	return norm, a.engine.Compute(norm), a.engine.TagUniverse()
}

// Timeline returns the sorted timeline data.
func (a *App) Timeline() *timeline.Timeline {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.tl
}

// Visit records a forward navigation.
func (a *App) Visit(r nav.Route) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.history.Push(r)
}

// Back pops the navigation history and returns the route to show.
func (a *App) Back() nav.Route {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.history.Back()
}

// HistoryLen reports the navigation stack depth.
func (a *App) HistoryLen() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.history.Len()
}

// Package filter computes the filtered, sorted post subsequence shown
// on the list view, with last-result memoization.
package filter

import (
	"sort"
	"strings"

	"github.com/kelhaddad/folio/internal/post"
)

// SortOrder selects the date ordering of the list view.
type SortOrder string

const (
	SortNewest SortOrder = "newest"
	SortOldest SortOrder = "oldest"
)

// ViewMode selects the card layout. It never affects which posts are
// shown, so it is excluded from the memoization key.
type ViewMode string

const (
	ViewGrid ViewMode = "grid"
	ViewList ViewMode = "list"
)

// State is the current search/tag/sort/view selection.
type State struct {
	Search string
	Tags   []string
	Sort   SortOrder
	View   ViewMode
}

// Engine filters and sorts a fixed post sequence. It memoizes the last
// computed result: a repeated call with an unchanged state is served
// from cache, except when the cached result is empty. That empty-result
// bypass is inherited behavior, kept deliberately; an all-miss filter
// recomputes every time, which costs nothing measurable at this scale.
type Engine struct {
	posts    []post.Post
	universe map[string]bool

	lastKey string
	cached  []post.Post
}

// New creates an Engine over the given post sequence. The sequence is
// not copied; it must not be mutated while the engine is in use.
func New(posts []post.Post) *Engine {
	universe := make(map[string]bool)
	for _, p := range posts {
		for _, t := range p.Tags {
			universe[t] = true
		}
	}
	return &Engine{posts: posts, universe: universe}
}

// TagUniverse returns the sorted distinct tags of the engine's posts.
func (e *Engine) TagUniverse() []string {
	out := make([]string, 0, len(e.universe))
	for t := range e.universe {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Normalize clamps the state to valid values: selected tags outside the
// tag universe are dropped, and zero-value enums get their defaults.
func (e *Engine) Normalize(s State) State {
	var tags []string
	for _, t := range s.Tags {
		if e.universe[t] {
			tags = append(tags, t)
		}
	}
	s.Tags = tags

	if s.Sort != SortOldest {
		s.Sort = SortNewest
	}
	if s.View != ViewList {
		s.View = ViewGrid
	}
	return s
}

// Compute returns the posts matching the state, sorted by date. The
// result is a fresh ordering over the shared post values.
func (e *Engine) Compute(s State) []post.Post {
	s = e.Normalize(s)

	key := cacheKey(s)
	if key == e.lastKey && len(e.cached) > 0 {
		return e.cached
	}

	result := make([]post.Post, 0, len(e.posts))
	for _, p := range e.posts {
		if matches(p, s) {
			result = append(result, p)
		}
	}

	// Stable: posts sharing a date keep their input order.
	sort.SliceStable(result, func(i, j int) bool {
		if s.Sort == SortOldest {
			return result[i].Date.Before(result[j].Date)
		}
		return result[i].Date.After(result[j].Date)
	})

	e.lastKey = key
	e.cached = result
	return result
}

// Reset drops the memoized result. Called when filters are cleared or
// the underlying data changes.
func (e *Engine) Reset() {
	e.lastKey = ""
	e.cached = nil
}

// matches applies the search and tag predicates from the state.
func matches(p post.Post, s State) bool {
	if term := strings.ToLower(strings.TrimSpace(s.Search)); term != "" {
		if !searchHit(p, term) {
			return false
		}
	}

	if len(s.Tags) > 0 {
		if !tagHit(p, s.Tags) {
			return false
		}
	}

	return true
}

// searchHit reports a case-insensitive substring match against the
// title, description, or any tag.
func searchHit(p post.Post, term string) bool {
	if strings.Contains(strings.ToLower(p.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	for _, t := range p.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	return false
}

// tagHit reports whether the post's tag set intersects the selection.
func tagHit(p post.Post, selected []string) bool {
	for _, want := range selected {
		for _, have := range p.Tags {
			if have == want {
				return true
			}
		}
	}
	return false
}

// cacheKey serializes the filtering-relevant parts of the state. Tags
// are order-normalized so [a b] and [b a] share a key.
func cacheKey(s State) string {
	tags := append([]string(nil), s.Tags...)
	sort.Strings(tags)

	var b strings.Builder
	b.WriteString(strings.ToLower(strings.TrimSpace(s.Search)))
	b.WriteByte('\x00')
	for _, t := range tags {
		b.WriteString(t)
		b.WriteByte('\x1f')
	}
	b.WriteByte('\x00')
	b.WriteString(string(s.Sort))
	return b.String()
}

// Package nav resolves routes and tracks a bounded navigation history.
package nav

import "strings"

// View names a renderable page.
type View string

const (
	ViewHome   View = "home"
	ViewPosts  View = "posts"
	ViewDetail View = "post-detail"
)

// Route is a resolved (view, optional post id) pair.
type Route struct {
	View   View
	PostID string
}

// Home is the default route.
var Home = Route{View: ViewHome}

// Parse resolves a URL fragment or path into a Route. The accepted
// grammar is `<view>` or `<view>/<postId>` with view ∈ {home, posts};
// leading "#" and "/" are tolerated. Anything empty or unrecognized
// resolves to home.
func Parse(fragment string) Route {
	s := strings.TrimSpace(fragment)
	s = strings.TrimPrefix(s, "#")
	s = strings.Trim(s, "/")
	if s == "" {
		return Home
	}

	parts := strings.SplitN(s, "/", 2)
	switch parts[0] {
	case "home":
		return Home
	case "posts":
		if len(parts) == 2 && parts[1] != "" {
			return Route{View: ViewDetail, PostID: parts[1]}
		}
		return Route{View: ViewPosts}
	default:
		return Home
	}
}

// Path returns the canonical URL path for the route.
func (r Route) Path() string {
	switch r.View {
	case ViewPosts:
		return "/posts"
	case ViewDetail:
		return "/posts/" + r.PostID
	default:
		return "/"
	}
}

// Fragment returns the legacy hash form of the route.
func (r Route) Fragment() string {
	switch r.View {
	case ViewPosts:
		return "#posts"
	case ViewDetail:
		return "#posts/" + r.PostID
	default:
		return "#home"
	}
}

// maxHistory bounds the navigation stack; the oldest entry is dropped
// once the cap is reached.
const maxHistory = 10

// History is a bounded navigation stack. It is not safe for concurrent
// use; the owner serializes access.
type History struct {
	entries []Route
}

// Push records a forward navigation: the freshly resolved route goes
// on top of the stack.
func (h *History) Push(r Route) {
	h.entries = append(h.entries, r)
	if len(h.entries) > maxHistory {
		h.entries = h.entries[len(h.entries)-maxHistory:]
	}
}

// Back pops the current entry and returns the route to re-render: the
// new top of the stack, or home when nothing is left.
func (h *History) Back() Route {
	if len(h.entries) == 0 {
		return Home
	}
	h.entries = h.entries[:len(h.entries)-1]
	if len(h.entries) == 0 {
		return Home
	}
	return h.entries[len(h.entries)-1]
}

// Len returns the number of stacked entries.
func (h *History) Len() int { return len(h.entries) }

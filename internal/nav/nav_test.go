package nav

import (
	"fmt"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Route
	}{
		{"", Home},
		{"#", Home},
		{"home", Home},
		{"#home", Home},
		{"/", Home},
		{"posts", Route{View: ViewPosts}},
		{"#posts", Route{View: ViewPosts}},
		{"/posts", Route{View: ViewPosts}},
		{"posts/", Route{View: ViewPosts}},
		{"posts/abc", Route{View: ViewDetail, PostID: "abc"}},
		{"#posts/abc", Route{View: ViewDetail, PostID: "abc"}},
		{"/posts/abc", Route{View: ViewDetail, PostID: "abc"}},
		{"garbage", Home},
		{"admin/secret", Home},
	}
	for _, tt := range tests {
		if got := Parse(tt.input); got != tt.want {
			t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestRoutePath(t *testing.T) {
	tests := []struct {
		route Route
		want  string
	}{
		{Home, "/"},
		{Route{View: ViewPosts}, "/posts"},
		{Route{View: ViewDetail, PostID: "abc"}, "/posts/abc"},
	}
	for _, tt := range tests {
		if got := tt.route.Path(); got != tt.want {
			t.Errorf("Path(%+v) = %q, want %q", tt.route, got, tt.want)
		}
	}
}

func TestHistoryBackEmpty(t *testing.T) {
	var h History
	if got := h.Back(); got != Home {
		t.Errorf("Back on empty stack = %+v, want home", got)
	}
}

func TestHistoryPushBack(t *testing.T) {
	var h History
	h.Push(Home)
	h.Push(Route{View: ViewPosts})
	h.Push(Route{View: ViewDetail, PostID: "a"})

	// Back pops the current route and lands on the previous one.
	if got := h.Back(); got.View != ViewPosts {
		t.Errorf("first Back = %+v, want posts", got)
	}
	if got := h.Back(); got != Home {
		t.Errorf("second Back = %+v, want home", got)
	}
	if got := h.Back(); got != Home {
		t.Errorf("Back past the bottom = %+v, want home", got)
	}
}

func TestHistoryBounded(t *testing.T) {
	var h History
	for i := 0; i < 25; i++ {
		h.Push(Route{View: ViewDetail, PostID: fmt.Sprintf("p%d", i)})
	}

	if h.Len() != maxHistory {
		t.Fatalf("len = %d, want %d", h.Len(), maxHistory)
	}
	// Only the most recent 10 survive: p15 through p24. Walking back
	// from p24 lands on p23, then p22, ... down to p15, then home.
	want := []string{"p23", "p22", "p21", "p20", "p19", "p18", "p17", "p16", "p15"}
	for _, id := range want {
		if got := h.Back(); got.PostID != id {
			t.Fatalf("Back = %s, want %s", got.PostID, id)
		}
	}
	if got := h.Back(); got != Home {
		t.Errorf("Back past the oldest entry = %+v, want home", got)
	}
}

func TestNavigationScenario(t *testing.T) {
	// home → posts → post/a → back → back ends at home.
	var h History

	h.Push(Parse(""))
	h.Push(Parse("posts"))
	h.Push(Parse("posts/a"))

	current := h.Back()
	if current.View != ViewPosts {
		t.Fatalf("after first back: %+v, want posts", current)
	}
	current = h.Back()
	if current != Home {
		t.Fatalf("after second back: %+v, want home", current)
	}
}

package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kelhaddad/folio/internal/app"
	"github.com/kelhaddad/folio/internal/config"
	"github.com/kelhaddad/folio/internal/imageprobe"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()

	writeTestFile(t, filepath.Join(dir, "posts", "index.json"), `[
		{"id": "alpha", "title": "Alpha Post", "date": "2024-01-01", "tags": ["go"]},
		{"id": "beta", "title": "Beta Post", "date": "2023-06-01", "tags": ["art"]}
	]`)
	writeTestFile(t, filepath.Join(dir, "posts", "alpha.json"), `{
		"id": "alpha", "title": "Alpha Post", "date": "2024-01-01",
		"description": "about go", "tags": ["go"], "featured": true,
		"content": "<p>alpha body</p>"
	}`)
	writeTestFile(t, filepath.Join(dir, "posts", "beta.json"), `{
		"id": "beta", "title": "Beta Post", "date": "2023-06-01",
		"description": "about art", "tags": ["art"],
		"content": [{"type": "paragraph", "text": "beta body"}]
	}`)
	writeTestFile(t, filepath.Join(dir, "timeline.json"), `{
		"accomplishments": [{"title": "Won a thing", "year": 2023, "month": "May"}],
		"workHistory": []
	}`)
	writeTestFile(t, filepath.Join(dir, "assets", "hello.txt"), "asset body")

	cfg := config.DefaultConfig()
	cfg.Title = "Test Folio"
	cfg.Author = "Jo Example"
	cfg.DataDir = dir

	a, err := app.New(context.Background(), cfg, imageprobe.New("", dir, nil))
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	return New(Config{Port: 0, DataDir: dir}, a)
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

// getFollow issues a request and follows redirects the way a browser
// would, returning the final response and the path it landed on.
func getFollow(t *testing.T, srv *Server, path string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	for i := 0; i < 10; i++ {
		w := get(t, srv, path)
		if w.Code < 300 || w.Code >= 400 {
			return w, strings.SplitN(path, "?", 2)[0]
		}
		loc := w.Header().Get("Location")
		if loc == "" {
			t.Fatalf("redirect from %s without Location", path)
		}
		path = loc
	}
	t.Fatalf("redirect loop starting at %s", path)
	return nil, ""
}

func TestHealthCheck(t *testing.T) {
	srv := newTestServer(t)
	w := get(t, srv, "/healthz")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", body["status"])
	}
}

func TestHomePage(t *testing.T) {
	srv := newTestServer(t)
	w := get(t, srv, "/")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Jo Example", "Alpha Post", "Won a thing"} {
		if !strings.Contains(body, want) {
			t.Errorf("home page should contain %q", want)
		}
	}
	// Beta is neither featured nor pinned, so it stays off the home page.
	if strings.Contains(body, "Beta Post") {
		t.Error("non-featured post should not appear on the home page")
	}
}

func TestPostsPage(t *testing.T) {
	srv := newTestServer(t)
	w := get(t, srv, "/posts")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "Alpha Post") || !strings.Contains(body, "Beta Post") {
		t.Error("unfiltered list should show every post")
	}
	if !strings.Contains(body, "2 posts") {
		t.Error("result count missing")
	}
}

func TestPostsPageFiltered(t *testing.T) {
	srv := newTestServer(t)

	w := get(t, srv, "/posts?q=go")
	body := w.Body.String()
	if !strings.Contains(body, "Alpha Post") {
		t.Error("search for 'go' should keep the matching post")
	}
	if strings.Contains(body, "Beta Post") {
		t.Error("search for 'go' should drop the non-matching post")
	}

	w = get(t, srv, "/posts?tags=art")
	body = w.Body.String()
	if strings.Contains(body, "Alpha Post") || !strings.Contains(body, "Beta Post") {
		t.Error("tag filter should keep only tagged posts")
	}

	// Tags outside the universe are dropped, leaving the full list.
	w = get(t, srv, "/posts?tags=nonsense")
	if !strings.Contains(w.Body.String(), "2 posts") {
		t.Error("unknown tag should be ignored")
	}
}

func TestPostDetail(t *testing.T) {
	srv := newTestServer(t)
	w := get(t, srv, "/posts/alpha")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "<p>alpha body</p>") {
		t.Error("detail page should carry the post content")
	}
}

func TestPostDetailNotFound(t *testing.T) {
	srv := newTestServer(t)
	w := get(t, srv, "/posts/ghost")

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "ghost") {
		t.Error("not-found page should name the missing id")
	}
}

func TestBackRedirect(t *testing.T) {
	srv := newTestServer(t)

	// No history yet: back lands on home.
	w := get(t, srv, "/back")
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/" {
		t.Errorf("empty-history back should redirect to /, got %q", loc)
	}

	// home → posts → detail, then back twice ends at home.
	get(t, srv, "/")
	get(t, srv, "/posts")
	get(t, srv, "/posts/alpha")

	w = get(t, srv, "/back")
	if loc := w.Header().Get("Location"); loc != "/posts?nav=back" {
		t.Errorf("first back should land on /posts, got %q", loc)
	}
	w = get(t, srv, "/back")
	if loc := w.Header().Get("Location"); loc != "/?nav=back" {
		t.Errorf("second back should land on /, got %q", loc)
	}
}

func TestNavigationScenarioFollowingRedirects(t *testing.T) {
	srv := newTestServer(t)

	// home → posts → post/a, then back twice, following every redirect
	// like a browser. The back-driven renders must not push the route
	// again, or the second back could never get past /posts.
	get(t, srv, "/")
	get(t, srv, "/posts")
	get(t, srv, "/posts/alpha")

	w, landed := getFollow(t, srv, "/back")
	if w.Code != http.StatusOK || landed != "/posts" {
		t.Fatalf("first back landed on %q (code %d), want /posts", landed, w.Code)
	}
	w, landed = getFollow(t, srv, "/back")
	if w.Code != http.StatusOK || landed != "/" {
		t.Fatalf("second back landed on %q (code %d), want /", landed, w.Code)
	}

	// A further back stays home.
	_, landed = getFollow(t, srv, "/back")
	if landed != "/" {
		t.Errorf("back past the bottom landed on %q, want /", landed)
	}
}

func TestBackRenderDoesNotGrowHistory(t *testing.T) {
	srv := newTestServer(t)

	get(t, srv, "/")
	get(t, srv, "/posts")
	before := srv.app.HistoryLen()

	getFollow(t, srv, "/back")
	if got := srv.app.HistoryLen(); got != before-1 {
		t.Errorf("history len after back = %d, want %d", got, before-1)
	}
}

func TestAPIPosts(t *testing.T) {
	srv := newTestServer(t)
	w := get(t, srv, "/api/posts?tags=go")

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var posts []apiPost
	if err := json.Unmarshal(w.Body.Bytes(), &posts); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(posts) != 1 || posts[0].ID != "alpha" {
		t.Errorf("expected [alpha], got %+v", posts)
	}
}

func TestStaticAssets(t *testing.T) {
	srv := newTestServer(t)

	w := get(t, srv, "/static/style.css")
	if w.Code != http.StatusOK || !strings.Contains(w.Header().Get("Content-Type"), "text/css") {
		t.Errorf("style.css: code=%d type=%q", w.Code, w.Header().Get("Content-Type"))
	}
	w = get(t, srv, "/static/site.js")
	if w.Code != http.StatusOK || !strings.Contains(w.Header().Get("Content-Type"), "javascript") {
		t.Errorf("site.js: code=%d type=%q", w.Code, w.Header().Get("Content-Type"))
	}
	w = get(t, srv, "/assets/hello.txt")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "asset body") {
		t.Errorf("data asset: code=%d body=%q", w.Code, w.Body.String())
	}
}

func TestPlaceholderURLServedByAssetRoute(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "posts", "index.json"), `[]`)
	writeTestFile(t, filepath.Join(dir, "assets", "placeholder.png"), "png bytes")

	cfg := config.DefaultConfig()
	cfg.Title = "T"
	cfg.DataDir = dir

	prober := imageprobe.New("assets/placeholder.png", dir, nil)
	a, err := app.New(context.Background(), cfg, prober)
	if err != nil {
		t.Fatalf("app.New: %v", err)
	}
	srv := New(Config{Port: 0, DataDir: dir}, a)

	// The URL the prober emits for failed images must resolve through
	// the asset route to the same file the prober verified.
	src := prober.PlaceholderSrc()
	if src != "/assets/placeholder.png" {
		t.Fatalf("PlaceholderSrc = %q, want /assets/placeholder.png", src)
	}
	w := get(t, srv, src)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s = %d, want 200", src, w.Code)
	}
	if !strings.Contains(w.Body.String(), "png bytes") {
		t.Error("asset route served the wrong file")
	}
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(t)
	srv.cfg.AllowAll = true
	srv.router = srv.buildRouter()

	req := httptest.NewRequest("OPTIONS", "/healthz", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected CORS Allow-Origin header")
	}
}

func TestDetailCacheAcrossRequests(t *testing.T) {
	srv := newTestServer(t)

	get(t, srv, "/posts/alpha")
	if _, hit := srv.app.DetailCache().Get("alpha"); !hit {
		t.Fatal("first detail request should populate the cache")
	}

	w := get(t, srv, "/posts/alpha")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "alpha body") {
		t.Error("cached detail page should still serve the content")
	}
}

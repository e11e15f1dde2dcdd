package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kelhaddad/folio/internal/config"
	"github.com/kelhaddad/folio/internal/filter"
	"github.com/kelhaddad/folio/internal/imageprobe"
	"github.com/kelhaddad/folio/internal/nav"
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

func newTestApp(t *testing.T) (*App, string) {
	t.Helper()
	dir := t.TempDir()

	writeTestFile(t, filepath.Join(dir, "posts", "index.json"), `[
		{"id": "a", "title": "A", "date": "2024-01-01"},
		{"id": "b", "title": "B", "date": "2023-01-01"},
		{"id": "c", "title": "C", "date": "2022-01-01"}
	]`)
	writeTestFile(t, filepath.Join(dir, "posts", "a.json"),
		`{"id": "a", "title": "A", "date": "2024-01-01", "featured": true}`)
	writeTestFile(t, filepath.Join(dir, "posts", "b.json"),
		`{"id": "b", "title": "B", "date": "2023-01-01", "pinned": true}`)
	writeTestFile(t, filepath.Join(dir, "posts", "c.json"),
		`{"id": "c", "title": "C", "date": "2022-01-01"}`)

	cfg := config.DefaultConfig()
	cfg.Title = "T"
	cfg.DataDir = dir

	a, err := New(context.Background(), cfg, imageprobe.New("", dir, nil))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return a, dir
}

func TestFeaturedPinnedFirst(t *testing.T) {
	a, _ := newTestApp(t)

	featured := a.Featured()
	if len(featured) != 2 {
		t.Fatalf("featured = %d posts, want 2", len(featured))
	}
	if featured[0].ID != "b" || featured[1].ID != "a" {
		t.Errorf("order = [%s %s], want pinned before featured", featured[0].ID, featured[1].ID)
	}
}

func TestFind(t *testing.T) {
	a, _ := newTestApp(t)

	if p, ok := a.Find("b"); !ok || p.Title != "B" {
		t.Errorf("Find(b) = %+v, %v", p, ok)
	}
	if _, ok := a.Find("ghost"); ok {
		t.Error("Find should miss on unknown ids")
	}
}

func TestReloadSwapsData(t *testing.T) {
	a, dir := newTestApp(t)

	if len(a.Posts()) != 3 {
		t.Fatalf("initial posts = %d, want 3", len(a.Posts()))
	}
	a.DetailCache().Put("a", "<html>stale</html>")

	writeTestFile(t, filepath.Join(dir, "posts", "index.json"), `[
		{"id": "a", "title": "A", "date": "2024-01-01"}
	]`)
	a.Reload(context.Background())

	if len(a.Posts()) != 1 {
		t.Errorf("posts after reload = %d, want 1", len(a.Posts()))
	}
	if _, hit := a.DetailCache().Get("a"); hit {
		t.Error("reload should clear the detail cache")
	}
	if _, ok := a.Find("b"); ok {
		t.Error("removed post should be gone after reload")
	}
}

func TestFilterNormalizes(t *testing.T) {
	a, _ := newTestApp(t)

	norm, results, _ := a.Filter(filter.State{Tags: []string{"nonsense"}})
	if len(norm.Tags) != 0 {
		t.Errorf("unknown tag survived normalization: %v", norm.Tags)
	}
	if len(results) != 3 {
		t.Errorf("results = %d, want all 3", len(results))
	}
}

func TestHistoryFlow(t *testing.T) {
	a, _ := newTestApp(t)

	a.Visit(nav.Home)
	a.Visit(nav.Route{View: nav.ViewPosts})
	a.Visit(nav.Route{View: nav.ViewDetail, PostID: "a"})

	if a.HistoryLen() != 3 {
		t.Fatalf("history len = %d, want 3", a.HistoryLen())
	}
	if got := a.Back(); got.View != nav.ViewPosts {
		t.Errorf("Back = %+v, want posts", got)
	}
	if got := a.Back(); got != nav.Home {
		t.Errorf("second Back = %+v, want home", got)
	}
}

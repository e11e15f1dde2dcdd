package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

func TestRelevant(t *testing.T) {
	tests := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{"posts/alpha.json", fsnotify.Write, true},
		{"posts/alpha.json", fsnotify.Create, true},
		{"posts/alpha.json", fsnotify.Chmod, false},
		{"posts/.alpha.json.swp", fsnotify.Write, false},
		{"posts/alpha.json~", fsnotify.Write, false},
		{"posts/gone.json", fsnotify.Remove, true},
	}
	for _, tt := range tests {
		ev := fsnotify.Event{Name: tt.name, Op: tt.op}
		if got := relevant(ev); got != tt.want {
			t.Errorf("relevant(%s %v) = %v, want %v", tt.name, tt.op, got, tt.want)
		}
	}
}

func TestWatcherFiresOnWrite(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "posts"), 0o755); err != nil {
		t.Fatal(err)
	}

	var fired atomic.Int32
	w, err := New(dir, func() { fired.Add(1) })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.Debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	// Several writes in quick succession should coalesce into one fire.
	path := filepath.Join(dir, "posts", "alpha.json")
	for i := 0; i < 3; i++ {
		if err := os.WriteFile(path, []byte(`{"id":"alpha"}`), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	deadline := time.Now().Add(2 * time.Second)
	for fired.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(20 * time.Millisecond)
	}
	if got := fired.Load(); got != 1 {
		t.Errorf("expected exactly one debounced fire, got %d", got)
	}
}

func TestWatcherIgnoresTempFiles(t *testing.T) {
	dir := t.TempDir()

	var fired atomic.Int32
	w, err := New(dir, func() { fired.Add(1) })
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	w.Debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	if err := os.WriteFile(filepath.Join(dir, ".hidden.json"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)
	if got := fired.Load(); got != 0 {
		t.Errorf("hidden file should not trigger a reload, fired %d times", got)
	}
}

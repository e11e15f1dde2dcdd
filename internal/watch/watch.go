// Package watch observes the data directory and triggers reloads when
// post or timeline files change.
package watch

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of filesystem events, which editors
// produce freely on save.
const DefaultDebounce = 250 * time.Millisecond

// Watcher observes a data directory tree and invokes OnChange after a
// quiet period follows a relevant event.
type Watcher struct {
	Dir      string
	Debounce time.Duration
	OnChange func()

	fw *fsnotify.Watcher
}

// New creates a Watcher over dir. The directory and its immediate
// subdirectories are watched; fsnotify does not recurse on its own.
func New(dir string, onChange func()) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		Dir:      dir,
		Debounce: DefaultDebounce,
		OnChange: onChange,
		fw:       fw,
	}

	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err == nil {
		for _, e := range entries {
			if e.IsDir() {
				if err := fw.Add(filepath.Join(dir, e.Name())); err != nil {
					log.Printf("watch: cannot watch %s: %v", e.Name(), err)
				}
			}
		}
	}
	return w, nil
}

// Run processes events until the context is cancelled. It blocks, so
// callers run it in a goroutine.
func (w *Watcher) Run(ctx context.Context) {
	defer w.fw.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case ev, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if !relevant(ev) {
				continue
			}
			// New subdirectories join the watch set.
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.fw.Add(ev.Name); err != nil {
						log.Printf("watch: cannot watch %s: %v", ev.Name, err)
					}
				}
			}
			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}
			fire = timer.C

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Printf("watch: %v", err)

		case <-fire:
			fire = nil
			log.Printf("watch: change detected in %s, reloading", w.Dir)
			w.OnChange()
		}
	}
}

// relevant filters events down to content changes we care about:
// writes, creates, removes, and renames of JSON data files or
// directories. Chmod-only events and editor temp files are noise.
func relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(ev.Name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") {
		return false
	}
	if strings.HasSuffix(base, ".json") {
		return true
	}
	// Directory events carry no extension; a stat tells us, except for
	// removes where we assume relevance.
	if ev.Op.Has(fsnotify.Remove) || ev.Op.Has(fsnotify.Rename) {
		return true
	}
	info, err := os.Stat(ev.Name)
	return err == nil && info.IsDir()
}

package post

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
)

// IndexEntry is one row of posts/index.json.
type IndexEntry struct {
	ID    string   `json:"id"`
	Title string   `json:"title"`
	Date  string   `json:"date"`
	Tags  []string `json:"tags,omitempty"`
}

// Loader reads post data from a directory laid out as:
//
//	<dir>/posts/index.json   index of {id, title, date, tags}
//	<dir>/posts/<id>.json    full post record per index entry
//	<dir>/posts.json         legacy single-file fallback
type Loader struct {
	Dir            string
	MaxConcurrency int
}

// Load returns the post sequence in index order. Individual post
// failures are logged and dropped rather than failing the whole load;
// when the indexed path is entirely unavailable the legacy file is
// tried, and when that fails too an empty sequence is returned so the
// site still renders.
func (l *Loader) Load(ctx context.Context) []Post {
	posts, err := l.loadIndexed(ctx)
	if err == nil {
		return posts
	}
	log.Printf("post loader: indexed load failed (%v), trying legacy posts.json", err)

	posts, err = l.loadLegacy()
	if err != nil {
		log.Printf("post loader: legacy load failed (%v), starting with no posts", err)
		return nil
	}
	return posts
}

// loadIndexed reads the index and then every referenced post file with
// bounded concurrency. Results keep index order; failed posts leave
// holes that are compacted away.
func (l *Loader) loadIndexed(ctx context.Context) ([]Post, error) {
	indexPath := filepath.Join(l.Dir, "posts", "index.json")
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", indexPath, err)
	}

	var entries []IndexEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", indexPath, err)
	}

	limit := l.MaxConcurrency
	if limit <= 0 {
		limit = 8
	}

	results := make([]*Post, len(entries))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, entry := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := l.loadOne(entry.ID)
			if err != nil {
				// Best-effort aggregation: drop the post, keep going.
				log.Printf("post loader: skipping %s: %v", entry.ID, err)
				return nil
			}
			mu.Lock()
			results[i] = p
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(entries))
	for _, p := range results {
		if p != nil {
			posts = append(posts, *p)
		}
	}
	return posts, nil
}

// loadOne reads and decodes a single post file.
func (l *Loader) loadOne(id string) (*Post, error) {
	if id == "" {
		return nil, fmt.Errorf("index entry with empty id")
	}
	path := filepath.Join(l.Dir, "posts", id+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var p Post
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if p.ID == "" {
		p.ID = id
	}
	return &p, nil
}

// loadLegacy reads the single-file posts.json array.
func (l *Loader) loadLegacy() ([]Post, error) {
	path := filepath.Join(l.Dir, "posts.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	// Decode element by element so one malformed post doesn't take the
	// rest down with it.
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	var posts []Post
	for i, raw := range raws {
		var p Post
		if err := json.Unmarshal(raw, &p); err != nil {
			log.Printf("post loader: skipping posts.json[%d]: %v", i, err)
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}

// Package index rebuilds posts/index.json from the post files on disk.
package index

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/kelhaddad/folio/internal/post"
)

// Result summarizes one reindex run.
type Result struct {
	Entries []post.IndexEntry
	Skipped []string // files that did not parse as posts
}

// Scan collects post files under dataDir matching the include globs and
// not matching the exclude globs, and builds index entries from them.
// Entries are ordered date-descending, undated posts last.
func Scan(dataDir string, include, exclude []string) (*Result, error) {
	seen := make(map[string]bool)
	var files []string

	for _, pattern := range include {
		matches, err := doublestar.Glob(os.DirFS(dataDir), pattern)
		if err != nil {
			return nil, fmt.Errorf("bad include pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if seen[m] || excluded(m, exclude) {
				continue
			}
			seen[m] = true
			files = append(files, m)
		}
	}
	sort.Strings(files)

	res := &Result{}
	for _, rel := range files {
		entry, err := readEntry(filepath.Join(dataDir, filepath.FromSlash(rel)))
		if err != nil {
			res.Skipped = append(res.Skipped, rel)
			continue
		}
		res.Entries = append(res.Entries, *entry)
	}

	sort.SliceStable(res.Entries, func(i, j int) bool {
		di, erri := post.ParseDate(res.Entries[i].Date)
		dj, errj := post.ParseDate(res.Entries[j].Date)
		if erri != nil {
			return false
		}
		if errj != nil {
			return true
		}
		return di.After(dj)
	})
	return res, nil
}

// Write persists the entries to posts/index.json under dataDir.
func Write(dataDir string, entries []post.IndexEntry) error {
	path := filepath.Join(dataDir, "posts", "index.json")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

func excluded(rel string, exclude []string) bool {
	for _, pattern := range exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// readEntry extracts the index fields from one post file. The id falls
// back to the file name when the record omits it.
func readEntry(path string) (*post.IndexEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var record struct {
		ID    string   `json:"id"`
		Title string   `json:"title"`
		Date  string   `json:"date"`
		Tags  []string `json:"tags"`
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	if record.ID == "" {
		base := filepath.Base(path)
		record.ID = base[:len(base)-len(filepath.Ext(base))]
	}
	if record.Title == "" {
		return nil, fmt.Errorf("%s: missing title", path)
	}

	return &post.IndexEntry{
		ID:    record.ID,
		Title: record.Title,
		Date:  record.Date,
		Tags:  post.DedupeTags(record.Tags),
	}, nil
}

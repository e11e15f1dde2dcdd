// Package timeline loads and orders the work-history and
// accomplishments data behind the home view.
package timeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// Accomplishment is a single dated achievement.
type Accomplishment struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Year        int    `json:"year"`
	Month       string `json:"month"`
	PostID      string `json:"postId,omitempty"`
}

// Project is an optional nested entry under a work-history item. Each
// project can be expanded into a popup on the rendered page.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PostID      string `json:"postId,omitempty"`
}

// WorkEntry is one employment record.
type WorkEntry struct {
	Company      string    `json:"company"`
	Position     string    `json:"position"`
	Description  string    `json:"description"`
	Year         int       `json:"year"`
	Month        string    `json:"month"`
	Period       string    `json:"period,omitempty"` // display string, e.g. "2021 — present"
	Technologies []string  `json:"technologies,omitempty"`
	Projects     []Project `json:"projects,omitempty"`
}

// Timeline is the decoded timeline.json document.
type Timeline struct {
	Accomplishments []Accomplishment `json:"accomplishments"`
	WorkHistory     []WorkEntry      `json:"workHistory"`
}

// Load reads and decodes a timeline file. A missing file is not an
// error: the home view simply renders without timeline sections.
func Load(path string) (*Timeline, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Timeline{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	var tl Timeline
	if err := json.Unmarshal(data, &tl); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return &tl, nil
}

// monthOrdinals maps month names to 1..12. Lookups accept any casing
// and 3-letter abbreviations.
var monthOrdinals = map[string]int{
	"january": 1, "february": 2, "march": 3, "april": 4,
	"may": 5, "june": 6, "july": 7, "august": 8,
	"september": 9, "october": 10, "november": 11, "december": 12,
}

// MonthOrdinal returns 1..12 for a month name, or 0 when the name is
// not recognized (unknown months sort before January of their year).
func MonthOrdinal(name string) int {
	key := strings.ToLower(strings.TrimSpace(name))
	if n, ok := monthOrdinals[key]; ok {
		return n
	}
	if len(key) >= 3 {
		for full, n := range monthOrdinals {
			if strings.HasPrefix(full, key[:3]) {
				return n
			}
		}
	}
	return 0
}

// sortKey folds (year, month) into one comparable int.
func sortKey(year int, month string) int {
	return year*100 + MonthOrdinal(month)
}

// SortAccomplishments orders accomplishments by (year, month). The
// direction is a deliberate single choice made by configuration; both
// directions are supported but one is always picked explicitly.
func (t *Timeline) SortAccomplishments(newestFirst bool) {
	sort.SliceStable(t.Accomplishments, func(i, j int) bool {
		a := sortKey(t.Accomplishments[i].Year, t.Accomplishments[i].Month)
		b := sortKey(t.Accomplishments[j].Year, t.Accomplishments[j].Month)
		if newestFirst {
			return a > b
		}
		return a < b
	})
}

// SortWorkHistory orders employment newest-first by (year, month).
func (t *Timeline) SortWorkHistory() {
	sort.SliceStable(t.WorkHistory, func(i, j int) bool {
		return sortKey(t.WorkHistory[i].Year, t.WorkHistory[i].Month) >
			sortKey(t.WorkHistory[j].Year, t.WorkHistory[j].Month)
	})
}

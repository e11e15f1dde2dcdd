package render

import "sync"

// DetailCache stores rendered detail pages keyed by post id, replayed
// verbatim on repeat visits. It is advisory: dropping it at any time
// only costs a re-render. Safe for concurrent use.
type DetailCache struct {
	mu    sync.RWMutex
	pages map[string]string
}

// NewDetailCache returns an empty cache.
func NewDetailCache() *DetailCache {
	return &DetailCache{pages: make(map[string]string)}
}

// Get returns the cached page for a post id.
func (c *DetailCache) Get(id string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	page, ok := c.pages[id]
	return page, ok
}

// Put stores a rendered page.
func (c *DetailCache) Put(id, page string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages[id] = page
}

// Invalidate removes one entry.
func (c *DetailCache) Invalidate(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pages, id)
}

// Clear drops every entry; called when the underlying data changes.
func (c *DetailCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pages = make(map[string]string)
}

// Len returns the number of cached pages.
func (c *DetailCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pages)
}

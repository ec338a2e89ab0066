package icontheme

import (
	"image"
	"sync"
)

type renderKey struct {
	theme string
	icon  string
	size  int
}

// renderCache memoizes rendered lookups per (theme, icon, requested size),
// so a repeated request skips both the directory-sourced file read and the
// scaling pass. Entries are only ever added; the cache lives and dies with
// its Session.
type renderCache struct {
	mu      sync.RWMutex
	entries map[renderKey]image.Image
}

func newRenderCache() *renderCache {
	return &renderCache{entries: make(map[renderKey]image.Image)}
}

func (c *renderCache) get(theme, icon string, size int) (image.Image, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	img, ok := c.entries[renderKey{theme: theme, icon: icon, size: size}]
	return img, ok
}

func (c *renderCache) put(theme, icon string, size int, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[renderKey{theme: theme, icon: icon, size: size}] = img
}

func (c *renderCache) has(theme, icon string, size int) bool {
	_, ok := c.get(theme, icon, size)
	return ok
}

func (c *renderCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

package assets

import (
	"context"
	"sync"
)

// TextureCache maps raw texture filenames, exactly as written in a material
// file, to texture handles. It lives for the whole process and never evicts.
type TextureCache struct {
	mu    sync.Mutex
	items map[string]Texture

	creates int
}

// NewTextureCache creates an empty cache.
func NewTextureCache() *TextureCache {
	return &TextureCache{items: make(map[string]Texture)}
}

// Get returns the handle cached for filename, calling create on the first
// request only. The lookup and the create share one critical section, so
// concurrent requests for the same filename resolve to one handle. A failed
// create is not cached.
func (c *TextureCache) Get(ctx context.Context, filename string, create func(ctx context.Context) (Texture, error)) (Texture, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if tex, ok := c.items[filename]; ok {
		return tex, nil
	}
	tex, err := create(ctx)
	if err != nil {
		return nil, err
	}
	c.items[filename] = tex
	c.creates++
	return tex, nil
}

// Lookup returns the cached handle for filename without creating one.
func (c *TextureCache) Lookup(filename string) (Texture, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tex, ok := c.items[filename]
	return tex, ok
}

// Len returns the number of cached textures.
func (c *TextureCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Creates returns how many textures the cache has created.
func (c *TextureCache) Creates() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.creates
}

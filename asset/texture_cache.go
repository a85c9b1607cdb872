package asset

import (
	"fmt"
	"io"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/cpuforge/raster3d"
)

// TextureCache bounds the number of decoded texture planes held in
// memory at once, evicting the least recently used texture when it
// fills. It keys entries by file path, so the same path always returns
// the same decoded Plane without hitting disk twice.
type TextureCache struct {
	cache *lru.Cache[string, *raster3d.Plane[raster3d.Pixel]]
}

// NewTextureCache builds a cache holding at most size decoded textures.
func NewTextureCache(size int) (*TextureCache, error) {
	cache, err := lru.New[string, *raster3d.Plane[raster3d.Pixel]](size)
	if err != nil {
		return nil, fmt.Errorf("asset: building texture cache: %w", err)
	}
	return &TextureCache{cache: cache}, nil
}

// LoadTexture returns the raw RGBA32 texture plane stored at path,
// reading and decoding it on first request and serving every
// subsequent request from the cache until it is evicted.
func (c *TextureCache) LoadTexture(path string) (*raster3d.Plane[raster3d.Pixel], error) {
	if plane, ok := c.cache.Get(path); ok {
		return plane, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("asset: opening texture %q: %w", path, err)
	}
	defer f.Close()

	plane, err := loadTexture(f)
	if err != nil {
		return nil, fmt.Errorf("asset: decoding texture %q: %w", path, err)
	}

	c.cache.Add(path, plane)
	raster3d.Logger().Debug("cached texture", "path", path, "cache_len", c.cache.Len())
	return plane, nil
}

// LoadTextureFrom is like LoadTexture but reads from an already-open
// stream, caching the result under key rather than a file path.
func (c *TextureCache) LoadTextureFrom(key string, r io.Reader) (*raster3d.Plane[raster3d.Pixel], error) {
	if plane, ok := c.cache.Get(key); ok {
		return plane, nil
	}
	plane, err := loadTexture(r)
	if err != nil {
		return nil, fmt.Errorf("asset: decoding texture %q: %w", key, err)
	}
	c.cache.Add(key, plane)
	return plane, nil
}

// Purge evicts every cached texture.
func (c *TextureCache) Purge() {
	c.cache.Purge()
}

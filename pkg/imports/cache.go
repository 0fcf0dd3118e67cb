package imports

import (
	"io/fs"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	// DefaultCacheSize is the number of files kept by NewCache when size is not positive
	DefaultCacheSize = 4096
	// DefaultCacheTTL is how long an entry stays valid when ttl is not positive
	DefaultCacheTTL = 30 * time.Minute
)

type cacheEntry struct {
	size    int64
	modTime time.Time
	imports []string
}

// Cache keeps unfiltered parse results per file path. An entry is only
// served while the file's size and modification time are unchanged.
type Cache struct {
	entries *lru.LRU[string, cacheEntry]
}

// NewCache creates a bounded cache of parse results
func NewCache(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{
		entries: lru.NewLRU[string, cacheEntry](size, nil, ttl),
	}
}

// Get returns the cached imports of path if info still matches the cached file
func (c *Cache) Get(path string, info fs.FileInfo) ([]string, bool) {
	entry, ok := c.entries.Get(path)
	if !ok {
		return nil, false
	}
	if entry.size != info.Size() || !entry.modTime.Equal(info.ModTime()) {
		c.entries.Remove(path)
		return nil, false
	}
	return entry.imports, true
}

// Put stores the imports parsed from path
func (c *Cache) Put(path string, info fs.FileInfo, imports []string) {
	c.entries.Add(path, cacheEntry{
		size:    info.Size(),
		modTime: info.ModTime(),
		imports: imports,
	})
}

// Remove drops a single file
func (c *Cache) Remove(path string) {
	c.entries.Remove(path)
}

// Len returns the number of cached files
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Purge empties the cache
func (c *Cache) Purge() {
	c.entries.Purge()
}

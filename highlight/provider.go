package highlight

import (
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Provider bundles a theme with a syntax set and an optional result cache.
// It is safe for concurrent use.
type Provider struct {
	theme    *Theme
	syntaxes *SyntaxSet
	cache    *Cache
}

// NewProvider loads the named theme. cache may be nil to disable caching.
func NewProvider(themeName string, set *SyntaxSet, cache *Cache) (*Provider, error) {
	theme, err := LoadTheme(themeName)
	if err != nil {
		return nil, err
	}
	if set == nil {
		set = NewSyntaxSet()
	}
	return &Provider{theme: theme, syntaxes: set, cache: cache}, nil
}

// Highlight returns the state a Highlighter needs: the theme and the syntax set.
func (p *Provider) Highlight() (*Theme, *SyntaxSet) {
	return p.theme, p.syntaxes
}

// Theme returns the active theme.
func (p *Provider) Theme() *Theme { return p.theme }

// Parse highlights h, consulting the cache first when one is configured.
func (p *Provider) Parse(h *Highlighter) ([]Line, error) {
	if p.cache == nil {
		return h.Parse(p.theme, p.syntaxes)
	}
	key := CacheKey(h, p.theme.Name())
	if lines, ok := p.cache.Get(key); ok {
		return lines, nil
	}
	lines, err := h.Parse(p.theme, p.syntaxes)
	if err != nil {
		return nil, err
	}
	p.cache.Set(key, lines)
	return lines, nil
}

// CacheKey identifies a highlight result by content hash, language, file name,
// font family and theme. Changing any of them yields a different key.
func CacheKey(h *Highlighter, theme string) string {
	sum := xxhash.Sum64String(h.Code)
	return strconv.FormatUint(sum, 16) + "|" + h.Language + "|" + h.FileName + "|" + h.FontFamily + "|" + theme
}

// Cache is a bounded in-memory store of highlight results.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]Line
	limit   int
}

// NewCache creates a cache holding at most limit entries; when full it is reset.
func NewCache(limit int) *Cache {
	if limit <= 0 {
		limit = 256
	}
	return &Cache{entries: make(map[string][]Line), limit: limit}
}

// Get returns a cached result.
func (c *Cache) Get(key string) ([]Line, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	lines, ok := c.entries[key]
	return lines, ok
}

// Set stores a result.
func (c *Cache) Set(key string, lines []Line) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.entries) >= c.limit {
		c.entries = make(map[string][]Line)
	}
	c.entries[key] = lines
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

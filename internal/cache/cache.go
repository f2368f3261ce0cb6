// Package cache holds the process-lifetime, source-keyed compiled-graph
// cache spec.md §5 calls out as an external caching layer: "the HIR and
// compiled graph for a given source may be cached externally... such
// caching must treat the graph as read-only and supply a fresh runtime
// state per execution." Grounded on the teacher compiler's
// internal/driver.DiskCache for the encode/lookup shape, adapted from a
// persistent on-disk cache keyed by content hash to an in-memory map
// keyed by source text, since spec §6 rules out persisted state.
package cache

import (
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/xuyisen-x/oxidice/internal/compiler"
	"github.com/xuyisen-x/oxidice/internal/hir"
)

// Cache memoizes the lowered+optimized HIR and compiled evaluation graph
// for source text already known to be valid. It never stores partial or
// erroring results: Compile is the caller's job, this only remembers
// what Compile already produced.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]*Graph
	group   singleflight.Group
}

// Graph is one cached compilation: the typed HIR module (kept for
// Validate's re-use and for render/debug tooling) and its compiled
// evaluation graph. Both are treated as read-only once cached; every
// Evaluate call gets its own runtime.State built fresh over Compiled.
type Graph struct {
	HIR      *hir.Module
	Compiled *compiler.Graph
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{entries: make(map[string]*Graph)}
}

// GetOrCompile returns the cached Graph for source, compiling it via
// build on a cache miss. Concurrent GetOrCompile calls for the same
// uncached source are deduplicated with singleflight.Group so a burst of
// identical rolls compiles the source exactly once.
func (c *Cache) GetOrCompile(source string, build func() (*Graph, error)) (*Graph, error) {
	c.mu.RLock()
	if g, ok := c.entries[source]; ok {
		c.mu.RUnlock()
		return g, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do(source, func() (interface{}, error) {
		c.mu.RLock()
		if g, ok := c.entries[source]; ok {
			c.mu.RUnlock()
			return g, nil
		}
		c.mu.RUnlock()

		g, err := build()
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.entries[source] = g
		c.mu.Unlock()
		return g, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Graph), nil
}

// Len reports how many distinct source texts are currently cached.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

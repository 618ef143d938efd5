package ncio

import (
	"container/list"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/dnora/dnora/pkg/store"
)

// Cache keeps stores as NetCDF files in a directory and the recently used
// ones in memory, evicting the least recently used store when the memory
// limit is exceeded.
//
// Example:
//
//	cache, err := ncio.NewCache("cache/era5", 512*1024*1024)
//	bnd, err := cache.Get("era5_20200101", func() (*store.Store, error) {
//	    return fetchBoundary(...)
//	})
type Cache struct {
	dir        string
	maxMemory  int64 // bytes, 0 is unlimited
	usedMemory int64
	stores     map[string]*cacheEntry
	lru        *list.List // most recent at front
	mu         sync.Mutex
}

type cacheEntry struct {
	name        string
	store       *store.Store
	memorySize  int64
	element     *list.Element
	accessCount int
}

// NewCache creates a cache writing to dir, which is created if needed.
func NewCache(dir string, maxMemoryBytes int64) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("ncio: cache: %w", err)
	}
	return &Cache{
		dir:       dir,
		maxMemory: maxMemoryBytes,
		stores:    make(map[string]*cacheEntry),
		lru:       list.New(),
	}, nil
}

// Path returns the file backing the named store.
func (c *Cache) Path(name string) string {
	return filepath.Join(c.dir, name+".nc")
}

// Get returns the named store from memory, from its cache file, or from
// loader, in that order. A store produced by loader is written to the cache
// directory. Callers get a copy and may modify it.
func (c *Cache) Get(name string, loader func() (*store.Store, error)) (*store.Store, error) {
	c.mu.Lock()
	if entry, ok := c.stores[name]; ok {
		entry.accessCount++
		c.lru.MoveToFront(entry.element)
		s := entry.store.Clone()
		c.mu.Unlock()
		return s, nil
	}
	c.mu.Unlock()

	path := c.Path(name)
	s, err := Read(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		if s, err = loader(); err != nil {
			return nil, fmt.Errorf("ncio: cache: load %s: %w", name, err)
		}
		if err := Write(path, s); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	// A store too large for memory is still served from disk next time.
	_ = c.add(name, s.Clone())
	return s, nil
}

// Add stores s under name, on disk and in memory.
func (c *Cache) Add(name string, s *store.Store) error {
	if err := Write(c.Path(name), s); err != nil {
		return err
	}
	return c.add(name, s.Clone())
}

func (c *Cache) add(name string, s *store.Store) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	memSize := estimateMemory(s)
	if c.maxMemory > 0 && memSize > c.maxMemory {
		if entry, ok := c.stores[name]; ok {
			c.removeEntry(entry)
		}
		return fmt.Errorf("store %s too large for cache (%d bytes > %d bytes max)", name, memSize, c.maxMemory)
	}

	if entry, ok := c.stores[name]; ok {
		c.usedMemory += memSize - entry.memorySize
		entry.store = s
		entry.memorySize = memSize
		entry.accessCount++
		c.lru.MoveToFront(entry.element)
		// The entry itself is at the front and fits, so it is never evicted
		for c.maxMemory > 0 && c.usedMemory > c.maxMemory && c.lru.Len() > 1 {
			c.evictLRU()
		}
		return nil
	}

	for c.maxMemory > 0 && c.usedMemory+memSize > c.maxMemory && c.lru.Len() > 0 {
		c.evictLRU()
	}

	entry := &cacheEntry{
		name:        name,
		store:       s,
		memorySize:  memSize,
		accessCount: 1,
	}
	entry.element = c.lru.PushFront(entry)
	c.stores[name] = entry
	c.usedMemory += memSize
	return nil
}

// evictLRU must be called with c.mu locked.
func (c *Cache) evictLRU() {
	elem := c.lru.Back()
	if elem == nil {
		return
	}
	c.removeEntry(elem.Value.(*cacheEntry))
}

// removeEntry must be called with c.mu locked.
func (c *Cache) removeEntry(entry *cacheEntry) {
	c.lru.Remove(entry.element)
	delete(c.stores, entry.name)
	c.usedMemory -= entry.memorySize
}

// Remove drops the named store from memory and deletes its file.
func (c *Cache) Remove(name string) error {
	c.mu.Lock()
	if entry, ok := c.stores[name]; ok {
		c.removeEntry(entry)
	}
	c.mu.Unlock()

	if err := os.Remove(c.Path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("ncio: cache: %w", err)
	}
	return nil
}

// Clear empties the in-memory cache. Files are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stores = make(map[string]*cacheEntry)
	c.lru.Init()
	c.usedMemory = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	totalAccess := 0
	for _, entry := range c.stores {
		totalAccess += entry.accessCount
	}
	return CacheStats{
		StoreCount:  len(c.stores),
		UsedMemory:  c.usedMemory,
		MaxMemory:   c.maxMemory,
		TotalAccess: totalAccess,
	}
}

// CacheStats holds in-memory cache metrics.
type CacheStats struct {
	StoreCount  int   // Number of stores held in memory
	UsedMemory  int64 // Estimated memory usage in bytes
	MaxMemory   int64 // Maximum memory limit in bytes
	TotalAccess int   // Accesses across all stores held in memory
}

// estimateMemory counts 8 bytes per coordinate value and data element, plus a
// fixed overhead per store.
func estimateMemory(s *store.Store) int64 {
	if s == nil {
		return 0
	}
	size := int64(1024)
	for _, c := range s.Coords() {
		size += int64(c.Len()) * 8
	}
	for _, v := range s.Variables() {
		if v.Data != nil {
			size += int64(len(v.Data.Elements)) * 8
		}
	}
	return size
}

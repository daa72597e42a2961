// =============================================================================
// CAPPS Converter - Brand Cache Store
// =============================================================================
//
// Persistent description -> brand mapping, stored as a single JSON object.
// The file is loaded once at startup and rewritten after each new
// resolution, so a crash never loses more than the in-flight entry. Cache
// keys are the exact description strings as seen in the serials export;
// entries never expire. Last write wins for a given key.
//
// Cache I/O failures are never fatal: an unreadable file starts the run with
// an empty cache, and write failures leave the cache in-memory only.
//
// =============================================================================

package brand

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"
)

// Cache is the persistent brand cache. All methods are safe for concurrent
// use; writes to the same key serialize on the internal mutex so parallel
// resolution cannot lose updates.
type Cache struct {
	mu      sync.Mutex
	path    string
	entries map[string]string

	// writable is cleared after a failed save so a broken cache file is
	// reported once, not per entry.
	writable bool
}

// OpenCache loads the cache file at path. A missing or unreadable file
// yields an empty cache and a nil error; the returned error is non-nil only
// to let callers log the degradation, never to abort.
func OpenCache(path string) (*Cache, error) {
	c := &Cache{
		path:     path,
		entries:  make(map[string]string),
		writable: true,
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return c, nil
		}
		return c, fmt.Errorf("brand cache unreadable, starting empty: %w", err)
	}

	if err := json.Unmarshal(data, &c.entries); err != nil {
		c.entries = make(map[string]string)
		return c, fmt.Errorf("brand cache corrupt, starting empty: %w", err)
	}

	return c, nil
}

// Get returns the cached brand for the exact description string.
func (c *Cache) Get(description string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	brand, ok := c.entries[description]
	return brand, ok
}

// Put stores a resolution and persists the cache. Persistence failures are
// returned for logging but leave the in-memory entry in place.
func (c *Cache) Put(description, brand string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[description] = brand
	return c.saveLocked()
}

// Remove deletes a single entry so the next run re-resolves it.
func (c *Cache) Remove(description string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[description]; !ok {
		return fmt.Errorf("no cache entry for %q", description)
	}
	delete(c.entries, description)
	return c.saveLocked()
}

// Clear empties the cache.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]string)
	return c.saveLocked()
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Entries returns a sorted snapshot of the cache for display.
func (c *Cache) Entries() [][2]string {
	c.mu.Lock()
	defer c.mu.Unlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([][2]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, [2]string{k, c.entries[k]})
	}
	return out
}

// saveLocked writes the cache file. Caller holds the mutex.
func (c *Cache) saveLocked() error {
	if !c.writable {
		return nil
	}

	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode brand cache: %w", err)
	}

	if err := os.WriteFile(c.path, data, 0644); err != nil {
		c.writable = false
		return fmt.Errorf("failed to write brand cache (continuing in memory): %w", err)
	}

	return nil
}

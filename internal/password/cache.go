// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package password negotiates passphrases for encrypted archives: a
// batch-scoped cache keyed by archive path, a prompt state machine driven
// by an Asker, and optional known passwords loaded from a folder.
package password

import "sync"

// Cache maps archive paths to the passphrase that opened them. It lives in
// memory for one batch and is never written to disk.
type Cache struct {
	mu      sync.Mutex
	entries map[string]string

	// seeds are known passwords keyed by lower-cased archive file name.
	seeds map[string]string
}

// NewCache returns an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]string), seeds: make(map[string]string)}
}

// Get returns the password entered for path, or a seeded password for an
// archive of the same file name, ignoring case.
func (c *Cache) Get(path string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if pw, ok := c.entries[path]; ok {
		return pw, true
	}
	pw, ok := c.seeds[seedKey(path)]
	return pw, ok
}

func (c *Cache) Put(path, password string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[path] = password
}

// Forget drops the password for path, seeded or entered. The engine calls
// it when a cached password fails so the next negotiation prompts again.
func (c *Cache) Forget(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, path)
	delete(c.seeds, seedKey(path))
}

// Seed adds known passwords keyed by archive file name, as returned by
// LoadSeeds.
func (c *Cache) Seed(seeds map[string]string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, pw := range seeds {
		c.seeds[seedKey(name)] = pw
	}
}

// Len returns the number of cached and seeded passwords.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries) + len(c.seeds)
}

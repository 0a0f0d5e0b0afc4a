package statement

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/focusim/statement-go/pkg/statement/models"
)

// Cache holds parsed catalogs keyed by source identity.
// It is owned by the caller, not safe for concurrent use, and must not be
// shared between loaders configured with different layouts.
type Cache struct {
	entries map[string]*models.Catalog
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]*models.Catalog)}
}

// URLKey is the identity of a remote source.
func URLKey(url string) string {
	return "url:" + url
}

// ContentKey is the identity of local workbook bytes. A changed file gets a new key.
func ContentKey(data []byte) string {
	sum := sha256.Sum256(data)
	return "sha256:" + hex.EncodeToString(sum[:])
}

// Get returns the catalog stored under key.
func (c *Cache) Get(key string) (*models.Catalog, bool) {
	catalog, ok := c.entries[key]
	return catalog, ok
}

// Put stores a catalog under key, replacing any previous entry.
func (c *Cache) Put(key string, catalog *models.Catalog) {
	c.entries[key] = catalog
}

// Invalidate drops the entry for key and reports whether there was one.
func (c *Cache) Invalidate(key string) bool {
	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Len returns the number of cached catalogs.
func (c *Cache) Len() int {
	return len(c.entries)
}

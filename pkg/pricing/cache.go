package pricing

import (
	"sync"
	"time"

	"github.com/hidrica/drought-cost-engine/pkg/models"
)

// PriceCache caches resolved quotes to reduce feed calls
type PriceCache struct {
	data  map[string]*cacheEntry
	ttl   time.Duration
	mutex sync.RWMutex
}

type cacheEntry struct {
	quote     *models.PriceQuote
	expiresAt time.Time
}

func NewPriceCache(ttl time.Duration) *PriceCache {
	return &PriceCache{
		data: make(map[string]*cacheEntry),
		ttl:  ttl,
	}
}

// Get returns the cached quote, or nil when absent or expired. Expired
// entries stay until the next Set overwrites them.
func (c *PriceCache) Get(key string) *models.PriceQuote {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.data[key]
	if !exists {
		return nil
	}
	if time.Now().After(entry.expiresAt) {
		return nil
	}
	return entry.quote
}

func (c *PriceCache) Set(key string, quote *models.PriceQuote) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = &cacheEntry{
		quote:     quote,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *PriceCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data = make(map[string]*cacheEntry)
}

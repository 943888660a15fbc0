package ledger

import (
	"log/slog"
	"sync"
	"time"

	"orderdash/internal/model"
)

// LoadFunc produces a fresh ledger snapshot.
type LoadFunc func() ([]model.Order, []Exclusion, error)

// Cache is an explicit, time-bounded snapshot of the ledger. It is passed to
// whoever needs orders; there is no package-level cache. A failed reload keeps
// serving the last good snapshot.
type Cache struct {
	mu   sync.Mutex
	ttl  time.Duration
	load LoadFunc

	loaded     bool
	loadedAt   time.Time
	orders     []model.Order
	exclusions []Exclusion
}

func NewCache(ttl time.Duration, load LoadFunc) *Cache {
	return &Cache{ttl: ttl, load: load}
}

// Snapshot returns the cached orders and exclusions, reloading first when the
// TTL has lapsed. It errors only when no snapshot has ever been loaded.
func (c *Cache) Snapshot() ([]model.Order, []Exclusion, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.loaded && time.Since(c.loadedAt) < c.ttl {
		return c.orders, c.exclusions, nil
	}

	if err := c.reload(); err != nil {
		if c.loaded {
			slog.Warn("ledger reload failed, serving stale snapshot", "error", err)
			return c.orders, c.exclusions, nil
		}
		return nil, nil, err
	}

	return c.orders, c.exclusions, nil
}

// Refresh forces a reload regardless of TTL.
func (c *Cache) Refresh() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reload()
}

func (c *Cache) reload() error {
	orders, exclusions, err := c.load()
	if err != nil {
		return err
	}
	c.orders = orders
	c.exclusions = exclusions
	c.loaded = true
	c.loadedAt = time.Now()
	return nil
}

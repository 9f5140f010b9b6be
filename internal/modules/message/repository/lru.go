package repository

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/reshetovitsme/edit-audit-bot/internal/modules/message/domain"
)

// LRU keeps at most size snapshots, each for at most ttl.
type LRU struct {
	cache *expirable.LRU[domain.Key, domain.Snapshot]
}

// NewLRU creates a bounded snapshot cache. onEvict may be nil.
func NewLRU(size int, ttl time.Duration, onEvict func(key domain.Key)) *LRU {
	var cb expirable.EvictCallback[domain.Key, domain.Snapshot]
	if onEvict != nil {
		cb = func(key domain.Key, _ domain.Snapshot) { onEvict(key) }
	}
	return &LRU{cache: expirable.NewLRU[domain.Key, domain.Snapshot](size, cb, ttl)}
}

func (c *LRU) Put(snapshot domain.Snapshot) {
	c.cache.Add(snapshot.Key(), snapshot)
}

func (c *LRU) Get(key domain.Key) (domain.Snapshot, bool) {
	return c.cache.Get(key)
}

func (c *LRU) Remove(key domain.Key) {
	c.cache.Remove(key)
}

func (c *LRU) Len() int {
	return c.cache.Len()
}

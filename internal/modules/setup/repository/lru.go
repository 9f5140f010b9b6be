package repository

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/reshetovitsme/edit-audit-bot/internal/modules/setup/domain"
)

// LRU keeps sessions in memory; an idle session expires after ttl.
type LRU struct {
	cache *expirable.LRU[int64, domain.Session]
}

func NewLRU(size int, ttl time.Duration) *LRU {
	return &LRU{cache: expirable.NewLRU[int64, domain.Session](size, nil, ttl)}
}

func (c *LRU) Get(userID int64) (domain.Session, bool) {
	return c.cache.Get(userID)
}

func (c *LRU) Put(session domain.Session) {
	c.cache.Add(session.UserID, session)
}

func (c *LRU) Delete(userID int64) {
	c.cache.Remove(userID)
}

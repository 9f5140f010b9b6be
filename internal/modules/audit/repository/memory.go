package repository

import (
	"context"
	"sync"
	"time"

	"github.com/reshetovitsme/edit-audit-bot/internal/modules/audit/domain"
	"github.com/samber/lo"
)

// Memory is a slice backed Repository.
type Memory struct {
	records []domain.Record
	nextID  int64
	mu      sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Save(_ context.Context, record *domain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	record.ID = m.nextID
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}
	m.records = append(m.records, *record)
	return nil
}

func (m *Memory) Recent(_ context.Context, chatID int64, limit int) ([]domain.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := lo.Filter(lo.Reverse(append([]domain.Record(nil), m.records...)), func(r domain.Record, _ int) bool {
		return r.ChatID == chatID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// All returns every stored record in insertion order.
func (m *Memory) All() []domain.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Record(nil), m.records...)
}

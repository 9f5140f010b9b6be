package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/reshetovitsme/edit-audit-bot/internal/modules/binding/domain"
	apperrors "github.com/reshetovitsme/edit-audit-bot/internal/shared/errors"
	"github.com/samber/lo"
)

// Memory is a map backed Repository.
type Memory struct {
	bindings map[int64]domain.Binding
	mu       sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{bindings: make(map[int64]domain.Binding)}
}

func (m *Memory) Upsert(_ context.Context, binding *domain.Binding) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bindings[binding.ChatID] = *binding
	return nil
}

func (m *Memory) Get(_ context.Context, chatID int64) (*domain.Binding, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bindings[chatID]
	if !ok {
		return nil, apperrors.ErrBindingNotFound
	}
	return &b, nil
}

func (m *Memory) DeactivateByChat(_ context.Context, chatID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bindings[chatID]
	if !ok || !b.Active {
		return false, nil
	}
	b.Active = false
	b.UpdatedAt = time.Now().UTC()
	m.bindings[chatID] = b
	return true, nil
}

func (m *Memory) DeactivateByChannel(_ context.Context, channelID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for chatID, b := range m.bindings {
		if b.ChannelID == channelID && b.Active {
			b.Active = false
			b.UpdatedAt = time.Now().UTC()
			m.bindings[chatID] = b
			n++
		}
	}
	return n, nil
}

func (m *Memory) ListActive(_ context.Context) ([]domain.Binding, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := lo.Filter(lo.Values(m.bindings), func(b domain.Binding, _ int) bool {
		return b.Active
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ChatID < out[j].ChatID })
	return out, nil
}

package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/reshetovitsme/edit-audit-bot/internal/modules/moderator/domain"
	"github.com/samber/lo"
)

type key struct {
	chatID int64
	userID int64
}

// Memory is a map backed Repository.
type Memory struct {
	moderators map[key]domain.Moderator
	mu         sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{moderators: make(map[key]domain.Moderator)}
}

func (m *Memory) Add(_ context.Context, moderator *domain.Moderator) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key{moderator.ChatID, moderator.UserID}
	if _, ok := m.moderators[k]; ok {
		return false, nil
	}
	mod := *moderator
	if mod.CreatedAt.IsZero() {
		mod.CreatedAt = time.Now().UTC()
	}
	m.moderators[k] = mod
	return true, nil
}

func (m *Memory) Remove(_ context.Context, chatID, userID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := key{chatID, userID}
	if _, ok := m.moderators[k]; !ok {
		return false, nil
	}
	delete(m.moderators, k)
	return true, nil
}

func (m *Memory) List(_ context.Context, chatID int64) ([]domain.Moderator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := lo.Filter(lo.Values(m.moderators), func(mod domain.Moderator, _ int) bool {
		return mod.ChatID == chatID
	})
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (m *Memory) Exists(_ context.Context, chatID, userID int64) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.moderators[key{chatID, userID}]
	return ok, nil
}

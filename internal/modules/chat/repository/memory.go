package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/reshetovitsme/edit-audit-bot/internal/modules/chat/domain"
	apperrors "github.com/reshetovitsme/edit-audit-bot/internal/shared/errors"
	"github.com/samber/lo"
)

// Memory is a map backed Repository.
type Memory struct {
	chats  map[int64]domain.Chat
	admins map[int64][]int64
	mu     sync.RWMutex
}

func NewMemory() *Memory {
	return &Memory{
		chats:  make(map[int64]domain.Chat),
		admins: make(map[int64][]int64),
	}
}

func (m *Memory) Upsert(_ context.Context, chat *domain.Chat) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	existing, ok := m.chats[chat.ChatID]
	if !ok {
		c := *chat
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		c.UpdatedAt = now
		m.chats[chat.ChatID] = c
		return nil
	}

	existing.Title = chat.Title
	existing.ChatType = chat.ChatType
	existing.Active = chat.Active
	existing.UpdatedAt = now
	m.chats[chat.ChatID] = existing
	return nil
}

func (m *Memory) Get(_ context.Context, chatID int64) (*domain.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.chats[chatID]
	if !ok {
		return nil, apperrors.ErrChatNotFound
	}
	return &c, nil
}

func (m *Memory) SetActive(_ context.Context, chatID int64, active bool) error {
	return m.update(chatID, func(c *domain.Chat) { c.Active = active })
}

func (m *Memory) SetDeleteEnabled(_ context.Context, chatID int64, enabled bool) error {
	return m.update(chatID, func(c *domain.Chat) { c.DeleteEnabled = enabled })
}

func (m *Memory) SetEditGrace(_ context.Context, chatID int64, minutes int) error {
	return m.update(chatID, func(c *domain.Chat) { c.EditGraceMinutes = minutes })
}

func (m *Memory) update(chatID int64, fn func(c *domain.Chat)) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.chats[chatID]
	if !ok {
		return apperrors.ErrChatNotFound
	}
	fn(&c)
	c.UpdatedAt = time.Now().UTC()
	m.chats[chatID] = c
	return nil
}

func (m *Memory) ListActive(_ context.Context) ([]domain.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sorted(func(c domain.Chat) bool { return c.Active }), nil
}

func (m *Memory) ListActiveByAdmin(_ context.Context, userID int64) ([]domain.Chat, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sorted(func(c domain.Chat) bool {
		return c.Active && lo.Contains(m.admins[c.ChatID], userID)
	}), nil
}

func (m *Memory) sorted(keep func(c domain.Chat) bool) []domain.Chat {
	out := lo.Filter(lo.Values(m.chats), func(c domain.Chat, _ int) bool { return keep(c) })
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func (m *Memory) ReplaceAdmins(_ context.Context, chatID int64, userIDs []int64, refreshedAt time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.chats[chatID]
	if !ok {
		return apperrors.ErrChatNotFound
	}
	m.admins[chatID] = lo.Uniq(userIDs)
	c.AdminsRefreshedAt = &refreshedAt
	m.chats[chatID] = c
	return nil
}

func (m *Memory) Admins(_ context.Context, chatID int64) (domain.AdminSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.chats[chatID]
	if !ok || c.AdminsRefreshedAt == nil {
		return domain.AdminSet{}, apperrors.ErrAdminSetUnknown
	}
	ids := append([]int64(nil), m.admins[chatID]...)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return domain.AdminSet{ChatID: chatID, UserIDs: ids, RefreshedAt: *c.AdminsRefreshedAt}, nil
}

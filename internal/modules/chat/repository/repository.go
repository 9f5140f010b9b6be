package repository

import (
	"context"
	"time"

	"github.com/reshetovitsme/edit-audit-bot/internal/modules/chat/domain"
)

// Repository defines the interface for monitored chat persistence
type Repository interface {
	// Upsert registers a chat or refreshes its title and type, marking it
	// active. Settings of a known chat are left untouched.
	Upsert(ctx context.Context, chat *domain.Chat) error
	Get(ctx context.Context, chatID int64) (*domain.Chat, error)
	SetActive(ctx context.Context, chatID int64, active bool) error
	SetDeleteEnabled(ctx context.Context, chatID int64, enabled bool) error
	SetEditGrace(ctx context.Context, chatID int64, minutes int) error
	ListActive(ctx context.Context) ([]domain.Chat, error)
	ListActiveByAdmin(ctx context.Context, userID int64) ([]domain.Chat, error)

	// ReplaceAdmins swaps the whole administrator set of a chat.
	ReplaceAdmins(ctx context.Context, chatID int64, userIDs []int64, refreshedAt time.Time) error
	// Admins returns the stored set; ErrAdminSetUnknown if it was never fetched.
	Admins(ctx context.Context, chatID int64) (domain.AdminSet, error)
}

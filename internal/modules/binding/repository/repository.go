package repository

import (
	"context"

	"github.com/reshetovitsme/edit-audit-bot/internal/modules/binding/domain"
)

// Repository defines the interface for binding persistence
type Repository interface {
	// Upsert writes the binding, replacing any previous one for the chat.
	Upsert(ctx context.Context, binding *domain.Binding) error
	// Get returns the binding of a chat, active or not.
	Get(ctx context.Context, chatID int64) (*domain.Binding, error)
	DeactivateByChat(ctx context.Context, chatID int64) (bool, error)
	DeactivateByChannel(ctx context.Context, channelID int64) (int64, error)
	ListActive(ctx context.Context) ([]domain.Binding, error)
}

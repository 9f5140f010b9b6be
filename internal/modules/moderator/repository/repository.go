package repository

import (
	"context"

	"github.com/reshetovitsme/edit-audit-bot/internal/modules/moderator/domain"
)

// Repository defines the interface for moderator persistence
type Repository interface {
	// Add stores a moderator and reports whether it was new.
	Add(ctx context.Context, moderator *domain.Moderator) (bool, error)
	Remove(ctx context.Context, chatID, userID int64) (bool, error)
	List(ctx context.Context, chatID int64) ([]domain.Moderator, error)
	Exists(ctx context.Context, chatID, userID int64) (bool, error)
}

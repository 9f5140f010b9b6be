package repository

import (
	"context"

	"github.com/reshetovitsme/edit-audit-bot/internal/modules/audit/domain"
)

// Repository defines the interface for edit record persistence
type Repository interface {
	Save(ctx context.Context, record *domain.Record) error
	// Recent returns the newest records of a chat, newest first.
	Recent(ctx context.Context, chatID int64, limit int) ([]domain.Record, error)
}

package repository

import "github.com/reshetovitsme/edit-audit-bot/internal/modules/setup/domain"

// Repository stores dialog sessions by user id.
type Repository interface {
	Get(userID int64) (domain.Session, bool)
	Put(session domain.Session)
	Delete(userID int64)
}

package repository

import (
	"github.com/reshetovitsme/edit-audit-bot/internal/modules/message/domain"
)

// Repository holds recent message snapshots. Implementations must be safe
// for concurrent use and bound their own size.
type Repository interface {
	Put(snapshot domain.Snapshot)
	Get(key domain.Key) (domain.Snapshot, bool)
	Remove(key domain.Key)
	Len() int
}

package repository

import (
	"context"

	"github.com/reshetovitsme/edit-audit-bot/internal/modules/audit/domain"
	"github.com/samber/oops"
	"gorm.io/gorm"
)

type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

func (r *Postgres) Save(ctx context.Context, record *domain.Record) error {
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return oops.In("audit").With("chat_id", record.ChatID, "message_id", record.MessageID).Wrap(err)
	}
	return nil
}

func (r *Postgres) Recent(ctx context.Context, chatID int64, limit int) ([]domain.Record, error) {
	var records []domain.Record
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	if err != nil {
		return nil, oops.In("audit").With("chat_id", chatID).Wrap(err)
	}
	return records, nil
}

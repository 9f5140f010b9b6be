package repository

import (
	"context"
	"errors"
	"time"

	"github.com/reshetovitsme/edit-audit-bot/internal/modules/binding/domain"
	apperrors "github.com/reshetovitsme/edit-audit-bot/internal/shared/errors"
	"github.com/samber/oops"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Postgres struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{db: db}
}

func (r *Postgres) Upsert(ctx context.Context, binding *domain.Binding) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chat_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"channel_id", "channel_title", "active", "created_by", "created_at", "updated_at"}),
		}).
		Create(binding)
	if result.Error != nil {
		return oops.In("binding").With("chat_id", binding.ChatID, "channel_id", binding.ChannelID).Wrap(result.Error)
	}
	return nil
}

func (r *Postgres) Get(ctx context.Context, chatID int64) (*domain.Binding, error) {
	var binding domain.Binding
	err := r.db.WithContext(ctx).Where("chat_id = ?", chatID).First(&binding).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrBindingNotFound
		}
		return nil, oops.In("binding").With("chat_id", chatID).Wrap(err)
	}
	return &binding, nil
}

func (r *Postgres) DeactivateByChat(ctx context.Context, chatID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Binding{}).
		Where("chat_id = ? AND active = ?", chatID, true).
		Updates(map[string]any{"active": false, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return false, oops.In("binding").With("chat_id", chatID).Wrap(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *Postgres) DeactivateByChannel(ctx context.Context, channelID int64) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&domain.Binding{}).
		Where("channel_id = ? AND active = ?", channelID, true).
		Updates(map[string]any{"active": false, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return 0, oops.In("binding").With("channel_id", channelID).Wrap(result.Error)
	}
	return result.RowsAffected, nil
}

func (r *Postgres) ListActive(ctx context.Context) ([]domain.Binding, error) {
	var bindings []domain.Binding
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("chat_id").
		Find(&bindings).Error
	if err != nil {
		return nil, oops.In("binding").Wrap(err)
	}
	return bindings, nil
}

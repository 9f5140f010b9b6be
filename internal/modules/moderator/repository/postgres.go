package repository

import (
	"context"

	"github.com/reshetovitsme/edit-audit-bot/internal/modules/moderator/domain"
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

func (r *Postgres) Add(ctx context.Context, moderator *domain.Moderator) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(moderator)
	if result.Error != nil {
		return false, oops.In("moderator").With("chat_id", moderator.ChatID, "user_id", moderator.UserID).Wrap(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *Postgres) Remove(ctx context.Context, chatID, userID int64) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Delete(&domain.Moderator{})
	if result.Error != nil {
		return false, oops.In("moderator").With("chat_id", chatID, "user_id", userID).Wrap(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *Postgres) List(ctx context.Context, chatID int64) ([]domain.Moderator, error) {
	var moderators []domain.Moderator
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at").
		Find(&moderators).Error
	if err != nil {
		return nil, oops.In("moderator").With("chat_id", chatID).Wrap(err)
	}
	return moderators, nil
}

func (r *Postgres) Exists(ctx context.Context, chatID, userID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Moderator{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	if err != nil {
		return false, oops.In("moderator").With("chat_id", chatID, "user_id", userID).Wrap(err)
	}
	return count > 0, nil
}

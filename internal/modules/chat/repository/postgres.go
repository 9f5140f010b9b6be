package repository

import (
	"context"
	"errors"
	"time"

	"github.com/reshetovitsme/edit-audit-bot/internal/modules/chat/domain"
	apperrors "github.com/reshetovitsme/edit-audit-bot/internal/shared/errors"
	"github.com/samber/lo"
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

func (r *Postgres) Upsert(ctx context.Context, chat *domain.Chat) error {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "chat_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "chat_type", "active", "updated_at"}),
		}).
		Create(chat)
	if result.Error != nil {
		return oops.In("chat").With("chat_id", chat.ChatID).Wrap(result.Error)
	}
	return nil
}

func (r *Postgres) Get(ctx context.Context, chatID int64) (*domain.Chat, error) {
	var chat domain.Chat
	err := r.db.WithContext(ctx).Where("chat_id = ?", chatID).First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrChatNotFound
		}
		return nil, oops.In("chat").With("chat_id", chatID).Wrap(err)
	}
	return &chat, nil
}

func (r *Postgres) SetActive(ctx context.Context, chatID int64, active bool) error {
	return r.update(ctx, chatID, map[string]any{"active": active})
}

func (r *Postgres) SetDeleteEnabled(ctx context.Context, chatID int64, enabled bool) error {
	return r.update(ctx, chatID, map[string]any{"delete_enabled": enabled})
}

func (r *Postgres) SetEditGrace(ctx context.Context, chatID int64, minutes int) error {
	return r.update(ctx, chatID, map[string]any{"edit_grace_minutes": minutes})
}

func (r *Postgres) update(ctx context.Context, chatID int64, fields map[string]any) error {
	fields["updated_at"] = time.Now().UTC()
	result := r.db.WithContext(ctx).
		Model(&domain.Chat{}).
		Where("chat_id = ?", chatID).
		Updates(fields)
	if result.Error != nil {
		return oops.In("chat").With("chat_id", chatID).Wrap(result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrChatNotFound
	}
	return nil
}

func (r *Postgres) ListActive(ctx context.Context) ([]domain.Chat, error) {
	var chats []domain.Chat
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("title").
		Find(&chats).Error
	if err != nil {
		return nil, oops.In("chat").Wrap(err)
	}
	return chats, nil
}

func (r *Postgres) ListActiveByAdmin(ctx context.Context, userID int64) ([]domain.Chat, error) {
	var chats []domain.Chat
	err := r.db.WithContext(ctx).
		Joins("JOIN chat_admins ON chat_admins.chat_id = chats.chat_id").
		Where("chats.active = ? AND chat_admins.user_id = ?", true, userID).
		Order("chats.title").
		Find(&chats).Error
	if err != nil {
		return nil, oops.In("chat").With("user_id", userID).Wrap(err)
	}
	return chats, nil
}

func (r *Postgres) ReplaceAdmins(ctx context.Context, chatID int64, userIDs []int64, refreshedAt time.Time) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chat_id = ?", chatID).Delete(&domain.Admin{}).Error; err != nil {
			return err
		}

		admins := lo.Map(lo.Uniq(userIDs), func(id int64, _ int) domain.Admin {
			return domain.Admin{ChatID: chatID, UserID: id}
		})
		if len(admins) > 0 {
			if err := tx.Create(&admins).Error; err != nil {
				return err
			}
		}

		return tx.Model(&domain.Chat{}).
			Where("chat_id = ?", chatID).
			Updates(map[string]any{"admins_refreshed_at": refreshedAt, "updated_at": refreshedAt}).Error
	})
	if err != nil {
		return oops.In("chat").With("chat_id", chatID, "admins", len(userIDs)).Wrap(err)
	}
	return nil
}

func (r *Postgres) Admins(ctx context.Context, chatID int64) (domain.AdminSet, error) {
	chat, err := r.Get(ctx, chatID)
	if err != nil {
		if errors.Is(err, apperrors.ErrChatNotFound) {
			return domain.AdminSet{}, apperrors.ErrAdminSetUnknown
		}
		return domain.AdminSet{}, err
	}
	if chat.AdminsRefreshedAt == nil {
		return domain.AdminSet{}, apperrors.ErrAdminSetUnknown
	}

	var ids []int64
	err = r.db.WithContext(ctx).
		Model(&domain.Admin{}).
		Where("chat_id = ?", chatID).
		Order("user_id").
		Pluck("user_id", &ids).Error
	if err != nil {
		return domain.AdminSet{}, oops.In("chat").With("chat_id", chatID).Wrap(err)
	}

	return domain.AdminSet{ChatID: chatID, UserIDs: ids, RefreshedAt: *chat.AdminsRefreshedAt}, nil
}

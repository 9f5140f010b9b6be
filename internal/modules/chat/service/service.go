package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/reshetovitsme/edit-audit-bot/internal/modules/chat/domain"
	"github.com/reshetovitsme/edit-audit-bot/internal/modules/chat/repository"
	apperrors "github.com/reshetovitsme/edit-audit-bot/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// AdminFetcher reads the current human administrators of a chat from the
// platform.
type AdminFetcher interface {
	ChatAdministrators(ctx context.Context, chatID int64) ([]int64, error)
}

// Service handles monitored chats, their settings and administrator sets
type Service struct {
	repo            repository.Repository
	fetcher         AdminFetcher
	refreshInterval time.Duration
	now             func() time.Time
}

// New creates a new chat service
func New(repo repository.Repository, fetcher AdminFetcher, refreshInterval time.Duration) *Service {
	return &Service{
		repo:            repo,
		fetcher:         fetcher,
		refreshInterval: refreshInterval,
		now:             func() time.Time { return time.Now().UTC() },
	}
}

// Register records a group the bot was promoted in and loads its
// administrators. A failed administrator fetch is logged and left for the
// next on-demand refresh.
func (s *Service) Register(ctx context.Context, chatID int64, title, chatType string) (domain.AdminSet, error) {
	chat := &domain.Chat{
		ChatID:        chatID,
		Title:         title,
		ChatType:      chatType,
		Active:        true,
		DeleteEnabled: true,
	}
	if err := s.repo.Upsert(ctx, chat); err != nil {
		return domain.AdminSet{}, err
	}
	slog.Info("Chat registered", "chat_id", chatID, "title", title)

	set, err := s.RefreshAdmins(ctx, chatID)
	if err != nil {
		slog.Warn("Failed to load chat administrators", "chat_id", chatID, "error", err)
		return domain.AdminSet{ChatID: chatID}, nil
	}
	return set, nil
}

// Deactivate stops monitoring a chat. Unknown chats are ignored.
func (s *Service) Deactivate(ctx context.Context, chatID int64) error {
	err := s.repo.SetActive(ctx, chatID, false)
	if errors.Is(err, apperrors.ErrChatNotFound) {
		return nil
	}
	if err == nil {
		slog.Info("Chat deactivated", "chat_id", chatID)
	}
	return err
}

// Get returns a registered chat or ErrChatNotFound.
func (s *Service) Get(ctx context.Context, chatID int64) (*domain.Chat, error) {
	return s.repo.Get(ctx, chatID)
}

// ToggleDelete flips deletion of edited messages and returns the new value.
func (s *Service) ToggleDelete(ctx context.Context, chatID int64) (bool, error) {
	chat, err := s.repo.Get(ctx, chatID)
	if err != nil {
		return false, err
	}
	enabled := !chat.DeleteEnabled
	if err := s.repo.SetDeleteEnabled(ctx, chatID, enabled); err != nil {
		return false, err
	}
	slog.Info("Chat delete setting changed", "chat_id", chatID, "delete_enabled", enabled)
	return enabled, nil
}

// SetEditGrace sets the grace window in minutes, 0 to 20.
func (s *Service) SetEditGrace(ctx context.Context, chatID int64, minutes int) error {
	if minutes < 0 || minutes > domain.MaxEditGraceMinutes {
		return oops.In("chat").With("minutes", minutes).Wrap(apperrors.ErrInvalidEditGrace)
	}
	if err := s.repo.SetEditGrace(ctx, chatID, minutes); err != nil {
		return err
	}
	slog.Info("Chat edit grace changed", "chat_id", chatID, "minutes", minutes)
	return nil
}

// RefreshAdmins fetches the administrator set from the platform and
// stores it.
func (s *Service) RefreshAdmins(ctx context.Context, chatID int64) (domain.AdminSet, error) {
	ids, err := s.fetcher.ChatAdministrators(ctx, chatID)
	if err != nil {
		return domain.AdminSet{}, oops.In("chat").With("chat_id", chatID).Wrap(err)
	}

	now := s.now()
	if err := s.repo.ReplaceAdmins(ctx, chatID, ids, now); err != nil {
		return domain.AdminSet{}, err
	}

	slog.Debug("Chat administrators refreshed", "chat_id", chatID, "admins", len(ids))
	return domain.AdminSet{ChatID: chatID, UserIDs: lo.Uniq(ids), RefreshedAt: now}, nil
}

// AdminSet returns the administrator set of a chat, refreshing it when it
// is missing or older than the refresh interval. A stale set is used when
// the refresh fails; ErrAdminSetUnknown is returned when there is none.
func (s *Service) AdminSet(ctx context.Context, chatID int64) (domain.AdminSet, error) {
	stored, err := s.repo.Admins(ctx, chatID)
	if err != nil && !errors.Is(err, apperrors.ErrAdminSetUnknown) {
		return domain.AdminSet{}, err
	}
	known := err == nil

	if known && !stored.StaleAt(s.now(), s.refreshInterval) {
		return stored, nil
	}

	if !known {
		if _, getErr := s.repo.Get(ctx, chatID); errors.Is(getErr, apperrors.ErrChatNotFound) {
			return domain.AdminSet{}, oops.In("chat").With("chat_id", chatID).Wrap(apperrors.ErrAdminSetUnknown)
		}
	}

	fresh, err := s.RefreshAdmins(ctx, chatID)
	if err == nil {
		return fresh, nil
	}
	if known {
		slog.Warn("Using stale administrator set", "chat_id", chatID, "refreshed_at", stored.RefreshedAt, "error", err)
		return stored, nil
	}
	return domain.AdminSet{}, oops.In("chat").With("chat_id", chatID).Wrapf(errors.Join(apperrors.ErrAdminSetUnknown, err), "administrator refresh failed")
}

// IsAdmin reports whether userID is in the chat's administrator set.
func (s *Service) IsAdmin(ctx context.Context, chatID, userID int64) (bool, error) {
	set, err := s.AdminSet(ctx, chatID)
	if err != nil {
		return false, err
	}
	return set.Contains(userID), nil
}

// ChatsFor lists the active chats a user may configure. Owners see all.
func (s *Service) ChatsFor(ctx context.Context, userID int64, owner bool) ([]domain.Chat, error) {
	if owner {
		return s.repo.ListActive(ctx)
	}
	return s.repo.ListActiveByAdmin(ctx, userID)
}

// CanConfigure reports whether userID may change the settings of chatID.
func (s *Service) CanConfigure(ctx context.Context, chatID, userID int64, owner bool) (bool, error) {
	chat, err := s.repo.Get(ctx, chatID)
	if err != nil {
		return false, err
	}
	if !chat.Active {
		return false, nil
	}
	if owner {
		return true, nil
	}
	return s.IsAdmin(ctx, chatID, userID)
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/reshetovitsme/edit-audit-bot/internal/modules/binding/domain"
	"github.com/reshetovitsme/edit-audit-bot/internal/modules/binding/repository"
	apperrors "github.com/reshetovitsme/edit-audit-bot/internal/shared/errors"
	"github.com/samber/oops"
)

// Service handles chat to channel bindings
type Service struct {
	repo repository.Repository
	now  func() time.Time
}

// New creates a new binding service
func New(repo repository.Repository) *Service {
	return &Service{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Bind points chatID at channelID. The last write wins: an existing
// binding is replaced and returned so the caller can mention it.
func (s *Service) Bind(ctx context.Context, chatID, channelID int64, channelTitle string, createdBy int64) (*domain.Binding, error) {
	previous, err := s.Lookup(ctx, chatID)
	if err != nil && !errors.Is(err, apperrors.ErrBindingNotFound) {
		return nil, err
	}

	now := s.now()
	binding := &domain.Binding{
		ChatID:       chatID,
		ChannelID:    channelID,
		ChannelTitle: channelTitle,
		Active:       true,
		CreatedBy:    createdBy,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Upsert(ctx, binding); err != nil {
		return nil, oops.In("binding").With("chat_id", chatID, "channel_id", channelID).Wrap(err)
	}

	if previous != nil && previous.ChannelID != channelID {
		slog.Info("Channel binding replaced",
			"chat_id", chatID,
			"old_channel_id", previous.ChannelID,
			"new_channel_id", channelID,
			"user_id", createdBy)
		return previous, nil
	}

	slog.Info("Channel binding saved", "chat_id", chatID, "channel_id", channelID, "user_id", createdBy)
	return nil, nil
}

// Lookup returns the active binding of a chat or ErrBindingNotFound.
func (s *Service) Lookup(ctx context.Context, chatID int64) (*domain.Binding, error) {
	binding, err := s.repo.Get(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if !binding.Active {
		return nil, apperrors.ErrBindingNotFound
	}
	return binding, nil
}

// Unbind deactivates the binding of a chat. It returns false when there
// was nothing to deactivate.
func (s *Service) Unbind(ctx context.Context, chatID int64) (bool, error) {
	ok, err := s.repo.DeactivateByChat(ctx, chatID)
	if err != nil {
		return false, err
	}
	if ok {
		slog.Info("Channel binding removed", "chat_id", chatID)
	}
	return ok, nil
}

// ChannelLost deactivates every binding that points at channelID.
func (s *Service) ChannelLost(ctx context.Context, channelID int64) (int64, error) {
	n, err := s.repo.DeactivateByChannel(ctx, channelID)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		slog.Warn("Bot lost access to audit channel, bindings deactivated", "channel_id", channelID, "bindings", n)
	}
	return n, nil
}

// Active lists all active bindings.
func (s *Service) Active(ctx context.Context) ([]domain.Binding, error) {
	return s.repo.ListActive(ctx)
}

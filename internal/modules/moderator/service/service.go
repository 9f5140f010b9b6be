package service

import (
	"context"
	"log/slog"

	"github.com/reshetovitsme/edit-audit-bot/internal/modules/moderator/domain"
	"github.com/reshetovitsme/edit-audit-bot/internal/modules/moderator/repository"
)

// Service handles bot moderators of monitored chats
type Service struct {
	repo repository.Repository
}

// New creates a new moderator service
func New(repo repository.Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// Add nominates a moderator. It returns false if the user already was one.
func (s *Service) Add(ctx context.Context, chatID, userID int64, username string, addedBy int64) (bool, error) {
	added, err := s.repo.Add(ctx, &domain.Moderator{
		ChatID:   chatID,
		UserID:   userID,
		Username: username,
		AddedBy:  addedBy,
	})
	if err != nil {
		return false, err
	}
	if added {
		slog.Info("Moderator added", "chat_id", chatID, "user_id", userID, "added_by", addedBy)
	}
	return added, nil
}

// Remove revokes a moderator.
func (s *Service) Remove(ctx context.Context, chatID, userID int64) (bool, error) {
	removed, err := s.repo.Remove(ctx, chatID, userID)
	if err != nil {
		return false, err
	}
	if removed {
		slog.Info("Moderator removed", "chat_id", chatID, "user_id", userID)
	}
	return removed, nil
}

// List returns the moderators of a chat.
func (s *Service) List(ctx context.Context, chatID int64) ([]domain.Moderator, error) {
	return s.repo.List(ctx, chatID)
}

// IsModerator reports whether userID moderates chatID.
func (s *Service) IsModerator(ctx context.Context, chatID, userID int64) (bool, error) {
	return s.repo.Exists(ctx, chatID, userID)
}

package service

import (
	"context"
	"fmt"
	"html"
	"log/slog"
	"strings"

	"github.com/gorilla/feeds"
	"github.com/reshetovitsme/edit-audit-bot/internal/modules/audit/domain"
	"github.com/reshetovitsme/edit-audit-bot/internal/modules/audit/repository"
	chatDomain "github.com/reshetovitsme/edit-audit-bot/internal/modules/chat/domain"
	"github.com/samber/oops"
)

// ChatLookup resolves chat titles for feed headers.
type ChatLookup interface {
	Get(ctx context.Context, chatID int64) (*chatDomain.Chat, error)
}

// Service stores edit records and renders them as feeds
type Service struct {
	repo  repository.Repository
	chats ChatLookup
	limit int
}

// New creates a new audit service. limit caps the number of feed items.
func New(repo repository.Repository, chats ChatLookup, limit int) *Service {
	if limit <= 0 {
		limit = 50
	}
	return &Service{
		repo:  repo,
		chats: chats,
		limit: limit,
	}
}

// Record persists an audited edit. Failures are logged and swallowed so a
// storage outage never blocks the edit flow.
func (s *Service) Record(ctx context.Context, record *domain.Record) {
	if err := s.repo.Save(ctx, record); err != nil {
		slog.Error("Failed to save edit record",
			"chat_id", record.ChatID,
			"message_id", record.MessageID,
			"error", err)
	}
}

// Recent returns the newest records of a chat.
func (s *Service) Recent(ctx context.Context, chatID int64) ([]domain.Record, error) {
	return s.repo.Recent(ctx, chatID, s.limit)
}

// GenerateFeed builds an RSS feed of the recent edits in a chat.
func (s *Service) GenerateFeed(ctx context.Context, chatID int64, baseURL string) (*feeds.Feed, error) {
	chat, err := s.chats.Get(ctx, chatID)
	if err != nil {
		return nil, oops.In("audit").With("chat_id", chatID, "context", "chat not found").Wrap(err)
	}

	records, err := s.Recent(ctx, chatID)
	if err != nil {
		return nil, oops.In("audit").With("chat_id", chatID, "context", "failed to get records").Wrap(err)
	}

	feed := &feeds.Feed{
		Title:       fmt.Sprintf("%s - edit audit", chat.Title),
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/feeds/%d", baseURL, chatID)},
		Description: fmt.Sprintf("Edited messages in %s", chat.Title),
		Created:     chat.CreatedAt,
		Updated:     chat.UpdatedAt,
	}
	if len(records) > 0 {
		feed.Updated = records[0].CreatedAt
	}

	feed.Items = make([]*feeds.Item, 0, len(records))
	for i := range records {
		feed.Items = append(feed.Items, recordToFeedItem(&records[i], feed.Link.Href))
	}
	return feed, nil
}

func recordToFeedItem(r *domain.Record, link string) *feeds.Item {
	original := r.OriginalText
	if !r.OriginalKnown {
		original = domain.OriginalUnavailable
	}

	var status []string
	if r.Published {
		status = append(status, "published")
	}
	if r.Deleted {
		status = append(status, "deleted")
	}
	if r.Error != "" {
		status = append(status, "error: "+r.Error)
	}

	description := fmt.Sprintf("Before: %s\nAfter: %s", original, r.EditedText)
	if r.MediaKind != "" {
		description += "\nMedia: " + r.MediaKind
	}
	if len(status) > 0 {
		description += "\nStatus: " + strings.Join(status, ", ")
	}

	content := fmt.Sprintf("<p><strong>Before:</strong> %s</p><p><strong>After:</strong> %s</p>",
		html.EscapeString(original), html.EscapeString(r.EditedText))

	return &feeds.Item{
		Title:       fmt.Sprintf("%s edited message %d", editorLabel(r), r.MessageID),
		Link:        &feeds.Link{Href: link},
		Description: description,
		Content:     content,
		Author:      &feeds.Author{Name: editorLabel(r)},
		Created:     r.CreatedAt,
		Id:          fmt.Sprintf("%d-%d-%d", r.ChatID, r.MessageID, r.CreatedAt.UnixNano()),
	}
}

func editorLabel(r *domain.Record) string {
	if r.EditorName != "" {
		return r.EditorName
	}
	return fmt.Sprintf("user %d", r.EditorID)
}

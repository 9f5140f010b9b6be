package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/reshetovitsme/edit-audit-bot/internal/modules/audit/domain"
	"github.com/reshetovitsme/edit-audit-bot/internal/modules/audit/repository"
	chatDomain "github.com/reshetovitsme/edit-audit-bot/internal/modules/chat/domain"
	apperrors "github.com/reshetovitsme/edit-audit-bot/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChats struct {
	get func(chatID int64) (*chatDomain.Chat, error)
}

func (f fakeChats) Get(_ context.Context, chatID int64) (*chatDomain.Chat, error) {
	return f.get(chatID)
}

func knownChat() fakeChats {
	return fakeChats{get: func(chatID int64) (*chatDomain.Chat, error) {
		if chatID != -100 {
			return nil, apperrors.ErrChatNotFound
		}
		return &chatDomain.Chat{ChatID: -100, Title: "Team"}, nil
	}}
}

func TestRecentIsNewestFirstAndLimited(t *testing.T) {
	ctx := context.Background()
	svc := New(repository.NewMemory(), knownChat(), 2)

	for i := int64(1); i <= 3; i++ {
		svc.Record(ctx, &domain.Record{ChatID: -100, MessageID: i})
	}
	svc.Record(ctx, &domain.Record{ChatID: -200, MessageID: 99})

	recent, err := svc.Recent(ctx, -100)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, int64(3), recent[0].MessageID)
	assert.Equal(t, int64(2), recent[1].MessageID)
}

func TestGenerateFeed(t *testing.T) {
	ctx := context.Background()
	svc := New(repository.NewMemory(), knownChat(), 0)

	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	svc.Record(ctx, &domain.Record{
		ChatID: -100, ChannelID: -200, MessageID: 10, EditorID: 5, EditorName: "Ann",
		OriginalText: "a < b", OriginalKnown: true, EditedText: "a > b",
		Published: true, Deleted: true, CreatedAt: at,
	})
	svc.Record(ctx, &domain.Record{
		ChatID: -100, ChannelID: -200, MessageID: 11, EditorID: 6,
		EditedText: "new", MediaKind: "photo", Published: true, Error: "delete: forbidden",
		CreatedAt: at.Add(time.Minute),
	})

	feed, err := svc.GenerateFeed(ctx, -100, "https://bot.example.com")
	require.NoError(t, err)

	assert.Equal(t, "Team - edit audit", feed.Title)
	assert.Equal(t, "https://bot.example.com/feeds/-100", feed.Link.Href)
	assert.Equal(t, at.Add(time.Minute), feed.Updated)
	require.Len(t, feed.Items, 2)

	latest := feed.Items[0]
	assert.Equal(t, "user 6 edited message 11", latest.Title)
	assert.Contains(t, latest.Description, domain.OriginalUnavailable)
	assert.Contains(t, latest.Description, "Media: photo")
	assert.Contains(t, latest.Description, "error: delete: forbidden")

	first := feed.Items[1]
	assert.Contains(t, first.Content, "a &lt; b")
	assert.Contains(t, first.Content, "a &gt; b")
	assert.Contains(t, first.Description, "Status: published, deleted")

	rss, err := feed.ToRss()
	require.NoError(t, err)
	assert.True(t, strings.Contains(rss, "<rss"))
}

func TestGenerateFeedUnknownChat(t *testing.T) {
	svc := New(repository.NewMemory(), knownChat(), 10)

	_, err := svc.GenerateFeed(context.Background(), -404, "http://x")
	assert.ErrorIs(t, err, apperrors.ErrChatNotFound)
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/reshetovitsme/edit-audit-bot/internal/modules/chat/domain"
	apperrors "github.com/reshetovitsme/edit-audit-bot/internal/shared/errors"
	"github.com/reshetovitsme/edit-audit-bot/internal/shared/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresUpsertKeepsSettings(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPostgres(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.Chat{ChatID: -100, Title: "Old", ChatType: "group", Active: true, DeleteEnabled: true}))
	require.NoError(t, repo.SetDeleteEnabled(ctx, -100, false))
	require.NoError(t, repo.SetEditGrace(ctx, -100, 5))
	require.NoError(t, repo.Upsert(ctx, &domain.Chat{ChatID: -100, Title: "New", ChatType: "supergroup", Active: true, DeleteEnabled: true}))

	chat, err := repo.Get(ctx, -100)
	require.NoError(t, err)
	assert.Equal(t, "New", chat.Title)
	assert.Equal(t, "supergroup", chat.ChatType)
	assert.False(t, chat.DeleteEnabled)
	assert.Equal(t, 5, chat.EditGraceMinutes)

	assert.ErrorIs(t, repo.SetActive(ctx, -404, false), apperrors.ErrChatNotFound)
}

func TestPostgresAdmins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := NewPostgres(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &domain.Chat{ChatID: -100, Title: "G", Active: true, DeleteEnabled: true}))

	_, err := repo.Admins(ctx, -100)
	assert.ErrorIs(t, err, apperrors.ErrAdminSetUnknown)

	refreshed := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.ReplaceAdmins(ctx, -100, []int64{3, 1, 3}, refreshed))
	require.NoError(t, repo.ReplaceAdmins(ctx, -100, []int64{2, 1}, refreshed))

	set, err := repo.Admins(ctx, -100)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, set.UserIDs)
	assert.True(t, set.RefreshedAt.Equal(refreshed))

	chats, err := repo.ListActiveByAdmin(ctx, 2)
	require.NoError(t, err)
	require.Len(t, chats, 1)
	assert.Equal(t, int64(-100), chats[0].ChatID)
}

package service

import (
	"context"
	"testing"

	"github.com/reshetovitsme/edit-audit-bot/internal/modules/binding/repository"
	apperrors "github.com/reshetovitsme/edit-audit-bot/internal/shared/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindAndLookup(t *testing.T) {
	ctx := context.Background()
	svc := New(repository.NewMemory())

	_, err := svc.Lookup(ctx, -100)
	assert.ErrorIs(t, err, apperrors.ErrBindingNotFound)

	previous, err := svc.Bind(ctx, -100, -200, "audit", 1)
	require.NoError(t, err)
	assert.Nil(t, previous)

	b, err := svc.Lookup(ctx, -100)
	require.NoError(t, err)
	assert.Equal(t, int64(-200), b.ChannelID)
	assert.Equal(t, "audit", b.ChannelTitle)
	assert.Equal(t, int64(1), b.CreatedBy)
	assert.False(t, b.CreatedAt.IsZero())
}

func TestBindLastWriteWins(t *testing.T) {
	ctx := context.Background()
	svc := New(repository.NewMemory())

	_, err := svc.Bind(ctx, -100, -200, "old", 1)
	require.NoError(t, err)

	previous, err := svc.Bind(ctx, -100, -300, "new", 2)
	require.NoError(t, err)
	require.NotNil(t, previous)
	assert.Equal(t, int64(-200), previous.ChannelID)
	assert.Equal(t, "old", previous.ChannelTitle)

	b, err := svc.Lookup(ctx, -100)
	require.NoError(t, err)
	assert.Equal(t, int64(-300), b.ChannelID)

	again, err := svc.Bind(ctx, -100, -300, "new", 2)
	require.NoError(t, err)
	assert.Nil(t, again, "rebinding the same channel is not a replacement")
}

func TestUnbind(t *testing.T) {
	ctx := context.Background()
	svc := New(repository.NewMemory())

	ok, err := svc.Unbind(ctx, -100)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.Bind(ctx, -100, -200, "audit", 1)
	require.NoError(t, err)

	ok, err = svc.Unbind(ctx, -100)
	require.NoError(t, err)
	assert.True(t, ok)

	_, err = svc.Lookup(ctx, -100)
	assert.ErrorIs(t, err, apperrors.ErrBindingNotFound)

	previous, err := svc.Bind(ctx, -100, -300, "again", 1)
	require.NoError(t, err)
	assert.Nil(t, previous, "an inactive binding is not reported as replaced")
}

func TestChannelLost(t *testing.T) {
	ctx := context.Background()
	svc := New(repository.NewMemory())

	for _, chatID := range []int64{-1, -2, -3} {
		_, err := svc.Bind(ctx, chatID, -200, "shared", 1)
		require.NoError(t, err)
	}
	_, err := svc.Bind(ctx, -4, -999, "other", 1)
	require.NoError(t, err)

	n, err := svc.ChannelLost(ctx, -200)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	active, err := svc.Active(ctx)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, int64(-4), active[0].ChatID)
}

package telegram

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	apperrors "github.com/reshetovitsme/edit-audit-bot/internal/shared/errors"
	"github.com/reshetovitsme/edit-audit-bot/internal/shared/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientChatAdministratorsSkipsBots(t *testing.T) {
	api := newFakeAPI()
	api.admins = []models.ChatMember{
		member(t, "creator", 1, false),
		member(t, "administrator", 2, false),
		member(t, "administrator", botUserID, true),
	}
	client := NewClient(api, time.Second, metrics.New())

	ids, err := client.ChatAdministrators(context.Background(), -100)

	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 2}, ids)
}

func TestClientIsBotAdmin(t *testing.T) {
	tests := []struct {
		name   string
		member *models.ChatMember
		want   bool
	}{
		{"administrator", ptr(member(t, "administrator", botUserID, true)), true},
		{"creator", ptr(member(t, "creator", botUserID, true)), true},
		{"plain member", ptr(member(t, "member", botUserID, true)), false},
		{"left", ptr(member(t, "left", botUserID, true)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			api.member = tt.member
			client := NewClient(api, time.Second, metrics.New())

			got, err := client.IsBotAdmin(context.Background(), -100)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			_, err = client.IsBotAdmin(context.Background(), -100)
			require.NoError(t, err)
			assert.Equal(t, 1, api.getMeCalls, "bot identity is cached")
			assert.Contains(t, api.callLog(), fmt.Sprintf("member:-100:%d", botUserID))
		})
	}
}

func TestClientIsBotAdminWithoutAccess(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"chat not found", nil, nil},
		{"kicked", fmt.Errorf("%w, Forbidden: bot was kicked from the channel chat", bot.ErrorForbidden), nil},
		{"member list hidden", fmt.Errorf("%w, Bad Request: member list is inaccessible", bot.ErrorBadRequest), nil},
		{"rate limited", fmt.Errorf("%w, retry after 3", bot.ErrorTooManyRequests), apperrors.ErrTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newFakeAPI()
			api.memberErr = tt.err
			client := NewClient(api, time.Second, metrics.New())

			ok, err := client.IsBotAdmin(context.Background(), -100)
			assert.False(t, ok)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestClientClassifiesErrors(t *testing.T) {
	api := newFakeAPI()
	api.sendErr[-100] = fmt.Errorf("%w, Forbidden: bot is not a member of the channel chat", bot.ErrorForbidden)
	api.deleteErr = fmt.Errorf("%w, Bad Request: message can't be deleted", bot.ErrorBadRequest)
	m := metrics.New()
	client := NewClient(api, time.Second, m)

	_, err := client.Publish(context.Background(), -100, "x")
	assert.ErrorIs(t, err, apperrors.ErrPermission)
	assert.ErrorIs(t, err, bot.ErrorForbidden)

	err = client.Delete(context.Background(), -200, 5)
	assert.ErrorIs(t, err, apperrors.ErrPermission)

	_, err = client.Publish(context.Background(), -300, "x")
	require.NoError(t, err)

	assert.Equal(t, float64(1), testutil.ToFloat64(m.PlatformCalls.WithLabelValues("sendMessage", "permission")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.PlatformCalls.WithLabelValues("sendMessage", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.PlatformCalls.WithLabelValues("deleteMessage", "permission")))
}

type slowAPI struct{ *fakeAPI }

func (s slowAPI) SendMessage(ctx context.Context, _ *bot.SendMessageParams) (*models.Message, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestClientTimeoutIsTransient(t *testing.T) {
	client := NewClient(slowAPI{newFakeAPI()}, 10*time.Millisecond, metrics.New())

	_, err := client.Publish(context.Background(), -100, "x")

	assert.ErrorIs(t, err, apperrors.ErrTransient)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"forbidden", fmt.Errorf("%w, Forbidden: bot was blocked by the user", bot.ErrorForbidden), apperrors.ErrPermission},
		{"unauthorized", bot.ErrorUnauthorized, apperrors.ErrPermission},
		{"not enough rights", fmt.Errorf("%w, Bad Request: not enough rights to send text messages to the chat", bot.ErrorBadRequest), apperrors.ErrPermission},
		{"admin required", errors.New("Bad Request: CHAT_ADMIN_REQUIRED"), apperrors.ErrPermission},
		{"deadline", context.DeadlineExceeded, apperrors.ErrTransient},
		{"rate limited", fmt.Errorf("%w, retry after 3", bot.ErrorTooManyRequests), apperrors.ErrTransient},
		{"server error", errors.New("error response from telegram for method sendMessage, 502 Bad Gateway"), apperrors.ErrTransient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			assert.ErrorIs(t, got, tt.want)
			assert.ErrorIs(t, got, tt.err)
		})
	}

	other := fmt.Errorf("%w, Bad Request: message text is empty", bot.ErrorBadRequest)
	assert.Equal(t, other, Classify(other))
	assert.NoError(t, Classify(nil))
}

func ptr[T any](v T) *T {
	return &v
}

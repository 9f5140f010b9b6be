package telegram

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	auditRepo "github.com/reshetovitsme/edit-audit-bot/internal/modules/audit/repository"
	auditService "github.com/reshetovitsme/edit-audit-bot/internal/modules/audit/service"
	bindingRepo "github.com/reshetovitsme/edit-audit-bot/internal/modules/binding/repository"
	bindingService "github.com/reshetovitsme/edit-audit-bot/internal/modules/binding/service"
	chatRepo "github.com/reshetovitsme/edit-audit-bot/internal/modules/chat/repository"
	chatService "github.com/reshetovitsme/edit-audit-bot/internal/modules/chat/service"
	messageRepo "github.com/reshetovitsme/edit-audit-bot/internal/modules/message/repository"
	messageService "github.com/reshetovitsme/edit-audit-bot/internal/modules/message/service"
	moderatorRepo "github.com/reshetovitsme/edit-audit-bot/internal/modules/moderator/repository"
	moderatorService "github.com/reshetovitsme/edit-audit-bot/internal/modules/moderator/service"
	monitorService "github.com/reshetovitsme/edit-audit-bot/internal/modules/monitor/service"
	setupDomain "github.com/reshetovitsme/edit-audit-bot/internal/modules/setup/domain"
	setupRepo "github.com/reshetovitsme/edit-audit-bot/internal/modules/setup/repository"
	setupService "github.com/reshetovitsme/edit-audit-bot/internal/modules/setup/service"
	"github.com/reshetovitsme/edit-audit-bot/internal/shared/config"
	apperrors "github.com/reshetovitsme/edit-audit-bot/internal/shared/errors"
	"github.com/reshetovitsme/edit-audit-bot/internal/shared/metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	groupID   int64 = -1001500
	adminID   int64 = 415409454
	memberID  int64 = 20
	channelID int64 = -1003008079966
)

type fixture struct {
	h          *Handler
	api        *fakeAPI
	bindings   *bindingService.Service
	moderators *moderatorService.Service
	audit      *auditRepo.Memory
	metrics    *metrics.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	api := newFakeAPI()
	api.admins = []models.ChatMember{
		member(t, "creator", adminID, false),
		member(t, "administrator", botUserID, true),
	}
	bindingMember := member(t, "administrator", botUserID, true)
	api.member = &bindingMember

	m := metrics.New()
	cfg := &config.Config{}
	client := NewClient(api, time.Second, m)

	chats := chatService.New(chatRepo.NewMemory(), client, time.Hour)
	bindings := bindingService.New(bindingRepo.NewMemory())
	moderators := moderatorService.New(moderatorRepo.NewMemory())
	messages := messageService.New(messageRepo.NewLRU(100, time.Hour, nil))
	audits := auditRepo.NewMemory()
	monitor := monitorService.New(bindings, chats, moderators, messages, auditService.New(audits, chats, 10), client, m)
	setup := setupService.New(setupRepo.NewLRU(100, time.Hour), bindings, chats, moderators, client, cfg, m)

	return &fixture{
		h:          New(cfg, client, monitor, chats, bindings, moderators, setup, m),
		api:        api,
		bindings:   bindings,
		moderators: moderators,
		audit:      audits,
		metrics:    m,
	}
}

func (f *fixture) dispatch(t *testing.T, format string, args ...any) {
	t.Helper()
	ev, err := DecodeEvent([]byte(fmt.Sprintf(format, args...)))
	require.NoError(t, err)
	f.h.HandleUpdate(context.Background(), ev)
}

func (f *fixture) promote(t *testing.T) {
	t.Helper()
	f.dispatch(t, `{"update_id": 1, "my_chat_member": {
		"chat": {"id": %d, "title": "Team", "type": "supergroup"},
		"from": {"id": %d, "is_bot": false, "first_name": "Q"},
		"date": 1758436000,
		"old_chat_member": {"status": "member", "user": {"id": %d, "is_bot": true, "first_name": "AuditBot"}},
		"new_chat_member": {"status": "administrator", "user": {"id": %d, "is_bot": true, "first_name": "AuditBot"}}
	}}`, groupID, adminID, botUserID, botUserID)
}

func (f *fixture) press(t *testing.T, data string) {
	t.Helper()
	f.dispatch(t, `{"update_id": 2, "callback_query": {
		"id": "cb", "chat_instance": "ci", "data": %q,
		"from": {"id": %d, "is_bot": false, "first_name": "Q"},
		"message": {"message_id": 77, "chat": {"id": %d, "type": "private"}, "date": 1758436001, "text": "menu"}
	}}`, data, adminID, adminID)
}

func (f *fixture) groupMessage(t *testing.T, from int64, id int, text string) {
	t.Helper()
	f.dispatch(t, `{"update_id": 3, "message": {
		"message_id": %d, "from": {"id": %d, "is_bot": false, "first_name": "Bob"},
		"chat": {"id": %d, "title": "Team", "type": "supergroup"},
		"date": 1758436000, "text": %q
	}}`, id, from, groupID, text)
}

func (f *fixture) edit(t *testing.T, from int64, id int, text string) {
	t.Helper()
	f.dispatch(t, `{"update_id": 4, "edited_message": {
		"message_id": %d, "from": {"id": %d, "is_bot": false, "first_name": "Bob"},
		"chat": {"id": %d, "title": "Team", "type": "supergroup"},
		"date": 1758436000, "edit_date": 1758436600, "text": %q
	}}`, id, from, groupID, text)
}

func (f *fixture) forwardChannelPost(t *testing.T) {
	t.Helper()
	f.dispatch(t, `{"update_id": 5, "message": {
		"message_id": 463,
		"from": {"id": %d, "is_bot": false, "first_name": "Qwerty"},
		"chat": {"id": %d, "type": "private"},
		"date": 1758436069,
		"forward_origin": {"type": "channel", "chat": {"id": %d, "title": "тест канал", "type": "channel"}, "message_id": 14, "date": 1758436066},
		"forward_from_chat": {"id": %d, "title": "тест канал", "type": "channel"},
		"forward_from_message_id": 14,
		"forward_date": 1758436066,
		"text": "V"
	}}`, adminID, adminID, channelID, channelID)
}

func (f *fixture) forwardUserMessage(t *testing.T, userID int64) {
	t.Helper()
	f.dispatch(t, `{"update_id": 6, "message": {
		"message_id": 470,
		"from": {"id": %d, "is_bot": false, "first_name": "Qwerty"},
		"chat": {"id": %d, "type": "private"},
		"date": 1758436100,
		"forward_origin": {"type": "user", "sender_user": {"id": %d, "is_bot": false, "first_name": "Mod"}, "date": 1758436090},
		"text": "hi"
	}}`, adminID, adminID, userID)
}

func TestPromotionRegistersChatAndNotifiesAdmins(t *testing.T) {
	f := newFixture(t)

	f.promote(t)

	texts := f.api.textsTo(adminID)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Team")
	assert.Contains(t, texts[0], "/chats")
	assert.NotContains(t, f.api.callLog(), fmt.Sprintf("send:%d", botUserID))
}

// Scenario D end to end: /chats, pick the chat, press the channel button,
// forward the channel post.
func TestChannelSetupDialog(t *testing.T) {
	f := newFixture(t)
	f.promote(t)

	f.dispatch(t, `{"update_id": 7, "message": {"message_id": 1, "from": {"id": %d, "is_bot": false, "first_name": "Q"}, "chat": {"id": %d, "type": "private"}, "date": 1, "text": "/chats"}}`, adminID, adminID)
	last := f.api.sent[len(f.api.sent)-1]
	require.NotNil(t, last.ReplyMarkup)
	markup := last.ReplyMarkup.(*models.InlineKeyboardMarkup)
	assert.Equal(t, fmt.Sprintf("chat:%d", groupID), markup.InlineKeyboard[0][0].CallbackData)

	f.press(t, fmt.Sprintf("chat:%d", groupID))
	f.press(t, fmt.Sprintf("bind:%d", groupID))
	f.forwardChannelPost(t)

	binding, err := f.bindings.Lookup(context.Background(), groupID)
	require.NoError(t, err)
	assert.Equal(t, channelID, binding.ChannelID)
	assert.Equal(t, "тест канал", binding.ChannelTitle)

	texts := f.api.textsTo(adminID)
	assert.True(t, anyContains(texts, "Audit channel set to “тест канал”"), texts)
}

func TestChannelSetupWithoutBotInChannel(t *testing.T) {
	f := newFixture(t)
	f.api.member = nil
	f.promote(t)
	f.press(t, fmt.Sprintf("bind:%d", groupID))

	f.forwardChannelPost(t)

	_, err := f.bindings.Lookup(context.Background(), groupID)
	assert.ErrorIs(t, err, apperrors.ErrBindingNotFound)

	texts := f.api.textsTo(adminID)
	require.NotEmpty(t, texts)
	assert.Contains(t, texts[len(texts)-1], "not an administrator of that channel")
	assert.Equal(t, float64(0), testutil.ToFloat64(f.metrics.RouteErrors.WithLabelValues("channel_setup")))
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.SetupRejected.WithLabelValues("bot_not_admin")))
}

func TestChannelSetupRejectsUserForward(t *testing.T) {
	f := newFixture(t)
	f.promote(t)
	f.press(t, fmt.Sprintf("bind:%d", groupID))

	f.forwardUserMessage(t, 5151)

	_, err := f.bindings.Lookup(context.Background(), groupID)
	assert.ErrorIs(t, err, apperrors.ErrBindingNotFound)
	assert.True(t, anyContains(f.api.textsTo(adminID), "not forwarded from a channel"))
}

func TestChannelPostWinsOverModeratorNomination(t *testing.T) {
	f := newFixture(t)
	f.promote(t)
	f.press(t, fmt.Sprintf("madd:%d", groupID))

	f.forwardChannelPost(t)

	_, err := f.bindings.Lookup(context.Background(), groupID)
	assert.NoError(t, err)
	mods, err := f.moderators.List(context.Background(), groupID)
	require.NoError(t, err)
	assert.Empty(t, mods)
}

func TestModeratorNomination(t *testing.T) {
	f := newFixture(t)
	f.promote(t)
	f.press(t, fmt.Sprintf("madd:%d", groupID))

	f.forwardUserMessage(t, 5151)

	ok, err := f.moderators.IsModerator(context.Background(), groupID, 5151)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestEditIsPublishedThenDeleted(t *testing.T) {
	f := newFixture(t)
	f.promote(t)
	_, err := f.bindings.Bind(context.Background(), groupID, channelID, "audit", adminID)
	require.NoError(t, err)

	f.groupMessage(t, memberID, 42, "hello")
	f.edit(t, memberID, 42, "hello world")

	calls := f.api.callLog()
	publish := indexOf(calls, fmt.Sprintf("send:%d", channelID))
	remove := indexOf(calls, fmt.Sprintf("delete:%d:42", groupID))
	require.NotEqual(t, -1, publish)
	require.NotEqual(t, -1, remove)
	assert.Less(t, publish, remove)

	texts := f.api.textsTo(channelID)
	require.Len(t, texts, 1)
	assert.Contains(t, texts[0], "Before:\nhello\n")
	assert.Contains(t, texts[0], "After:\nhello world\n")
	assert.Len(t, f.audit.All(), 1)
}

func TestAdminEditIsLeftAlone(t *testing.T) {
	f := newFixture(t)
	f.promote(t)
	_, err := f.bindings.Bind(context.Background(), groupID, channelID, "audit", adminID)
	require.NoError(t, err)

	f.edit(t, adminID, 42, "fixed typo")

	for _, c := range f.api.callLog() {
		assert.False(t, strings.HasPrefix(c, "delete:"), c)
		assert.NotEqual(t, fmt.Sprintf("send:%d", channelID), c)
	}
}

func TestBotRemovedFromChannelDropsBindings(t *testing.T) {
	f := newFixture(t)
	_, err := f.bindings.Bind(context.Background(), groupID, channelID, "audit", adminID)
	require.NoError(t, err)

	f.dispatch(t, `{"update_id": 8, "my_chat_member": {
		"chat": {"id": %d, "title": "audit", "type": "channel"},
		"from": {"id": %d, "is_bot": false, "first_name": "Q"},
		"date": 1758436000,
		"old_chat_member": {"status": "administrator", "user": {"id": %d, "is_bot": true, "first_name": "AuditBot"}},
		"new_chat_member": {"status": "left", "user": {"id": %d, "is_bot": true, "first_name": "AuditBot"}}
	}}`, channelID, adminID, botUserID, botUserID)

	_, err = f.bindings.Lookup(context.Background(), groupID)
	assert.ErrorIs(t, err, apperrors.ErrBindingNotFound)
}

func TestCallbackFromStrangerIsRefused(t *testing.T) {
	f := newFixture(t)
	f.promote(t)

	f.dispatch(t, `{"update_id": 9, "callback_query": {
		"id": "cb2", "chat_instance": "ci", "data": "del:%d",
		"from": {"id": 31337, "is_bot": false, "first_name": "Eve"}
	}}`, groupID)

	require.NotEmpty(t, f.api.answered)
	assert.Contains(t, f.api.answered[len(f.api.answered)-1].Text, "not an administrator")
	assert.Zero(t, testutil.ToFloat64(f.metrics.RouteErrors.WithLabelValues("callback")))
}

func TestGraceInput(t *testing.T) {
	f := newFixture(t)
	f.promote(t)
	f.press(t, fmt.Sprintf("gcustom:%d", groupID))
	assert.Equal(t, setupDomain.AwaitingEditGrace, f.h.setup.Session(adminID).Awaiting)

	f.dispatch(t, `{"update_id": 10, "message": {"message_id": 2, "from": {"id": %d, "is_bot": false, "first_name": "Q"}, "chat": {"id": %d, "type": "private"}, "date": 1, "text": "5"}}`, adminID, adminID)

	chat, err := f.h.chats.Get(context.Background(), groupID)
	require.NoError(t, err)
	assert.Equal(t, 5, chat.EditGraceMinutes)
}

func TestPanickingRouteIsRecovered(t *testing.T) {
	f := newFixture(t)
	f.h.monitor = nil

	assert.NotPanics(t, func() { f.edit(t, memberID, 1, "x") })
	assert.Equal(t, float64(1), testutil.ToFloat64(f.metrics.RouteErrors.WithLabelValues("edited_message")))
}

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data   string
		action string
		chatID int64
		arg    string
		ok     bool
	}{
		{"back", "back", 0, "", true},
		{"chat:-100123", "chat", -100123, "", true},
		{"gset:-100123:15", "gset", -100123, "15", true},
		{"mrm:-1:5151", "mrm", -1, "5151", true},
		{"chat", "", 0, "", false},
		{"chat:abc", "", 0, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			action, chatID, arg, ok := parseCallback(tt.data)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.chatID, chatID)
			assert.Equal(t, tt.arg, arg)
		})
	}
	assert.Equal(t, "gset:-5:10", callbackData("gset", -5, 10))
}

func anyContains(texts []string, sub string) bool {
	for _, s := range texts {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func indexOf(items []string, want string) int {
	for i, s := range items {
		if s == want {
			return i
		}
	}
	return -1
}

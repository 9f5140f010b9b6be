package telegram

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/stretchr/testify/require"
)

const botUserID int64 = 999

// fakeAPI records every call in order.
type fakeAPI struct {
	mu sync.Mutex

	calls    []string
	sent     []*bot.SendMessageParams
	edited   []*bot.EditMessageTextParams
	answered []*bot.AnswerCallbackQueryParams

	admins     []models.ChatMember
	member     *models.ChatMember
	memberErr  error
	sendErr    map[int64]error
	deleteErr  error
	adminsErr  error
	getMeCalls int
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{sendErr: map[int64]error{}}
}

func (f *fakeAPI) record(format string, args ...any) {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeAPI) GetMe(context.Context) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getMeCalls++
	return &models.User{ID: botUserID, IsBot: true, FirstName: "AuditBot"}, nil
}

func (f *fakeAPI) SendMessage(_ context.Context, p *bot.SendMessageParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("send:%v", p.ChatID)
	if err := f.sendErr[p.ChatID.(int64)]; err != nil {
		return nil, err
	}
	f.sent = append(f.sent, p)
	return &models.Message{ID: len(f.sent)}, nil
}

func (f *fakeAPI) EditMessageText(_ context.Context, p *bot.EditMessageTextParams) (*models.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("edit:%v:%d", p.ChatID, p.MessageID)
	f.edited = append(f.edited, p)
	return &models.Message{ID: p.MessageID}, nil
}

func (f *fakeAPI) DeleteMessage(_ context.Context, p *bot.DeleteMessageParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("delete:%v:%d", p.ChatID, p.MessageID)
	return f.deleteErr == nil, f.deleteErr
}

func (f *fakeAPI) AnswerCallbackQuery(_ context.Context, p *bot.AnswerCallbackQueryParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("answer:%s", p.CallbackQueryID)
	f.answered = append(f.answered, p)
	return true, nil
}

func (f *fakeAPI) GetChatAdministrators(_ context.Context, p *bot.GetChatAdministratorsParams) ([]models.ChatMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("admins:%v", p.ChatID)
	return f.admins, f.adminsErr
}

func (f *fakeAPI) GetChatMember(_ context.Context, p *bot.GetChatMemberParams) (*models.ChatMember, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("member:%v:%d", p.ChatID, p.UserID)
	if f.memberErr != nil {
		return nil, f.memberErr
	}
	if f.member == nil {
		return nil, fmt.Errorf("%w, Bad Request: chat not found", bot.ErrorBadRequest)
	}
	return f.member, nil
}

func (f *fakeAPI) SetMyCommands(context.Context, *bot.SetMyCommandsParams) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("commands")
	return true, nil
}

func (f *fakeAPI) callLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) textsTo(chatID int64) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for _, p := range f.sent {
		if p.ChatID.(int64) == chatID {
			out = append(out, p.Text)
		}
	}
	return out
}

// member decodes a chat member the way the Bot API sends it.
func member(t *testing.T, status string, userID int64, isBot bool) models.ChatMember {
	t.Helper()
	raw := fmt.Sprintf(`{"status": %q, "user": {"id": %d, "is_bot": %t, "first_name": "U%d"}}`, status, userID, isBot, userID)
	var m models.ChatMember
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	return m
}

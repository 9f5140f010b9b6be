package telegram

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"
	"github.com/samber/oops"

	apperrors "github.com/reshetovitsme/edit-audit-bot/internal/shared/errors"
	"github.com/reshetovitsme/edit-audit-bot/internal/shared/metrics"
)

// API is the subset of *bot.Bot the client calls.
type API interface {
	GetMe(ctx context.Context) (*models.User, error)
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
	EditMessageText(ctx context.Context, params *bot.EditMessageTextParams) (*models.Message, error)
	DeleteMessage(ctx context.Context, params *bot.DeleteMessageParams) (bool, error)
	AnswerCallbackQuery(ctx context.Context, params *bot.AnswerCallbackQueryParams) (bool, error)
	GetChatAdministrators(ctx context.Context, params *bot.GetChatAdministratorsParams) ([]models.ChatMember, error)
	GetChatMember(ctx context.Context, params *bot.GetChatMemberParams) (*models.ChatMember, error)
	SetMyCommands(ctx context.Context, params *bot.SetMyCommandsParams) (bool, error)
}

// Client wraps the bot API with a per call timeout, error classification
// and call metrics.
type Client struct {
	api     API
	timeout time.Duration
	metrics *metrics.Metrics

	mu sync.Mutex
	me *models.User
}

// NewClient creates a new platform client
func NewClient(api API, timeout time.Duration, m *metrics.Metrics) *Client {
	return &Client{api: api, timeout: timeout, metrics: m}
}

// call runs fn under the request timeout and classifies its error.
func (c *Client) call(ctx context.Context, method string, fn func(ctx context.Context) error) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	err := Classify(fn(ctx))
	c.metrics.PlatformCalls.WithLabelValues(method, resultLabel(err)).Inc()
	if err != nil {
		return oops.In("telegram").With("method", method).Wrap(err)
	}
	return nil
}

// Publish sends a plain text message and returns its id.
func (c *Client) Publish(ctx context.Context, chatID int64, text string) (int64, error) {
	var id int64
	err := c.call(ctx, "sendMessage", func(ctx context.Context) error {
		msg, err := c.api.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:             chatID,
			Text:               text,
			LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: bot.True()},
		})
		if err != nil {
			return err
		}
		id = int64(msg.ID)
		return nil
	})
	return id, err
}

// Reply sends a dialog message, optionally with an inline keyboard.
func (c *Client) Reply(ctx context.Context, chatID int64, text string, markup *models.InlineKeyboardMarkup) error {
	return c.call(ctx, "sendMessage", func(ctx context.Context) error {
		params := &bot.SendMessageParams{ChatID: chatID, Text: text}
		if markup != nil {
			params.ReplyMarkup = markup
		}
		_, err := c.api.SendMessage(ctx, params)
		return err
	})
}

// EditText replaces the text and keyboard of a dialog message.
func (c *Client) EditText(ctx context.Context, chatID int64, messageID int, text string, markup *models.InlineKeyboardMarkup) error {
	return c.call(ctx, "editMessageText", func(ctx context.Context) error {
		params := &bot.EditMessageTextParams{ChatID: chatID, MessageID: messageID, Text: text}
		if markup != nil {
			params.ReplyMarkup = markup
		}
		_, err := c.api.EditMessageText(ctx, params)
		return err
	})
}

func (c *Client) AnswerCallback(ctx context.Context, callbackID, text string) error {
	return c.call(ctx, "answerCallbackQuery", func(ctx context.Context) error {
		_, err := c.api.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
			CallbackQueryID: callbackID,
			Text:            text,
		})
		return err
	})
}

// Delete removes a message from a chat.
func (c *Client) Delete(ctx context.Context, chatID, messageID int64) error {
	return c.call(ctx, "deleteMessage", func(ctx context.Context) error {
		_, err := c.api.DeleteMessage(ctx, &bot.DeleteMessageParams{ChatID: chatID, MessageID: int(messageID)})
		return err
	})
}

// ChatAdministrators returns the ids of the human administrators of a chat.
func (c *Client) ChatAdministrators(ctx context.Context, chatID int64) ([]int64, error) {
	var members []models.ChatMember
	err := c.call(ctx, "getChatAdministrators", func(ctx context.Context) error {
		var err error
		members, err = c.api.GetChatAdministrators(ctx, &bot.GetChatAdministratorsParams{ChatID: chatID})
		return err
	})
	if err != nil {
		return nil, err
	}

	return lo.FilterMap(members, func(m models.ChatMember, _ int) (int64, bool) {
		switch {
		case m.Owner != nil:
			return m.Owner.User.ID, !m.Owner.User.IsBot
		case m.Administrator != nil:
			return m.Administrator.User.ID, !m.Administrator.User.IsBot
		default:
			return 0, false
		}
	}), nil
}

// IsBotAdmin reports whether the bot administers the chat. A chat the bot
// cannot see, such as a channel it was never added to, yields false.
// Only transient failures are returned as errors.
func (c *Client) IsBotAdmin(ctx context.Context, chatID int64) (bool, error) {
	me, err := c.Me(ctx)
	if err != nil {
		return false, err
	}

	var member *models.ChatMember
	err = c.call(ctx, "getChatMember", func(ctx context.Context) error {
		var err error
		member, err = c.api.GetChatMember(ctx, &bot.GetChatMemberParams{ChatID: chatID, UserID: me.ID})
		return err
	})
	if errors.Is(err, apperrors.ErrTransient) {
		return false, err
	}
	if err != nil {
		slog.Debug("Bot membership unavailable", "chat_id", chatID, "error", err)
		return false, nil
	}
	return member.Owner != nil || member.Administrator != nil, nil
}

// Me returns the bot's own user, fetched once.
func (c *Client) Me(ctx context.Context) (*models.User, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.me != nil {
		return c.me, nil
	}

	err := c.call(ctx, "getMe", func(ctx context.Context) error {
		me, err := c.api.GetMe(ctx)
		if err != nil {
			return err
		}
		c.me = me
		return nil
	})
	return c.me, err
}

// SetCommands publishes the private chat command list.
func (c *Client) SetCommands(ctx context.Context) error {
	return c.call(ctx, "setMyCommands", func(ctx context.Context) error {
		_, err := c.api.SetMyCommands(ctx, &bot.SetMyCommandsParams{
			Commands: []models.BotCommand{
				{Command: "start", Description: "What this bot does"},
				{Command: "chats", Description: "Configure your chats"},
				{Command: "cancel", Description: "Cancel the current step"},
				{Command: "help", Description: "Show help"},
			},
		})
		return err
	})
}

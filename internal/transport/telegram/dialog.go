package telegram

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot/models"
	"github.com/samber/lo"

	chatDomain "github.com/reshetovitsme/edit-audit-bot/internal/modules/chat/domain"
	setupDomain "github.com/reshetovitsme/edit-audit-bot/internal/modules/setup/domain"
	apperrors "github.com/reshetovitsme/edit-audit-bot/internal/shared/errors"
)

const startText = `👋 I keep a record of edited messages in your groups.

When a member edits a message, I post the original and the edited text to the audit channel you choose and remove the edited message from the group. Edits by administrators and moderators are left alone.

Setup:
1. Add me to the group as an administrator allowed to delete messages.
2. Add me to the audit channel as an administrator allowed to post.
3. Send /chats here, pick the group and forward any post from the channel.

Commands:
/chats - Configure your chats
/cancel - Cancel the current step
/help - Show this message`

// target is where a dialog screen is shown: a new message when
// messageID is 0, otherwise an edit of an existing one.
type target struct {
	chatID    int64
	messageID int
}

type screen struct {
	text   string
	markup *models.InlineKeyboardMarkup
}

func (h *Handler) show(ctx context.Context, t target, s screen) error {
	if t.messageID != 0 {
		return h.client.EditText(ctx, t.chatID, t.messageID, s.text, s.markup)
	}
	return h.client.Reply(ctx, t.chatID, s.text, s.markup)
}

func (h *Handler) say(ctx context.Context, chatID int64, text string) error {
	return h.client.Reply(ctx, chatID, text, nil)
}

func (h *Handler) handleCommand(ctx context.Context, ev *Event) error {
	msg := ev.Update.Message
	userID := msg.From.ID
	command, _, _ := strings.Cut(strings.Fields(msg.Text)[0], "@")

	switch command {
	case "/start", "/help":
		return h.say(ctx, msg.Chat.ID, startText)
	case "/chats":
		s, err := h.chatsScreen(ctx, userID)
		if err != nil {
			return err
		}
		return h.show(ctx, target{chatID: msg.Chat.ID}, s)
	case "/cancel":
		h.setup.Cancel(userID)
		return h.say(ctx, msg.Chat.ID, "Cancelled.")
	default:
		return h.say(ctx, msg.Chat.ID, "Unknown command. Send /help for the list of commands.")
	}
}

func (h *Handler) handleChannelSetup(ctx context.Context, ev *Event) error {
	msg := ev.Update.Message
	conf, err := h.setup.RegisterChannel(ctx, msg.From.ID, ev.Origin())
	if err != nil {
		reply, known := setupErrorText(err)
		if sendErr := h.say(ctx, msg.Chat.ID, reply); sendErr != nil {
			return sendErr
		}
		if known {
			return nil
		}
		return err
	}

	text := fmt.Sprintf("✅ Audit channel set to “%s” (%d).", conf.ChannelTitle, conf.ChannelID)
	if conf.Replaced != nil {
		text += fmt.Sprintf("\nIt replaces “%s” (%d).", conf.Replaced.ChannelTitle, conf.Replaced.ChannelID)
	}
	if err := h.say(ctx, msg.Chat.ID, text); err != nil {
		return err
	}

	s, err := h.chatScreen(ctx, conf.ChatID)
	if err != nil {
		return err
	}
	return h.show(ctx, target{chatID: msg.Chat.ID}, s)
}

func (h *Handler) handleNomination(ctx context.Context, ev *Event) error {
	msg := ev.Update.Message
	nom, err := h.setup.NominateModerator(ctx, msg.From.ID, ev.Origin())
	if err != nil {
		reply, known := setupErrorText(err)
		if sendErr := h.say(ctx, msg.Chat.ID, reply); sendErr != nil {
			return sendErr
		}
		if known {
			return nil
		}
		return err
	}

	name := lo.Ternary(nom.Name != "", nom.Name, strconv.FormatInt(nom.UserID, 10))
	text := fmt.Sprintf("✅ %s is now a moderator.", name)
	if !nom.Added {
		text = fmt.Sprintf("%s already is a moderator.", name)
	}
	if err := h.say(ctx, msg.Chat.ID, text); err != nil {
		return err
	}

	s, err := h.moderatorsScreen(ctx, nom.ChatID)
	if err != nil {
		return err
	}
	return h.show(ctx, target{chatID: msg.Chat.ID}, s)
}

func (h *Handler) handleGraceInput(ctx context.Context, ev *Event) error {
	msg := ev.Update.Message
	chatID, minutes, err := h.setup.SetGrace(ctx, msg.From.ID, msg.Text)
	if err != nil {
		reply, known := setupErrorText(err)
		if sendErr := h.say(ctx, msg.Chat.ID, reply); sendErr != nil {
			return sendErr
		}
		if known {
			return nil
		}
		return err
	}

	if err := h.say(ctx, msg.Chat.ID, fmt.Sprintf("✅ Edit grace set to %d min.", minutes)); err != nil {
		return err
	}
	s, err := h.chatScreen(ctx, chatID)
	if err != nil {
		return err
	}
	return h.show(ctx, target{chatID: msg.Chat.ID}, s)
}

func (h *Handler) handlePrivateFallback(ctx context.Context, ev *Event) error {
	return h.say(ctx, ev.Update.Message.Chat.ID, "Send /chats to configure your chats or /help to learn what I do.")
}

// setupErrorText returns the user facing text of a dialog error and
// whether the error is an expected rejection.
func setupErrorText(err error) (string, bool) {
	switch {
	case errors.Is(err, apperrors.ErrNoSelectedChat):
		return "Choose a chat with /chats first.", true
	case errors.Is(err, apperrors.ErrNotChannelOrigin):
		return "❌ This message is not forwarded from a channel. Forward any post from the audit channel.", true
	case errors.Is(err, apperrors.ErrNotUserOrigin):
		return "❌ I can't see who wrote this message. Forward a message written by the user; their privacy settings may hide them.", true
	case errors.Is(err, apperrors.ErrBotNotChannelAdmin):
		return "❌ I am not an administrator of that channel. Add me with the right to post messages and forward the post again.", true
	case errors.Is(err, apperrors.ErrUnauthorized):
		return "❌ You are not an administrator of this chat.", true
	case errors.Is(err, apperrors.ErrInvalidEditGrace):
		return fmt.Sprintf("❌ Send a whole number of minutes from 0 to %d.", chatDomain.MaxEditGraceMinutes), true
	default:
		return "❌ Something went wrong. Please try again later.", false
	}
}

func (h *Handler) handleCallback(ctx context.Context, ev *Event) error {
	cq := ev.Update.CallbackQuery
	userID := cq.From.ID

	t := target{chatID: userID}
	if m := cq.Message.Message; m != nil {
		t = target{chatID: m.Chat.ID, messageID: m.ID}
	}

	answer, err := h.callback(ctx, userID, cq.Data, t)
	if errors.Is(err, apperrors.ErrUnauthorized) {
		answer, err = "You are not an administrator of this chat.", nil
	}
	if ansErr := h.client.AnswerCallback(ctx, cq.ID, answer); ansErr != nil && err == nil {
		err = ansErr
	}
	return err
}

// callback runs one button press. Data is "action:chatID[:arg]".
func (h *Handler) callback(ctx context.Context, userID int64, data string, t target) (string, error) {
	action, chatID, arg, ok := parseCallback(data)
	if !ok {
		return "Unknown action", nil
	}

	if action == "back" {
		s, err := h.chatsScreen(ctx, userID)
		if err != nil {
			return "", err
		}
		return "", h.show(ctx, t, s)
	}

	if action == "chat" {
		if err := h.setup.Expect(ctx, userID, chatID, setupDomain.AwaitingNothing); err != nil {
			return "", err
		}
		return "", h.renderChat(ctx, t, chatID)
	}
	if err := h.setup.Authorize(ctx, userID, chatID); err != nil {
		return "", err
	}

	switch action {
	case "bind":
		if err := h.setup.Expect(ctx, userID, chatID, setupDomain.AwaitingChannel); err != nil {
			return "", err
		}
		return "", h.say(ctx, userID, "Forward any post from the audit channel to me. I must be an administrator of that channel.")

	case "unbind":
		if _, err := h.setup.Unbind(ctx, userID, chatID); err != nil {
			return "", err
		}
		return "Audit channel removed", h.renderChat(ctx, t, chatID)

	case "del":
		enabled, err := h.chats.ToggleDelete(ctx, chatID)
		if err != nil {
			return "", err
		}
		return lo.Ternary(enabled, "Edited messages will be deleted", "Edited messages will be kept"), h.renderChat(ctx, t, chatID)

	case "grace":
		chat, err := h.chats.Get(ctx, chatID)
		if err != nil {
			return "", err
		}
		return "", h.show(ctx, t, graceScreen(chat))

	case "gset":
		minutes, err := strconv.Atoi(arg)
		if err != nil {
			return "Unknown action", nil
		}
		if err := h.chats.SetEditGrace(ctx, chatID, minutes); err != nil {
			if errors.Is(err, apperrors.ErrInvalidEditGrace) {
				return "Invalid value", nil
			}
			return "", err
		}
		return fmt.Sprintf("Edit grace: %d min", minutes), h.renderChat(ctx, t, chatID)

	case "gcustom":
		if err := h.setup.Expect(ctx, userID, chatID, setupDomain.AwaitingEditGrace); err != nil {
			return "", err
		}
		return "", h.say(ctx, userID, fmt.Sprintf("Send the edit grace in minutes, 0 to %d. Edits made within this time after sending are ignored.", chatDomain.MaxEditGraceMinutes))

	case "mods":
		s, err := h.moderatorsScreen(ctx, chatID)
		if err != nil {
			return "", err
		}
		return "", h.show(ctx, t, s)

	case "madd":
		if err := h.setup.Expect(ctx, userID, chatID, setupDomain.AwaitingModerator); err != nil {
			return "", err
		}
		return "", h.say(ctx, userID, "Forward any message written by the new moderator.")

	case "mrm":
		modID, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return "Unknown action", nil
		}
		if _, err := h.moderators.Remove(ctx, chatID, modID); err != nil {
			return "", err
		}
		s, err := h.moderatorsScreen(ctx, chatID)
		if err != nil {
			return "", err
		}
		return "Moderator removed", h.show(ctx, t, s)
	}

	return "Unknown action", nil
}

func (h *Handler) renderChat(ctx context.Context, t target, chatID int64) error {
	s, err := h.chatScreen(ctx, chatID)
	if err != nil {
		return err
	}
	return h.show(ctx, t, s)
}

func parseCallback(data string) (action string, chatID int64, arg string, ok bool) {
	parts := strings.SplitN(data, ":", 3)
	action = parts[0]
	if action == "back" {
		return action, 0, "", true
	}
	if len(parts) < 2 {
		return "", 0, "", false
	}
	chatID, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return "", 0, "", false
	}
	if len(parts) == 3 {
		arg = parts[2]
	}
	return action, chatID, arg, true
}

func callbackData(action string, chatID int64, arg ...any) string {
	data := fmt.Sprintf("%s:%d", action, chatID)
	for _, a := range arg {
		data += fmt.Sprintf(":%v", a)
	}
	return data
}

func button(text, data string) models.InlineKeyboardButton {
	return models.InlineKeyboardButton{Text: text, CallbackData: data}
}

func (h *Handler) chatsScreen(ctx context.Context, userID int64) (screen, error) {
	chats, err := h.chats.ChatsFor(ctx, userID, h.cfg.IsOwner(userID))
	if err != nil {
		return screen{}, err
	}
	if len(chats) == 0 {
		return screen{text: "You have no chats to configure yet. Add me to a group as an administrator first."}, nil
	}

	rows := lo.Map(chats, func(c chatDomain.Chat, _ int) []models.InlineKeyboardButton {
		return []models.InlineKeyboardButton{button(lo.Ternary(c.Title != "", c.Title, strconv.FormatInt(c.ChatID, 10)), callbackData("chat", c.ChatID))}
	})
	return screen{
		text:   "Choose a chat to configure:",
		markup: &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	}, nil
}

func (h *Handler) chatScreen(ctx context.Context, chatID int64) (screen, error) {
	chat, err := h.chats.Get(ctx, chatID)
	if err != nil {
		return screen{}, err
	}

	channel := "not set"
	bound := false
	binding, err := h.bindings.Lookup(ctx, chatID)
	switch {
	case err == nil:
		channel = fmt.Sprintf("%s (%d)", binding.ChannelTitle, binding.ChannelID)
		bound = true
	case !errors.Is(err, apperrors.ErrBindingNotFound):
		return screen{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "⚙️ %s\n\n", chat.Title)
	fmt.Fprintf(&b, "Audit channel: %s\n", channel)
	fmt.Fprintf(&b, "Delete edited messages: %s\n", lo.Ternary(chat.DeleteEnabled, "on", "off"))
	fmt.Fprintf(&b, "Edit grace: %d min", chat.EditGraceMinutes)

	channelRow := []models.InlineKeyboardButton{button(lo.Ternary(bound, "📢 Change audit channel", "📢 Set audit channel"), callbackData("bind", chatID))}
	if bound {
		channelRow = append(channelRow, button("Unbind", callbackData("unbind", chatID)))
	}

	return screen{
		text: b.String(),
		markup: &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
			channelRow,
			{button(lo.Ternary(chat.DeleteEnabled, "🗑 Deletion: on", "🗑 Deletion: off"), callbackData("del", chatID))},
			{button(fmt.Sprintf("⏱ Edit grace: %d min", chat.EditGraceMinutes), callbackData("grace", chatID))},
			{button("👮 Moderators", callbackData("mods", chatID))},
			{button("« Back", "back")},
		}},
	}, nil
}

func graceScreen(chat *chatDomain.Chat) screen {
	presets := lo.Map(chatDomain.EditGracePresets, func(m int, _ int) models.InlineKeyboardButton {
		label := fmt.Sprintf("%d", m)
		if m == chat.EditGraceMinutes {
			label = "• " + label
		}
		return button(label, callbackData("gset", chat.ChatID, m))
	})

	return screen{
		text: "Edits made within this many minutes after sending are ignored. 0 audits every edit.",
		markup: &models.InlineKeyboardMarkup{InlineKeyboard: [][]models.InlineKeyboardButton{
			presets,
			{button("Enter manually", callbackData("gcustom", chat.ChatID))},
			{button("« Back", callbackData("chat", chat.ChatID))},
		}},
	}
}

func (h *Handler) moderatorsScreen(ctx context.Context, chatID int64) (screen, error) {
	mods, err := h.moderators.List(ctx, chatID)
	if err != nil {
		return screen{}, err
	}

	text := "Moderators' edits are not audited."
	if len(mods) == 0 {
		text += "\nNo moderators yet."
	} else {
		text += "\nPress a name to remove the moderator."
	}

	rows := make([][]models.InlineKeyboardButton, 0, len(mods)+2)
	for _, m := range mods {
		name := lo.Ternary(m.Username != "", m.Username, strconv.FormatInt(m.UserID, 10))
		rows = append(rows, []models.InlineKeyboardButton{button("❌ "+name, callbackData("mrm", chatID, m.UserID))})
	}
	rows = append(rows,
		[]models.InlineKeyboardButton{button("➕ Add moderator", callbackData("madd", chatID))},
		[]models.InlineKeyboardButton{button("« Back", callbackData("chat", chatID))},
	)

	return screen{text: text, markup: &models.InlineKeyboardMarkup{InlineKeyboard: rows}}, nil
}

package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"

	bindingService "github.com/reshetovitsme/edit-audit-bot/internal/modules/binding/service"
	chatService "github.com/reshetovitsme/edit-audit-bot/internal/modules/chat/service"
	moderatorService "github.com/reshetovitsme/edit-audit-bot/internal/modules/moderator/service"
	monitorService "github.com/reshetovitsme/edit-audit-bot/internal/modules/monitor/service"
	setupDomain "github.com/reshetovitsme/edit-audit-bot/internal/modules/setup/domain"
	setupService "github.com/reshetovitsme/edit-audit-bot/internal/modules/setup/service"
	"github.com/reshetovitsme/edit-audit-bot/internal/shared/config"
	"github.com/reshetovitsme/edit-audit-bot/internal/shared/metrics"
)

// Handler dispatches Telegram updates to the bot's services
type Handler struct {
	cfg        *config.Config
	client     *Client
	monitor    *monitorService.Service
	chats      *chatService.Service
	bindings   *bindingService.Service
	moderators *moderatorService.Service
	setup      *setupService.Service
	metrics    *metrics.Metrics
	routes     []route
}

// route handles the updates its match accepts. Routes are tried in
// order and only the first match runs.
type route struct {
	name   string
	match  func(ev *Event) bool
	handle func(ctx context.Context, ev *Event) error
}

// New creates a new Telegram handler
func New(
	cfg *config.Config,
	client *Client,
	monitor *monitorService.Service,
	chats *chatService.Service,
	bindings *bindingService.Service,
	moderators *moderatorService.Service,
	setup *setupService.Service,
	m *metrics.Metrics,
) *Handler {
	h := &Handler{
		cfg:        cfg,
		client:     client,
		monitor:    monitor,
		chats:      chats,
		bindings:   bindings,
		moderators: moderators,
		setup:      setup,
		metrics:    m,
	}
	h.routes = h.buildRoutes()
	return h
}

func (h *Handler) buildRoutes() []route {
	return []route{
		{"edited_message", func(ev *Event) bool { return ev.Update.EditedMessage != nil }, h.handleEdit},
		{"my_chat_member", func(ev *Event) bool { return ev.Update.MyChatMember != nil }, h.handleMembership},
		{"callback", func(ev *Event) bool { return ev.Update.CallbackQuery != nil }, h.handleCallback},
		{"command", func(ev *Event) bool {
			msg := privateMessage(ev)
			return msg != nil && strings.HasPrefix(msg.Text, "/")
		}, h.handleCommand},
		// Channel setup must stay ahead of moderator nomination.
		{"channel_setup", func(ev *Event) bool {
			return h.forwardRoute(ev) == setupDomain.ForwardRouteChannelSetup
		}, h.handleChannelSetup},
		{"moderator_nomination", func(ev *Event) bool {
			return h.forwardRoute(ev) == setupDomain.ForwardRouteModerator
		}, h.handleNomination},
		{"edit_grace_input", func(ev *Event) bool {
			msg := privateMessage(ev)
			return msg != nil && msg.Text != "" &&
				h.setup.Session(msg.From.ID).Awaiting == setupDomain.AwaitingEditGrace
		}, h.handleGraceInput},
		{"group_message", func(ev *Event) bool {
			msg := ev.Update.Message
			return msg != nil && isGroup(msg.Chat.Type)
		}, h.handleGroupMessage},
		{"private_message", func(ev *Event) bool { return privateMessage(ev) != nil }, h.handlePrivateFallback},
	}
}

// HandleUpdate processes one update. Failures and panics are logged and
// never escape.
func (h *Handler) HandleUpdate(ctx context.Context, ev Event) {
	if ev.Update == nil {
		return
	}
	kind := ev.Kind()
	h.metrics.UpdatesReceived.WithLabelValues(kind).Inc()

	log := slog.With(
		"correlation_id", uuid.NewString(),
		"update_id", ev.Update.ID,
		"kind", kind,
		"chat_id", ev.ChatKey())
	log.Debug("Update received")

	current := "match"
	defer func() {
		if rec := recover(); rec != nil {
			h.metrics.RouteErrors.WithLabelValues(current).Inc()
			log.Error("Update handler panicked",
				"route", current,
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()))
		}
	}()

	for _, r := range h.routes {
		if !r.match(&ev) {
			continue
		}
		current = r.name
		if err := r.handle(ctx, &ev); err != nil {
			h.metrics.RouteErrors.WithLabelValues(r.name).Inc()
			log.Error("Update handler failed", "route", r.name, "error", err)
		}
		return
	}
	log.Debug("Update ignored")
}

func (h *Handler) forwardRoute(ev *Event) setupDomain.ForwardRoute {
	msg := privateMessage(ev)
	if msg == nil {
		return setupDomain.ForwardRouteNone
	}
	return h.setup.Route(msg.From.ID, ev.Origin())
}

func (h *Handler) handleEdit(ctx context.Context, ev *Event) error {
	h.monitor.HandleEdit(ctx, editEvent(ev.Update.EditedMessage))
	return nil
}

func (h *Handler) handleGroupMessage(_ context.Context, ev *Event) error {
	h.monitor.Observe(snapshotOf(ev.Update.Message))
	return nil
}

// handleMembership tracks the bot's own status in groups and channels.
func (h *Handler) handleMembership(ctx context.Context, ev *Event) error {
	upd := ev.Update.MyChatMember
	chat := upd.Chat
	isAdmin := isAdminMember(upd.NewChatMember)
	wasAdmin := isAdminMember(upd.OldChatMember)

	if chat.Type == models.ChatTypeChannel {
		if isAdmin {
			return nil
		}
		n, err := h.bindings.ChannelLost(ctx, chat.ID)
		if err != nil {
			return err
		}
		slog.Info("Bot lost access to channel", "channel_id", chat.ID, "bindings_deactivated", n)
		return nil
	}

	if !isGroup(chat.Type) {
		return nil
	}

	if !isAdmin {
		if err := h.chats.Deactivate(ctx, chat.ID); err != nil {
			return err
		}
		_, err := h.bindings.Unbind(ctx, chat.ID)
		return err
	}

	set, err := h.chats.Register(ctx, chat.ID, chat.Title, string(chat.Type))
	if err != nil {
		return err
	}
	if wasAdmin {
		return nil
	}

	text := fmt.Sprintf("I am now an administrator of “%s”.\nUse /chats to choose the channel that receives edited messages.", chat.Title)
	for _, adminID := range set.UserIDs {
		if err := h.client.Reply(ctx, adminID, text, nil); err != nil {
			slog.Debug("Failed to notify chat administrator", "chat_id", chat.ID, "user_id", adminID, "error", err)
		}
	}
	return nil
}

func privateMessage(ev *Event) *models.Message {
	msg := ev.Update.Message
	if msg == nil || msg.From == nil || msg.Chat.Type != models.ChatTypePrivate {
		return nil
	}
	return msg
}

func isGroup(t models.ChatType) bool {
	return t == models.ChatTypeGroup || t == models.ChatTypeSupergroup
}

func isAdminMember(m models.ChatMember) bool {
	return m.Owner != nil || m.Administrator != nil
}

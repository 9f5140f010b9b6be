package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	auditDomain "github.com/reshetovitsme/edit-audit-bot/internal/modules/audit/domain"
	bindingDomain "github.com/reshetovitsme/edit-audit-bot/internal/modules/binding/domain"
	chatDomain "github.com/reshetovitsme/edit-audit-bot/internal/modules/chat/domain"
	messageDomain "github.com/reshetovitsme/edit-audit-bot/internal/modules/message/domain"
	"github.com/reshetovitsme/edit-audit-bot/internal/modules/monitor/domain"
	apperrors "github.com/reshetovitsme/edit-audit-bot/internal/shared/errors"
	"github.com/reshetovitsme/edit-audit-bot/internal/shared/metrics"
)

// Platform is the part of the bot API the monitor needs.
type Platform interface {
	Publish(ctx context.Context, chatID int64, text string) (int64, error)
	Delete(ctx context.Context, chatID, messageID int64) error
}

type BindingLookup interface {
	Lookup(ctx context.Context, chatID int64) (*bindingDomain.Binding, error)
}

type ChatSettings interface {
	Get(ctx context.Context, chatID int64) (*chatDomain.Chat, error)
	IsAdmin(ctx context.Context, chatID, userID int64) (bool, error)
}

type ModeratorCheck interface {
	IsModerator(ctx context.Context, chatID, userID int64) (bool, error)
}

type MessageStore interface {
	Remember(snapshot messageDomain.Snapshot)
	Original(chatID, messageID int64) (messageDomain.Snapshot, bool)
	Replace(snapshot messageDomain.Snapshot)
	Forget(chatID, messageID int64)
}

type AuditSink interface {
	Record(ctx context.Context, record *auditDomain.Record)
}

// Service audits edited group messages: it publishes a before/after copy
// to the chat's audit channel and then removes the edited message.
type Service struct {
	bindings   BindingLookup
	chats      ChatSettings
	moderators ModeratorCheck
	messages   MessageStore
	audit      AuditSink
	platform   Platform
	metrics    *metrics.Metrics
}

// New creates a new monitor service
func New(
	bindings BindingLookup,
	chats ChatSettings,
	moderators ModeratorCheck,
	messages MessageStore,
	audit AuditSink,
	platform Platform,
	m *metrics.Metrics,
) *Service {
	return &Service{
		bindings:   bindings,
		chats:      chats,
		moderators: moderators,
		messages:   messages,
		audit:      audit,
		platform:   platform,
		metrics:    m,
	}
}

// Observe caches a new group message so a later edit can show what was
// originally sent.
func (s *Service) Observe(snapshot messageDomain.Snapshot) {
	s.messages.Remember(snapshot)
}

// HandleEdit processes one edit event. It never returns an error: every
// failure ends the event and is reported in the result.
func (s *Service) HandleEdit(ctx context.Context, ev domain.EditEvent) domain.Result {
	start := time.Now()
	res := s.handle(ctx, ev)

	s.metrics.EditsProcessed.WithLabelValues(res.Outcome.String()).Inc()
	s.metrics.EditHandleTiming.Observe(time.Since(start).Seconds())

	if res.Outcome != domain.OutcomeIgnored && !res.Deleted {
		s.messages.Replace(snapshotOf(ev))
	}
	return res
}

func (s *Service) handle(ctx context.Context, ev domain.EditEvent) domain.Result {
	log := slog.With("chat_id", ev.ChatID, "message_id", ev.MessageID, "user_id", ev.EditorID)

	if !isGroup(ev.ChatType) || ev.EditorIsBot {
		return domain.Result{Outcome: domain.OutcomeIgnored}
	}

	binding, err := s.bindings.Lookup(ctx, ev.ChatID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrBindingNotFound) {
			log.Error("Failed to look up channel binding", "error", err)
			return domain.Result{Outcome: domain.OutcomeNoBinding, Err: err}
		}
		log.Debug("Edit in chat without audit channel")
		return domain.Result{Outcome: domain.OutcomeNoBinding}
	}
	res := domain.Result{ChannelID: binding.ChannelID}

	exempt, err := s.isExempt(ctx, ev.ChatID, ev.EditorID)
	if err != nil {
		log.Error("Failed to resolve edit exemption, event dropped", "error", err)
		res.Outcome = domain.OutcomeExemptionError
		res.Err = err
		return res
	}
	if exempt {
		log.Debug("Edit by exempt user")
		res.Outcome = domain.OutcomeExempt
		return res
	}

	settings := s.settings(ctx, ev.ChatID)
	if !graceElapsed(ev, settings.EditGrace()) {
		log.Debug("Edit within grace window", "grace_minutes", settings.EditGraceMinutes)
		res.Outcome = domain.OutcomeWithinGrace
		return res
	}

	original, known := s.messages.Original(ev.ChatID, ev.MessageID)
	res.OriginalKnown = known
	if !known {
		s.metrics.PlaceholderUsed.Inc()
	}

	record := &auditDomain.Record{
		ChatID:        ev.ChatID,
		ChannelID:     binding.ChannelID,
		MessageID:     ev.MessageID,
		EditorID:      ev.EditorID,
		EditorName:    ev.EditorName,
		OriginalText:  original.Text,
		OriginalKnown: known,
		EditedText:    ev.EditedText,
		MediaKind:     string(ev.Media),
	}

	text := Compose(ev, original.Text, known, settings.DeleteEnabled)
	if _, err := s.platform.Publish(ctx, binding.ChannelID, text); err != nil {
		log.Error("Failed to publish audit copy, message left in place",
			"channel_id", binding.ChannelID,
			"error", err)
		res.Outcome = domain.OutcomePublishFailed
		res.Err = err
		record.Error = "publish: " + err.Error()
		s.audit.Record(ctx, record)
		return res
	}
	res.Published = true
	record.Published = true

	if settings.DeleteEnabled {
		res.DeleteAttempted = true
		if err := s.platform.Delete(ctx, ev.ChatID, ev.MessageID); err != nil {
			log.Warn("Failed to delete edited message", "error", err)
			s.metrics.DeleteFailures.Inc()
			record.Error = "delete: " + err.Error()
		} else {
			res.Deleted = true
			record.Deleted = true
			s.messages.Forget(ev.ChatID, ev.MessageID)
		}
	}

	s.audit.Record(ctx, record)
	log.Info("Edit audited",
		"channel_id", binding.ChannelID,
		"original_known", known,
		"deleted", res.Deleted)

	res.Outcome = domain.OutcomeAudited
	return res
}

func (s *Service) isExempt(ctx context.Context, chatID, userID int64) (bool, error) {
	admin, err := s.chats.IsAdmin(ctx, chatID, userID)
	if err != nil {
		return false, err
	}
	if admin {
		return true, nil
	}
	return s.moderators.IsModerator(ctx, chatID, userID)
}

// settings falls back to the defaults of a freshly registered chat.
func (s *Service) settings(ctx context.Context, chatID int64) chatDomain.Chat {
	chat, err := s.chats.Get(ctx, chatID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrChatNotFound) {
			slog.Warn("Failed to load chat settings, using defaults", "chat_id", chatID, "error", err)
		}
		return chatDomain.Chat{ChatID: chatID, DeleteEnabled: true}
	}
	return *chat
}

func snapshotOf(ev domain.EditEvent) messageDomain.Snapshot {
	return messageDomain.Snapshot{
		ChatID:    ev.ChatID,
		MessageID: ev.MessageID,
		AuthorID:  ev.EditorID,
		Text:      ev.EditedText,
		Media:     ev.Media,
		SentAt:    ev.SentAt,
	}
}

func isGroup(chatType string) bool {
	return chatType == "group" || chatType == "supergroup"
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/samber/oops"

	bindingDomain "github.com/reshetovitsme/edit-audit-bot/internal/modules/binding/domain"
	forwardDomain "github.com/reshetovitsme/edit-audit-bot/internal/modules/forward/domain"
	"github.com/reshetovitsme/edit-audit-bot/internal/modules/setup/domain"
	"github.com/reshetovitsme/edit-audit-bot/internal/modules/setup/repository"
	apperrors "github.com/reshetovitsme/edit-audit-bot/internal/shared/errors"
	"github.com/reshetovitsme/edit-audit-bot/internal/shared/metrics"
)

type Bindings interface {
	Bind(ctx context.Context, chatID, channelID int64, channelTitle string, createdBy int64) (*bindingDomain.Binding, error)
	Unbind(ctx context.Context, chatID int64) (bool, error)
}

type Chats interface {
	CanConfigure(ctx context.Context, chatID, userID int64, owner bool) (bool, error)
	SetEditGrace(ctx context.Context, chatID int64, minutes int) error
}

type Moderators interface {
	Add(ctx context.Context, chatID, userID int64, username string, addedBy int64) (bool, error)
}

// ChannelAccess checks the bot's own rights in a channel.
type ChannelAccess interface {
	IsBotAdmin(ctx context.Context, channelID int64) (bool, error)
}

type Owners interface {
	IsOwner(userID int64) bool
}

// forwardRule selects a handler for a forwarded message. Rules are tried
// in order and the first match wins.
type forwardRule struct {
	route domain.ForwardRoute
	match func(sess domain.Session, res forwardDomain.Result) bool
}

// Channel setup comes before moderator nomination: a forwarded channel
// post always configures the audit channel.
var forwardRules = []forwardRule{
	{domain.ForwardRouteChannelSetup, func(sess domain.Session, _ forwardDomain.Result) bool {
		return sess.Awaiting == domain.AwaitingChannel
	}},
	{domain.ForwardRouteChannelSetup, func(_ domain.Session, res forwardDomain.Result) bool {
		return res.Origin.Kind == forwardDomain.KindChannel
	}},
	{domain.ForwardRouteModerator, func(sess domain.Session, res forwardDomain.Result) bool {
		return sess.Awaiting == domain.AwaitingModerator && res.Origin.IsForwarded()
	}},
}

// Service runs the private configuration dialog: selecting a chat,
// binding its audit channel, nominating moderators and edit grace input.
type Service struct {
	sessions   repository.Repository
	bindings   Bindings
	chats      Chats
	moderators Moderators
	access     ChannelAccess
	owners     Owners
	metrics    *metrics.Metrics
	now        func() time.Time
}

// New creates a new setup service
func New(
	sessions repository.Repository,
	bindings Bindings,
	chats Chats,
	moderators Moderators,
	access ChannelAccess,
	owners Owners,
	m *metrics.Metrics,
) *Service {
	return &Service{
		sessions:   sessions,
		bindings:   bindings,
		chats:      chats,
		moderators: moderators,
		access:     access,
		owners:     owners,
		metrics:    m,
		now:        time.Now,
	}
}

// Session returns the user's dialog state; a missing session awaits nothing.
func (s *Service) Session(userID int64) domain.Session {
	sess, ok := s.sessions.Get(userID)
	if !ok {
		return domain.Session{UserID: userID, Awaiting: domain.AwaitingNothing}
	}
	return sess
}

// Authorize returns ErrUnauthorized unless userID may configure chatID.
func (s *Service) Authorize(ctx context.Context, userID, chatID int64) error {
	ok, err := s.chats.CanConfigure(ctx, chatID, userID, s.owners.IsOwner(userID))
	if err != nil {
		if errors.Is(err, apperrors.ErrChatNotFound) {
			return apperrors.ErrUnauthorized
		}
		return oops.In("setup").With("chat_id", chatID, "user_id", userID).Wrap(err)
	}
	if !ok {
		return apperrors.ErrUnauthorized
	}
	return nil
}

// Expect selects chatID for the user and records which input comes next.
func (s *Service) Expect(ctx context.Context, userID, chatID int64, awaiting domain.Awaiting) error {
	if err := s.Authorize(ctx, userID, chatID); err != nil {
		return err
	}
	s.sessions.Put(domain.Session{
		UserID:    userID,
		ChatID:    chatID,
		Awaiting:  awaiting,
		UpdatedAt: s.now(),
	})
	return nil
}

// Cancel drops the user's dialog state.
func (s *Service) Cancel(userID int64) {
	s.sessions.Delete(userID)
}

// Route picks the handler for a forwarded private message.
func (s *Service) Route(userID int64, res forwardDomain.Result) domain.ForwardRoute {
	sess := s.Session(userID)
	for _, rule := range forwardRules {
		if rule.match(sess, res) {
			return rule.route
		}
	}
	return domain.ForwardRouteNone
}

// RegisterChannel binds the user's selected chat to the channel the
// forwarded post came from. Nothing is written unless the origin is a
// channel the bot administers.
func (s *Service) RegisterChannel(ctx context.Context, userID int64, res forwardDomain.Result) (*domain.Confirmation, error) {
	sess := s.Session(userID)
	if !sess.HasChat() {
		return nil, s.reject("no_chat", apperrors.ErrNoSelectedChat)
	}
	if !res.Origin.IsChannel() {
		slog.Info("Channel setup rejected, forward is not from a channel",
			"user_id", userID,
			"kind", res.Origin.Kind,
			"format", res.Format)
		return nil, s.reject("not_channel", apperrors.ErrNotChannelOrigin)
	}

	if err := s.Authorize(ctx, userID, sess.ChatID); err != nil {
		if errors.Is(err, apperrors.ErrUnauthorized) {
			return nil, s.reject("unauthorized", err)
		}
		return nil, err
	}

	channelID := res.Origin.ChatID
	isAdmin, err := s.access.IsBotAdmin(ctx, channelID)
	if err != nil {
		return nil, oops.In("setup").With("channel_id", channelID).Wrapf(err, "checking bot rights in channel")
	}
	if !isAdmin {
		return nil, s.reject("bot_not_admin", apperrors.ErrBotNotChannelAdmin)
	}

	title := res.Origin.DisplayName()
	replaced, err := s.bindings.Bind(ctx, sess.ChatID, channelID, title, userID)
	if err != nil {
		return nil, err
	}
	s.metrics.BindingsRegistered.Inc()
	s.settle(sess)

	return &domain.Confirmation{
		ChatID:       sess.ChatID,
		ChannelID:    channelID,
		ChannelTitle: title,
		Replaced:     replaced,
	}, nil
}

// Unbind removes the audit channel of chatID.
func (s *Service) Unbind(ctx context.Context, userID, chatID int64) (bool, error) {
	if err := s.Authorize(ctx, userID, chatID); err != nil {
		return false, err
	}
	return s.bindings.Unbind(ctx, chatID)
}

// NominateModerator makes the author of a forwarded message a moderator
// of the user's selected chat.
func (s *Service) NominateModerator(ctx context.Context, userID int64, res forwardDomain.Result) (*domain.Nomination, error) {
	sess := s.Session(userID)
	if !sess.HasChat() {
		return nil, apperrors.ErrNoSelectedChat
	}
	if res.Origin.Kind != forwardDomain.KindUser || res.Origin.UserID == 0 {
		return nil, apperrors.ErrNotUserOrigin
	}
	if err := s.Authorize(ctx, userID, sess.ChatID); err != nil {
		return nil, err
	}

	added, err := s.moderators.Add(ctx, sess.ChatID, res.Origin.UserID, res.Origin.UserName, userID)
	if err != nil {
		return nil, err
	}
	s.settle(sess)

	return &domain.Nomination{
		ChatID: sess.ChatID,
		UserID: res.Origin.UserID,
		Name:   res.Origin.DisplayName(),
		Added:  added,
	}, nil
}

// SetGrace applies a typed edit grace value to the selected chat.
func (s *Service) SetGrace(ctx context.Context, userID int64, input string) (int64, int, error) {
	sess := s.Session(userID)
	if !sess.HasChat() {
		return 0, 0, apperrors.ErrNoSelectedChat
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return sess.ChatID, 0, apperrors.ErrInvalidEditGrace
	}
	if err := s.Authorize(ctx, userID, sess.ChatID); err != nil {
		return sess.ChatID, 0, err
	}
	if err := s.chats.SetEditGrace(ctx, sess.ChatID, minutes); err != nil {
		return sess.ChatID, 0, err
	}
	s.settle(sess)
	return sess.ChatID, minutes, nil
}

// settle keeps the selected chat but stops waiting for input.
func (s *Service) settle(sess domain.Session) {
	sess.Awaiting = domain.AwaitingNothing
	sess.UpdatedAt = s.now()
	s.sessions.Put(sess)
}

func (s *Service) reject(reason string, err error) error {
	s.metrics.SetupRejected.WithLabelValues(reason).Inc()
	return err
}

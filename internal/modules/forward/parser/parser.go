package parser

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/go-telegram/bot/models"
	"github.com/reshetovitsme/edit-audit-bot/internal/modules/forward/domain"
	"github.com/samber/oops"
)

const extraOriginKey = "forward_origin"

// forward_origin discriminators
const (
	originChannel    = "channel"
	originUser       = "user"
	originHiddenUser = "hidden_user"
	originChat       = "chat"
)

// extraction is one step of the ordered chain. ok=false passes the
// payload on to the next step.
type extraction struct {
	name    string
	format  domain.Format
	extract func(p domain.Payload) (domain.Origin, bool)
}

// chain is tried in order, first match wins. Complete legacy data beats
// the nested structure, which beats incomplete legacy data.
var chain = []extraction{
	{name: "legacy_channel", format: domain.FormatLegacy, extract: legacyChannel},
	{name: "forward_origin", format: domain.FormatOrigin, extract: nestedOrigin},
	{name: "legacy_user", format: domain.FormatLegacy, extract: legacyUser},
	{name: "legacy_partial", format: domain.FormatLegacy, extract: legacyPartial},
}

// Parse resolves the forward origin of a payload. It never fails:
// malformed or incomplete data degrades to KindUnknown.
func Parse(p domain.Payload) domain.Result {
	for _, step := range chain {
		if origin, ok := step.extract(p); ok {
			return domain.Result{Origin: origin, Format: step.format}
		}
	}
	return domain.Result{Origin: domain.Origin{Kind: domain.KindNone}, Format: domain.FormatNone}
}

// FromJSON decodes the forward fields of a raw message object.
func FromJSON(raw []byte) (domain.Payload, error) {
	var p domain.Payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return domain.Payload{}, oops.In("forward").With("context", "decoding message payload").Wrap(err)
	}
	return p, nil
}

// FromMessage rebuilds the payload from a typed message. The typed model
// only carries forward_origin, so the variant is re-serialized into the
// nested wire form.
func FromMessage(msg *models.Message) domain.Payload {
	var p domain.Payload
	if msg == nil || msg.ForwardOrigin == nil {
		return p
	}

	var variant any
	switch {
	case msg.ForwardOrigin.MessageOriginChannel != nil:
		variant = msg.ForwardOrigin.MessageOriginChannel
	case msg.ForwardOrigin.MessageOriginUser != nil:
		variant = msg.ForwardOrigin.MessageOriginUser
	case msg.ForwardOrigin.MessageOriginHiddenUser != nil:
		variant = msg.ForwardOrigin.MessageOriginHiddenUser
	case msg.ForwardOrigin.MessageOriginChat != nil:
		variant = msg.ForwardOrigin.MessageOriginChat
	default:
		p.ForwardOrigin = json.RawMessage(`{"type":"` + string(msg.ForwardOrigin.Type) + `"}`)
		return p
	}

	raw, err := json.Marshal(variant)
	if err != nil {
		p.ForwardOrigin = json.RawMessage(`{}`)
		return p
	}
	p.ForwardOrigin = raw
	return p
}

func legacyChannel(p domain.Payload) (domain.Origin, bool) {
	c := p.ForwardFromChat
	if c == nil || c.ID == nil || p.ForwardFromMessageID == 0 {
		return domain.Origin{}, false
	}
	if c.Type != "" && c.Type != string(models.ChatTypeChannel) {
		return domain.Origin{}, false
	}
	return domain.Origin{
		Kind:         domain.KindChannel,
		ChatID:       *c.ID,
		ChatTitle:    c.Title,
		ChatUsername: c.Username,
		MessageID:    p.ForwardFromMessageID,
		ForwardedAt:  unixTime(p.ForwardDate),
	}, true
}

func legacyUser(p domain.Payload) (domain.Origin, bool) {
	u := p.ForwardFrom
	if u == nil || u.ID == nil {
		return domain.Origin{}, false
	}
	return domain.Origin{
		Kind:        domain.KindUser,
		UserID:      *u.ID,
		UserName:    userName(u),
		ForwardedAt: unixTime(p.ForwardDate),
	}, true
}

// legacyPartial catches legacy forward data that was present but not
// usable, such as a chat without an id or a hidden sender name.
func legacyPartial(p domain.Payload) (domain.Origin, bool) {
	if p.ForwardFromChat == nil && p.ForwardFrom == nil && p.ForwardSenderName == "" && p.ForwardDate == 0 {
		return domain.Origin{}, false
	}
	origin := domain.Origin{
		Kind:        domain.KindUnknown,
		UserName:    p.ForwardSenderName,
		MessageID:   p.ForwardFromMessageID,
		ForwardedAt: unixTime(p.ForwardDate),
	}
	if c := p.ForwardFromChat; c != nil {
		origin.ChatTitle = c.Title
		origin.ChatUsername = c.Username
		if c.ID != nil {
			origin.ChatID = *c.ID
		}
	}
	return origin, true
}

func nestedOrigin(p domain.Payload) (domain.Origin, bool) {
	raw := originRaw(p)
	if raw == nil {
		return domain.Origin{}, false
	}

	var w domain.OriginWire
	if err := json.Unmarshal(raw, &w); err != nil {
		return domain.Origin{Kind: domain.KindUnknown}, true
	}

	origin := domain.Origin{
		Kind:        domain.KindUnknown,
		MessageID:   w.MessageID,
		ForwardedAt: unixTime(w.Date),
	}

	switch strings.ToLower(w.Type) {
	case originChannel:
		if w.Chat == nil {
			return origin, true
		}
		origin.ChatTitle = w.Chat.Title
		origin.ChatUsername = w.Chat.Username
		if w.Chat.ID == nil {
			return origin, true
		}
		origin.Kind = domain.KindChannel
		origin.ChatID = *w.Chat.ID
	case originUser:
		if w.SenderUser == nil {
			return origin, true
		}
		origin.UserName = userName(w.SenderUser)
		if w.SenderUser.ID == nil {
			return origin, true
		}
		origin.Kind = domain.KindUser
		origin.UserID = *w.SenderUser.ID
	case originHiddenUser:
		origin.UserName = w.SenderUserName
	case originChat:
		if w.SenderChat != nil {
			origin.ChatTitle = w.SenderChat.Title
			origin.ChatUsername = w.SenderChat.Username
			if w.SenderChat.ID != nil {
				origin.ChatID = *w.SenderChat.ID
			}
		}
	}

	return origin, true
}

// originRaw returns the nested structure, preferring the top level over
// the extension area. JSON null counts as absent.
func originRaw(p domain.Payload) json.RawMessage {
	for _, raw := range []json.RawMessage{p.ForwardOrigin, p.Extra[extraOriginKey]} {
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
			continue
		}
		return trimmed
	}
	return nil
}

func userName(u *domain.UserRef) string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" && u.Username != "" {
		name = "@" + u.Username
	}
	return name
}

func unixTime(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

package domain

import (
	"encoding/json"
	"time"
)

// Origin describes where a forwarded message came from. Zero values mean
// the field was not present in the payload.
type Origin struct {
	Kind         Kind
	ChatID       int64
	ChatTitle    string
	ChatUsername string
	MessageID    int64
	UserID       int64
	UserName     string
	ForwardedAt  time.Time
}

// IsForwarded reports whether any forward data was found.
func (o Origin) IsForwarded() bool {
	return o.Kind != "" && o.Kind != KindNone
}

// IsChannel reports whether the origin is a usable channel reference.
func (o Origin) IsChannel() bool {
	return o.Kind == KindChannel && o.ChatID != 0
}

// DisplayName is the best human readable name of the source.
func (o Origin) DisplayName() string {
	switch {
	case o.ChatTitle != "":
		return o.ChatTitle
	case o.ChatUsername != "":
		return "@" + o.ChatUsername
	case o.UserName != "":
		return o.UserName
	default:
		return ""
	}
}

// Result pairs the origin with the representation it was read from.
type Result struct {
	Origin Origin
	Format Format
}

// ChatRef is a chat as it appears inside forward fields.
type ChatRef struct {
	ID       *int64 `json:"id,omitempty"`
	Type     string `json:"type,omitempty"`
	Title    string `json:"title,omitempty"`
	Username string `json:"username,omitempty"`
}

// UserRef is a user as it appears inside forward fields.
type UserRef struct {
	ID        *int64 `json:"id,omitempty"`
	IsBot     bool   `json:"is_bot,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// Payload holds the forward related fields of an inbound message.
//
// The legacy fields sit at the top level of the message. forward_origin
// may appear at the top level or inside Extra, the area some relays use
// for fields their typed model does not know.
type Payload struct {
	ForwardFromChat      *ChatRef                   `json:"forward_from_chat,omitempty"`
	ForwardFromMessageID int64                      `json:"forward_from_message_id,omitempty"`
	ForwardFrom          *UserRef                   `json:"forward_from,omitempty"`
	ForwardSenderName    string                     `json:"forward_sender_name,omitempty"`
	ForwardDate          int64                      `json:"forward_date,omitempty"`
	ForwardOrigin        json.RawMessage            `json:"forward_origin,omitempty"`
	Extra                map[string]json.RawMessage `json:"extra,omitempty"`
}

// OriginWire is the nested forward_origin structure.
type OriginWire struct {
	Type           string   `json:"type"`
	Date           int64    `json:"date,omitempty"`
	Chat           *ChatRef `json:"chat,omitempty"`
	MessageID      int64    `json:"message_id,omitempty"`
	SenderUser     *UserRef `json:"sender_user,omitempty"`
	SenderUserName string   `json:"sender_user_name,omitempty"`
	SenderChat     *ChatRef `json:"sender_chat,omitempty"`
}

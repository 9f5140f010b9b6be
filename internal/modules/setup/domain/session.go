package domain

import (
	"time"

	bindingDomain "github.com/reshetovitsme/edit-audit-bot/internal/modules/binding/domain"
)

// Session is the configuration dialog state of one user.
type Session struct {
	UserID    int64
	ChatID    int64
	Awaiting  Awaiting
	UpdatedAt time.Time
}

// HasChat reports whether the user picked a chat to configure.
func (s Session) HasChat() bool {
	return s.ChatID != 0
}

// Confirmation is the result of a successful channel setup.
type Confirmation struct {
	ChatID       int64
	ChannelID    int64
	ChannelTitle string
	// Replaced is the previous binding of the chat, if it pointed elsewhere.
	Replaced *bindingDomain.Binding
}

// Nomination is the result of a moderator forward.
type Nomination struct {
	ChatID int64
	UserID int64
	Name   string
	Added  bool
}

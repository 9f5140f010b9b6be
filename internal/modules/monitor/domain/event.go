package domain

import (
	"time"

	messageDomain "github.com/reshetovitsme/edit-audit-bot/internal/modules/message/domain"
)

// EditEvent is an edited group message as seen by the monitor.
type EditEvent struct {
	ChatID      int64
	ChatTitle   string
	ChatType    string
	MessageID   int64
	EditorID    int64
	EditorName  string
	EditorLogin string
	EditorIsBot bool
	EditedText  string
	Media       messageDomain.MediaType
	SentAt      time.Time
	EditedAt    time.Time
}

// Result describes what the monitor did with an event.
type Result struct {
	Outcome         Outcome
	ChannelID       int64
	OriginalKnown   bool
	Published       bool
	DeleteAttempted bool
	Deleted         bool
	Err             error
}

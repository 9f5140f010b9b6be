package domain

import "time"

// Key identifies a message within the platform.
type Key struct {
	ChatID    int64
	MessageID int64
}

// Snapshot is the last known content of a group message. Text holds the
// caption for media messages.
type Snapshot struct {
	ChatID    int64
	MessageID int64
	AuthorID  int64
	Text      string
	Media     MediaType
	SentAt    time.Time
}

func (s Snapshot) Key() Key {
	return Key{ChatID: s.ChatID, MessageID: s.MessageID}
}

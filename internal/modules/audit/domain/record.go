package domain

import "time"

// OriginalUnavailable stands in for text the bot never saw.
const OriginalUnavailable = "[original text unavailable]"

// Record is the persisted outcome of one audited edit.
type Record struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	ChatID        int64     `gorm:"column:chat_id"`
	ChannelID     int64     `gorm:"column:channel_id"`
	MessageID     int64     `gorm:"column:message_id"`
	EditorID      int64     `gorm:"column:editor_id"`
	EditorName    string    `gorm:"column:editor_name"`
	OriginalText  string    `gorm:"column:original_text"`
	OriginalKnown bool      `gorm:"column:original_known"`
	EditedText    string    `gorm:"column:edited_text"`
	MediaKind     string    `gorm:"column:media_kind"`
	Published     bool      `gorm:"column:published"`
	Deleted       bool      `gorm:"column:deleted"`
	Error         string    `gorm:"column:error"`
	CreatedAt     time.Time `gorm:"column:created_at"`
}

func (Record) TableName() string {
	return "edit_records"
}

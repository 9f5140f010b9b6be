package domain

import "time"

// Binding maps a monitored chat to the channel that receives its audit
// copies. A chat has at most one binding; Active is cleared when either
// side loses the bot.
type Binding struct {
	ChatID       int64     `gorm:"column:chat_id;primaryKey;autoIncrement:false"`
	ChannelID    int64     `gorm:"column:channel_id"`
	ChannelTitle string    `gorm:"column:channel_title"`
	Active       bool      `gorm:"column:active"`
	CreatedBy    int64     `gorm:"column:created_by"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (Binding) TableName() string {
	return "chat_channel_bindings"
}

package domain

import "time"

// Moderator is a user whose edits in a chat are exempt from auditing.
type Moderator struct {
	ChatID    int64     `gorm:"column:chat_id;primaryKey;autoIncrement:false"`
	UserID    int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	Username  string    `gorm:"column:username"`
	AddedBy   int64     `gorm:"column:added_by"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Moderator) TableName() string {
	return "chat_moderators"
}

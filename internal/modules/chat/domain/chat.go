package domain

import (
	"time"

	"github.com/samber/lo"
)

// MaxEditGraceMinutes bounds the per-chat edit grace window.
const MaxEditGraceMinutes = 20

// EditGracePresets are offered as buttons in the settings dialog.
var EditGracePresets = []int{0, 1, 5, 10, 15, 20}

// Chat is a group the bot administers and monitors.
type Chat struct {
	ChatID            int64      `gorm:"column:chat_id;primaryKey;autoIncrement:false"`
	Title             string     `gorm:"column:title"`
	ChatType          string     `gorm:"column:chat_type"`
	Active            bool       `gorm:"column:active"`
	DeleteEnabled     bool       `gorm:"column:delete_enabled"`
	EditGraceMinutes  int        `gorm:"column:edit_grace_minutes"`
	AdminsRefreshedAt *time.Time `gorm:"column:admins_refreshed_at"`
	CreatedAt         time.Time  `gorm:"column:created_at"`
	UpdatedAt         time.Time  `gorm:"column:updated_at"`
}

func (Chat) TableName() string {
	return "chats"
}

// EditGrace is the window after sending in which edits are ignored.
func (c Chat) EditGrace() time.Duration {
	return time.Duration(c.EditGraceMinutes) * time.Minute
}

// Admin is one row of a chat's administrator set.
type Admin struct {
	ChatID int64 `gorm:"column:chat_id;primaryKey;autoIncrement:false"`
	UserID int64 `gorm:"column:user_id;primaryKey;autoIncrement:false"`
}

func (Admin) TableName() string {
	return "chat_admins"
}

// AdminSet is the cached list of a chat's human administrators.
type AdminSet struct {
	ChatID      int64
	UserIDs     []int64
	RefreshedAt time.Time
}

func (s AdminSet) Contains(userID int64) bool {
	return lo.Contains(s.UserIDs, userID)
}

// StaleAt reports whether the set is older than maxAge at now.
func (s AdminSet) StaleAt(now time.Time, maxAge time.Duration) bool {
	return s.RefreshedAt.IsZero() || now.Sub(s.RefreshedAt) > maxAge
}

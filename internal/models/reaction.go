package models

import "time"

// Reaction is a single emoji attached to a message by one viewer.
// Each viewer has at most one reaction per message; setting a new emoji
// replaces the previous one.
type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	MessageID string    `gorm:"type:uuid;not null;uniqueIndex:idx_reaction_viewer_message" json:"message_id"`
	UserRole  string    `gorm:"type:text;not null;uniqueIndex:idx_reaction_viewer_message" json:"user_role"`
	Emoji     string    `gorm:"type:text;not null" json:"emoji"`
	CreatedAt time.Time `json:"created_at"`

	Message *Message `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
}

// PushSubscription links a chat identity to the Telegram chat used for
// offline notifications. One subscription per identity.
type PushSubscription struct {
	ID             uint      `gorm:"primaryKey" json:"-"`
	UserRole       string    `gorm:"type:text;not null;uniqueIndex" json:"user_role"`
	TelegramChatID int64     `gorm:"not null" json:"telegram_chat_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

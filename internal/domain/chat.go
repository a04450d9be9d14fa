package domain

import "time"

// ChatMessage is one message in the single community chat room.
// Delivery is at-least-once over Redis pub/sub; there is no dedup.
type ChatMessage struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Username  string    `gorm:"size:100;not null" json:"username"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// TableName overrides the GORM table name
func (ChatMessage) TableName() string {
	return "chat_messages"
}

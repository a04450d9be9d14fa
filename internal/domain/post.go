package domain

import "time"

// Post is a community post. Approval uses the status column; pin and
// archive are independent boolean flags toggled by moderation actions.
type Post struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	AuthorID      uint       `gorm:"not null;index" json:"author_id"`
	AuthorName    string     `gorm:"size:100" json:"author_name"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Content       string     `gorm:"type:text" json:"content"`
	Status        string     `gorm:"size:20;not null;default:pending;index" json:"status"`
	IsPinned      bool       `gorm:"not null;default:false" json:"is_pinned"`
	IsArchived    bool       `gorm:"not null;default:false" json:"is_archived"`
	ReviewerNotes string     `gorm:"type:text" json:"reviewer_notes,omitempty"`
	ReviewedBy    string     `gorm:"size:100" json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName overrides the GORM table name
func (Post) TableName() string {
	return "posts"
}

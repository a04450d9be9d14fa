package domain

import "time"

// Application is a join application submitted through the signup wizard.
// Created pending; approving one triggers the welcome email dispatch.
type Application struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string     `gorm:"size:100;not null" json:"name"`
	Email         string     `gorm:"size:255;not null;index" json:"email"`
	Motivation    string     `gorm:"type:text" json:"motivation"`
	Status        string     `gorm:"size:20;not null;default:pending;index" json:"status"`
	ReviewerNotes string     `gorm:"type:text" json:"reviewer_notes,omitempty"`
	ReviewedBy    string     `gorm:"size:100" json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `json:"submitted_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName overrides the GORM table name
func (Application) TableName() string {
	return "applications"
}

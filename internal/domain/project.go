package domain

import "time"

// Project is a community project submission. Featuring is a flag
// independent of approval status.
type Project struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	OwnerID       uint       `gorm:"not null;index" json:"owner_id"`
	OwnerName     string     `gorm:"size:100" json:"owner_name"`
	Title         string     `gorm:"size:255;not null" json:"title"`
	Description   string     `gorm:"type:text" json:"description"`
	RepoURL       string     `gorm:"size:512" json:"repo_url,omitempty"`
	Status        string     `gorm:"size:20;not null;default:pending;index" json:"status"`
	IsFeatured    bool       `gorm:"not null;default:false" json:"is_featured"`
	ReviewerNotes string     `gorm:"type:text" json:"reviewer_notes,omitempty"`
	ReviewedBy    string     `gorm:"size:100" json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName overrides the GORM table name
func (Project) TableName() string {
	return "projects"
}

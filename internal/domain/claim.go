package domain

import "time"

// Claim is a submitted claim reviewed through the admin API or the
// claims CLI. Reference is an opaque external identifier.
type Claim struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference     string     `gorm:"size:36;not null;uniqueIndex" json:"reference"`
	ClaimantName  string     `gorm:"size:100;not null" json:"claimant_name"`
	ClaimantEmail string     `gorm:"size:255;not null;index" json:"claimant_email"`
	Amount        int64      `gorm:"not null;default:0" json:"amount"`
	Description   string     `gorm:"type:text" json:"description"`
	Status        string     `gorm:"size:20;not null;default:pending;index" json:"status"`
	ReviewerNotes string     `gorm:"type:text" json:"reviewer_notes,omitempty"`
	ReviewedBy    string     `gorm:"size:100" json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `json:"submitted_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName overrides the GORM table name
func (Claim) TableName() string {
	return "claims"
}

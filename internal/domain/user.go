package domain

import "time"

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a registered account. Suspension is a moderation action and
// carries a mandatory reason.
type User struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Username      string     `gorm:"size:100;not null;uniqueIndex" json:"username"`
	Email         string     `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash  string     `gorm:"size:255;not null" json:"-"`
	Role          string     `gorm:"size:20;not null;default:user" json:"role"`
	Status        string     `gorm:"size:20;not null;default:active;index" json:"status"`
	ReviewerNotes string     `gorm:"type:text" json:"reviewer_notes,omitempty"`
	ReviewedBy    string     `gorm:"size:100" json:"reviewed_by,omitempty"`
	ReviewedAt    *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName overrides the GORM table name
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user may invoke moderation actions
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

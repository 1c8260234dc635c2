package models

import (
	"time"
)

// User mirrors an identity-provider account. Rows are created lazily on the
// first authenticated request and are never deleted by this service; the
// identity provider owns the account lifecycle.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SubjectID string    `gorm:"size:255;uniqueIndex;not null" json:"subject_id"`
	Username  string    `gorm:"size:100;not null" json:"username"`
	Email     string    `gorm:"size:255;not null" json:"email"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

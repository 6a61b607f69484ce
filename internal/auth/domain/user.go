package domain

import "time"

type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"uniqueIndex;not null"`
	Email     string    `json:"email" gorm:"index"`
	Password  string    `json:"-"` // Never return password in JSON; empty for Google-only accounts
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserProfile carries the link between a local user and their Google identity.
// GoogleID is nil until the user completes the OAuth flow at least once.
type UserProfile struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"uniqueIndex;not null"`
	GoogleID    *string   `json:"google_id,omitempty" gorm:"uniqueIndex"`
	GoogleEmail string    `json:"google_email,omitempty"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RefreshToken is a persisted session refresh token (local JWT sessions,
// not the Google OAuth refresh token - see GoogleToken for that).
type RefreshToken struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	ExpiresAt time.Time `json:"expires_at"`
}

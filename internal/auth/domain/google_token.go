package domain

import "time"

// expiryLeeway treats a token as stale slightly before its recorded expiry
// so a request started just before the deadline does not fail mid-flight.
const expiryLeeway = 60 * time.Second

// GoogleToken is the delegated-access credential for one user. At most one
// row exists per user; refresh overwrites it in place.
type GoogleToken struct {
	ID           string    `json:"id" gorm:"primaryKey"`
	UserID       string    `json:"user_id" gorm:"uniqueIndex;not null"`
	AccessToken  string    `json:"-" gorm:"not null"`
	RefreshToken string    `json:"-"`
	TokenType    string    `json:"token_type" gorm:"default:Bearer"`
	ExpiresAt    time.Time `json:"expires_at"`
	Scope        string    `json:"scope"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsExpired reports whether the access token needs a refresh before use.
func (t *GoogleToken) IsExpired(now time.Time) bool {
	return !now.Add(expiryLeeway).Before(t.ExpiresAt)
}

package repository

import authdomain "calsync-backend/internal/auth/domain"

// UserRepository defines persistence for users and session refresh tokens
type UserRepository interface {
	Create(user *authdomain.User) error
	FindByID(id string) (*authdomain.User, error)
	FindByEmail(email string) (*authdomain.User, error)
	FindByUsername(username string) (*authdomain.User, error)
	Update(user *authdomain.User) error
	SaveRefreshToken(token *authdomain.RefreshToken) error
	FindRefreshToken(token string) (*authdomain.RefreshToken, error)
	DeleteRefreshToken(token string) error
}

// ProfileRepository defines persistence for the Google identity link
type ProfileRepository interface {
	FindByUserID(userID string) (*authdomain.UserProfile, error)
	FindByGoogleID(googleID string) (*authdomain.UserProfile, error)
	Save(profile *authdomain.UserProfile) error
}

// GoogleTokenRepository defines persistence for delegated-access credentials
type GoogleTokenRepository interface {
	FindByUserID(userID string) (*authdomain.GoogleToken, error)
	Upsert(token *authdomain.GoogleToken) error
	DeleteByUserID(userID string) error
}

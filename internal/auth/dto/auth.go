package dto

import (
	"time"

	authdomain "calsync-backend/internal/auth/domain"
)

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	User         *authdomain.User `json:"user"`
}

type AuthURLResponse struct {
	AuthURL string `json:"auth_url"`
	Message string `json:"message"`
}

type StatusResponse struct {
	User                *authdomain.User `json:"user"`
	GoogleAuthenticated bool             `json:"is_google_authenticated"`
	GoogleEmail         string           `json:"google_email,omitempty"`
	TokenExpiresAt      *time.Time       `json:"token_expires_at,omitempty"`
}

type UpdateProfileRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email"`
	GoogleEmail string `json:"google_email"`
}

type ProfileResponse struct {
	User    *authdomain.User        `json:"user"`
	Profile *authdomain.UserProfile `json:"profile"`
}

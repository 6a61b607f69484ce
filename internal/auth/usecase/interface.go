package usecase

import (
	"context"

	authdomain "calsync-backend/internal/auth/domain"
	authdto "calsync-backend/internal/auth/dto"
	"calsync-backend/pkg/gcal"

	"golang.org/x/oauth2"
)

// GoogleGateway is the subset of the gcal service the auth usecase needs.
// Satisfied by *gcal.Service; tests substitute a fake.
type GoogleGateway interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
	Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error)
	FetchUserInfo(ctx context.Context, token *oauth2.Token) (*gcal.UserInfo, error)
	Scope() string
}

// AuthUsecase defines session management, the Google credential lifecycle
// and account resolution
type AuthUsecase interface {
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	RefreshSession(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error
	ValidateToken(tokenString string) (*authdomain.User, error)

	// BeginGoogleAuthorization returns the provider consent URL and the
	// anti-CSRF state the caller must persist for the callback
	BeginGoogleAuthorization() (authURL string, state string, err error)
	// CompleteGoogleAuthorization verifies state, exchanges the code,
	// resolves the local account and stores the credential
	CompleteGoogleAuthorization(ctx context.Context, returnedState, expectedState, code string) (*authdto.TokenResponse, error)
	// EnsureFreshCredential returns a credential whose access token is
	// valid, refreshing it against Google first when stale
	EnsureFreshCredential(ctx context.Context, userID string) (*authdomain.GoogleToken, error)
	// IsGoogleLinked reports whether a live credential exists; it never
	// triggers a refresh
	IsGoogleLinked(userID string) bool
	// RevokeGoogle deletes the stored credential; idempotent
	RevokeGoogle(userID string) error
	// OnTokenRefresh returns a callback persisting a token the oauth2
	// transport refreshed mid-request
	OnTokenRefresh(userID string) gcal.TokenUpdateFunc

	GetProfile(userID string) (*authdto.ProfileResponse, error)
	UpdateProfile(userID string, req *authdto.UpdateProfileRequest) (*authdto.ProfileResponse, error)
	Status(user *authdomain.User) (*authdto.StatusResponse, error)
}

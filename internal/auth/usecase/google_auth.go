package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	authdomain "calsync-backend/internal/auth/domain"
	authdto "calsync-backend/internal/auth/dto"
	"calsync-backend/pkg/gcal"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// fallbackTokenLifetime is used when Google omits the expiry on a token
// response (access tokens live one hour in practice).
const fallbackTokenLifetime = time.Hour

func (u *authUsecase) BeginGoogleAuthorization() (string, string, error) {
	state := uuid.New().String()
	return u.google.AuthCodeURL(state), state, nil
}

func (u *authUsecase) CompleteGoogleAuthorization(ctx context.Context, returnedState, expectedState, code string) (*authdto.TokenResponse, error) {
	// Anti-CSRF check before any remote call
	if expectedState == "" || returnedState != expectedState {
		return nil, authdomain.ErrStateMismatch
	}

	token, err := u.google.ExchangeCode(ctx, code)
	if err != nil {
		return nil, &authdomain.ExchangeError{Err: err}
	}

	info, err := u.google.FetchUserInfo(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch google user info: %w", err)
	}

	user, err := u.resolveGoogleUser(info)
	if err != nil {
		return nil, err
	}

	if err := u.saveCredential(user.ID, token); err != nil {
		return nil, err
	}

	if err := u.linkProfile(user.ID, info); err != nil {
		return nil, err
	}

	return u.generateTokens(user)
}

func (u *authUsecase) EnsureFreshCredential(ctx context.Context, userID string) (*authdomain.GoogleToken, error) {
	cred, err := u.tokenRepo.FindByUserID(userID)
	if err != nil {
		return nil, err
	}
	if cred == nil {
		return nil, authdomain.ErrNoCredential
	}

	if !cred.IsExpired(u.now()) {
		return cred, nil
	}

	if cred.RefreshToken == "" {
		return nil, &authdomain.RefreshError{Err: errors.New("no refresh token stored")}
	}

	refreshed, err := u.google.Refresh(ctx, cred.RefreshToken)
	if err != nil {
		return nil, &authdomain.RefreshError{Err: err}
	}

	cred.AccessToken = refreshed.AccessToken
	// Google only rotates the refresh token sometimes; keep the old one otherwise
	if refreshed.RefreshToken != "" {
		cred.RefreshToken = refreshed.RefreshToken
	}
	cred.ExpiresAt = tokenExpiry(refreshed, u.now())
	if err := u.tokenRepo.Upsert(cred); err != nil {
		return nil, err
	}

	return cred, nil
}

func (u *authUsecase) IsGoogleLinked(userID string) bool {
	cred, err := u.tokenRepo.FindByUserID(userID)
	if err != nil || cred == nil {
		return false
	}
	return !cred.IsExpired(u.now())
}

func (u *authUsecase) RevokeGoogle(userID string) error {
	return u.tokenRepo.DeleteByUserID(userID)
}

func (u *authUsecase) OnTokenRefresh(userID string) gcal.TokenUpdateFunc {
	return func(token *oauth2.Token) error {
		return u.saveCredential(userID, token)
	}
}

// resolveGoogleUser maps a Google identity to a local user: by google id
// first, then by email, else a new user is created with a generated
// username.
func (u *authUsecase) resolveGoogleUser(info *gcal.UserInfo) (*authdomain.User, error) {
	profile, err := u.profileRepo.FindByGoogleID(info.GoogleID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		user, err := u.userRepo.FindByID(profile.UserID)
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, fmt.Errorf("profile %s references missing user %s", profile.ID, profile.UserID)
		}
		return user, nil
	}

	user, err := u.userRepo.FindByEmail(info.Email)
	if err != nil {
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	username, err := u.generateUsername(info.Email)
	if err != nil {
		return nil, err
	}

	user = &authdomain.User{
		Username:  username,
		Email:     info.Email,
		FirstName: info.GivenName,
		LastName:  info.FamilyName,
	}
	if err := u.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// generateUsername derives a unique username from the email local part,
// appending _1, _2, ... until an unused name is found.
func (u *authUsecase) generateUsername(email string) (string, error) {
	base := email
	if at := strings.Index(email, "@"); at > 0 {
		base = email[:at]
	}
	if base == "" {
		base = "user"
	}

	username := base
	counter := 1
	for {
		existing, err := u.userRepo.FindByUsername(username)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return username, nil
		}
		username = fmt.Sprintf("%s_%d", base, counter)
		counter++
	}
}

func (u *authUsecase) saveCredential(userID string, token *oauth2.Token) error {
	return u.tokenRepo.Upsert(&authdomain.GoogleToken{
		UserID:       userID,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    "Bearer",
		ExpiresAt:    tokenExpiry(token, u.now()),
		Scope:        u.google.Scope(),
	})
}

func (u *authUsecase) linkProfile(userID string, info *gcal.UserInfo) error {
	profile, err := u.profileRepo.FindByUserID(userID)
	if err != nil {
		return err
	}
	if profile == nil {
		profile = &authdomain.UserProfile{UserID: userID}
	}

	googleID := info.GoogleID
	profile.GoogleID = &googleID
	profile.GoogleEmail = info.Email
	profile.AvatarURL = info.Picture
	return u.profileRepo.Save(profile)
}

func tokenExpiry(token *oauth2.Token, now time.Time) time.Time {
	if token.Expiry.IsZero() {
		return now.Add(fallbackTokenLifetime)
	}
	return token.Expiry
}

package usecase

import (
	"encoding/json"
	"testing"

	authdomain "calsync-backend/internal/auth/domain"
	authdto "calsync-backend/internal/auth/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	uc, _ := newTestUsecase(t, &fakeGoogleGateway{})

	resp, err := uc.Register(&authdto.RegisterRequest{
		Email:     "alex@example.com",
		Password:  "secret-pass",
		FirstName: "Alex",
	})
	require.NoError(t, err)
	assert.Equal(t, "alex", resp.User.Username)

	// The password hash never reaches the wire
	serialized, err := json.Marshal(resp.User)
	require.NoError(t, err)
	assert.NotContains(t, string(serialized), "password")

	// Duplicate registration is rejected
	_, err = uc.Register(&authdto.RegisterRequest{Email: "alex@example.com", Password: "other-pass"})
	require.Error(t, err)

	login, err := uc.Login(&authdto.LoginRequest{Email: "alex@example.com", Password: "secret-pass"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = uc.Login(&authdto.LoginRequest{Email: "alex@example.com", Password: "wrong-pass"})
	require.Error(t, err)
}

func TestLoginGoogleOnlyAccount(t *testing.T) {
	uc, _ := newTestUsecase(t, &fakeGoogleGateway{})

	// A Google-resolved account has no password hash
	username, err := uc.generateUsername("g@example.com")
	require.NoError(t, err)
	require.NoError(t, uc.userRepo.Create(&authdomain.User{Username: username, Email: "g@example.com"}))

	_, err = uc.Login(&authdto.LoginRequest{Email: "g@example.com", Password: "anything"})
	require.Error(t, err)
}

func TestSessionRefreshAndLogout(t *testing.T) {
	uc, _ := newTestUsecase(t, &fakeGoogleGateway{})

	resp, err := uc.Register(&authdto.RegisterRequest{Email: "a@b.com", Password: "secret-pass"})
	require.NoError(t, err)

	refreshed, err := uc.RefreshSession(resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)

	require.NoError(t, uc.Logout(resp.RefreshToken))
	_, err = uc.RefreshSession(resp.RefreshToken)
	require.Error(t, err, "a logged-out refresh token is rejected")

	_, err = uc.RefreshSession("not-a-jwt")
	require.Error(t, err)
}

func TestValidateToken(t *testing.T) {
	uc, _ := newTestUsecase(t, &fakeGoogleGateway{})

	resp, err := uc.Register(&authdto.RegisterRequest{Email: "a@b.com", Password: "secret-pass"})
	require.NoError(t, err)

	user, err := uc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)

	_, err = uc.ValidateToken("garbage")
	require.Error(t, err)
}

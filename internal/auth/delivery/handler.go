package delivery

import (
	"errors"
	"net/http"

	authdomain "calsync-backend/internal/auth/domain"
	authdto "calsync-backend/internal/auth/dto"
	"calsync-backend/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

// stateCookie holds the OAuth anti-CSRF state between the login-URL request
// and the provider callback.
const (
	stateCookie       = "oauth_state"
	stateCookieMaxAge = 600
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
}

func NewAuthHandler(authUsecase usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req authdto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authUsecase.Register(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req authdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authUsecase.Login(&req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authUsecase.RefreshSession(req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req authdto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authUsecase.Logout(req.RefreshToken); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}

// GoogleLogin starts the OAuth flow: the state is kept in a short-lived
// HttpOnly cookie and verified again on the callback.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	authURL, state, err := h.authUsecase.BeginGoogleAuthorization()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initiate google oauth: " + err.Error()})
		return
	}

	c.SetCookie(stateCookie, state, stateCookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, authdto.AuthURLResponse{
		AuthURL: authURL,
		Message: "Redirect user to this URL to authenticate with Google",
	})
}

func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if oauthErr := c.Query("error"); oauthErr != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "google oauth error: " + oauthErr})
		return
	}

	code := c.Query("code")
	state := c.Query("state")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code or state parameter"})
		return
	}

	expectedState, err := c.Cookie(stateCookie)
	if err != nil {
		expectedState = ""
	}
	c.SetCookie(stateCookie, "", -1, "/", "", false, true)

	resp, err := h.authUsecase.CompleteGoogleAuthorization(c.Request.Context(), state, expectedState, code)
	if err != nil {
		var exchangeErr *authdomain.ExchangeError
		switch {
		case errors.Is(err, authdomain.ErrStateMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.As(err, &exchangeErr):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "authentication failed: " + err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": CurrentUser(c)})
}

func (h *AuthHandler) Status(c *gin.Context) {
	resp, err := h.authUsecase.Status(CurrentUser(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) RevokeAccess(c *gin.Context) {
	if err := h.authUsecase.RevokeGoogle(CurrentUser(c).ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to revoke access: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "google access revoked successfully"})
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	resp, err := h.authUsecase.GetProfile(CurrentUser(c).ID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	var req authdto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.authUsecase.UpdateProfile(CurrentUser(c).ID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, resp)
}

package gcal

import (
	"context"
	"fmt"
	"time"

	authdomain "calsync-backend/internal/auth/domain"
	caldomain "calsync-backend/internal/calendar/domain"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// TokenUpdateFunc is called when the oauth2 transport refreshed the access
// token mid-request so the caller can persist the new credential.
type TokenUpdateFunc func(*oauth2.Token) error

// UserInfo is the subset of the Google userinfo response the backend needs
// to resolve a local account.
type UserInfo struct {
	GoogleID   string
	Email      string
	GivenName  string
	FamilyName string
	Name       string
	Picture    string
}

// Service is a stateless gateway to Google's OAuth and Calendar APIs.
// It holds only client configuration, no per-call state.
type Service struct {
	clientID     string
	clientSecret string
	redirectURI  string
}

var scopes = []string{
	calendar.CalendarScope,
	"https://www.googleapis.com/auth/userinfo.email",
	"https://www.googleapis.com/auth/userinfo.profile",
}

func NewService(clientID, clientSecret, redirectURI string) *Service {
	return &Service{
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
	}
}

func (s *Service) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     s.clientID,
		ClientSecret: s.clientSecret,
		RedirectURL:  s.redirectURI,
		Scopes:       scopes,
		Endpoint:     google.Endpoint,
	}
}

// Scope returns the space-joined scope string stored with credentials.
func (s *Service) Scope() string {
	out := ""
	for i, sc := range scopes {
		if i > 0 {
			out += " "
		}
		out += sc
	}
	return out
}

// AuthCodeURL builds the consent URL for the given anti-CSRF state.
// Offline access is requested so Google issues a refresh token.
func (s *Service) AuthCodeURL(state string) string {
	return s.oauthConfig().AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

// ExchangeCode trades an authorization code for an access/refresh token pair.
func (s *Service) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauthConfig().Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("unable to exchange authorization code: %w", err)
	}
	return token, nil
}

// Refresh obtains a new access token using the stored refresh token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*oauth2.Token, error) {
	src := s.oauthConfig().TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		return nil, fmt.Errorf("unable to refresh token: %w", err)
	}
	return token, nil
}

// FetchUserInfo retrieves the authenticated user's Google identity.
func (s *Service) FetchUserInfo(ctx context.Context, token *oauth2.Token) (*UserInfo, error) {
	srv, err := goauth2.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(token)))
	if err != nil {
		return nil, fmt.Errorf("unable to create userinfo service: %w", err)
	}

	info, err := srv.Userinfo.Get().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to fetch userinfo: %w", err)
	}

	return &UserInfo{
		GoogleID:   info.Id,
		Email:      info.Email,
		GivenName:  info.GivenName,
		FamilyName: info.FamilyName,
		Name:       info.Name,
		Picture:    info.Picture,
	}, nil
}

// notifyTokenSource wraps an oauth2 token source and invokes a callback
// whenever the underlying source handed out a new access token.
type notifyTokenSource struct {
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback TokenUpdateFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}
	if s.callback != nil && s.current.AccessToken != t.AccessToken {
		s.current = t
		if err := s.callback(t); err != nil {
			fmt.Printf("Failed to update token: %v\n", err)
		}
	}
	return t, nil
}

// calendarService creates a Calendar API client from a stored credential.
// The stored expiry is honored, so no refresh happens while the access
// token is still valid; a mid-flight refresh is reported via onTokenRefresh.
func (s *Service) calendarService(ctx context.Context, cred *authdomain.GoogleToken, onTokenRefresh TokenUpdateFunc) (*calendar.Service, error) {
	token := &oauth2.Token{
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
		TokenType:    "Bearer",
		Expiry:       cred.ExpiresAt,
	}

	wrapped := &notifyTokenSource{
		src:      s.oauthConfig().TokenSource(ctx, token),
		current:  token,
		callback: onTokenRefresh,
	}

	srv, err := calendar.NewService(ctx, option.WithTokenSource(wrapped))
	if err != nil {
		return nil, fmt.Errorf("unable to create calendar service: %w", err)
	}
	return srv, nil
}

// ListEvents fetches single (expanded) events inside the window, ordered by
// start time by the remote service.
func (s *Service) ListEvents(ctx context.Context, cred *authdomain.GoogleToken, calendarID string, timeMin, timeMax time.Time, maxResults int64, onTokenRefresh TokenUpdateFunc) ([]*calendar.Event, error) {
	srv, err := s.calendarService(ctx, cred, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	if calendarID == "" {
		calendarID = caldomain.DefaultCalendarID
	}

	resp, err := srv.Events.List(calendarID).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		MaxResults(maxResults).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve events: %w", err)
	}

	return resp.Items, nil
}

// InsertEvent creates the event on the remote calendar and returns the
// remote record (carrying the assigned event id).
func (s *Service) InsertEvent(ctx context.Context, cred *authdomain.GoogleToken, event *caldomain.Event, onTokenRefresh TokenUpdateFunc) (*calendar.Event, error) {
	srv, err := s.calendarService(ctx, cred, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	created, err := srv.Events.Insert(calendarIDOf(event), ToGoogleEvent(event)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to insert event: %w", err)
	}
	return created, nil
}

// UpdateEvent overwrites the remote event identified by eventID.
func (s *Service) UpdateEvent(ctx context.Context, cred *authdomain.GoogleToken, eventID string, event *caldomain.Event, onTokenRefresh TokenUpdateFunc) (*calendar.Event, error) {
	srv, err := s.calendarService(ctx, cred, onTokenRefresh)
	if err != nil {
		return nil, err
	}

	updated, err := srv.Events.Update(calendarIDOf(event), eventID, ToGoogleEvent(event)).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to update event: %w", err)
	}
	return updated, nil
}

// DeleteEvent removes the remote event. It reports success as a boolean and
// never returns an error; a failed remote delete is not fatal to the caller.
func (s *Service) DeleteEvent(ctx context.Context, cred *authdomain.GoogleToken, calendarID, eventID string, onTokenRefresh TokenUpdateFunc) bool {
	srv, err := s.calendarService(ctx, cred, onTokenRefresh)
	if err != nil {
		return false
	}

	if calendarID == "" {
		calendarID = caldomain.DefaultCalendarID
	}

	if err := srv.Events.Delete(calendarID, eventID).Context(ctx).Do(); err != nil {
		return false
	}
	return true
}

func calendarIDOf(event *caldomain.Event) string {
	if event.CalendarID != "" {
		return event.CalendarID
	}
	return caldomain.DefaultCalendarID
}

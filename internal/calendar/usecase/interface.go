package usecase

import (
	"context"
	"time"

	authdomain "calsync-backend/internal/auth/domain"
	caldomain "calsync-backend/internal/calendar/domain"
	caldto "calsync-backend/internal/calendar/dto"
	"calsync-backend/pkg/gcal"

	"google.golang.org/api/calendar/v3"
)

// CredentialManager supplies fresh delegated-access credentials.
// Satisfied by the auth usecase.
type CredentialManager interface {
	EnsureFreshCredential(ctx context.Context, userID string) (*authdomain.GoogleToken, error)
	OnTokenRefresh(userID string) gcal.TokenUpdateFunc
}

// CalendarGateway is the subset of the gcal service the calendar usecase
// needs. Satisfied by *gcal.Service; tests substitute a fake.
type CalendarGateway interface {
	ListEvents(ctx context.Context, cred *authdomain.GoogleToken, calendarID string, timeMin, timeMax time.Time, maxResults int64, onTokenRefresh gcal.TokenUpdateFunc) ([]*calendar.Event, error)
	InsertEvent(ctx context.Context, cred *authdomain.GoogleToken, event *caldomain.Event, onTokenRefresh gcal.TokenUpdateFunc) (*calendar.Event, error)
	UpdateEvent(ctx context.Context, cred *authdomain.GoogleToken, eventID string, event *caldomain.Event, onTokenRefresh gcal.TokenUpdateFunc) (*calendar.Event, error)
	DeleteEvent(ctx context.Context, cred *authdomain.GoogleToken, calendarID, eventID string, onTokenRefresh gcal.TokenUpdateFunc) bool
}

// CalendarUsecase defines local event CRUD with remote write-through and
// the pull reconciliation pass
type CalendarUsecase interface {
	ListEvents(userID string, timeMin, timeMax time.Time, limit int) ([]*caldomain.Event, error)
	CreateEvent(ctx context.Context, userID string, req *caldto.CreateEventRequest) (*caldomain.Event, error)
	GetEvent(userID, eventID string) (*caldomain.Event, error)
	UpdateEvent(ctx context.Context, userID, eventID string, req *caldto.UpdateEventRequest) (*caldomain.Event, error)
	DeleteEvent(ctx context.Context, userID, eventID string) error

	// SyncFromGoogle pulls remote events inside the window (defaults: now
	// through now+30 days) and upserts each one keyed by its Google event
	// id. Malformed events are logged and skipped; local events absent from
	// the remote list are left untouched. Returns the successfully
	// reconciled events.
	SyncFromGoogle(ctx context.Context, userID string, timeMin, timeMax time.Time, maxResults int64) ([]*caldomain.Event, error)

	// ListGoogleEvents returns the raw remote event list without touching
	// local state
	ListGoogleEvents(ctx context.Context, userID string, timeMin, timeMax time.Time, maxResults int64) ([]*calendar.Event, error)
}

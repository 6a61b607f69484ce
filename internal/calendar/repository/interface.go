package repository

import (
	"time"

	caldomain "calsync-backend/internal/calendar/domain"
)

// EventRepository defines persistence for local calendar events
type EventRepository interface {
	Create(event *caldomain.Event) error
	FindByID(id string) (*caldomain.Event, error)
	// FindByUser returns the user's events starting inside [timeMin, timeMax],
	// ordered by start time, capped at limit
	FindByUser(userID string, timeMin, timeMax time.Time, limit int) ([]*caldomain.Event, error)
	FindByGoogleEventID(userID, googleEventID string) (*caldomain.Event, error)
	Update(event *caldomain.Event) error
	Delete(id string) error
	// UpsertRemote creates or overwrites the local row keyed by
	// (user_id, google_event_id), returning the persisted event
	UpsertRemote(event *caldomain.Event) (*caldomain.Event, error)
}

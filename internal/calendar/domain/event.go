package domain

import "time"

const (
	DefaultCalendarID = "primary"
	DefaultStatus     = "confirmed"

	// UntitledEvent is the placeholder title for remote events without a summary
	UntitledEvent = "No Title"
)

// Event is the local copy of a calendar event. GoogleEventID is nil for
// locally-created events that have not reached Google yet; when present it
// is the reconciliation join key and unique across the system.
type Event struct {
	ID               string     `json:"id" gorm:"primaryKey"`
	UserID           string     `json:"user_id" gorm:"index;not null"`
	GoogleEventID    *string    `json:"google_event_id,omitempty" gorm:"uniqueIndex"`
	Title            string     `json:"title" gorm:"not null"`
	Description      string     `json:"description,omitempty"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          time.Time  `json:"end_time"`
	Location         string     `json:"location,omitempty"`
	IsAllDay         bool       `json:"is_all_day" gorm:"default:false"`
	RecurrenceRule   string     `json:"recurrence_rule,omitempty"`
	CalendarID       string     `json:"calendar_id" gorm:"default:primary"`
	Status           string     `json:"status" gorm:"default:confirmed"`
	SyncedWithGoogle bool       `json:"synced_with_google" gorm:"default:false"`
	LastSyncedAt     *time.Time `json:"last_synced_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

package gcal

import (
	"fmt"
	"time"

	caldomain "calsync-backend/internal/calendar/domain"

	"google.golang.org/api/calendar/v3"
)

const dateOnlyLayout = "2006-01-02"

// ToGoogleEvent maps a local event to the Calendar API representation.
// Timed events carry RFC3339 instants tagged UTC; all-day events carry
// date-only fields with no timezone.
func ToGoogleEvent(event *caldomain.Event) *calendar.Event {
	googleEvent := &calendar.Event{
		Summary:     event.Title,
		Description: event.Description,
		Location:    event.Location,
	}

	if event.IsAllDay {
		googleEvent.Start = &calendar.EventDateTime{
			Date: event.StartTime.UTC().Format(dateOnlyLayout),
		}
		googleEvent.End = &calendar.EventDateTime{
			Date: event.EndTime.UTC().Format(dateOnlyLayout),
		}
	} else {
		googleEvent.Start = &calendar.EventDateTime{
			DateTime: event.StartTime.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		}
		googleEvent.End = &calendar.EventDateTime{
			DateTime: event.EndTime.UTC().Format(time.RFC3339),
			TimeZone: "UTC",
		}
	}

	if event.RecurrenceRule != "" {
		googleEvent.Recurrence = []string{event.RecurrenceRule}
	}

	return googleEvent
}

// ParseEventTime converts a Calendar API start/end field to an instant.
// A timed field is an absolute RFC3339 instant; a date-only field is
// midnight UTC on that date.
func ParseEventTime(dt *calendar.EventDateTime) (time.Time, error) {
	if dt == nil {
		return time.Time{}, fmt.Errorf("event has no start/end field")
	}
	if dt.DateTime != "" {
		parsed, err := time.Parse(time.RFC3339, dt.DateTime)
		if err != nil {
			return time.Time{}, fmt.Errorf("malformed event datetime %q: %w", dt.DateTime, err)
		}
		return parsed, nil
	}
	if dt.Date != "" {
		parsed, err := time.ParseInLocation(dateOnlyLayout, dt.Date, time.UTC)
		if err != nil {
			return time.Time{}, fmt.Errorf("malformed event date %q: %w", dt.Date, err)
		}
		return parsed, nil
	}
	return time.Time{}, fmt.Errorf("event has neither date nor dateTime")
}

// IsAllDay reports whether a remote start field denotes an all-day event
// (date-only, no time-of-day).
func IsAllDay(dt *calendar.EventDateTime) bool {
	return dt != nil && dt.DateTime == "" && dt.Date != ""
}

// EventTitle returns the remote summary or a placeholder when absent.
func EventTitle(e *calendar.Event) string {
	if e.Summary == "" {
		return caldomain.UntitledEvent
	}
	return e.Summary
}

// EventStatus returns the remote status, defaulting to confirmed.
func EventStatus(e *calendar.Event) string {
	if e.Status == "" {
		return caldomain.DefaultStatus
	}
	return e.Status
}

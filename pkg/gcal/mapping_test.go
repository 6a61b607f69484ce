package gcal

import (
	"testing"
	"time"

	caldomain "calsync-backend/internal/calendar/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
)

func TestToGoogleEventTimed(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	event := &caldomain.Event{
		Title:       "Planning",
		Description: "Q3 planning",
		Location:    "Room 4",
		StartTime:   time.Date(2024, 6, 1, 17, 0, 0, 0, loc),
		EndTime:     time.Date(2024, 6, 1, 18, 0, 0, 0, loc),
	}

	googleEvent := ToGoogleEvent(event)
	assert.Equal(t, "Planning", googleEvent.Summary)
	assert.Equal(t, "2024-06-01T10:00:00Z", googleEvent.Start.DateTime)
	assert.Equal(t, "UTC", googleEvent.Start.TimeZone)
	assert.Equal(t, "2024-06-01T11:00:00Z", googleEvent.End.DateTime)
	assert.Empty(t, googleEvent.Start.Date)
	assert.Nil(t, googleEvent.Recurrence)
}

func TestToGoogleEventAllDay(t *testing.T) {
	event := &caldomain.Event{
		Title:     "Holiday",
		IsAllDay:  true,
		StartTime: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
	}

	googleEvent := ToGoogleEvent(event)
	assert.Equal(t, "2024-06-01", googleEvent.Start.Date)
	assert.Equal(t, "2024-06-02", googleEvent.End.Date)
	assert.Empty(t, googleEvent.Start.DateTime)
	assert.Empty(t, googleEvent.Start.TimeZone)
}

func TestToGoogleEventRecurrence(t *testing.T) {
	event := &caldomain.Event{
		Title:          "Standup",
		StartTime:      time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		EndTime:        time.Date(2024, 6, 1, 10, 15, 0, 0, time.UTC),
		RecurrenceRule: "RRULE:FREQ=WEEKLY;BYDAY=MO",
	}

	googleEvent := ToGoogleEvent(event)
	assert.Equal(t, []string{"RRULE:FREQ=WEEKLY;BYDAY=MO"}, googleEvent.Recurrence)
}

func TestParseEventTime(t *testing.T) {
	parsed, err := ParseEventTime(&calendar.EventDateTime{DateTime: "2024-06-01T10:30:00+07:00"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 3, 30, 0, 0, time.UTC), parsed.UTC())

	parsed, err = ParseEventTime(&calendar.EventDateTime{Date: "2024-06-01"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), parsed)

	// dateTime wins when both are present
	parsed, err = ParseEventTime(&calendar.EventDateTime{DateTime: "2024-06-01T10:00:00Z", Date: "2024-12-31"})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), parsed.UTC())

	_, err = ParseEventTime(nil)
	require.Error(t, err)

	_, err = ParseEventTime(&calendar.EventDateTime{})
	require.Error(t, err)

	_, err = ParseEventTime(&calendar.EventDateTime{DateTime: "yesterday"})
	require.Error(t, err)

	_, err = ParseEventTime(&calendar.EventDateTime{Date: "06/01/2024"})
	require.Error(t, err)
}

func TestIsAllDay(t *testing.T) {
	assert.True(t, IsAllDay(&calendar.EventDateTime{Date: "2024-06-01"}))
	assert.False(t, IsAllDay(&calendar.EventDateTime{DateTime: "2024-06-01T10:00:00Z"}))
	assert.False(t, IsAllDay(nil))
}

func TestEventDefaults(t *testing.T) {
	assert.Equal(t, "No Title", EventTitle(&calendar.Event{}))
	assert.Equal(t, "Team lunch", EventTitle(&calendar.Event{Summary: "Team lunch"}))
	assert.Equal(t, "confirmed", EventStatus(&calendar.Event{}))
	assert.Equal(t, "tentative", EventStatus(&calendar.Event{Status: "tentative"}))
}

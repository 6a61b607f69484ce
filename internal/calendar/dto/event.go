package dto

import (
	"time"

	caldomain "calsync-backend/internal/calendar/domain"

	"google.golang.org/api/calendar/v3"
)

type CreateEventRequest struct {
	Title          string    `json:"title" binding:"required"`
	Description    string    `json:"description"`
	StartTime      time.Time `json:"start_time" binding:"required"`
	EndTime        time.Time `json:"end_time" binding:"required"`
	Location       string    `json:"location"`
	IsAllDay       bool      `json:"is_all_day"`
	RecurrenceRule string    `json:"recurrence_rule"`
	CalendarID     string    `json:"calendar_id"`
}

type UpdateEventRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	StartTime      *time.Time `json:"start_time"`
	EndTime        *time.Time `json:"end_time"`
	Location       *string    `json:"location"`
	IsAllDay       *bool      `json:"is_all_day"`
	RecurrenceRule *string    `json:"recurrence_rule"`
}

type EventsResponse struct {
	Events []*caldomain.Event `json:"events"`
	Count  int                `json:"count"`
}

type EventResponse struct {
	Message string           `json:"message,omitempty"`
	Event   *caldomain.Event `json:"event"`
}

type SyncResponse struct {
	Message     string `json:"message"`
	SyncedCount int    `json:"synced_count"`
}

type GoogleEventsResponse struct {
	GoogleEvents []*calendar.Event `json:"google_events"`
	Count        int               `json:"count"`
}

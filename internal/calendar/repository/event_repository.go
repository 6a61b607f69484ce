package repository

import (
	"errors"
	"fmt"
	"time"

	caldomain "calsync-backend/internal/calendar/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// eventRepository implements EventRepository interface
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository creates a new instance of eventRepository
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{
		db: db,
	}
}

func (r *eventRepository) Create(event *caldomain.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.CalendarID == "" {
		event.CalendarID = caldomain.DefaultCalendarID
	}
	if event.Status == "" {
		event.Status = caldomain.DefaultStatus
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	return r.db.Create(event).Error
}

func (r *eventRepository) FindByID(id string) (*caldomain.Event, error) {
	var event caldomain.Event
	err := r.db.Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindByUser(userID string, timeMin, timeMax time.Time, limit int) ([]*caldomain.Event, error) {
	var events []*caldomain.Event
	err := r.db.Where("user_id = ? AND start_time >= ? AND start_time <= ?", userID, timeMin, timeMax).
		Order("start_time ASC").
		Limit(limit).
		Find(&events).Error
	return events, err
}

func (r *eventRepository) FindByGoogleEventID(userID, googleEventID string) (*caldomain.Event, error) {
	var event caldomain.Event
	err := r.db.Where("user_id = ? AND google_event_id = ?", userID, googleEventID).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) Update(event *caldomain.Event) error {
	event.UpdatedAt = time.Now()
	return r.db.Save(event).Error
}

func (r *eventRepository) Delete(id string) error {
	return r.db.Delete(&caldomain.Event{}, "id = ?", id).Error
}

// UpsertRemote writes a reconciled remote event. The row is keyed by
// (user_id, google_event_id): missing rows are created, existing rows have
// every mapped field overwritten with the remote values.
func (r *eventRepository) UpsertRemote(event *caldomain.Event) (*caldomain.Event, error) {
	if event.GoogleEventID == nil || *event.GoogleEventID == "" {
		return nil, fmt.Errorf("upsert requires a google event id")
	}

	existing, err := r.FindByGoogleEventID(event.UserID, *event.GoogleEventID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if existing == nil {
		event.ID = uuid.New().String()
		event.CreatedAt = now
		event.UpdatedAt = now
		if err := r.db.Create(event).Error; err != nil {
			return nil, err
		}
		return event, nil
	}

	existing.Title = event.Title
	existing.Description = event.Description
	existing.StartTime = event.StartTime
	existing.EndTime = event.EndTime
	existing.Location = event.Location
	existing.IsAllDay = event.IsAllDay
	existing.RecurrenceRule = event.RecurrenceRule
	existing.CalendarID = event.CalendarID
	existing.Status = event.Status
	existing.SyncedWithGoogle = event.SyncedWithGoogle
	existing.LastSyncedAt = event.LastSyncedAt
	existing.UpdatedAt = now
	if err := r.db.Save(existing).Error; err != nil {
		return nil, err
	}
	return existing, nil
}

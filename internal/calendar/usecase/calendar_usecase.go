package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	caldomain "calsync-backend/internal/calendar/domain"
	caldto "calsync-backend/internal/calendar/dto"
	"calsync-backend/internal/calendar/repository"
	"calsync-backend/pkg/gcal"

	"google.golang.org/api/calendar/v3"
)

const (
	defaultSyncWindow = 30 * 24 * time.Hour
	defaultMaxResults = 100
)

// ErrEventNotFound is returned when the event does not exist or belongs to
// another user.
var ErrEventNotFound = errors.New("event not found")

// calendarUsecase implements CalendarUsecase interface
type calendarUsecase struct {
	eventRepo   repository.EventRepository
	credentials CredentialManager
	gateway     CalendarGateway
	now         func() time.Time
}

// NewCalendarUsecase creates a new instance of calendarUsecase
func NewCalendarUsecase(eventRepo repository.EventRepository, credentials CredentialManager, gateway CalendarGateway) CalendarUsecase {
	return &calendarUsecase{
		eventRepo:   eventRepo,
		credentials: credentials,
		gateway:     gateway,
		now:         time.Now,
	}
}

func (u *calendarUsecase) ListEvents(userID string, timeMin, timeMax time.Time, limit int) ([]*caldomain.Event, error) {
	timeMin, timeMax = u.window(timeMin, timeMax)
	if limit <= 0 {
		limit = defaultMaxResults
	}
	return u.eventRepo.FindByUser(userID, timeMin, timeMax, limit)
}

func (u *calendarUsecase) CreateEvent(ctx context.Context, userID string, req *caldto.CreateEventRequest) (*caldomain.Event, error) {
	event := &caldomain.Event{
		UserID:         userID,
		Title:          req.Title,
		Description:    req.Description,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
		Location:       req.Location,
		IsAllDay:       req.IsAllDay,
		RecurrenceRule: req.RecurrenceRule,
		CalendarID:     req.CalendarID,
	}
	if err := u.eventRepo.Create(event); err != nil {
		return nil, err
	}

	// Best-effort write-through: the local event stays unsynced when the
	// remote insert fails.
	cred, err := u.credentials.EnsureFreshCredential(ctx, userID)
	if err != nil {
		log.Printf("[WARN] event %s created locally only, no usable credential: %v", event.ID, err)
		return event, nil
	}

	remote, err := u.gateway.InsertEvent(ctx, cred, event, u.credentials.OnTokenRefresh(userID))
	if err != nil {
		log.Printf("[WARN] event %s created locally only, remote insert failed: %v", event.ID, err)
		return event, nil
	}

	now := u.now()
	event.GoogleEventID = &remote.Id
	event.SyncedWithGoogle = true
	event.LastSyncedAt = &now
	if err := u.eventRepo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (u *calendarUsecase) GetEvent(userID, eventID string) (*caldomain.Event, error) {
	return u.findOwned(userID, eventID)
}

func (u *calendarUsecase) UpdateEvent(ctx context.Context, userID, eventID string, req *caldto.UpdateEventRequest) (*caldomain.Event, error) {
	event, err := u.findOwned(userID, eventID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		event.Title = *req.Title
	}
	if req.Description != nil {
		event.Description = *req.Description
	}
	if req.StartTime != nil {
		event.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		event.EndTime = *req.EndTime
	}
	if req.Location != nil {
		event.Location = *req.Location
	}
	if req.IsAllDay != nil {
		event.IsAllDay = *req.IsAllDay
	}
	if req.RecurrenceRule != nil {
		event.RecurrenceRule = *req.RecurrenceRule
	}

	if event.GoogleEventID != nil {
		cred, err := u.credentials.EnsureFreshCredential(ctx, userID)
		if err != nil {
			log.Printf("[WARN] event %s updated locally only, no usable credential: %v", event.ID, err)
		} else if _, err := u.gateway.UpdateEvent(ctx, cred, *event.GoogleEventID, event, u.credentials.OnTokenRefresh(userID)); err != nil {
			log.Printf("[WARN] event %s updated locally only, remote update failed: %v", event.ID, err)
		} else {
			now := u.now()
			event.SyncedWithGoogle = true
			event.LastSyncedAt = &now
		}
	}

	if err := u.eventRepo.Update(event); err != nil {
		return nil, err
	}
	return event, nil
}

func (u *calendarUsecase) DeleteEvent(ctx context.Context, userID, eventID string) error {
	event, err := u.findOwned(userID, eventID)
	if err != nil {
		return err
	}

	// Best-effort remote delete; the local row goes away regardless.
	if event.GoogleEventID != nil {
		cred, err := u.credentials.EnsureFreshCredential(ctx, userID)
		if err != nil {
			log.Printf("[WARN] deleting event %s locally only, no usable credential: %v", event.ID, err)
		} else if !u.gateway.DeleteEvent(ctx, cred, event.CalendarID, *event.GoogleEventID, u.credentials.OnTokenRefresh(userID)) {
			log.Printf("[WARN] remote delete failed for event %s (google id %s)", event.ID, *event.GoogleEventID)
		}
	}

	return u.eventRepo.Delete(event.ID)
}

func (u *calendarUsecase) SyncFromGoogle(ctx context.Context, userID string, timeMin, timeMax time.Time, maxResults int64) ([]*caldomain.Event, error) {
	cred, err := u.credentials.EnsureFreshCredential(ctx, userID)
	if err != nil {
		return nil, err
	}

	timeMin, timeMax = u.window(timeMin, timeMax)
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	items, err := u.gateway.ListEvents(ctx, cred, caldomain.DefaultCalendarID, timeMin, timeMax, maxResults, u.credentials.OnTokenRefresh(userID))
	if err != nil {
		return nil, err
	}

	synced := make([]*caldomain.Event, 0, len(items))
	for _, item := range items {
		event, err := u.mapRemoteEvent(userID, item)
		if err != nil {
			log.Printf("[WARN] skipping event %s during sync: %v", item.Id, err)
			continue
		}

		saved, err := u.eventRepo.UpsertRemote(event)
		if err != nil {
			log.Printf("[WARN] skipping event %s during sync, upsert failed: %v", item.Id, err)
			continue
		}
		synced = append(synced, saved)
	}

	return synced, nil
}

func (u *calendarUsecase) ListGoogleEvents(ctx context.Context, userID string, timeMin, timeMax time.Time, maxResults int64) ([]*calendar.Event, error) {
	cred, err := u.credentials.EnsureFreshCredential(ctx, userID)
	if err != nil {
		return nil, err
	}

	timeMin, timeMax = u.window(timeMin, timeMax)
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}

	return u.gateway.ListEvents(ctx, cred, caldomain.DefaultCalendarID, timeMin, timeMax, maxResults, u.credentials.OnTokenRefresh(userID))
}

// mapRemoteEvent translates one remote record into a local row ready for
// upsert.
func (u *calendarUsecase) mapRemoteEvent(userID string, item *calendar.Event) (*caldomain.Event, error) {
	start, err := gcal.ParseEventTime(item.Start)
	if err != nil {
		return nil, err
	}
	end, err := gcal.ParseEventTime(item.End)
	if err != nil {
		return nil, err
	}

	rule := ""
	if len(item.Recurrence) > 0 {
		rule = item.Recurrence[0]
	}

	now := u.now()
	googleEventID := item.Id
	return &caldomain.Event{
		UserID:           userID,
		GoogleEventID:    &googleEventID,
		Title:            gcal.EventTitle(item),
		Description:      item.Description,
		StartTime:        start,
		EndTime:          end,
		Location:         item.Location,
		IsAllDay:         gcal.IsAllDay(item.Start),
		RecurrenceRule:   rule,
		CalendarID:       caldomain.DefaultCalendarID,
		Status:           gcal.EventStatus(item),
		SyncedWithGoogle: true,
		LastSyncedAt:     &now,
	}, nil
}

func (u *calendarUsecase) findOwned(userID, eventID string) (*caldomain.Event, error) {
	event, err := u.eventRepo.FindByID(eventID)
	if err != nil {
		return nil, err
	}
	if event == nil || event.UserID != userID {
		return nil, ErrEventNotFound
	}
	return event, nil
}

func (u *calendarUsecase) window(timeMin, timeMax time.Time) (time.Time, time.Time) {
	if timeMin.IsZero() {
		timeMin = u.now()
	}
	if timeMax.IsZero() {
		timeMax = timeMin.Add(defaultSyncWindow)
	}
	return timeMin, timeMax
}

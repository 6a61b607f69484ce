package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	authdomain "calsync-backend/internal/auth/domain"
	caldomain "calsync-backend/internal/calendar/domain"
	caldto "calsync-backend/internal/calendar/dto"
	"calsync-backend/internal/calendar/repository"
	"calsync-backend/pkg/gcal"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/calendar/v3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type fakeCredentialManager struct {
	cred        *authdomain.GoogleToken
	err         error
	ensureCalls int
}

func (f *fakeCredentialManager) EnsureFreshCredential(ctx context.Context, userID string) (*authdomain.GoogleToken, error) {
	f.ensureCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.cred, nil
}

func (f *fakeCredentialManager) OnTokenRefresh(userID string) gcal.TokenUpdateFunc {
	return nil
}

type fakeCalendarGateway struct {
	events     []*calendar.Event
	listErr    error
	listCalls  int
	lastMin    time.Time
	lastMax    time.Time
	lastMax64  int64
	insertResp *calendar.Event
	insertErr  error
	deleteOK   bool
	deleted    []string
}

func (f *fakeCalendarGateway) ListEvents(ctx context.Context, cred *authdomain.GoogleToken, calendarID string, timeMin, timeMax time.Time, maxResults int64, onTokenRefresh gcal.TokenUpdateFunc) ([]*calendar.Event, error) {
	f.listCalls++
	f.lastMin = timeMin
	f.lastMax = timeMax
	f.lastMax64 = maxResults
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.events, nil
}

func (f *fakeCalendarGateway) InsertEvent(ctx context.Context, cred *authdomain.GoogleToken, event *caldomain.Event, onTokenRefresh gcal.TokenUpdateFunc) (*calendar.Event, error) {
	if f.insertErr != nil {
		return nil, f.insertErr
	}
	return f.insertResp, nil
}

func (f *fakeCalendarGateway) UpdateEvent(ctx context.Context, cred *authdomain.GoogleToken, eventID string, event *caldomain.Event, onTokenRefresh gcal.TokenUpdateFunc) (*calendar.Event, error) {
	return &calendar.Event{Id: eventID}, nil
}

func (f *fakeCalendarGateway) DeleteEvent(ctx context.Context, cred *authdomain.GoogleToken, calendarID, eventID string, onTokenRefresh gcal.TokenUpdateFunc) bool {
	f.deleted = append(f.deleted, eventID)
	return f.deleteOK
}

func newEventRepo(t *testing.T) (repository.EventRepository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&caldomain.Event{}))
	return repository.NewEventRepository(db), db
}

func testCredential() *authdomain.GoogleToken {
	return &authdomain.GoogleToken{
		UserID:      "user-1",
		AccessToken: "access",
		ExpiresAt:   time.Now().Add(time.Hour),
	}
}

func timedRemoteEvent(id, start, end string) *calendar.Event {
	return &calendar.Event{
		Id:      id,
		Summary: "Meeting " + id,
		Start:   &calendar.EventDateTime{DateTime: start},
		End:     &calendar.EventDateTime{DateTime: end},
	}
}

func TestSyncFromGoogleUpsertIsIdempotent(t *testing.T) {
	repo, db := newEventRepo(t)
	gateway := &fakeCalendarGateway{events: []*calendar.Event{
		timedRemoteEvent("g-1", "2024-06-01T10:00:00Z", "2024-06-01T11:00:00Z"),
		timedRemoteEvent("g-2", "2024-06-02T10:00:00Z", "2024-06-02T11:00:00Z"),
	}}
	uc := NewCalendarUsecase(repo, &fakeCredentialManager{cred: testCredential()}, gateway)

	first, err := uc.SyncFromGoogle(context.Background(), "user-1", time.Time{}, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, first, 2)
	firstSynced := *first[0].LastSyncedAt

	second, err := uc.SyncFromGoogle(context.Background(), "user-1", time.Time{}, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, second, 2)

	var count int64
	require.NoError(t, db.Model(&caldomain.Event{}).Count(&count).Error)
	assert.EqualValues(t, 2, count, "re-running sync must not duplicate rows")
	assert.False(t, second[0].LastSyncedAt.Before(firstSynced))
	assert.True(t, second[0].SyncedWithGoogle)
}

func TestSyncFromGoogleAllDayMapping(t *testing.T) {
	repo, _ := newEventRepo(t)
	gateway := &fakeCalendarGateway{events: []*calendar.Event{{
		Id:    "g-allday",
		Start: &calendar.EventDateTime{Date: "2024-06-01"},
		End:   &calendar.EventDateTime{Date: "2024-06-02"},
	}}}
	uc := NewCalendarUsecase(repo, &fakeCredentialManager{cred: testCredential()}, gateway)

	synced, err := uc.SyncFromGoogle(context.Background(), "user-1", time.Time{}, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, synced, 1)

	event := synced[0]
	assert.True(t, event.IsAllDay)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), event.StartTime.UTC())
	assert.Equal(t, time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC), event.EndTime.UTC())
	// Absent summary and status fall back to defaults
	assert.Equal(t, caldomain.UntitledEvent, event.Title)
	assert.Equal(t, caldomain.DefaultStatus, event.Status)
}

func TestSyncFromGoogleTimedMapping(t *testing.T) {
	repo, _ := newEventRepo(t)
	gateway := &fakeCalendarGateway{events: []*calendar.Event{
		timedRemoteEvent("g-timed", "2024-06-01T10:00:00Z", "2024-06-01T11:30:00Z"),
	}}
	uc := NewCalendarUsecase(repo, &fakeCredentialManager{cred: testCredential()}, gateway)

	synced, err := uc.SyncFromGoogle(context.Background(), "user-1", time.Time{}, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, synced, 1)

	event := synced[0]
	assert.False(t, event.IsAllDay)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC), event.StartTime.UTC())
	assert.Equal(t, time.Date(2024, 6, 1, 11, 30, 0, 0, time.UTC), event.EndTime.UTC())
}

func TestSyncFromGoogleSkipsMalformedEvents(t *testing.T) {
	repo, db := newEventRepo(t)
	events := make([]*calendar.Event, 0, 10)
	for i := 0; i < 9; i++ {
		id := fmt.Sprintf("g-%d", i)
		events = append(events, timedRemoteEvent(id, "2024-06-01T10:00:00Z", "2024-06-01T11:00:00Z"))
	}
	events = append(events, &calendar.Event{
		Id:    "g-broken",
		Start: &calendar.EventDateTime{DateTime: "not-a-timestamp"},
		End:   &calendar.EventDateTime{DateTime: "2024-06-01T11:00:00Z"},
	})
	gateway := &fakeCalendarGateway{events: events}
	uc := NewCalendarUsecase(repo, &fakeCredentialManager{cred: testCredential()}, gateway)

	synced, err := uc.SyncFromGoogle(context.Background(), "user-1", time.Time{}, time.Time{}, 0)
	require.NoError(t, err, "one bad event must not abort the pass")
	assert.Len(t, synced, 9)

	var count int64
	require.NoError(t, db.Model(&caldomain.Event{}).Count(&count).Error)
	assert.EqualValues(t, 9, count)
}

func TestSyncFromGoogleLeavesLocalEventsUntouched(t *testing.T) {
	repo, _ := newEventRepo(t)
	goneID := "g-gone"
	require.NoError(t, repo.Create(&caldomain.Event{
		UserID:        "user-1",
		GoogleEventID: &goneID,
		Title:         "Disappeared remotely",
		StartTime:     time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}))

	gateway := &fakeCalendarGateway{events: []*calendar.Event{
		timedRemoteEvent("g-1", "2024-06-01T10:00:00Z", "2024-06-01T11:00:00Z"),
	}}
	uc := NewCalendarUsecase(repo, &fakeCredentialManager{cred: testCredential()}, gateway)

	_, err := uc.SyncFromGoogle(context.Background(), "user-1", time.Time{}, time.Time{}, 0)
	require.NoError(t, err)

	kept, err := repo.FindByGoogleEventID("user-1", goneID)
	require.NoError(t, err)
	require.NotNil(t, kept, "events absent from the remote list are never deleted")
	assert.Equal(t, "Disappeared remotely", kept.Title)
}

func TestSyncFromGoogleDefaultWindow(t *testing.T) {
	repo, _ := newEventRepo(t)
	gateway := &fakeCalendarGateway{}
	uc := NewCalendarUsecase(repo, &fakeCredentialManager{cred: testCredential()}, gateway)

	before := time.Now()
	_, err := uc.SyncFromGoogle(context.Background(), "user-1", time.Time{}, time.Time{}, 0)
	require.NoError(t, err)

	assert.False(t, gateway.lastMin.Before(before.Add(-time.Second)))
	assert.WithinDuration(t, gateway.lastMin.Add(30*24*time.Hour), gateway.lastMax, time.Second)
	assert.EqualValues(t, 100, gateway.lastMax64)
}

func TestSyncFromGoogleWithoutCredential(t *testing.T) {
	repo, _ := newEventRepo(t)
	gateway := &fakeCalendarGateway{}
	uc := NewCalendarUsecase(repo, &fakeCredentialManager{err: authdomain.ErrNoCredential}, gateway)

	_, err := uc.SyncFromGoogle(context.Background(), "user-1", time.Time{}, time.Time{}, 0)
	require.ErrorIs(t, err, authdomain.ErrNoCredential)
	assert.Equal(t, 0, gateway.listCalls)
}

func TestCreateEventWritesThrough(t *testing.T) {
	repo, _ := newEventRepo(t)
	gateway := &fakeCalendarGateway{insertResp: &calendar.Event{Id: "g-new"}}
	uc := NewCalendarUsecase(repo, &fakeCredentialManager{cred: testCredential()}, gateway)

	event, err := uc.CreateEvent(context.Background(), "user-1", &caldto.CreateEventRequest{
		Title:     "Standup",
		StartTime: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 6, 1, 10, 15, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NotNil(t, event.GoogleEventID)
	assert.Equal(t, "g-new", *event.GoogleEventID)
	assert.True(t, event.SyncedWithGoogle)
	assert.NotNil(t, event.LastSyncedAt)
}

func TestCreateEventKeepsLocalCopyOnRemoteFailure(t *testing.T) {
	repo, _ := newEventRepo(t)
	gateway := &fakeCalendarGateway{insertErr: errors.New("quota exceeded")}
	uc := NewCalendarUsecase(repo, &fakeCredentialManager{cred: testCredential()}, gateway)

	event, err := uc.CreateEvent(context.Background(), "user-1", &caldto.CreateEventRequest{
		Title:     "Offline event",
		StartTime: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err, "a failed remote insert must not lose the local event")
	assert.Nil(t, event.GoogleEventID)
	assert.False(t, event.SyncedWithGoogle)

	stored, err := repo.FindByID(event.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
}

func TestDeleteEventCascadesRemoteDelete(t *testing.T) {
	repo, _ := newEventRepo(t)
	gateway := &fakeCalendarGateway{deleteOK: true}
	uc := NewCalendarUsecase(repo, &fakeCredentialManager{cred: testCredential()}, gateway)

	remoteID := "g-del"
	event := &caldomain.Event{
		UserID:        "user-1",
		GoogleEventID: &remoteID,
		Title:         "To delete",
		StartTime:     time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		EndTime:       time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(event))

	require.NoError(t, uc.DeleteEvent(context.Background(), "user-1", event.ID))
	assert.Equal(t, []string{"g-del"}, gateway.deleted)

	stored, err := repo.FindByID(event.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)
}

func TestEventOwnershipIsEnforced(t *testing.T) {
	repo, _ := newEventRepo(t)
	uc := NewCalendarUsecase(repo, &fakeCredentialManager{cred: testCredential()}, &fakeCalendarGateway{})

	event := &caldomain.Event{
		UserID:    "user-1",
		Title:     "Private",
		StartTime: time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 6, 1, 11, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Create(event))

	_, err := uc.GetEvent("user-2", event.ID)
	require.ErrorIs(t, err, ErrEventNotFound)

	title := "hijack"
	_, err = uc.UpdateEvent(context.Background(), "user-2", event.ID, &caldto.UpdateEventRequest{Title: &title})
	require.ErrorIs(t, err, ErrEventNotFound)

	require.ErrorIs(t, uc.DeleteEvent(context.Background(), "user-2", event.ID), ErrEventNotFound)
}

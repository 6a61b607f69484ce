package delivery

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	authdelivery "calsync-backend/internal/auth/delivery"
	authdomain "calsync-backend/internal/auth/domain"
	caldto "calsync-backend/internal/calendar/dto"
	"calsync-backend/internal/calendar/usecase"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	calendarUsecase usecase.CalendarUsecase
}

func NewEventHandler(calendarUsecase usecase.CalendarUsecase) *EventHandler {
	return &EventHandler{
		calendarUsecase: calendarUsecase,
	}
}

func (h *EventHandler) ListEvents(c *gin.Context) {
	timeMin, timeMax, maxResults, err := windowParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.calendarUsecase.ListEvents(authdelivery.CurrentUser(c).ID, timeMin, timeMax, int(maxResults))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list events: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, caldto.EventsResponse{Events: events, Count: len(events)})
}

func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req caldto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.calendarUsecase.CreateEvent(c.Request.Context(), authdelivery.CurrentUser(c).ID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create event: " + err.Error()})
		return
	}

	c.JSON(http.StatusCreated, caldto.EventResponse{Message: "event created successfully", Event: event})
}

func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.calendarUsecase.GetEvent(authdelivery.CurrentUser(c).ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, caldto.EventResponse{Event: event})
}

func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req caldto.UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.calendarUsecase.UpdateEvent(c.Request.Context(), authdelivery.CurrentUser(c).ID, c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, usecase.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update event: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, caldto.EventResponse{Message: "event updated successfully", Event: event})
}

func (h *EventHandler) DeleteEvent(c *gin.Context) {
	err := h.calendarUsecase.DeleteEvent(c.Request.Context(), authdelivery.CurrentUser(c).ID, c.Param("id"))
	if err != nil {
		if errors.Is(err, usecase.ErrEventNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete event: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted successfully"})
}

func (h *EventHandler) SyncEvents(c *gin.Context) {
	timeMin, timeMax, maxResults, err := windowParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	synced, err := h.calendarUsecase.SyncFromGoogle(c.Request.Context(), authdelivery.CurrentUser(c).ID, timeMin, timeMax, maxResults)
	if err != nil {
		respondCredentialError(c, err)
		return
	}

	c.JSON(http.StatusOK, caldto.SyncResponse{
		Message:     fmt.Sprintf("successfully synced %d events from google calendar", len(synced)),
		SyncedCount: len(synced),
	})
}

func (h *EventHandler) GoogleEvents(c *gin.Context) {
	timeMin, timeMax, maxResults, err := windowParams(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events, err := h.calendarUsecase.ListGoogleEvents(c.Request.Context(), authdelivery.CurrentUser(c).ID, timeMin, timeMax, maxResults)
	if err != nil {
		respondCredentialError(c, err)
		return
	}

	c.JSON(http.StatusOK, caldto.GoogleEventsResponse{GoogleEvents: events, Count: len(events)})
}

func respondCredentialError(c *gin.Context, err error) {
	var refreshErr *authdomain.RefreshError
	switch {
	case errors.Is(err, authdomain.ErrNoCredential):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated with google"})
	case errors.As(err, &refreshErr):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "google credential expired, please re-authorize: " + err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func windowParams(c *gin.Context) (time.Time, time.Time, int64, error) {
	var timeMin, timeMax time.Time

	if start := c.Query("start"); start != "" {
		parsed, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return time.Time{}, time.Time{}, 0, fmt.Errorf("invalid start parameter: %v", err)
		}
		timeMin = parsed
	}
	if end := c.Query("end"); end != "" {
		parsed, err := time.Parse(time.RFC3339, end)
		if err != nil {
			return time.Time{}, time.Time{}, 0, fmt.Errorf("invalid end parameter: %v", err)
		}
		timeMax = parsed
	}

	maxResults := int64(0)
	if raw := c.Query("max_results"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			return time.Time{}, time.Time{}, 0, fmt.Errorf("invalid max_results parameter")
		}
		maxResults = parsed
	}

	return timeMin, timeMax, maxResults, nil
}

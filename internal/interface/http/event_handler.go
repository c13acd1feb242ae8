package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/campus-connect/internal/application"
	"github.com/oksasatya/campus-connect/internal/domain/entity"
	"github.com/oksasatya/campus-connect/internal/interface/middleware"
	"github.com/oksasatya/campus-connect/pkg/helpers"
	"github.com/oksasatya/campus-connect/pkg/response"
)

type EventHandler struct {
	Svc    *application.EventService
	Logger *logrus.Logger
}

func NewEventHandler(svc *application.EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: helpers.LoggerOrDiscard(logger)}
}

type createEventRequest struct {
	Title       string `json:"title" binding:"required,max=120"`
	Description string `json:"description" binding:"max=2000"`
	Date        string `json:"date" binding:"omitempty,day"`
	Time        string `json:"time" binding:"omitempty,clock"`
	Location    string `json:"location" binding:"required,max=200"`
	Category    string `json:"category" binding:"required"`
}

type eventQuery struct {
	Category    string `form:"category"`
	Day         string `form:"day" binding:"omitempty,day"`
	Upcoming    bool   `form:"upcoming"`
	OrganizerID string `form:"organizer_id"`
}

// List GET /api/events?category=&day=YYYY-MM-DD&upcoming=true&organizer_id=
func (h *EventHandler) List(c *gin.Context) {
	var q eventQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, err)
		return
	}
	f := application.EventFilter{Category: q.Category, UpcomingOnly: q.Upcoming, OrganizerID: q.OrganizerID}
	if q.Day != "" {
		day, _ := time.Parse(time.DateOnly, q.Day)
		f.Day = &day
	}
	events, err := h.Svc.List(c.Request.Context(), f)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, events, "events", map[string]any{
		"count":      len(events),
		"categories": entity.EventCategories,
	})
}

// Create POST /api/events
func (h *EventHandler) Create(c *gin.Context) {
	var req createEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	ev, err := h.Svc.Create(c.Request.Context(), actor(c), application.NewEvent(req))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, ev, "event created", nil)
}

// RSVP POST /api/events/:id/rsvp toggles attendance.
func (h *EventHandler) RSVP(c *gin.Context) {
	uid := middleware.UserID(c)
	ev, err := h.Svc.RSVP(c.Request.Context(), uid, c.Param("id"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, ev, "rsvp updated", map[string]any{"attending": ev.IsAttending(uid)})
}

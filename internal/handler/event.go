package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/azulu-crm/internal/dto"
	"github.com/iliyamo/azulu-crm/internal/model"
	"github.com/iliyamo/azulu-crm/internal/service"
)

// EventHandler serves /events.
type EventHandler struct {
	svc service.EventService
	log *zap.Logger
}

func NewEventHandler(svc service.EventService, log *zap.Logger) *EventHandler {
	if svc == nil {
		panic("nil service passed to NewEventHandler")
	}
	return &EventHandler{svc: svc, log: nopIfNil(log)}
}

// Create handles POST /events
func (h *EventHandler) Create(c echo.Context) error {
	var req dto.CreateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	ev, err := h.svc.CreateEvent(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, ev)
}

// List handles GET /events?upcoming=&skip=&limit=.  upcoming defaults to
// false, which lists past events.
func (h *EventHandler) List(c echo.Context) error {
	upcoming, err := queryBool(c, "upcoming", false)
	if err != nil {
		return respondError(c, h.log, err)
	}
	offset, limit, err := pageParams(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	items, err := h.svc.ListEvents(c.Request().Context(), model.EventFilter{Upcoming: upcoming, Offset: offset, Limit: limit})
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /events/:id
func (h *EventHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	ev, err := h.svc.GetEvent(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, ev)
}

// Update handles PUT /events/:id; absent fields keep their stored value.
func (h *EventHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req dto.UpdateEventRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	ev, err := h.svc.UpdateEvent(c.Request().Context(), id, &req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, ev)
}

// Delete handles DELETE /events/:id
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.svc.DeleteEvent(c.Request().Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

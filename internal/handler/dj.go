package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/azulu-crm/internal/dto"
	"github.com/iliyamo/azulu-crm/internal/service"
)

// DjHandler serves /djs.  Profiles are returned with their socials embedded.
type DjHandler struct {
	svc service.DjService
	log *zap.Logger
}

func NewDjHandler(svc service.DjService, log *zap.Logger) *DjHandler {
	if svc == nil {
		panic("nil service passed to NewDjHandler")
	}
	return &DjHandler{svc: svc, log: nopIfNil(log)}
}

func (h *DjHandler) Create(c echo.Context) error {
	var req dto.CreateDjRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	dj, err := h.svc.CreateDj(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dj)
}

func (h *DjHandler) List(c echo.Context) error {
	offset, limit, err := pageParams(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	items, err := h.svc.ListDjs(c.Request().Context(), offset, limit)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *DjHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	dj, err := h.svc.GetDj(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dj)
}

func (h *DjHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req dto.UpdateDjRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	dj, err := h.svc.UpdateDj(c.Request().Context(), id, &req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dj)
}

func (h *DjHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.svc.DeleteDj(c.Request().Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

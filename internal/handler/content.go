package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/azulu-crm/internal/apperr"
	"github.com/iliyamo/azulu-crm/internal/dto"
	"github.com/iliyamo/azulu-crm/internal/service"
)

// ContentHandler serves /content, addressed by key rather than id.
type ContentHandler struct {
	svc service.ContentService
	log *zap.Logger
}

func NewContentHandler(svc service.ContentService, log *zap.Logger) *ContentHandler {
	if svc == nil {
		panic("nil service passed to NewContentHandler")
	}
	return &ContentHandler{svc: svc, log: nopIfNil(log)}
}

func (h *ContentHandler) Create(c echo.Context) error {
	var req dto.CreateContentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	item, err := h.svc.CreateContent(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, item)
}

func (h *ContentHandler) List(c echo.Context) error {
	offset, limit, err := pageParams(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	items, err := h.svc.ListContent(c.Request().Context(), offset, limit)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *ContentHandler) Get(c echo.Context) error {
	key, err := pathKey(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	item, err := h.svc.GetContent(c.Request().Context(), key)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ContentHandler) Update(c echo.Context) error {
	key, err := pathKey(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var req dto.UpdateContentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	item, err := h.svc.UpdateContent(c.Request().Context(), key, &req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, item)
}

func (h *ContentHandler) Delete(c echo.Context) error {
	key, err := pathKey(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.svc.DeleteContent(c.Request().Context(), key); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func pathKey(c echo.Context) (string, error) {
	key := strings.TrimSpace(c.Param("key"))
	if key == "" {
		return "", apperr.Validation("key is required", apperr.FieldError{Field: "key", Rule: "required"})
	}
	return key, nil
}

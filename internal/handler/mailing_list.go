package handler

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/azulu-crm/internal/apperr"
	"github.com/iliyamo/azulu-crm/internal/dto"
	"github.com/iliyamo/azulu-crm/internal/model"
	"github.com/iliyamo/azulu-crm/internal/service"
)

// MailingListHandler serves the public subscribe/unsubscribe endpoints and
// the admin views over /mailing-list.
type MailingListHandler struct {
	svc service.MailingListService
	log *zap.Logger
}

func NewMailingListHandler(svc service.MailingListService, log *zap.Logger) *MailingListHandler {
	if svc == nil {
		panic("nil service passed to NewMailingListHandler")
	}
	return &MailingListHandler{svc: svc, log: nopIfNil(log)}
}

// Subscribe handles POST /mailing-list/subscribe.  A new row answers 201;
// an already active or reactivated row answers 200 with the same id.
func (h *MailingListHandler) Subscribe(c echo.Context) error {
	var req dto.SubscribeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return respondError(c, h.log, err)
	}
	entry, outcome, err := h.svc.Subscribe(c.Request().Context(), &req)
	if err != nil {
		return respondError(c, h.log, err)
	}
	status := http.StatusOK
	if outcome == model.SubscribeCreated {
		status = http.StatusCreated
	}
	return c.JSON(status, entry)
}

// Unsubscribe handles GET /mailing-list/unsubscribe/:email
func (h *MailingListHandler) Unsubscribe(c echo.Context) error {
	email := c.Param("email")
	if unescaped, err := url.PathUnescape(email); err == nil {
		email = unescaped
	}
	if dto.NormalizeEmail(email) == "" {
		return respondError(c, h.log, apperr.Validation("email is required", apperr.FieldError{Field: "email", Rule: "required"}))
	}
	if err := h.svc.Unsubscribe(c.Request().Context(), email); err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Successfully unsubscribed"})
}

// List handles GET /mailing-list?subscribed_only=&skip=&limit=
func (h *MailingListHandler) List(c echo.Context) error {
	subscribedOnly, err := queryBool(c, "subscribed_only", true)
	if err != nil {
		return respondError(c, h.log, err)
	}
	offset, limit, err := pageParams(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	items, err := h.svc.ListEntries(c.Request().Context(), subscribedOnly, offset, limit)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, items)
}

func (h *MailingListHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	entry, err := h.svc.GetEntry(c.Request().Context(), id)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *MailingListHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.svc.DeleteEntry(c.Request().Context(), id); err != nil {
		return respondError(c, h.log, err)
	}
	return c.NoContent(http.StatusNoContent)
}

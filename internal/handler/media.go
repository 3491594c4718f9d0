package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/azulu-crm/internal/media"
)

// MediaHandler exposes the image collaborator: a signature for direct
// browser uploads and a proxied server-side upload.
type MediaHandler struct {
	up  media.Uploader
	log *zap.Logger
}

func NewMediaHandler(up media.Uploader, log *zap.Logger) *MediaHandler {
	if up == nil {
		panic("nil uploader passed to NewMediaHandler")
	}
	return &MediaHandler{up: up, log: nopIfNil(log)}
}

// uploadResponse mirrors the stored image plus a success flag.
type uploadResponse struct {
	Success bool `json:"success"`
	*media.Image
}

// Signature handles GET /cloudinary/signature
func (h *MediaHandler) Signature(c echo.Context) error {
	sig, err := h.up.Sign()
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, sig)
}

// Upload handles POST /upload/image with multipart field "file" and an
// optional "folder".
func (h *MediaHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "file is required"})
	}
	if ct := fh.Header.Get(echo.HeaderContentType); ct != "" && !strings.HasPrefix(ct, "image/") {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "file must be an image"})
	}
	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"success": false, "error": "could not read file"})
	}
	defer f.Close()

	img, err := h.up.Upload(c.Request().Context(), f, strings.TrimSpace(c.FormValue("folder")))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(http.StatusOK, uploadResponse{Success: true, Image: img})
}

func (h *MediaHandler) fail(c echo.Context, err error) error {
	if errors.Is(err, media.ErrNotConfigured) {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"success": false, "error": "image uploads are not configured"})
	}
	h.log.Error("media request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.JSON(http.StatusBadGateway, echo.Map{"success": false, "error": err.Error()})
}

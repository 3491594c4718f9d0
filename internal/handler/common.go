package handler // handler defines http handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/iliyamo/azulu-crm/internal/apperr"
)

// errorBody is the JSON shape of every failed request.
type errorBody struct {
	Error  string              `json:"error"`
	Fields []apperr.FieldError `json:"fields,omitempty"`
}

// statusFor maps an error kind onto its HTTP status.  Conflicts answer 400
// like validation failures.
func statusFor(k apperr.Kind) int {
	switch k {
	case apperr.KindValidation, apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err as JSON.  Anything that maps to 500 is logged with
// its cause and answered with a generic message.
func respondError(c echo.Context, log *zap.Logger, err error) error {
	var ae *apperr.Error
	if !errors.As(err, &ae) {
		log.Error("unhandled error",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.JSON(http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}

	status := statusFor(ae.Kind)
	if status == http.StatusInternalServerError {
		log.Error("request failed",
			zap.String("method", c.Request().Method),
			zap.String("path", c.Path()),
			zap.Stringer("kind", ae.Kind),
			zap.Error(ae),
		)
		return c.JSON(status, errorBody{Error: "internal server error"})
	}
	return c.JSON(status, errorBody{Error: ae.Message, Fields: ae.Fields})
}

// normalizer is implemented by requests that canonicalize their fields.
type normalizer interface {
	Normalize()
}

// bindAndValidate decodes the JSON body into req and runs the registered
// validator.  Both failures come back as validation errors.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		msg := "invalid request body"
		var he *echo.HTTPError
		if errors.As(err, &he) && he.Internal != nil {
			msg += ": " + he.Internal.Error()
		}
		return apperr.Validation(msg)
	}
	// validate the stored form, not the raw input
	if n, ok := req.(normalizer); ok {
		n.Normalize()
	}
	if err := c.Validate(req); err != nil {
		if apperr.Is(err, apperr.KindValidation) {
			return err
		}
		return apperr.Validation(err.Error())
	}
	return nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.Validation("invalid id", apperr.FieldError{Field: "id", Rule: "numeric"})
	}
	return id, nil
}

// pageParams reads the skip and limit query parameters.  Missing values are
// zero and the service applies its defaults.
func pageParams(c echo.Context) (offset, limit int, err error) {
	if offset, err = queryInt(c, "skip"); err != nil {
		return 0, 0, err
	}
	if limit, err = queryInt(c, "limit"); err != nil {
		return 0, 0, err
	}
	return offset, limit, nil
}

func queryInt(c echo.Context, name string) (int, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, apperr.Validation("invalid query parameter "+name, apperr.FieldError{Field: name, Rule: "min", Param: "0"})
	}
	return n, nil
}

func queryBool(c echo.Context, name string, def bool) (bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperr.Validation("invalid query parameter "+name, apperr.FieldError{Field: name, Rule: "boolean"})
	}
	return b, nil
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

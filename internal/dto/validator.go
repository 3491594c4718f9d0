// Package dto holds the request shapes accepted by the HTTP layer and the
// validator that checks them.  Create requests carry every required field;
// update requests use pointer (or nil-able slice) fields so that only the
// supplied fields are applied.
package dto

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/iliyamo/azulu-crm/internal/apperr"
	"github.com/iliyamo/azulu-crm/internal/model"
)

// clockPattern matches a 24h "HH:MM" wall-clock time.
var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Validator wraps validator/v10 with the custom rules used by the request
// types.  It satisfies echo.Validator.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds a Validator that reports fields by their JSON name.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(optionalValue, Optional[string]{}, Optional[float64]{})
	// Registration only fails on an empty tag or nil func.
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("ticket_status", func(fl validator.FieldLevel) bool {
		return model.TicketStatus(fl.Field().String()).Valid()
	})
	return &Validator{v: v}
}

// Validate checks i and returns an *apperr.Error of kind Validation listing
// every offending field, or nil.
func (cv *Validator) Validate(i any) error {
	err := cv.v.Struct(i)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperr.Validation(err.Error())
	}
	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.FieldError{
			Field: fieldPath(fe.Namespace()),
			Rule:  fe.Tag(),
			Param: fe.Param(),
		})
	}
	return apperr.Validation("invalid input", fields...)
}

// fieldPath drops the top-level struct name: "CreateDjRequest.socials.tiktok"
// becomes "socials.tiktok".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// nonNil turns a nil slice into an empty one so stored lists are never NULL.
func nonNil(s []string) model.StringList {
	if s == nil {
		return model.StringList{}
	}
	return model.StringList(s)
}

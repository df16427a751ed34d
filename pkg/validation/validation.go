// Package validation configures the struct validator shared by the domain
// validators and turns its failures into API errors.
package validation

import (
	"errors"
	"fmt"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/model"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	TagRoomType          = "room_type"
	TagReservationStatus = "reservation_status"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type FieldErrors []FieldError

func (e FieldErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	return fmt.Sprintf("validation failed: %d error(s)", len(e))
}

func (e FieldErrors) AppError(message string) *apperrors.AppError {
	return apperrors.Validation(message, map[string]any{"errors": e})
}

// Requirement pairs a field name with whether the caller supplied it.
type Requirement struct {
	Field   string
	Present bool
}

// FirstMissing returns a business rule error naming the first requirement
// that is not present. Requirements are checked in the order given.
func FirstMissing(resource string, requirements ...Requirement) error {
	for _, r := range requirements {
		if !r.Present {
			return apperrors.BusinessRule(fmt.Sprintf("%s %s must not be empty", resource, r.Field)).
				WithDetails(map[string]any{"field": r.Field})
		}
	}
	return nil
}

func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	_ = v.RegisterValidation(TagRoomType, func(fl validator.FieldLevel) bool {
		return model.RoomType(fl.Field().String()).IsValid()
	})
	_ = v.RegisterValidation(TagReservationStatus, func(fl validator.FieldLevel) bool {
		return model.ReservationStatus(fl.Field().String()).IsValid()
	})

	return v
}

// Struct validates s and returns FieldErrors for tag failures.
func Struct(v *validator.Validate, s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		return Translate(validationErrs)
	}
	return err
}

func Translate(errs validator.ValidationErrors) FieldErrors {
	out := make(FieldErrors, 0, len(errs))
	for _, err := range errs {
		out = append(out, FieldError{
			Field:   err.Field(),
			Message: message(err),
		})
	}
	return out
}

func message(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "e164":
		return "must be a valid phone number"
	case "mongodb":
		return "must be a valid id"
	case "min":
		return fmt.Sprintf("must be at least %s characters", err.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", err.Param())
	case TagRoomType:
		return "must be one of: " + joinValues(model.RoomTypes)
	case TagReservationStatus:
		return "must be one of: " + joinValues(model.ReservationStatuses)
	default:
		return fmt.Sprintf("failed on the '%s' rule", err.Tag())
	}
}

func joinValues[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}

package validator

import (
	"errors"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/model"
	"innkeep/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type ReservationValidator struct {
	validate *validator.Validate
}

func NewReservationValidator() *ReservationValidator {
	return &ReservationValidator{
		validate: validation.New(),
	}
}

// Validate checks a reservation candidate and stops at the first problem:
// missing fields in declaration order, then field formats, then the date range.
func (v *ReservationValidator) Validate(r *model.Reservation) error {
	if r == nil {
		return apperrors.BusinessRule("Reservation must not be empty")
	}

	if err := validation.FirstMissing("Reservation",
		validation.Requirement{Field: "customer_id", Present: r.CustomerID != ""},
		validation.Requirement{Field: "room_id", Present: r.RoomID != ""},
		validation.Requirement{Field: "checkin", Present: r.Checkin != nil},
		validation.Requirement{Field: "checkout", Present: r.Checkout != nil},
		validation.Requirement{Field: "status", Present: r.Status != ""},
	); err != nil {
		return err
	}

	if err := validation.Struct(v.validate, r); err != nil {
		var fieldErrs validation.FieldErrors
		if errors.As(err, &fieldErrs) {
			return fieldErrs.AppError("Reservation validation failed")
		}
		return apperrors.Internal("Failed to validate reservation", err)
	}

	var dateErrs validation.FieldErrors
	if !r.Checkin.IsValid() {
		dateErrs = append(dateErrs, validation.FieldError{Field: "checkin", Message: "must be a valid calendar date"})
	}
	if !r.Checkout.IsValid() {
		dateErrs = append(dateErrs, validation.FieldError{Field: "checkout", Message: "must be a valid calendar date"})
	}
	if len(dateErrs) > 0 {
		return apperrors.Validation("Reservation validation failed", map[string]any{"errors": dateErrs})
	}

	if r.Checkin.After(*r.Checkout) {
		return apperrors.InvalidDateRange("Checkin date must not be after checkout date").WithDetails(map[string]any{
			"checkin":  r.Checkin.String(),
			"checkout": r.Checkout.String(),
		})
	}

	return nil
}

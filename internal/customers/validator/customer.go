package validator

import (
	"errors"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/model"
	"innkeep/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type CustomerValidator struct {
	validate *validator.Validate
}

func NewCustomerValidator() *CustomerValidator {
	return &CustomerValidator{
		validate: validation.New(),
	}
}

// Validate expects the customer to be sanitized already, so phone is
// checked in its E.164 form.
func (v *CustomerValidator) Validate(c *model.Customer) error {
	if c == nil {
		return apperrors.BusinessRule("Customer must not be empty")
	}

	if err := validation.FirstMissing("Customer",
		validation.Requirement{Field: "name", Present: c.Name != ""},
		validation.Requirement{Field: "email", Present: c.Email != ""},
		validation.Requirement{Field: "phone", Present: c.Phone != ""},
	); err != nil {
		return err
	}

	if err := validation.Struct(v.validate, c); err != nil {
		var fieldErrs validation.FieldErrors
		if errors.As(err, &fieldErrs) {
			return fieldErrs.AppError("Customer validation failed")
		}
		return apperrors.Internal("Failed to validate customer", err)
	}

	if c.CreatedAt != nil && !c.CreatedAt.IsValid() {
		return validation.FieldErrors{{Field: "created_at", Message: "must be a valid calendar date"}}.
			AppError("Customer validation failed")
	}

	return nil
}

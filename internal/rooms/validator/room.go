package validator

import (
	"errors"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/model"
	"innkeep/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type RoomValidator struct {
	validate *validator.Validate
}

func NewRoomValidator() *RoomValidator {
	return &RoomValidator{
		validate: validation.New(),
	}
}

func (v *RoomValidator) Validate(room *model.Room) error {
	if room == nil {
		return apperrors.BusinessRule("Room must not be empty")
	}

	if err := validation.FirstMissing("Room",
		validation.Requirement{Field: "number", Present: room.Number != ""},
		validation.Requirement{Field: "type", Present: room.Type != ""},
		validation.Requirement{Field: "price", Present: room.Price != nil},
	); err != nil {
		return err
	}

	if err := validation.Struct(v.validate, room); err != nil {
		var fieldErrs validation.FieldErrors
		if errors.As(err, &fieldErrs) {
			return fieldErrs.AppError("Room validation failed")
		}
		return apperrors.Internal("Failed to validate room", err)
	}

	if !model.IsNonNegativeDecimal(*room.Price) {
		return validation.FieldErrors{{Field: "price", Message: "must be a non-negative number"}}.
			AppError("Room validation failed")
	}

	return nil
}

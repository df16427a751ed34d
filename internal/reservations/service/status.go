package service

import (
	"fmt"
	apperrors "innkeep/pkg/errors"
	"innkeep/pkg/model"

	"cloud.google.com/go/civil"
)

// DeriveStatus computes the lifecycle status of a stay as of today.
// ABSENCE and CANCELED are final and cannot be derived from.
func DeriveStatus(current model.ReservationStatus, checkin, checkout, today civil.Date) (model.ReservationStatus, error) {
	if current.IsFinal() {
		return "", apperrors.BusinessRule(fmt.Sprintf("Reservation status %s is final", current)).
			WithDetails(map[string]any{"status": string(current)})
	}

	switch {
	case checkin.After(today):
		return model.StatusScheduled, nil
	case checkout.Before(today):
		return model.StatusFinished, nil
	case !checkin.After(today) && !checkout.Before(today):
		return model.StatusInUse, nil
	default:
		return model.StatusScheduled, nil
	}
}

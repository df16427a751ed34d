package model

import (
	"time"

	"cloud.google.com/go/civil"
)

type ReservationStatus string

const (
	StatusScheduled ReservationStatus = "SCHEDULED"
	StatusInUse     ReservationStatus = "IN_USE"
	StatusAbsence   ReservationStatus = "ABSENCE"
	StatusFinished  ReservationStatus = "FINISHED"
	StatusCanceled  ReservationStatus = "CANCELED"
)

var ReservationStatuses = []ReservationStatus{
	StatusScheduled, StatusInUse, StatusAbsence, StatusFinished, StatusCanceled,
}

// OccupyingStatuses hold a room and therefore block overlapping reservations.
var OccupyingStatuses = []ReservationStatus{StatusScheduled, StatusInUse}

func (s ReservationStatus) IsValid() bool {
	for _, known := range ReservationStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsFinal reports whether no further status can be derived from s.
func (s ReservationStatus) IsFinal() bool {
	return s == StatusAbsence || s == StatusCanceled
}

func (s ReservationStatus) IsOccupying() bool {
	return s == StatusScheduled || s == StatusInUse
}

type Reservation struct {
	ID         string            `json:"id,omitempty" validate:"omitempty,mongodb"`
	CustomerID string            `json:"customer_id" validate:"required,mongodb"`
	RoomID     string            `json:"room_id" validate:"required,mongodb"`
	RoomNumber string            `json:"room_number,omitempty"`
	Checkin    *civil.Date       `json:"checkin"`
	Checkout   *civil.Date       `json:"checkout"`
	Status     ReservationStatus `json:"status" validate:"required,reservation_status"`
	CreatedAt  time.Time         `json:"created_at,omitempty"`
}

// Overlaps reports whether r occupies any night of [checkin, checkout).
// Stays touching on a boundary day do not overlap.
func (r *Reservation) Overlaps(checkin, checkout civil.Date) bool {
	if r.Checkin == nil || r.Checkout == nil {
		return false
	}
	return r.Checkout.After(checkin) && r.Checkin.Before(checkout)
}

package model

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func date(year int, month time.Month, day int) civil.Date {
	return civil.Date{Year: year, Month: month, Day: day}
}

func datePtr(year int, month time.Month, day int) *civil.Date {
	d := date(year, month, day)
	return &d
}

func TestReservation_Overlaps(t *testing.T) {
	existing := &Reservation{
		Checkin:  datePtr(2024, time.June, 10),
		Checkout: datePtr(2024, time.June, 15),
	}

	tests := []struct {
		name     string
		checkin  civil.Date
		checkout civil.Date
		want     bool
	}{
		{"identical stay", date(2024, time.June, 10), date(2024, time.June, 15), true},
		{"starts inside", date(2024, time.June, 12), date(2024, time.June, 20), true},
		{"ends inside", date(2024, time.June, 5), date(2024, time.June, 11), true},
		{"contains existing", date(2024, time.June, 1), date(2024, time.June, 30), true},
		{"checks in on existing checkout day", date(2024, time.June, 15), date(2024, time.June, 18), false},
		{"checks out on existing checkin day", date(2024, time.June, 7), date(2024, time.June, 10), false},
		{"entirely before", date(2024, time.May, 1), date(2024, time.May, 5), false},
		{"entirely after", date(2024, time.July, 1), date(2024, time.July, 5), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := existing.Overlaps(tt.checkin, tt.checkout); got != tt.want {
				t.Errorf("Overlaps(%v, %v) = %v, want %v", tt.checkin, tt.checkout, got, tt.want)
			}
		})
	}
}

func TestReservation_OverlapsWithoutDates(t *testing.T) {
	r := &Reservation{Checkin: datePtr(2024, time.June, 10)}
	if r.Overlaps(date(2024, time.June, 1), date(2024, time.June, 30)) {
		t.Error("a reservation without checkout must not report an overlap")
	}
}

func TestReservationStatus(t *testing.T) {
	tests := []struct {
		status    ReservationStatus
		valid     bool
		final     bool
		occupying bool
	}{
		{StatusScheduled, true, false, true},
		{StatusInUse, true, false, true},
		{StatusFinished, true, false, false},
		{StatusAbsence, true, true, false},
		{StatusCanceled, true, true, false},
		{"BOOKED", false, false, false},
		{"", false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := tt.status.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
			if got := tt.status.IsFinal(); got != tt.final {
				t.Errorf("IsFinal() = %v, want %v", got, tt.final)
			}
			if got := tt.status.IsOccupying(); got != tt.occupying {
				t.Errorf("IsOccupying() = %v, want %v", got, tt.occupying)
			}
		})
	}
}

func TestRoomType_IsValid(t *testing.T) {
	for _, rt := range RoomTypes {
		if !rt.IsValid() {
			t.Errorf("%s should be valid", rt)
		}
	}
	if len(RoomTypes) != 16 {
		t.Errorf("expected 16 room types, got %d", len(RoomTypes))
	}
	if RoomType("PENTHOUSE").IsValid() {
		t.Error("PENTHOUSE should not be valid")
	}
	if RoomType("single").IsValid() {
		t.Error("room types are case sensitive")
	}
}

func TestIsNonNegativeDecimal(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"0", true},
		{"0.00", true},
		{"129.90", true},
		{"-0.01", false},
		{"-250", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := primitive.ParseDecimal128(tt.in)
			if err != nil {
				t.Fatalf("ParseDecimal128(%q): %v", tt.in, err)
			}
			if got := IsNonNegativeDecimal(d); got != tt.want {
				t.Errorf("IsNonNegativeDecimal(%s) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRoomLockID(t *testing.T) {
	if got := RoomLockID("507f1f77bcf86cd799439012"); got != "reservation_lock_room_507f1f77bcf86cd799439012" {
		t.Errorf("RoomLockID() = %q", got)
	}
}

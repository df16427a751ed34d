//go:build integration

package integration

import (
	"context"
	"net/http"
	"testing"
	"time"

	"innkeep/test/common"
)

type reservationBody struct {
	ID         string `json:"id"`
	RoomNumber string `json:"room_number"`
	Checkin    string `json:"checkin"`
	Checkout   string `json:"checkout"`
	Status     string `json:"status"`
}

// day returns today shifted by offset days. Offsets of two or more keep
// tests independent of the server's hotel timezone.
func day(offset int) string {
	return time.Now().UTC().AddDate(0, 0, offset).Format("2006-01-02")
}

func TestReservations(t *testing.T) {
	mongo, clients := common.NewTestEnv().Setup(t)
	ctx := context.Background()

	customerID := common.MustCreateCustomer(t, clients.Customers, common.NewCustomerBuilder().Build())

	open := func(t *testing.T, roomID, checkin, checkout string) reservationBody {
		t.Helper()
		resp, err := clients.Reservations.Open(ctx, common.Reservation(customerID, roomID, checkin, checkout))
		if err != nil || resp.StatusCode != http.StatusCreated {
			t.Fatalf("open: %v %d %s", err, resp.StatusCode, resp.Body)
		}
		var r reservationBody
		if err := resp.DecodeData(&r); err != nil {
			t.Fatal(err)
		}
		return r
	}

	t.Run("status is derived from dates", func(t *testing.T) {
		tests := []struct {
			name     string
			checkin  string
			checkout string
			want     string
		}{
			{name: "future stay", checkin: day(10), checkout: day(12), want: "SCHEDULED"},
			{name: "current stay", checkin: day(-2), checkout: day(2), want: "IN_USE"},
			{name: "past stay", checkin: day(-12), checkout: day(-10), want: "FINISHED"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				roomID := common.MustCreateRoom(t, clients.Rooms, common.NewRoomBuilder().Build())
				r := open(t, roomID, tt.checkin, tt.checkout)
				if r.Status != tt.want {
					t.Errorf("status = %s, want %s", r.Status, tt.want)
				}
				if r.RoomNumber == "" {
					t.Error("room number should be copied onto the reservation")
				}
			})
		}
	})

	t.Run("overlapping stay is rejected", func(t *testing.T) {
		roomID := common.MustCreateRoom(t, clients.Rooms, common.NewRoomBuilder().Build())
		open(t, roomID, day(20), day(25))

		resp, err := clients.Reservations.Open(ctx, common.Reservation(customerID, roomID, day(22), day(27)))
		common.ExpectError(t, resp, err, http.StatusUnprocessableEntity, "ROOM_UNAVAILABLE")
	})

	t.Run("touching stays are allowed", func(t *testing.T) {
		roomID := common.MustCreateRoom(t, clients.Rooms, common.NewRoomBuilder().Build())
		open(t, roomID, day(30), day(33))
		open(t, roomID, day(33), day(35))
	})

	t.Run("canceled stay frees the room", func(t *testing.T) {
		roomID := common.MustCreateRoom(t, clients.Rooms, common.NewRoomBuilder().Build())
		first := open(t, roomID, day(40), day(43))

		resp, err := clients.Reservations.Cancel(ctx, first.ID)
		if err != nil || resp.StatusCode != http.StatusOK {
			t.Fatalf("cancel: %v %d %s", err, resp.StatusCode, resp.Body)
		}
		open(t, roomID, day(41), day(42))

		resp, err = clients.Reservations.Cancel(ctx, first.ID)
		if err != nil || resp.StatusCode != http.StatusOK {
			t.Fatalf("second cancel: %v %d %s", err, resp.StatusCode, resp.Body)
		}
	})

	t.Run("checkin after checkout", func(t *testing.T) {
		roomID := common.MustCreateRoom(t, clients.Rooms, common.NewRoomBuilder().Build())
		resp, err := clients.Reservations.Open(ctx, common.Reservation(customerID, roomID, day(5), day(3)))
		common.ExpectError(t, resp, err, http.StatusUnprocessableEntity, "INVALID_DATE_RANGE")
	})

	t.Run("unknown room", func(t *testing.T) {
		resp, err := clients.Reservations.Open(ctx, common.Reservation(customerID, "65f000000000000000000099", day(5), day(6)))
		common.ExpectError(t, resp, err, http.StatusNotFound, "NOT_FOUND")
	})

	t.Run("ended stay cannot be rederived", func(t *testing.T) {
		roomID := common.MustCreateRoom(t, clients.Rooms, common.NewRoomBuilder().Build())
		r := open(t, roomID, day(50), day(52))
		mongo.SetReservationStatus(t, r.ID, "ABSENCE")

		resp, err := clients.Reservations.GetByID(ctx, r.ID)
		if err != nil || resp.StatusCode != http.StatusOK {
			t.Fatalf("get: %v %d", err, resp.StatusCode)
		}
		var stored reservationBody
		if err := resp.DecodeData(&stored); err != nil || stored.Status != "ABSENCE" {
			t.Fatalf("stored status = %q (%v)", stored.Status, err)
		}
	})

	t.Run("by date range and in use", func(t *testing.T) {
		roomID := common.MustCreateRoom(t, clients.Rooms, common.NewRoomBuilder().Build())
		r := open(t, roomID, day(-3), day(3))

		resp, err := clients.Reservations.FindInUse(ctx)
		if err != nil || resp.StatusCode != http.StatusOK {
			t.Fatalf("in use: %v %d", err, resp.StatusCode)
		}
		var inUse []reservationBody
		if err := resp.DecodeData(&inUse); err != nil {
			t.Fatal(err)
		}
		if !containsID(inUse, r.ID) {
			t.Errorf("in-use list is missing %s", r.ID)
		}

		resp, err = clients.Reservations.FindByDateRange(ctx, day(-4), day(-2))
		if err != nil || resp.StatusCode != http.StatusOK {
			t.Fatalf("by date range: %v %d", err, resp.StatusCode)
		}
		var between []reservationBody
		if err := resp.DecodeData(&between); err != nil {
			t.Fatal(err)
		}
		if !containsID(between, r.ID) {
			t.Errorf("date range list is missing %s", r.ID)
		}

		resp, err = clients.Reservations.FindByDateRange(ctx, day(2), day(-2))
		common.ExpectError(t, resp, err, http.StatusBadRequest, "INVALID_INPUT")
	})

	t.Run("referenced room cannot be deleted", func(t *testing.T) {
		roomID := common.MustCreateRoom(t, clients.Rooms, common.NewRoomBuilder().Build())
		open(t, roomID, day(60), day(61))

		resp, err := clients.Rooms.Delete(ctx, roomID)
		common.ExpectError(t, resp, err, http.StatusUnprocessableEntity, "BUSINESS_RULE_VIOLATION")
	})
}

func containsID(list []reservationBody, id string) bool {
	for _, r := range list {
		if r.ID == id {
			return true
		}
	}
	return false
}

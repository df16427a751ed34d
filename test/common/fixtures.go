package common

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"

	"innkeep/pkg/client"
)

var sequence atomic.Int64

// Unique returns prefix with a process wide counter appended.
func Unique(prefix string) string {
	return fmt.Sprintf("%s%d", prefix, sequence.Add(1))
}

type RoomBuilder struct {
	room map[string]any
}

func NewRoomBuilder() *RoomBuilder {
	return &RoomBuilder{room: map[string]any{
		"number": Unique("R"),
		"type":   "DOUBLE",
		"price":  "129.90",
	}}
}

func (b *RoomBuilder) WithNumber(number string) *RoomBuilder {
	b.room["number"] = number
	return b
}

func (b *RoomBuilder) WithType(roomType string) *RoomBuilder {
	b.room["type"] = roomType
	return b
}

func (b *RoomBuilder) WithPrice(price string) *RoomBuilder {
	b.room["price"] = price
	return b
}

func (b *RoomBuilder) Without(field string) *RoomBuilder {
	delete(b.room, field)
	return b
}

func (b *RoomBuilder) Build() map[string]any {
	return b.room
}

type CustomerBuilder struct {
	customer map[string]any
}

func NewCustomerBuilder() *CustomerBuilder {
	return &CustomerBuilder{customer: map[string]any{
		"name":  "Dana Levi",
		"email": Unique("guest") + "@example.com",
		"phone": "+16502530000",
	}}
}

func (b *CustomerBuilder) WithEmail(email string) *CustomerBuilder {
	b.customer["email"] = email
	return b
}

func (b *CustomerBuilder) WithPhone(phone string) *CustomerBuilder {
	b.customer["phone"] = phone
	return b
}

func (b *CustomerBuilder) Without(field string) *CustomerBuilder {
	delete(b.customer, field)
	return b
}

func (b *CustomerBuilder) Build() map[string]any {
	return b.customer
}

// Reservation is a request body for opening a reservation.
func Reservation(customerID, roomID, checkin, checkout string) map[string]any {
	return map[string]any{
		"customer_id": customerID,
		"room_id":     roomID,
		"checkin":     checkin,
		"checkout":    checkout,
		"status":      "SCHEDULED",
	}
}

type created struct {
	ID string `json:"id"`
}

func MustCreateRoom(t *testing.T, rooms *client.RoomClient, body map[string]any) string {
	t.Helper()
	resp, err := rooms.Create(context.Background(), body)
	return mustCreated(t, "room", resp, err)
}

func MustCreateCustomer(t *testing.T, customers *client.CustomerClient, body map[string]any) string {
	t.Helper()
	resp, err := customers.Create(context.Background(), body)
	return mustCreated(t, "customer", resp, err)
}

func mustCreated(t *testing.T, what string, resp *client.Response, err error) string {
	t.Helper()
	if err != nil {
		t.Fatalf("create %s: %v", what, err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create %s: status %d: %s", what, resp.StatusCode, resp.Body)
	}
	var c created
	if err := resp.DecodeData(&c); err != nil || c.ID == "" {
		t.Fatalf("create %s: no id in response %s (%v)", what, resp.Body, err)
	}
	return c.ID
}

// ExpectError fails the test unless resp carries status and code.
func ExpectError(t *testing.T, resp *client.Response, err error, status int, code string) {
	t.Helper()
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != status {
		t.Fatalf("status = %d, want %d: %s", resp.StatusCode, status, resp.Body)
	}
	if got := resp.DecodeError().Code; got != code {
		t.Fatalf("code = %q, want %q", got, code)
	}
}

//go:build integration

package integration

import (
	"context"
	"net/http"
	"testing"

	"innkeep/test/common"
)

func TestRooms(t *testing.T) {
	_, clients := common.NewTestEnv().Setup(t)
	ctx := context.Background()

	t.Run("create normalizes number", func(t *testing.T) {
		resp, err := clients.Rooms.Create(ctx, common.NewRoomBuilder().WithNumber(" 12 a ").Build())
		if err != nil || resp.StatusCode != http.StatusCreated {
			t.Fatalf("create: %v %d %s", err, resp.StatusCode, resp.Body)
		}
		var room struct {
			Number string `json:"number"`
			Price  string `json:"price"`
		}
		if err := resp.DecodeData(&room); err != nil {
			t.Fatal(err)
		}
		if room.Number != "12A" {
			t.Errorf("number = %q, want 12A", room.Number)
		}
		if resp.Header.Get("Location") == "" {
			t.Error("expected a Location header")
		}
	})

	t.Run("duplicate number", func(t *testing.T) {
		body := common.NewRoomBuilder().Build()
		common.MustCreateRoom(t, clients.Rooms, body)

		resp, err := clients.Rooms.Create(ctx, common.NewRoomBuilder().WithNumber(body["number"].(string)).Build())
		common.ExpectError(t, resp, err, http.StatusUnprocessableEntity, "BUSINESS_RULE_VIOLATION")
	})

	t.Run("missing type", func(t *testing.T) {
		resp, err := clients.Rooms.Create(ctx, common.NewRoomBuilder().Without("type").Build())
		common.ExpectError(t, resp, err, http.StatusUnprocessableEntity, "BUSINESS_RULE_VIOLATION")
	})

	t.Run("negative price", func(t *testing.T) {
		resp, err := clients.Rooms.Create(ctx, common.NewRoomBuilder().WithPrice("-1").Build())
		common.ExpectError(t, resp, err, http.StatusUnprocessableEntity, "VALIDATION_ERROR")
	})

	t.Run("update with mismatched id", func(t *testing.T) {
		id := common.MustCreateRoom(t, clients.Rooms, common.NewRoomBuilder().Build())
		body := common.NewRoomBuilder().Build()
		body["id"] = "65f000000000000000000099"

		resp, err := clients.Rooms.Update(ctx, id, body)
		common.ExpectError(t, resp, err, http.StatusUnprocessableEntity, "BUSINESS_RULE_VIOLATION")
	})

	t.Run("update and delete", func(t *testing.T) {
		id := common.MustCreateRoom(t, clients.Rooms, common.NewRoomBuilder().Build())
		body := common.NewRoomBuilder().WithType("SUITE").Build()
		body["id"] = id

		resp, err := clients.Rooms.Update(ctx, id, body)
		if err != nil || resp.StatusCode != http.StatusOK {
			t.Fatalf("update: %v %d %s", err, resp.StatusCode, resp.Body)
		}

		resp, err = clients.Rooms.Delete(ctx, id)
		if err != nil || resp.StatusCode != http.StatusNoContent {
			t.Fatalf("delete: %v %d %s", err, resp.StatusCode, resp.Body)
		}

		resp, err = clients.Rooms.GetByID(ctx, id)
		common.ExpectError(t, resp, err, http.StatusNotFound, "NOT_FOUND")
	})
}

//go:build integration

package integration

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"innkeep/test/common"
)

func TestCustomers(t *testing.T) {
	_, clients := common.NewTestEnv().Setup(t)
	ctx := context.Background()

	t.Run("create normalizes contact details", func(t *testing.T) {
		email := common.Unique("Mixed.Case") + "@Example.COM"
		resp, err := clients.Customers.Create(ctx, common.NewCustomerBuilder().
			WithEmail(email).
			WithPhone("+1 (650) 253-0000").
			Build())
		if err != nil || resp.StatusCode != http.StatusCreated {
			t.Fatalf("create: %v %d %s", err, resp.StatusCode, resp.Body)
		}

		var customer struct {
			Email     string `json:"email"`
			Phone     string `json:"phone"`
			CreatedAt string `json:"created_at"`
		}
		if err := resp.DecodeData(&customer); err != nil {
			t.Fatal(err)
		}
		if customer.Email != strings.ToLower(email) {
			t.Errorf("email = %q, want lower case", customer.Email)
		}
		if customer.Phone != "+16502530000" {
			t.Errorf("phone = %q, want +16502530000", customer.Phone)
		}
		if customer.CreatedAt == "" {
			t.Error("created_at should default to today")
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		body := common.NewCustomerBuilder().Build()
		common.MustCreateCustomer(t, clients.Customers, body)

		resp, err := clients.Customers.Create(ctx, common.NewCustomerBuilder().WithEmail(body["email"].(string)).Build())
		common.ExpectError(t, resp, err, http.StatusUnprocessableEntity, "BUSINESS_RULE_VIOLATION")
	})

	t.Run("missing phone", func(t *testing.T) {
		resp, err := clients.Customers.Create(ctx, common.NewCustomerBuilder().Without("phone").Build())
		common.ExpectError(t, resp, err, http.StatusUnprocessableEntity, "BUSINESS_RULE_VIOLATION")
	})

	t.Run("malformed id", func(t *testing.T) {
		resp, err := clients.Customers.GetByID(ctx, "not-an-id")
		common.ExpectError(t, resp, err, http.StatusBadRequest, "INVALID_INPUT")
	})
}

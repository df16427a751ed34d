package client

import (
	"context"
	"fmt"
	"net/url"
)

type ReservationClient struct {
	httpClient *HttpClient
}

func NewReservationClient(baseURL string) *ReservationClient {
	return &ReservationClient{httpClient: NewHttpClient(baseURL)}
}

func (c *ReservationClient) Open(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/reservations", body)
}

// OpenIdempotent sends key as Idempotency-Key so a retried open is replayed
// instead of booking twice.
func (c *ReservationClient) OpenIdempotent(ctx context.Context, body any, key string) (*Response, error) {
	return c.httpClient.POSTWithHeaders(ctx, "/api/v1/reservations", body, map[string]string{
		"Idempotency-Key": key,
	})
}

func (c *ReservationClient) GetAll(ctx context.Context, limit int, offset int64) (*Response, error) {
	return c.httpClient.GET(ctx, fmt.Sprintf("/api/v1/reservations?limit=%d&offset=%d", limit, offset))
}

func (c *ReservationClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/reservations/id/"+url.PathEscape(id))
}

func (c *ReservationClient) FindByDateRange(ctx context.Context, start, end string) (*Response, error) {
	q := url.Values{}
	q.Set("start", start)
	q.Set("end", end)
	return c.httpClient.GET(ctx, "/api/v1/reservations/by-date-range?"+q.Encode())
}

func (c *ReservationClient) FindInUse(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/reservations/in-use")
}

func (c *ReservationClient) Cancel(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/reservations/cancel/"+url.PathEscape(id), nil)
}

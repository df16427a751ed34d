package client

import (
	"context"
	"fmt"
	"net/url"
)

type RoomClient struct {
	httpClient *HttpClient
}

func NewRoomClient(baseURL string) *RoomClient {
	return &RoomClient{httpClient: NewHttpClient(baseURL)}
}

func (c *RoomClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/rooms", body)
}

func (c *RoomClient) GetAll(ctx context.Context, limit int, offset int64) (*Response, error) {
	return c.httpClient.GET(ctx, fmt.Sprintf("/api/v1/rooms?limit=%d&offset=%d", limit, offset))
}

func (c *RoomClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/rooms/id/"+url.PathEscape(id))
}

func (c *RoomClient) Update(ctx context.Context, id string, body any) (*Response, error) {
	return c.httpClient.PUT(ctx, "/api/v1/rooms/id/"+url.PathEscape(id), body)
}

func (c *RoomClient) Delete(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/v1/rooms/id/"+url.PathEscape(id))
}

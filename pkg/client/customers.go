package client

import (
	"context"
	"fmt"
	"net/url"
)

type CustomerClient struct {
	httpClient *HttpClient
}

func NewCustomerClient(baseURL string) *CustomerClient {
	return &CustomerClient{httpClient: NewHttpClient(baseURL)}
}

func (c *CustomerClient) Create(ctx context.Context, body any) (*Response, error) {
	return c.httpClient.POST(ctx, "/api/v1/customers", body)
}

func (c *CustomerClient) GetAll(ctx context.Context, limit int, offset int64) (*Response, error) {
	return c.httpClient.GET(ctx, fmt.Sprintf("/api/v1/customers?limit=%d&offset=%d", limit, offset))
}

func (c *CustomerClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/customers/id/"+url.PathEscape(id))
}

func (c *CustomerClient) Update(ctx context.Context, id string, body any) (*Response, error) {
	return c.httpClient.PUT(ctx, "/api/v1/customers/id/"+url.PathEscape(id), body)
}

func (c *CustomerClient) Delete(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.DELETE(ctx, "/api/v1/customers/id/"+url.PathEscape(id))
}

package http

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
)

// CatalogClient клиент Catalog Service
type CatalogClient struct {
	client *resty.Client
}

func NewCatalogClient(baseURL string, timeout time.Duration) *CatalogClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(100 * time.Millisecond).
		AddRetryCondition(func(resp *resty.Response, err error) bool {
			return err != nil || resp.StatusCode() >= http.StatusInternalServerError
		})

	return &CatalogClient{client: client}
}

// GameExists HEAD /games/{key}: 200 - есть, 404 - нет
func (c *CatalogClient) GameExists(ctx context.Context, key string) (bool, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Head("/games/" + url.PathEscape(key))
	if err != nil {
		return false, fmt.Errorf("failed to reach catalog service: %w", err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("catalog service returned status %d", resp.StatusCode())
	}
}

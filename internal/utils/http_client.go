package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
//
// Example usage:
//
//	client := utils.NewHTTPClient("http://127.0.0.1:5001")
//	resp, err := client.R().SetHeader("X-Auth-Token", token).Get("/users")
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates a client that resolves relative request URLs against
// baseURL and sends and accepts JSON by default.
func NewHTTPClient(baseURL string) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetHeader("Accept", "application/json")

	return &HTTPClient{Client: client}
}

// WithToken returns a request pre-populated with the authentication header.
func (c *HTTPClient) WithToken(token string) *resty.Request {
	return c.R().SetHeader("X-Auth-Token", token)
}

package utils

import (
	"github.com/go-resty/resty/v2"
)

// userAgent identifies the CLI in server access logs.
const userAgent = "energy-keeper-client"

// HTTPClient embeds *resty.Client so callers use the resty API directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent client. Requests are not retried:
// register and login are not idempotent.
func NewHTTPClient() *HTTPClient {
	return &HTTPClient{Client: resty.New().SetHeader("User-Agent", userAgent)}
}

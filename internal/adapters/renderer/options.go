package renderer

import (
	"net/http"

	"github.com/okian/wrapbrain/pkg/logger"
)

// Option configures an HTTPClient.
type Option func(*HTTPClient)

// WithBaseURL overrides the rendering service base URL.
func WithBaseURL(url string) Option {
	return func(c *HTTPClient) {
		if url != "" {
			c.baseURL = url
		}
	}
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *HTTPClient) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger overrides the client logger.
func WithLogger(l logger.Logger) Option {
	return func(c *HTTPClient) {
		if l != nil {
			c.log = l
		}
	}
}

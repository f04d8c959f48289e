package ai

import (
	openai "github.com/sashabaranov/go-openai"

	"github.com/okian/wrapbrain/pkg/logger"
)

// Option configures a Client and its underlying API client config.
type Option func(*Client, *openai.ClientConfig)

// WithBaseURL points the client at a compatible API endpoint.
func WithBaseURL(url string) Option {
	return func(_ *Client, cfg *openai.ClientConfig) {
		if url != "" {
			cfg.BaseURL = url
		}
	}
}

// WithModel sets the chat model used for analysis.
func WithModel(model string) Option {
	return func(c *Client, _ *openai.ClientConfig) {
		if model != "" {
			c.model = model
		}
	}
}

// WithMaxTokens caps the response size.
func WithMaxTokens(n int) Option {
	return func(c *Client, _ *openai.ClientConfig) {
		if n > 0 {
			c.maxTokens = n
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float32) Option {
	return func(c *Client, _ *openai.ClientConfig) {
		if t >= 0 {
			c.temperature = t
		}
	}
}

// WithLogger overrides the client logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Client, _ *openai.ClientConfig) {
		if l != nil {
			c.log = l
		}
	}
}

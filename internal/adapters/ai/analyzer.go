// Package ai provides the LLM-backed analysis collaborator.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/okian/wrapbrain/internal/domain/intel"
	"github.com/okian/wrapbrain/pkg/logger"
)

// Default analyzer configuration constants.
const (
	defaultModel       = "gpt-4o-mini"
	defaultMaxTokens   = 2048
	defaultTemperature = 0.2
)

const systemPrompt = `You are a video analysis assistant for a vehicle wrap shop.
Given a video reference and optional transcript, return ONLY a JSON object of this shape:
{
  "cuts": [{"start": 0.0, "end": 3.0, "score": 0.9, "description": "...", "speech": "..."}],
  "summary": "...",
  "recommendations": ["..."],
  "color_grading": false,
  "transitions": false,
  "text_overlays": false,
  "speed_ramps": false
}
Descriptions should use wrap-shop vocabulary (hook, reveal, before, after, detail,
vinyl, squeegee, heat gun) where appropriate. No prose outside the JSON.`

// Client is the go-openai backed intel.Analyzer implementation.
type Client struct {
	cli         *openai.Client
	model       string
	maxTokens   int
	temperature float32
	log         logger.Logger
}

// NewClient creates an analysis client with configuration options.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		model:       defaultModel,
		maxTokens:   defaultMaxTokens,
		temperature: defaultTemperature,
		log:         logger.Get().Named("ai"),
	}

	clientConfig := openai.DefaultConfig(apiKey)
	for _, opt := range opts {
		opt(c, &clientConfig)
	}

	c.cli = openai.NewClientWithConfig(clientConfig)
	return c
}

// Analyze asks the model for a cut list and hints for the given media.
func (c *Client) Analyze(ctx context.Context, req intel.Request) (intel.RawAnalysis, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Video: %s\n", req.PlaybackURL)
	if req.DurationSeconds > 0 {
		fmt.Fprintf(&sb, "Duration: %.1f seconds\n", req.DurationSeconds)
	}
	if req.Transcript != "" {
		fmt.Fprintf(&sb, "Transcript:\n%s\n", req.Transcript)
	}
	sb.WriteString("Analyze this vehicle wrap video and return the JSON object.")

	resp, err := c.cli.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: sb.String()},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
	})
	if err != nil {
		return intel.RawAnalysis{}, fmt.Errorf("%w: %w", ErrAnalysisCall, err)
	}
	if len(resp.Choices) == 0 {
		return intel.RawAnalysis{}, ErrEmptyResponse
	}

	raw, err := decodeRawAnalysis(resp.Choices[0].Message.Content)
	if err != nil {
		c.log.Warn(ctx, "undecodable analysis payload", logger.Error(err))
		return intel.RawAnalysis{}, err
	}
	return raw, nil
}

// decodeRawAnalysis tolerantly parses the model output. Models sometimes
// wrap JSON in markdown fences or prepend prose; strip down to the first
// top-level object before decoding. Unknown fields are ignored.
func decodeRawAnalysis(content string) (intel.RawAnalysis, error) {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")

	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end <= start {
		return intel.RawAnalysis{}, fmt.Errorf("%w: no JSON object in output", ErrBadPayload)
	}

	var raw intel.RawAnalysis
	if err := json.Unmarshal([]byte(content[start:end+1]), &raw); err != nil {
		return intel.RawAnalysis{}, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	return raw, nil
}

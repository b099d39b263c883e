package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"itinerate/internal/adapters/observability"
	"itinerate/internal/domain"
)

const DefaultModel = goopenai.GPT4oMini

var ErrNoContent = errors.New("openai: no content generated")

type Client struct {
	c     *goopenai.Client
	model string
}

// New builds a chat-completions client. baseURL is optional and points the
// client at any OpenAI-compatible endpoint.
func New(apiKey, model, baseURL string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("openai: API key is required")
	}
	cfg := goopenai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{c: goopenai.NewClientWithConfig(cfg), model: model}, nil
}

// Generate implements domain.NarrativeGenerator using a json_schema
// response format.
func (c *Client) Generate(ctx context.Context, req domain.NarrativeRequest) ([]byte, error) {
	creq := goopenai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.7,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: "Reply with a single JSON object only."},
			{Role: goopenai.ChatMessageRoleUser, Content: req.Prompt},
		},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{Type: goopenai.ChatCompletionResponseFormatTypeJSONObject},
	}
	if req.Schema != nil {
		b, err := json.Marshal(req.Schema)
		if err != nil {
			return nil, fmt.Errorf("openai: encode schema: %w", err)
		}
		creq.ResponseFormat = &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &goopenai.ChatCompletionResponseFormatJSONSchema{
				Name:   "itinerary",
				Schema: json.RawMessage(b),
			},
		}
	}

	start := time.Now()
	resp, err := c.c.CreateChatCompletion(ctx, creq)
	status := 200
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.HTTPStatusCode
	} else if err != nil {
		status = 0
	}
	observability.ObserveExternal("openai", c.model, status, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrNoContent
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return nil, ErrNoContent
	}
	return []byte(text), nil
}

// Package genai is the client for the opaque remote content-generation
// service used by the AI-assisted tools. Callers hand it a prompt and get
// text or JSON matching an expected shape; everything else about the service
// is out of scope.
package genai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

// ErrGenerationFailed wraps every failure of the remote service. There are
// no automatic retries; retry is always a manual user action.
var ErrGenerationFailed = errors.New("generation failed")

// Generator produces content from prompts.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
	GenerateJSON(ctx context.Context, prompt string, out any) error
}

// Client adapts a langchaingo model to Generator.
type Client struct {
	model llms.Model
}

// New wraps an existing model.
func New(model llms.Model) *Client { return &Client{model: model} }

// NewOpenAI builds a client for an OpenAI-compatible endpoint. baseURL may
// be empty for the default endpoint.
func NewOpenAI(token, model, baseURL string) (*Client, error) {
	opts := []openai.Option{
		openai.WithToken(token),
		openai.WithModel(model),
	}
	if baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	return &Client{model: llm}, nil
}

// GenerateText sends the prompt and returns the raw completion text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx, []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(prompt)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", ErrGenerationFailed)
	}
	return resp.Choices[0].Content, nil
}

// GenerateJSON sends the prompt and parses the completion into out. Code
// fences around the payload are tolerated; anything that does not parse
// into the expected shape is a generation failure.
func (c *Client) GenerateJSON(ctx context.Context, prompt string, out any) error {
	text, err := c.GenerateText(ctx, prompt)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(stripFences(text)), out); err != nil {
		return fmt.Errorf("%w: response is not the expected JSON shape: %v", ErrGenerationFailed, err)
	}
	return nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

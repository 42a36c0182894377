package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/foodrescue/rescue-cli/internal/ports"
	"google.golang.org/genai"
)

const (
	defaultModel    = "gemini-2.0-flash"
	maxOutputTokens = 512
	temperature     = 0.7
)

// Client adapts the Gemini API to the TextModel port. It is
// constructed once at wire time and injected; report generation never
// builds its own client.
type Client struct {
	client *genai.Client
	model  string
}

var _ ports.TextModel = (*Client)(nil)

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

func (c *Client) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx,
		c.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			MaxOutputTokens: maxOutputTokens,
			Temperature:     genai.Ptr[float32](temperature),
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("gemini returned empty response")
	}

	return text, nil
}

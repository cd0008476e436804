package llm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/yigit/extension-registry/internal/pkg/apperrors"
	"github.com/yigit/extension-registry/internal/pkg/logger"
	"google.golang.org/genai"
)

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-2.0-flash"

// Client turns a prompt into a text completion
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// GeminiClient completes prompts with Google's Gemini API. The underlying client is
// created on first use, so a missing API key only matters once the assistant is used.
type GeminiClient struct {
	apiKey string
	model  string

	mu     sync.Mutex
	client *genai.Client
}

// NewGeminiClient creates a Gemini-backed Client
func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiClient{apiKey: apiKey, model: model}
}

// Model returns the configured model name
func (c *GeminiClient) Model() string {
	return c.model
}

func (c *GeminiClient) connect(ctx context.Context) (*genai.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.client != nil {
		return c.client, nil
	}
	if strings.TrimSpace(c.apiKey) == "" {
		return nil, fmt.Errorf("%w: set GEMINI_API_KEY", apperrors.ErrGenerationUnavailable)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  c.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create GenAI client: %v", apperrors.ErrGenerationUnavailable, err)
	}
	c.client = client
	return client, nil
}

// Complete sends prompt as a single user turn and returns the generated text. There is
// no retry; a failed call is reported to the caller as is.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	client, err := c.connect(ctx)
	if err != nil {
		return "", err
	}

	logger.Debug().Str("model", c.model).Int("promptLength", len(prompt)).Msg("Sending generation request")

	resp, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrGenerationFailed, err)
	}

	text := resp.Text()
	logger.Debug().Str("model", c.model).Int("responseLength", len(text)).Msg("Generation request completed")
	return text, nil
}

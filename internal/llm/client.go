// Package llm is the single-turn chat completion client. One user
// message in, the trimmed first choice out. Memoization lives a layer
// up in the RunState; this client never caches.
package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/ppiankov/scicheck/internal/model"
)

const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"

	openRouterBaseURL = "https://openrouter.ai/api/v1"
)

// RemoteError carries the status code and body of a failed inference
// call. It is fatal to the invoking stage; there are no retries.
type RemoteError struct {
	StatusCode int
	Body       string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote service error (%d): %s", e.StatusCode, e.Body)
}

// chatClient is the subset of the go-openai client the stages need.
// Tests substitute a fake here instead of standing up the network.
type chatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client sends single-turn chat completions to an OpenAI-compatible
// endpoint (OpenRouter by default).
type Client struct {
	api         chatClient
	provider    string
	model       string
	temperature float32
	timeout     time.Duration
}

// NewClient creates a client for the configured provider. The API key
// is deliberately not validated here: a blank key surfaces as an
// authentication error from the remote on the first call.
func NewClient(cfg model.LLMConfig) (*Client, error) {
	provider := strings.ToLower(cfg.Provider)
	baseURL := cfg.BaseURL

	switch provider {
	case ProviderOpenRouter:
		if baseURL == "" {
			baseURL = openRouterBaseURL
		}
	case ProviderOpenAI:
		// go-openai default endpoint
	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openrouter, openai)", cfg.Provider)
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if baseURL != "" {
		clientConfig.BaseURL = baseURL
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		api:         openai.NewClientWithConfig(clientConfig),
		provider:    provider,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		timeout:     timeout,
	}, nil
}

// Name returns the provider name.
func (c *Client) Name() string {
	return c.provider
}

// Complete sends the prompt at the configured temperature.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteAt(ctx, prompt, c.temperature)
}

// CompleteAt sends the prompt as a single user message at the given
// temperature and returns the trimmed content of the first choice.
func (c *Client) CompleteAt(ctx context.Context, prompt string, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	// go-openai tags Temperature omitempty: a literal 0 vanishes from the
	// request body and the remote falls back to its own default. The
	// smallest nonzero float survives serialization and is 0 in effect.
	if temperature == 0 {
		temperature = math.SmallestNonzeroFloat32
	}

	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Temperature: temperature,
	}

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", &RemoteError{StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message}
		}
		var reqErr *openai.RequestError
		if errors.As(err, &reqErr) {
			return "", &RemoteError{StatusCode: reqErr.HTTPStatusCode, Body: reqErr.Error()}
		}
		return "", fmt.Errorf("chat completion: %w", err)
	}

	// An unexpected response shape is a remote failure too.
	if len(resp.Choices) == 0 {
		return "", &RemoteError{StatusCode: http.StatusOK, Body: "no completion choices in response"}
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

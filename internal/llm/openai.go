package llm

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const (
	DefaultOpenAIModel     = openai.GPT4oMini
	DefaultOpenRouterModel = "meta-llama/llama-3.1-8b-instruct:free"
	OpenRouterBaseURL      = "https://openrouter.ai/api/v1"
)

// OpenAI generates text through any OpenAI-compatible chat completion
// endpoint. Setting BaseURL to OpenRouterBaseURL talks to OpenRouter.
type OpenAI struct {
	apiKey    string
	model     string
	maxTokens int
	client    *openai.Client
}

func NewOpenAI(opts Options) *OpenAI {
	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	cfg := openai.DefaultConfig(apiKey)
	if opts.BaseURL != "" {
		cfg.BaseURL = strings.TrimRight(opts.BaseURL, "/")
	}
	if opts.Timeout > 0 {
		cfg.HTTPClient = &http.Client{Timeout: opts.Timeout}
	}

	model := opts.Model
	if model == "" {
		model = DefaultOpenAIModel
		if cfg.BaseURL == OpenRouterBaseURL {
			model = DefaultOpenRouterModel
		}
	}

	return &OpenAI{
		apiKey:    apiKey,
		model:     model,
		maxTokens: opts.maxTokens(),
		client:    openai.NewClientWithConfig(cfg),
	}
}

func (s *OpenAI) Name() string {
	return "openai"
}

// Load checks that a key is configured and the endpoint lists the model.
func (s *OpenAI) Load(ctx context.Context) error {
	if s.apiKey == "" {
		return fmt.Errorf("OpenAI API key not found")
	}
	list, err := s.client.ListModels(ctx)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) && apiErr.HTTPStatusCode == http.StatusUnauthorized {
			return fmt.Errorf("OpenAI API key rejected: %w", err)
		}
		return fmt.Errorf("failed to reach OpenAI API: %w", err)
	}
	for _, m := range list.Models {
		if m.ID == s.model {
			return nil
		}
	}
	return fmt.Errorf("model %s not available", s.model)
}

func (s *OpenAI) Generate(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		MaxTokens: s.maxTokens,
		// A zero temperature is dropped from the request by omitempty.
		Temperature: math.SmallestNonzeroFloat32,
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty response from API")
	}
	return resp.Choices[0].Message.Content, nil
}

package llm

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// Gemini generates text with the Gemini API. The client needs a context to be
// built, so it is created by Load.
type Gemini struct {
	apiKey    string
	baseURL   string
	model     string
	maxTokens int
	http      *http.Client
	client    *genai.Client
}

func NewGemini(opts Options) *Gemini {
	apiKey := opts.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	model := opts.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	return &Gemini{
		apiKey:    apiKey,
		baseURL:   opts.BaseURL,
		model:     model,
		maxTokens: opts.maxTokens(),
		http:      &http.Client{Timeout: opts.Timeout},
	}
}

func (g *Gemini) Name() string {
	return "gemini"
}

func (g *Gemini) Load(ctx context.Context) error {
	if g.apiKey == "" {
		return fmt.Errorf("Gemini API key not found")
	}

	cfg := &genai.ClientConfig{
		APIKey:     g.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.http,
	}
	if g.baseURL != "" {
		cfg.HTTPOptions.BaseURL = g.baseURL
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create Gemini client: %w", err)
	}
	if _, err := client.Models.Get(ctx, g.model, nil); err != nil {
		return fmt.Errorf("model %s not available: %w", g.model, err)
	}

	g.client = client
	return nil
}

func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	if g.client == nil {
		return "", fmt.Errorf("Gemini model %s is not loaded", g.model)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0),
		Seed:            genai.Ptr[int32](0),
		MaxOutputTokens: int32(g.maxTokens),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}
	return resp.Text(), nil
}

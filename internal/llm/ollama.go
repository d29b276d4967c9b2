package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	DefaultOllamaURL   = "http://localhost:11434"
	DefaultOllamaModel = "llama2:7b-chat"
)

// Ollama generates text with a model served by a local Ollama server. The
// server owns device placement; Device only restricts how many layers it may
// offload to the GPU.
type Ollama struct {
	baseURL   string
	model     string
	device    Device
	maxTokens int
	client    *http.Client
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	TopK        int     `json:"top_k,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
	NumGPU      *int    `json:"num_gpu,omitempty"`
}

type ollamaGenerateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options *ollamaOptions `json:"options,omitempty"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

type ollamaPullRequest struct {
	Name   string `json:"name"`
	Model  string `json:"model"`
	Stream bool   `json:"stream"`
}

func NewOllama(opts Options) *Ollama {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultOllamaURL
	}
	model := opts.Model
	if model == "" {
		model = DefaultOllamaModel
	}
	device := opts.Device
	if device == "" {
		device = DeviceAuto
	}
	return &Ollama{
		baseURL:   baseURL,
		model:     model,
		device:    device,
		maxTokens: opts.maxTokens(),
		client:    &http.Client{Timeout: opts.Timeout},
	}
}

func (o *Ollama) Name() string {
	return "ollama"
}

// Model returns the model tag requests are sent with.
func (o *Ollama) Model() string {
	return o.model
}

// Load makes sure the model is present on the server, pulling it when it is
// missing, and then asks the server to load it into memory.
func (o *Ollama) Load(ctx context.Context) error {
	present, err := o.hasModel(ctx)
	if err != nil {
		return err
	}
	if !present {
		if err := o.pull(ctx); err != nil {
			return err
		}
	}

	// A generate request without a prompt only loads the model.
	req := ollamaGenerateRequest{Model: o.model, Options: o.options()}
	var resp ollamaGenerateResponse
	if err := o.post(ctx, "/api/generate", req, &resp); err != nil {
		return fmt.Errorf("failed to load model %s: %w", o.model, err)
	}
	return nil
}

func (o *Ollama) Generate(ctx context.Context, prompt string) (string, error) {
	req := ollamaGenerateRequest{
		Model:   o.model,
		Prompt:  prompt,
		Stream:  false,
		Options: o.options(),
	}

	var resp ollamaGenerateResponse
	if err := o.post(ctx, "/api/generate", req, &resp); err != nil {
		return "", err
	}
	return resp.Response, nil
}

// options pins decoding to greedy so the same prompt gives the same output.
func (o *Ollama) options() *ollamaOptions {
	opts := &ollamaOptions{
		Temperature: 0,
		TopK:        1,
		NumPredict:  o.maxTokens,
	}
	switch o.device {
	case DeviceCPU:
		n := 0
		opts.NumGPU = &n
	case DeviceGPU:
		n := -1
		opts.NumGPU = &n
	}
	return opts
}

func (o *Ollama) hasModel(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"/api/tags", nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := o.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("Ollama not available: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("Ollama returned status %d", resp.StatusCode)
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return false, fmt.Errorf("failed to decode model list: %w", err)
	}

	for _, m := range tags.Models {
		if m.Name == o.model || m.Name == o.model+":latest" {
			return true, nil
		}
	}
	return false, nil
}

func (o *Ollama) pull(ctx context.Context) error {
	req := ollamaPullRequest{Name: o.model, Model: o.model, Stream: false}
	var status struct {
		Status string `json:"status"`
	}
	if err := o.post(ctx, "/api/pull", req, &status); err != nil {
		return fmt.Errorf("failed to pull model %s: %w", o.model, err)
	}
	if status.Status != "" && status.Status != "success" {
		return fmt.Errorf("failed to pull model %s: %s", o.model, status.Status)
	}
	return nil
}

func (o *Ollama) post(ctx context.Context, path string, body, out any) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+path, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

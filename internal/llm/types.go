// Package llm provides the text-generation backends used to translate
// sentences. A Generator is constructed once, loaded once and then shared
// read-only by every translation call of a run.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DefaultMaxTokens bounds the length of a single completion.
const DefaultMaxTokens = 256

// Device selects where the model runs.
type Device string

const (
	// DeviceAuto uses an accelerator when the backend has one, else the CPU.
	DeviceAuto Device = "auto"
	DeviceGPU  Device = "gpu"
	DeviceCPU  Device = "cpu"
)

// ParseDevice validates a device name. The empty string means DeviceAuto.
func ParseDevice(s string) (Device, error) {
	switch d := Device(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DeviceAuto, nil
	case DeviceAuto, DeviceGPU, DeviceCPU:
		return d, nil
	default:
		return "", fmt.Errorf("unknown device %q (want auto, gpu or cpu)", s)
	}
}

// Options configures a backend. Fields a backend does not use are ignored.
type Options struct {
	Model     string        `mapstructure:"model" json:"model"`
	BaseURL   string        `mapstructure:"base_url" json:"base_url"`
	APIKey    string        `mapstructure:"api_key" json:"api_key"`
	Device    Device        `mapstructure:"device" json:"device"`
	MaxTokens int           `mapstructure:"max_tokens" json:"max_tokens"`
	Timeout   time.Duration `mapstructure:"timeout" json:"timeout"`
}

func (o Options) maxTokens() int {
	if o.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return o.MaxTokens
}

// Generator turns a prompt into decoded completion text.
type Generator interface {
	Name() string
	// Load makes the model ready for Generate. A run cannot do anything
	// useful without a loaded model, so callers treat failure as fatal.
	Load(ctx context.Context) error
	// Generate runs one deterministic completion for prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}

// New builds the backend called name.
func New(name string, opts Options) (Generator, error) {
	switch strings.ToLower(name) {
	case "", "ollama":
		return NewOllama(opts), nil
	case "openai":
		return NewOpenAI(opts), nil
	case "openrouter":
		if opts.BaseURL == "" {
			opts.BaseURL = OpenRouterBaseURL
		}
		return NewOpenAI(opts), nil
	case "gemini":
		return NewGemini(opts), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", name)
	}
}

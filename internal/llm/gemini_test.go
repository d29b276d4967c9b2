package llm

import (
	"context"
	"testing"
)

func TestGemini_NotLoaded(t *testing.T) {
	g := NewGemini(Options{APIKey: "k"})

	if g.model != DefaultGeminiModel {
		t.Errorf("expected model %q, got %q", DefaultGeminiModel, g.model)
	}
	if _, err := g.Generate(context.Background(), "prompt"); err == nil {
		t.Error("expected error when generating before Load")
	}
}

func TestGemini_Load_NoAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_API_KEY", "")

	g := NewGemini(Options{})
	if err := g.Load(context.Background()); err == nil {
		t.Error("expected error for missing API key")
	}
}

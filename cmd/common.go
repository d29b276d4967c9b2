/*
Copyright © 2025 Valentyn Solomko <valentyn.solomko@gmail.com>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/valpere/hinditran/internal/llm"
	"github.com/valpere/hinditran/internal/translator"
)

const defaultDBPath = "./data/hinditran.db"

// buildTranslator constructs and readies the translator for backend. The
// returned close function releases backend resources and is never nil.
func buildTranslator(ctx context.Context, backend string, opts llm.Options, credentials string, clean bool) (translator.Translator, func(), error) {
	if backend == "google" {
		g := translator.NewGoogleTranslator(credentials)
		return g, func() { g.Close() }, nil
	}

	gen, err := llm.New(backend, opts)
	if err != nil {
		return nil, nil, err
	}

	fmt.Fprintf(os.Stderr, "Loading model (%s)...\n", gen.Name())
	if err := gen.Load(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to load model: %w", err)
	}
	fmt.Fprintln(os.Stderr, "Model loaded.")

	return translator.NewLLMTranslator(gen, clean), func() {}, nil
}

// modelName reports the model a backend will use, for run history.
func modelName(backend string, opts llm.Options) string {
	if opts.Model != "" {
		return opts.Model
	}
	switch backend {
	case "", "ollama":
		return llm.DefaultOllamaModel
	case "openai":
		return llm.DefaultOpenAIModel
	case "openrouter":
		return llm.DefaultOpenRouterModel
	case "gemini":
		return llm.DefaultGeminiModel
	}
	return ""
}

// memoryKey names the setup translations are cached under, so entries from
// one backend, model or cleanup mode are never served to another.
func memoryKey(backend string, opts llm.Options, clean bool) string {
	if backend == "" {
		backend = "ollama"
	}
	key := backend
	if model := modelName(backend, opts); model != "" {
		key += "/" + model
	}
	if clean && backend != "google" {
		key += "+clean"
	}
	return key
}

package translator

import (
	"context"

	"github.com/valpere/hinditran/internal/llm"
	"github.com/valpere/hinditran/internal/postprocess"
)

// LLMTranslator prompts a generative model for each sentence.
type LLMTranslator struct {
	gen   llm.Generator
	clean bool
}

// NewLLMTranslator returns a translator backed by gen, which must already be
// loaded. With clean set, extracted text also goes through postprocess.Clean.
func NewLLMTranslator(gen llm.Generator, clean bool) *LLMTranslator {
	return &LLMTranslator{gen: gen, clean: clean}
}

func (t *LLMTranslator) Name() string {
	return t.gen.Name()
}

func (t *LLMTranslator) Translate(ctx context.Context, sentence string) Result {
	raw, err := t.gen.Generate(ctx, BuildPrompt(sentence))
	if err != nil {
		return Failed(err)
	}

	text := ExtractTranslation(raw)
	if t.clean {
		text = postprocess.Clean(text)
	}
	if text == "" {
		return Result{Raw: raw, Err: ErrEmpty}
	}
	return Result{Text: text, Raw: raw}
}

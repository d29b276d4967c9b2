package translator

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Memory is the translation memory a CachedTranslator reads and fills.
type Memory interface {
	GetCachedTranslation(ctx context.Context, sourceText, sourceLang, targetLang, serviceUsed string) (string, bool, error)
	SaveToMemory(ctx context.Context, sourceText, sourceLang, targetLang, finalText, rawOutput, serviceUsed string) error
}

const (
	sourceLang = "en"
	targetLang = "hi"
)

// CachedTranslator answers from memory when it can and records every
// successful translation of next. Entries are kept per service key, so
// switching backend, model or cleanup never serves another setup's output.
// Memory errors are logged and never fail a sentence.
type CachedTranslator struct {
	next    Translator
	mem     Memory
	service string

	// Log receives memory warnings. Nil means os.Stderr.
	Log io.Writer
}

// NewCachedTranslator wraps next. service identifies the backend setup the
// entries belong to; it defaults to next.Name().
func NewCachedTranslator(next Translator, mem Memory, service string) *CachedTranslator {
	if service == "" {
		service = next.Name()
	}
	return &CachedTranslator{next: next, mem: mem, service: service}
}

func (c *CachedTranslator) Name() string {
	return c.next.Name()
}

func (c *CachedTranslator) Translate(ctx context.Context, sentence string) Result {
	cached, found, err := c.mem.GetCachedTranslation(ctx, sentence, sourceLang, targetLang, c.service)
	if err != nil {
		c.warn("failed to read translation memory: %v", err)
	} else if found && cached != "" {
		return Result{Text: cached}
	}

	res := c.next.Translate(ctx, sentence)
	if res.OK() {
		if err := c.mem.SaveToMemory(ctx, sentence, sourceLang, targetLang, res.Text, res.Raw, c.service); err != nil {
			c.warn("failed to save to translation memory: %v", err)
		}
	}
	return res
}

func (c *CachedTranslator) warn(format string, args ...any) {
	w := c.Log
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintf(w, "Warning: "+format+"\n", args...)
}

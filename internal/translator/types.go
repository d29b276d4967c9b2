package translator

import (
	"context"
	"errors"
)

// ErrEmpty marks a translation call that finished without producing text.
var ErrEmpty = errors.New("empty translation")

// Result is the outcome of translating one sentence. Err is set when the call
// failed; Text is then empty. Raw keeps the backend output before extraction.
type Result struct {
	Text string
	Raw  string
	Err  error
}

// OK reports whether the result carries usable text.
func (r Result) OK() bool {
	return r.Err == nil && r.Text != ""
}

// Failed wraps err into a Result.
func Failed(err error) Result {
	return Result{Err: err}
}

// Translator translates a single English sentence into Hindi. Failures are
// reported through the Result, never by panicking, so a caller can keep going
// with the next sentence.
type Translator interface {
	Name() string
	Translate(ctx context.Context, sentence string) Result
}

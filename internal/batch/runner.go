// Package batch drives a translator over a window of the input corpus and
// writes the collected translations as one table at the end of the run.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/valpere/hinditran/internal/corpus"
	"github.com/valpere/hinditran/internal/table"
	"github.com/valpere/hinditran/internal/translator"
)

const (
	progressPreview = 50
	errorPreview    = 30
)

// Record is one translated sentence. Index is its position in the cleaned
// corpus.
type Record struct {
	Index  int
	Source string
	Text   string
}

// Failure is a sentence that produced no translation.
type Failure struct {
	Index  int
	Source string
	Err    error
}

// Summary describes a finished run.
type Summary struct {
	Attempted int
	Records   []Record
	Failures  []Failure
}

// Written is the number of data rows in the output table.
func (s *Summary) Written() int {
	return len(s.Records)
}

// Recorder is notified about every failed sentence while the run goes on.
type Recorder interface {
	RecordFailure(ctx context.Context, index int, source, reason string) error
}

// Options tunes a Runner. The zero value logs to stderr and drops failed
// sentences from the output.
type Options struct {
	// KeepAlignment writes an empty row for every failed sentence so row N
	// of the output always belongs to item N of the window.
	KeepAlignment bool
	Log           io.Writer
	Recorder      Recorder
}

type Runner struct {
	tr   translator.Translator
	opts Options
}

func New(tr translator.Translator, opts Options) *Runner {
	if opts.Log == nil {
		opts.Log = os.Stderr
	}
	return &Runner{tr: tr, opts: opts}
}

// Process translates the window of the corpus at inputPath and writes the
// results to outputPath.
//
// When the input is not a JSON list of strings it reports the problem, writes
// nothing and returns corpus.ErrNotList. Per-sentence failures never stop the
// run. If ctx is cancelled mid-run nothing is written and ctx.Err() is
// returned.
func (r *Runner) Process(ctx context.Context, inputPath, outputPath string, w corpus.Window) (*Summary, error) {
	lines, err := corpus.Load(inputPath)
	if errors.Is(err, corpus.ErrNotList) {
		fmt.Fprintf(r.opts.Log, "%v.\n", err)
		return nil, err
	}
	if err != nil {
		return nil, err
	}

	items := w.Apply(corpus.Clean(lines))
	summary, err := r.translate(ctx, items, w.Offset())
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := table.WriteFile(outputPath, summary.rows()); err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *Runner) translate(ctx context.Context, items []string, offset int) (*Summary, error) {
	summary := &Summary{}

	for i, line := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		idx := offset + i
		fmt.Fprintf(r.opts.Log, "Translating line [%d]: %s...\n", idx, preview(line, progressPreview))

		res := r.tr.Translate(ctx, line)
		if err := ctx.Err(); err != nil {
			// An interrupted call is not a translation failure.
			return nil, err
		}
		summary.Attempted++

		if res.OK() {
			summary.Records = append(summary.Records, Record{Index: idx, Source: line, Text: res.Text})
			continue
		}

		failErr := res.Err
		if failErr == nil {
			failErr = translator.ErrEmpty
		}
		fmt.Fprintf(r.opts.Log, "Error translating: %s - %v\n", preview(line, errorPreview), failErr)

		summary.Failures = append(summary.Failures, Failure{Index: idx, Source: line, Err: failErr})
		if r.opts.KeepAlignment {
			summary.Records = append(summary.Records, Record{Index: idx, Source: line})
		}
		if r.opts.Recorder != nil {
			if err := r.opts.Recorder.RecordFailure(ctx, idx, line, failErr.Error()); err != nil {
				fmt.Fprintf(r.opts.Log, "Warning: failed to record failure: %v\n", err)
			}
		}
	}

	return summary, nil
}

func (s *Summary) rows() []string {
	rows := make([]string, len(s.Records))
	for i, rec := range s.Records {
		rows[i] = rec.Text
	}
	return rows
}

// preview returns the first n runes of s.
func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

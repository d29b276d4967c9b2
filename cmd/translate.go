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
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/valpere/hinditran/internal/batch"
	"github.com/valpere/hinditran/internal/console"
	"github.com/valpere/hinditran/internal/corpus"
	"github.com/valpere/hinditran/internal/store"
	"github.com/valpere/hinditran/internal/translator"
)

const (
	startQuestion = "Start from which line (0-based index)? "
	limitQuestion = "How many lines to translate? "
	invalidInput  = "Invalid input. Please enter numeric values."
)

var (
	startIdx      int
	limitCount    int
	credentials   string
	cleanOutput   bool
	keepAlignment bool
	dbPath        string
	noCache       bool
)

var translateCmd = &cobra.Command{
	Use:   "translate",
	Short: "Translate a window of sentences from a JSON list",
	Long: `Translate English sentences into Hindi, one model call per sentence.

The input is a JSON array of strings. Entries are trimmed and blank ones are
dropped before the window is applied. --start and --limit select the window;
any of them left unset is asked for on the terminal.

Backends:
  - ollama      Local Ollama server (default, pulls the model if missing)
  - openai      OpenAI or any compatible endpoint (requires API key)
  - openrouter  OpenRouter (requires API key)
  - gemini      Google Gemini API (requires API key)
  - google      Google Cloud Translation (requires credentials)

Translations are written to a CSV file with a single "Sentences" column.
Sentences that fail to translate are skipped unless --keep-alignment is set.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		inputFile := viper.GetString("input")
		outputFile := viper.GetString("output")
		backend := viper.GetString("backend")

		if inputFile == outputFile {
			return fmt.Errorf("input file and output file cannot be the same")
		}

		opts, err := generatorOptions()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		tr, closeTranslator, err := buildTranslator(ctx, backend, opts, credentials, cleanOutput)
		if err != nil {
			return err
		}
		defer closeTranslator()

		window, ok, err := askWindow(ctx, cmd)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), invalidInput)
			return nil
		}

		var db *store.Store
		var runID string
		if dbPath != "" {
			if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}
			db, err = store.New(dbPath)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()

			if !noCache {
				cached := translator.NewCachedTranslator(tr, db, memoryKey(backend, opts, cleanOutput))
				cached.Log = cmd.ErrOrStderr()
				tr = cached
			}

			runID, err = db.CreateRun(ctx, inputFile, outputFile, backend, modelName(backend, opts), window.Start, window.Limit)
			if err != nil {
				return fmt.Errorf("failed to record run: %w", err)
			}
		}

		runOpts := batch.Options{KeepAlignment: keepAlignment, Log: cmd.ErrOrStderr()}
		if db != nil {
			runOpts.Recorder = &runRecorder{db: db, runID: runID}
		}

		summary, err := batch.New(tr, runOpts).Process(ctx, inputFile, outputFile, window)
		if db != nil {
			finishRun(db, runID, summary, err)
		}
		if errors.Is(err, corpus.ErrNotList) {
			return nil
		}
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\nTranslated output saved to: %s\n", outputFile)
		if len(summary.Failures) > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Translated %d/%d sentences\n", summary.Attempted-len(summary.Failures), summary.Attempted)
		}
		return nil
	},
}

// askWindow reads the processing window from flags, prompting for whatever
// was not given. ok is false when an answer is not a number. An interrupt
// while waiting for an answer returns ctx.Err().
func askWindow(ctx context.Context, cmd *cobra.Command) (corpus.Window, bool, error) {
	w := corpus.Window{Start: startIdx, Limit: limitCount}
	flags := cmd.Flags()
	if flags.Changed("start") && flags.Changed("limit") {
		return w, true, nil
	}

	p := console.New(cmd.InOrStdin(), cmd.OutOrStdout())
	ask := func(question string, dst *int) error {
		n, err := p.Int(ctx, question)
		if err != nil {
			return err
		}
		*dst = n
		return nil
	}

	var err error
	if !flags.Changed("start") {
		err = ask(startQuestion, &w.Start)
	}
	if err == nil && !flags.Changed("limit") {
		err = ask(limitQuestion, &w.Limit)
	}
	if errors.Is(err, console.ErrNotNumeric) {
		return w, false, nil
	}
	if err != nil {
		return w, false, err
	}
	return w, true, nil
}

// runRecorder stores per-sentence failures under one run.
type runRecorder struct {
	db    *store.Store
	runID string
}

func (r *runRecorder) RecordFailure(ctx context.Context, index int, source, reason string) error {
	return r.db.RecordFailure(ctx, r.runID, index, source, reason)
}

func finishRun(db *store.Store, runID string, summary *batch.Summary, runErr error) {
	status := store.RunCompleted
	var attempted, written, failed int
	if summary != nil {
		attempted, written, failed = summary.Attempted, summary.Written(), len(summary.Failures)
	}
	if runErr != nil {
		status = store.RunAborted
	}

	// The run context may already be cancelled.
	if err := db.FinishRun(context.Background(), runID, status, attempted, written, failed); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to update run %s: %v\n", runID, err)
	}
}

func init() {
	rootCmd.AddCommand(translateCmd)

	flags := translateCmd.Flags()
	flags.StringP("input", "i", "input.json", "Input JSON file with a list of sentences")
	flags.StringP("output", "o", "output.csv", "Output CSV file")
	flags.IntVar(&startIdx, "start", 0, "0-based index of the first sentence (asked if unset)")
	flags.IntVar(&limitCount, "limit", 0, "Number of sentences to translate (asked if unset)")

	flags.StringP("backend", "b", "ollama", "Translation backend: ollama, openai, openrouter, gemini, google")
	flags.StringP("model", "m", "", "Model name (backend default if empty)")
	flags.String("base-url", "", "Backend base URL")
	flags.String("api-key", "", "Backend API key")
	flags.String("device", "auto", "Compute device for local models: auto, gpu, cpu")
	flags.Int("max-tokens", 256, "Maximum tokens generated per sentence")
	flags.Duration("timeout", 0, "Per-request timeout (0 = none)")
	flags.StringVarP(&credentials, "credentials", "c", "", "Path to Google Cloud credentials (google backend)")

	flags.BoolVar(&cleanOutput, "clean", false, "Strip preambles and notes from model output")
	flags.BoolVar(&keepAlignment, "keep-alignment", false, "Write an empty row for every failed sentence")

	flags.StringVar(&dbPath, "db", "", "Database path for translation memory (kept per backend, model and --clean) and run history; disabled if empty")
	flags.BoolVar(&noCache, "no-cache", false, "Record run history but skip translation memory")

	for key, name := range map[string]string{
		"input":      "input",
		"output":     "output",
		"backend":    "backend",
		"model":      "model",
		"base_url":   "base-url",
		"api_key":    "api-key",
		"device":     "device",
		"max_tokens": "max-tokens",
		"timeout":    "timeout",
	} {
		viper.BindPFlag(key, flags.Lookup(name))
	}
}

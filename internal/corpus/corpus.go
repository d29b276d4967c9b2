// Package corpus loads the sentence list a batch run works on and selects
// the processing window out of it.
package corpus

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotList is returned when the input document is not a JSON array of strings.
var ErrNotList = errors.New("JSON must be a list of strings")

// Load reads the whole JSON document at path and returns its entries in file
// order. The top level must be an array whose elements are all strings.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a JSON document into a list of sentences.
func Parse(data []byte) ([]string, error) {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse input JSON: %w", err)
	}

	items, ok := raw.([]any)
	if !ok {
		return nil, ErrNotList
	}

	lines := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, ErrNotList
		}
		lines = append(lines, s)
	}
	return lines, nil
}

// Clean trims surrounding whitespace from every entry and drops entries that
// end up empty. Order of the remaining entries is kept, so indices into the
// result refer to the cleaned list, not the raw file.
func Clean(lines []string) []string {
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if s := strings.TrimSpace(line); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	return cleaned
}


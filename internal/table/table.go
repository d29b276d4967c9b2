// Package table writes translation results as a single-column CSV file that
// spreadsheet tools open as UTF-8.
package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Header is the name of the only column.
const Header = "Sentences"

// Write encodes the header followed by one row per entry of rows to w. The
// output starts with a UTF-8 byte order mark.
func Write(w io.Writer, rows []string) error {
	bw := transform.NewWriter(w, unicode.UTF8BOM.NewEncoder())

	cw := csv.NewWriter(bw)
	if err := cw.Write([]string{Header}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := cw.Write([]string{row}); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush output CSV: %w", err)
	}
	return bw.Close()
}

// WriteFile creates (or truncates) path, creating missing parent directories,
// and writes rows to it with Write.
func WriteFile(path string, rows []string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output CSV: %w", err)
	}
	if err := Write(f, rows); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Package jsonl provides JSONL encoding for rendered results and saved runs.
package jsonl

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/sentiview"
)

// Compile-time interface verification.
var _ sentiview.RunLoader = (*Loader)(nil)

// Loader loads Run records from JSONL files.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// maxLineSize is the maximum size for a single JSONL line (16MB).
// A file run may carry many predictions on one line.
const maxLineSize = 16 * 1024 * 1024

// Load reads a JSONL file and returns all Run records. A missing file yields
// no runs.
func (l *Loader) Load(path string) ([]sentiview.Run, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	defer f.Close()

	var runs []sentiview.Run
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var r sentiview.Run
		if err := json.Unmarshal([]byte(line), &r); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
		runs = append(runs, r)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return runs, nil
}

package fs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/sentiview"
	"github.com/rotisserie/eris"
)

// Compile-time interface verification.
var _ sentiview.BlobLoader = (*Loader)(nil)

// DefaultMaxBytes is the upload limit used when none is configured.
const DefaultMaxBytes = 10 << 20

// SupportedExtensions lists the dataset file types the service accepts.
var SupportedExtensions = []string{".csv", ".xlsx", ".xls"}

// ErrTooLarge is returned when a file exceeds the configured limit.
var ErrTooLarge = errors.New("file too large")

// ErrUnsupportedType is returned for files with an extension the service
// does not accept.
var ErrUnsupportedType = errors.New("unsupported file type")

// Loader reads dataset files from disk.
type Loader struct {
	maxBytes int64
}

// NewLoader creates a Loader that rejects files larger than maxBytes.
// A non-positive maxBytes uses DefaultMaxBytes.
func NewLoader(maxBytes int64) *Loader {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Loader{maxBytes: maxBytes}
}

// Load reads the file at path. The file contents are not parsed.
func (l *Loader) Load(path string) (*sentiview.Blob, error) {
	name := filepath.Base(path)
	if !Supported(name) {
		return nil, fmt.Errorf("%w: %s (expected %s)", ErrUnsupportedType, name, strings.Join(SupportedExtensions, ", "))
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "fs: open %s", path)
	}
	defer f.Close()

	// One byte past the limit marks the file as oversize.
	data, err := io.ReadAll(io.LimitReader(f, l.maxBytes+1))
	if err != nil {
		return nil, eris.Wrapf(err, "fs: read %s", path)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, name, l.maxBytes)
	}

	return &sentiview.Blob{Name: name, Data: data}, nil
}

// Supported reports whether name has an accepted dataset extension.
func Supported(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range SupportedExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

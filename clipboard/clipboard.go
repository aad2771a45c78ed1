// Package clipboard provides clipboard operations backed by the platform's
// native clipboard tools.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
	"github.com/fwojciec/sentiview"
)

// Ensure System implements the Clipboard interface.
var _ sentiview.Clipboard = (*System)(nil)

// ErrUnsupported is returned when no clipboard utility is available, e.g.
// on a headless Linux box without xclip, xsel or wl-copy.
var ErrUnsupported = errors.New("clipboard not supported on this system")

// System implements Clipboard using the operating system clipboard.
type System struct{}

// NewSystem returns a new System clipboard.
func NewSystem() *System {
	return &System{}
}

// Available reports whether a clipboard utility was found.
func (s *System) Available() bool {
	return !clipboard.Unsupported
}

// Copy writes content to the system clipboard.
func (s *System) Copy(content string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(content)
}

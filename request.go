package sentiview

import (
	"fmt"
	"strings"
)

// ValidationReason identifies why form input was rejected.
type ValidationReason string

// Validation error reasons.
const (
	ErrEmptyInput    ValidationReason = "empty_input"
	ErrMissingFile   ValidationReason = "missing_file"
	ErrMissingColumn ValidationReason = "missing_column"
)

// ValidationError describes input that cannot be turned into a request.
// It is detected locally; the service is never contacted.
type ValidationError struct {
	Reason ValidationReason
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	switch e.Reason {
	case ErrEmptyInput:
		return "validation: no non-blank text lines"
	case ErrMissingFile:
		return "validation: no file attached"
	case ErrMissingColumn:
		return "validation: text column name is blank"
	default:
		return fmt.Sprintf("validation: %s", e.Reason)
	}
}

// Message returns the status text shown to the user.
func (e *ValidationError) Message() string {
	switch e.Reason {
	case ErrEmptyInput:
		return "Please enter some text!"
	case ErrMissingFile:
		return "Please select a file!"
	case ErrMissingColumn:
		return "Please enter text column name!"
	default:
		return "Invalid input"
	}
}

// Form holds the raw values of both input collectors. Only the fields of the
// active mode are consulted.
type Form struct {
	Text   string // Multi-line text for ModeText
	File   *Blob  // Attached dataset for ModeFile, nil when none
	Column string // Text column name for ModeFile
}

// BuildRequest validates form for the given mode and constructs the request
// payload. A returned request always satisfies its type's invariants.
func BuildRequest(mode Mode, form Form) (Request, error) {
	mode.mustValid()

	if mode == ModeText {
		texts := NormalizeLines(form.Text)
		if len(texts) == 0 {
			return nil, &ValidationError{Reason: ErrEmptyInput}
		}
		return TextRequest{Texts: texts}, nil
	}

	if form.File == nil {
		return nil, &ValidationError{Reason: ErrMissingFile}
	}
	column := strings.TrimSpace(form.Column)
	if column == "" {
		return nil, &ValidationError{Reason: ErrMissingColumn}
	}
	return FileRequest{File: *form.File, TextColumn: column}, nil
}

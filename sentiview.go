// Package sentiview provides domain types and the request orchestration core
// for submitting text or dataset files to a sentiment-classification service.
package sentiview

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrBusy is returned when an analysis is triggered while another is in flight.
var ErrBusy = errors.New("analysis already in progress")

// Mode identifies which input collector is active.
type Mode int

// Input modes. The zero value is ModeText.
const (
	ModeText Mode = iota
	ModeFile
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeText:
		return "text"
	case ModeFile:
		return "file"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m == ModeText || m == ModeFile
}

// MarshalText encodes the mode as its name.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("sentiview: invalid mode %d", int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	switch string(text) {
	case "text":
		*m = ModeText
	case "file":
		*m = ModeFile
	default:
		return fmt.Errorf("sentiview: unknown mode %q", text)
	}
	return nil
}

// mustValid panics on a mode outside the enum. Such a value is a programming
// error, not a runtime condition.
func (m Mode) mustValid() {
	if !m.Valid() {
		panic(fmt.Sprintf("sentiview: invalid mode %d", int(m)))
	}
}

// Blob is the opaque content of an uploaded dataset file.
type Blob struct {
	Name string // File name sent with the upload, e.g. "reviews.csv"
	Data []byte
}

// Request is a payload ready for dispatch. It is either a TextRequest or a
// FileRequest.
type Request interface {
	// Mode returns the input mode the request was built for.
	Mode() Mode

	isRequest()
}

// TextRequest carries normalized text lines. Texts is never empty.
type TextRequest struct {
	Texts []string `json:"texts"`
}

// Mode implements Request.
func (TextRequest) Mode() Mode { return ModeText }

func (TextRequest) isRequest() {}

// FileRequest carries a dataset file and the name of its text column.
// TextColumn is never blank.
type FileRequest struct {
	File       Blob
	TextColumn string
}

// Mode implements Request.
func (FileRequest) Mode() Mode { return ModeFile }

func (FileRequest) isRequest() {}

// PredictionRecord is one classified item returned by the service.
type PredictionRecord struct {
	Text  string  `json:"text"`
	Label string  `json:"label"`
	Score float64 `json:"score"` // Confidence in [0,1]
}

// Outcome is the result of a single submission: either a list of records
// (optionally with the number of rows the service processed) or a failure
// message. Exactly one variant is populated.
type Outcome struct {
	Records  []PredictionRecord
	RowCount *int   // Reported for file submissions when the service includes it
	Failure  string // Non-empty for the failure variant
}

// Success returns a successful Outcome.
func Success(records []PredictionRecord, rowCount *int) Outcome {
	if records == nil {
		records = []PredictionRecord{}
	}
	return Outcome{Records: records, RowCount: rowCount}
}

// Failure returns a failed Outcome. An empty message is replaced so the
// failure variant is always distinguishable.
func Failure(message string) Outcome {
	if message == "" {
		message = "unknown error"
	}
	return Outcome{Failure: message}
}

// Failed reports whether o is the failure variant.
func (o Outcome) Failed() bool {
	return o.Failure != ""
}

// Analyzer submits requests to the classification service.
// Implementations never return transport errors to the caller: every failure
// is folded into the returned Outcome.
type Analyzer interface {
	Submit(ctx context.Context, req Request) Outcome
}

// Clipboard provides copy-to-clipboard functionality.
type Clipboard interface {
	Copy(content string) error
}

// BlobLoader reads a dataset file from a path.
type BlobLoader interface {
	Load(path string) (*Blob, error)
}

// Run is a completed analysis kept for later review.
type Run struct {
	ID       string             `json:"id"`
	Mode     Mode               `json:"mode"`
	Source   string             `json:"source,omitempty"` // File name for file runs
	Records  []PredictionRecord `json:"records"`
	RowCount *int               `json:"row_count,omitempty"`
	At       time.Time          `json:"at"`
}

// RunSaver persists completed runs.
type RunSaver interface {
	Save(path string, run Run) error
}

// RunLoader loads previously saved runs.
type RunLoader interface {
	Load(path string) ([]Run, error)
}

// NewRun records a successful outcome of req.
func NewRun(id string, req Request, out Outcome, at time.Time) Run {
	run := Run{
		ID:       id,
		Mode:     req.Mode(),
		Records:  out.Records,
		RowCount: out.RowCount,
		At:       at,
	}
	if fr, ok := req.(FileRequest); ok {
		run.Source = fr.File.Name
	}
	return run
}

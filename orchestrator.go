package sentiview

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Phase is a state of the analysis cycle.
type Phase int

// Analysis phases. Every cycle starts and ends in PhaseIdle.
const (
	PhaseIdle Phase = iota
	PhaseValidating
	PhaseSubmitting
	PhaseRendering
	PhaseFailed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseValidating:
		return "validating"
	case PhaseSubmitting:
		return "submitting"
	case PhaseRendering:
		return "rendering"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Collector identifies an input collector of the presentation layer.
type Collector int

// Input collectors. Exactly one is visible at a time.
const (
	CollectorText Collector = iota
	CollectorFile
)

// StatusKind classifies a status message for presentation.
type StatusKind int

// Status kinds.
const (
	StatusNone StatusKind = iota
	StatusInfo
	StatusWarning // Local validation problems
	StatusError   // Service or file failures
	StatusSuccess
)

// Status is the user-visible status line.
type Status struct {
	Kind StatusKind
	Text string
}

// State is a snapshot of the orchestrator for the presentation layer.
type State struct {
	Mode   Mode
	Phase  Phase
	Status Status
	View   View
}

// Busy reports whether a submission is in flight.
func (s State) Busy() bool {
	return s.Phase == PhaseSubmitting
}

// Ticket identifies one in-flight submission. It is produced by Begin and
// consumed by Submit and Complete.
type Ticket struct {
	Request    Request
	generation uint64
}

// Orchestrator sequences validation, submission and rendering and owns all
// mutable client state: the active mode, the status line and the displayed
// results.
//
// While a submission is in flight further triggers are ignored (Begin returns
// ErrBusy). Switching modes mid-flight is allowed; the pending outcome is
// then discarded so it cannot repopulate the reset view.
type Orchestrator struct {
	analyzer Analyzer
	scheme   LabelScheme
	render   RenderOptions
	logger   *zap.Logger

	mu         sync.Mutex
	mode       Mode
	phase      Phase
	status     Status
	view       View
	generation uint64
}

// OrchestratorOption configures an Orchestrator.
type OrchestratorOption func(*Orchestrator)

// WithLabelScheme sets the label-to-sentiment mapping.
func WithLabelScheme(s LabelScheme) OrchestratorOption {
	return func(o *Orchestrator) {
		o.scheme = s
	}
}

// WithRenderOptions sets presentation options for rendering.
func WithRenderOptions(r RenderOptions) OrchestratorOption {
	return func(o *Orchestrator) {
		o.render = r
	}
}

// WithInitialMode sets the mode active at startup.
func WithInitialMode(m Mode) OrchestratorOption {
	return func(o *Orchestrator) {
		m.mustValid()
		o.mode = m
	}
}

// WithLogger sets the logger for phase transitions.
func WithLogger(l *zap.Logger) OrchestratorOption {
	return func(o *Orchestrator) {
		o.logger = l
	}
}

// NewOrchestrator creates an Orchestrator in PhaseIdle and ModeText.
func NewOrchestrator(analyzer Analyzer, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		analyzer: analyzer,
		scheme:   DefaultLabelScheme(),
		render:   DefaultRenderOptions(),
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Mode returns the active input mode.
func (o *Orchestrator) Mode() Mode {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.mode
}

// ActiveCollector returns the input collector visible in the active mode.
func (o *Orchestrator) ActiveCollector() Collector {
	if o.Mode() == ModeFile {
		return CollectorFile
	}
	return CollectorText
}

// SetMode switches the active mode and clears the status and results, also
// when m is already active. While a submission is in flight the status
// instead reports that it is still running until Complete discards it. It
// panics on a mode outside the enum.
func (o *Orchestrator) SetMode(m Mode) {
	m.mustValid()

	o.mu.Lock()
	defer o.mu.Unlock()

	o.mode = m
	o.status = Status{}
	if o.phase == PhaseSubmitting {
		o.status = Status{Kind: StatusInfo, Text: waitingText}
	}
	o.view = View{}
	o.generation++
	o.logger.Debug("mode set", zap.Stringer("mode", m))
}

// Clear removes the status and any displayed results.
func (o *Orchestrator) Clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.status = Status{}
	o.view = View{}
}

// State returns a snapshot of the orchestrator.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return State{
		Mode:   o.mode,
		Phase:  o.phase,
		Status: o.status,
		View:   o.view,
	}
}

// Begin validates form for the active mode. On success the orchestrator
// enters PhaseSubmitting and returns a ticket for Submit. A validation error
// is published as a warning status and the orchestrator returns to idle.
func (o *Orchestrator) Begin(form Form) (Ticket, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.phase == PhaseSubmitting {
		o.logger.Debug("trigger ignored while busy")
		return Ticket{}, ErrBusy
	}

	o.transition(PhaseValidating)
	req, err := BuildRequest(o.mode, form)
	if err != nil {
		var verr *ValidationError
		msg := err.Error()
		if errors.As(err, &verr) {
			msg = verr.Message()
		}
		o.fail(Status{Kind: StatusWarning, Text: msg})
		return Ticket{}, err
	}

	o.transition(PhaseSubmitting)
	o.view = View{}
	o.status = Status{Kind: StatusInfo, Text: pendingText(req)}
	return Ticket{Request: req, generation: o.generation}, nil
}

// Submit dispatches the ticket's request and waits for the outcome. It does
// not touch orchestrator state and may run off the event loop.
func (o *Orchestrator) Submit(ctx context.Context, t Ticket) Outcome {
	return o.analyzer.Submit(ctx, t.Request)
}

// Complete applies an outcome to the display and returns the orchestrator to
// idle. It returns false when the outcome is stale, i.e. the mode was
// switched after the ticket was issued; the display is left untouched then.
func (o *Orchestrator) Complete(t Ticket, out Outcome) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	stale := t.generation != o.generation
	if o.phase == PhaseSubmitting {
		if stale {
			o.status = Status{}
			o.transition(PhaseIdle)
		}
	} else {
		stale = true
	}
	if stale {
		o.logger.Debug("stale outcome discarded")
		return false
	}

	if out.Failed() {
		o.fail(Status{Kind: StatusError, Text: "Error: " + out.Failure})
		return true
	}

	o.transition(PhaseRendering)
	o.view = Render(out.Records, out.RowCount, o.scheme, o.render)
	o.status = Status{Kind: StatusSuccess, Text: completedText(out)}
	o.transition(PhaseIdle)
	return true
}

// Analyze runs a full cycle: Begin, Submit and Complete. The returned error
// is non-nil only when the cycle never reached the service (validation or
// ErrBusy); service failures are reported through the Outcome.
func (o *Orchestrator) Analyze(ctx context.Context, form Form) (Outcome, error) {
	t, err := o.Begin(form)
	if err != nil {
		return Outcome{}, err
	}
	out := o.Submit(ctx, t)
	o.Complete(t, out)
	return out, nil
}

// Fail publishes a local failure that happened before a request could be
// built, such as an unreadable file path.
func (o *Orchestrator) Fail(message string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.phase == PhaseSubmitting {
		return
	}
	o.fail(Status{Kind: StatusError, Text: "Error: " + message})
}

// fail enters PhaseFailed, publishes status, hides results and returns to idle.
// Callers hold o.mu.
func (o *Orchestrator) fail(s Status) {
	o.transition(PhaseFailed)
	o.status = s
	o.view = View{}
	o.transition(PhaseIdle)
}

// transition records a phase change. Callers hold o.mu.
func (o *Orchestrator) transition(to Phase) {
	o.logger.Debug("phase transition",
		zap.Stringer("from", o.phase),
		zap.Stringer("to", to),
		zap.Stringer("mode", o.mode),
	)
	o.phase = to
}

// waitingText is shown after a mode switch while the discarded submission
// is still in flight.
const waitingText = "Waiting for previous analysis to finish..."

func pendingText(req Request) string {
	if req.Mode() == ModeFile {
		return "Processing file..."
	}
	return "Analyzing..."
}

func completedText(out Outcome) string {
	if out.RowCount != nil && *out.RowCount > 0 {
		return fmt.Sprintf("Analysis completed: processed %d rows", *out.RowCount)
	}
	n := len(out.Records)
	if n == 1 {
		return "Analysis completed: 1 result"
	}
	return fmt.Sprintf("Analysis completed: %d results", n)
}

package bubbletea

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/sentiview"
)

// Viewer runs the analyzer screen as a full-screen Bubble Tea program.
type Viewer struct {
	opts     []ModelOption
	progOpts []tea.ProgramOption
}

// NewViewer creates a new Viewer. Options are applied to every model it
// builds.
func NewViewer(opts ...ModelOption) *Viewer {
	return &Viewer{opts: opts}
}

// WithProgramOptions appends Bubble Tea program options, e.g. custom input
// and output for testing.
func (v *Viewer) WithProgramOptions(opts ...tea.ProgramOption) *Viewer {
	v.progOpts = append(v.progOpts, opts...)
	return v
}

// Run displays the analyzer driving orch and blocks until the user exits or
// ctx is canceled. Cancellation through ctx is a normal shutdown.
func (v *Viewer) Run(ctx context.Context, orch *sentiview.Orchestrator) error {
	opts := append([]ModelOption{WithContext(ctx)}, v.opts...)
	m := NewModel(orch, opts...)
	progOpts := append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	}, v.progOpts...)
	p := tea.NewProgram(m, progOpts...)
	_, err := p.Run()
	if err != nil && ctx.Err() != nil &&
		(errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, ctx.Err())) {
		return nil
	}
	return err
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fwojciec/sentiview"
	"github.com/fwojciec/sentiview/jsonl"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Output formats for the analyze command.
const (
	FormatText  = "text"
	FormatJSONL = "jsonl"
)

// ErrAnalysisFailed is returned when the service reports a failure.
var ErrAnalysisFailed = errors.New("analysis failed")

// ErrNoHistory is returned when the history file holds no runs.
var ErrNoHistory = errors.New("no saved runs")

// App encapsulates the headless application logic for testing.
type App struct {
	Analyzer sentiview.Analyzer
	Loader   sentiview.BlobLoader
	Saver    sentiview.RunSaver
	Runs     sentiview.RunLoader

	Stdin  io.Reader
	Stdout io.Writer

	Scheme      sentiview.LabelScheme
	Render      sentiview.RenderOptions
	HistoryPath string

	NewID  func() string
	Now    func() time.Time
	Logger *zap.Logger
}

// AnalyzeInput selects what the analyze command submits.
type AnalyzeInput struct {
	Texts    []string // Joined with newlines; stdin is read when empty
	FilePath string   // Switches to file mode when set
	Column   string
	Format   string
	Save     bool
}

// Analyze runs one analysis and writes the rendered results to Stdout.
func (a *App) Analyze(ctx context.Context, in AnalyzeInput) error {
	mode := sentiview.ModeText
	var form sentiview.Form
	if in.FilePath != "" {
		mode = sentiview.ModeFile
		blob, err := a.Loader.Load(in.FilePath)
		if err != nil {
			return err
		}
		form.File = blob
		form.Column = in.Column
	} else {
		text := strings.Join(in.Texts, "\n")
		if len(in.Texts) == 0 && a.Stdin != nil {
			data, err := io.ReadAll(a.Stdin)
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}
			text = string(data)
		}
		form.Text = text
	}

	orch := sentiview.NewOrchestrator(a.Analyzer,
		sentiview.WithInitialMode(mode),
		sentiview.WithLabelScheme(a.Scheme),
		sentiview.WithRenderOptions(a.Render),
		sentiview.WithLogger(a.logger()),
	)

	ticket, err := orch.Begin(form)
	if err != nil {
		var verr *sentiview.ValidationError
		if errors.As(err, &verr) {
			return errors.New(verr.Message())
		}
		return err
	}
	out := orch.Submit(ctx, ticket)
	orch.Complete(ticket, out)
	if out.Failed() {
		return fmt.Errorf("%w: %s", ErrAnalysisFailed, out.Failure)
	}

	if err := a.write(orch.State().View, in.Format); err != nil {
		return err
	}

	if in.Save {
		run := sentiview.NewRun(a.newID(), ticket.Request, out, a.now())
		if err := a.Saver.Save(a.HistoryPath, run); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		a.logger().Info("run saved", zap.String("id", run.ID), zap.String("path", a.HistoryPath))
	}
	return nil
}

// History prints every saved run at path, oldest first.
func (a *App) History(path string) error {
	runs, err := a.Runs.Load(path)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		return ErrNoHistory
	}
	for i, run := range runs {
		if i > 0 {
			fmt.Fprintln(a.Stdout)
		}
		header := fmt.Sprintf("# %s  %s  %s", run.At.Format(time.RFC3339), run.Mode, run.ID)
		if run.Source != "" {
			header += "  " + run.Source
		}
		fmt.Fprintln(a.Stdout, header)
		view := sentiview.Render(run.Records, run.RowCount, a.Scheme, a.Render)
		fmt.Fprint(a.Stdout, view.PlainText())
	}
	return nil
}

func (a *App) write(view sentiview.View, format string) error {
	switch format {
	case "", FormatText:
		if view.Empty() {
			return nil
		}
		_, err := fmt.Fprint(a.Stdout, view.PlainText())
		return err
	case FormatJSONL:
		return jsonl.NewWriter(a.Stdout).WriteView(view)
	default:
		return fmt.Errorf("unknown format %q (want %s or %s)", format, FormatText, FormatJSONL)
	}
}

func (a *App) newID() string {
	if a.NewID != nil {
		return a.NewID()
	}
	return uuid.NewString()
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) logger() *zap.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return zap.NewNop()
}

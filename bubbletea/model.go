// Package bubbletea provides the interactive terminal front end for
// sentiview using the Bubble Tea framework.
package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/sentiview"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Field identifies a focusable input.
type Field int

// Input fields. FieldText belongs to the text collector, the others to the
// file collector.
const (
	FieldText Field = iota
	FieldPath
	FieldColumn
)

// busyNotice answers an analyze request made while one is in flight.
const busyNotice = "Previous analysis still running"

// textareaHeight is the number of visible lines in the text collector.
const textareaHeight = 6

// outcomeMsg carries the result of a submission back to the event loop.
type outcomeMsg struct {
	ticket  sentiview.Ticket
	outcome sentiview.Outcome
}

// Model is the Bubble Tea model for the analyzer screen. All analysis state
// lives in the orchestrator; the model owns only widgets and focus.
type Model struct {
	ctx    context.Context
	orch   *sentiview.Orchestrator
	loader sentiview.BlobLoader
	clip   sentiview.Clipboard
	saver  sentiview.RunSaver
	logger *zap.Logger

	savePath string
	newID    func() string
	now      func() time.Time

	// UI Components
	text    textarea.Model
	path    textinput.Model
	column  textinput.Model
	results viewport.Model
	spinner spinner.Model
	help    help.Model

	// State
	focus  Field
	notice string
	ready  bool

	// Rendering
	width, height int
	styles        sentiview.Styles
	renderer      *lipgloss.Renderer

	keymap KeyMap
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithContext sets the context passed to submissions.
func WithContext(ctx context.Context) ModelOption {
	return func(m *Model) {
		m.ctx = ctx
	}
}

// WithBlobLoader sets how a typed file path is turned into a dataset.
func WithBlobLoader(l sentiview.BlobLoader) ModelOption {
	return func(m *Model) {
		m.loader = l
	}
}

// WithClipboard enables copying rendered results.
func WithClipboard(c sentiview.Clipboard) ModelOption {
	return func(m *Model) {
		m.clip = c
	}
}

// WithRunSaver appends every successful run to path.
func WithRunSaver(s sentiview.RunSaver, path string) ModelOption {
	return func(m *Model) {
		m.saver = s
		m.savePath = path
	}
}

// WithTheme sets the color theme.
func WithTheme(t sentiview.Theme) ModelOption {
	return func(m *Model) {
		m.styles = t.Styles()
	}
}

// WithRenderer sets a custom lipgloss renderer for the model.
func WithRenderer(r *lipgloss.Renderer) ModelOption {
	return func(m *Model) {
		m.renderer = r
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) ModelOption {
	return func(m *Model) {
		m.logger = l
	}
}

// WithIDFunc overrides run id generation (for testing).
func WithIDFunc(fn func() string) ModelOption {
	return func(m *Model) {
		m.newID = fn
	}
}

// WithClock overrides the run timestamp source (for testing).
func WithClock(fn func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = fn
	}
}

// NewModel creates a Model driving orch.
func NewModel(orch *sentiview.Orchestrator, opts ...ModelOption) Model {
	ta := textarea.New()
	ta.Placeholder = "Enter one text per line..."
	ta.ShowLineNumbers = false
	ta.SetHeight(textareaHeight)
	ta.CharLimit = 0
	ta.MaxHeight = 0

	path := textinput.New()
	path.Prompt = "File:   "
	path.Placeholder = "path/to/reviews.csv (.csv, .xlsx, .xls)"

	column := textinput.New()
	column.Prompt = "Column: "
	column.Placeholder = "text column name"

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	m := Model{
		ctx:     context.Background(),
		orch:    orch,
		logger:  zap.NewNop(),
		newID:   uuid.NewString,
		now:     time.Now,
		text:    ta,
		path:    path,
		column:  column,
		spinner: sp,
		help:    help.New(),
		keymap:  DefaultKeyMap(),
	}
	for _, opt := range opts {
		opt(&m)
	}

	m.focus = m.firstField()
	m.applyFocus()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true
		m.refreshResults()
		return m, nil

	case outcomeMsg:
		return m.handleOutcome(msg)

	case spinner.TickMsg:
		if !m.orch.State().Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocused(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keymap.ToggleMode):
		next := sentiview.ModeFile
		if m.orch.Mode() == sentiview.ModeFile {
			next = sentiview.ModeText
		}
		m.orch.SetMode(next)
		m.notice = ""
		m.focus = m.firstField()
		m.applyFocus()
		m.layout()
		m.refreshResults()
		return m, nil

	case key.Matches(msg, m.keymap.NextField):
		if m.orch.Mode() == sentiview.ModeFile {
			m.focus = otherFileField(m.focus)
			m.applyFocus()
			return m, nil
		}

	case key.Matches(msg, m.keymap.PrevField):
		if m.orch.Mode() == sentiview.ModeFile {
			m.focus = otherFileField(m.focus)
			m.applyFocus()
		}
		return m, nil

	case key.Matches(msg, m.keymap.Analyze):
		return m.analyze()

	case key.Matches(msg, m.keymap.Clear):
		m.orch.Clear()
		m.notice = ""
		m.refreshResults()
		return m, nil

	case key.Matches(msg, m.keymap.Copy):
		m.copyResults()
		return m, nil

	case key.Matches(msg, m.keymap.PageUp):
		m.results.PageUp()
		return m, nil

	case key.Matches(msg, m.keymap.PageDown):
		m.results.PageDown()
		return m, nil

	case key.Matches(msg, m.keymap.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.layout()
		return m, nil
	}

	return m.updateFocused(msg)
}

// analyze validates the active collector and, when valid, starts a
// submission in the background.
func (m Model) analyze() (tea.Model, tea.Cmd) {
	if m.orch.State().Busy() {
		m.notice = busyNotice
		return m, nil
	}
	m.notice = ""

	form := sentiview.Form{
		Text:   m.text.Value(),
		Column: m.column.Value(),
	}
	if m.orch.Mode() == sentiview.ModeFile {
		if p := strings.TrimSpace(m.path.Value()); p != "" {
			if m.loader == nil {
				m.orch.Fail("file loading is not available")
				m.refreshResults()
				return m, nil
			}
			blob, err := m.loader.Load(p)
			if err != nil {
				m.logger.Warn("load dataset", zap.String("path", p), zap.Error(err))
				m.orch.Fail(err.Error())
				m.refreshResults()
				return m, nil
			}
			form.File = blob
		}
	}

	ticket, err := m.orch.Begin(form)
	if err != nil {
		if errors.Is(err, sentiview.ErrBusy) {
			m.notice = busyNotice
			return m, nil
		}
		m.refreshResults()
		return m, nil
	}
	m.refreshResults()
	return m, tea.Batch(m.spinner.Tick, m.submit(ticket))
}

func (m Model) submit(t sentiview.Ticket) tea.Cmd {
	ctx, orch := m.ctx, m.orch
	return func() tea.Msg {
		return outcomeMsg{ticket: t, outcome: orch.Submit(ctx, t)}
	}
}

func (m Model) handleOutcome(msg outcomeMsg) (tea.Model, tea.Cmd) {
	applied := m.orch.Complete(msg.ticket, msg.outcome)
	if m.notice == busyNotice {
		m.notice = ""
	}
	if applied && !msg.outcome.Failed() {
		m.saveRun(msg.ticket.Request, msg.outcome)
	}
	m.refreshResults()
	m.results.GotoTop()
	return m, nil
}

func (m *Model) saveRun(req sentiview.Request, out sentiview.Outcome) {
	if m.saver == nil || m.savePath == "" {
		return
	}
	run := sentiview.NewRun(m.newID(), req, out, m.now())
	// Best-effort save
	if err := m.saver.Save(m.savePath, run); err != nil {
		m.logger.Warn("save run", zap.String("path", m.savePath), zap.Error(err))
		m.notice = "Could not save run: " + err.Error()
	}
}

func (m *Model) copyResults() {
	view := m.orch.State().View
	if view.Empty() {
		m.notice = "Nothing to copy"
		return
	}
	if m.clip == nil {
		m.notice = "Clipboard not available"
		return
	}
	if err := m.clip.Copy(view.PlainText()); err != nil {
		m.logger.Warn("copy results", zap.Error(err))
		m.notice = "Copy failed: " + err.Error()
		return
	}
	m.notice = fmt.Sprintf("Copied %d results to clipboard", len(view.Units))
}

// updateFocused forwards msg to the focused input.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case FieldText:
		m.text, cmd = m.text.Update(msg)
	case FieldPath:
		m.path, cmd = m.path.Update(msg)
	case FieldColumn:
		m.column, cmd = m.column.Update(msg)
	}
	return m, cmd
}

func (m Model) firstField() Field {
	if m.orch.ActiveCollector() == sentiview.CollectorFile {
		return FieldPath
	}
	return FieldText
}

func otherFileField(f Field) Field {
	if f == FieldPath {
		return FieldColumn
	}
	return FieldPath
}

func (m *Model) applyFocus() {
	m.text.Blur()
	m.path.Blur()
	m.column.Blur()
	switch m.focus {
	case FieldText:
		m.text.Focus()
	case FieldPath:
		m.path.Focus()
	case FieldColumn:
		m.column.Focus()
	}
}

// layout sizes widgets for the current window.
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	m.help.Width = m.width
	m.text.SetWidth(m.width - 2)
	m.path.Width = m.width - len(m.path.Prompt) - 2
	m.column.Width = m.width - len(m.column.Prompt) - 2

	used := lipgloss.Height(m.headerView()) +
		lipgloss.Height(m.collectorView()) +
		3 + // status, notice, separator
		lipgloss.Height(m.help.View(m.keymap))
	h := m.height - used
	if h < 3 {
		h = 3
	}
	if !m.ready {
		m.results = viewport.New(m.width, h)
	} else {
		m.results.Width = m.width
		m.results.Height = h
	}
}

func (m *Model) refreshResults() {
	if !m.ready {
		return
	}
	m.results.SetContent(m.renderResults(m.orch.State().View))
}

// Mode returns the active input mode.
func (m Model) Mode() sentiview.Mode {
	return m.orch.Mode()
}

// Focus returns the focused field.
func (m Model) Focus() Field {
	return m.focus
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var s strings.Builder
	s.WriteString(m.headerView())
	s.WriteString("\n")
	s.WriteString(m.collectorView())
	s.WriteString("\n")
	s.WriteString(m.statusView())
	s.WriteString("\n")
	s.WriteString(m.noticeView())
	s.WriteString("\n")
	s.WriteString(m.newStyle().Foreground(lipgloss.Color(m.styles.Muted.Foreground)).
		Render(strings.Repeat("─", max(m.width, 1))))
	s.WriteString("\n")
	s.WriteString(m.results.View())
	s.WriteString("\n")
	s.WriteString(m.help.View(m.keymap))
	return s.String()
}

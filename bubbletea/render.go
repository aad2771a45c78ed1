package bubbletea

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/sentiview"
)

// newStyle creates a new lipgloss style using the model's renderer.
func (m Model) newStyle() lipgloss.Style {
	if m.renderer != nil {
		return m.renderer.NewStyle()
	}
	return lipgloss.NewStyle()
}

// colored returns a style with the pair's colors applied.
func (m Model) colored(c sentiview.ColorPair) lipgloss.Style {
	style := m.newStyle()
	if c.Foreground != "" {
		style = style.Foreground(lipgloss.Color(c.Foreground))
	}
	if c.Background != "" {
		style = style.Background(lipgloss.Color(c.Background))
	}
	return style
}

// headerView renders the mode tabs.
func (m Model) headerView() string {
	tab := func(label string, active bool) string {
		pair := m.styles.InactiveTab
		if active {
			pair = m.styles.ActiveTab
		}
		style := m.colored(pair).Padding(0, 2)
		if active {
			style = style.Bold(true)
		}
		return style.Render(label)
	}
	mode := m.orch.Mode()
	return lipgloss.JoinHorizontal(lipgloss.Top,
		tab("Text", mode == sentiview.ModeText),
		" ",
		tab("File", mode == sentiview.ModeFile),
	)
}

// collectorView renders exactly one input collector: the textarea in text
// mode, the path and column inputs in file mode.
func (m Model) collectorView() string {
	if m.orch.ActiveCollector() == sentiview.CollectorFile {
		return m.path.View() + "\n" + m.column.View()
	}
	return m.text.View()
}

// statusView renders the status line with a spinner while busy.
func (m Model) statusView() string {
	st := m.orch.State()
	if st.Status.Text == "" {
		return ""
	}
	text := st.Status.Text
	if st.Busy() {
		text = m.spinner.View() + " " + text
	}
	return m.colored(m.styles.ForStatus(st.Status.Kind)).Render(text)
}

func (m Model) noticeView() string {
	if m.notice == "" {
		return ""
	}
	return m.colored(m.styles.Muted).Italic(true).Render(m.notice)
}

// renderResults renders the row banner and one card per display unit.
func (m Model) renderResults(v sentiview.View) string {
	if v.Empty() {
		return ""
	}

	width := m.width - 2
	if width < 10 {
		width = 10
	}

	var parts []string
	if banner := v.RowBanner(); banner != "" {
		parts = append(parts, m.newStyle().Bold(true).Render(banner))
	}
	for _, u := range v.Units {
		parts = append(parts, m.renderCard(u, width))
	}
	return strings.Join(parts, "\n\n")
}

func (m Model) renderCard(u sentiview.DisplayUnit, width int) string {
	pair := m.styles.ForSentiment(u.Sentiment)

	headline := m.newStyle().
		Bold(true).
		Foreground(lipgloss.Color(pair.Foreground)).
		Render(u.Headline())
	body := m.colored(m.styles.Muted).
		Width(width - 2).
		Render(`"` + cleanText(u.Text) + `"`)

	card := m.newStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(lipgloss.Color(pair.Foreground)).
		PaddingLeft(1)
	if pair.Background != "" {
		card = card.Background(lipgloss.Color(pair.Background))
	}
	return card.Render(headline + "\n" + body)
}

// cleanText flattens control whitespace that would break card layout:
// line breaks become spaces and tabs expand to the next 4-column stop.
func cleanText(s string) string {
	if !strings.ContainsAny(s, "\t\r\n") {
		return s
	}
	var sb strings.Builder
	col := 0
	for _, r := range s {
		switch r {
		case '\r':
			continue
		case '\n':
			sb.WriteByte(' ')
			col++
		case '\t':
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
		default:
			sb.WriteRune(r)
			col += lipgloss.Width(string(r))
		}
	}
	return sb.String()
}

const tabWidth = 4

package sentiview

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultMaxTextLen is the default truncation length for displayed text.
const DefaultMaxTextLen = 100

// ellipsis is appended to truncated text.
const ellipsis = "..."

// DisplayUnit is one rendered prediction.
type DisplayUnit struct {
	Index      int       `json:"index"`      // Position in the service response (0-based)
	Sentiment  Sentiment `json:"sentiment"`  // Derived classification
	Label      string    `json:"label"`      // Raw label as returned by the service
	Confidence string    `json:"confidence"` // e.g. "97.0%"
	Text       string    `json:"text"`       // Possibly truncated source text
	Truncated  bool      `json:"truncated"`
}

// View is the ordered rendering of one successful analysis.
type View struct {
	Units    []DisplayUnit
	RowCount *int
}

// Empty reports whether the view has nothing to show.
func (v View) Empty() bool {
	return len(v.Units) == 0 && v.RowBanner() == ""
}

// Headline returns the badge line of a unit, e.g.
// "✅ POSITIVE (97.0% confidence)".
func (u DisplayUnit) Headline() string {
	return fmt.Sprintf("%s %s (%s confidence)", u.Sentiment.Icon(), u.Sentiment, u.Confidence)
}

// RowBanner returns the "Processed N rows" line, or "" when the row count
// is unknown or zero.
func (v View) RowBanner() string {
	if v.RowCount == nil || *v.RowCount == 0 {
		return ""
	}
	return fmt.Sprintf("📊 Processed %d rows", *v.RowCount)
}

// PlainText renders the view without styling: the row banner, then one
// headline and quoted text per unit.
func (v View) PlainText() string {
	var sb strings.Builder
	if banner := v.RowBanner(); banner != "" {
		sb.WriteString(banner)
		sb.WriteString("\n\n")
	}
	for i, u := range v.Units {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(u.Headline())
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "\"%s\"\n", u.Text)
	}
	return sb.String()
}

// RenderOptions controls presentation-dependent parts of rendering.
type RenderOptions struct {
	MaxTextLen int // Runes kept before truncation; <= 0 disables truncation
}

// DefaultRenderOptions returns the default render options.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{MaxTextLen: DefaultMaxTextLen}
}

// Render converts records into display units in input order. It is pure:
// the same records always produce the same view.
func Render(records []PredictionRecord, rowCount *int, scheme LabelScheme, opts RenderOptions) View {
	units := make([]DisplayUnit, len(records))
	for i, r := range records {
		text, truncated := Truncate(r.Text, opts.MaxTextLen)
		units[i] = DisplayUnit{
			Index:      i,
			Sentiment:  scheme.Classify(r.Label),
			Label:      r.Label,
			Confidence: FormatConfidence(r.Score),
			Text:       text,
			Truncated:  truncated,
		}
	}
	return View{Units: units, RowCount: rowCount}
}

// FormatConfidence renders a [0,1] score as a percentage with one decimal.
func FormatConfidence(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

// Truncate shortens text to max runes and appends an ellipsis. It reports
// whether the text was shortened. A max of zero or less disables truncation.
func Truncate(text string, max int) (string, bool) {
	if max <= 0 || utf8.RuneCountInString(text) <= max {
		return text, false
	}
	runes := []rune(text)
	return string(runes[:max]) + ellipsis, true
}

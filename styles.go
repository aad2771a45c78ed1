package sentiview

// ColorPair represents a foreground and background color combination.
// Colors should be hex strings in "#RRGGBB" format (e.g., "#ff0000" for red).
// Empty strings are valid and indicate no color override (use terminal default).
type ColorPair struct {
	Foreground string
	Background string
}

// Styles contains color pairs for all visual elements of the analyzer screen.
type Styles struct {
	Positive ColorPair // Card accent for positive predictions
	Negative ColorPair // Card accent for negative predictions
	Neutral  ColorPair // Card accent for neutral predictions

	Info    ColorPair // Status line while a request is in flight
	Warning ColorPair // Status line for validation problems
	Error   ColorPair // Status line for failures
	Success ColorPair // Status line after a completed analysis

	ActiveTab   ColorPair // Selected mode tab
	InactiveTab ColorPair // Unselected mode tab
	Muted       ColorPair // Help text, quoted prediction text
}

// ForSentiment returns the card colors for s.
func (s Styles) ForSentiment(sentiment Sentiment) ColorPair {
	switch sentiment {
	case SentimentPositive:
		return s.Positive
	case SentimentNeutral:
		return s.Neutral
	default:
		return s.Negative
	}
}

// ForStatus returns the status line colors for kind.
func (s Styles) ForStatus(kind StatusKind) ColorPair {
	switch kind {
	case StatusInfo:
		return s.Info
	case StatusWarning:
		return s.Warning
	case StatusError:
		return s.Error
	case StatusSuccess:
		return s.Success
	default:
		return ColorPair{}
	}
}

// Theme provides styles for rendering the analyzer.
// Different implementations can provide light/dark variants.
type Theme interface {
	Styles() Styles
}

package sentiview

import "strings"

// Sentiment is the display classification derived from a record's label.
type Sentiment int

// Sentiment values. Anything not recognized as positive or neutral is negative.
const (
	SentimentNegative Sentiment = iota
	SentimentPositive
	SentimentNeutral
)

// String returns the upper-case display name.
func (s Sentiment) String() string {
	switch s {
	case SentimentPositive:
		return "POSITIVE"
	case SentimentNeutral:
		return "NEUTRAL"
	default:
		return "NEGATIVE"
	}
}

// Icon returns the badge shown next to the sentiment name.
func (s Sentiment) Icon() string {
	switch s {
	case SentimentPositive:
		return "✅"
	case SentimentNeutral:
		return "➖"
	default:
		return "❌"
	}
}

// MarshalText encodes the sentiment as its lower-case name.
func (s Sentiment) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(s.String())), nil
}

// LabelScheme maps service label values to sentiments. Services disagree on
// the positive sentinel ("LABEL_1" vs "positive"), so the mapping is data.
type LabelScheme struct {
	Positive      []string
	Neutral       []string // Optional; empty means a two-class service
	CaseSensitive bool
}

// DefaultLabelScheme accepts both observed positive conventions and an
// explicit "neutral" label.
func DefaultLabelScheme() LabelScheme {
	return LabelScheme{
		Positive: []string{"LABEL_1", "positive"},
		Neutral:  []string{"neutral"},
	}
}

// Classify returns the sentiment for a label value.
func (s LabelScheme) Classify(label string) Sentiment {
	label = strings.TrimSpace(label)
	if s.matches(s.Positive, label) {
		return SentimentPositive
	}
	if s.matches(s.Neutral, label) {
		return SentimentNeutral
	}
	return SentimentNegative
}

func (s LabelScheme) matches(sentinels []string, label string) bool {
	for _, v := range sentinels {
		if s.CaseSensitive {
			if v == label {
				return true
			}
		} else if strings.EqualFold(v, label) {
			return true
		}
	}
	return false
}

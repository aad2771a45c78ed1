package sentiview_test

import (
	"testing"

	"github.com/fwojciec/sentiview"
	"github.com/stretchr/testify/assert"
)

func TestStyles_ForSentiment(t *testing.T) {
	t.Parallel()

	styles := sentiview.Styles{
		Positive: sentiview.ColorPair{Foreground: "#00ff00"},
		Negative: sentiview.ColorPair{Foreground: "#ff0000"},
		Neutral:  sentiview.ColorPair{Foreground: "#0000ff"},
	}

	assert.Equal(t, "#00ff00", styles.ForSentiment(sentiview.SentimentPositive).Foreground)
	assert.Equal(t, "#ff0000", styles.ForSentiment(sentiview.SentimentNegative).Foreground)
	assert.Equal(t, "#0000ff", styles.ForSentiment(sentiview.SentimentNeutral).Foreground)
}

func TestStyles_ForStatus(t *testing.T) {
	t.Parallel()

	styles := sentiview.Styles{
		Info:    sentiview.ColorPair{Foreground: "#111111"},
		Warning: sentiview.ColorPair{Foreground: "#222222"},
		Error:   sentiview.ColorPair{Foreground: "#333333"},
		Success: sentiview.ColorPair{Foreground: "#444444"},
	}

	assert.Equal(t, "#111111", styles.ForStatus(sentiview.StatusInfo).Foreground)
	assert.Equal(t, "#222222", styles.ForStatus(sentiview.StatusWarning).Foreground)
	assert.Equal(t, "#333333", styles.ForStatus(sentiview.StatusError).Foreground)
	assert.Equal(t, "#444444", styles.ForStatus(sentiview.StatusSuccess).Foreground)
	assert.Equal(t, sentiview.ColorPair{}, styles.ForStatus(sentiview.StatusNone))
}

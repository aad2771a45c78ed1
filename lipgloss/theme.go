// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/sentiview"
)

// Compile-time interface verification.
var _ sentiview.Theme = (*Theme)(nil)

// Theme implements sentiview.Theme with Lipgloss-compatible colors.
type Theme struct {
	styles sentiview.Styles
}

// Styles returns the color styles for this theme.
func (t *Theme) Styles() sentiview.Styles {
	return t.styles
}

// DefaultTheme returns the theme matching the terminal background.
func DefaultTheme() *Theme {
	if lipgloss.HasDarkBackground() {
		return DarkTheme()
	}
	return LightTheme()
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		styles: sentiview.Styles{
			Positive: sentiview.ColorPair{
				Foreground: "#a6e3a1", // Green
				Background: "#1f3320",
			},
			Negative: sentiview.ColorPair{
				Foreground: "#f38ba8", // Red
				Background: "#3a1f26",
			},
			Neutral: sentiview.ColorPair{
				Foreground: "#89b4fa", // Blue
				Background: "#1f2838",
			},
			Info:    sentiview.ColorPair{Foreground: "#89dceb"},
			Warning: sentiview.ColorPair{Foreground: "#fab387"}, // Orange, as in the web client
			Error:   sentiview.ColorPair{Foreground: "#f38ba8"},
			Success: sentiview.ColorPair{Foreground: "#a6e3a1"},
			ActiveTab: sentiview.ColorPair{
				Foreground: "#1e1e2e",
				Background: "#89b4fa",
			},
			InactiveTab: sentiview.ColorPair{
				Foreground: "#a6adc8",
				Background: "#313244",
			},
			Muted: sentiview.ColorPair{Foreground: "#6c7086"},
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
// Card backgrounds follow the web client's #d4edda / #f8d7da pair.
func LightTheme() *Theme {
	return &Theme{
		styles: sentiview.Styles{
			Positive: sentiview.ColorPair{
				Foreground: "#28a745",
				Background: "#d4edda",
			},
			Negative: sentiview.ColorPair{
				Foreground: "#dc3545",
				Background: "#f8d7da",
			},
			Neutral: sentiview.ColorPair{
				Foreground: "#1e66f5",
				Background: "#dce6f8",
			},
			Info:    sentiview.ColorPair{Foreground: "#04a5e5"},
			Warning: sentiview.ColorPair{Foreground: "#fe640b"},
			Error:   sentiview.ColorPair{Foreground: "#d20f39"},
			Success: sentiview.ColorPair{Foreground: "#40a02b"},
			ActiveTab: sentiview.ColorPair{
				Foreground: "#ffffff",
				Background: "#1e66f5",
			},
			InactiveTab: sentiview.ColorPair{
				Foreground: "#6c6f85",
				Background: "#e6e9ef",
			},
			Muted: sentiview.ColorPair{Foreground: "#9ca0b0"},
		},
	}
}

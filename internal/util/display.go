package util

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Terminal control sequences
const (
	ColorReset   = "\033[0m"
	ColorCyan    = "\033[36m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorRed     = "\033[31m"
	ColorMagenta = "\033[35m"
	ColorBold    = "\033[1m"

	ClearScreen    = "\033[2J"
	MoveCursorHome = "\033[H"
	HideCursor     = "\033[?25l"
	ShowCursor     = "\033[?25h"
	EnterAltScreen = "\033[?1049h"
	ExitAltScreen  = "\033[?1049l"
)

// GetDisplayWidth calculates the actual display width of a string,
// accounting for wide runes and emojis.
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadRight pads text with spaces to the given display width.
func PadRight(text string, width int) string {
	pad := width - GetDisplayWidth(text)
	if pad <= 0 {
		return text
	}
	return text + strings.Repeat(" ", pad)
}

// PadLeft pads text with spaces on the left to the given display width.
func PadLeft(text string, width int) string {
	pad := width - GetDisplayWidth(text)
	if pad <= 0 {
		return text
	}
	return strings.Repeat(" ", pad) + text
}

// CreateProgressBar renders a fixed-width bar for a display percentage.
func CreateProgressBar(percentage float64, width int) string {
	if width < 4 {
		width = 4
	}
	barWidth := width - 2
	filled := int(ClampPercent(percentage) / 100 * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}

	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
}

// PercentColor returns the color for a usage percentage.
func PercentColor(percentage float64) string {
	if percentage >= 90 {
		return ColorRed
	}
	if percentage >= 60 {
		return ColorYellow
	}
	return ColorGreen
}

package ui

import (
	"os"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/term"
)

// GetFangScheme returns the same light/dark-aware color scheme fang uses.
func GetFangScheme() fang.ColorScheme {
	// This mirrors fang.mustColorscheme(DefaultColorScheme)
	isDark := lipgloss.HasDarkBackground(os.Stdin, os.Stdout)
	return fang.DefaultColorScheme(lipgloss.LightDark(isDark))
}

// UI layout constants.
const (
	defaultMargin = 2
	fallbackWidth = 80
	maxRuleWidth  = 100
)

// TerminalWidth returns the width of stdout, or a fallback when stdout is not a terminal.
func TerminalWidth() int {
	if w, _, err := term.GetSize(os.Stdout.Fd()); err == nil && w > 0 {
		return w
	}
	return fallbackWidth
}

// StepBanner renders the heading printed before a build step starts, e.g.
//
//	── [2/3] BUNDLE ────────
func StepBanner(index, total int, name string) string {
	colorScheme := GetFangScheme()

	label := lipgloss.NewStyle().
		Bold(true).
		Foreground(colorScheme.QuotedString).
		Transform(strings.ToUpper).
		Render(name)
	counter := lipgloss.NewStyle().
		Foreground(colorScheme.Flag).
		Render("[" + strconv.Itoa(index) + "/" + strconv.Itoa(total) + "]")

	head := "── " + counter + " " + label + " "
	width := min(TerminalWidth(), maxRuleWidth) - lipgloss.Width(head) - defaultMargin
	rule := lipgloss.NewStyle().Foreground(colorScheme.Base).Render(strings.Repeat("─", max(width, 0)))

	return head + rule
}

// StatusStyles returns the styles used for the final success and failure lines.
func StatusStyles() (lipgloss.Style, lipgloss.Style) {
	colorScheme := GetFangScheme()

	okStyle := lipgloss.NewStyle().Bold(true).Foreground(colorScheme.Flag)
	failStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	return okStyle, failStyle
}

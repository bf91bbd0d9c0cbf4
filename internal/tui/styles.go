package tui

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

var (
	textColor    = lipgloss.Color("#F0F0F0")
	errorColor   = lipgloss.Color("#FF4D4F")
	mutedColor   = lipgloss.Color("#8C8C8C")
	accentColor  = lipgloss.Color("#C89A3A")
	dimColor     = lipgloss.Color("#6E6E6E")
	borderColor  = lipgloss.Color("#4A4A4A")
	subtleColor  = lipgloss.Color("#B0B0B0")
	successColor = lipgloss.Color("#52C41A")
)

var (
	titleStyle   = lipgloss.NewStyle().Foreground(textColor).Bold(true)
	accentStyle  = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	mutedStyle   = lipgloss.NewStyle().Foreground(mutedColor)
	footerStyle  = lipgloss.NewStyle().Foreground(dimColor)
	errorStyle   = lipgloss.NewStyle().Foreground(errorColor)
	successStyle = lipgloss.NewStyle().Foreground(successColor)
	selectStyle  = lipgloss.NewStyle().Foreground(textColor).Bold(true)

	activeNavStyle = lipgloss.NewStyle().
			Foreground(textColor).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(accentColor)
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(subtleColor).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(borderColor)
	cardStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(borderColor)
	cardTitleStyle  = lipgloss.NewStyle().Foreground(mutedColor)
	cardValueStyle  = lipgloss.NewStyle().Foreground(textColor).Bold(true)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
	modalStyle      = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(accentColor).
			Padding(1, 2)
	toastStyle      = lipgloss.NewStyle().Foreground(accentColor)
	toastErrorStyle = lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	barFillStyle    = lipgloss.NewStyle().Foreground(accentColor)
	barEmptyStyle   = lipgloss.NewStyle().Foreground(borderColor)
)

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(borderColor).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(textColor).
		Bold(true)
	return styles
}

package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the styles of the level picker and the scoreboard.
type Theme struct {
	// Level picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemSolved  lipgloss.Style
	MenuDescription lipgloss.Style
	Controls        lipgloss.Style

	// Scoreboard styles
	BoardTitle  lipgloss.Style
	BoardBorder lipgloss.Color
	BoardEmpty  lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true), // Lime green
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuItemSolved:  lipgloss.NewStyle().Foreground(lipgloss.Color("35")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Controls:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		BoardTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).MarginBottom(1),
		BoardBorder: lipgloss.Color("240"),
		BoardEmpty:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
		TabActive: lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1),
		TabInactive: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// MonochromeTheme returns a grayscale theme for terminals without colors.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.MenuTitle = lipgloss.NewStyle().Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Bold(true).Underline(true)
	theme.MenuItemSolved = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.TabActive = lipgloss.NewStyle().Bold(true).Reverse(true).Padding(0, 1)
	return theme
}

// ThemeByName returns the named theme. Unknown names get the default.
func ThemeByName(name string) Theme {
	if name == "mono" || name == "monochrome" {
		return MonochromeTheme()
	}
	return DefaultTheme()
}

// Global theme variable (can be changed at runtime)
var theme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}

// CurrentTheme returns the current global theme.
func CurrentTheme() Theme {
	return theme
}

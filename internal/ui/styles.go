package ui

import "github.com/charmbracelet/lipgloss"

// Colors used throughout the TUI.
var (
	ColorBlue   = lipgloss.Color("#32C8FF")
	ColorCyan   = lipgloss.Color("#00FFFF")
	ColorGreen  = lipgloss.Color("#32FF32")
	ColorRed    = lipgloss.Color("#FF3232")
	ColorOrange = lipgloss.Color("#FF7F00")
	ColorGray   = lipgloss.Color("#B4B4B4")
	ColorDim    = lipgloss.Color("#444444")
	ColorWhite  = lipgloss.Color("#FFFFFF")
)

// Base styles reused by UI components.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorCyan)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	ClassifiedDotStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	ErrorTextStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	SubcategoryStyle = lipgloss.NewStyle().
				Foreground(ColorOrange).
				Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorWhite)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	FooterKeyStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorGray)

	DividerStyle = lipgloss.NewStyle().
			Foreground(ColorDim)
)

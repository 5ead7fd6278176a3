package tui

import "github.com/charmbracelet/lipgloss"

// One Dark Pro color palette
var (
	ColorFgPrimary   = lipgloss.Color("#ABB2BF")
	ColorFgSecondary = lipgloss.Color("#828997")
	ColorFgMuted     = lipgloss.Color("#636B78")
	ColorFgComment   = lipgloss.Color("#5C6370")

	ColorRed     = lipgloss.Color("#E06C75")
	ColorGreen   = lipgloss.Color("#98C379")
	ColorYellow  = lipgloss.Color("#E5C07B")
	ColorBlue    = lipgloss.Color("#61AFEF")
	ColorMagenta = lipgloss.Color("#C678DD")
	ColorCyan    = lipgloss.Color("#56B6C2")
	ColorOrange  = lipgloss.Color("#D19A66")

	ColorBorder = lipgloss.Color("#3F4451")
)

// Component styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true).
			PaddingLeft(1)

	// Status badge styles
	BadgeRunningStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true)

	BadgeCheckingStyle = lipgloss.NewStyle().
				Foreground(ColorYellow).
				Bold(true)

	BadgeStoppedStyle = lipgloss.NewStyle().
				Foreground(ColorFgMuted)

	// Countdown display
	CountdownStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	// Task list panel
	TaskListStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	TaskListTitleStyle = lipgloss.NewStyle().
				Foreground(ColorMagenta).
				Bold(true)

	TaskCriticalStyle = lipgloss.NewStyle().
				Foreground(ColorRed).
				Bold(true)

	TaskHighStyle = lipgloss.NewStyle().
			Foreground(ColorOrange)

	TaskMetaStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)

	EmptyListStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			Italic(true)

	// Setup wizard styles
	SetupTitleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	SetupLabelStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true)

	UnselectedItemStyle = lipgloss.NewStyle().
				Foreground(ColorFgSecondary)

	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	// Status bar styles
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1).
			PaddingRight(1)

	// Error styles
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorYellow)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)
)

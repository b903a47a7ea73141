package styles

import "github.com/charmbracelet/lipgloss"

// Colors
var (
	ColorPrimary    = lipgloss.Color("#5DADE2")
	ColorSecondary  = lipgloss.Color("#82E0AA")
	ColorWarning    = lipgloss.Color("#F4D03F")
	ColorError      = lipgloss.Color("#E74C3C")
	ColorMuted      = lipgloss.Color("#7F8C8D")
	ColorForeground = lipgloss.Color("#ECF0F1")
	ColorOK         = lipgloss.Color("#2ECC71")
	ColorDegraded   = lipgloss.Color("#F39C12")
	ColorDown       = lipgloss.Color("#E74C3C")
	ColorDarkBg     = lipgloss.Color("#2C3E50")
)

// Text Styles
var (
	// Muted text style
	Muted = lipgloss.NewStyle().Foreground(ColorMuted)

	// Secondary text style
	Secondary = lipgloss.NewStyle().Foreground(ColorSecondary)

	// Primary text style
	Primary = lipgloss.NewStyle().Foreground(ColorPrimary)

	// Base styles
	BaseStyle = lipgloss.NewStyle().Foreground(ColorForeground)
)

// Pane styles
var (
	PaneBorder = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted)
)

// Title styles
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)
)

// Tab styles
var (
	ActiveTab = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorDarkBg).
			Padding(0, 2)

	InactiveTab = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 2)
)

// Connection badge styles
var (
	BadgeConnected = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorOK)

	BadgeRetrying = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDegraded)

	BadgeDown = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDown)
)

// Bottom bar styles
var (
	BottomBar = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Background(ColorDarkBg).
			Padding(0, 1)

	HintKey = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary)

	HintDesc = lipgloss.NewStyle().
			Foreground(ColorMuted)
)

// Event severity styles
var (
	EventInfo    = lipgloss.NewStyle().Foreground(ColorForeground)
	EventWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	EventError   = lipgloss.NewStyle().Foreground(ColorError)
)

// Trend bar styles
var (
	TrendBar   = lipgloss.NewStyle().Foreground(ColorPrimary)
	TrendLabel = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Input styles
var (
	InputPrompt = lipgloss.NewStyle().Foreground(ColorPrimary)
)

// Help overlay styles
var (
	HelpOverlay = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2)

	HelpTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)
)

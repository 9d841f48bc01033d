// Package theme holds the palette and shared styles, taken from a green
// passport cover with gold foil.
package theme

import (
	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#15803D") // passport green
	Secondary = lipgloss.Color("#0EA5E9") // sky
	Accent    = lipgloss.Color("#EAB308") // gold foil
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#EF4444")
	Stamp     = lipgloss.Color("#DC2626") // visa ink
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	Border    = lipgloss.Color("#334155")
)

// Text styles.
var (
	Title    = lipgloss.NewStyle().Bold(true).Foreground(Accent).Align(lipgloss.Center)
	Subtitle = lipgloss.NewStyle().Foreground(TextDim).Align(lipgloss.Center)
	Body     = lipgloss.NewStyle().Foreground(Text)
	Hint     = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	Label    = lipgloss.NewStyle().Foreground(TextDim)
	Value    = lipgloss.NewStyle().Foreground(Text).Bold(true)
)

// Passport frames a result card; VisaStamp marks its corner.
var (
	Passport = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Accent).
			Padding(1, 2)

	VisaStamp = lipgloss.NewStyle().
			Foreground(Stamp).
			Bold(true).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Stamp).
			Padding(0, 1)
)

// Selection states for lists.
var (
	Selected   = lipgloss.NewStyle().Foreground(Accent).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Correct    = lipgloss.NewStyle().Foreground(Success).Bold(true)
)

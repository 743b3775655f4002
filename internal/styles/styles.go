// Package styles holds the lipgloss palette and styles used by flagctl output.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette (default dark theme).
var (
	Primary     = lipgloss.Color("#7C3AED")
	Success     = lipgloss.Color("#10B981")
	Warning     = lipgloss.Color("#F59E0B")
	Error       = lipgloss.Color("#EF4444")
	TextPrimary = lipgloss.Color("#F9FAFB")
	TextMuted   = lipgloss.Color("#6B7280")
)

// Set is the group of styles a renderer uses.
type Set struct {
	GroupTitle lipgloss.Style
	Key        lipgloss.Style
	Enabled    lipgloss.Style
	Disabled   lipgloss.Style
	// Overridden marks a current value that differs from the default.
	Overridden lipgloss.Style
	Muted      lipgloss.Style
}

// New returns the style set. Without color every style renders text as-is,
// which keeps piped output free of escape sequences.
func New(color bool) *Set {
	if !color {
		plain := lipgloss.NewStyle()
		return &Set{
			GroupTitle: plain,
			Key:        plain,
			Enabled:    plain,
			Disabled:   plain,
			Overridden: plain,
			Muted:      plain,
		}
	}
	return &Set{
		GroupTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary),
		Key: lipgloss.NewStyle().
			Foreground(TextPrimary),
		Enabled: lipgloss.NewStyle().
			Foreground(Success),
		Disabled: lipgloss.NewStyle().
			Foreground(Error),
		Overridden: lipgloss.NewStyle().
			Bold(true).
			Foreground(Warning),
		Muted: lipgloss.NewStyle().
			Foreground(TextMuted),
	}
}

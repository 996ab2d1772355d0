// Package styles provides the lipgloss styles used by the composite TUI.
package styles

import "github.com/charmbracelet/lipgloss"

// Theme names accepted by New.
const (
	ThemeDefault = "default"
	ThemeMono    = "mono"
)

var (
	// Colors - all colors meet WCAG AA contrast (4.5:1) on dark surfaces
	PrimaryColor   = lipgloss.Color("#A78BFA") // Purple
	SecondaryColor = lipgloss.Color("#10B981") // Green
	WarningColor   = lipgloss.Color("#F59E0B") // Amber
	ErrorColor     = lipgloss.Color("#F87171") // Red
	MutedColor     = lipgloss.Color("#9CA3AF") // Gray
	TextColor      = lipgloss.Color("#F9FAFB") // Light text
	BorderColor    = lipgloss.Color("#6B7280") // Gray
)

// Theme holds the styles for every element the TUI renders.
type Theme struct {
	Name string

	Title    lipgloss.Style
	Label    lipgloss.Style
	Enabled  lipgloss.Style
	Disabled lipgloss.Style
	Running  lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	HelpKey  lipgloss.Style
	Box      lipgloss.Style
	Badge    lipgloss.Style
}

// New returns the theme with the given name. Unknown names fall back to
// the default theme.
func New(name string) Theme {
	if name == ThemeMono {
		return mono()
	}
	return colored()
}

func colored() Theme {
	return Theme{
		Name: ThemeDefault,
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1),
		Label:    lipgloss.NewStyle().Foreground(TextColor),
		Enabled:  lipgloss.NewStyle().Foreground(SecondaryColor),
		Disabled: lipgloss.NewStyle().Foreground(MutedColor).Strikethrough(true),
		Running:  lipgloss.NewStyle().Foreground(WarningColor),
		Error:    lipgloss.NewStyle().Foreground(ErrorColor).Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(MutedColor),
		HelpKey:  lipgloss.NewStyle().Foreground(SecondaryColor).Bold(true),
		Box: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(BorderColor).
			Padding(0, 1),
		Badge: lipgloss.NewStyle().
			Bold(true).
			Foreground(TextColor).
			Background(PrimaryColor).
			Padding(0, 1),
	}
}

func mono() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Name:     ThemeMono,
		Title:    plain.Bold(true).MarginBottom(1),
		Label:    plain,
		Enabled:  plain.Bold(true),
		Disabled: plain.Faint(true),
		Running:  plain.Italic(true),
		Error:    plain.Bold(true).Underline(true),
		Muted:    plain.Faint(true),
		HelpKey:  plain.Bold(true),
		Box:      plain.Border(lipgloss.NormalBorder()).Padding(0, 1),
		Badge:    plain.Reverse(true).Padding(0, 1),
	}
}

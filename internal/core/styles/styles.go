// Package styles provides shared lipgloss styles for the console shell.
// Coordinator screen text stays plain; only the shell chrome (banner,
// shutdown notice, error lines) is styled here.
package styles

import "github.com/charmbracelet/lipgloss"

// Palette defines a minimal semantic theme palette.
type Palette struct {
	Primary string
	Muted   string
	Success string
	Error   string
}

// DefaultPalette is the built-in theme.
var DefaultPalette = Palette{
	Primary: "#7aa2f7",
	Muted:   "#565f89",
	Success: "#9ece6a",
	Error:   "#f7768e",
}

// Style exports.
var (
	BannerStyle   lipgloss.Style
	BannerRule    lipgloss.Style
	NoticeStyle   lipgloss.Style
	ErrorStyle    lipgloss.Style
	ShutdownStyle lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles.
func SetTheme(p Palette) {
	BannerStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Primary)).
		Bold(true)
	BannerRule = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Muted))
	NoticeStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Success))
	ErrorStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Error))
	ShutdownStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.Muted)).
		Italic(true)
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(DefaultPalette)
}

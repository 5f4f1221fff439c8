// Package output renders envoic's terminal output: the scan report, the
// environment list and detail views, deletion previews and summaries, and
// progress indicators.
//
// Renderers return strings so callers decide where they go. Badges are
// coloured only after Init(true); until then everything is plain text.
package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/blackwell-systems/envoic/internal/artifacts"
)

var (
	green  = lipgloss.Color("#22C55E")
	yellow = lipgloss.Color("#FACC15")
	red    = lipgloss.Color("#EF4444")
	orange = lipgloss.Color("#F97316")
	cyan   = lipgloss.Color("#00B4D8")
	dim    = lipgloss.Color("#6B7280")
)

var (
	staleStyle    = lipgloss.NewStyle().Foreground(orange).Bold(true)
	outdatedStyle = lipgloss.NewStyle().Foreground(yellow)
	headingStyle  = lipgloss.NewStyle().Foreground(cyan).Bold(true)
	warningStyle  = lipgloss.NewStyle().Foreground(red).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(dim)

	safetyStyles = map[artifacts.Safety]lipgloss.Style{
		artifacts.AlwaysSafe:  lipgloss.NewStyle().Foreground(green),
		artifacts.UsuallySafe: lipgloss.NewStyle().Foreground(yellow),
		artifacts.Careful:     lipgloss.NewStyle().Foreground(red).Bold(true),
	}
)

var colorEnabled bool

// Init switches coloured output on or off. Call once at startup.
func Init(enabled bool) {
	colorEnabled = enabled
	if !enabled {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}

// IsColorEnabled returns true if stdout is a TTY and NO_COLOR is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

func paint(style lipgloss.Style, text string) string {
	if !colorEnabled {
		return text
	}
	return style.Render(text)
}

// badges returns the STALE / OUTDATED suffix for an environment row.
func badges(stale, outdated bool) string {
	s := ""
	if stale {
		s += " " + paint(staleStyle, "STALE")
	}
	if outdated {
		s += " " + paint(outdatedStyle, "OUTDATED")
	}
	return s
}

func heading(text string) string {
	return paint(headingStyle, text)
}

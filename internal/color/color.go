package color

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/muesli/termenv"
)

var (
	primary = lipgloss.AdaptiveColor{Light: "#005F87", Dark: "#5FD7FF"}
	success = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#5FFF87"}
	warning = lipgloss.AdaptiveColor{Light: "#AF5F00", Dark: "#FFD75F"}
	failure = lipgloss.AdaptiveColor{Light: "#AF0000", Dark: "#FF5F5F"}
	muted   = lipgloss.AdaptiveColor{Light: "#6C6C6C", Dark: "#8A8A8A"}
)

var (
	TitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(primary)
	SetStyle      = lipgloss.NewStyle().Foreground(primary)
	SuccessStyle  = lipgloss.NewStyle().Foreground(success)
	WarningStyle  = lipgloss.NewStyle().Foreground(warning)
	ErrorStyle    = lipgloss.NewStyle().Bold(true).Foreground(failure)
	MutedStyle    = lipgloss.NewStyle().Foreground(muted)
	HintStyle     = lipgloss.NewStyle().Italic(true).Foreground(muted)
	ShadowedStyle = lipgloss.NewStyle().Strikethrough(true).Foreground(warning)
)

var (
	mu      sync.Mutex
	enabled = true
)

// Initialize sets the background mode adaptive colors resolve against.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
}

// Configure enables or disables styled output for both lipgloss and the
// table renderer. NO_COLOR always wins over want.
func Configure(want bool) {
	mu.Lock()
	defer mu.Unlock()

	enabled = want && os.Getenv("NO_COLOR") == ""
	if enabled {
		lipgloss.SetColorProfile(termenv.EnvColorProfile())
		text.EnableColors()
		return
	}
	lipgloss.SetColorProfile(termenv.Ascii)
	text.DisableColors()
}

// Enabled reports whether styled output is on.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return enabled
}

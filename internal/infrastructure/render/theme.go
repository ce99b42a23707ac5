package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette is the set of colors a theme is built from.
type Palette struct {
	Background string
	Surface    string
	Text       string
	Muted      string
	Accent     string
	Border     string
}

var palettes = map[string]Palette{
	"default": {
		Background: "#0a0a0b",
		Surface:    "#1a1a1b",
		Text:       "#ffffff",
		Muted:      "#909090",
		Accent:     "#4ade80",
		Border:     "#333333",
	},
	"light": {
		Background: "#fafafa",
		Surface:    "#eeeeee",
		Text:       "#1a1a1a",
		Muted:      "#6b6b6b",
		Accent:     "#15803d",
		Border:     "#c8c8c8",
	},
}

// Theme holds the lipgloss styles used to draw the tree.
type Theme struct {
	Name string

	Panel       lipgloss.Style
	TabBar      lipgloss.Style
	ActiveTab   lipgloss.Style
	InactiveTab lipgloss.Style
	More        lipgloss.Style
	Handle      lipgloss.Style
	Empty       lipgloss.Style

	// Chrome around the tree: dialogs, menu selection and the status line.
	Dialog   lipgloss.Style
	Selected lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
}

// NewTheme builds the named theme. "dark" is an alias of "default"; unknown
// names fall back to it and report false.
func NewTheme(name string) (*Theme, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "dark" || key == "" {
		key = "default"
	}
	p, ok := palettes[key]
	if !ok {
		key, p = "default", palettes["default"]
	}
	return newThemeFromPalette(key, p), ok
}

func newThemeFromPalette(name string, p Palette) *Theme {
	text := lipgloss.Color(p.Text)
	muted := lipgloss.Color(p.Muted)
	accent := lipgloss.Color(p.Accent)
	border := lipgloss.Color(p.Border)
	surface := lipgloss.Color(p.Surface)

	return &Theme{
		Name:  name,
		Panel: lipgloss.NewStyle().Foreground(text),
		TabBar: lipgloss.NewStyle().
			Background(surface),
		ActiveTab: lipgloss.NewStyle().
			Foreground(accent).
			Background(surface).
			Bold(true),
		InactiveTab: lipgloss.NewStyle().
			Foreground(muted).
			Background(surface),
		More: lipgloss.NewStyle().
			Foreground(text).
			Background(surface),
		Handle: lipgloss.NewStyle().Foreground(border),
		Empty:  lipgloss.NewStyle().Foreground(muted).Italic(true),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Foreground(text).
			Padding(0, 2),
		Selected: lipgloss.NewStyle().Foreground(accent).Bold(true),
		Status:   lipgloss.NewStyle().Foreground(muted),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")),
	}
}

// Package theme defines the light/dark display theme and its palettes.
package theme

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskman/internal/task"
)

// Theme is the display theme name.
type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"
)

// Parse returns Dark for "dark" (case-insensitive, trimmed) and Light for
// anything else.
func Parse(s string) Theme {
	if strings.EqualFold(strings.TrimSpace(s), string(Dark)) {
		return Dark
	}
	return Light
}

// Valid reports whether s names a theme exactly.
func Valid(s string) bool {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case Light, Dark:
		return true
	}
	return false
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

// Styles holds the rendering styles for one theme.
type Styles struct {
	Title    lipgloss.Style
	Done     lipgloss.Style
	Number   lipgloss.Style
	Meta     lipgloss.Style
	Header   lipgloss.Style
	Label    lipgloss.Style
	Priority map[task.Priority]lipgloss.Style
}

type palette struct {
	text, muted, accent, danger, warn, ok lipgloss.Color
}

var palettes = map[Theme]palette{
	Light: {text: "#1f2328", muted: "#6e7781", accent: "#0969da", danger: "#cf222e", warn: "#9a6700", ok: "#1a7f37"},
	Dark:  {text: "#e6edf3", muted: "#8b949e", accent: "#58a6ff", danger: "#ff7b72", warn: "#d29922", ok: "#3fb950"},
}

// NewStyles builds the styles for t, rendering for w. Color output is
// dropped automatically when w is not a terminal.
func NewStyles(t Theme, w io.Writer) Styles {
	r := lipgloss.NewRenderer(w)
	p := palettes[Parse(string(t))]
	return Styles{
		Title:  r.NewStyle().Foreground(p.text),
		Done:   r.NewStyle().Foreground(p.muted).Strikethrough(true),
		Number: r.NewStyle().Foreground(p.muted),
		Meta:   r.NewStyle().Foreground(p.muted).Faint(true),
		Header: r.NewStyle().Foreground(p.accent).Bold(true),
		Priority: map[task.Priority]lipgloss.Style{
			task.PriorityHigh:   r.NewStyle().Foreground(p.danger).Bold(true),
			task.PriorityMedium: r.NewStyle().Foreground(p.warn),
			task.PriorityLow:    r.NewStyle().Foreground(p.ok),
		},
		Label: r.NewStyle().Foreground(p.muted).Bold(true),
	}
}

package filter

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles holds the decorations used for non-raw output
type Styles struct {
	Label      lipgloss.Style
	LineNumber lipgloss.Style
	Highlight  lipgloss.Style
}

// DefaultStyles returns the sgrep color scheme bound to renderer r.
// The renderer decides, from its output, whether colors are emitted at all.
func DefaultStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Label: r.NewStyle().
			Foreground(lipgloss.Color("5")).
			TabWidth(lipgloss.NoTabConversion),
		LineNumber: r.NewStyle().
			Foreground(lipgloss.Color("4")),
		Highlight: r.NewStyle().
			Foreground(lipgloss.Color("2")).
			TabWidth(lipgloss.NoTabConversion),
	}
}

package filter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/sgrep/internal/matcher"
)

// Highlighter decorates every include pattern occurrence inside a line
type Highlighter struct {
	patterns *matcher.PatternSet
	style    lipgloss.Style
}

// NewHighlighter creates a Highlighter for the given include patterns
func NewHighlighter(patterns *matcher.PatternSet, style lipgloss.Style) *Highlighter {
	return &Highlighter{
		patterns: patterns,
		style:    style,
	}
}

// Highlight wraps each occurrence of each pattern in the highlight style.
// Bytes covered by more than one pattern are decorated once, so the
// original text is kept intact between escape sequences.
func (h *Highlighter) Highlight(line string) string {
	if h.patterns == nil {
		return line
	}

	spans := h.patterns.Find(line)
	if len(spans) == 0 {
		return line
	}

	covered := make([]bool, len(line))
	for _, span := range spans {
		if span.Start < 0 || span.End > len(line) || span.Start > span.End {
			panic("internal error: highlight span out of range")
		}
		for i := span.Start; i < span.End; i++ {
			covered[i] = true
		}
	}

	var b strings.Builder
	b.Grow(len(line) + len(spans)*16)

	start := 0
	for start < len(line) {
		end := start
		for end < len(line) && covered[end] == covered[start] {
			end++
		}

		if covered[start] {
			b.WriteString(h.style.Render(line[start:end]))
		} else {
			b.WriteString(line[start:end])
		}
		start = end
	}

	return b.String()
}

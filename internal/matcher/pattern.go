package matcher

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// CaseMode represents how patterns and lines are compared
type CaseMode int

const (
	Sensitive CaseMode = iota
	Insensitive
)

// CaseModeFromFlag maps a --case-insensitive flag value to a CaseMode
func CaseModeFromFlag(insensitive bool) CaseMode {
	if insensitive {
		return Insensitive
	}
	return Sensitive
}

// String returns a human-readable representation of the case mode
func (m CaseMode) String() string {
	switch m {
	case Sensitive:
		return "Sensitive"
	case Insensitive:
		return "Insensitive"
	default:
		return "Unknown"
	}
}

// Normalize applies the mode's folding rule to s
func (m CaseMode) Normalize(s string) string {
	if m == Insensitive {
		return strings.ToLower(s)
	}
	return s
}

// Span is a half-open byte range [Start, End) inside a line
type Span struct {
	Start int
	End   int
}

// PatternSet is an immutable list of substrings matched against lines.
// In Insensitive mode the stored patterns are lowered once here, never per line.
type PatternSet struct {
	patterns []string
	mode     CaseMode
}

// NewPatternSet creates a PatternSet from user supplied substrings.
// An empty string is contained in every line, so it matches everything.
func NewPatternSet(patterns []string, mode CaseMode) *PatternSet {
	ps := &PatternSet{
		patterns: make([]string, 0, len(patterns)),
		mode:     mode,
	}

	for _, p := range patterns {
		ps.patterns = append(ps.patterns, mode.Normalize(p))
	}

	return ps
}

// IsEmpty returns true if the set holds no patterns
func (ps *PatternSet) IsEmpty() bool {
	return len(ps.patterns) == 0
}

// Patterns returns the normalized patterns
func (ps *PatternSet) Patterns() []string {
	out := make([]string, len(ps.patterns))
	copy(out, ps.patterns)
	return out
}

// Matches reports whether at least one pattern is a substring of line.
// Returns at the first hit, so a line is never reported twice.
func (ps *PatternSet) Matches(line string) bool {
	if len(ps.patterns) == 0 {
		return false
	}

	line = ps.mode.Normalize(line)
	for _, p := range ps.patterns {
		if strings.Contains(line, p) {
			return true
		}
	}
	return false
}

// Find returns the byte spans of every occurrence of every non-empty pattern
// in line, in pattern order and left to right per pattern. Occurrences of one
// pattern never overlap each other; occurrences of distinct patterns may.
// Spans always index into line itself, even when lowering changes the byte
// length of some runes.
func (ps *PatternSet) Find(line string) []Span {
	if len(ps.patterns) == 0 {
		return nil
	}

	haystack, offsets := line, []int(nil)
	if ps.mode == Insensitive {
		haystack, offsets = foldLine(line)
	}

	var spans []Span
	for _, p := range ps.patterns {
		if p == "" {
			continue
		}

		offset := 0
		for {
			idx := strings.Index(haystack[offset:], p)
			if idx < 0 {
				break
			}
			start := offset + idx
			offset = start + len(p)

			span := Span{Start: start, End: offset}
			if offsets != nil {
				span = Span{Start: offsets[start], End: offsets[offset]}
			}
			spans = append(spans, span)
		}
	}
	return spans
}

// foldLine lowers line rune by rune. offsets[i] is the byte offset in line of
// the rune that produced byte i of the folded string; offsets[len] is len(line).
func foldLine(line string) (string, []int) {
	var b strings.Builder
	b.Grow(len(line))
	offsets := make([]int, 0, len(line)+1)

	for i := 0; i < len(line); {
		r, size := utf8.DecodeRuneInString(line[i:])

		n := b.Len()
		if r == utf8.RuneError && size == 1 {
			b.WriteByte(line[i])
		} else {
			b.WriteRune(unicode.ToLower(r))
		}
		for j := n; j < b.Len(); j++ {
			offsets = append(offsets, i)
		}
		i += size
	}

	offsets = append(offsets, len(line))
	return b.String(), offsets
}

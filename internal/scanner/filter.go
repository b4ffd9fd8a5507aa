package scanner

import (
	"path/filepath"
	"strings"
)

// FileNameFilterKind represents which rule a FileNameFilter applies
type FileNameFilterKind int

const (
	// FilterNone accepts every entry
	FilterNone FileNameFilterKind = iota
	// FilterPatterns accepts entries whose base name contains a pattern, ignoring case
	FilterPatterns
)

// FileNameFilter decides which directory entries are searched
type FileNameFilter struct {
	kind     FileNameFilterKind
	patterns []string
}

// NoFileFilter returns a filter that accepts every file
func NoFileFilter() FileNameFilter {
	return FileNameFilter{kind: FilterNone}
}

// NewFileNameFilter creates a case-insensitive base name filter.
// E.g. ".go", ".h", "my_class". An empty list accepts every file.
func NewFileNameFilter(patterns []string) FileNameFilter {
	lowered := make([]string, 0, len(patterns))
	for _, p := range patterns {
		if p == "" {
			return NoFileFilter()
		}
		lowered = append(lowered, strings.ToLower(p))
	}

	if len(lowered) == 0 {
		return NoFileFilter()
	}

	return FileNameFilter{kind: FilterPatterns, patterns: lowered}
}

// Kind returns the filter variant
func (f FileNameFilter) Kind() FileNameFilterKind {
	return f.kind
}

// Patterns returns the lowered file name patterns
func (f FileNameFilter) Patterns() []string {
	out := make([]string, len(f.patterns))
	copy(out, f.patterns)
	return out
}

// Accept reports whether the file at path should be searched
func (f FileNameFilter) Accept(path string) bool {
	if f.kind == FilterNone {
		return true
	}

	name := strings.ToLower(filepath.Base(path))
	for _, p := range f.patterns {
		if strings.Contains(name, p) {
			return true
		}
	}
	return false
}

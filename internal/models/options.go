package models

import (
	"github.com/cheerioskun/sgrep/internal/matcher"
	"github.com/cheerioskun/sgrep/internal/scanner"
)

// Options represents the merged configuration for one sgrep run
type Options struct {
	Recurse         bool                   `json:"recurse"`           // Descend into subdirectories
	Root            string                 `json:"root"`              // Working directory for relative paths
	Include         *matcher.PatternSet    `json:"-"`                 // nil shows every non-excluded line
	Exclude         *matcher.PatternSet    `json:"-"`                 // nil excludes nothing
	FileFilter      scanner.FileNameFilter `json:"-"`                 // Applied only when Files is nil
	Files           []string               `json:"files,omitempty"`   // Explicit targets, bypassing enumeration
	ShowTop         int                    `json:"show_top"`          // Leading lines always shown, 0 disables
	Raw             bool                   `json:"raw"`               // No header, numbers or colors
	ShowLineNumbers bool                   `json:"show_line_numbers"` // Prefix lines with their index
	Debug           bool                   `json:"debug"`             // Report per-file errors
}

// NewOptions creates Options with defaults: search "." and accept every file
func NewOptions() *Options {
	return &Options{
		Root:       ".",
		FileFilter: scanner.NoFileFilter(),
	}
}

// SetInclude sets the include patterns
func (o *Options) SetInclude(patterns []string, mode matcher.CaseMode) {
	o.Include = newPatternSet(patterns, mode)
}

// SetExclude sets the exclude patterns
func (o *Options) SetExclude(patterns []string, mode matcher.CaseMode) {
	o.Exclude = newPatternSet(patterns, mode)
}

// HasLineFilters returns true if include or exclude patterns are configured
func (o *Options) HasLineFilters() bool {
	return o.Include != nil || o.Exclude != nil
}

// HasFileList returns true if explicit targets bypass enumeration
func (o *Options) HasFileList() bool {
	return o.Files != nil
}

// newPatternSet returns nil when no usable pattern remains
func newPatternSet(patterns []string, mode matcher.CaseMode) *matcher.PatternSet {
	ps := matcher.NewPatternSet(patterns, mode)
	if ps.IsEmpty() {
		return nil
	}
	return ps
}

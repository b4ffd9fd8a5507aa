package models

import "fmt"

// FileSet represents the resolved targets of a file mode run
type FileSet struct {
	Files      []string `json:"files"`       // Target paths in search order
	Searched   int      `json:"searched"`    // Files fully filtered
	Skipped    int      `json:"skipped"`     // Not regular or failed to open
	Failed     int      `json:"failed"`      // Read or decode error mid-stream
	LinesShown int      `json:"lines_shown"` // Lines printed across all files
}

// NewFileSet creates a FileSet over the given paths
func NewFileSet(paths []string) *FileSet {
	files := make([]string, len(paths))
	copy(files, paths)

	return &FileSet{
		Files: files,
	}
}

// MarkSearched records a fully filtered file
func (fs *FileSet) MarkSearched(linesShown int) {
	fs.Searched++
	fs.LinesShown += linesShown
}

// MarkSkipped records a target that was not opened
func (fs *FileSet) MarkSkipped() {
	fs.Skipped++
}

// MarkFailed records a target whose stream could not be fully read
func (fs *FileSet) MarkFailed(linesShown int) {
	fs.Failed++
	fs.LinesShown += linesShown
}

// Summary returns a one-line description of the run
func (fs *FileSet) Summary() string {
	return fmt.Sprintf("%d files: %d searched, %d skipped, %d failed, %d lines shown",
		len(fs.Files), fs.Searched, fs.Skipped, fs.Failed, fs.LinesShown)
}

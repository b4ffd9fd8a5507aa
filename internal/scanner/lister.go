package scanner

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileLister handles file enumeration below a root directory
type FileLister struct {
	fs afero.Fs
}

// NewFileLister creates a new FileLister with the given filesystem
func NewFileLister(fs afero.Fs) *FileLister {
	return &FileLister{
		fs: fs,
	}
}

// ListFiles returns the files below root accepted by filter, in directory
// read order. Subdirectories are only descended into when recurse is set.
func (fl *FileLister) ListFiles(root string, filter FileNameFilter, recurse bool) ([]string, error) {
	files := make([]string, 0)
	if err := fl.listDirectory(root, filter, recurse, &files); err != nil {
		return nil, err
	}
	return files, nil
}

// listDirectory appends accepted files of dir to files, recursing if asked.
// An unreadable directory aborts the whole walk.
func (fl *FileLister) listDirectory(dir string, filter FileNameFilter, recurse bool, files *[]string) error {
	entries, err := afero.ReadDir(fl.fs, dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		entryPath := filepath.Join(dir, entry.Name())

		if entry.IsDir() {
			if recurse {
				if err := fl.listDirectory(entryPath, filter, recurse, files); err != nil {
					return err
				}
			}
			continue
		}

		if filter.Accept(entry.Name()) {
			*files = append(*files, entryPath)
		}
	}

	return nil
}

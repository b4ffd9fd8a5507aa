package search

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/sgrep/internal/filter"
	"github.com/cheerioskun/sgrep/internal/models"
	"github.com/cheerioskun/sgrep/internal/scanner"
	"github.com/cheerioskun/sgrep/internal/utils"
	"github.com/spf13/afero"
)

// Runner sequences a search over stdin or a set of files
type Runner struct {
	fs     afero.Fs
	out    io.Writer
	opts   *models.Options
	styles filter.Styles
	logger *utils.Logger
}

// NewRunner creates a new Runner writing results to out.
// Per-file diagnostics go to logger only when opts.Debug is set.
// Styles default to a renderer bound to out; use SetStyles when out is a
// wrapper around the real terminal.
func NewRunner(fs afero.Fs, out io.Writer, opts *models.Options, logger *utils.Logger) *Runner {
	if logger == nil || !opts.Debug {
		logger = utils.Discard()
	}

	return &Runner{
		fs:     fs,
		out:    out,
		opts:   opts,
		styles: filter.DefaultStyles(lipgloss.NewRenderer(out)),
		logger: logger,
	}
}

// SetStyles overrides the output styles
func (r *Runner) SetStyles(styles filter.Styles) {
	r.styles = styles
}

// Run searches stdin when it is piped, files otherwise
func (r *Runner) Run(stdin io.Reader, piped bool) error {
	if piped {
		return r.RunStdin(stdin)
	}

	_, err := r.RunFiles()
	return err
}

// RunStdin filters a single unlabelled stream. Any error is fatal.
func (r *Runner) RunStdin(in io.Reader) error {
	stats, err := r.newEngine().FilterStream(in, "")
	if err != nil {
		return fmt.Errorf("error reading from stdin: %w", err)
	}

	r.logger.Debug("stdin: %d lines read, %d shown", stats.LinesRead, stats.LinesShown)
	return nil
}

// resolveTargets returns the explicit file list, or enumerates root
func (r *Runner) resolveTargets(root string) (*models.FileSet, error) {
	if r.opts.HasFileList() {
		return models.NewFileSet(r.opts.Files), nil
	}

	lister := scanner.NewFileLister(r.fs)
	paths, err := lister.ListFiles(root, r.opts.FileFilter, r.opts.Recurse)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}

	return models.NewFileSet(paths), nil
}

// RunFiles filters every target in order. Files that cannot be opened are
// skipped; files that fail mid-stream are logged and the run continues.
// Only enumeration and output errors abort the run.
func (r *Runner) RunFiles() (*models.FileSet, error) {
	root, err := r.enterRoot()
	if err != nil {
		return nil, err
	}

	targets, err := r.resolveTargets(root)
	if err != nil {
		return nil, err
	}

	engine := r.newEngine()
	for _, path := range targets.Files {
		if err := r.searchFile(engine, path, targets); err != nil {
			return targets, err
		}
	}

	r.logger.Debug("%s", targets.Summary())
	return targets, nil
}

// searchFile filters a single file, recording the result in targets
func (r *Runner) searchFile(engine *filter.Engine, path string, targets *models.FileSet) error {
	info, err := r.fs.Stat(path)
	if err != nil {
		// Unmatched shell globs arrive here verbatim, e.g. "*.rs"
		r.logger.Debug("skipping %s: %v", path, err)
		targets.MarkSkipped()
		return nil
	}
	if !info.Mode().IsRegular() {
		r.logger.Debug("skipping %s: not a regular file", path)
		targets.MarkSkipped()
		return nil
	}

	file, err := r.fs.Open(path)
	if err != nil {
		r.logger.Debug("skipping %s: %v", path, err)
		targets.MarkSkipped()
		return nil
	}
	defer file.Close()

	stats, err := engine.FilterStream(file, path)
	if err != nil {
		if errors.Is(err, filter.ErrOutput) {
			return err
		}
		r.logger.Error("%s: %v", path, err)
		targets.MarkFailed(stats.LinesShown)
		return nil
	}

	targets.MarkSearched(stats.LinesShown)
	return nil
}

// enterRoot makes the root the working directory on the real filesystem so
// labels and explicit paths are relative to it, and returns the walk root
func (r *Runner) enterRoot() (string, error) {
	if _, ok := r.fs.(*afero.OsFs); !ok {
		return r.opts.Root, nil
	}

	if err := os.Chdir(r.opts.Root); err != nil {
		return "", fmt.Errorf("failed to change directory to %s: %w", r.opts.Root, err)
	}
	return ".", nil
}

func (r *Runner) newEngine() *filter.Engine {
	return filter.NewEngine(r.out, filter.Config{
		Include:         r.opts.Include,
		Exclude:         r.opts.Exclude,
		ShowTop:         r.opts.ShowTop,
		ShowLineNumbers: r.opts.ShowLineNumbers,
		Raw:             r.opts.Raw,
		Styles:          r.styles,
	})
}

package filter

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/cheerioskun/sgrep/internal/matcher"
)

// lineNumberWidth is the minimum width line numbers are right-aligned to
const lineNumberWidth = 4

// Config contains the per-run settings of the line filter
type Config struct {
	Include         *matcher.PatternSet // nil prints every non-excluded line
	Exclude         *matcher.PatternSet // nil excludes nothing
	ShowTop         int                 // first ShowTop lines bypass the include check
	ShowLineNumbers bool
	Raw             bool
	Styles          Styles
}

// flusher is implemented by buffered writers such as *bufio.Writer
type flusher interface {
	Flush() error
}

// Engine filters line streams and writes the selected lines to w.
// A buffered w is flushed after every line, so output keeps up with a live
// input such as "tail -f".
type Engine struct {
	w           io.Writer
	cfg         Config
	highlighter *Highlighter
}

// NewEngine creates a new Engine writing to w.
// An empty include set is treated as absent.
func NewEngine(w io.Writer, cfg Config) *Engine {
	if cfg.Include != nil && cfg.Include.IsEmpty() {
		cfg.Include = nil
	}
	if cfg.Exclude != nil && cfg.Exclude.IsEmpty() {
		cfg.Exclude = nil
	}

	e := &Engine{
		w:   w,
		cfg: cfg,
	}

	if cfg.Include != nil && !cfg.Raw {
		e.highlighter = NewHighlighter(cfg.Include, cfg.Styles.Highlight)
	}

	return e
}

// Classify decides the outcome of the line at 0-indexed position index.
// Exclusion wins over both the top-N window and the include patterns.
func (e *Engine) Classify(index int, line string) Outcome {
	if e.cfg.Exclude != nil && e.cfg.Exclude.Matches(line) {
		return Excluded
	}

	if e.cfg.Include == nil {
		return PassThrough
	}

	if index < e.cfg.ShowTop {
		return Forced
	}

	if e.cfg.Include.Matches(line) {
		return Matched
	}

	return Rejected
}

// FilterStream reads r line by line and prints the selected lines.
// A non-empty label is printed once before the first selected line and
// followed by a blank line once the stream is exhausted.
func (e *Engine) FilterStream(r io.Reader, label string) (Stats, error) {
	var stats Stats

	reader := bufio.NewReader(r)
	header := false

	for index := 0; ; index++ {
		line, readErr := reader.ReadString('\n')
		if readErr != nil && readErr != io.EOF {
			return stats, fmt.Errorf("failed to read line %d: %w", index, readErr)
		}
		if readErr == io.EOF && line == "" {
			break
		}

		line = trimLineEnding(line)
		if !utf8.ValidString(line) {
			return stats, &DecodeError{Line: index}
		}

		outcome := e.Classify(index, line)
		stats.record(outcome)

		if outcome.Shown() {
			if e.cfg.Raw {
				if err := e.writeLine(line); err != nil {
					return stats, err
				}
			} else {
				if !header {
					header = true
					if label != "" {
						if err := e.writeLine(e.cfg.Styles.Label.Render(label)); err != nil {
							return stats, err
						}
					}
				}
				if err := e.writeLine(e.render(index, line)); err != nil {
					return stats, err
				}
			}
		}

		if readErr == io.EOF {
			break
		}
	}

	if header && label != "" {
		if err := e.writeLine(""); err != nil {
			return stats, err
		}
	}

	return stats, nil
}

// render formats a selected line for colored output
func (e *Engine) render(index int, line string) string {
	if e.highlighter != nil {
		line = e.highlighter.Highlight(line)
	}

	if !e.cfg.ShowLineNumbers {
		return line
	}

	number := e.cfg.Styles.LineNumber.Render(fmt.Sprintf("%*d", lineNumberWidth, index))
	return number + ": " + line
}

func (e *Engine) writeLine(s string) error {
	if _, err := io.WriteString(e.w, s+"\n"); err != nil {
		return fmt.Errorf("%w: %w", ErrOutput, err)
	}
	if f, ok := e.w.(flusher); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("%w: %w", ErrOutput, err)
		}
	}
	return nil
}

// trimLineEnding strips a trailing "\n" or "\r\n". A lone "\r" is content.
func trimLineEnding(line string) string {
	if !strings.HasSuffix(line, "\n") {
		return line
	}
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
